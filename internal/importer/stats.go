package importer

import "fmt"

// Stats counts the outcome of an import run.
type Stats struct {
	Scanned   int `json:"scanned"`
	Created   int `json:"created"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

func (s Stats) String() string {
	return fmt.Sprintf("%d scanned, %d created, %d updated, %d unchanged, %d failed",
		s.Scanned, s.Created, s.Updated, s.Unchanged, s.Failed)
}
