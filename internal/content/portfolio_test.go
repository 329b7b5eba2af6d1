package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)

	assert.NotEmpty(t, p.Profile.Name)
	require.NotEmpty(t, p.Projects)
	for i := 1; i < len(p.Projects); i++ {
		assert.False(t, parseDate(p.Projects[i].Date).After(parseDate(p.Projects[i-1].Date)),
			"projects out of order at %d", i)
	}
	assert.NotEmpty(t, p.Skills)
	assert.NotEmpty(t, p.Contacts)
}

func TestParse_SortsNewestFirst(t *testing.T) {
	p, err := Parse([]byte(`
projects:
  - {id: old, date: "2023"}
  - {id: mid, date: "2024-06"}
  - {id: new, date: "2025-02-03"}
  - {id: undated}
experience:
  - {id: a, startDate: "2022-01"}
  - {id: b, startDate: "2024-01"}
`))
	require.NoError(t, err)

	var ids []string
	for _, project := range p.Projects {
		ids = append(ids, project.ID)
	}
	assert.Equal(t, []string{"new", "mid", "old", "undated"}, ids)
	assert.Equal(t, "b", p.Experience[0].ID)
}

func TestPortfolio_Lookup(t *testing.T) {
	p, err := Parse([]byte(`
projects:
  - {id: one, title: One}
experience:
  - {id: exp-1, company: Acme}
`))
	require.NoError(t, err)

	project, ok := p.ProjectByID("one")
	assert.True(t, ok)
	assert.Equal(t, "One", project.Title)
	_, ok = p.ProjectByID("two")
	assert.False(t, ok)

	exp, ok := p.ExperienceByID("exp-1")
	assert.True(t, ok)
	assert.Equal(t, "Acme", exp.Company)
	_, ok = p.ExperienceByID("exp-9")
	assert.False(t, ok)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile:\n  name: Someone\n"), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Someone", p.Profile.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("projects: [\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}
