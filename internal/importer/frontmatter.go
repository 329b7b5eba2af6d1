package importer

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"devfolio/internal/markdown"
)

// FrontMatter is the optional YAML header of a post file.
type FrontMatter struct {
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug"`
	Tags        yamlTags  `yaml:"tags"`
	Status      string    `yaml:"status"`
	Description string    `yaml:"description"`
	OGImage     string    `yaml:"og_image"`
	PublishedAt time.Time `yaml:"published_at"`
}

// yamlTags accepts either a YAML sequence or a comma separated string.
type yamlTags []string

func (t *yamlTags) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = list
	case yaml.ScalarNode:
		*t = strings.Split(node.Value, ",")
	default:
		return fmt.Errorf("line %d: tags must be a list or a string", node.Line)
	}
	return nil
}

var fence = []byte("---")

// SplitFrontMatter separates a leading "---" delimited YAML block from the
// markdown body. Files without front matter return a zero FrontMatter and the
// whole input as body.
func SplitFrontMatter(data []byte) (FrontMatter, string, error) {
	var fm FrontMatter

	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	first, rest, ok := cutLine(data)
	if !ok || !bytes.Equal(bytes.TrimSpace(first), fence) {
		return fm, string(data), nil
	}

	var header bytes.Buffer
	for {
		line, next, more := cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), fence) {
			if err := yaml.Unmarshal(header.Bytes(), &fm); err != nil {
				return fm, "", fmt.Errorf("invalid front matter: %w", err)
			}
			return fm, string(next), nil
		}
		if !more {
			return fm, "", fmt.Errorf("invalid front matter: missing closing %q", fence)
		}
		header.Write(line)
		header.WriteByte('\n')
		rest = next
	}
}

// cutLine splits off the first line. more is false when data had no newline.
func cutLine(data []byte) (line, rest []byte, more bool) {
	i := bytes.IndexByte(data, '\n')
	if i < 0 {
		return data, nil, false
	}
	return bytes.TrimSuffix(data[:i], []byte("\r")), data[i+1:], true
}

var titleEngine = markdown.New(markdown.WithLevels(1))

// resolveTitle picks the post title: front matter, then the first level 1
// heading of the body, then the file name.
func resolveTitle(fm FrontMatter, body, relPath string) string {
	if title := strings.TrimSpace(fm.Title); title != "" {
		return title
	}
	for _, h := range titleEngine.Headings(body) {
		if h.Text != "" {
			return h.Text
		}
	}
	return strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))
}
