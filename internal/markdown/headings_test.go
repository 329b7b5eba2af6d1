package markdown

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeadings(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     []Heading
	}{
		{
			name:     "empty input",
			markdown: "",
			want:     []Heading{},
		},
		{
			name:     "no headings",
			markdown: "no headings here",
			want:     []Heading{},
		},
		{
			name:     "level filtering",
			markdown: "# Title\n## A\n### B\n#### C",
			want: []Heading{
				{Level: 2, ID: "a", Text: "A"},
				{Level: 3, ID: "b", Text: "B"},
			},
		},
		{
			name:     "duplicate headings are suffixed",
			markdown: "## Intro\nfirst\n\n## Intro\nsecond",
			want: []Heading{
				{Level: 2, ID: "intro", Text: "Intro"},
				{Level: 2, ID: "intro-2", Text: "Intro"},
			},
		},
		{
			name:     "inline formatting stripped",
			markdown: "## Hello *world* and `code`",
			want: []Heading{
				{Level: 2, ID: "hello-world-and-code", Text: "Hello world and code"},
			},
		},
		{
			name:     "link text kept",
			markdown: "### See [the docs](https://example.com)",
			want: []Heading{
				{Level: 3, ID: "see-the-docs", Text: "See the docs"},
			},
		},
		{
			name:     "bold rewritten to raw html still yields plain text",
			markdown: "## **Bold** move",
			want: []Heading{
				{Level: 2, ID: "bold-move", Text: "Bold move"},
			},
		},
		{
			name:     "setext heading",
			markdown: "Overview\n--------\n\nbody",
			want: []Heading{
				{Level: 2, ID: "overview", Text: "Overview"},
			},
		},
		{
			name:     "headings inside code fences ignored",
			markdown: "```md\n## not a heading\n```\n\n## Real",
			want: []Heading{
				{Level: 2, ID: "real", Text: "Real"},
			},
		},
		{
			name:     "untracked heading still consumes its slug",
			markdown: "# Setup\n## Setup",
			want: []Heading{
				{Level: 2, ID: "setup-2", Text: "Setup"},
			},
		},
		{
			name:     "headings without text are skipped",
			markdown: "##\n\n## Intro\n\n### <span></span>\n\n## Heading",
			want: []Heading{
				{Level: 2, ID: "intro", Text: "Intro"},
				{Level: 2, ID: "heading-3", Text: "Heading"},
			},
		},
		{
			name:     "punctuation only headings keep the fallback id",
			markdown: "## ???",
			want: []Heading{
				{Level: 2, ID: "heading", Text: "???"},
			},
		},
		{
			name:     "korean headings",
			markdown: "## 들어가며\n## 마치며",
			want: []Heading{
				{Level: 2, ID: "들어가며", Text: "들어가며"},
				{Level: 2, ID: "마치며", Text: "마치며"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractHeadings(tt.markdown)
			require.NotNil(t, got)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractHeadings() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractHeadings_Deterministic(t *testing.T) {
	source := "## One\n### Two\n## One\n### Two\n\ntext\n\n## Three *x*"

	first := ExtractHeadings(source)
	second := ExtractHeadings(source)

	assert.Equal(t, first, second)
	assert.Len(t, first, 5)
}

func TestEngine_WithLevels(t *testing.T) {
	engine := New(WithLevels(1, 4))

	got := engine.Headings("# Title\n## A\n### B\n#### C")

	assert.Equal(t, []Heading{
		{Level: 1, ID: "title", Text: "Title"},
		{Level: 4, ID: "c", Text: "C"},
	}, got)
	assert.Equal(t, []int{1, 4}, engine.Levels())
}

func TestEngine_WithLevelsIgnoresInvalid(t *testing.T) {
	engine := New(WithLevels(0, 9))

	assert.Equal(t, DefaultLevels, engine.Levels())
}
