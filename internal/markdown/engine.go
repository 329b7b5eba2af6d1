package markdown

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	ghhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Document is a rendered post body together with its outline.
type Document struct {
	HTML     string
	Headings []Heading
}

// Engine renders post markdown to HTML and extracts heading outlines.
// An Engine is safe for concurrent use.
type Engine struct {
	md        goldmark.Markdown
	levels    map[int]bool
	codeBlock *codeBlockRenderer
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	levels         []int
	highlightStyle string
	hardWraps      bool
	logger         *slog.Logger
	transformers   []util.PrioritizedValue
}

// WithLevels sets the heading levels returned by Headings. Levels outside
// 1..6 are ignored; an empty list keeps the default.
func WithLevels(levels ...int) Option {
	return func(o *engineOptions) {
		var valid []int
		for _, l := range levels {
			if l >= 1 && l <= 6 {
				valid = append(valid, l)
			}
		}
		if len(valid) > 0 {
			o.levels = valid
		}
	}
}

// WithHighlightStyle selects the chroma style used for fenced code blocks.
func WithHighlightStyle(name string) Option {
	return func(o *engineOptions) {
		if name != "" {
			o.highlightStyle = name
		}
	}
}

// WithHardWraps controls whether single newlines render as <br>.
func WithHardWraps(enabled bool) Option {
	return func(o *engineOptions) {
		o.hardWraps = enabled
	}
}

// WithLogger sets the logger used to report recovered failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// withASTTransformer runs tr after heading ids are assigned.
func withASTTransformer(tr parser.ASTTransformer) Option {
	return func(o *engineOptions) {
		o.transformers = append(o.transformers, util.Prioritized(tr, 200))
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	o := engineOptions{
		levels:         DefaultLevels,
		highlightStyle: DefaultHighlightStyle,
		hardWraps:      true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	codeBlock := newCodeBlockRenderer(o.highlightStyle)
	rendererOpts := []renderer.Option{
		ghhtml.WithUnsafe(),
		renderer.WithNodeRenderers(util.Prioritized(codeBlock, 200)),
	}
	if o.hardWraps {
		rendererOpts = append(rendererOpts, ghhtml.WithHardWraps())
	}

	levels := make(map[int]bool, len(o.levels))
	for _, l := range o.levels {
		levels[l] = true
	}

	return &Engine{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithASTTransformers(append([]util.PrioritizedValue{util.Prioritized(headingIDs{}, 100)}, o.transformers...)...),
			),
			goldmark.WithRendererOptions(rendererOpts...),
		),
		levels:    levels,
		codeBlock: codeBlock,
		logger:    o.logger,
	}
}

// Levels returns the tracked heading levels in ascending order.
func (e *Engine) Levels() []int {
	levels := make([]int, 0, len(e.levels))
	for l := range e.levels {
		levels = append(levels, l)
	}
	sort.Ints(levels)
	return levels
}

// parse preprocesses and parses source into an AST with heading ids assigned.
func (e *Engine) parse(source string) (doc ast.Node, src []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("parse markdown: %v", r)
		}
	}()
	src = []byte(Preprocess(source))
	doc = e.md.Parser().Parse(text.NewReader(src))
	return doc, src, nil
}

// Render converts markdown to HTML.
func (e *Engine) Render(source string) (string, error) {
	doc, err := e.Document(source)
	if err != nil {
		return "", err
	}
	return doc.HTML, nil
}

// Document renders source and extracts its outline from the same parse.
func (e *Engine) Document(source string) (Document, error) {
	if source == "" {
		return Document{Headings: []Heading{}}, nil
	}

	root, src, err := e.parse(source)
	if err != nil {
		return Document{}, err
	}

	var buf bytes.Buffer
	if err := e.md.Renderer().Render(&buf, src, root); err != nil {
		return Document{}, fmt.Errorf("render markdown: %w", err)
	}

	return Document{
		HTML:     buf.String(),
		Headings: collectHeadings(root, src, e.levels),
	}, nil
}

// Headings extracts the outline of source. It never fails: malformed input
// yields an empty outline.
func (e *Engine) Headings(source string) []Heading {
	if source == "" {
		return []Heading{}
	}

	root, src, err := e.parse(source)
	if err != nil {
		e.getLogger().Warn("failed to extract headings from markdown", "error", err)
		return []Heading{}
	}
	return collectHeadings(root, src, e.levels)
}

func (e *Engine) getLogger() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// HighlightCSS writes the stylesheet for highlighted code blocks.
func (e *Engine) HighlightCSS(w io.Writer) error {
	return e.codeBlock.writeCSS(w)
}

var defaultEngine = New()

// ExtractHeadings returns the level 2 and 3 headings of source using the
// default engine.
func ExtractHeadings(source string) []Heading {
	return defaultEngine.Headings(source)
}
