package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Heading describes one navigable heading of a rendered document.
type Heading struct {
	Level int    `json:"level"`
	ID    string `json:"id"`
	Text  string `json:"text"`
}

// DefaultLevels are the heading levels included in a table of contents.
var DefaultLevels = []int{2, 3}

var attrID = []byte("id")

// headingIDs assigns every heading with text a unique slug id. Headings
// without text get no id and stay out of the outline, but still consume a
// slug so later suffixes do not shift.
// It runs as a goldmark AST transformer so the renderer and the extractor read
// the same attribute and cannot disagree on the slug.
type headingIDs struct{}

var _ parser.ASTTransformer = headingIDs{}

// Transform implements parser.ASTTransformer.
func (headingIDs) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	var slugger Slugger

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		text := headingText(heading, source)
		id := slugger.Slug(text)
		if text != "" {
			heading.SetAttribute(attrID, []byte(id))
		}
		return ast.WalkSkipChildren, nil
	})
}

// headingText concatenates the plain text leaves under a heading.
// Inline formatting is dropped; raw HTML tags contribute nothing.
func headingText(n ast.Node, source []byte) string {
	var textBuilder strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			textBuilder.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				textBuilder.WriteByte(' ')
			}
		case *ast.String:
			textBuilder.Write(v.Value)
		case *ast.AutoLink:
			textBuilder.Write(v.Label(source))
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(textBuilder.String())
}

// collectHeadings walks a parsed document and returns the headings at the
// tracked levels in document order.
func collectHeadings(doc ast.Node, source []byte, levels map[int]bool) []Heading {
	headings := []Heading{}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !levels[heading.Level] {
			return ast.WalkSkipChildren, nil
		}

		id, ok := heading.AttributeString("id")
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		idBytes, ok := id.([]byte)
		if !ok {
			return ast.WalkSkipChildren, nil
		}

		headings = append(headings, Heading{
			Level: heading.Level,
			ID:    string(idBytes),
			Text:  headingText(heading, source),
		})
		return ast.WalkSkipChildren, nil
	})

	return headings
}
