package toc

import "devfolio/internal/markdown"

// DataElementID is the id of the JSON script element carrying PageData.
// Heading slugs never start with an underscore, so no heading can take it.
const DataElementID = "_toc-data"

// PageData is the outline configuration a post page hands to the browser
// tracker.
type PageData struct {
	Headings     []markdown.Heading `json:"headings"`
	Policy       string             `json:"policy"`
	HeaderOffset float64            `json:"headerOffset"`
	TopMargin    float64            `json:"topMargin"`
	BottomMargin float64            `json:"bottomMargin"`
}

// TrackerPolicy builds the policy the page asked for, falling back to a
// reference line at the header offset when the configuration is invalid.
func (d PageData) TrackerPolicy() (Policy, error) {
	offset := d.HeaderOffset
	if offset == 0 {
		offset = DefaultHeaderOffset
	}
	p, err := ParsePolicy(d.Policy, offset, d.TopMargin, d.BottomMargin)
	if err != nil {
		return ReferenceLine{Offset: offset}, err
	}
	return p, nil
}
