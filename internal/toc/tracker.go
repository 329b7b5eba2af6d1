package toc

import (
	"io"
	"math"
	"sync"

	"devfolio/internal/markdown"
)

// DefaultHeaderOffset is the height in pixels of the fixed page header that
// scrolled-to headings must clear.
const DefaultHeaderOffset = 96

// Geometry reports the live layout of rendered heading elements.
type Geometry interface {
	// Top returns the distance in pixels from the viewport top to the element
	// with the given id, or false if no such element is mounted.
	Top(id string) (float64, bool)
	// ViewportHeight returns the current viewport height in pixels.
	ViewportHeight() float64
}

// Event is one observation of a heading element.
type Event struct {
	ID           string
	Top          float64
	Viewport     float64
	Intersecting bool
}

// Subscription is a live observation handle.
type Subscription interface {
	// Dispose stops delivery. It must be safe to call more than once.
	Dispose()
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

// Dispose implements Subscription.
func (f SubscriptionFunc) Dispose() { f() }

// Observer watches heading elements and reports them as they move.
type Observer interface {
	Observe(ids []string, deliver func([]Event)) Subscription
}

// Navigator moves the page to a heading.
type Navigator interface {
	// ScrollTo smooth-scrolls so the element sits offset pixels below the
	// viewport top. It returns false if the element is not mounted.
	ScrollTo(id string, offset float64) bool
	// SetFragment replaces the location fragment with #id without navigating.
	SetFragment(id string)
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithPolicy sets the highlight policy.
func WithPolicy(p Policy) Option {
	return func(t *Tracker) {
		if p != nil {
			t.policy = p
		}
	}
}

// WithObserver sets the observation feed.
func WithObserver(o Observer) Option {
	return func(t *Tracker) { t.observer = o }
}

// WithGeometry sets the live layout read on every observer delivery, so
// candidates are ranked by where they are now rather than where they crossed
// the observed band.
func WithGeometry(g Geometry) Option {
	return func(t *Tracker) { t.geometry = g }
}

// WithNavigator sets the scroll and location handler used by Click.
func WithNavigator(n Navigator) Option {
	return func(t *Tracker) { t.navigator = n }
}

// WithHeaderOffset sets the pixel offset clicked headings are scrolled to.
func WithHeaderOffset(px float64) Option {
	return func(t *Tracker) { t.headerOffset = px }
}

// WithMobile renders the outline as a collapsible disclosure.
func WithMobile(mobile bool) Option {
	return func(t *Tracker) { t.mobile = mobile }
}

// WithOnChange registers a callback invoked with the new active id whenever it
// changes. It is called without the tracker lock held.
func WithOnChange(fn func(activeID string)) Option {
	return func(t *Tracker) { t.onChange = fn }
}

// Tracker owns the highlighted-heading state of one outline widget.
//
// Every heading list is a new generation: the previous observation is
// disposed before the next one is established, and deliveries tagged with an
// older generation are dropped, so activeID only ever names a heading of the
// current list.
//
// A click pins the clicked heading while its element approaches the scroll
// target. The pin is released by the first layout reading that finds the
// element moving away from the target again, so the scroll started by the
// click cannot hand the highlight back to a neighbour.
type Tracker struct {
	policy       Policy
	observer     Observer
	geometry     Geometry
	navigator    Navigator
	headerOffset float64
	mobile       bool
	onChange     func(string)

	mu         sync.Mutex
	headings   []markdown.Heading
	index      map[string]int
	candidates map[string]float64
	activeID   string
	generation uint64
	sub        Subscription
	expanded   bool
	closed     bool

	pinned      string
	pinDistance float64
}

// New creates a Tracker with no headings.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		policy:       ReferenceLine{Offset: DefaultHeaderOffset},
		headerOffset: DefaultHeaderOffset,
		index:        map[string]int{},
		candidates:   map[string]float64{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetHeadings replaces the outline, typically when a new post is shown.
func (t *Tracker) SetHeadings(headings []markdown.Heading) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	old := t.sub
	t.sub = nil
	t.generation++
	gen := t.generation

	t.headings = append([]markdown.Heading(nil), headings...)
	t.index = make(map[string]int, len(t.headings))
	ids := make([]string, 0, len(t.headings))
	for i, h := range t.headings {
		if _, dup := t.index[h.ID]; dup {
			continue
		}
		t.index[h.ID] = i
		ids = append(ids, h.ID)
	}
	t.candidates = map[string]float64{}
	t.pinned = ""

	next := ""
	if len(t.headings) > 0 {
		next = t.headings[0].ID
	}
	changed := t.activeID != next
	t.activeID = next
	t.mu.Unlock()

	if old != nil {
		old.Dispose()
	}
	if changed {
		t.notify(next)
	}

	if t.observer == nil || len(ids) == 0 {
		return
	}
	sub := t.observer.Observe(ids, func(events []Event) {
		t.deliver(gen, events)
	})
	if sub == nil {
		return
	}

	t.mu.Lock()
	if t.generation != gen || t.closed {
		t.mu.Unlock()
		sub.Dispose()
		return
	}
	t.sub = sub
	t.mu.Unlock()
}

// deliver applies an observer batch from generation gen.
func (t *Tracker) deliver(gen uint64, events []Event) {
	t.mu.Lock()
	if gen != t.generation || t.closed {
		t.mu.Unlock()
		return
	}
	for _, ev := range events {
		if _, known := t.index[ev.ID]; !known {
			continue
		}
		if ev.Intersecting && t.policy.Candidate(ev.Top, ev.Viewport) {
			t.candidates[ev.ID] = t.policy.Distance(ev.Top, ev.Viewport)
		} else {
			delete(t.candidates, ev.ID)
		}
	}
	if t.geometry != nil {
		t.rankLiveLocked(t.geometry)
	}
	changed := t.pickLocked(t.geometry)
	active := t.activeID
	t.mu.Unlock()

	if changed {
		t.notify(active)
	}
}

// rankLiveLocked re-ranks the observed candidates by their current position.
// Candidates whose element is gone are dropped.
func (t *Tracker) rankLiveLocked(geo Geometry) {
	viewport := geo.ViewportHeight()
	for id := range t.candidates {
		top, ok := geo.Top(id)
		if !ok {
			delete(t.candidates, id)
			continue
		}
		t.candidates[id] = t.policy.Distance(top, viewport)
	}
}

// Refresh recomputes the active heading from live geometry, as on a scroll
// event. Headings whose elements are not mounted are skipped.
func (t *Tracker) Refresh(geo Geometry) {
	if geo == nil {
		return
	}

	t.mu.Lock()
	if t.closed || len(t.headings) == 0 {
		t.mu.Unlock()
		return
	}
	viewport := geo.ViewportHeight()
	t.candidates = make(map[string]float64, len(t.headings))
	for _, h := range t.headings {
		top, ok := geo.Top(h.ID)
		if !ok {
			continue
		}
		if t.policy.Candidate(top, viewport) {
			t.candidates[h.ID] = t.policy.Distance(top, viewport)
		}
	}
	changed := t.pickLocked(geo)
	active := t.activeID
	t.mu.Unlock()

	if changed {
		t.notify(active)
	}
}

// pickLocked selects the best candidate. With no candidates, or while a
// click pin holds, the current choice stands. It reports whether activeID
// changed.
func (t *Tracker) pickLocked(geo Geometry) bool {
	if t.holdPinLocked(geo) {
		return false
	}
	best := ""
	bestDistance := 0.0
	for _, h := range t.headings {
		d, ok := t.candidates[h.ID]
		if !ok {
			continue
		}
		if best == "" || d < bestDistance {
			best, bestDistance = h.ID, d
		}
	}
	if best == "" || best == t.activeID {
		return false
	}
	t.activeID = best
	return true
}

// holdPinLocked reports whether the clicked heading is still on its way to
// the scroll target. Without layout information the pin is released.
func (t *Tracker) holdPinLocked(geo Geometry) bool {
	if t.pinned == "" {
		return false
	}
	if geo == nil {
		t.pinned = ""
		return false
	}
	top, ok := geo.Top(t.pinned)
	if !ok {
		t.pinned = ""
		return false
	}
	d := math.Abs(top - t.headerOffset)
	if d > t.pinDistance {
		t.pinned = ""
		return false
	}
	t.pinDistance = d
	return true
}

// Click navigates to the heading with the given id and activates it
// immediately. It is a no-op returning false if the id is not part of the
// outline or its element is not mounted.
func (t *Tracker) Click(id string) bool {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return false
	}
	if _, known := t.index[id]; !known {
		t.mu.Unlock()
		return false
	}
	gen := t.generation
	t.mu.Unlock()

	if t.navigator != nil && !t.navigator.ScrollTo(id, t.headerOffset) {
		return false
	}

	t.mu.Lock()
	if gen != t.generation || t.closed {
		t.mu.Unlock()
		return false
	}
	changed := t.activeID != id
	t.activeID = id
	t.pinned = id
	t.pinDistance = math.Inf(1)
	if t.mobile {
		t.expanded = false
	}
	t.mu.Unlock()

	if t.navigator != nil {
		t.navigator.SetFragment(id)
	}
	if changed {
		t.notify(id)
	}
	return true
}

// Toggle flips the mobile disclosure and returns the new state.
func (t *Tracker) Toggle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expanded = !t.expanded
	return t.expanded
}

// Expanded reports whether the mobile disclosure is open.
func (t *Tracker) Expanded() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expanded
}

// ActiveID returns the highlighted heading id, or "" when there is none.
func (t *Tracker) ActiveID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.activeID
}

// Headings returns a copy of the current outline.
func (t *Tracker) Headings() []markdown.Heading {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]markdown.Heading(nil), t.headings...)
}

// Close releases the observation. The tracker ignores all input afterwards.
func (t *Tracker) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	t.generation++
	sub := t.sub
	t.sub = nil
	t.mu.Unlock()

	if sub != nil {
		sub.Dispose()
	}
}

// Render writes the outline in its current state.
func (t *Tracker) Render(w io.Writer) error {
	t.mu.Lock()
	headings := append([]markdown.Heading(nil), t.headings...)
	opts := OutlineOptions{
		Mobile:   t.mobile,
		ActiveID: t.activeID,
		Expanded: t.expanded,
	}
	t.mu.Unlock()

	return RenderOutline(w, headings, opts)
}

func (t *Tracker) notify(activeID string) {
	if t.onChange != nil {
		t.onChange(activeID)
	}
}
