//go:build js && wasm

// Command tocwasm drives the post outline in the browser. The server embeds
// the outline data in a JSON script element (toc.DataElementID); this binary
// wires a toc.Tracker to the live DOM and keeps the highlighted entry in sync.
//
// Post pages load /static/toc.wasm and /static/wasm_exec.js from STATIC_DIR.
// Build both from the repository root with:
//
//	GOOS=js GOARCH=wasm go build -o web/static/toc.wasm ./cmd/tocwasm
//	cp "$(go env GOROOT)/lib/wasm/wasm_exec.js" web/static/
//
// or run `go generate ./cmd/api`. Go releases before 1.24 ship wasm_exec.js
// under misc/wasm instead of lib/wasm.
package main

import (
	"encoding/json"
	"log/slog"
	"sync"
	"syscall/js"

	"devfolio/internal/toc"
)

func main() {
	doc := js.Global().Get("document")
	win := js.Global().Get("window")

	data, ok := readPageData(doc)
	if !ok {
		return
	}

	policy, err := data.TrackerPolicy()
	if err != nil {
		slog.Warn("Falling back to reference line policy", "error", err)
	}

	geo := domGeometry{doc: doc, win: win}
	opts := []toc.Option{
		toc.WithPolicy(policy),
		toc.WithGeometry(geo),
		toc.WithNavigator(domNavigator{doc: doc, win: win}),
		toc.WithHeaderOffset(data.HeaderOffset),
		toc.WithMobile(true),
		toc.WithOnChange(func(activeID string) { markActive(doc, activeID) }),
	}
	band, isBand := policy.(toc.IntersectionBand)
	if isBand {
		opts = append(opts, toc.WithObserver(intersectionObserver{doc: doc, win: win, rootMargin: band.RootMargin()}))
	}

	tracker := toc.New(opts...)
	tracker.SetHeadings(data.Headings)
	tracker.Refresh(geo)

	var funcs []js.Func
	listen := func(target js.Value, event string, fn func(js.Value)) {
		f := js.FuncOf(func(_ js.Value, args []js.Value) any {
			fn(args[0])
			return nil
		})
		funcs = append(funcs, f)
		target.Call("addEventListener", event, f)
	}

	if !isBand {
		listen(win, "scroll", func(js.Value) { tracker.Refresh(geo) })
	}

	listen(doc, "click", func(ev js.Value) {
		target := ev.Get("target")
		if target.Get("closest").IsUndefined() {
			return
		}
		if link := target.Call("closest", "[data-toc-id]"); !link.IsNull() {
			ev.Call("preventDefault")
			if tracker.Click(link.Get("dataset").Get("tocId").String()) {
				syncDisclosure(doc, tracker.Expanded())
			}
			return
		}
		if toggle := target.Call("closest", "[data-toc-toggle]"); !toggle.IsNull() {
			syncDisclosure(doc, tracker.Toggle())
		}
	})

	listen(win, "pagehide", func(js.Value) {
		tracker.Close()
		for _, f := range funcs {
			f.Release()
		}
	})

	select {}
}

func readPageData(doc js.Value) (toc.PageData, bool) {
	el := doc.Call("getElementById", toc.DataElementID)
	if el.IsNull() {
		return toc.PageData{}, false
	}
	var data toc.PageData
	if err := json.Unmarshal([]byte(el.Get("textContent").String()), &data); err != nil {
		slog.Error("Failed to decode outline data", "error", err)
		return toc.PageData{}, false
	}
	if data.HeaderOffset == 0 {
		data.HeaderOffset = toc.DefaultHeaderOffset
	}
	return data, true
}

func markActive(doc js.Value, activeID string) {
	links := doc.Call("querySelectorAll", "[data-toc-id]")
	for i := 0; i < links.Length(); i++ {
		link := links.Index(i)
		if link.Get("dataset").Get("tocId").String() == activeID {
			link.Get("classList").Call("add", "active")
			link.Call("setAttribute", "aria-current", "location")
		} else {
			link.Get("classList").Call("remove", "active")
			link.Call("removeAttribute", "aria-current")
		}
	}
}

func syncDisclosure(doc js.Value, expanded bool) {
	root := doc.Call("querySelector", "[data-toc-mobile]")
	if root.IsNull() {
		return
	}
	root.Call("querySelector", "[data-toc-toggle]").Call("setAttribute", "aria-expanded", expanded)
	list := root.Call("querySelector", "ul")
	if list.IsNull() {
		return
	}
	list.Set("hidden", !expanded)
}

type domGeometry struct {
	doc js.Value
	win js.Value
}

func (g domGeometry) Top(id string) (float64, bool) {
	el := g.doc.Call("getElementById", id)
	if el.IsNull() {
		return 0, false
	}
	return el.Call("getBoundingClientRect").Get("top").Float(), true
}

func (g domGeometry) ViewportHeight() float64 {
	return g.win.Get("innerHeight").Float()
}

type domNavigator struct {
	doc js.Value
	win js.Value
}

func (n domNavigator) ScrollTo(id string, offset float64) bool {
	el := n.doc.Call("getElementById", id)
	if el.IsNull() {
		return false
	}
	top := el.Call("getBoundingClientRect").Get("top").Float() + n.win.Get("scrollY").Float() - offset
	n.win.Call("scrollTo", js.ValueOf(map[string]any{
		"top":      top,
		"behavior": "smooth",
	}))
	return true
}

func (n domNavigator) SetFragment(id string) {
	n.win.Get("history").Call("replaceState", js.Null(), "", "#"+id)
}

// intersectionObserver feeds the tracker from a browser IntersectionObserver
// whose root margin shrinks the viewport to the highlight band.
type intersectionObserver struct {
	doc        js.Value
	win        js.Value
	rootMargin string
}

func (o intersectionObserver) Observe(ids []string, deliver func([]toc.Event)) toc.Subscription {
	ctor := js.Global().Get("IntersectionObserver")
	if ctor.IsUndefined() {
		return nil
	}

	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		entries := args[0]
		viewport := o.win.Get("innerHeight").Float()
		events := make([]toc.Event, 0, entries.Length())
		for i := 0; i < entries.Length(); i++ {
			entry := entries.Index(i)
			events = append(events, toc.Event{
				ID:           entry.Get("target").Get("id").String(),
				Top:          entry.Get("boundingClientRect").Get("top").Float(),
				Viewport:     viewport,
				Intersecting: entry.Get("isIntersecting").Bool(),
			})
		}
		deliver(events)
		return nil
	})

	observer := ctor.New(cb, js.ValueOf(map[string]any{
		"rootMargin": o.rootMargin,
		"threshold":  0,
	}))
	for _, id := range ids {
		if el := o.doc.Call("getElementById", id); !el.IsNull() {
			observer.Call("observe", el)
		}
	}

	var once sync.Once
	return toc.SubscriptionFunc(func() {
		once.Do(func() {
			observer.Call("disconnect")
			cb.Release()
		})
	})
}
