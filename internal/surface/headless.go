package surface

import "errors"

// ErrDetached is returned by Headless when it has been told to refuse a context.
var ErrDetached = errors.New("surface: drawing context detached")

// Headless hosts a Recorder without any display. It plays the part of a
// window: it owns a viewport size and notifies listeners when it changes.
type Headless struct {
	rec       *Recorder
	w, h      int
	listeners map[int]func(w, h int)
	nextID    int

	// Fail makes Surface return ErrDetached.
	Fail bool
}

func NewHeadless(rec *Recorder, w, h int) *Headless {
	return &Headless{rec: rec, w: w, h: h, listeners: make(map[int]func(int, int))}
}

func (h *Headless) Surface() (Surface, error) {
	if h.Fail || h.rec == nil {
		return nil, ErrDetached
	}
	return h.rec, nil
}

func (h *Headless) Viewport() (int, int) { return h.w, h.h }

func (h *Headless) OnResize(fn func(w, h int)) func() {
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() { delete(h.listeners, id) }
}

// SetViewport changes the viewport size and fires every resize listener.
func (h *Headless) SetViewport(w, hgt int) {
	h.w, h.h = w, hgt
	for _, fn := range h.listeners {
		fn(w, hgt)
	}
}

// Listeners reports how many resize listeners are registered.
func (h *Headless) Listeners() int { return len(h.listeners) }

func (h *Headless) Recorder() *Recorder { return h.rec }
