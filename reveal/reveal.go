// Package reveal drives scroll-triggered reveal transitions.
//
// A Controller owns the visibility state of one element. The hosting
// environment supplies the intersection primitive through Observer and
// reports Entry values as the element moves through the viewport. With
// Options.Once the element is revealed exactly once and the observation
// is released afterwards; otherwise Shown follows the intersection state.
//
// A Controller is not safe for concurrent use. Callers deliver entries
// from a single event loop, the way a browser does.
package reveal

// Element is a handle to a renderable element. Elements are compared by
// key, so a re-rendered element with the same key is the same element.
type Element interface {
	RevealKey() string
}

// Entry is one intersection report for an observed element.
type Entry struct {
	Ratio        float64
	Intersecting bool
}

// Observer registers intersection watches. The returned stop function
// releases the watch and must be safe to call more than once.
type Observer interface {
	Observe(el Element, opts Options, fn func(Entry)) (stop func())
}

type Controller struct {
	observer Observer
	opts     Options

	el    Element
	stop  func()
	shown bool
}

// New returns a controller that has not been attached to any element yet.
func New(observer Observer, opts Options) *Controller {
	return &Controller{observer: observer, opts: opts}
}

// Attach starts observing el. A nil element is treated as not mounted
// yet and ignored, so Attach can be called again whenever the element
// lifecycle changes. Attaching the element that is already observed is
// a no-op. It reports whether an observation is active afterwards.
func (c *Controller) Attach(el Element) bool {
	if el == nil {
		return c.stop != nil
	}
	if c.stop != nil && c.el.RevealKey() == el.RevealKey() {
		return true
	}

	c.release()
	c.el = el
	if c.shown && c.opts.Once {
		return false
	}

	c.stop = c.observer.Observe(el, c.opts, c.handle)
	return true
}

// Detach releases the observation, if any. Shown state is kept.
func (c *Controller) Detach() {
	c.release()
	c.el = nil
}

func (c *Controller) Shown() bool {
	return c.shown
}

func (c *Controller) Observing() bool {
	return c.stop != nil
}

func (c *Controller) Options() Options {
	return c.opts
}

// Classes returns the transition classes for the current state.
func (c *Controller) Classes() string {
	return Classes(c.shown)
}

func (c *Controller) handle(e Entry) {
	if c.opts.Once && c.shown {
		return
	}

	if c.entering(e) {
		c.shown = true
		if c.opts.Once {
			c.release()
		}
		return
	}

	if !c.opts.Once {
		c.shown = false
	}
}

func (c *Controller) entering(e Entry) bool {
	if !e.Intersecting {
		return false
	}
	return e.Ratio >= c.opts.Threshold
}

func (c *Controller) release() {
	if c.stop == nil {
		return
	}
	stop := c.stop
	c.stop = nil
	stop()
}
