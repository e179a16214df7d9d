package main

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/saritsop/portfolio/accordion"
	"github.com/saritsop/portfolio/reveal"
)

type section struct {
	name  string
	delay time.Duration
}

// Sections in page order, each wrapped in its own reveal.
var sections = []section{
	{"hero", 100 * time.Millisecond},
	{"work", 200 * time.Millisecond},
	{"about", 300 * time.Millisecond},
	{"history", 300 * time.Millisecond},
	{"testimonials", 400 * time.Millisecond},
	{"contact", 500 * time.Millisecond},
	{"footer", 500 * time.Millisecond},
}

type sectionElement string

func (e sectionElement) RevealKey() string { return "reveal-" + string(e) }

type watch struct {
	seq int
	fn  func(reveal.Entry)
}

// pageObserver is the server side of the browser's intersection
// observer. Visibility reports posted by the page are handed to it.
type pageObserver struct {
	watches map[string]watch
	seq     int
}

func newPageObserver() *pageObserver {
	return &pageObserver{watches: map[string]watch{}}
}

func (o *pageObserver) Observe(el reveal.Element, _ reveal.Options, fn func(reveal.Entry)) func() {
	key := el.RevealKey()
	o.seq++
	seq := o.seq
	o.watches[key] = watch{seq: seq, fn: fn}

	return func() {
		// A newer watch on the same key must survive a stale stop.
		if w, ok := o.watches[key]; ok && w.seq == seq {
			delete(o.watches, key)
		}
	}
}

// deliver reports whether anything was watching el.
func (o *pageObserver) deliver(el reveal.Element, e reveal.Entry) bool {
	w, ok := o.watches[el.RevealKey()]
	if !ok {
		return false
	}
	w.fn(e)
	return true
}

func (o *pageObserver) active() int {
	return len(o.watches)
}

// page is the state of one page load. Events from the page are applied
// one at a time under mu.
type page struct {
	mu       sync.Mutex
	id       string
	lastSeen time.Time

	observer *pageObserver
	reveals  map[string]*reveal.Controller
	history  *accordion.Group
}

func newPage(id string, opts reveal.Options, policy accordion.Policy, items []accordion.Item) (*page, error) {
	history, err := accordion.New(policy, items)
	if err != nil {
		return nil, err
	}

	p := &page{
		id:       id,
		observer: newPageObserver(),
		reveals:  make(map[string]*reveal.Controller, len(sections)),
		history:  history,
	}
	for _, s := range sections {
		ctrl := reveal.New(p.observer, opts.WithDelay(s.delay))
		ctrl.Attach(sectionElement(s.name))
		p.reveals[s.name] = ctrl
	}
	return p, nil
}

func (p *page) reveal(name string) (*reveal.Controller, bool) {
	ctrl, ok := p.reveals[name]
	return ctrl, ok
}

// close releases every observation held by the page.
func (p *page) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ctrl := range p.reveals {
		ctrl.Detach()
	}
}

type pageStore struct {
	mu    sync.Mutex
	pages map[string]*page
	ttl   time.Duration
	limit int
	now   func() time.Time

	opts   reveal.Options
	policy accordion.Policy
	items  []accordion.Item
}

// newPageStore holds at most limit pages; beyond that the least recently
// seen page is dropped.
func newPageStore(ttl time.Duration, limit int, opts reveal.Options, policy accordion.Policy, items []accordion.Item) *pageStore {
	return &pageStore{
		pages:  map[string]*page{},
		ttl:    ttl,
		limit:  limit,
		now:    time.Now,
		opts:   opts,
		policy: policy,
		items:  items,
	}
}

func (s *pageStore) create() (*page, error) {
	p, err := newPage(uuid.NewString(), s.opts, s.policy, s.items)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	var evicted *page
	if len(s.pages) >= s.limit {
		evicted = s.evictOldest()
	}
	p.lastSeen = s.now()
	s.pages[p.id] = p
	s.mu.Unlock()

	if evicted != nil {
		evicted.close()
	}
	return p, nil
}

// Callers hold s.mu.
func (s *pageStore) evictOldest() *page {
	var oldest *page
	for _, p := range s.pages {
		if oldest == nil || p.lastSeen.Before(oldest.lastSeen) {
			oldest = p
		}
	}
	if oldest != nil {
		delete(s.pages, oldest.id)
	}
	return oldest
}

func (s *pageStore) get(id string) (*page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(p.lastSeen) > s.ttl {
		return nil, false
	}
	p.lastSeen = s.now()
	return p, true
}

func (s *pageStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// sweep drops expired pages and returns how many were removed.
func (s *pageStore) sweep() int {
	s.mu.Lock()
	var expired []*page
	for id, p := range s.pages {
		if s.now().Sub(p.lastSeen) > s.ttl {
			expired = append(expired, p)
			delete(s.pages, id)
		}
	}
	s.mu.Unlock()

	for _, p := range expired {
		p.close()
	}
	return len(expired)
}

// run sweeps every interval until ctx is done.
func (s *pageStore) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				ctxlog.From(ctx).Debug("Expired pages dropped", "count", n, "remaining", s.len())
			}
		}
	}
}
