// Package accordion tracks which entries of a collapsible list are open.
package accordion

import (
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Policy decides what happens to other entries when one is toggled.
type Policy int

const (
	// MultiOpen lets any number of entries be open at once.
	MultiOpen Policy = iota
	// SingleOpen keeps at most one entry open; opening another closes it.
	SingleOpen
)

var (
	ErrUnknownPolicy = goerr.New("unknown accordion policy")
	ErrEmptyID       = goerr.New("accordion item has an empty id")
	ErrDuplicateID   = goerr.New("duplicate accordion item id")
)

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "multi", "multi-open", "":
		return MultiOpen, nil
	case "single", "single-open":
		return SingleOpen, nil
	default:
		return MultiOpen, goerr.Wrap(ErrUnknownPolicy, "parse policy", goerr.V("policy", s))
	}
}

func (p Policy) String() string {
	switch p {
	case SingleOpen:
		return "single"
	default:
		return "multi"
	}
}

func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Item is one static entry of the list.
type Item struct {
	ID           string
	Year         string
	Organization string
	Role         string
	Body         string
}

// Group holds the open state of a fixed, ordered list of items. It is
// not safe for concurrent use.
type Group struct {
	policy Policy
	items  []Item
	index  map[string]int
	open   map[string]struct{}
}

// New builds a group with every item collapsed.
func New(policy Policy, items []Item) (*Group, error) {
	index := make(map[string]int, len(items))
	for i, it := range items {
		if it.ID == "" {
			return nil, goerr.Wrap(ErrEmptyID, "build accordion", goerr.V("position", i))
		}
		if _, ok := index[it.ID]; ok {
			return nil, goerr.Wrap(ErrDuplicateID, "build accordion", goerr.V("id", it.ID))
		}
		index[it.ID] = i
	}

	return &Group{
		policy: policy,
		items:  append([]Item(nil), items...),
		index:  index,
		open:   map[string]struct{}{},
	}, nil
}

// Toggle opens a collapsed item or collapses an open one. Under
// SingleOpen, opening an item collapses whichever item was open.
// Toggling an id that is not in the group panics.
func (g *Group) Toggle(id string) {
	if !g.Has(id) {
		panic(fmt.Sprintf("accordion: toggle of unknown item %q", id))
	}

	if _, ok := g.open[id]; ok {
		delete(g.open, id)
		return
	}
	if g.policy == SingleOpen {
		clear(g.open)
	}
	g.open[id] = struct{}{}
}

func (g *Group) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

func (g *Group) IsOpen(id string) bool {
	_, ok := g.open[id]
	return ok
}

// Open returns the open ids in item order.
func (g *Group) Open() []string {
	ids := make([]string, 0, len(g.open))
	for _, it := range g.items {
		if g.IsOpen(it.ID) {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

func (g *Group) Items() []Item {
	return append([]Item(nil), g.items...)
}

func (g *Group) Policy() Policy {
	return g.policy
}
