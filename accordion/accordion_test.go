package accordion_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/saritsop/portfolio/accordion"
)

func items(ids ...string) []accordion.Item {
	out := make([]accordion.Item, len(ids))
	for i, id := range ids {
		out[i] = accordion.Item{ID: id, Year: "2024", Organization: "Org " + id, Role: "Designer"}
	}
	return out
}

func newGroup(t *testing.T, p accordion.Policy, ids ...string) *accordion.Group {
	t.Helper()
	g, err := accordion.New(p, items(ids...))
	gt.NoError(t, err).Required()
	return g
}

func TestToggleOpensAndCloses(t *testing.T) {
	for _, p := range []accordion.Policy{accordion.MultiOpen, accordion.SingleOpen} {
		t.Run(p.String(), func(t *testing.T) {
			g := newGroup(t, p, "exp-1", "exp-2", "exp-3")
			gt.Equal(t, g.Open(), []string{})

			g.Toggle("exp-2")
			gt.Equal(t, g.Open(), []string{"exp-2"})
			gt.True(t, g.IsOpen("exp-2"))

			g.Toggle("exp-2")
			gt.Equal(t, g.Open(), []string{})
			gt.False(t, g.IsOpen("exp-2"))
		})
	}
}

func TestMultiOpenParity(t *testing.T) {
	ids := []string{"exp-1", "exp-2", "exp-3", "exp-4", "exp-5"}
	g := newGroup(t, accordion.MultiOpen, ids...)
	counts := map[string]int{}

	rng := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		id := ids[rng.IntN(len(ids))]
		g.Toggle(id)
		counts[id]++

		for _, id := range ids {
			gt.Equal(t, g.IsOpen(id), counts[id]%2 == 1)
		}
	}
}

func TestMultiOpenKeepsOthersOpen(t *testing.T) {
	g := newGroup(t, accordion.MultiOpen, "exp-1", "exp-2", "exp-3")
	g.Toggle("exp-3")
	g.Toggle("exp-1")
	gt.Equal(t, g.Open(), []string{"exp-1", "exp-3"})
}

func TestSingleOpenReplaces(t *testing.T) {
	g := newGroup(t, accordion.SingleOpen, "exp-1", "exp-2", "exp-3")
	g.Toggle("exp-1")
	g.Toggle("exp-3")
	gt.Equal(t, g.Open(), []string{"exp-3"})
	gt.False(t, g.IsOpen("exp-1"))

	g.Toggle("exp-3")
	gt.Equal(t, g.Open(), []string{})
}

func TestToggleUnknownPanics(t *testing.T) {
	g := newGroup(t, accordion.MultiOpen, "exp-1")
	defer func() {
		gt.V(t, recover()).NotNil()
	}()
	g.Toggle("exp-9")
}

func TestNewRejectsBadItems(t *testing.T) {
	_, err := accordion.New(accordion.MultiOpen, items("exp-1", "exp-1"))
	gt.True(t, errors.Is(err, accordion.ErrDuplicateID))

	_, err = accordion.New(accordion.MultiOpen, items("exp-1", ""))
	gt.True(t, errors.Is(err, accordion.ErrEmptyID))
}

func TestItemsAreCopied(t *testing.T) {
	src := items("exp-1", "exp-2")
	g, err := accordion.New(accordion.SingleOpen, src)
	gt.NoError(t, err).Required()

	src[0].ID = "changed"
	got := g.Items()
	gt.Equal(t, got[0].ID, "exp-1")
	got[1].ID = "changed"
	gt.True(t, g.Has("exp-2"))
	gt.Equal(t, g.Policy(), accordion.SingleOpen)
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]accordion.Policy{
		"":            accordion.MultiOpen,
		"multi":       accordion.MultiOpen,
		"Single":      accordion.SingleOpen,
		"single-open": accordion.SingleOpen,
	}
	for in, want := range cases {
		got, err := accordion.ParsePolicy(in)
		gt.NoError(t, err)
		gt.Equal(t, got, want)
	}

	_, err := accordion.ParsePolicy("all")
	gt.True(t, errors.Is(err, accordion.ErrUnknownPolicy))

	var p accordion.Policy
	gt.NoError(t, p.UnmarshalText([]byte("single")))
	gt.Equal(t, p, accordion.SingleOpen)
	text, err := p.MarshalText()
	gt.NoError(t, err)
	gt.Equal(t, string(text), "single")
}
