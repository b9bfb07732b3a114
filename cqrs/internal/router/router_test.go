package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rise-and-shine/cqrskit/cqrs/internal/router"
)

type claim struct {
	name   string
	accept func(string) bool
}

func (c *claim) CanHandle(msg string) bool { return c.accept(msg) }

func always(string) bool { return true }

func TestLookup(t *testing.T) {
	first := &claim{name: "first", accept: always}
	second := &claim{name: "second", accept: always}
	picky := &claim{name: "picky", accept: func(m string) bool { return m == "special" }}
	wildcard := &claim{name: "wildcard", accept: always}

	r := router.New[string, *claim]()
	assert.True(t, r.Add("greet", picky))
	assert.True(t, r.Add("greet", first))
	assert.True(t, r.Add("greet", second))
	assert.True(t, r.Add("", wildcard))
	assert.False(t, r.Add("greet", first), "same instance twice")
	assert.Equal(t, 4, r.Len())

	tests := []struct {
		name    string
		tag     string
		msg     string
		strict  bool
		want    string
		outcome router.Outcome
	}{
		{name: "first registered capable handler wins", tag: "greet", msg: "hi", want: "first", outcome: router.Found},
		{name: "predicate narrows the choice", tag: "greet", msg: "special", want: "picky", outcome: router.Found},
		{name: "strict mode reports ambiguity", tag: "greet", msg: "hi", strict: true, want: "first", outcome: router.Ambiguous},
		{name: "wildcard serves unknown tags", tag: "other", msg: "hi", want: "wildcard", outcome: router.Found},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, outcome := r.Lookup(tc.tag, tc.msg, tc.strict)
			assert.Equal(t, tc.outcome, outcome)
			assert.Equal(t, tc.want, h.name)
		})
	}
}

func TestLookupNotFound(t *testing.T) {
	r := router.New[string, *claim]()
	r.Add("greet", &claim{accept: func(string) bool { return false }})

	_, outcome := r.Lookup("greet", "hi", false)
	assert.Equal(t, router.NotFound, outcome)

	_, outcome = r.Lookup("missing", "hi", true)
	assert.Equal(t, router.NotFound, outcome)
}

func TestWildcardYieldsToTaggedHandlers(t *testing.T) {
	wildcard := &claim{name: "wildcard", accept: always}
	tagged := &claim{name: "tagged", accept: always}

	r := router.New[string, *claim]()
	r.Add("", wildcard)
	r.Add("greet", tagged)

	h, outcome := r.Lookup("greet", "hi", false)
	assert.Equal(t, router.Found, outcome)
	assert.Equal(t, "tagged", h.name)
}
