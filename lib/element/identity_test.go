package element

import (
	"testing"

	"github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
)

func mustLink(t testing.TB, action string, pairs ...Pair) *Link {
	link, err := NewLink(Config{Action: action, Inputs: pairs})
	if err != nil {
		t.Fatal(err)
	}
	return link
}

func TestEqualIgnoresObjectIdentity(t *testing.T) {
	a := mustLink(t, "http://x.test/a", Pair{"q", "1"})
	b := mustLink(t, "HTTP://x.test/a", Pair{"q", "1"})

	require.NotSame(t, a, b)
	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))
	require.Equal(t, a.IdentityKey(), b.IdentityKey())
	require.Equal(t, a.Hash(), b.Hash())
}

func TestEqualIgnoresInputOrder(t *testing.T) {
	a := mustLink(t, "http://x.test/a", Pair{"a", "1"}, Pair{"b", "2"})
	b := mustLink(t, "http://x.test/a", Pair{"b", "2"}, Pair{"a", "1"})

	require.True(t, a.Equal(b))
	require.Equal(t, a.IdentityKey(), b.IdentityKey())
	require.Equal(t, a.Hash(), b.Hash())
}

func TestEqualComponents(t *testing.T) {
	reference := mustLink(t, "http://x.test/a", Pair{"q", "1"})

	otherAction := mustLink(t, "http://x.test/b", Pair{"q", "1"})
	otherValue := mustLink(t, "http://x.test/a", Pair{"q", "2"})
	otherName := mustLink(t, "http://x.test/a", Pair{"p", "1"})
	extraInput := mustLink(t, "http://x.test/a", Pair{"q", "1"}, Pair{"p", ""})
	otherMethod := mustLink(t, "http://x.test/a", Pair{"q", "1"})
	otherMethod.SetMethod(MethodPost)

	otherKind, err := NewForm(Config{
		Action: "http://x.test/a",
		Inputs: []Pair{{"q", "1"}},
	}, "")
	require.NoError(t, err)

	for _, other := range []Element{otherAction, otherValue, otherName, extraInput, otherMethod, otherKind} {
		require.False(t, reference.Equal(other), other.ToMap())
		require.NotEqual(t, reference.IdentityKey(), other.IdentityKey(), other.ToMap())
	}

	require.False(t, reference.Equal(nil))
	require.False(t, reference.Equal((*Link)(nil)))
	require.False(t, reference.Equal((*Form)(nil)))
	require.False(t, reference.Equal(&Link{}))
}

func TestLengthPrefixedFields(t *testing.T) {
	a := mustLink(t, "http://x.test/a", Pair{"ab", "c"})
	b := mustLink(t, "http://x.test/a", Pair{"a", "bc"})
	require.NotEqual(t, a.IdentityKey(), b.IdentityKey())
}

func TestIdentityKeyTracksInputs(t *testing.T) {
	link := mustLink(t, "http://x.test/a", Pair{"q", "1"})
	before := link.IdentityKey()
	require.Equal(t, before, link.IdentityKey())

	link.SetInput("q", "2")
	require.NotEqual(t, before, link.IdentityKey())

	link.SetInput("q", "1")
	require.Equal(t, before, link.IdentityKey())
}

func TestDupEqualsOriginal(t *testing.T) {
	form, err := NewForm(Config{
		URL:    "http://x.test/login",
		Action: "session",
		Method: "POST",
		Inputs: []Pair{{"user", "admin"}, {"pass", "x"}},
	}, "login")
	require.NoError(t, err)

	dup := form.Dup()
	require.True(t, dup.Equal(form))
	require.Equal(t, form.IdentityKey(), dup.IdentityKey())
	require.Equal(t, form.Action(), dup.Action())
	require.Equal(t, form.Method(), dup.Method())
	require.Equal(t, "login", dup.(*Form).Name())

	dup.(*Form).SetInput("user", "guest")
	require.False(t, dup.Equal(form))
	value, _ := form.Inputs().Get("user")
	require.Equal(t, "admin", value)

	dup.(*Form).SetMethod(MethodGet)
	require.Equal(t, MethodPost, form.Method())
}

func TestDupEveryKind(t *testing.T) {
	cfg := Config{Action: "http://x.test/", Inputs: []Pair{{"n", "v"}}}

	link, err := NewLink(cfg)
	require.NoError(t, err)
	cookie, err := NewCookie(cfg)
	require.NoError(t, err)
	header, err := NewHeader(cfg)
	require.NoError(t, err)

	for _, e := range []Element{link, cookie, header} {
		dup := e.Dup()
		require.Equal(t, e.Kind(), dup.Kind())
		require.True(t, dup.Equal(e))
		require.Equal(t, e.Hash(), dup.Hash())
	}
}

func randomPairs(t testing.TB, n int) []Pair {
	pairs := make([]Pair, n)
	for i := range pairs {
		name, err := random.String(8)
		require.NoError(t, err)
		value, err := random.String(12)
		require.NoError(t, err)
		pairs[i] = Pair{Name: name, Value: value}
	}
	return pairs
}

func TestEqualImpliesSameHash(t *testing.T) {
	for i := 0; i < 50; i++ {
		pairs := randomPairs(t, i%6)

		reversed := make([]Pair, len(pairs))
		for j, p := range pairs {
			reversed[len(pairs)-1-j] = p
		}

		a := mustLink(t, "http://x.test/a", pairs...)
		b := mustLink(t, "http://x.test/a", reversed...)
		require.True(t, a.Equal(b))
		require.Equal(t, a.Hash(), b.Hash())

		c := a.Dup()
		c.(*Link).SetInput("extra", "1")
		require.False(t, a.Equal(c))
		require.NotEqual(t, a.Hash(), c.Hash())
	}
}
