package element

import (
	"encoding/json"
	"errors"
	"testing"

	"webprobe/lib/platform"
	"webprobe/lib/urlutil"

	"github.com/stretchr/testify/require"
)

func TestActionResolution(t *testing.T) {
	testCases := []struct {
		url      string
		action   string
		expected string
	}{
		{url: "http://x.test/a/b", action: "c?q=1", expected: "http://x.test/a/c?q=1"},
		{url: "", action: "HTTP://X.test/a/../b", expected: "http://x.test/b"},
		{url: "http://x.test/a/b", action: "", expected: "http://x.test/a/b"},
		{url: "http://x.test/a/b", action: "https://y.test/z", expected: "https://y.test/z"},
		{url: "http://x.test/a/b?q=1", action: "", expected: "http://x.test/a/b?q=1"},
	}

	for _, test := range testCases {
		link, err := NewLink(Config{URL: test.url, Action: test.action})
		require.NoError(t, err)
		require.Equal(t, test.expected, link.Action())
	}
}

func TestActionDefaultsToUrl(t *testing.T) {
	link, err := NewLink(Config{URL: "http://x.test/page"})
	require.NoError(t, err)
	require.Equal(t, "http://x.test/page", link.Action())
	require.Equal(t, MethodGet, link.Method())
}

func TestSetActionKeepsPreviousOnError(t *testing.T) {
	link, err := NewLink(Config{Action: "http://x.test/a"})
	require.NoError(t, err)

	err = link.SetAction("relative/only")
	require.ErrorIs(t, err, urlutil.ErrNotAbsolute)
	require.Equal(t, "http://x.test/a", link.Action())

	err = link.SetAction("http://x.test/%zz")
	require.Error(t, err)
	require.Equal(t, "http://x.test/a", link.Action())

	require.NoError(t, link.SetAction("HTTP://X.test/b/./c"))
	require.Equal(t, "http://x.test/b/c", link.Action())
}

func TestConstructionRequiresAbsoluteAction(t *testing.T) {
	_, err := NewLink(Config{})
	require.ErrorIs(t, err, urlutil.ErrNotAbsolute)
}

func TestActionURLIsIndependent(t *testing.T) {
	link, err := NewLink(Config{Action: "http://x.test/a"})
	require.NoError(t, err)

	u := link.ActionURL()
	u.Path = "/mutated"
	require.Equal(t, "http://x.test/a", link.Action())
	require.Equal(t, "/a", link.ActionURL().Path)
}

type stubResolver struct {
	calls []string
}

func (r *stubResolver) Resolve(ref, base string) (string, error) {
	r.calls = append(r.calls, "resolve:"+ref+":"+base)
	return "http://stub.test/resolved", nil
}

func (r *stubResolver) Normalize(raw string) (string, error) {
	r.calls = append(r.calls, "normalize:"+raw)
	if raw == "bad" {
		return "", errors.New("bad uri")
	}
	return "http://stub.test/normalized", nil
}

func TestResolverIsInjected(t *testing.T) {
	resolver := &stubResolver{}

	link, err := NewLink(Config{URL: "http://x.test/", Action: "a", Resolver: resolver})
	require.NoError(t, err)
	require.Equal(t, "http://stub.test/resolved", link.Action())

	link, err = NewLink(Config{Action: "a", Resolver: resolver})
	require.NoError(t, err)
	require.Equal(t, "http://stub.test/normalized", link.Action())

	_, err = NewLink(Config{Action: "bad", Resolver: resolver})
	require.EqualError(t, err, "bad uri")

	require.Equal(t, []string{
		"resolve:a:http://x.test/",
		"normalize:a",
		"normalize:bad",
	}, resolver.calls)
}

func TestMethodNormalization(t *testing.T) {
	link, err := NewLink(Config{Action: "http://x.test/"})
	require.NoError(t, err)

	var stored []Method
	for _, raw := range []Method{"POST", "post", MethodPost, ParseMethod("PoSt")} {
		link.SetMethod(raw)
		stored = append(stored, link.Method())
	}
	require.Equal(t, []Method{MethodPost, MethodPost, MethodPost, MethodPost}, stored)

	link.SetMethod("PATCH")
	require.Equal(t, Method("patch"), link.Method())
	require.Equal(t, "PATCH", link.Method().Verb())

	form, err := NewForm(Config{Action: "http://x.test/", Method: "POST"}, "login")
	require.NoError(t, err)
	require.Equal(t, MethodPost, form.Method())
}

func TestMethodVerb(t *testing.T) {
	require.Equal(t, "GET", MethodGet.Verb())
	require.Equal(t, "POST", MethodPost.Verb())
	require.Equal(t, "GET", MethodCookie.Verb())
	require.Equal(t, "GET", MethodHeader.Verb())
	require.Equal(t, "GET", Method("").Verb())
}

func TestKindDefaults(t *testing.T) {
	cookie, err := NewCookie(Config{Action: "http://x.test/"})
	require.NoError(t, err)
	require.Equal(t, KindCookie, cookie.Kind())
	require.Equal(t, MethodCookie, cookie.Method())

	header, err := NewHeader(Config{Action: "http://x.test/"})
	require.NoError(t, err)
	require.Equal(t, KindHeader, header.Kind())
	require.Equal(t, MethodHeader, header.Method())
}

func TestInputsAreCopied(t *testing.T) {
	link, err := NewLink(Config{
		Action: "http://x.test/",
		Inputs: []Pair{{Name: "q", Value: "1"}},
	})
	require.NoError(t, err)

	in := link.Inputs()
	in.Set("q", "mutated")
	in.Set("extra", "x")

	value, _ := link.Inputs().Get("q")
	require.Equal(t, "1", value)
	require.Equal(t, 1, link.Inputs().Len())

	link.SetInputs(in)
	in.Set("q", "after")
	value, _ = link.Inputs().Get("q")
	require.Equal(t, "mutated", value)
}

type stubLookup map[string]platform.Set

func (l stubLookup) Lookup(url string) platform.Set {
	return l[url]
}

func TestPlatforms(t *testing.T) {
	lookup := stubLookup{"http://x.test/a.php": platform.NewSet(platform.PHP)}

	link, err := NewLink(Config{URL: "http://x.test/", Action: "a.php", Platforms: lookup})
	require.NoError(t, err)
	require.Equal(t, platform.Set{platform.PHP}, link.Platforms())

	require.NoError(t, link.SetAction("b.asp"))
	require.Empty(t, link.Platforms())

	bare, err := NewLink(Config{Action: "http://x.test/a.php"})
	require.NoError(t, err)
	require.Empty(t, bare.Platforms())
}

func TestToMap(t *testing.T) {
	form, err := NewForm(Config{
		URL:    "http://x.test/login",
		Action: "/session",
		Method: "POST",
		Inputs: []Pair{{Name: "user", Value: "admin"}},
	}, "login")
	require.NoError(t, err)

	m := form.ToMap()
	require.Equal(t, []string{"type", "url", "action", "method", "name"}, m.Keys())

	encoded, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type": "form",
		"url": "http://x.test/login",
		"action": "http://x.test/session",
		"method": "post",
		"name": "login"
	}`, string(encoded))
	require.Equal(
		t,
		`{"type":"form","url":"http://x.test/login","action":"http://x.test/session","method":"post","name":"login"}`,
		string(encoded),
	)

	_, hasInputs := m.Get("inputs")
	require.False(t, hasInputs)

	link, err := NewLink(Config{Action: "http://x.test/"})
	require.NoError(t, err)
	require.Equal(t, []string{"type", "url", "action", "method"}, link.ToMap().Keys())
}

func TestInputsMapping(t *testing.T) {
	in := NewInputs(Pair{"b", "2"}, Pair{"a", "1"}, Pair{"b", "3"})
	require.Equal(t, []string{"b", "a"}, in.Names())
	require.Equal(t, map[string]string{"a": "1", "b": "3"}, in.Map())

	in.Delete("b")
	require.Equal(t, []Pair{{"a", "1"}}, in.Pairs())
	in.Delete("missing")
	require.Equal(t, 1, in.Len())

	fromMap := InputsFromMap(map[string]string{"z": "26", "a": "1"})
	require.Equal(t, []string{"a", "z"}, fromMap.Names())

	var empty *Inputs
	require.Equal(t, 0, empty.Len())
	require.NotNil(t, empty.Clone())
	require.True(t, empty.Equal(NewInputs()))
}
