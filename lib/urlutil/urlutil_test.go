package urlutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		ref      string
		base     string
		expected string
	}{
		{ref: "c?q=1", base: "http://x.test/a/b", expected: "http://x.test/a/c?q=1"},
		{ref: "/root", base: "http://x.test/a/b", expected: "http://x.test/root"},
		{ref: "?q=2", base: "http://x.test/a/b?q=1", expected: "http://x.test/a/b?q=2"},
		{ref: "../up", base: "http://x.test/a/b/c", expected: "http://x.test/a/up"},
		{ref: "", base: "http://x.test/a/b#frag", expected: "http://x.test/a/b"},
		{ref: "https://other.test/x", base: "http://x.test/a/b", expected: "https://other.test/x"},
		{ref: "//cdn.test/lib.js", base: "https://x.test/", expected: "https://cdn.test/lib.js"},
		{ref: "c", base: "HTTP://X.TEST:80/a/b", expected: "http://x.test/a/c"},
	}

	for _, test := range testCases {
		resolved, err := Resolve(test.ref, test.base)
		require.NoError(t, err, test.ref)
		require.Equal(t, test.expected, resolved, test.ref)
	}
}

func TestResolveRelativeBase(t *testing.T) {
	_, err := Resolve("c", "/a/b")
	require.True(t, errors.Is(err, ErrNotAbsolute))
}

func TestNormalize(t *testing.T) {
	testCases := []struct {
		raw      string
		expected string
	}{
		{raw: "HTTP://X.test/a/../b", expected: "http://x.test/b"},
		{raw: "http://x.test:80/./a/", expected: "http://x.test/a/"},
		{raw: "https://x.test:443/p#section", expected: "https://x.test/p"},
		{raw: "http://x.test/a?b=2&a=1", expected: "http://x.test/a?b=2&a=1"},
	}

	for _, test := range testCases {
		normalized, err := Normalize(test.raw)
		require.NoError(t, err, test.raw)
		require.Equal(t, test.expected, normalized, test.raw)
	}
}

func TestNormalizeErrors(t *testing.T) {
	_, err := Normalize("")
	require.ErrorIs(t, err, ErrNotAbsolute)

	_, err = Normalize("just/a/path")
	require.ErrorIs(t, err, ErrNotAbsolute)

	_, err = Normalize("http://x.test/%zz")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotAbsolute))
}

func TestStripQuery(t *testing.T) {
	stripped, query, err := StripQuery("http://X.test/a?b=2&a=1#top")
	require.NoError(t, err)
	require.Equal(t, "http://x.test/a", stripped)
	require.Equal(t, "2", query.Get("b"))
	require.Equal(t, "1", query.Get("a"))
}
