package urlutil

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/PuerkitoBio/purell"
)

var ErrNotAbsolute = errors.New("url is not absolute")

// lowercases scheme and host, drops default ports, fixes escapes, removes
// "." / ".." path segments and the fragment.
// query parameter order is left alone, it is significant to some targets.
const normalizeFlags = purell.FlagsSafe | purell.FlagRemoveDotSegments | purell.FlagRemoveFragment

func normalize(u *url.URL) (string, error) {
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrNotAbsolute, u.String())
	}
	return purell.NormalizeURL(u, normalizeFlags), nil
}

// Normalize parses raw and returns its canonical absolute form.
func Normalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	return normalize(u)
}

// Resolve resolves ref against base (RFC 3986 section 5) and normalizes the
// result, an absolute ref is returned as is (modulo normalization).
func Resolve(ref, base string) (string, error) {
	baseUrl, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if !baseUrl.IsAbs() || baseUrl.Host == "" {
		return "", fmt.Errorf("%w: base %q", ErrNotAbsolute, base)
	}
	refUrl, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return normalize(baseUrl.ResolveReference(refUrl))
}

// StripQuery returns the normalized form of raw without its query string
// and fragment, along with the parsed query.
func StripQuery(raw string) (string, url.Values, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", nil, err
	}
	query := u.Query()
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	stripped, err := normalize(u)
	if err != nil {
		return "", nil, err
	}
	return stripped, query, nil
}

// Resolver is the default URI resolver used by elements.
type Resolver struct{}

func (Resolver) Resolve(ref, base string) (string, error) {
	return Resolve(ref, base)
}

func (Resolver) Normalize(raw string) (string, error) {
	return Normalize(raw)
}
