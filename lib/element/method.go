package element

import (
	"net/http"
	"strings"
)

// Kind names a concrete element type.
type Kind string

const (
	KindLink   Kind = "link"
	KindForm   Kind = "form"
	KindCookie Kind = "cookie"
	KindHeader Kind = "header"
)

// Method is the lowercase token describing how an element is submitted.
// Besides the http verbs it can name the request part inputs travel in.
type Method string

const (
	MethodGet    Method = "get"
	MethodPost   Method = "post"
	MethodCookie Method = "cookie"
	MethodHeader Method = "header"
)

func ParseMethod(raw string) Method {
	return Method(strings.ToLower(raw))
}

// Canonical returns the lowercase form of m.
func (m Method) Canonical() Method {
	return ParseMethod(string(m))
}

func (m Method) String() string {
	return string(m)
}

// Verb returns the http verb used on the wire for m.
func (m Method) Verb() string {
	switch m.Canonical() {
	case "", MethodGet, MethodCookie, MethodHeader:
		return http.MethodGet
	}
	return strings.ToUpper(string(m))
}
