package element

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"time"
)

var (
	ErrUnimplemented = errors.New("element cannot perform requests")
	ErrNoTransport   = errors.New("element has no transport")
	ErrNilElement    = errors.New("nil element")
)

func Bool(v bool) *bool {
	return &v
}

// Options configure a single submission.
type Options struct {
	// Parameters is always replaced by a snapshot of the element inputs.
	Parameters *Inputs
	// FollowRedirects defaults to true when nil.
	FollowRedirects *bool
	// Auditor is attached to the element if it has none yet.
	Auditor Auditor
	// Performer is always set to the submitted element.
	Performer Element

	Headers map[string]string
	Cookies map[string]string
	Timeout time.Duration
}

// Clone returns a copy of o that shares no maps or pointers with it.
func (o Options) Clone() Options {
	c := o
	if o.Parameters != nil {
		c.Parameters = o.Parameters.Clone()
	}
	if o.FollowRedirects != nil {
		c.FollowRedirects = Bool(*o.FollowRedirects)
	}
	c.Headers = maps.Clone(o.Headers)
	c.Cookies = maps.Clone(o.Cookies)
	return c
}

// Request is the transport agnostic description of an outgoing request.
type Request struct {
	Verb    string
	URL     string
	Query   url.Values
	Form    url.Values
	Headers map[string]string
	Cookies map[string]string

	FollowRedirects bool
	Timeout         time.Duration

	Performer Element
	Auditor   Auditor
}

// NewRequest builds a request for opts.Performer from submission options.
// Executors fill in where the parameters travel.
func NewRequest(opts Options) *Request {
	req := &Request{
		Verb:            http.MethodGet,
		Headers:         maps.Clone(opts.Headers),
		Cookies:         maps.Clone(opts.Cookies),
		FollowRedirects: opts.FollowRedirects == nil || *opts.FollowRedirects,
		Timeout:         opts.Timeout,
		Performer:       opts.Performer,
		Auditor:         opts.Auditor,
	}
	if req.Headers == nil {
		req.Headers = map[string]string{}
	}
	if req.Cookies == nil {
		req.Cookies = map[string]string{}
	}
	if opts.Performer != nil {
		req.URL = opts.Performer.Action()
		req.Verb = opts.Performer.Method().Verb()
	}
	return req
}

// setQuery sends params in the query string. A query already present in the
// request url is merged in and params win, so no name travels twice.
func setQuery(req *Request, params url.Values) {
	u, err := url.Parse(req.URL)
	if err != nil || u.RawQuery == "" {
		req.Query = params
		return
	}
	query := u.Query()
	for name, values := range params {
		query[name] = values
	}
	u.RawQuery = ""
	u.ForceQuery = false
	req.URL = u.String()
	req.Query = query
}

type Response struct {
	Request    *Request
	StatusCode int
	// URL is the effective url, after redirects.
	URL      string
	Header   http.Header
	Body     []byte
	Duration time.Duration
}

// ResponseFunc receives the outcome of a submission, it is called at most
// once.
type ResponseFunc func(res *Response, err error)

// Handle tracks an in-flight request.
type Handle interface {
	ID() string
	Request() *Request
	Done() <-chan struct{}
	Wait() (*Response, error)
	Cancel()
}

// Transport performs requests, it must return immediately and report the
// outcome through onResponse.
type Transport interface {
	Do(ctx context.Context, req *Request, onResponse ResponseFunc) (Handle, error)
}

// Executor is the kind specific part of a submission.
type Executor interface {
	Execute(ctx context.Context, opts Options, onResponse ResponseFunc) (Handle, error)
}

// Submit sends e to its action with its current inputs.
//
//  1. opts is copied, the caller's value is never modified.
//  2. Parameters is set to a snapshot of the inputs.
//  3. FollowRedirects defaults to true.
//  4. opts.Auditor is attached to e unless e already has one, the request
//     then carries the attached auditor.
//  5. Performer is set to e.
//  6. the request is handed to e's Executor.
//
// Elements that do not implement Executor fail with ErrUnimplemented.
func Submit(ctx context.Context, e Element, opts Options, onResponse ResponseFunc) (Handle, error) {
	b := baseOf(e)
	if b == nil {
		return nil, ErrNilElement
	}

	opts = opts.Clone()
	opts.Parameters = b.Inputs()
	if opts.FollowRedirects == nil {
		opts.FollowRedirects = Bool(true)
	}
	if b.auditor == nil && opts.Auditor != nil {
		b.auditor = opts.Auditor
	}
	opts.Auditor = b.auditor
	opts.Performer = e

	executor, ok := e.(Executor)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnimplemented, e.Kind())
	}
	return executor.Execute(ctx, opts, onResponse)
}

// Send hands req to the element transport.
func (b *Base) Send(ctx context.Context, req *Request, onResponse ResponseFunc) (Handle, error) {
	if b.transport == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrNoTransport, b.kind, b.action)
	}
	return b.transport.Do(ctx, req, onResponse)
}
