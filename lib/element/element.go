package element

import (
	"net/url"
	"reflect"

	"webprobe/lib/platform"
	"webprobe/lib/urlutil"
)

// URIResolver turns raw action values into absolute uris.
type URIResolver interface {
	Resolve(ref, base string) (string, error)
	Normalize(raw string) (string, error)
}

// PlatformLookup returns the platforms known to run behind a resource.
type PlatformLookup interface {
	Lookup(url string) platform.Set
}

// Auditor is whoever asked for an element to be submitted.
type Auditor interface {
	Name() string
}

// Element is implemented by every concrete element kind, usually by
// embedding *Base.
type Element interface {
	Kind() Kind
	URL() string
	Action() string
	Method() Method
	Inputs() *Inputs
	Auditor() Auditor
	Platforms() platform.Set

	IdentityKey() string
	Hash() uint64
	Equal(other Element) bool

	Dup() Element
	ToMap() *Mapping

	base() *Base
}

// Config holds the construction options shared by all element kinds.
type Config struct {
	// URL is the page the element was found on, it is the base for
	// relative actions and may be empty.
	URL string
	// Action defaults to URL.
	Action string
	// Method defaults to MethodGet.
	Method Method
	Inputs []Pair

	Resolver  URIResolver
	Platforms PlatformLookup
	Transport Transport
}

// Base carries the state common to all element kinds.
type Base struct {
	kind    Kind
	url     string
	action  string
	method  Method
	inputs  *Inputs
	auditor Auditor

	resolver  URIResolver
	platforms PlatformLookup
	transport Transport
}

// NewBase resolves the configured action and method for an element of the
// given kind, resolution errors are returned unchanged.
func NewBase(kind Kind, cfg Config) (*Base, error) {
	b := &Base{
		kind:      kind,
		url:       cfg.URL,
		inputs:    NewInputs(cfg.Inputs...),
		resolver:  cfg.Resolver,
		platforms: cfg.Platforms,
		transport: cfg.Transport,
	}
	if b.resolver == nil {
		b.resolver = urlutil.Resolver{}
	}

	action := cfg.Action
	if action == "" {
		action = cfg.URL
	}
	err := b.SetAction(action)
	if err != nil {
		return nil, err
	}

	method := cfg.Method
	if method == "" {
		method = MethodGet
	}
	b.SetMethod(method)

	return b, nil
}

func (b *Base) base() *Base {
	return b
}

// baseOf returns the base of e, or nil when e is nil, a typed nil or a kind
// without a base.
func baseOf(e Element) *Base {
	if e == nil {
		return nil
	}
	v := reflect.ValueOf(e)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return e.base()
}

func (b *Base) Kind() Kind {
	return b.kind
}

func (b *Base) URL() string {
	return b.url
}

func (b *Base) Action() string {
	return b.action
}

// ActionURL parses the action into a fresh *url.URL on every call.
func (b *Base) ActionURL() *url.URL {
	u, err := url.Parse(b.action)
	if err != nil {
		// actions are produced by the resolver and always parse
		panic(err)
	}
	return u
}

// SetAction resolves raw against the element url, or normalizes it when the
// element has no url. On error the previous action is kept.
func (b *Base) SetAction(raw string) error {
	var (
		action string
		err    error
	)
	if b.url != "" {
		action, err = b.resolver.Resolve(raw, b.url)
	} else {
		action, err = b.resolver.Normalize(raw)
	}
	if err != nil {
		return err
	}
	b.action = action
	return nil
}

func (b *Base) Method() Method {
	return b.method
}

func (b *Base) SetMethod(method Method) {
	b.method = method.Canonical()
}

// Inputs returns a copy of the current inputs.
func (b *Base) Inputs() *Inputs {
	return b.inputs.Clone()
}

func (b *Base) SetInputs(in *Inputs) {
	b.inputs = in.Clone()
}

func (b *Base) SetInput(name, value string) {
	b.inputs.Set(name, value)
}

func (b *Base) Auditor() Auditor {
	return b.auditor
}

func (b *Base) Transport() Transport {
	return b.transport
}

func (b *Base) SetTransport(t Transport) {
	b.transport = t
}

// Platforms returns the platforms known for the action.
func (b *Base) Platforms() platform.Set {
	if b.platforms == nil {
		return nil
	}
	return b.platforms.Lookup(b.action)
}

// CloneBase copies the generic state, kinds wrap the result in their own
// type to implement Dup.
func (b *Base) CloneBase() *Base {
	c := &Base{
		kind:      b.kind,
		url:       b.url,
		inputs:    b.inputs.Clone(),
		auditor:   b.auditor,
		resolver:  b.resolver,
		platforms: b.platforms,
		transport: b.transport,
	}
	// computed values are carried over as is, they are not re-resolved
	c.action = b.action
	c.method = b.method
	return c
}

// ToMap returns the reporting representation: type, url, action, method.
func (b *Base) ToMap() *Mapping {
	m := NewMapping()
	m.Set("type", string(b.kind))
	m.Set("url", b.url)
	m.Set("action", b.action)
	m.Set("method", string(b.method))
	return m
}
