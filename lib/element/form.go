package element

import "context"

// Form inputs are sent in the query string for get forms and in an url
// encoded body for every other method.
type Form struct {
	*Base
	name string
}

func NewForm(cfg Config, name string) (*Form, error) {
	b, err := NewBase(KindForm, cfg)
	if err != nil {
		return nil, err
	}
	return &Form{Base: b, name: name}, nil
}

// Name is the form name or id attribute, it can be empty.
func (f *Form) Name() string {
	return f.name
}

func (f *Form) Dup() Element {
	return &Form{Base: f.CloneBase(), name: f.name}
}

func (f *Form) ToMap() *Mapping {
	m := f.Base.ToMap()
	if f.name != "" {
		m.Set("name", f.name)
	}
	return m
}

func (f *Form) Execute(ctx context.Context, opts Options, onResponse ResponseFunc) (Handle, error) {
	req := NewRequest(opts)
	if f.Method() == MethodGet {
		setQuery(req, opts.Parameters.Values())
	} else {
		req.Form = opts.Parameters.Values()
	}
	return f.Send(ctx, req, onResponse)
}

func (f *Form) Submit(ctx context.Context, opts Options, onResponse ResponseFunc) (Handle, error) {
	return Submit(ctx, f, opts, onResponse)
}
