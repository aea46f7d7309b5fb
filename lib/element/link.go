package element

import "context"

// Link is an anchor, its inputs travel in the query string merged over any
// query the action already has.
type Link struct {
	*Base
}

func NewLink(cfg Config) (*Link, error) {
	b, err := NewBase(KindLink, cfg)
	if err != nil {
		return nil, err
	}
	return &Link{Base: b}, nil
}

func (l *Link) Dup() Element {
	return &Link{Base: l.CloneBase()}
}

func (l *Link) Execute(ctx context.Context, opts Options, onResponse ResponseFunc) (Handle, error) {
	req := NewRequest(opts)
	setQuery(req, opts.Parameters.Values())
	return l.Send(ctx, req, onResponse)
}

func (l *Link) Submit(ctx context.Context, opts Options, onResponse ResponseFunc) (Handle, error) {
	return Submit(ctx, l, opts, onResponse)
}
