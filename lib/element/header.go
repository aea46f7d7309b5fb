package element

import "context"

// Header inputs are sent as request headers to the action.
type Header struct {
	*Base
}

// NewHeader defaults the method to MethodHeader.
func NewHeader(cfg Config) (*Header, error) {
	if cfg.Method == "" {
		cfg.Method = MethodHeader
	}
	b, err := NewBase(KindHeader, cfg)
	if err != nil {
		return nil, err
	}
	return &Header{Base: b}, nil
}

func (h *Header) Dup() Element {
	return &Header{Base: h.CloneBase()}
}

func (h *Header) Execute(ctx context.Context, opts Options, onResponse ResponseFunc) (Handle, error) {
	req := NewRequest(opts)
	opts.Parameters.Each(func(name, value string) bool {
		req.Headers[name] = value
		return true
	})
	return h.Send(ctx, req, onResponse)
}

func (h *Header) Submit(ctx context.Context, opts Options, onResponse ResponseFunc) (Handle, error) {
	return Submit(ctx, h, opts, onResponse)
}
