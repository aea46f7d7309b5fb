package element

import "context"

// Cookie inputs are sent as request cookies to the action.
type Cookie struct {
	*Base
}

// NewCookie defaults the method to MethodCookie.
func NewCookie(cfg Config) (*Cookie, error) {
	if cfg.Method == "" {
		cfg.Method = MethodCookie
	}
	b, err := NewBase(KindCookie, cfg)
	if err != nil {
		return nil, err
	}
	return &Cookie{Base: b}, nil
}

func (c *Cookie) Dup() Element {
	return &Cookie{Base: c.CloneBase()}
}

func (c *Cookie) Execute(ctx context.Context, opts Options, onResponse ResponseFunc) (Handle, error) {
	req := NewRequest(opts)
	opts.Parameters.Each(func(name, value string) bool {
		req.Cookies[name] = value
		return true
	})
	return c.Send(ctx, req, onResponse)
}

func (c *Cookie) Submit(ctx context.Context, opts Options, onResponse ResponseFunc) (Handle, error) {
	return Submit(ctx, c, opts, onResponse)
}
