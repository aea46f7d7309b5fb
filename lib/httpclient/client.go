package httpclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"webprobe/lib/element"
	"webprobe/lib/platform"
	"webprobe/lib/restyutil"
	"webprobe/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("webprobe/lib/httpclient")

var ErrInvalidRequest = errors.New("invalid request")

// Client is an element.Transport backed by resty. Requests that must not
// follow redirects go through a separate client sharing the same cookie jar.
type Client struct {
	follow    *resty.Client
	noFollow  *resty.Client
	platforms *platform.Registry
}

func newResty(cfg Config, jar http.CookieJar) *resty.Client {
	client := resty.New()
	client.SetCookieJar(jar)
	if cfg.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	client.SetHeader("user-agent", cfg.userAgent())
	client.SetHeaders(cfg.Headers)
	client.SetTimeout(cfg.timeout())

	telemetry.InstrumentResty(client, "webprobe/lib/httpclient/http")
	return client
}

func New(cfg Config) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	var output restyutil.InstrumentOutput
	if cfg.DumpDir != "" {
		fsOutput, err := restyutil.NewFilesystemOutput(cfg.DumpDir)
		if err != nil {
			return nil, fmt.Errorf("prepare dump dir: %w", err)
		}
		output = fsOutput
	}

	follow := newResty(cfg, jar)
	follow.SetRedirectPolicy(resty.FlexibleRedirectPolicy(cfg.maxRedirects()))

	noFollow := newResty(cfg, jar)
	noFollow.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	restyutil.InstrumentClients(output, follow, noFollow)

	return &Client{
		follow:    follow,
		noFollow:  noFollow,
		platforms: cfg.Platforms,
	}, nil
}

func validate(req *element.Request) error {
	if req == nil {
		return fmt.Errorf("%w: nil", ErrInvalidRequest)
	}
	if req.Verb == "" {
		return fmt.Errorf("%w: missing verb", ErrInvalidRequest)
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w: url '%s' is not absolute", ErrInvalidRequest, req.URL)
	}
	return nil
}

func performerKind(req *element.Request) string {
	if req.Performer == nil {
		return ""
	}
	return string(req.Performer.Kind())
}

// Do validates req and performs it on a new goroutine, onResponse (which may
// be nil) is called exactly once before the handle is marked as done.
func (c *Client) Do(ctx context.Context, req *element.Request, onResponse element.ResponseFunc) (element.Handle, error) {
	err := validate(req)
	if err != nil {
		return nil, err
	}
	id, err := random.String(16)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	if req.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, req.Timeout)
		parent := cancel
		cancel = func() {
			cancelTimeout()
			parent()
		}
	}

	h := &handle{
		id:     id,
		req:    req,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	slog.DebugContext(
		ctx, "submitting request",
		"method", req.Verb,
		"url", req.URL,
		"request_id", id,
		"performer", performerKind(req),
	)

	go func() {
		defer cancel()
		res, err := c.perform(ctx, id, req)
		h.finish(res, err, onResponse)
	}()

	return h, nil
}

func (c *Client) perform(ctx context.Context, id string, req *element.Request) (*element.Response, error) {
	ctx, span := tracer.Start(ctx, "Do")
	defer span.End()

	span.SetAttributes(
		attribute.String("request_id", id),
		attribute.String("performer", performerKind(req)),
	)

	client := c.follow
	if !req.FollowRedirects {
		client = c.noFollow
	}

	r := client.R().
		SetContext(ctx).
		SetHeaders(req.Headers).
		SetQueryParamsFromValues(req.Query)
	if len(req.Form) > 0 {
		r.SetFormDataFromValues(req.Form)
	}
	for name, value := range req.Cookies {
		r.SetCookie(&http.Cookie{Name: name, Value: value})
	}

	start := time.Now()
	res, err := r.Execute(req.Verb, req.URL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		slog.WarnContext(
			ctx, "request failed",
			"method", req.Verb,
			"url", req.URL,
			"request_id", id,
			"err", err,
		)
		return nil, err
	}

	effectiveUrl := req.URL
	if res.RawResponse != nil && res.RawResponse.Request != nil {
		effectiveUrl = res.RawResponse.Request.URL.String()
	}
	if c.platforms != nil {
		c.platforms.Observe(effectiveUrl, res.Header())
	}

	span.SetAttributes(attribute.Int("status", res.StatusCode()))
	slog.DebugContext(
		ctx, "request done",
		"method", req.Verb,
		"url", effectiveUrl,
		"status", res.StatusCode(),
		"request_id", id,
	)

	return &element.Response{
		Request:    req,
		StatusCode: res.StatusCode(),
		URL:        effectiveUrl,
		Header:     res.Header().Clone(),
		Body:       res.Body(),
		Duration:   time.Since(start),
	}, nil
}
