// Package discover turns fetched pages into submittable elements.
package discover

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"webprobe/lib/element"
	"webprobe/lib/htmlutil"
	"webprobe/lib/urlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("webprobe/lib/discover")

// Options are passed on to every discovered element.
type Options struct {
	Resolver  element.URIResolver
	Platforms element.PlatformLookup
	Transport element.Transport
}

func (o Options) config(pageUrl string) element.Config {
	return element.Config{
		URL:       pageUrl,
		Resolver:  o.Resolver,
		Platforms: o.Platforms,
		Transport: o.Transport,
	}
}

func isHttp(rawUrl string) bool {
	u, err := url.Parse(rawUrl)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func links(ctx context.Context, pageUrl string, doc *goquery.Document, opts Options) []element.Element {
	var out []element.Element
	for _, anchor := range htmlutil.Anchors(ctx, doc.Find("a[href]")) {
		resolved, err := urlutil.Resolve(anchor.Href, pageUrl)
		if err != nil || !isHttp(resolved) {
			continue
		}
		action, query, err := urlutil.StripQuery(resolved)
		if err != nil {
			continue
		}

		cfg := opts.config(pageUrl)
		cfg.Action = action
		cfg.Inputs = element.InputsFromValues(query).Pairs()
		link, err := element.NewLink(cfg)
		if err != nil {
			slog.DebugContext(ctx, "skipping link", "href", anchor.Href, "err", err)
			continue
		}
		out = append(out, link)
	}
	return out
}

func forms(ctx context.Context, pageUrl string, doc *goquery.Document, opts Options) []element.Element {
	var out []element.Element
	for _, f := range htmlutil.Forms(ctx, doc.Find("form")) {
		cfg := opts.config(pageUrl)
		cfg.Action = f.Action
		cfg.Method = element.ParseMethod(f.Method)
		for _, field := range f.Fields {
			cfg.Inputs = append(cfg.Inputs, element.Pair{Name: field.Name, Value: field.Value})
		}

		form, err := element.NewForm(cfg, f.Name)
		if err != nil || !isHttp(form.Action()) {
			slog.DebugContext(ctx, "skipping form", "action", f.Action, "err", err)
			continue
		}
		out = append(out, form)
	}
	return out
}

// FromHTML extracts a link per anchor with an http(s) target, a form per
// form element and a header element for pageUrl itself.
func FromHTML(ctx context.Context, pageUrl string, body []byte, opts Options) ([]element.Element, error) {
	ctx, span := tracer.Start(ctx, "FromHTML")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, err
	}

	elements := links(ctx, pageUrl, doc, opts)
	elements = append(elements, forms(ctx, pageUrl, doc, opts)...)

	cfg := opts.config(pageUrl)
	cfg.Inputs = []element.Pair{{Name: "Referer", Value: pageUrl}}
	header, err := element.NewHeader(cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid page url")
		return nil, err
	}
	elements = append(elements, header)

	span.SetAttributes(attribute.Int("elements", len(elements)))
	return elements, nil
}

// Cookies returns a cookie element for every Set-Cookie header.
func Cookies(pageUrl string, headers http.Header, opts Options) ([]element.Element, error) {
	res := http.Response{Header: headers}
	var out []element.Element
	for _, c := range res.Cookies() {
		cfg := opts.config(pageUrl)
		cfg.Inputs = []element.Pair{{Name: c.Name, Value: c.Value}}
		cookie, err := element.NewCookie(cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, cookie)
	}
	return out, nil
}

// FromResponse extracts the elements of a fetched page, relative references
// resolve against the effective url.
func FromResponse(ctx context.Context, res *element.Response, opts Options) ([]element.Element, error) {
	elements, err := FromHTML(ctx, res.URL, res.Body, opts)
	if err != nil {
		return nil, err
	}
	cookies, err := Cookies(res.URL, res.Header, opts)
	if err != nil {
		return nil, err
	}
	return append(elements, cookies...), nil
}
