package commands

import (
	"fmt"
	"strings"
	"time"

	"webprobe/lib/element"

	"github.com/jedib0t/go-pretty/v6/table"
)

func parseParams(raw []string) ([]element.Pair, error) {
	pairs := make([]element.Pair, 0, len(raw))
	for _, p := range raw {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter '%s' is not in the form name=value", p)
		}
		pairs = append(pairs, element.Pair{Name: name, Value: value})
	}
	return pairs, nil
}

func buildElement(kind element.Kind, cfg element.Config, formName string) (element.Element, error) {
	switch kind {
	case element.KindLink:
		return element.NewLink(cfg)
	case element.KindForm:
		return element.NewForm(cfg, formName)
	case element.KindCookie:
		return element.NewCookie(cfg)
	case element.KindHeader:
		return element.NewHeader(cfg)
	}
	return nil, fmt.Errorf("unknown element kind '%s'", kind)
}

func inputNames(e element.Element) string {
	return strings.Join(e.Inputs().Names(), ", ")
}

func responseTable(e element.Element, h element.Handle, res *element.Response) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRows([]table.Row{
		{"Request", h.ID()},
		{"Kind", e.Kind()},
		{"Identity", e.IdentityKey()},
		{"Verb", h.Request().Verb},
		{"Action", e.Action()},
		{"Inputs", inputNames(e)},
		{"Status", res.StatusCode},
		{"URL", res.URL},
		{"Duration", res.Duration.Round(time.Millisecond)},
		{"Body", fmt.Sprintf("%d bytes", len(res.Body))},
		{"Platforms", strings.Join(e.Platforms().Strings(), ", ")},
	})
	t.SetStyle(table.StyleRounded)
	return t
}
