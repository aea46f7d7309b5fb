package htmlutil

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
)

type Field struct {
	Name  string
	Value string
}

type Form struct {
	// Name is the name attribute, or the id when there is none.
	Name   string
	Action string
	// Method is lowercase, it defaults to "get".
	Method string
	Fields []Field
}

func (f *Form) setField(name, value string, replace bool) {
	for i, field := range f.Fields {
		if field.Name == name {
			if replace {
				f.Fields[i].Value = value
			}
			return
		}
	}
	f.Fields = append(f.Fields, Field{Name: name, Value: value})
}

func selectValue(sel *goquery.Selection) string {
	option := sel.Find("option[selected]").First()
	if option.Length() == 0 {
		option = sel.Find("option").First()
	}
	if option.Length() == 0 {
		return ""
	}
	if value, ok := option.Attr("value"); ok {
		return value
	}
	return strings.TrimSpace(option.Text())
}

// Forms extracts the named fields of every form in sel, in document order.
// Checkbox and radio groups keep the checked value, or the first one when
// none is checked.
func Forms(ctx context.Context, sel *goquery.Selection) []Form {
	_, span := tracer.Start(ctx, "Forms")
	defer span.End()

	forms := []Form{}
	sel.Each(func(_ int, s *goquery.Selection) {
		form := Form{
			Name:   s.AttrOr("name", s.AttrOr("id", "")),
			Action: strings.TrimSpace(s.AttrOr("action", "")),
			Method: strings.ToLower(strings.TrimSpace(s.AttrOr("method", "get"))),
		}
		if form.Method == "" {
			form.Method = "get"
		}

		s.Find("input[name], select[name], textarea[name]").Each(func(_ int, field *goquery.Selection) {
			name := field.AttrOr("name", "")
			if name == "" {
				return
			}

			switch goquery.NodeName(field) {
			case "select":
				form.setField(name, selectValue(field), true)
			case "textarea":
				form.setField(name, field.Text(), true)
			default:
				inputType := strings.ToLower(field.AttrOr("type", "text"))
				switch inputType {
				case "reset", "button":
				case "checkbox", "radio":
					_, checked := field.Attr("checked")
					form.setField(name, field.AttrOr("value", "on"), checked)
				default:
					form.setField(name, field.AttrOr("value", ""), true)
				}
			}
		})

		forms = append(forms, form)
	})

	span.SetAttributes(attribute.Int("forms", len(forms)))
	return forms
}
