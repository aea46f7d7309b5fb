package discover

import (
	"context"
	"net/http"
	"testing"

	"webprobe/lib/element"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<a href="products?id=3&amp;sort=asc#top">Product</a>
<a href="mailto:admin@x.test">Mail</a>
<a href="javascript:void(0)">Nothing</a>
<a href="https://other.test/">Other</a>
<form action="/login" method="post">
	<input name="user" value="">
	<input name="pass" type="password">
</form>
<form name="search"><input name="q"></form>
</body></html>`

type summary struct {
	Kind   element.Kind
	Action string
	Method element.Method
	Inputs map[string]string
}

func summarize(elements []element.Element) []summary {
	out := make([]summary, 0, len(elements))
	for _, e := range elements {
		out = append(out, summary{
			Kind:   e.Kind(),
			Action: e.Action(),
			Method: e.Method(),
			Inputs: e.Inputs().Map(),
		})
	}
	return out
}

func TestFromResponse(t *testing.T) {
	header := http.Header{}
	header.Add("Set-Cookie", "session=abc; Path=/")
	header.Add("Set-Cookie", "theme=dark")

	res := &element.Response{
		URL:    "http://x.test/shop/index.php",
		Header: header,
		Body:   []byte(page),
	}
	elements, err := FromResponse(context.Background(), res, Options{})
	require.NoError(t, err)

	expected := []summary{
		{
			Kind:   element.KindLink,
			Action: "http://x.test/shop/products",
			Method: element.MethodGet,
			Inputs: map[string]string{"id": "3", "sort": "asc"},
		},
		{
			Kind:   element.KindLink,
			Action: "https://other.test/",
			Method: element.MethodGet,
			Inputs: map[string]string{},
		},
		{
			Kind:   element.KindForm,
			Action: "http://x.test/login",
			Method: element.MethodPost,
			Inputs: map[string]string{"user": "", "pass": ""},
		},
		{
			Kind:   element.KindForm,
			Action: "http://x.test/shop/index.php",
			Method: element.MethodGet,
			Inputs: map[string]string{"q": ""},
		},
		{
			Kind:   element.KindHeader,
			Action: "http://x.test/shop/index.php",
			Method: element.MethodHeader,
			Inputs: map[string]string{"Referer": "http://x.test/shop/index.php"},
		},
		{
			Kind:   element.KindCookie,
			Action: "http://x.test/shop/index.php",
			Method: element.MethodCookie,
			Inputs: map[string]string{"session": "abc"},
		},
		{
			Kind:   element.KindCookie,
			Action: "http://x.test/shop/index.php",
			Method: element.MethodCookie,
			Inputs: map[string]string{"theme": "dark"},
		},
	}
	if diff := cmp.Diff(expected, summarize(elements)); diff != "" {
		t.Fatal(diff)
	}

	form, ok := elements[3].(*element.Form)
	require.True(t, ok)
	require.Equal(t, "search", form.Name())
}

func TestFromHTMLInvalidPage(t *testing.T) {
	_, err := FromHTML(context.Background(), "/relative", []byte(page), Options{})
	require.Error(t, err)
}
