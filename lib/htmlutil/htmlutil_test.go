package htmlutil

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<a href="/about">  About
   us </a>
<a>no href</a>
<a href="https://other.test/x?y=1">Other</a>
<form name="login" action="/session" method="POST">
	<input name="user" value="guest">
	<input type="password" name="pass">
	<input type="checkbox" name="remember" value="yes">
	<input type="radio" name="lang" value="en">
	<input type="radio" name="lang" value="fr" checked>
	<input type="reset" name="clear" value="Clear">
	<select name="role">
		<option value="user">User</option>
		<option value="admin" selected>Admin</option>
	</select>
	<textarea name="note">hello</textarea>
	<input value="unnamed">
</form>
<form id="search"><select name="sort"><option>Newest</option></select></form>
</body></html>`

func parse(t *testing.T) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func TestAnchors(t *testing.T) {
	doc := parse(t)
	anchors := Anchors(context.Background(), doc.Find("a"))
	expected := []Anchor{
		{Name: "About us", Href: "/about"},
		{Name: "Other", Href: "https://other.test/x?y=1"},
	}
	if diff := cmp.Diff(expected, anchors); diff != "" {
		t.Fatal(diff)
	}
}

func TestForms(t *testing.T) {
	doc := parse(t)
	forms := Forms(context.Background(), doc.Find("form"))
	expected := []Form{
		{
			Name:   "login",
			Action: "/session",
			Method: "post",
			Fields: []Field{
				{Name: "user", Value: "guest"},
				{Name: "pass", Value: ""},
				{Name: "remember", Value: "yes"},
				{Name: "lang", Value: "fr"},
				{Name: "role", Value: "admin"},
				{Name: "note", Value: "hello"},
			},
		},
		{
			Name:   "search",
			Method: "get",
			Fields: []Field{{Name: "sort", Value: "Newest"}},
		},
	}
	if diff := cmp.Diff(expected, forms); diff != "" {
		t.Fatal(diff)
	}
}

func TestGetText(t *testing.T) {
	doc := parse(t)
	require.Equal(t, "Other", GetText(doc.Find("a").Last().Nodes[0]))
	require.Equal(t, "", GetText(nil))
}
