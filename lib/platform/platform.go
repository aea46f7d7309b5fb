// Package platform keeps track of the technologies observed behind resources
// so that checks can skip payloads that cannot apply to a target.
package platform

import (
	"net/http"
	"path"
	"slices"
	"strings"
)

type Name string

const (
	PHP    Name = "php"
	ASP    Name = "asp"
	ASPX   Name = "aspx"
	JSP    Name = "jsp"
	Python Name = "python"
	Ruby   Name = "ruby"
	Perl   Name = "perl"
	NodeJS Name = "nodejs"

	Apache Name = "apache"
	Nginx  Name = "nginx"
	IIS    Name = "iis"
	Tomcat Name = "tomcat"
)

// Set is a sorted list of platform names without duplicates.
type Set []Name

func NewSet(names ...Name) Set {
	var s Set
	return s.Add(names...)
}

func (s Set) Has(name Name) bool {
	_, found := slices.BinarySearch(s, name)
	return found
}

// Add returns a new set with names added, s is left untouched.
func (s Set) Add(names ...Name) Set {
	out := make(Set, len(s), len(s)+len(names))
	copy(out, s)
	for _, n := range names {
		if n == "" {
			continue
		}
		i, found := slices.BinarySearch(out, n)
		if found {
			continue
		}
		out = slices.Insert(out, i, n)
	}
	return out
}

func (s Set) Union(other Set) Set {
	return s.Add(other...)
}

func (s Set) Strings() []string {
	out := make([]string, len(s))
	for i, n := range s {
		out[i] = string(n)
	}
	return out
}

var extensions = map[string][]Name{
	".php":   {PHP},
	".php3":  {PHP},
	".php4":  {PHP},
	".php5":  {PHP},
	".phtml": {PHP},
	".asp":   {ASP, IIS},
	".aspx":  {ASPX, IIS},
	".ashx":  {ASPX, IIS},
	".asmx":  {ASPX, IIS},
	".jsp":   {JSP},
	".jspx":  {JSP},
	".do":    {JSP},
	".py":    {Python},
	".rb":    {Ruby},
	".pl":    {Perl},
	".cgi":   {Perl},
}

var serverTokens = []struct {
	token string
	names []Name
}{
	{"apache-coyote", []Name{Tomcat, JSP}},
	{"tomcat", []Name{Tomcat, JSP}},
	{"apache", []Name{Apache}},
	{"nginx", []Name{Nginx}},
	{"microsoft-iis", []Name{IIS}},
	{"gunicorn", []Name{Python}},
	{"werkzeug", []Name{Python}},
	{"phusion passenger", []Name{Ruby}},
}

var poweredByTokens = []struct {
	token string
	names []Name
}{
	{"php", []Name{PHP}},
	{"asp.net", []Name{ASPX, IIS}},
	{"express", []Name{NodeJS}},
	{"servlet", []Name{JSP}},
	{"jsp", []Name{JSP}},
	{"django", []Name{Python}},
	{"rails", []Name{Ruby}},
}

func matchTokens(value string, table []struct {
	token string
	names []Name
}) []Name {
	value = strings.ToLower(value)
	if value == "" {
		return nil
	}
	var out []Name
	for _, entry := range table {
		if strings.Contains(value, entry.token) {
			out = append(out, entry.names...)
		}
	}
	return out
}

// Fingerprint guesses platforms from the path extension of rawUrl and the
// Server / X-Powered-By response headers, headers may be nil.
func Fingerprint(rawUrl string, headers http.Header) Set {
	var found Set

	p := rawUrl
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if names, ok := extensions[strings.ToLower(path.Ext(p))]; ok {
		found = found.Add(names...)
	}

	if headers != nil {
		found = found.Add(matchTokens(headers.Get("Server"), serverTokens)...)
		for _, v := range headers.Values("X-Powered-By") {
			found = found.Add(matchTokens(v, poweredByTokens)...)
		}
		if headers.Get("X-AspNet-Version") != "" {
			found = found.Add(ASPX, IIS)
		}
	}

	return found
}
