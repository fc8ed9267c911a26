package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a dynamic route to its template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

const uuidRe = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// segment matches any single path segment; ids that fail to parse still collapse to one label.
const segment = `[^/]+`

// pathPatterns is evaluated in order, most specific first.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/(posts|pages|homepages|user-bios)/` + segment + `/content/preferred$`), Template: "/$1/{id}/content/preferred"},
	{Pattern: regexp.MustCompile(`^/(posts|pages|homepages|user-bios)/` + segment + `/content/` + segment + `$`), Template: "/$1/{id}/content/{languageId}"},
	{Pattern: regexp.MustCompile(`^/(posts|pages|homepages|user-bios)/` + segment + `/content$`), Template: "/$1/{id}/content"},
	{Pattern: regexp.MustCompile(`^/(posts|pages)/` + segment + `/published$`), Template: "/$1/{id}/published"},
	{Pattern: regexp.MustCompile(`^/(posts|pages|homepages|user-bios|languages|links)/` + segment + `$`), Template: "/$1/{id}"},
	{Pattern: regexp.MustCompile(`^/swagger/.*$`), Template: "/swagger/*"},
}

// anyUUID collapses ids on routes the table does not know.
var anyUUID = regexp.MustCompile(uuidRe)

// NormalizePath turns a request path into a low-cardinality route label.
//
//	NormalizePath("/posts/6f1d1a9e-3c65-4a4e-9d8e-6a0d3c3f1c11")          // "/posts/{id}"
//	NormalizePath("/pages/6f1d.../content/0b7c...")                       // "/pages/{id}/content/{languageId}"
//	NormalizePath("/health")                                              // "/health"
//
// Query strings and a trailing slash are ignored.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Pattern.ReplaceAllString(path, p.Template)
		}
	}
	return anyUUID.ReplaceAllString(path, "{id}")
}
