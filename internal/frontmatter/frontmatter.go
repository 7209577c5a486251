// Package frontmatter splits a page's leading YAML front matter (delimited
// by "---" lines) from its template body, the way a handful of static-site
// generators in the Go ecosystem do. Front matter becomes a Page's
// initial args frame entries (optional front-matter args).
package frontmatter

import (
	"strings"

	"gopkg.in/yaml.v2"
)

const delim = "---"

// Split separates source's front matter from its body. Source with no
// leading "---" line has no front matter and is returned unchanged as the
// body with a nil map.
func Split(source string) (map[string]interface{}, string, error) {
	trimmed := strings.TrimLeft(source, "﻿")
	if !strings.HasPrefix(trimmed, delim) {
		return nil, source, nil
	}
	rest := trimmed[len(delim):]
	rest = strings.TrimPrefix(rest, "\r\n")
	rest = strings.TrimPrefix(rest, "\n")
	end := strings.Index(rest, "\n"+delim)
	if end < 0 {
		return nil, source, nil
	}
	block := rest[:end]
	body := rest[end+1+len(delim):]
	body = strings.TrimPrefix(body, "\r\n")
	body = strings.TrimPrefix(body, "\n")

	var front map[string]interface{}
	if err := yaml.Unmarshal([]byte(block), &front); err != nil {
		return nil, "", err
	}
	return front, body, nil
}
