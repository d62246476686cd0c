// Package routes expands named server routes into request paths.
package routes

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrUnknownRoute is returned for a route name the table does not hold.
var ErrUnknownRoute = errors.New("unknown route")

// Table maps route names such as "letters.archive" to path templates such as
// "/letters/{letter}/archive".
type Table struct {
	templates map[string]string
}

// New builds a table from name → template pairs. Templates must start with
// "/" and close every placeholder they open.
func New(templates map[string]string) (*Table, error) {
	t := &Table{templates: make(map[string]string, len(templates))}
	for name, tmpl := range templates {
		if !strings.HasPrefix(tmpl, "/") {
			return nil, fmt.Errorf("route %q: template %q must start with /", name, tmpl)
		}
		if strings.Count(tmpl, "{") != strings.Count(tmpl, "}") {
			return nil, fmt.Errorf("route %q: unbalanced placeholder in %q", name, tmpl)
		}
		t.templates[name] = tmpl
	}
	return t, nil
}

// Has reports whether name is routable.
func (t *Table) Has(name string) bool {
	_, ok := t.templates[name]
	return ok
}

// Names returns every route name, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.templates))
	for n := range t.templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Placeholders returns the parameter names a route's template needs, in
// template order.
func (t *Table) Placeholders(name string) ([]string, error) {
	tmpl, ok := t.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}
	var out []string
	for rest := tmpl; ; {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			return out, nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return out, nil
		}
		out = append(out, rest[open+1:open+end])
		rest = rest[open+end+1:]
	}
}

// URL expands the named route. Every placeholder must have a non-empty
// param; values are path-escaped. Params the template does not use are
// appended as a sorted query string.
func (t *Table) URL(name string, params map[string]string) (string, error) {
	tmpl, ok := t.templates[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, name)
	}
	needed, err := t.Placeholders(name)
	if err != nil {
		return "", err
	}

	used := make(map[string]bool, len(needed))
	path := tmpl
	for _, p := range needed {
		v := params[p]
		if v == "" {
			return "", fmt.Errorf("route %s: missing parameter %q", name, p)
		}
		path = strings.Replace(path, "{"+p+"}", url.PathEscape(v), 1)
		used[p] = true
	}

	query := url.Values{}
	for k, v := range params {
		if !used[k] {
			query.Set(k, v)
		}
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return path, nil
}
