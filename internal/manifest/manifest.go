// Package manifest parses service manifest resources and turns their
// directives into live instances.
//
// A manifest is UTF-8 text with one directive per line:
//
//	key  = "?"? service-name
//	line = key "=" value ("," value)*
//	value = "+"? type-identifier
//
// A leading "?" marks the whole key optional; a leading "+" on a value
// declares a child of the named service instead of the service itself.
package manifest

import (
	"strings"
)

// Value is a single instantiation target from a directive's value list.
type Value struct {
	// Child marks the value as a child declaration ("+type").
	Child bool
	// Type is the catalog type identifier to instantiate.
	Type string
}

// Directive is one parsed manifest line.
type Directive struct {
	// Optional marks every value of the line tolerant to instantiation failure.
	Optional bool
	// Name is the service name the directive registers or attaches to.
	Name string
	// Values are the instantiation targets, in declaration order.
	Values []Value
}

// ParseLine parses a single manifest line. The second return value is
// false for lines that carry no directive: blank lines, lines without an
// "=", and lines containing "[" (a guard against stray section headers
// from older, foreign-format manifests mixed into the file).
func ParseLine(line string) (Directive, bool) {
	if !strings.Contains(line, "=") || strings.Contains(line, "[") {
		return Directive{}, false
	}

	key, rest, _ := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	rest = strings.TrimSpace(rest)
	if key == "" || rest == "" {
		return Directive{}, false
	}

	d := Directive{Name: key}
	if strings.HasPrefix(key, "?") {
		d.Optional = true
		d.Name = key[1:]
	}
	if d.Name == "" {
		return Directive{}, false
	}

	for _, raw := range strings.Split(rest, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		v := Value{Type: raw}
		if strings.HasPrefix(raw, "+") {
			v.Child = true
			v.Type = strings.TrimSpace(raw[1:])
		}
		if v.Type == "" {
			continue
		}
		d.Values = append(d.Values, v)
	}
	if len(d.Values) == 0 {
		return Directive{}, false
	}
	return d, true
}
