// Package ui renders the presentational building blocks of the auth
// pages: label, dialog and form field primitives.
//
// Every primitive takes an open-ended property bag. It merges its default
// classes with the caller's "class", adds its data-slot attribute and
// emits every other property unchanged.
package ui

import (
	"html/template"
	"sort"
	"strings"
)

// Props is an attribute bag forwarded to the rendered element.
// A key with an empty value renders as a bare attribute (disabled, required).
type Props map[string]string

// With returns a copy of p with the given key/value pairs set.
func (p Props) With(kv ...string) Props {
	out := make(Props, len(p)+len(kv)/2)
	for k, v := range p {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = kv[i+1]
	}
	return out
}

// compose applies the primitive wrapper contract: data-slot first so a
// caller may override it, merged class, everything else forwarded.
func compose(slot, base string, p Props) Props {
	out := Props{"data-slot": slot}
	for k, v := range p {
		if k == "class" {
			continue
		}
		out[k] = v
	}
	if c := Cn(base, p["class"]); c != "" {
		out["class"] = c
	}
	return out
}

var voidTags = map[string]bool{"input": true, "img": true, "br": true, "hr": true, "meta": true, "link": true}

func element(tag string, p Props, children ...template.HTML) template.HTML {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	writeAttrs(&b, p)
	b.WriteByte('>')
	if voidTags[tag] {
		return template.HTML(b.String())
	}
	for _, c := range children {
		b.WriteString(string(c))
	}
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
	return template.HTML(b.String())
}

func writeAttrs(b *strings.Builder, p Props) {
	keys := make([]string, 0, len(p))
	for k := range p {
		if validAttrName(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		if v := p[k]; v != "" {
			b.WriteString(`="`)
			b.WriteString(template.HTMLEscapeString(v))
			b.WriteByte('"')
		}
	}
}

func validAttrName(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == ':', r == '.', r == '@':
		default:
			return false
		}
	}
	return true
}

// Text escapes s for use as element content.
func Text(s string) template.HTML {
	return template.HTML(template.HTMLEscapeString(s))
}
