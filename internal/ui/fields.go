package ui

import (
	"html/template"

	"github.com/hnrobert/signalist/internal/options"
)

const (
	inputClass      = "form-input"
	selectClass     = "select-trigger"
	buttonClass     = "yellow-btn w-full mt-5"
	fieldErrorClass = "text-sm text-red-500"
	footerLinkClass = "footer-link"
)

func Input(p Props) template.HTML {
	q := compose("input", inputClass, p)
	if _, ok := q["type"]; !ok {
		q["type"] = "text"
	}
	return element("input", q)
}

// Select renders a single-choice <select>. The placeholder is a disabled
// empty option, selected while nothing else is.
func Select(p Props, placeholder string, list options.List, selected string) template.HTML {
	opts := make([]template.HTML, 0, len(list)+1)
	ph := Props{"value": "", "disabled": ""}
	if selected == "" || !list.Contains(selected) {
		ph["selected"] = ""
	}
	opts = append(opts, element("option", ph, Text(placeholder)))
	for _, o := range list {
		op := Props{"value": o.Value}
		if o.Value == selected {
			op["selected"] = ""
		}
		opts = append(opts, element("option", op, Text(o.Label)))
	}
	return element("select", compose("select", selectClass, p), opts...)
}

// CountrySelect is a searchable text box bound to a datalist of countries.
// The submitted value is the country code; the label shows while typing.
// "data-search" points at the JSON search endpoint for client enhancement.
func CountrySelect(p Props, listID string, countries options.List, selected string) template.HTML {
	q := compose("country-select", inputClass, p.With("list", listID, "autocomplete", "off"))
	q["type"] = "text"
	q["value"] = selected
	opts := make([]template.HTML, 0, len(countries))
	for _, o := range countries {
		opts = append(opts, element("option", Props{"value": o.Value, "label": o.Label}))
	}
	return element("input", q) + element("datalist", Props{"id": listID, "data-slot": "country-options"}, opts...)
}

// Button renders the submit control. While busy it is disabled and shows busyLabel.
func Button(p Props, label, busyLabel string, busy bool) template.HTML {
	q := compose("button", buttonClass, p.With("data-busy-label", busyLabel, "data-idle-label", label))
	if _, ok := q["type"]; !ok {
		q["type"] = "submit"
	}
	text := label
	if busy {
		q["disabled"] = ""
		q["aria-busy"] = "true"
		text = busyLabel
	}
	return element("button", q, Text(text))
}

// FieldError is the inline message slot for one field. It is always
// rendered so blur validation has a stable swap target.
func FieldError(id, msg string) template.HTML {
	p := Props{"id": id, "data-slot": "field-error", "class": fieldErrorClass, "aria-live": "polite"}
	return element("p", p, Text(msg))
}

func FooterLink(text, linkText, href string) template.HTML {
	link := element("a", Props{"href": href, "class": footerLinkClass}, Text(linkText))
	return element("div", Props{"class": "text-center pt-4", "data-slot": "footer-link"},
		element("p", Props{"class": "text-sm text-gray-500"}, Text(text+" "), link))
}
