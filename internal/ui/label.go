package ui

import "html/template"

const labelClass = "flex items-center gap-2 text-sm leading-none font-medium select-none group-data-[disabled=true]:pointer-events-none group-data-[disabled=true]:opacity-50 peer-disabled:cursor-not-allowed peer-disabled:opacity-50"

// Label renders a <label data-slot="label">. Use "for" in props to bind it to a control.
func Label(p Props, children ...template.HTML) template.HTML {
	return element("label", compose("label", labelClass, p), children...)
}
