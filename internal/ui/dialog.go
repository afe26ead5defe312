package ui

import "html/template"

const (
	overlayClass     = "data-[state=open]:animate-in data-[state=closed]:animate-out data-[state=closed]:fade-out-0 data-[state=open]:fade-in-0 fixed inset-0 z-50 bg-black/50"
	contentClass     = "bg-background data-[state=open]:animate-in data-[state=closed]:animate-out data-[state=closed]:fade-out-0 data-[state=open]:fade-in-0 data-[state=closed]:zoom-out-95 data-[state=open]:zoom-in-95 fixed top-[50%] left-[50%] z-50 grid w-full max-w-[calc(100%-2rem)] translate-x-[-50%] translate-y-[-50%] gap-4 rounded-lg border p-6 shadow-lg duration-200 sm:max-w-lg"
	closeButtonClass = "ring-offset-background focus:ring-ring data-[state=open]:bg-accent data-[state=open]:text-muted-foreground absolute top-4 right-4 rounded-xs opacity-70 transition-opacity hover:opacity-100 focus:ring-2 focus:ring-offset-2 focus:outline-hidden disabled:pointer-events-none [&_svg]:pointer-events-none [&_svg]:shrink-0 [&_svg:not([class*='size-'])]:size-4"
	headerClass      = "flex flex-col gap-2 text-center sm:text-left"
	footerClass      = "flex flex-col-reverse gap-2 sm:flex-row sm:justify-end"
	titleClass       = "text-lg leading-none font-semibold"
	descriptionClass = "text-muted-foreground text-sm"

	xIcon = `<svg xmlns="http://www.w3.org/2000/svg" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true"><path d="M18 6 6 18"/><path d="m6 6 12 12"/></svg>`
)

// DialogPart renders one piece of a dialog given the root's open state.
type DialogPart func(open bool) template.HTML

// Static wraps already rendered markup as a part that ignores the state.
func Static(h template.HTML) DialogPart {
	return func(bool) template.HTML { return h }
}

func state(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

// Dialog is the root. It owns the open/closed state and hands it to its parts.
func Dialog(open bool, p Props, parts ...DialogPart) template.HTML {
	children := make([]template.HTML, 0, len(parts))
	for _, part := range parts {
		if part != nil {
			children = append(children, part(open))
		}
	}
	return element("div", compose("dialog", "", p.With("data-state", state(open))), children...)
}

// DialogTrigger toggles the dialog. With an "href" prop it renders a link,
// which lets a server-rendered page open the dialog without scripts.
func DialogTrigger(p Props, children ...template.HTML) DialogPart {
	return func(open bool) template.HTML {
		q := compose("dialog-trigger", "", p.With("data-state", state(open), "aria-haspopup", "dialog"))
		if open {
			q["aria-expanded"] = "true"
		} else {
			q["aria-expanded"] = "false"
		}
		if _, ok := p["href"]; ok {
			return element("a", q, children...)
		}
		if _, ok := p["type"]; !ok {
			q["type"] = "button"
		}
		return element("button", q, children...)
	}
}

// DialogPortal renders its parts outside the normal flow, only while open.
func DialogPortal(p Props, parts ...DialogPart) DialogPart {
	return func(open bool) template.HTML {
		if !open {
			return ""
		}
		children := make([]template.HTML, 0, len(parts))
		for _, part := range parts {
			if part != nil {
				children = append(children, part(open))
			}
		}
		return element("div", compose("dialog-portal", "", p), children...)
	}
}

// DialogClose closes the dialog. Like the trigger it renders a link when given an "href".
func DialogClose(p Props, children ...template.HTML) template.HTML {
	q := compose("dialog-close", "", p)
	if _, ok := p["href"]; ok {
		return element("a", q, children...)
	}
	if _, ok := p["type"]; !ok {
		q["type"] = "button"
	}
	return element("button", q, children...)
}

func DialogOverlay(p Props) DialogPart {
	return func(open bool) template.HTML {
		return element("div", compose("dialog-overlay", overlayClass, p.With("data-state", state(open))))
	}
}

// DialogContent renders the centred panel inside a portal with an overlay.
// closeProps configures the corner close control; nil hides it.
func DialogContent(p Props, closeProps Props, children ...template.HTML) DialogPart {
	content := func(open bool) template.HTML {
		q := compose("dialog-content", contentClass, p.With("data-state", state(open), "role", "dialog", "aria-modal", "true"))
		body := append([]template.HTML{}, children...)
		if closeProps != nil {
			c := closeProps.With("data-state", state(open))
			c["class"] = Cn(closeButtonClass, closeProps["class"])
			body = append(body, DialogClose(c, template.HTML(xIcon), element("span", Props{"class": "sr-only"}, "Close")))
		}
		return element("div", q, body...)
	}
	return DialogPortal(Props{}, DialogOverlay(Props{}), content)
}

func DialogHeader(p Props, children ...template.HTML) template.HTML {
	return element("div", compose("dialog-header", headerClass, p), children...)
}

func DialogFooter(p Props, children ...template.HTML) template.HTML {
	return element("div", compose("dialog-footer", footerClass, p), children...)
}

func DialogTitle(p Props, children ...template.HTML) template.HTML {
	return element("h2", compose("dialog-title", titleClass, p), children...)
}

func DialogDescription(p Props, children ...template.HTML) template.HTML {
	return element("p", compose("dialog-description", descriptionClass, p), children...)
}

// SwappableDialog renders the dialog in its current state followed by inert
// <template> copies of its open and closed states, keyed by id. The page
// script swaps a copy in when the trigger, overlay or close control is
// clicked, so the rest of the page is left as it is.
func SwappableDialog(id string, open bool, render func(open bool) template.HTML) template.HTML {
	return render(open) +
		element("template", Props{"data-dialog-for": id, "data-dialog-state": "open"}, render(true)) +
		element("template", Props{"data-dialog-for": id, "data-dialog-state": "closed"}, render(false))
}
