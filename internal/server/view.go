package server

import (
	"html/template"

	"github.com/hnrobert/signalist/internal/authform"
	"github.com/hnrobert/signalist/internal/options"
	"github.com/hnrobert/signalist/internal/ui"
)

type ViewData struct {
	// layout shell
	BrandName    string
	Logo         string
	Testimonial  template.HTML
	Author       string
	AuthorRole   string
	Stars        []int
	PreviewImage string

	Flash     string
	FlashKind string // ok|err|""

	// form
	Kind      string
	FormTitle string
	Action    string
	Token     string
	Fields    []FieldView
	Submit    template.HTML
	Footer    template.HTML
	Help      template.HTML
}

type FieldView struct {
	Name    string
	Label   template.HTML
	Control template.HTML
	Error   template.HTML
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindEmail
	kindPassword
	kindSelect
	kindCountry
)

type fieldDef struct {
	name        string
	label       string
	placeholder string
	kind        fieldKind
	list        string
}

type pageDef struct {
	page        string
	path        string
	title       string
	button      string
	busyButton  string
	footerText  string
	footerLink  string
	footerHref  string
	fields      []fieldDef
	successText string
}

var pageDefs = map[string]pageDef{
	authform.KindSignIn: {
		page:       "sign_in",
		path:       "/sign-in",
		title:      "Welcome back",
		button:     "Login",
		busyButton: "Login to your account...",
		footerText: "Don't have an account?",
		footerLink: "Sign up",
		footerHref: "/sign-up",
		fields: []fieldDef{
			{name: "email", label: "Email", placeholder: "Enter your email", kind: kindEmail},
			{name: "password", label: "Password", placeholder: "Enter a strong password", kind: kindPassword},
		},
		successText: "Thanks, your sign-in details were received.",
	},
	authform.KindSignUp: {
		page:       "sign_up",
		path:       "/sign-up",
		title:      "Sign Up & Personalize",
		button:     "Start Your Investing Journey",
		busyButton: "Creating Account...",
		footerText: "Already have an account?",
		footerLink: "Sign in",
		footerHref: "/sign-in",
		fields: []fieldDef{
			{name: "fullName", label: "Full Name", placeholder: "Trinh Huy", kind: kindText},
			{name: "email", label: "Email", placeholder: "trinhnhathuy3@gmail.com", kind: kindEmail},
			{name: "country", label: "Country", placeholder: "Select your country", kind: kindCountry, list: options.Countries},
			{name: "password", label: "Password", placeholder: "Enter a strong password", kind: kindPassword},
			{name: "investmentGoals", label: "Investment Goals", placeholder: "Select your investment goals", kind: kindSelect, list: options.InvestmentGoals},
			{name: "riskTolerance", label: "Risk Tolerance", placeholder: "Select your risk level", kind: kindSelect, list: options.RiskTolerance},
			{name: "preferredIndustry", label: "Preferred Industry", placeholder: "Select your preferred industry", kind: kindSelect, list: options.PreferredIndustries},
		},
		successText: "Thanks, your account details were received.",
	},
}

func errorID(field string) string { return field + "-error" }

func blurPath(token, field string) string { return "/forms/" + token + "/fields/" + field }

// fieldView composes label, control and inline error for one field of inst.
// forms.js posts a control to its data-validate path when it loses focus
// (or changes, for selects) and swaps the returned error fragment in.
func (a *App) fieldView(inst authform.Instance, token string, def fieldDef) FieldView {
	id := "field-" + def.name
	msg := inst.Error(def.name)
	p := ui.Props{
		"id":               id,
		"name":             def.name,
		"required":         "",
		"aria-describedby": errorID(def.name),
		"data-validate":    blurPath(token, def.name),
		"data-validate-on": "blur",
	}
	if msg != "" {
		p["aria-invalid"] = "true"
	}

	var control template.HTML
	switch def.kind {
	case kindSelect:
		p["data-validate-on"] = "change blur"
		list, _ := a.lists.List(def.list)
		control = ui.Select(p, def.placeholder, list, inst.Value(def.name))
	case kindCountry:
		p["placeholder"] = def.placeholder
		p["data-search"] = "/api/options/" + def.list
		p["data-validate-on"] = "change blur"
		list, _ := a.lists.List(def.list)
		control = ui.CountrySelect(p, def.name+"-options", list, inst.Value(def.name))
	default:
		p["placeholder"] = def.placeholder
		switch def.kind {
		case kindEmail:
			p["type"] = "email"
			p["autocomplete"] = "email"
			p["value"] = inst.Value(def.name)
		case kindPassword:
			// Passwords are never echoed back into the page.
			p["type"] = "password"
			p["autocomplete"] = "current-password"
			if inst.Kind() == authform.KindSignUp {
				p["autocomplete"] = "new-password"
			}
		default:
			p["value"] = inst.Value(def.name)
		}
		control = ui.Input(p)
	}

	return FieldView{
		Name:    def.name,
		Label:   ui.Label(ui.Props{"for": id, "class": "form-label"}, ui.Text(def.label)),
		Control: control,
		Error:   ui.FieldError(errorID(def.name), msg),
	}
}

var riskDescriptions = map[string]string{
	"Low":    "Capital preservation first. You accept lower returns to avoid large swings.",
	"Medium": "A balance of growth and stability. Some drawdowns are acceptable.",
	"High":   "Maximum growth. You are comfortable with large short-term losses.",
}

// riskHelp is the sign-up help dialog explaining the risk tolerance levels.
// It opens and closes in place on the client; the links are the fallback
// without scripts.
func (a *App) riskHelp(open bool) template.HTML {
	return ui.SwappableDialog("risk-help", open, a.riskDialog)
}

func (a *App) riskDialog(open bool) template.HTML {
	list, _ := a.lists.List(options.RiskTolerance)
	levels := template.HTML(`<ul class="space-y-2 text-sm">`)
	for _, o := range list {
		text := o.Label
		if d, ok := riskDescriptions[o.Value]; ok {
			text += ": " + d
		}
		levels += "<li>" + ui.Text(text) + "</li>"
	}
	levels += "</ul>"

	return ui.Dialog(open, ui.Props{"id": "risk-help"},
		ui.DialogTrigger(ui.Props{"href": "/sign-up?help=risk", "class": "text-sm underline"}, ui.Text("What is risk tolerance?")),
		ui.DialogContent(ui.Props{"aria-labelledby": "risk-help-title"}, ui.Props{"href": "/sign-up"},
			ui.DialogHeader(nil,
				ui.DialogTitle(ui.Props{"id": "risk-help-title"}, ui.Text("Risk tolerance")),
				ui.DialogDescription(nil, ui.Text("How much short-term loss you can live with while pursuing returns.")),
			),
			levels,
			ui.DialogFooter(nil, ui.DialogClose(ui.Props{"href": "/sign-up", "class": "yellow-btn"}, ui.Text("Got it"))),
		),
	)
}
