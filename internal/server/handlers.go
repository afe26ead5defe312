package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hnrobert/signalist/internal/auth"
	"github.com/hnrobert/signalist/internal/authform"
	"github.com/hnrobert/signalist/internal/form"
	"github.com/hnrobert/signalist/internal/logger"
	"github.com/hnrobert/signalist/internal/ui"
)

const (
	searchDefaultLimit = 20
	searchMaxLimit     = 300

	// formTokenHeader carries a reissued form token on blur answers.
	formTokenHeader = "X-Form-Token"

	submitInFlightText = "This form is already being submitted. Please wait a moment, then try again."
)

func (a *App) handleSignInPage(w http.ResponseWriter, r *http.Request) {
	a.servePage(w, r, authform.KindSignIn)
}

func (a *App) handleSignUpPage(w http.ResponseWriter, r *http.Request) {
	a.servePage(w, r, authform.KindSignUp)
}

func (a *App) handleSignInSubmit(w http.ResponseWriter, r *http.Request) {
	a.submit(w, r, authform.KindSignIn)
}

func (a *App) handleSignUpSubmit(w http.ResponseWriter, r *http.Request) {
	a.submit(w, r, authform.KindSignUp)
}

func (a *App) servePage(w http.ResponseWriter, r *http.Request, kind string) {
	inst, err := a.forms.Open(kind)
	if err != nil {
		logger.Error("open %s form: %v", kind, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.metrics.PageServed(kind)

	data := a.viewData()
	if r.URL.Query().Get("ok") == "1" {
		data.Flash = pageDefs[kind].successText
		data.FlashKind = "ok"
	}
	a.renderForm(w, r, http.StatusOK, inst, data)
}

func (a *App) submit(w http.ResponseWriter, r *http.Request, kind string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	inst := a.lookup(r.PostForm.Get("_form"), kind)
	if inst == nil {
		var err error
		inst, err = a.forms.Open(kind)
		if err != nil {
			logger.Error("open %s form: %v", kind, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		logger.Debug("stale or missing %s form token from %s, opened %s", kind, remoteIP(r), inst.ID())
	}

	data := a.viewData()
	if inst.Submitting() {
		a.metrics.Submitted(kind, "busy")
		data.Flash, data.FlashKind = submitInFlightText, "err"
		a.renderForm(w, r, http.StatusConflict, inst, data)
		return
	}
	inst.Bind(r.PostForm)

	done := a.metrics.Begin(kind)
	err := a.forms.Submit(r.Context(), inst, a.submitter)
	done()

	status := http.StatusOK
	switch {
	case err == nil:
		a.metrics.Submitted(kind, "ok")
		logger.Info("%s form %s submitted from %s", kind, inst.ID(), remoteIP(r))
		http.Redirect(w, r, pageDefs[kind].path+"?ok=1", http.StatusSeeOther)
		return
	case errors.Is(err, form.ErrInvalid):
		a.metrics.Submitted(kind, "invalid")
		for _, fe := range inst.Failures() {
			a.metrics.ValidationFailed(kind, fe.Field, fe.Rule)
		}
		status = http.StatusUnprocessableEntity
	case errors.Is(err, form.ErrSubmitInFlight):
		a.metrics.Submitted(kind, "busy")
		data.Flash, data.FlashKind = submitInFlightText, "err"
		status = http.StatusConflict
	default:
		a.metrics.Submitted(kind, "error")
		logger.Error("%s form %s: %v", kind, inst.ID(), err)
		data.Flash = "Something went wrong. Please try again."
		data.FlashKind = "err"
		status = http.StatusInternalServerError
	}
	a.renderForm(w, r, status, inst, data)
}

// lookup resolves a posted form token to its live instance, or nil.
func (a *App) lookup(token, kind string) authform.Instance {
	if token == "" {
		return nil
	}
	id, err := auth.ParseFormToken(a.secret, token, kind)
	if err != nil {
		return nil
	}
	inst, err := a.forms.Get(id, kind)
	if err != nil {
		return nil
	}
	return inst
}

// handleBlur validates a single field and answers with the replacement
// error fragment for that field.
func (a *App) handleBlur(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	field := chi.URLParam(r, "field")

	id, kind, err := auth.FormKind(a.secret, token)
	if err != nil {
		http.Error(w, "invalid form token", http.StatusBadRequest)
		return
	}
	inst, err := a.forms.Get(id, kind)
	if err != nil {
		http.Error(w, "form expired", http.StatusGone)
		return
	}
	if !inst.HasField(field) {
		http.Error(w, "unknown field", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	fe, err := inst.Blur(field, r.PostForm.Get(field))
	if err != nil {
		http.Error(w, "unknown field", http.StatusNotFound)
		return
	}
	if tok, err := a.issueToken(inst); err == nil {
		w.Header().Set(formTokenHeader, tok)
	} else {
		logger.Warn("reissue %s form token: %v", kind, err)
	}
	msg := ""
	if fe != nil {
		msg = fe.Message
		a.metrics.ValidationFailed(kind, fe.Field, fe.Rule)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(ui.FieldError(errorID(field), msg)))
}

func (a *App) handleOptions(w http.ResponseWriter, r *http.Request) {
	list, err := a.lists.List(chi.URLParam(r, "list"))
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	limit := searchDefaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeJSONError(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, searchMaxLimit)
	}
	writeJSON(w, http.StatusOK, map[string]any{"options": list.Search(r.URL.Query().Get("q"), limit)})
}

func (a *App) renderForm(w http.ResponseWriter, r *http.Request, status int, inst authform.Instance, data *ViewData) {
	def := pageDefs[inst.Kind()]
	token, err := a.issueToken(inst)
	if err != nil {
		logger.Error("sign %s form token: %v", inst.Kind(), err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data.Kind = inst.Kind()
	data.FormTitle = def.title
	data.Action = def.path
	data.Token = token
	data.Fields = make([]FieldView, 0, len(def.fields))
	for _, fd := range def.fields {
		data.Fields = append(data.Fields, a.fieldView(inst, token, fd))
	}
	// Rendered forms are idle; forms.js shows the busy state while a post is pending.
	data.Submit = ui.Button(ui.Props{"class": "yellow-btn w-full mt-5"}, def.button, def.busyButton, false)
	data.Footer = ui.FooterLink(def.footerText, def.footerLink, def.footerHref)
	if inst.Kind() == authform.KindSignUp {
		data.Help = a.riskHelp(r.Method == http.MethodGet && r.URL.Query().Get("help") == "risk")
	}
	a.renderPage(w, status, def.page, data)
}

func (a *App) renderPage(w http.ResponseWriter, status int, page string, data *ViewData) {
	t := a.pages[page]
	if t == nil {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("renderPage template execution failed for %s: %v", page, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeJSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
