// Package authform defines the sign-in and sign-up forms: their values,
// field rules and messages, the submission seam and the registry of live
// form instances.
package authform

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/hnrobert/signalist/internal/form"
)

const (
	KindSignIn = "sign-in"
	KindSignUp = "sign-up"
)

var ErrUnknownForm = errors.New("unknown or expired form")

type SignInValues struct {
	Email    string `json:"email" form:"email" label:"Email" validate:"required,emailaddr" msg_required:"Email is required" msg_emailaddr:"Invalid email address"`
	Password string `json:"password" form:"password" label:"Password" validate:"required,min=8" msg_required:"Password is required" msg_min:"Password must be at least 8 characters long"`
}

type SignUpValues struct {
	FullName          string `json:"fullName" form:"fullName" label:"Full Name" validate:"required,min=2" msg_required:"Full name is required" msg_min:"Full name must be at least 2 characters"`
	Email             string `json:"email" form:"email" label:"Email" validate:"required,emailaddr" msg_required:"Email is required" msg_emailaddr:"Invalid email address"`
	Password          string `json:"password" form:"password" label:"Password" validate:"required,min=8" msg_required:"Password is required" msg_min:"Password must be at least 8 characters long"`
	Country           string `json:"country" form:"country" label:"Country" validate:"required,option=countries" msg_required:"Please select a country" msg_option:"Please select a valid country"`
	InvestmentGoals   string `json:"investmentGoals" form:"investmentGoals" label:"Investment Goals" validate:"required,option=investment_goals" msg_required:"Please select investment goals" msg_option:"Please select a valid option"`
	RiskTolerance     string `json:"riskTolerance" form:"riskTolerance" label:"Risk Tolerance" validate:"required,option=risk_tolerance" msg_required:"Please select risk tolerance" msg_option:"Please select a valid option"`
	PreferredIndustry string `json:"preferredIndustry" form:"preferredIndustry" label:"Preferred Industry" validate:"required,option=preferred_industries" msg_required:"Please select preferred industry" msg_option:"Please select a valid option"`
}

// Submitter receives validated values. Implementations are supplied by the
// embedding application; the default only logs.
type Submitter interface {
	SubmitSignIn(ctx context.Context, v SignInValues) error
	SubmitSignUp(ctx context.Context, v SignUpValues) error
}

// SubmitterFuncs adapts plain functions to Submitter. A nil func accepts the values.
type SubmitterFuncs struct {
	SignIn func(ctx context.Context, v SignInValues) error
	SignUp func(ctx context.Context, v SignUpValues) error
}

func (s SubmitterFuncs) SubmitSignIn(ctx context.Context, v SignInValues) error {
	if s.SignIn == nil {
		return nil
	}
	return s.SignIn(ctx, v)
}

func (s SubmitterFuncs) SubmitSignUp(ctx context.Context, v SignUpValues) error {
	if s.SignUp == nil {
		return nil
	}
	return s.SignUp(ctx, v)
}

// Instance is a live form of either kind, as the server sees it.
type Instance interface {
	ID() string
	Kind() string
	Fields() []string
	HasField(name string) bool
	Value(name string) string
	Bind(vals url.Values)
	Error(name string) string
	Errors() map[string]string
	Failures() []form.FieldError
	Blur(name, value string) (*form.FieldError, error)
	Submitting() bool
}

type instance[T any] struct {
	*form.Form[T]
	id string
}

func (i *instance[T]) ID() string   { return i.id }
func (i *instance[T]) Kind() string { return i.Form.Name() }

// SignIn returns the typed form behind an instance of kind sign-in.
func SignIn(i Instance) (*form.Form[SignInValues], bool) {
	in, ok := i.(*instance[SignInValues])
	if !ok {
		return nil, false
	}
	return in.Form, true
}

// SignUp returns the typed form behind an instance of kind sign-up.
func SignUp(i Instance) (*form.Form[SignUpValues], bool) {
	in, ok := i.(*instance[SignUpValues])
	if !ok {
		return nil, false
	}
	return in.Form, true
}

func redact(s string) string {
	if s == "" {
		return ""
	}
	return strings.Repeat("*", 8)
}
