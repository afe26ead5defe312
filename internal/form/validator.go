package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/hnrobert/signalist/internal/options"
)

// EmailPattern is the shape accepted for email fields: user@domain.tld.
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validator evaluates field rules declared in struct tags:
//
//	form:"email"       field name on the wire
//	label:"Email"      human name used in default messages
//	validate:"..."     go-playground/validator rules, checked in order
//	msg_<rule>:"..."   message shown when <rule> fails
//
// Besides the built-in rules it knows "emailaddr" (EmailPattern) and
// "option=<list>" (value must belong to the named option list).
type Validator struct {
	v       *validator.Validate
	lists   options.Set
	mu      sync.RWMutex
	schemas map[reflect.Type]*schema
}

type fieldSpec struct {
	name   string // wire name
	goName string
	label  string
	rules  string
	index  int
	tag    reflect.StructTag
}

type schema struct {
	fields []fieldSpec
	byName map[string]int
	byGo   map[string]int
}

func NewValidator(lists options.Set) (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("emailaddr", func(fl validator.FieldLevel) bool {
		return EmailPattern.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation("option", func(fl validator.FieldLevel) bool {
		l, err := lists.List(fl.Param())
		if err != nil {
			return false
		}
		return l.Contains(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	return &Validator{v: v, lists: lists, schemas: map[reflect.Type]*schema{}}, nil
}

// Lists returns the option lists the "option" rule checks against.
func (val *Validator) Lists() options.Set {
	return val.lists
}

func (val *Validator) schemaOf(t reflect.Type) (*schema, error) {
	val.mu.RLock()
	s, ok := val.schemas[t]
	val.mu.RUnlock()
	if ok {
		return s, nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("form: %s is not a struct", t)
	}

	s = &schema{byName: map[string]int{}, byGo: map[string]int{}}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := f.Tag.Get("form")
		if name == "" || name == "-" || !f.IsExported() {
			continue
		}
		if f.Type.Kind() != reflect.String {
			return nil, fmt.Errorf("form: field %s.%s must be a string", t.Name(), f.Name)
		}
		label := f.Tag.Get("label")
		if label == "" {
			label = f.Name
		}
		s.byName[name] = len(s.fields)
		s.byGo[f.Name] = len(s.fields)
		s.fields = append(s.fields, fieldSpec{
			name:   name,
			goName: f.Name,
			label:  label,
			rules:  f.Tag.Get("validate"),
			index:  i,
			tag:    f.Tag,
		})
	}

	val.mu.Lock()
	val.schemas[t] = s
	val.mu.Unlock()
	return s, nil
}

// field checks one value against a field's rules.
func (val *Validator) field(spec fieldSpec, value string) *FieldError {
	if spec.rules == "" {
		return nil
	}
	err := val.v.Var(value, spec.rules)
	return val.translate(spec, err)
}

// all checks every field of a struct value, returning failures keyed by wire name.
func (val *Validator) all(s *schema, ptr any) map[string]FieldError {
	out := map[string]FieldError{}
	err := val.v.Struct(ptr)
	if err == nil {
		return out
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		// Not a rule failure: attribute it to every field so nothing submits.
		for _, f := range s.fields {
			out[f.name] = FieldError{Field: f.name, Rule: "invalid", Message: err.Error()}
		}
		return out
	}
	for _, fe := range ves {
		i, ok := s.byGo[fe.StructField()]
		if !ok {
			continue
		}
		spec := s.fields[i]
		out[spec.name] = val.message(spec, fe.Tag(), fe.Param())
	}
	return out
}

func (val *Validator) translate(spec fieldSpec, err error) *FieldError {
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := val.message(spec, ves[0].Tag(), ves[0].Param())
		return &fe
	}
	return &FieldError{Field: spec.name, Rule: "invalid", Message: err.Error()}
}

func (val *Validator) message(spec fieldSpec, rule, param string) FieldError {
	msg := spec.tag.Get("msg_" + rule)
	if msg == "" {
		msg = defaultMessage(spec.label, rule, param)
	}
	return FieldError{Field: spec.name, Rule: rule, Message: msg}
}

func defaultMessage(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", label, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", label, param)
	case "emailaddr", "email":
		return "Invalid email address"
	case "option", "oneof":
		return "Please select a valid " + strings.ToLower(label)
	default:
		return label + " is invalid"
	}
}
