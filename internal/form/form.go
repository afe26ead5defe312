// Package form keeps the state of one form instance: its field values,
// a per-field validation result map and the submission gate.
//
// Fields are validated one at a time when they lose focus (Blur) and all
// together on Submit. A form is valid when no field has a failure. While
// a submission is running the form reports Submitting() and refuses a
// second Submit.
package form

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"sync"
)

var (
	ErrInvalid        = errors.New("form has invalid fields")
	ErrSubmitInFlight = errors.New("submission already in progress")
	ErrUnknownField   = errors.New("unknown form field")
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Form holds the values of T, a struct of string fields tagged for Validator.
type Form[T any] struct {
	name   string
	val    *Validator
	schema *schema

	mu         sync.Mutex
	values     T
	errors     map[string]FieldError
	submitting bool
}

func New[T any](name string, val *Validator) (*Form[T], error) {
	var zero T
	s, err := val.schemaOf(reflect.TypeOf(zero))
	if err != nil {
		return nil, err
	}
	return &Form[T]{name: name, val: val, schema: s, errors: map[string]FieldError{}}, nil
}

func (f *Form[T]) Name() string { return f.name }

// Fields returns the wire names in declaration order.
func (f *Form[T]) Fields() []string {
	out := make([]string, len(f.schema.fields))
	for i, spec := range f.schema.fields {
		out[i] = spec.name
	}
	return out
}

func (f *Form[T]) HasField(name string) bool {
	_, ok := f.schema.byName[name]
	return ok
}

func (f *Form[T]) setLocked(name, value string) error {
	i, ok := f.schema.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	reflect.ValueOf(&f.values).Elem().Field(f.schema.fields[i].index).SetString(value)
	return nil
}

func (f *Form[T]) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setLocked(name, value)
}

// Bind copies every known field present in vals. Unknown keys are ignored.
func (f *Form[T]) Bind(vals url.Values) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, spec := range f.schema.fields {
		if v, ok := vals[spec.name]; ok && len(v) > 0 {
			_ = f.setLocked(spec.name, v[0])
		}
	}
}

// Value returns the current value of a field.
func (f *Form[T]) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.schema.byName[name]
	if !ok {
		return ""
	}
	return reflect.ValueOf(&f.values).Elem().Field(f.schema.fields[i].index).String()
}

// Values returns a copy of the captured values.
func (f *Form[T]) Values() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Blur records value for one field and validates that field only.
// It returns the failure, or nil when the field passes.
func (f *Form[T]) Blur(name, value string) (*FieldError, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.setLocked(name, value); err != nil {
		return nil, err
	}
	spec := f.schema.fields[f.schema.byName[name]]
	fe := f.val.field(spec, value)
	if fe == nil {
		delete(f.errors, name)
		return nil, nil
	}
	f.errors[name] = *fe
	return fe, nil
}

// Validate checks every field and replaces the result map. It reports overall validity.
func (f *Form[T]) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form[T]) validateLocked() bool {
	vals := f.values
	f.errors = f.val.all(f.schema, &vals)
	return len(f.errors) == 0
}

// Valid reports whether the last validation left no failures.
func (f *Form[T]) Valid() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.errors) == 0
}

// Error returns the message for a field, or "".
func (f *Form[T]) Error(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errors[name].Message
}

// Errors returns field -> message for every failing field.
func (f *Form[T]) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v.Message
	}
	return out
}

// Failures returns the failing fields in declaration order.
func (f *Form[T]) Failures() []FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FieldError, 0, len(f.errors))
	for _, fe := range f.errors {
		out = append(out, fe)
	}
	sort.Slice(out, func(i, j int) bool {
		return f.schema.byName[out[i].Field] < f.schema.byName[out[j].Field]
	})
	return out
}

func (f *Form[T]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit validates every field and, if all pass, calls fn once with a copy
// of the values. A Submit while another is pending returns ErrSubmitInFlight
// without validating or calling fn. The form is idle again when fn returns.
func (f *Form[T]) Submit(ctx context.Context, fn func(context.Context, T) error) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	if !f.validateLocked() {
		f.mu.Unlock()
		return ErrInvalid
	}
	f.submitting = true
	vals := f.values
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	if err := fn(ctx, vals); err != nil {
		return fmt.Errorf("submit %s: %w", f.name, err)
	}
	return nil
}
