package form

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hnrobert/signalist/internal/options"
)

type testValues struct {
	Email    string `form:"email" label:"Email" validate:"required,emailaddr" msg_required:"Email is required" msg_emailaddr:"Invalid email address"`
	Password string `form:"password" label:"Password" validate:"required,min=8" msg_required:"Password is required" msg_min:"Password must be at least 8 characters long"`
	Name     string `form:"name" label:"Full name" validate:"required,min=2"`
	Risk     string `form:"risk" label:"Risk tolerance" validate:"required,option=risk_tolerance"`
	Note     string `form:"note"`
	internal string
}

func newTestForm(t *testing.T) *Form[testValues] {
	t.Helper()
	val, err := NewValidator(options.Default())
	require.NoError(t, err)
	f, err := New[testValues]("test", val)
	require.NoError(t, err)
	return f
}

func fill(f *Form[testValues]) {
	f.Bind(url.Values{
		"email":    {"trinh@example.com"},
		"password": {"password123"},
		"name":     {"Trinh"},
		"risk":     {"Medium"},
	})
}

func TestEmailPattern(t *testing.T) {
	valid := []string{"trinh@example.com", "a.b+c_d%e-f@sub.domain.io", "x@y.co"}
	invalid := []string{"", "trinh", "trinh@", "@example.com", "trinh@example", "trinh@example.c", "tr inh@example.com", "trinh@exa mple.com", "trinh@example.c0m"}

	for _, s := range valid {
		assert.True(t, EmailPattern.MatchString(s), s)
	}
	for _, s := range invalid {
		assert.False(t, EmailPattern.MatchString(s), s)
	}
}

func TestBlurValidatesOneField(t *testing.T) {
	f := newTestForm(t)

	fe, err := f.Blur("email", "not-an-email")
	require.NoError(t, err)
	require.NotNil(t, fe)
	assert.Equal(t, FieldError{Field: "email", Rule: "emailaddr", Message: "Invalid email address"}, *fe)

	// Other fields are untouched by a blur.
	assert.Equal(t, map[string]string{"email": "Invalid email address"}, f.Errors())

	fe, err = f.Blur("email", "")
	require.NoError(t, err)
	assert.Equal(t, "Email is required", fe.Message)

	fe, err = f.Blur("email", "trinh@example.com")
	require.NoError(t, err)
	assert.Nil(t, fe)
	assert.Empty(t, f.Errors())
	assert.Equal(t, "trinh@example.com", f.Value("email"))
}

func TestBlurPasswordLength(t *testing.T) {
	f := newTestForm(t)
	for _, pw := range []string{"a", "1234567", "ññññññ"} {
		fe, err := f.Blur("password", pw)
		require.NoError(t, err)
		require.NotNil(t, fe, pw)
		assert.Equal(t, "Password must be at least 8 characters long", fe.Message)
	}
	fe, err := f.Blur("password", "12345678")
	require.NoError(t, err)
	assert.Nil(t, fe)
}

func TestDefaultMessages(t *testing.T) {
	f := newTestForm(t)

	fe, _ := f.Blur("name", "")
	assert.Equal(t, "Full name is required", fe.Message)
	fe, _ = f.Blur("name", "T")
	assert.Equal(t, "Full name must be at least 2 characters long", fe.Message)

	fe, _ = f.Blur("risk", "Reckless")
	assert.Equal(t, "option", fe.Rule)
	assert.Equal(t, "Please select a valid risk tolerance", fe.Message)

	fe, err := f.Blur("note", "")
	require.NoError(t, err)
	assert.Nil(t, fe)
}

func TestBlurUnknownField(t *testing.T) {
	f := newTestForm(t)
	_, err := f.Blur("internal", "x")
	assert.ErrorIs(t, err, ErrUnknownField)
	assert.False(t, f.HasField("internal"))
	assert.Equal(t, []string{"email", "password", "name", "risk", "note"}, f.Fields())
}

func TestSubmitEmptyReportsEveryRequiredField(t *testing.T) {
	f := newTestForm(t)
	called := false

	err := f.Submit(context.Background(), func(context.Context, testValues) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, ErrInvalid)
	assert.False(t, called)
	assert.False(t, f.Valid())
	assert.Equal(t, map[string]string{
		"email":    "Email is required",
		"password": "Password is required",
		"name":     "Full name is required",
		"risk":     "Risk tolerance is required",
	}, f.Errors())

	fails := f.Failures()
	require.Len(t, fails, 4)
	assert.Equal(t, "email", fails[0].Field)
	assert.Equal(t, "risk", fails[3].Field)
}

func TestSubmitValidCallsOnce(t *testing.T) {
	f := newTestForm(t)
	fill(f)

	var calls int
	var got testValues
	err := f.Submit(context.Background(), func(_ context.Context, v testValues) error {
		calls++
		got = v
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "trinh@example.com", got.Email)
	assert.Equal(t, "password123", got.Password)
	assert.True(t, f.Valid())
	assert.False(t, f.Submitting())
}

func TestSubmitCallbackErrorReturnsToIdle(t *testing.T) {
	f := newTestForm(t)
	fill(f)
	boom := errors.New("boom")

	err := f.Submit(context.Background(), func(context.Context, testValues) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.False(t, f.Submitting())
}

func TestSubmitGate(t *testing.T) {
	f := newTestForm(t)
	fill(f)

	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = f.Submit(context.Background(), func(context.Context, testValues) error {
			calls.Add(1)
			close(started)
			<-release
			return nil
		})
	}()

	<-started
	assert.True(t, f.Submitting())

	err := f.Submit(context.Background(), func(context.Context, testValues) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	wg.Wait()

	assert.False(t, f.Submitting())
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewRejectsNonStringFields(t *testing.T) {
	type bad struct {
		Age int `form:"age"`
	}
	val, err := NewValidator(options.Default())
	require.NoError(t, err)

	_, err = New[bad]("bad", val)
	assert.Error(t, err)

	_, err = New[string]("str", val)
	assert.Error(t, err)
}
