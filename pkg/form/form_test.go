package form_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

type field struct {
	name      string
	value     string
	directive string
	declared  bool
	messages  map[string]string

	classes []string
	slot    *slot
}

type slot struct {
	class   string
	text    string
	visible bool
}

// memoryAdapter is an in-memory document used to observe what Form applies.
type memoryAdapter struct {
	fields       []*field
	slotsCreated int
	applyCalls   int
}

func newAdapter(fields ...*field) *memoryAdapter {
	return &memoryAdapter{fields: fields}
}

func input(name, directive, value string) *field {
	return &field{name: name, directive: directive, value: value, declared: true}
}

func (a *memoryAdapter) Fields() []*field {
	var out []*field
	for _, f := range a.fields {
		if f.declared {
			out = append(out, f)
		}
	}
	return out
}

func (a *memoryAdapter) FieldName(f *field) string { return f.name }
func (a *memoryAdapter) ReadValue(f *field) string { return f.value }

func (a *memoryAdapter) ReadDirective(f *field) (validator.Directive, bool) {
	if !f.declared {
		return nil, false
	}
	return validator.ParseDirective(f.directive), true
}

func (a *memoryAdapter) ReadCustomMessage(f *field, rule string) (string, bool) {
	msg, ok := f.messages[rule]
	return msg, ok
}

func (a *memoryAdapter) ApplyStatus(f *field, s form.Status) {
	a.applyCalls++
	kept := f.classes[:0]
	for _, c := range f.classes {
		if c != s.ValidClass && c != s.InvalidClass {
			kept = append(kept, c)
		}
	}
	f.classes = append(kept, s.Class())

	if f.slot == nil || f.slot.class != s.ErrorClass {
		f.slot = &slot{class: s.ErrorClass}
		a.slotsCreated++
	}
	f.slot.text = s.Message
	f.slot.visible = !s.Valid
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires adapter", func(t *testing.T) {
		_, err := form.New[*field](nil)
		assert.ErrorIs(t, err, form.ErrNilAdapter)
	})

	t.Run("defaults", func(t *testing.T) {
		f, err := form.New[*field](newAdapter())
		require.NoError(t, err)
		assert.Equal(t, "form", f.Name())
		assert.Equal(t, form.DefaultOptions(), f.Options())
	})

	t.Run("supplied options override by key", func(t *testing.T) {
		f, err := form.New[*field](newAdapter(),
			form.WithName("signup"),
			form.WithOptions(form.Options{ValidClass: "ok"}),
			form.WithInvalidClass("bad"),
			form.WithErrorClass(""),
		)
		require.NoError(t, err)

		opts := f.Options()
		assert.Equal(t, "signup", f.Name())
		assert.Equal(t, "error-message", opts.ErrorClass)
		assert.Equal(t, "ok", opts.ValidClass)
		assert.Equal(t, "bad", opts.InvalidClass)
	})

	t.Run("rejects negative concurrency", func(t *testing.T) {
		_, err := form.New[*field](newAdapter(), form.WithConcurrency(-1))
		assert.ErrorIs(t, err, form.ErrInvalidConcurrency)
	})
}

func TestForm_OnValueChanged(t *testing.T) {
	t.Parallel()

	t.Run("applies invalid status", func(t *testing.T) {
		email := input("email", "required email", "nope")
		a := newAdapter(email)
		f, err := form.New[*field](a)
		require.NoError(t, err)

		v, ok := f.OnValueChanged(context.Background(), email)
		require.True(t, ok)
		assert.Equal(t, validator.Invalid("email", "Please enter a valid email address"), v)
		assert.Equal(t, []string{"is-invalid"}, email.classes)
		assert.Equal(t, "Please enter a valid email address", email.slot.text)
		assert.True(t, email.slot.visible)
	})

	t.Run("switches classes exclusively and reuses the slot", func(t *testing.T) {
		email := input("email", "required email", "")
		email.classes = []string{"input", "is-valid"}
		a := newAdapter(email)
		f, err := form.New[*field](a)
		require.NoError(t, err)

		f.OnValueChanged(context.Background(), email)
		assert.Equal(t, []string{"input", "is-invalid"}, email.classes)

		email.value = "user@example.com"
		v, _ := f.OnValueChanged(context.Background(), email)
		assert.True(t, v.Valid)
		assert.Equal(t, []string{"input", "is-valid"}, email.classes)
		assert.Empty(t, email.slot.text)
		assert.False(t, email.slot.visible)
		assert.Equal(t, 1, a.slotsCreated)
	})

	t.Run("ignores fields without directive", func(t *testing.T) {
		plain := &field{name: "note", value: ""}
		a := newAdapter(plain)
		f, err := form.New[*field](a)
		require.NoError(t, err)

		v, ok := f.OnValueChanged(context.Background(), plain)
		assert.False(t, ok)
		assert.True(t, v.Valid)
		assert.Zero(t, a.applyCalls)
	})

	t.Run("custom message wins", func(t *testing.T) {
		pw := input("password", "required min:8", "short")
		pw.messages = map[string]string{"min": "Too short!"}
		f, err := form.New[*field](newAdapter(pw))
		require.NoError(t, err)

		v, _ := f.OnValueChanged(context.Background(), pw)
		assert.Equal(t, "Too short!", v.Message)
		assert.Equal(t, "Too short!", pw.slot.text)
	})

	t.Run("uses configured classes", func(t *testing.T) {
		name := input("name", "required", "")
		f, err := form.New[*field](newAdapter(name),
			form.WithErrorClass("help"),
			form.WithValidClass("good"),
			form.WithInvalidClass("bad"),
		)
		require.NoError(t, err)

		f.OnValueChanged(context.Background(), name)
		assert.Equal(t, []string{"bad"}, name.classes)
		assert.Equal(t, "help", name.slot.class)
	})

	t.Run("idempotent", func(t *testing.T) {
		zip := input("zip", "required numeric min:5", "12a")
		a := newAdapter(zip)
		f, err := form.New[*field](a)
		require.NoError(t, err)

		first, _ := f.OnValueChanged(context.Background(), zip)
		classes := append([]string(nil), zip.classes...)
		text := zip.slot.text

		second, _ := f.OnValueChanged(context.Background(), zip)
		assert.Equal(t, first, second)
		assert.Equal(t, classes, zip.classes)
		assert.Equal(t, text, zip.slot.text)
		assert.Equal(t, 1, a.slotsCreated)
	})
}

func TestForm_Evaluate(t *testing.T) {
	t.Parallel()

	name := input("name", "required", "")
	a := newAdapter(name)
	f, err := form.New[*field](a)
	require.NoError(t, err)

	v, ok := f.Evaluate(name)
	assert.True(t, ok)
	assert.False(t, v.Valid)
	assert.Zero(t, a.applyCalls)
	assert.Nil(t, name.slot)
}

type callbacks struct {
	mu        sync.Mutex
	successes []form.Verdict
	errors    []form.Verdict
	forms     []*form.Form[*field]
}

func (c *callbacks) options() []form.Option {
	return []form.Option{
		form.WithOnSuccess[*field](func(_ context.Context, s form.Submission[*field]) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.successes = append(c.successes, s.Verdict)
			c.forms = append(c.forms, s.Form)
		}),
		form.WithOnError[*field](func(_ context.Context, s form.Submission[*field]) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.errors = append(c.errors, s.Verdict)
			c.forms = append(c.forms, s.Form)
		}),
	}
}

func TestForm_OnSubmitRequested(t *testing.T) {
	t.Parallel()

	t.Run("aggregates to invalid and fires OnError once", func(t *testing.T) {
		a := newAdapter(
			input("name", "required", "Ann"),
			input("email", "required email", "bad"),
			input("age", "numeric", "42"),
		)
		cb := &callbacks{}
		f, err := form.New[*field](a, cb.options()...)
		require.NoError(t, err)

		v := f.OnSubmitRequested(context.Background())
		assert.False(t, v.Valid)
		assert.Len(t, cb.errors, 1)
		assert.Empty(t, cb.successes)
		assert.Equal(t, v.SubmissionID, cb.errors[0].SubmissionID)

		require.Len(t, v.Fields, 3)
		assert.Equal(t, []string{"name", "email", "age"}, []string{v.Fields[0].Name, v.Fields[1].Name, v.Fields[2].Name})
		assert.True(t, v.Fields[0].Verdict.Valid)
		assert.False(t, v.Fields[1].Verdict.Valid)
		assert.True(t, v.Fields[2].Verdict.Valid)
		assert.Equal(t, map[string]string{"email": "Please enter a valid email address"}, v.Messages())
		assert.Equal(t, 3, a.applyCalls)
	})

	t.Run("valid submission fires OnSuccess once", func(t *testing.T) {
		a := newAdapter(input("name", "required", "Ann"), input("email", "email", "a@b.co"))
		cb := &callbacks{}
		f, err := form.New[*field](a, cb.options()...)
		require.NoError(t, err)

		v := f.OnSubmitRequested(context.Background())
		assert.True(t, v.Valid)
		assert.Len(t, cb.successes, 1)
		assert.Empty(t, cb.errors)
		assert.Empty(t, v.Invalid())
	})

	t.Run("form without declared fields is valid", func(t *testing.T) {
		a := newAdapter(&field{name: "free"})
		cb := &callbacks{}
		f, err := form.New[*field](a, cb.options()...)
		require.NoError(t, err)

		v := f.OnSubmitRequested(context.Background())
		assert.True(t, v.Valid)
		assert.Empty(t, v.Fields)
		assert.Len(t, cb.successes, 1)
	})

	t.Run("every field gets a status", func(t *testing.T) {
		first := input("first", "required", "")
		second := input("second", "required", "")
		f, err := form.New[*field](newAdapter(first, second))
		require.NoError(t, err)

		f.OnSubmitRequested(context.Background())
		assert.Equal(t, []string{"is-invalid"}, first.classes)
		assert.Equal(t, []string{"is-invalid"}, second.classes)
	})

	t.Run("works without callbacks", func(t *testing.T) {
		f, err := form.New[*field](newAdapter(input("x", "required", "")))
		require.NoError(t, err)
		assert.NotPanics(t, func() {
			f.OnSubmitRequested(context.Background())
		})
	})

	t.Run("each submission gets its own id", func(t *testing.T) {
		f, err := form.New[*field](newAdapter(input("x", "required", "y")))
		require.NoError(t, err)

		a := f.OnSubmitRequested(context.Background())
		b := f.OnSubmitRequested(context.Background())
		assert.NotEqual(t, a.SubmissionID, b.SubmissionID)
		assert.Equal(t, a.Fields, b.Fields)
	})

	t.Run("cancelled context still applies statuses and fires one callback", func(t *testing.T) {
		x := input("x", "required", "")
		a := newAdapter(x)
		cb := &callbacks{}
		f, err := form.New[*field](a, cb.options()...)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		v := f.OnSubmitRequested(ctx)
		assert.False(t, v.Valid)
		assert.Equal(t, 1, a.applyCalls)
		assert.Equal(t, []string{"is-invalid"}, x.classes)
		assert.Len(t, cb.errors, 1)
		assert.Empty(t, cb.successes)
	})

	t.Run("cancelled context with concurrency evaluates every field", func(t *testing.T) {
		a := newAdapter(input("a", "required", "1"), input("b", "required", ""), input("c", "required", "3"))
		cb := &callbacks{}
		f, err := form.New[*field](a, append(cb.options(), form.WithConcurrency(4))...)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		v := f.OnSubmitRequested(ctx)
		require.Len(t, v.Fields, 3)
		assert.Len(t, v.Invalid(), 1)
		assert.Equal(t, 3, a.applyCalls)
		assert.Len(t, cb.errors, 1)
	})

	t.Run("callback receives the form it ran on", func(t *testing.T) {
		cb := &callbacks{}
		proto, err := form.New[*field](newAdapter(input("x", "required", "")), cb.options()...)
		require.NoError(t, err)

		other := newAdapter(input("y", "required", "ok"))
		f, err := proto.For(other)
		require.NoError(t, err)

		f.OnSubmitRequested(context.Background())
		require.Len(t, cb.forms, 1)
		assert.Same(t, f, cb.forms[0])
		assert.Same(t, other, cb.forms[0].Adapter())
		assert.Len(t, cb.successes, 1)
	})

	t.Run("callback for another field type is rejected", func(t *testing.T) {
		_, err := form.New[*field](newAdapter(),
			form.WithOnError[string](func(context.Context, form.Submission[string]) {}),
		)
		assert.ErrorIs(t, err, form.ErrCallbackType)
	})
}

func TestForm_Concurrency(t *testing.T) {
	t.Parallel()

	fields := make([]*field, 0, 40)
	for i := range 40 {
		value := "valid"
		if i%7 == 0 {
			value = ""
		}
		fields = append(fields, input(strings.Repeat("f", i+1), "required min:3", value))
	}

	seq, err := form.New[*field](newAdapter(fields...))
	require.NoError(t, err)
	par, err := form.New[*field](newAdapter(fields...), form.WithConcurrency(8))
	require.NoError(t, err)

	want := seq.OnSubmitRequested(context.Background())
	got := par.OnSubmitRequested(context.Background())
	assert.Equal(t, want.Valid, got.Valid)
	assert.Equal(t, want.Fields, got.Fields)
}

type recordingObserver struct {
	mu          sync.Mutex
	fields      []string
	submissions []bool
}

func (o *recordingObserver) FieldEvaluated(_, field string, v validator.Verdict) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fields = append(o.fields, field+"="+v.Rule)
}

func (o *recordingObserver) SubmissionCompleted(_ string, valid bool, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.submissions = append(o.submissions, valid)
}

func TestForm_Observer(t *testing.T) {
	t.Parallel()

	obs := &recordingObserver{}
	name := input("name", "required", "")
	f, err := form.New[*field](newAdapter(name, input("email", "email", "a@b.co")), form.WithObserver(obs))
	require.NoError(t, err)

	f.OnValueChanged(context.Background(), name)
	f.OnSubmitRequested(context.Background())

	assert.Equal(t, []string{"name=required", "name=required", "email="}, obs.fields)
	assert.Equal(t, []bool{false}, obs.submissions)
}

type explodingRule struct{}

func (explodingRule) Evaluate(string, []string) bool { panic("kaboom") }
func (explodingRule) DefaultMessage([]string) string { return "broken rule" }

func TestForm_Logging(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevel(-4))
	reg := validator.MustNew(validator.WithRule("explode", explodingRule{}))

	f, err := form.New[*field](
		newAdapter(input("name", "required legacyRule", ""), input("other", "explode", "x")),
		form.WithName("signup"),
		form.WithLogger(log),
		form.WithRegistry(reg),
	)
	require.NoError(t, err)

	v := f.OnSubmitRequested(context.Background())
	assert.False(t, v.Valid)

	other, ok := v.Field("other")
	require.True(t, ok)
	assert.Equal(t, validator.Invalid("explode", "broken rule"), other)

	out := buf.String()
	assert.Contains(t, out, `"msg":"form submitted"`)
	assert.Contains(t, out, `"form":"signup"`)
	assert.Contains(t, out, `"msg":"skipping unknown rules"`)
	assert.Contains(t, out, `"msg":"field invalid"`)
	assert.Contains(t, out, `"msg":"rule panicked"`)
	assert.Contains(t, out, `"outcome":"invalid"`)
}

func TestForm_For(t *testing.T) {
	t.Parallel()

	cb := &callbacks{}
	proto, err := form.New[*field](newAdapter(), append(cb.options(), form.WithName("signup"))...)
	require.NoError(t, err)

	_, err = proto.For(nil)
	assert.ErrorIs(t, err, form.ErrNilAdapter)

	a := newAdapter(input("name", "required", ""))
	f, err := proto.For(a)
	require.NoError(t, err)
	assert.Equal(t, "signup", f.Name())

	v := f.OnSubmitRequested(context.Background())
	assert.False(t, v.Valid)
	assert.Equal(t, 1, a.applyCalls)
	assert.Len(t, cb.errors, 1)
	assert.Empty(t, proto.Adapter().Fields())
}
