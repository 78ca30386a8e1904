package progress

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	rec := &Recorder{}

	done := rec.Step("Opening login page")
	done(nil)
	done = rec.Step("Fetching account statement CSV")
	done(errors.New("boom"))

	require.Equal(t, []string{"Opening login page", "Fetching account statement CSV"}, rec.Started)
	require.Len(t, rec.Finished, 2)
	assert.NoError(t, rec.Finished[0].Err)
	assert.Error(t, rec.Finished[1].Err)
}

type panicker struct{}

func (panicker) Step(string) Done {
	panic("reporter bug")
}

type panickyDone struct{}

func (panickyDone) Step(string) Done {
	return func(error) { panic("done bug") }
}

func TestGuardSwallowsPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		done := Guard(panicker{}).Step("step")
		done(nil)
	})
	assert.NotPanics(t, func() {
		done := Guard(panickyDone{}).Step("step")
		done(errors.New("x"))
	})
}

func TestGuardNilReporter(t *testing.T) {
	assert.NotPanics(t, func() {
		done := Guard(nil).Step("step")
		done(nil)
	})
}

func TestFuncReceivesLabel(t *testing.T) {
	var got []string
	r := Func(func(msg string) { got = append(got, msg) })

	done := r.Step("Logging in")
	done(nil)

	assert.Equal(t, []string{"Logging in"}, got)
}

func TestConsoleWritesOutcome(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.Step("Fetching balance")(nil)
	c.Step("Fetching transactions")(errors.New("status 500"))

	out := buf.String()
	assert.Contains(t, out, "✅ Fetching balance")
	assert.Contains(t, out, "❌ Fetching transactions")
}
