package notify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	_, ok := r.Last()
	assert.False(t, ok)

	r.Success("saved")
	r.Warning("email is already registered")

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, LevelSuccess, all[0].Level)
	assert.Equal(t, "saved", all[0].Message)
	assert.NotEqual(t, all[0].ID, all[1].ID)

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, LevelWarning, last.Level)

	r.Reset()
	assert.Empty(t, r.All())
}

func TestRecorderSubscribe(t *testing.T) {
	r := NewRecorder()
	ch := r.Subscribe()

	r.Success("created")
	n := <-ch
	assert.Equal(t, "created", n.Message)

	r.Unsubscribe(ch)
	_, open := <-ch
	assert.False(t, open)

	r.Warning("no listener left")
	assert.Len(t, r.All(), 2)
}

func TestConsoleAndTee(t *testing.T) {
	var buf bytes.Buffer
	rec := NewRecorder()
	n := Tee(NewConsole(&buf), rec, Discard)

	n.Success("User created successfully")
	n.Warning("phone is already registered")

	out := buf.String()
	assert.Contains(t, out, "User created successfully")
	assert.Contains(t, out, "phone is already registered")
	assert.Len(t, rec.All(), 2)
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	NewLog(logger).Warning("stock must be a whole number")

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "stock must be a whole number")
}
