package speech

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOp(t *testing.T) {
	s := NewNoOp(nil)
	assert.NoError(t, s.Speak(context.Background(), "hello"))
	s.Cancel()
	s.Cancel()
}

func TestNew(t *testing.T) {
	s, err := New("none", nil)
	require.NoError(t, err)
	assert.IsType(t, &NoOp{}, s)

	s, err = New("festival", nil)
	assert.Error(t, err)
	assert.IsType(t, &NoOp{}, s, "unknown engines degrade to silence")
}

func requireBinary(t *testing.T, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err != nil {
		t.Skipf("%s not available", name)
	}
	return path
}

func TestCommandSpeakerRuns(t *testing.T) {
	s := NewCommandSpeaker(requireBinary(t, "true"))
	assert.NoError(t, s.Speak(context.Background(), "feedback text"))
}

func TestCommandSpeakerReportsFailure(t *testing.T) {
	s := NewCommandSpeaker(requireBinary(t, "false"))
	assert.Error(t, s.Speak(context.Background(), "feedback text"))
}

func TestCommandSpeakerCancel(t *testing.T) {
	s := NewCommandSpeaker(requireBinary(t, "sleep"))

	done := make(chan error, 1)
	go func() { done <- s.Speak(context.Background(), "10") }()

	// Let the command start before cancelling.
	time.Sleep(100 * time.Millisecond)
	s.Cancel()
	s.Cancel()

	select {
	case err := <-done:
		assert.NoError(t, err, "cancelled speech is not an error")
	case <-time.After(5 * time.Second):
		t.Fatal("Speak did not return after Cancel")
	}
}

func TestCommandSpeakerCancelWithoutSpeech(t *testing.T) {
	s := NewCommandSpeaker("unused")
	s.Cancel()
}
