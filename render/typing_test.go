package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypingCycle(t *testing.T) {
	a := NewTypingAnimator([]string{"ab", "cd"})

	assert.Equal(t, PhaseTyping, a.Phase())
	assert.Equal(t, "", a.Frame())

	a.Tick()
	assert.Equal(t, "a", a.Frame())
	a.Tick()
	assert.Equal(t, "ab", a.Frame())
	assert.Equal(t, PhasePausedFull, a.Phase())

	a.Tick()
	assert.Equal(t, PhaseErasing, a.Phase())
	a.Tick()
	assert.Equal(t, "a", a.Frame())
	a.Tick()
	assert.Equal(t, "", a.Frame())
	assert.Equal(t, PhasePausedEmpty, a.Phase())

	a.Tick()
	assert.Equal(t, PhaseTyping, a.Phase())
	a.Tick()
	assert.Equal(t, "c", a.Frame(), "moves on to the next phrase")
}

func TestTypingWrapsToFirstPhrase(t *testing.T) {
	a := NewTypingAnimator([]string{"x"})

	// type, pause, erase, pause, back to typing
	for i := 0; i < 4; i++ {
		a.Tick()
	}
	assert.Equal(t, PhaseTyping, a.Phase())
	a.Tick()
	assert.Equal(t, "x", a.Frame())
}

func TestTypingDelays(t *testing.T) {
	a := NewTypingAnimator([]string{"hi"})

	assert.Equal(t, 100*time.Millisecond, a.Delay())
	a.Tick()
	a.Tick()
	assert.Equal(t, 2*time.Second, a.Delay())
	a.Tick()
	assert.Equal(t, 50*time.Millisecond, a.Delay())
	a.Tick()
	a.Tick()
	assert.Equal(t, 500*time.Millisecond, a.Delay())
}

func TestTypingSuspendFreezesFrame(t *testing.T) {
	a := NewTypingAnimator([]string{"abc"})
	a.Tick()
	a.Suspend()

	frame := a.Frame()
	for i := 0; i < 10; i++ {
		a.Tick()
	}
	assert.Equal(t, frame, a.Frame())

	a.Resume()
	a.Tick()
	assert.Equal(t, "ab", a.Frame())
}

func TestTypingEmptyPhrases(t *testing.T) {
	a := NewTypingAnimator(nil)
	a.Tick()
	assert.Equal(t, "", a.Frame())
}

func TestTypingSequence(t *testing.T) {
	steps := TypingSequence([]string{"ab"})

	want := []TypingStep{
		{Frame: "", DelayMs: 100},
		{Frame: "a", DelayMs: 100},
		{Frame: "ab", DelayMs: 2000},
		{Frame: "ab", DelayMs: 50},
		{Frame: "a", DelayMs: 50},
		{Frame: "", DelayMs: 500},
	}
	assert.Equal(t, want, steps)
}

func TestTypingSequenceCoversEveryPhrase(t *testing.T) {
	steps := TypingSequence([]string{"ab", "c"})

	frames := make(map[string]bool, len(steps))
	for _, s := range steps {
		frames[s.Frame] = true
	}
	assert.True(t, frames["ab"])
	assert.True(t, frames["c"])
	assert.Len(t, steps, 10)
}

func TestTypingSequenceEmpty(t *testing.T) {
	assert.Nil(t, TypingSequence(nil))
}

func TestTypingMultibytePhrase(t *testing.T) {
	a := NewTypingAnimator([]string{"가나"})
	a.Tick()
	assert.Equal(t, "가", a.Frame())
	a.Tick()
	assert.Equal(t, "가나", a.Frame())
}
