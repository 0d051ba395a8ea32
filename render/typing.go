package render

import "time"

// Timing constants for the hero headline animation.
const (
	TypeInterval    = 100 * time.Millisecond
	EraseInterval   = 50 * time.Millisecond
	FullPhrasePause = 2 * time.Second
	EmptyPause      = 500 * time.Millisecond
)

// TypingPhase is one stage of the headline cycle.
type TypingPhase int

const (
	PhaseTyping TypingPhase = iota
	PhasePausedFull
	PhaseErasing
	PhasePausedEmpty
)

// TypingAnimator steps a phrase list through the type/pause/erase cycle.
// It is a plain state machine driven by Tick, so the server can precompute
// frames and tests can step it without real timers. Not safe for concurrent
// use.
type TypingAnimator struct {
	phrases   []string
	phraseIdx int
	charIdx   int
	phase     TypingPhase
	suspended bool
}

// NewTypingAnimator starts at the first phrase with nothing typed.
func NewTypingAnimator(phrases []string) *TypingAnimator {
	return &TypingAnimator{phrases: phrases}
}

// Frame returns the currently visible prefix.
func (a *TypingAnimator) Frame() string {
	if len(a.phrases) == 0 {
		return ""
	}
	return string([]rune(a.phrases[a.phraseIdx])[:a.charIdx])
}

// Phase returns the current stage.
func (a *TypingAnimator) Phase() TypingPhase {
	return a.phase
}

// Delay returns how long the current frame stays on screen.
func (a *TypingAnimator) Delay() time.Duration {
	switch a.phase {
	case PhasePausedFull:
		return FullPhrasePause
	case PhaseErasing:
		return EraseInterval
	case PhasePausedEmpty:
		return EmptyPause
	default:
		return TypeInterval
	}
}

// Tick advances one step. While suspended the state is frozen and Tick is
// a no-op, so a hidden tab does not fast-forward the cycle.
func (a *TypingAnimator) Tick() {
	if a.suspended || len(a.phrases) == 0 {
		return
	}

	phraseLen := len([]rune(a.phrases[a.phraseIdx]))
	switch a.phase {
	case PhaseTyping:
		a.charIdx++
		if a.charIdx >= phraseLen {
			a.charIdx = phraseLen
			a.phase = PhasePausedFull
		}
	case PhasePausedFull:
		a.phase = PhaseErasing
	case PhaseErasing:
		a.charIdx--
		if a.charIdx <= 0 {
			a.charIdx = 0
			a.phase = PhasePausedEmpty
		}
	case PhasePausedEmpty:
		a.phraseIdx = (a.phraseIdx + 1) % len(a.phrases)
		a.phase = PhaseTyping
	}
}

// TypingStep is one precomputed frame of the headline schedule.
type TypingStep struct {
	Frame   string `json:"frame"`
	DelayMs int64  `json:"delay_ms"`
}

// TypingSequence steps an animator through one full cycle over phrases and
// returns the frame schedule. The client replays the steps in order and
// loops; the cycle ends when the state returns to the starting frame.
func TypingSequence(phrases []string) []TypingStep {
	if len(phrases) == 0 {
		return nil
	}
	a := NewTypingAnimator(phrases)
	var steps []TypingStep
	for {
		steps = append(steps, TypingStep{Frame: a.Frame(), DelayMs: a.Delay().Milliseconds()})
		a.Tick()
		if a.phraseIdx == 0 && a.charIdx == 0 && a.phase == PhaseTyping {
			return steps
		}
	}
}

// Suspend freezes the animator mid-frame.
func (a *TypingAnimator) Suspend() {
	a.suspended = true
}

// Resume continues from the frozen frame.
func (a *TypingAnimator) Resume() {
	a.suspended = false
}
