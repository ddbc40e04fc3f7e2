// Package cue emits the short audio cues used by the breathing pacer.
package cue

import (
	"fmt"
	"os"
)

// Breathing cue frequencies from the pacer design: a slightly lower tone
// marks the inhale boundary, a slightly higher one the exhale.
const (
	InhaleHz = 420
	ExhaleHz = 432
)

// Sink receives cue requests. Implementations must be cheap and non-blocking;
// a cue is fired every second while the breathing pacer runs.
type Sink interface {
	Beep(freqHz int) error
}

// TerminalSink rings the terminal bell. Frequency is ignored - terminals
// offer a single bell - but the contract keeps richer sinks pluggable.
type TerminalSink struct{}

// NewTerminalSink creates a sink writing to stderr.
func NewTerminalSink() *TerminalSink {
	return &TerminalSink{}
}

func (s *TerminalSink) Beep(freqHz int) error {
	if _, err := fmt.Fprint(os.Stderr, "\a"); err != nil {
		return fmt.Errorf("failed to ring terminal bell: %w", err)
	}
	return nil
}

// MockSink records cue requests for tests.
type MockSink struct {
	Beeps []int
}

// NewMockSink creates an empty recorder.
func NewMockSink() *MockSink {
	return &MockSink{}
}

func (s *MockSink) Beep(freqHz int) error {
	s.Beeps = append(s.Beeps, freqHz)
	return nil
}
