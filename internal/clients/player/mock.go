package player

import "fmt"

// MockPlayer records issued commands for tests.
type MockPlayer struct {
	Commands []string
	Source   string
	Playing  bool
	Position float64

	// KnownDuration simulates a loaded source reporting its length.
	// Zero means the duration is not yet known.
	KnownDuration float64

	// FailAll makes every command return an error, for exercising the
	// transport's swallow-and-continue behavior.
	FailAll bool
}

// NewMockPlayer creates a mock with no loaded source.
func NewMockPlayer() *MockPlayer {
	return &MockPlayer{}
}

func (m *MockPlayer) record(cmd string) error {
	m.Commands = append(m.Commands, cmd)
	if m.FailAll {
		return fmt.Errorf("mock player: %s failed", cmd)
	}
	return nil
}

func (m *MockPlayer) Load(source string) error {
	m.Source = source
	return m.record("load " + source)
}

func (m *MockPlayer) Play() error {
	if !m.FailAll {
		m.Playing = true
	}
	return m.record("play")
}

func (m *MockPlayer) Pause() error {
	if !m.FailAll {
		m.Playing = false
	}
	return m.record("pause")
}

func (m *MockPlayer) Seek(seconds float64) error {
	if !m.FailAll {
		m.Position = seconds
	}
	return m.record(fmt.Sprintf("seek %.3f", seconds))
}

func (m *MockPlayer) Stop() error {
	if !m.FailAll {
		m.Playing = false
		m.Position = 0
	}
	return m.record("stop")
}

func (m *MockPlayer) Duration() (float64, bool) {
	return m.KnownDuration, m.KnownDuration > 0
}
