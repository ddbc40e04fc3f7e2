package types

// Event represents all possible events in the system
type Event interface {
	EventType() string
}

// Immediate Events - triggered by user actions for instant UI feedback

// SessionStarted is emitted when a slot begins running
type SessionStarted struct {
	Slot     SlotID `json:"slot"`
	Level    int    `json:"level"`
	Duration int    `json:"duration"`
}

func (e SessionStarted) EventType() string { return "session_started" }

// SessionStopped is emitted on a manual toggle-off before completion
type SessionStopped struct {
	Slot SlotID `json:"slot"`
}

func (e SessionStopped) EventType() string { return "session_stopped" }

// SessionFinished is emitted when the countdown reaches zero
type SessionFinished struct {
	Slot     SlotID `json:"slot"`
	Duration int    `json:"duration"`
}

func (e SessionFinished) EventType() string { return "session_finished" }

// JournalSaved is emitted after a journaling finish persists its entry
type JournalSaved struct {
	Entry JournalEntry `json:"entry"`
}

func (e JournalSaved) EventType() string { return "journal_saved" }

// MilestoneReached is emitted when the streak lands on a milestone value.
// Re-fires on every finish while the streak still equals a milestone.
type MilestoneReached struct {
	Streak int `json:"streak"`
}

func (e MilestoneReached) EventType() string { return "milestone_reached" }

// TransportChanged is emitted when the media transport starts, pauses,
// or switches medium
type TransportChanged struct {
	Playing bool   `json:"playing"`
	Medium  Medium `json:"medium"`
}

func (e TransportChanged) EventType() string { return "transport_changed" }

// StoreWriteFailed is emitted when a best-effort persistence write fails.
// Consumers may surface it in debug output; it is never fatal.
type StoreWriteFailed struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

func (e StoreWriteFailed) EventType() string { return "store_write_failed" }
