package types

// SlotID identifies one of the six fixed exercises in the carousel.
type SlotID int

const (
	SlotBreathing SlotID = iota
	SlotPosture
	SlotNature
	SlotMuscle
	SlotCold
	SlotJournal

	SlotCount = 6
)

func (s SlotID) String() string {
	switch s {
	case SlotBreathing:
		return "breathing"
	case SlotPosture:
		return "posture"
	case SlotNature:
		return "nature"
	case SlotMuscle:
		return "muscle"
	case SlotCold:
		return "cold"
	case SlotJournal:
		return "journal"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the six carousel slots.
func (s SlotID) Valid() bool {
	return s >= SlotBreathing && s < SlotCount
}

// HasMedia reports whether the slot drives the media transport.
func (s SlotID) HasMedia() bool {
	return s == SlotNature
}

// Medium is the active rendering surface for a media-bearing slot.
type Medium int

const (
	MediumVideo Medium = iota
	MediumAudio
)

func (m Medium) String() string {
	if m == MediumAudio {
		return "audio"
	}
	return "video"
}

// DurationClass selects the journaling session length.
type DurationClass string

const (
	ClassQuick DurationClass = "quick-2m"
	ClassFull  DurationClass = "full-12m"
)

// Seconds returns the session length for the class.
func (c DurationClass) Seconds() int {
	if c == ClassFull {
		return 720
	}
	return 120
}
