// Package player abstracts external media playback. The transport never
// trusts a player's own clock; it issues commands and keeps its own notion
// of elapsed time, so a flaky or slow player cannot corrupt session state.
package player

// Player defines the commands the transport issues to a media backend.
// Implementations must tolerate being paused while already paused and
// played while already playing.
type Player interface {
	// Load points the player at a media source without starting playback.
	Load(source string) error
	// Play starts or resumes playback.
	Play() error
	// Pause halts playback, keeping the position.
	Pause() error
	// Seek moves the play position to the given offset in seconds.
	Seek(seconds float64) error
	// Stop halts playback and discards the position.
	Stop() error
	// Duration reports the media length in seconds. ok is false until the
	// backend has loaded enough of the source to know.
	Duration() (seconds float64, ok bool)
}
