package player

import (
	"encoding/json"
	"fmt"
	"net"
	"os/exec"
	"time"
)

// MpvPlayer drives an mpv process over its JSON IPC socket. One process is
// launched per medium (video window or audio-only) so the transport can pause
// both without them fighting over a shared position.
type MpvPlayer struct {
	socketPath string
	videoOut   bool
	cmd        *exec.Cmd
	conn       net.Conn
}

// NewMpvPlayer creates a player that will talk to mpv via socketPath.
// videoOut controls whether mpv opens a video window or runs audio-only.
func NewMpvPlayer(socketPath string, videoOut bool) *MpvPlayer {
	return &MpvPlayer{socketPath: socketPath, videoOut: videoOut}
}

// MpvAvailable reports whether the mpv binary is on PATH.
func MpvAvailable() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

// Load spawns mpv (if needed) paused on the source.
func (p *MpvPlayer) Load(source string) error {
	if p.cmd == nil {
		args := []string{
			"--idle=yes",
			"--pause",
			"--input-ipc-server=" + p.socketPath,
		}
		if !p.videoOut {
			args = append(args, "--no-video")
		}
		cmd := exec.Command("mpv", args...)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("failed to start mpv: %w", err)
		}
		p.cmd = cmd
	}
	return p.command("loadfile", source)
}

// Play resumes playback. Safe to call while already playing.
func (p *MpvPlayer) Play() error {
	return p.setProperty("pause", false)
}

// Pause halts playback. Safe to call while already paused.
func (p *MpvPlayer) Pause() error {
	return p.setProperty("pause", true)
}

// Seek moves to an absolute position in seconds.
func (p *MpvPlayer) Seek(seconds float64) error {
	return p.command("seek", seconds, "absolute")
}

// Stop halts playback and unloads the source.
func (p *MpvPlayer) Stop() error {
	return p.command("stop")
}

// Duration queries mpv for the media length. ok is false if the property is
// not yet available (stream still loading) or the query fails.
func (p *MpvPlayer) Duration() (float64, bool) {
	resp, err := p.request("get_property", "duration")
	if err != nil {
		return 0, false
	}
	d, ok := resp.(float64)
	return d, ok && d > 0
}

// Close tears down the IPC connection and the mpv process.
func (p *MpvPlayer) Close() error {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
		p.cmd = nil
	}
	return nil
}

func (p *MpvPlayer) dial() (net.Conn, error) {
	if p.conn != nil {
		return p.conn, nil
	}
	// mpv creates the socket shortly after startup; retry briefly.
	var lastErr error
	for i := 0; i < 20; i++ {
		conn, err := net.DialTimeout("unix", p.socketPath, 200*time.Millisecond)
		if err == nil {
			p.conn = conn
			return conn, nil
		}
		lastErr = err
		time.Sleep(50 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to mpv socket %s: %w", p.socketPath, lastErr)
}

func (p *MpvPlayer) setProperty(name string, value interface{}) error {
	return p.command("set_property", name, value)
}

func (p *MpvPlayer) command(args ...interface{}) error {
	_, err := p.request(args...)
	return err
}

func (p *MpvPlayer) request(args ...interface{}) (interface{}, error) {
	conn, err := p.dial()
	if err != nil {
		return nil, err
	}

	msg, err := json.Marshal(map[string]interface{}{"command": args})
	if err != nil {
		return nil, fmt.Errorf("failed to encode mpv command: %w", err)
	}
	if _, err := conn.Write(append(msg, '\n')); err != nil {
		// Drop the connection so the next command re-dials.
		conn.Close()
		p.conn = nil
		return nil, fmt.Errorf("failed to send mpv command: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	dec := json.NewDecoder(conn)
	for {
		var resp struct {
			Error string      `json:"error"`
			Data  interface{} `json:"data"`
			Event string      `json:"event"`
		}
		if err := dec.Decode(&resp); err != nil {
			conn.Close()
			p.conn = nil
			return nil, fmt.Errorf("failed to read mpv response: %w", err)
		}
		// mpv interleaves async events with command replies; skip events.
		if resp.Event != "" {
			continue
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv command failed: %s", resp.Error)
		}
		return resp.Data, nil
	}
}
