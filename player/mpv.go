package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/mixtape-cli/mixtape/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements Transport using mpv's JSON-IPC protocol. A seek never
// happens inside mpv itself: LoadBytes writes the payload slice to a
// temporary file and Start plays that file from its beginning, either by
// spawning mpv or via loadfile on the running instance.
type MPV struct {
	socketPath string
	mediaPath  string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	mu         sync.Mutex    // protects socket writes
}

// NewMPV creates an mpv transport (does not start a process).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// LoadBytes writes the payload from fromOffset to a temporary mp3 file that
// the next Start will play. mpv reads the real filesystem, so this bypasses
// the afero layer on purpose.
func (m *MPV) LoadBytes(content []byte, fromOffset int64) error {
	if fromOffset < 0 {
		fromOffset = 0
	}
	if fromOffset > int64(len(content)) {
		fromOffset = int64(len(content))
	}

	if m.mediaPath == "" {
		m.mediaPath = filepath.Join(os.TempDir(), "mixtape-current.mp3")
	}

	if err := os.WriteFile(m.mediaPath, content[fromOffset:], 0o600); err != nil {
		return fmt.Errorf("write media file: %w", err)
	}

	return nil
}

// Start plays the staged media file. The first start spawns an idle mpv
// process and waits for its IPC socket, later starts reuse the running
// instance via loadfile.
func (m *MPV) Start() error {
	if m.mediaPath == "" {
		return &InitError{Backend: BackendMPV, Err: fmt.Errorf("no media staged")}
	}

	if m.isRunning() {
		if _, err := m.sendCommand([]interface{}{"loadfile", m.mediaPath, "replace"}); err != nil {
			return &InitError{Backend: BackendMPV, Err: err}
		}
		return nil
	}

	if err := m.spawn(); err != nil {
		return &InitError{Backend: BackendMPV, Err: err}
	}

	return nil
}

func (m *MPV) spawn() error {
	// Random socket path under os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/).
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("mixtape-%x.sock", randomBytes))
	}

	// Audio only. Do NOT pass --ao or --profile, respect the user's
	// mpv.conf.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		"--no-video",
		"--idle=yes",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		m.mediaPath,
	}

	m.cmd = exec.Command("mpv", args...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()

	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process to prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		// If the socket never became ready, kill the orphaned process
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// Halt stops playback but keeps the idle mpv process alive for the next
// reload.
func (m *MPV) Halt() error {
	if !m.isRunning() {
		return nil
	}

	_, err := m.sendCommand([]interface{}{"stop"})
	return err
}

// SetVolume sets mpv's volume property.
func (m *MPV) SetVolume(percent int) error {
	if !m.isRunning() {
		return nil
	}

	_, err := m.sendCommand([]interface{}{"set_property", "volume", percent})
	return err
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// isRunning reports whether mpv is responding to IPC commands.
func (m *MPV) isRunning() bool {
	if m.socketPath == "" {
		return false
	}

	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close shuts down the mpv process and cleans up the socket and media file.
func (m *MPV) Close() error {
	if m.socketPath != "" {
		// Try graceful quit via IPC
		_, _ = m.sendCommand([]interface{}{"quit"})

		select {
		case <-m.exited:
		case <-time.After(3 * time.Second):
			_ = killProcess(m.cmd)
		}

		_ = os.Remove(m.socketPath)
	}

	if m.mediaPath != "" {
		_ = os.Remove(m.mediaPath)
	}

	return nil
}
