// Package say invokes the OS-native text-to-speech command. All platform
// command construction lives here, behind the tts.LocalBackend interface,
// so the selector stays platform-agnostic.
package say

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Backend runs the platform speech command as a blocking subprocess.
type Backend struct {
	binary string
}

// New probes the platform speech commands and returns a backend bound to
// the first one found. The backend is still usable when nothing was found;
// invocation then fails with a lookup error.
func New() *Backend {
	for _, candidate := range engineCandidates {
		if path, err := exec.LookPath(candidate); err == nil {
			log.Debug("local speech command found", "binary", path)
			return &Backend{binary: path}
		}
	}
	log.Warn("no local speech command found", "candidates", strings.Join(engineCandidates, ", "))
	return &Backend{}
}

// Available reports whether a platform speech command was found.
func (b *Backend) Available() bool {
	return b.binary != ""
}

// Speak speaks text through the platform engine, blocking until the process
// exits. An empty voiceID uses the platform default voice.
func (b *Backend) Speak(ctx context.Context, text, voiceID string) error {
	if b.binary == "" {
		return fmt.Errorf("no speech command available (tried %s)", strings.Join(engineCandidates, ", "))
	}

	args := speakArgs(text, voiceID)
	log.Debug("running speech command", "binary", b.binary, "voice", voiceID)

	cmd := exec.CommandContext(ctx, b.binary, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("speech command failed: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}
