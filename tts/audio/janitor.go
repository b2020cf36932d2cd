package audio

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/voicebox-mcp/voicebox/tts"
)

// Janitor removes stale audio files from the output directory on a rolling
// age threshold. Only files this process family wrote (voicebox- prefix,
// .mp3 suffix) are ever touched.
type Janitor struct {
	dir      string
	maxAge   time.Duration
	interval time.Duration

	stop chan struct{}
	done chan struct{}
}

// NewJanitor creates a janitor for dir. Files older than maxAge are removed
// every interval.
func NewJanitor(dir string, maxAge, interval time.Duration) *Janitor {
	return &Janitor{
		dir:      dir,
		maxAge:   maxAge,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the cleanup loop in the background, sweeping once immediately.
func (j *Janitor) Start() {
	go func() {
		defer close(j.done)

		j.sweepAndLog()
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.sweepAndLog()
			case <-j.stop:
				return
			}
		}
	}()
}

// Stop terminates the cleanup loop and waits for it to exit.
func (j *Janitor) Stop() {
	close(j.stop)
	<-j.done
}

func (j *Janitor) sweepAndLog() {
	removed, err := j.Sweep()
	if err != nil {
		log.Warn("audio cleanup sweep failed", "dir", j.dir, "err", err)
		return
	}
	if removed > 0 {
		log.Debug("stale audio files removed", "dir", j.dir, "count", removed)
	}
}

// Sweep removes stale audio files once and returns how many went away. A
// missing directory is not an error; nothing has been written yet.
func (j *Janitor) Sweep() (int, error) {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	cutoff := time.Now().Add(-j.maxAge)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, tts.AudioFilePrefix) || !strings.HasSuffix(name, ".mp3") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(j.dir, name)); err != nil {
			log.Warn("removing stale audio file", "file", name, "err", err)
			continue
		}
		removed++
	}
	return removed, nil
}
