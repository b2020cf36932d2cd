package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/voicebox-mcp/voicebox/tts"
)

func writeAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	stamp := time.Now().Add(-age)
	if err := os.Chtimes(path, stamp, stamp); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSweepRemovesOnlyStaleOwnedFiles(t *testing.T) {
	dir := t.TempDir()

	stale := writeAged(t, dir, tts.AudioFilePrefix+"stale.mp3", 2*time.Hour)
	fresh := writeAged(t, dir, tts.AudioFilePrefix+"fresh.mp3", time.Minute)
	foreign := writeAged(t, dir, "someone-elses.mp3", 2*time.Hour)
	wrongExt := writeAged(t, dir, tts.AudioFilePrefix+"notes.txt", 2*time.Hour)

	j := NewJanitor(dir, time.Hour, time.Hour)
	removed, err := j.Sweep()
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed %d files, want 1", removed)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Error("stale owned file should be gone")
	}
	for _, path := range []string{fresh, foreign, wrongExt} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("%s should have survived: %v", filepath.Base(path), err)
		}
	}
}

func TestSweepMissingDirectory(t *testing.T) {
	j := NewJanitor(filepath.Join(t.TempDir(), "never-created"), time.Hour, time.Hour)
	removed, err := j.Sweep()
	if err != nil {
		t.Errorf("missing directory should not be an error: %v", err)
	}
	if removed != 0 {
		t.Errorf("removed %d files from a missing directory", removed)
	}
}

func TestSweepSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, tts.AudioFilePrefix+"dir.mp3")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	stamp := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(sub, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	j := NewJanitor(dir, time.Hour, time.Hour)
	removed, err := j.Sweep()
	if err != nil {
		t.Fatalf("Sweep failed: %v", err)
	}
	if removed != 0 {
		t.Error("directories must never be removed")
	}
	if _, err := os.Stat(sub); err != nil {
		t.Errorf("directory should still exist: %v", err)
	}
}

func TestJanitorStartStop(t *testing.T) {
	dir := t.TempDir()
	writeAged(t, dir, tts.AudioFilePrefix+"stale.mp3", 2*time.Hour)

	j := NewJanitor(dir, time.Hour, time.Hour)
	j.Start()
	defer j.Stop()

	// The initial sweep runs asynchronously right after Start.
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(filepath.Join(dir, tts.AudioFilePrefix+"stale.mp3")); os.IsNotExist(err) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("initial sweep did not run")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
