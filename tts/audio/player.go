// Package audio plays cloud-produced MP3 files in the background and keeps
// the shared output directory from filling up with stale audio.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
	"github.com/hajimehoshi/go-mp3"

	"github.com/voicebox-mcp/voicebox/tts"
)

// Player implements tts.Player on an oto audio context. The context is
// created lazily on the first play and reused afterwards.
type Player struct {
	mu         sync.Mutex
	ctx        *oto.Context
	sampleRate int
}

// NewPlayer creates a player. No audio device is touched until the first
// PlayFile call.
func NewPlayer() *Player {
	return &Player{}
}

// PlayFile decodes an MP3 file, optionally applies the echo effect and
// starts background playback. It returns once playback has started;
// completion is logged, not awaited.
func (p *Player) PlayFile(path string, echo *tts.EchoConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	// go-mp3 always emits 16-bit stereo PCM. Decode fully up front so the
	// echo effect can reach past the end of the dry signal.
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	if echo != nil {
		pcm = applyEcho(pcm, dec.SampleRate(), *echo)
	}

	ctx, err := p.context(int(dec.SampleRate()))
	if err != nil {
		return err
	}

	player := ctx.NewPlayer(bytes.NewReader(pcm))
	player.Play()
	log.Debug("playback started", "path", path, "echo", echo != nil)

	go func() {
		for player.IsPlaying() {
			time.Sleep(50 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			log.Warn("closing audio player", "err", err)
		}
		log.Debug("playback finished", "path", path)
	}()
	return nil
}

// context returns the shared oto context, creating it on first use. oto
// fixes the sample rate per context; files at a different rate still play,
// pitch-shifted, which beats failing outright.
func (p *Player) context(sampleRate int) (*oto.Context, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ctx != nil {
		if sampleRate != p.sampleRate {
			log.Warn("sample rate differs from audio context",
				"context", p.sampleRate, "file", sampleRate)
		}
		return p.ctx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("create audio context: %w", err)
	}
	<-ready

	p.ctx = ctx
	p.sampleRate = sampleRate
	return ctx, nil
}
