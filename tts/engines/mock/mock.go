// Package mock provides scriptable backends for testing the selector.
package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/voicebox-mcp/voicebox/tts"
)

// Local implements tts.LocalBackend for testing.
type Local struct {
	mu           sync.Mutex
	available    bool
	failureError error

	callCount  int
	lastText   string
	lastVoice  string
	speakStart chan struct{}
}

// NewLocal creates an available local backend that always succeeds.
func NewLocal() *Local {
	return &Local{available: true}
}

// Speak records the call and returns the scripted failure, if any.
func (l *Local) Speak(_ context.Context, text, voiceID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callCount++
	l.lastText = text
	l.lastVoice = voiceID
	if l.speakStart != nil {
		close(l.speakStart)
		l.speakStart = nil
	}
	return l.failureError
}

// Available reports the scripted availability.
func (l *Local) Available() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.available
}

// SetAvailable scripts the availability probe.
func (l *Local) SetAvailable(available bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.available = available
}

// SetFailure configures Speak to fail with err.
func (l *Local) SetFailure(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failureError = err
}

// ClearFailure resets the backend to normal operation.
func (l *Local) ClearFailure() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failureError = nil
}

// CallCount returns the number of Speak calls.
func (l *Local) CallCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.callCount
}

// LastText returns the text of the most recent Speak call.
func (l *Local) LastText() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastText
}

// LastVoice returns the voice of the most recent Speak call.
func (l *Local) LastVoice() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastVoice
}

// SpeakStarted returns a channel closed on the next Speak call.
func (l *Local) SpeakStarted() <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch := make(chan struct{})
	l.speakStart = ch
	return ch
}

// Cloud implements tts.CloudBackend for testing.
type Cloud struct {
	mu           sync.Mutex
	available    bool
	failureError error
	audioPath    string

	callCount int
	lastReq   tts.CloudRequest
}

// NewCloud creates an available cloud backend producing a fixed file path.
func NewCloud() *Cloud {
	return &Cloud{available: true, audioPath: "/tmp/voicebox/mock.mp3"}
}

// Synthesize records the call and returns the scripted path or failure.
func (c *Cloud) Synthesize(_ context.Context, req tts.CloudRequest) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.callCount++
	c.lastReq = req
	if c.failureError != nil {
		return "", c.failureError
	}
	return c.audioPath, nil
}

// Available reports the scripted availability.
func (c *Cloud) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.available
}

// SetAvailable scripts the availability probe.
func (c *Cloud) SetAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.available = available
}

// SetFailure configures Synthesize to fail with err.
func (c *Cloud) SetFailure(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failureError = err
}

// ClearFailure resets the backend to normal operation.
func (c *Cloud) ClearFailure() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failureError = nil
}

// CallCount returns the number of Synthesize calls.
func (c *Cloud) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.callCount
}

// LastRequest returns the most recent cloud request.
func (c *Cloud) LastRequest() tts.CloudRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastReq
}

// Player implements tts.Player for testing.
type Player struct {
	mu           sync.Mutex
	failureError error

	callCount int
	lastPath  string
	lastEcho  *tts.EchoConfig
}

// NewPlayer creates a player that always succeeds.
func NewPlayer() *Player {
	return &Player{}
}

// PlayFile records the call and returns the scripted failure, if any.
func (p *Player) PlayFile(path string, echo *tts.EchoConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callCount++
	p.lastPath = path
	p.lastEcho = echo
	return p.failureError
}

// SetFailure configures PlayFile to fail with err.
func (p *Player) SetFailure(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failureError = err
}

// CallCount returns the number of PlayFile calls.
func (p *Player) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

// LastEcho returns the echo config of the most recent PlayFile call.
func (p *Player) LastEcho() *tts.EchoConfig {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastEcho
}

// Directory implements tts.VoiceDirectory over a fixed name-to-voice map,
// keyed by language code.
type Directory struct {
	byLanguage map[string]string
	byName     map[string]string
}

// NewDirectory creates a directory from language and name lookups.
func NewDirectory(byLanguage, byName map[string]string) *Directory {
	d := &Directory{
		byLanguage: map[string]string{},
		byName:     map[string]string{},
	}
	for lang, voice := range byLanguage {
		d.byLanguage[strings.ToLower(lang)] = voice
	}
	for name, voice := range byName {
		d.byName[strings.ToLower(name)] = voice
	}
	return d
}

// BestVoiceFor returns the scripted voice for a language code.
func (d *Directory) BestVoiceFor(language string) (string, bool) {
	v, ok := d.byLanguage[strings.ToLower(language)]
	return v, ok
}

// VoiceNamed looks up a voice by case-insensitive name.
func (d *Directory) VoiceNamed(name string) (string, bool) {
	v, ok := d.byName[strings.ToLower(name)]
	return v, ok
}
