package tts

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Backends groups the collaborators the selector drives.
type Backends struct {
	Local  LocalBackend
	Cloud  CloudBackend
	Player Player
	Voices VoiceDirectory
}

// Selector decides which engine handles a request, executes synthesis and
// recovers from cloud failure by retrying on the local engine. It holds no
// mutable state after construction except the fallback-enabled flag.
type Selector struct {
	backends Backends
	config   Config
	status   EngineStatus

	mu              sync.RWMutex
	fallbackEnabled bool
}

// NewSelector creates a selector and computes the engine availability
// snapshot. The snapshot never changes afterwards: cloud is available
// exactly when a credential is configured, and the preferred engine is
// cloud exactly when cloud is available.
func NewSelector(b Backends, cfg Config) *Selector {
	cloudAvailable := b.Cloud != nil && b.Cloud.Available()
	preferred := EngineLocal
	if cloudAvailable {
		preferred = EngineCloud
	}

	if b.Local != nil && !b.Local.Available() {
		log.Warn("no platform speech command found; local synthesis will fail at invocation time")
	}

	s := &Selector{
		backends: b,
		config:   cfg,
		status: EngineStatus{
			LocalAvailable: true,
			CloudAvailable: cloudAvailable,
			Preferred:      preferred,
		},
		fallbackEnabled: cfg.FallbackEnabled,
	}

	log.Info("speech engines initialized",
		"cloudAvailable", cloudAvailable,
		"preferred", preferred,
		"fallback", cfg.FallbackEnabled)
	return s
}

// Status returns the availability snapshot computed at construction. The
// same value is returned for the whole process lifetime.
func (s *Selector) Status() EngineStatus {
	return s.status
}

// FallbackEnabled reports whether cloud failures are retried locally.
func (s *Selector) FallbackEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fallbackEnabled
}

// SetFallbackEnabled toggles cloud-to-local fallback. Settable at any time,
// independently of any single request.
func (s *Selector) SetFallbackEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbackEnabled = enabled
}

// SelectEngine returns the engine that will handle req. It is a pure
// function of the request's cloud preference and the startup status:
//
//  1. cloud explicitly requested and available: cloud
//  2. cloud explicitly declined: local, regardless of availability
//  3. no preference and cloud is the preferred engine: cloud
//  4. otherwise: local
func (s *Selector) SelectEngine(req *Request) EngineKind {
	switch {
	case req.UseCloud != nil && *req.UseCloud:
		if s.status.CloudAvailable {
			return EngineCloud
		}
		// Silent downgrade, never an error.
		return EngineLocal
	case req.UseCloud != nil:
		return EngineLocal
	case s.status.Preferred == EngineCloud && s.status.CloudAvailable:
		return EngineCloud
	default:
		return EngineLocal
	}
}

// plan is everything Synthesize and UsedVoiceInfo must agree on for a
// request: the chosen engine, the resolved backend parameters and the voice
// description.
type plan struct {
	engine      EngineKind
	cloud       CloudRequest
	localVoice  string
	description string
}

func (s *Selector) plan(req *Request) plan {
	p := plan{engine: s.SelectEngine(req)}
	if p.engine == EngineCloud {
		p.cloud = s.cloudRequest(req)
		p.description = fmt.Sprintf("OpenAI voice %q (model %s, speed %.2fx)",
			p.cloud.Voice, p.cloud.Model, p.cloud.Speed)
		return p
	}
	p.localVoice = s.resolveLocalVoice(req)
	p.description = localVoiceDescription(p.localVoice)
	return p
}

// cloudRequest resolves the cloud parameters for req: configured defaults
// for anything unset, speed clamped to the supported range.
func (s *Selector) cloudRequest(req *Request) CloudRequest {
	voice := req.CloudVoice
	if voice == "" {
		voice = s.config.OpenAIVoice
	}
	model := req.CloudModel
	if model == "" {
		model = s.config.OpenAIModel
	}
	speed := req.CloudSpeed
	if speed == 0 {
		speed = s.config.OpenAISpeed
	}
	return CloudRequest{
		Text:  req.Text,
		Voice: voice,
		Model: model,
		Speed: ClampSpeed(speed),
	}
}

// resolveLocalVoice picks the system voice for req: an explicitly named
// voice first, then the best voice for the requested language, then the
// platform default. Unknown names degrade to the next step rather than
// failing, so a preview and the actual synthesis always agree.
func (s *Selector) resolveLocalVoice(req *Request) string {
	dir := s.backends.Voices
	if dir == nil {
		return ""
	}
	if req.VoiceName != "" {
		if id, ok := dir.VoiceNamed(req.VoiceName); ok {
			return id
		}
		log.Warn("requested voice is not installed, using default", "voice", req.VoiceName)
	}
	if req.Language != "" {
		if id, ok := dir.BestVoiceFor(req.Language); ok {
			return id
		}
		log.Warn("no installed voice for language, using default", "language", req.Language)
	}
	return ""
}

func localVoiceDescription(voiceID string) string {
	if voiceID != "" {
		return fmt.Sprintf("system voice %q", voiceID)
	}
	return "system default voice"
}

// UsedVoiceInfo describes the voice Synthesize would use for req, without
// performing any synthesis. Given an unchanged engine status it always
// agrees with the engine Synthesize actually selects.
func (s *Selector) UsedVoiceInfo(req *Request) string {
	return s.plan(req).description
}

// Synthesize selects an engine, invokes it and reports the unified outcome.
// A cloud failure is retried once on the local engine when fallback is
// enabled; a local failure is terminal. The result duration covers all
// attempts, including a failed first one.
func (s *Selector) Synthesize(ctx context.Context, req *Request) Result {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return Result{ErrorMessage: err.Error(), Duration: time.Since(start)}
	}

	p := s.plan(req)
	res := Result{Engine: p.engine, VoiceDescription: p.description}

	err := s.attempt(ctx, p, req)
	if err == nil {
		res.Success = true
		res.Duration = time.Since(start)
		log.Info("synthesis complete",
			"engine", res.Engine, "voice", res.VoiceDescription, "duration", res.Duration)
		return res
	}

	if p.engine == EngineCloud && s.FallbackEnabled() {
		log.Warn("cloud synthesis failed, retrying on local engine", "err", err)

		localVoice := s.resolveLocalVoice(req)
		fbErr := s.speakLocal(ctx, req.Text, localVoice)

		res.Engine = EngineLocal
		res.VoiceDescription = localVoiceDescription(localVoice)
		res.Duration = time.Since(start)
		if fbErr == nil {
			res.Success = true
			res.ErrorMessage = fmt.Sprintf("cloud synthesis failed (%v); recovered on local engine", err)
			log.Info("fallback synthesis complete", "voice", res.VoiceDescription, "duration", res.Duration)
		} else {
			res.ErrorMessage = fmt.Sprintf("cloud synthesis failed (%v); local fallback failed (%v)", err, fbErr)
			log.Error("fallback synthesis failed", "err", fbErr)
		}
		return res
	}

	res.ErrorMessage = err.Error()
	res.Duration = time.Since(start)
	log.Error("synthesis failed", "engine", res.Engine, "err", err)
	return res
}

// attempt runs one synthesis attempt on the planned engine.
func (s *Selector) attempt(ctx context.Context, p plan, req *Request) error {
	if p.engine == EngineCloud {
		return s.speakCloud(ctx, p.cloud, req.Echo)
	}
	if req.Echo != nil {
		log.Debug("echo effect only applies to cloud synthesis, ignoring")
	}
	return s.speakLocal(ctx, req.Text, p.localVoice)
}

// speakCloud synthesizes via the cloud backend and hands the produced file
// to the player. Playback runs in the background; only failure to start it
// counts against the attempt.
func (s *Selector) speakCloud(ctx context.Context, creq CloudRequest, echo *EchoConfig) error {
	if s.backends.Cloud == nil {
		return backendError(EngineCloud, ErrCloudUnavailable)
	}
	path, err := s.backends.Cloud.Synthesize(ctx, creq)
	if err != nil {
		return backendError(EngineCloud, err)
	}
	if s.backends.Player == nil {
		return nil
	}
	if err := s.backends.Player.PlayFile(path, echo); err != nil {
		return backendError(EngineCloud, fmt.Errorf("playback: %w", err))
	}
	return nil
}

func (s *Selector) speakLocal(ctx context.Context, text, voiceID string) error {
	if s.backends.Local == nil {
		return backendError(EngineLocal, fmt.Errorf("no local backend configured"))
	}
	if err := s.backends.Local.Speak(ctx, text, voiceID); err != nil {
		return backendError(EngineLocal, err)
	}
	return nil
}
