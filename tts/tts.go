// Package tts implements speech synthesis with automatic engine selection
// and cloud-to-local fallback.
package tts

import (
	"fmt"
	"strings"
	"time"
)

// EngineKind identifies one of the two mutually exclusive synthesis paths.
type EngineKind int

const (
	// EngineLocal is the OS-native speech engine.
	EngineLocal EngineKind = iota
	// EngineCloud is the OpenAI speech API.
	EngineCloud
)

// String returns the engine name used in logs and results.
func (k EngineKind) String() string {
	switch k {
	case EngineLocal:
		return "local"
	case EngineCloud:
		return "cloud"
	default:
		return fmt.Sprintf("EngineKind(%d)", int(k))
	}
}

// AudioFilePrefix marks the audio files this process writes, so cleanup
// never touches anything else in a shared directory.
const AudioFilePrefix = "voicebox-"

// Cloud voice and model enumerations accepted by the OpenAI backend.
var CloudVoices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}

const (
	// ModelStandard selects the standard-quality cloud model (tts-1).
	ModelStandard = "standard"
	// ModelHD selects the high-definition cloud model (tts-1-hd).
	ModelHD = "hd"
)

// Speed bounds accepted by the cloud backend. Values outside the range are
// clamped, never rejected.
const (
	MinSpeed = 0.25
	MaxSpeed = 4.0
)

// ClampSpeed clamps a speed multiplier to the supported range.
func ClampSpeed(speed float64) float64 {
	if speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}

// IsCloudVoice reports whether v names one of the supported cloud voices.
func IsCloudVoice(v string) bool {
	for _, voice := range CloudVoices {
		if strings.EqualFold(v, voice) {
			return true
		}
	}
	return false
}

// Request describes one synthesis request. It is created per inbound call,
// owned by the selector for the duration of that call and discarded once a
// Result has been produced.
type Request struct {
	// Text is the content to speak. Required.
	Text string

	// Language is an optional language code (e.g. "en-US") used to pick a
	// system voice when no explicit voice name is given.
	Language string

	// VoiceName is an optional system voice name, matched case-insensitively
	// against the installed voice catalog.
	VoiceName string

	// UseCloud is a tri-state cloud preference: nil means no preference,
	// true requests the cloud engine, false forces the local engine.
	UseCloud *bool

	// CloudVoice, CloudModel and CloudSpeed override the configured cloud
	// defaults. Zero values mean "use the default".
	CloudVoice string
	CloudModel string
	CloudSpeed float64

	// Echo enables the echo post-effect on cloud playback. Nil disables it.
	Echo *EchoConfig
}

// Validate checks the request for structural errors. Validation failures
// abort before any engine selection occurs and never trigger fallback.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return ErrEmptyText
	}
	if r.Echo != nil {
		if err := r.Echo.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EchoConfig controls the echo post-effect applied to cloud-produced audio.
type EchoConfig struct {
	// Delay is the gap between successive echo taps.
	Delay time.Duration

	// Volumes are the tap gains, each in (0, 1]. Taps beyond the last entry
	// reuse it.
	Volumes []float64

	// Repeats is the number of echo taps to mix in.
	Repeats int
}

// DefaultEchoConfig returns the echo parameters used when a request asks for
// echo without supplying its own configuration.
func DefaultEchoConfig() *EchoConfig {
	return &EchoConfig{
		Delay:   300 * time.Millisecond,
		Volumes: []float64{0.5, 0.3, 0.2},
		Repeats: 3,
	}
}

// Validate checks the echo parameters.
func (c *EchoConfig) Validate() error {
	if c.Delay <= 0 {
		return fmt.Errorf("%w: delay must be positive, got %v", ErrInvalidEchoConfig, c.Delay)
	}
	if len(c.Volumes) == 0 {
		return fmt.Errorf("%w: at least one volume tap is required", ErrInvalidEchoConfig)
	}
	for _, v := range c.Volumes {
		if v <= 0 || v > 1 {
			return fmt.Errorf("%w: volume %f outside (0, 1]", ErrInvalidEchoConfig, v)
		}
	}
	if c.Repeats < 0 {
		return fmt.Errorf("%w: repeats must not be negative, got %d", ErrInvalidEchoConfig, c.Repeats)
	}
	return nil
}

// EngineStatus is the process-wide availability snapshot. It is computed
// once at startup and read-only thereafter; Preferred is EngineCloud exactly
// when CloudAvailable is true.
type EngineStatus struct {
	LocalAvailable bool
	CloudAvailable bool
	Preferred      EngineKind
}

// Result is the outcome of one synthesis request. Produced once, logged and
// discarded; never persisted.
type Result struct {
	// Engine is the engine that produced the final outcome. After a
	// successful fallback this is EngineLocal even though the request
	// started on the cloud engine.
	Engine EngineKind

	// Success reports whether the final attempt produced audio.
	Success bool

	// VoiceDescription is a human-readable description of the voice used.
	VoiceDescription string

	// ErrorMessage carries failure details. After a successful fallback it
	// still records the original cloud failure.
	ErrorMessage string

	// Duration covers all attempts, including a failed first attempt.
	Duration time.Duration
}
