package tts

import "context"

// LocalBackend executes the platform text-to-speech command. The call blocks
// until the process exits; success is exit code zero.
type LocalBackend interface {
	// Speak speaks text through the OS speech engine. voiceID selects an
	// installed system voice; empty means the platform default.
	Speak(ctx context.Context, text, voiceID string) error

	// Available reports whether the platform speech command was found.
	Available() bool
}

// CloudRequest carries the backend-specific parameters for one cloud call.
// Voice, Model and Speed are fully resolved: defaults applied, speed clamped.
type CloudRequest struct {
	Text  string
	Voice string
	Model string
	Speed float64
}

// CloudBackend calls a remote synthesis API and returns the path of the
// audio file it produced.
type CloudBackend interface {
	Synthesize(ctx context.Context, req CloudRequest) (string, error)

	// Available reports whether a credential is configured.
	Available() bool
}

// Player starts background playback of a produced audio file. It returns
// once playback has started; completion is not awaited.
type Player interface {
	PlayFile(path string, echo *EchoConfig) error
}

// VoiceDirectory exposes the installed system voice catalog, discovered once
// at startup.
type VoiceDirectory interface {
	// BestVoiceFor returns the highest-ranked voice for a language code.
	BestVoiceFor(language string) (string, bool)

	// VoiceNamed looks up a voice by exact, case-insensitive name.
	VoiceNamed(name string) (string, bool)
}
