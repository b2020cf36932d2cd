package tts_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/voicebox-mcp/voicebox/tts"
	"github.com/voicebox-mcp/voicebox/tts/engines/mock"
)

type fixture struct {
	selector *tts.Selector
	local    *mock.Local
	cloud    *mock.Cloud
	player   *mock.Player
}

// newFixture builds a selector on scriptable backends. cloudAvailable
// scripts the startup availability probe.
func newFixture(cloudAvailable bool) *fixture {
	f := &fixture{
		local:  mock.NewLocal(),
		cloud:  mock.NewCloud(),
		player: mock.NewPlayer(),
	}
	f.cloud.SetAvailable(cloudAvailable)

	cfg := tts.DefaultConfig()
	f.selector = tts.NewSelector(tts.Backends{
		Local:  f.local,
		Cloud:  f.cloud,
		Player: f.player,
		Voices: mock.NewDirectory(
			map[string]string{"en-us": "Samantha", "de": "Anna"},
			map[string]string{"daniel": "Daniel"},
		),
	}, cfg)
	return f
}

func boolPtr(b bool) *bool { return &b }

// TestSelectEngine verifies the engine decision for every combination of
// request preference and cloud availability.
func TestSelectEngine(t *testing.T) {
	tests := []struct {
		name           string
		cloudAvailable bool
		useCloud       *bool
		want           tts.EngineKind
	}{
		{"explicit cloud when available", true, boolPtr(true), tts.EngineCloud},
		{"explicit cloud when unavailable downgrades silently", false, boolPtr(true), tts.EngineLocal},
		{"explicit local overrides available cloud", true, boolPtr(false), tts.EngineLocal},
		{"explicit local without cloud", false, boolPtr(false), tts.EngineLocal},
		{"no preference follows preferred cloud", true, nil, tts.EngineCloud},
		{"no preference without cloud", false, nil, tts.EngineLocal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.cloudAvailable)
			req := &tts.Request{Text: "hello", UseCloud: tt.useCloud}
			if got := f.selector.SelectEngine(req); got != tt.want {
				t.Errorf("SelectEngine() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestStatusSnapshot verifies the availability snapshot is computed once and
// reflects the credential state at startup.
func TestStatusSnapshot(t *testing.T) {
	f := newFixture(true)

	status := f.selector.Status()
	if !status.LocalAvailable {
		t.Error("local engine should always be reported available")
	}
	if !status.CloudAvailable {
		t.Error("cloud engine should be available")
	}
	if status.Preferred != tts.EngineCloud {
		t.Errorf("preferred engine = %v, want cloud", status.Preferred)
	}

	// The snapshot must not move even if the backend flips afterwards.
	f.cloud.SetAvailable(false)
	if again := f.selector.Status(); again != status {
		t.Errorf("Status() changed after construction: %+v != %+v", again, status)
	}
}

func TestStatusWithoutCloud(t *testing.T) {
	f := newFixture(false)

	status := f.selector.Status()
	if status.CloudAvailable {
		t.Error("cloud engine should be unavailable without a credential")
	}
	if status.Preferred != tts.EngineLocal {
		t.Errorf("preferred engine = %v, want local", status.Preferred)
	}
}

// TestUsedVoiceInfoAgreesWithSynthesize verifies the preview and the actual
// synthesis describe the same voice for the same request.
func TestUsedVoiceInfoAgreesWithSynthesize(t *testing.T) {
	requests := []*tts.Request{
		{Text: "hello"},
		{Text: "hello", UseCloud: boolPtr(false)},
		{Text: "hello", UseCloud: boolPtr(true)},
		{Text: "hello", VoiceName: "Daniel"},
		{Text: "hello", Language: "en-US", UseCloud: boolPtr(false)},
		{Text: "hello", CloudVoice: "nova", CloudModel: "hd", CloudSpeed: 1.5},
	}

	for _, cloudAvailable := range []bool{true, false} {
		f := newFixture(cloudAvailable)
		for _, req := range requests {
			info := f.selector.UsedVoiceInfo(req)
			res := f.selector.Synthesize(context.Background(), req)
			if !res.Success {
				t.Fatalf("Synthesize failed: %s", res.ErrorMessage)
			}
			if res.VoiceDescription != info {
				t.Errorf("cloudAvailable=%v req=%+v: UsedVoiceInfo %q != synthesis voice %q",
					cloudAvailable, req, info, res.VoiceDescription)
			}
		}
	}
}

func TestSynthesizeCloudDefaults(t *testing.T) {
	f := newFixture(true)

	res := f.selector.Synthesize(context.Background(), &tts.Request{Text: "hello"})
	if !res.Success {
		t.Fatalf("Synthesize failed: %s", res.ErrorMessage)
	}
	if res.Engine != tts.EngineCloud {
		t.Errorf("engine = %v, want cloud", res.Engine)
	}

	got := f.cloud.LastRequest()
	if got.Voice != "alloy" || got.Model != tts.ModelStandard || got.Speed != 1.0 {
		t.Errorf("cloud request did not use configured defaults: %+v", got)
	}
	if f.player.CallCount() != 1 {
		t.Errorf("player called %d times, want 1", f.player.CallCount())
	}
	if f.local.CallCount() != 0 {
		t.Error("local engine should not run on a cloud success")
	}
}

// TestSynthesizeClampsSpeed verifies out-of-range speeds are clamped rather
// than rejected.
func TestSynthesizeClampsSpeed(t *testing.T) {
	tests := []struct {
		speed float64
		want  float64
	}{
		{8.0, tts.MaxSpeed},
		{0.01, tts.MinSpeed},
		{-1.0, tts.MinSpeed},
		{2.0, 2.0},
	}

	for _, tt := range tests {
		f := newFixture(true)
		res := f.selector.Synthesize(context.Background(), &tts.Request{Text: "hi", CloudSpeed: tt.speed})
		if !res.Success {
			t.Fatalf("Synthesize failed: %s", res.ErrorMessage)
		}
		if got := f.cloud.LastRequest().Speed; got != tt.want {
			t.Errorf("speed %g clamped to %g, want %g", tt.speed, got, tt.want)
		}
	}
}

func TestSynthesizeLocalVoiceResolution(t *testing.T) {
	f := newFixture(false)
	ctx := context.Background()

	// Known name wins over language.
	res := f.selector.Synthesize(ctx, &tts.Request{Text: "hi", VoiceName: "daniel", Language: "en-US"})
	if !res.Success {
		t.Fatalf("Synthesize failed: %s", res.ErrorMessage)
	}
	if got := f.local.LastVoice(); got != "Daniel" {
		t.Errorf("voice = %q, want Daniel", got)
	}

	// Unknown name degrades to the language lookup.
	f.selector.Synthesize(ctx, &tts.Request{Text: "hi", VoiceName: "nope", Language: "en-US"})
	if got := f.local.LastVoice(); got != "Samantha" {
		t.Errorf("voice = %q, want Samantha", got)
	}

	// Nothing matches: platform default.
	f.selector.Synthesize(ctx, &tts.Request{Text: "hi", VoiceName: "nope", Language: "xx"})
	if got := f.local.LastVoice(); got != "" {
		t.Errorf("voice = %q, want platform default", got)
	}
}

// TestSynthesizeFallback verifies a cloud failure is retried once on the
// local engine and the result reports both the recovery and the cause.
func TestSynthesizeFallback(t *testing.T) {
	f := newFixture(true)
	f.cloud.SetFailure(errors.New("401 unauthorized"))

	res := f.selector.Synthesize(context.Background(), &tts.Request{Text: "hello"})
	if !res.Success {
		t.Fatalf("fallback should have recovered: %s", res.ErrorMessage)
	}
	if res.Engine != tts.EngineLocal {
		t.Errorf("engine = %v, want local after fallback", res.Engine)
	}
	if !strings.Contains(res.ErrorMessage, "401 unauthorized") {
		t.Errorf("result should carry the cloud failure, got %q", res.ErrorMessage)
	}
	if f.local.CallCount() != 1 {
		t.Errorf("local engine ran %d times, want 1", f.local.CallCount())
	}
	if f.local.LastText() != "hello" {
		t.Errorf("fallback spoke %q, want original text", f.local.LastText())
	}
}

func TestSynthesizeFallbackDisabled(t *testing.T) {
	f := newFixture(true)
	f.selector.SetFallbackEnabled(false)
	f.cloud.SetFailure(errors.New("boom"))

	res := f.selector.Synthesize(context.Background(), &tts.Request{Text: "hello"})
	if res.Success {
		t.Fatal("expected failure with fallback disabled")
	}
	if res.Engine != tts.EngineCloud {
		t.Errorf("engine = %v, want cloud", res.Engine)
	}
	if f.local.CallCount() != 0 {
		t.Error("local engine must not run when fallback is disabled")
	}

	// Re-enabling restores the old behavior.
	f.selector.SetFallbackEnabled(true)
	if !f.selector.FallbackEnabled() {
		t.Error("fallback should be enabled again")
	}
	res = f.selector.Synthesize(context.Background(), &tts.Request{Text: "hello"})
	if !res.Success || res.Engine != tts.EngineLocal {
		t.Errorf("expected local recovery, got %+v", res)
	}
}

// TestSynthesizePlaybackFailureTriggersFallback verifies a playback error
// counts as a cloud failure.
func TestSynthesizePlaybackFailureTriggersFallback(t *testing.T) {
	f := newFixture(true)
	f.player.SetFailure(errors.New("no audio device"))

	res := f.selector.Synthesize(context.Background(), &tts.Request{Text: "hello"})
	if !res.Success {
		t.Fatalf("fallback should have recovered: %s", res.ErrorMessage)
	}
	if res.Engine != tts.EngineLocal {
		t.Errorf("engine = %v, want local", res.Engine)
	}
	if !strings.Contains(res.ErrorMessage, "no audio device") {
		t.Errorf("result should carry the playback failure, got %q", res.ErrorMessage)
	}
}

func TestSynthesizeBothEnginesFail(t *testing.T) {
	f := newFixture(true)
	f.cloud.SetFailure(errors.New("rate limited"))
	f.local.SetFailure(errors.New("say not found"))

	res := f.selector.Synthesize(context.Background(), &tts.Request{Text: "hello"})
	if res.Success {
		t.Fatal("expected failure when both engines fail")
	}
	if res.Engine != tts.EngineLocal {
		t.Errorf("engine = %v, want local (the last attempt)", res.Engine)
	}
	if !strings.Contains(res.ErrorMessage, "rate limited") || !strings.Contains(res.ErrorMessage, "say not found") {
		t.Errorf("result should carry both failures, got %q", res.ErrorMessage)
	}
}

// TestSynthesizeLocalFailureIsTerminal verifies a local failure is never
// retried anywhere.
func TestSynthesizeLocalFailureIsTerminal(t *testing.T) {
	f := newFixture(true)
	f.local.SetFailure(errors.New("espeak crashed"))

	res := f.selector.Synthesize(context.Background(), &tts.Request{Text: "hello", UseCloud: boolPtr(false)})
	if res.Success {
		t.Fatal("expected local failure to surface")
	}
	if res.Engine != tts.EngineLocal {
		t.Errorf("engine = %v, want local", res.Engine)
	}
	if f.cloud.CallCount() != 0 {
		t.Error("cloud engine must not run for a local failure")
	}
	if f.local.CallCount() != 1 {
		t.Errorf("local engine ran %d times, want 1", f.local.CallCount())
	}
}

func TestSynthesizeEmptyText(t *testing.T) {
	f := newFixture(true)

	res := f.selector.Synthesize(context.Background(), &tts.Request{Text: "   "})
	if res.Success {
		t.Fatal("expected empty text to fail validation")
	}
	if f.cloud.CallCount() != 0 || f.local.CallCount() != 0 {
		t.Error("no engine should run for an invalid request")
	}
}

// TestSynthesizeEchoRouting verifies the echo effect reaches the player on
// cloud synthesis and is ignored on local synthesis.
func TestSynthesizeEchoRouting(t *testing.T) {
	echo := tts.DefaultEchoConfig()

	f := newFixture(true)
	res := f.selector.Synthesize(context.Background(), &tts.Request{Text: "hello", Echo: echo})
	if !res.Success {
		t.Fatalf("Synthesize failed: %s", res.ErrorMessage)
	}
	if f.player.LastEcho() != echo {
		t.Error("echo config should be handed to the player")
	}

	f = newFixture(false)
	res = f.selector.Synthesize(context.Background(), &tts.Request{Text: "hello", Echo: echo})
	if !res.Success {
		t.Fatalf("Synthesize failed: %s", res.ErrorMessage)
	}
	if res.Engine != tts.EngineLocal {
		t.Errorf("engine = %v, want local", res.Engine)
	}
	if f.local.CallCount() != 1 {
		t.Error("local synthesis should proceed with echo silently dropped")
	}
}

func TestSynthesizeDurationCoversAllAttempts(t *testing.T) {
	f := newFixture(true)
	f.cloud.SetFailure(errors.New("timeout"))

	res := f.selector.Synthesize(context.Background(), &tts.Request{Text: "hello"})
	if res.Duration <= 0 {
		t.Errorf("duration = %v, want > 0 spanning both attempts", res.Duration)
	}
}
