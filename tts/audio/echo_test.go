package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/voicebox-mcp/voicebox/tts"
)

// pcmFromSamples serializes int16 samples as the decoder would emit them.
func pcmFromSamples(samples []int16) []byte {
	out := make([]byte, len(samples)*bytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*bytesPerSample:], uint16(s))
	}
	return out
}

func samplesFromPCM(pcm []byte) []int16 {
	out := make([]int16, len(pcm)/bytesPerSample)
	for i := range out {
		out[i] = sampleAt(pcm, i)
	}
	return out
}

func TestApplyEchoExtendsSignal(t *testing.T) {
	// 100 Hz sample rate, 100 ms delay: 10 frames = 20 samples per tap.
	cfg := tts.EchoConfig{
		Delay:   100 * time.Millisecond,
		Volumes: []float64{0.5},
		Repeats: 3,
	}
	dry := pcmFromSamples(make([]int16, 8))

	out := applyEcho(dry, 100, cfg)
	wantSamples := 8 + 3*20
	if got := len(out) / bytesPerSample; got != wantSamples {
		t.Errorf("output has %d samples, want %d", got, wantSamples)
	}
}

// TestApplyEchoTapVolumes verifies each tap lands at its delay offset scaled
// by its configured volume, with taps past the last entry reusing it.
func TestApplyEchoTapVolumes(t *testing.T) {
	cfg := tts.EchoConfig{
		Delay:   100 * time.Millisecond, // 20 samples at 100 Hz stereo
		Volumes: []float64{0.5, 0.25},
		Repeats: 3,
	}
	impulse := make([]int16, 4)
	impulse[0] = 1000

	out := samplesFromPCM(applyEcho(pcmFromSamples(impulse), 100, cfg))

	checks := []struct {
		index int
		want  int16
	}{
		{0, 1000}, // dry signal
		{20, 500}, // first tap at 0.5
		{40, 250}, // second tap at 0.25
		{60, 250}, // third tap reuses the last volume
	}
	for _, c := range checks {
		if out[c.index] != c.want {
			t.Errorf("sample %d = %d, want %d", c.index, out[c.index], c.want)
		}
	}

	// Everything between the taps stays silent.
	if out[10] != 0 || out[30] != 0 {
		t.Error("expected silence between taps")
	}
}

func TestApplyEchoClipsOverflow(t *testing.T) {
	// Delay of one frame makes the tap overlap the dry signal.
	cfg := tts.EchoConfig{
		Delay:   10 * time.Millisecond, // 1 frame = 2 samples at 100 Hz
		Volumes: []float64{1.0},
		Repeats: 1,
	}
	loud := []int16{30000, 30000, 30000, 30000}

	out := samplesFromPCM(applyEcho(pcmFromSamples(loud), 100, cfg))

	// Sample 2 holds dry 30000 plus the tap's copy of sample 0.
	if out[2] != math.MaxInt16 {
		t.Errorf("sample 2 = %d, want clipped to %d", out[2], math.MaxInt16)
	}
}

func TestApplyEchoZeroRepeatsIsIdentity(t *testing.T) {
	cfg := tts.EchoConfig{
		Delay:   100 * time.Millisecond,
		Volumes: []float64{0.5},
		Repeats: 0,
	}
	dry := pcmFromSamples([]int16{1, 2, 3, 4})

	out := applyEcho(dry, 100, cfg)
	if len(out) != len(dry) {
		t.Fatalf("output length %d, want %d", len(out), len(dry))
	}
	for i := range dry {
		if out[i] != dry[i] {
			t.Fatalf("byte %d changed", i)
		}
	}
}
