package audio

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/voicebox-mcp/voicebox/tts"
)

// PCM layout produced by the MP3 decoder: 16-bit little-endian, 2 channels.
const (
	bytesPerSample = 2
	channelCount   = 2
	frameBytes     = bytesPerSample * channelCount
)

// applyEcho mixes delayed, attenuated copies of the signal back onto
// itself. Tap r starts r*Delay after the dry signal and is scaled by
// Volumes[r-1]; taps beyond the last volume reuse it. The output is long
// enough to hold the final tap.
func applyEcho(pcm []byte, sampleRate int, cfg tts.EchoConfig) []byte {
	if cfg.Repeats == 0 || len(cfg.Volumes) == 0 || len(pcm) < bytesPerSample {
		return pcm
	}

	delaySamples := delayFrames(cfg.Delay, sampleRate) * channelCount
	drySamples := len(pcm) / bytesPerSample

	mixed := make([]int32, drySamples+cfg.Repeats*delaySamples)
	for i := 0; i < drySamples; i++ {
		mixed[i] = int32(sampleAt(pcm, i))
	}

	for r := 1; r <= cfg.Repeats; r++ {
		volume := cfg.Volumes[min(r-1, len(cfg.Volumes)-1)]
		offset := r * delaySamples
		for i := 0; i < drySamples; i++ {
			mixed[offset+i] += int32(float64(sampleAt(pcm, i)) * volume)
		}
	}

	out := make([]byte, len(mixed)*bytesPerSample)
	for i, s := range mixed {
		binary.LittleEndian.PutUint16(out[i*bytesPerSample:], uint16(clip(s)))
	}
	return out
}

func delayFrames(delay time.Duration, sampleRate int) int {
	return int(delay.Seconds() * float64(sampleRate))
}

func sampleAt(pcm []byte, i int) int16 {
	return int16(binary.LittleEndian.Uint16(pcm[i*bytesPerSample:]))
}

func clip(s int32) int16 {
	if s > math.MaxInt16 {
		return math.MaxInt16
	}
	if s < math.MinInt16 {
		return math.MinInt16
	}
	return int16(s)
}
