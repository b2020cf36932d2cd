// Package openai synthesizes speech through the OpenAI speech API and
// writes the result to an audio file for local playback.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	goopenai "github.com/sashabaranov/go-openai"

	"github.com/voicebox-mcp/voicebox/tts"
)

// Backend implements tts.CloudBackend on the OpenAI speech endpoint.
type Backend struct {
	client    *goopenai.Client
	outputDir string
}

// New creates a backend writing MP3 files into outputDir. An empty apiKey
// yields an unavailable backend whose invocation fails with a credential
// error.
func New(apiKey, outputDir string) *Backend {
	b := &Backend{outputDir: outputDir}
	if apiKey != "" {
		b.client = goopenai.NewClient(apiKey)
	}
	return b
}

// Available reports whether an API key is configured.
func (b *Backend) Available() bool {
	return b.client != nil
}

// Synthesize calls the speech API and returns the path of the MP3 file it
// wrote. Filenames carry a random component so concurrent requests sharing
// the output directory never collide.
func (b *Backend) Synthesize(ctx context.Context, req tts.CloudRequest) (string, error) {
	if b.client == nil {
		return "", tts.ErrCloudUnavailable
	}

	resp, err := b.client.CreateSpeech(ctx, goopenai.CreateSpeechRequest{
		Model:          speechModel(req.Model),
		Input:          req.Text,
		Voice:          goopenai.SpeechVoice(req.Voice),
		ResponseFormat: goopenai.SpeechResponseFormatMp3,
		Speed:          req.Speed,
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", &tts.BackendError{
				Engine:     tts.EngineCloud,
				StatusCode: apiErr.HTTPStatusCode,
				Err:        fmt.Errorf("speech API: %s", apiErr.Message),
			}
		}
		return "", fmt.Errorf("speech API: %w", err)
	}
	defer resp.Close()

	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(b.outputDir, tts.AudioFilePrefix+uuid.NewString()+".mp3")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create audio file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write audio file: %w", err)
	}

	log.Debug("cloud audio written", "path", path, "bytes", n,
		"voice", req.Voice, "model", req.Model, "speed", req.Speed)
	return path, nil
}

// speechModel maps the quality tier to the OpenAI model identifier.
func speechModel(model string) goopenai.SpeechModel {
	if model == tts.ModelHD {
		return goopenai.TTSModel1HD
	}
	return goopenai.TTSModel1
}
