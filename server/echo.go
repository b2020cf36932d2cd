package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/voicebox-mcp/voicebox/tts"
)

// EchoOption is the wire form of the say tool's echo parameter. Clients
// send either a boolean (true enables the effect with defaults) or an
// object overriding individual knobs.
type EchoOption struct {
	enabled bool
	config  *tts.EchoConfig
}

type echoObject struct {
	DelayMs     *int      `json:"delayMs"`
	Volumes     []float64 `json:"volumes"`
	RepeatCount *int      `json:"repeatCount"`
}

// UnmarshalJSON accepts true, false or a {delayMs, volumes, repeatCount}
// object. Omitted object fields keep their defaults; unknown fields are
// rejected so a typo does not silently disable a knob.
func (e *EchoOption) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}

	if trimmed[0] != '{' {
		var enabled bool
		if err := json.Unmarshal(trimmed, &enabled); err != nil {
			return fmt.Errorf("echo: expected boolean or object: %w", err)
		}
		e.enabled = enabled
		if enabled {
			e.config = tts.DefaultEchoConfig()
		}
		return nil
	}

	var obj echoObject
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&obj); err != nil {
		return fmt.Errorf("echo: %w", err)
	}

	cfg := tts.DefaultEchoConfig()
	if obj.DelayMs != nil {
		cfg.Delay = time.Duration(*obj.DelayMs) * time.Millisecond
	}
	if obj.Volumes != nil {
		cfg.Volumes = obj.Volumes
	}
	if obj.RepeatCount != nil {
		cfg.Repeats = *obj.RepeatCount
	}

	e.enabled = true
	e.config = cfg
	return nil
}

// Config validates the decoded option and returns the effect to apply, or
// nil when the client sent echo: false.
func (e *EchoOption) Config() (*tts.EchoConfig, error) {
	if !e.enabled {
		return nil, nil
	}
	if err := e.config.Validate(); err != nil {
		return nil, err
	}
	return e.config, nil
}
