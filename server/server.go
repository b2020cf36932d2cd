// Package server exposes speech synthesis to MCP clients as a single say
// tool. The tool acknowledges immediately; synthesis and playback run in
// the background.
package server

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/voicebox-mcp/voicebox/tts"
)

// Server serves the say tool over MCP stdio.
type Server struct {
	selector *tts.Selector
	mcp      *sdk.Server

	// onResult observes completed background syntheses. Defaults to
	// logging; tests swap it out.
	onResult func(tts.Result)
}

// New creates the MCP server and registers the say tool.
func New(selector *tts.Selector, version string) *Server {
	s := &Server{
		selector: selector,
		onResult: logResult,
	}

	s.mcp = sdk.NewServer(&sdk.Implementation{
		Name:    "voicebox",
		Version: version,
	}, nil)

	// The schema is spelled out because echo takes a boolean or an object,
	// which reflection over SayArgs cannot express.
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name: "say",
		Description: "Speak text aloud. Uses the OS speech engine or the OpenAI " +
			"speech API, returns immediately while audio plays in the background.",
		InputSchema: map[string]any{
			"type":     "object",
			"required": []string{"text"},
			"properties": map[string]any{
				"text":     map[string]any{"type": "string", "description": "The text to speak aloud"},
				"language": map[string]any{"type": "string", "description": "Language code used to pick a system voice (e.g. en-US)"},
				"voice":    map[string]any{"type": "string", "description": "System voice name, matched case-insensitively"},
				"useOpenAI": map[string]any{
					"type":        "boolean",
					"description": "Force (true) or forbid (false) the OpenAI engine; omit to use the preferred engine",
				},
				"openaiVoice": map[string]any{
					"type":        "string",
					"description": "OpenAI voice: alloy, echo, fable, onyx, nova or shimmer",
				},
				"openaiModel": map[string]any{
					"type":        "string",
					"description": "OpenAI quality tier: standard or hd",
				},
				"openaiSpeed": map[string]any{
					"type":        "number",
					"description": "Speech speed 0.25-4.0; out-of-range values are clamped",
				},
				"echo": map[string]any{
					"type":        []string{"boolean", "object"},
					"description": "Echo effect: true for defaults or an object with delayMs, volumes and repeatCount",
				},
			},
		},
	}, s.handleSay)

	return s
}

// Run serves MCP over stdin/stdout until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log.Info("MCP server starting", "transport", "stdio")
	return s.mcp.Run(ctx, &sdk.StdioTransport{})
}

// SayArgs is the inbound contract of the say tool.
type SayArgs struct {
	Text        string      `json:"text"`
	Language    string      `json:"language,omitempty"`
	Voice       string      `json:"voice,omitempty"`
	UseOpenAI   *bool       `json:"useOpenAI,omitempty"`
	OpenAIVoice string      `json:"openaiVoice,omitempty"`
	OpenAIModel string      `json:"openaiModel,omitempty"`
	OpenAISpeed *float64    `json:"openaiSpeed,omitempty"`
	Echo        *EchoOption `json:"echo,omitempty"`
}

func (s *Server) handleSay(ctx context.Context, _ *sdk.CallToolRequest, args SayArgs) (*sdk.CallToolResult, any, error) {
	req, err := buildRequest(args)
	if err != nil {
		log.Warn("say call rejected", "err", err)
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: fmt.Sprintf("Error: %v", err)}},
			IsError: true,
		}, nil, nil
	}

	info := s.selector.UsedVoiceInfo(req)
	log.Debug("say call accepted", "voice", info)

	// Fire and forget: the acknowledgement goes back before synthesis
	// finishes. The detached context keeps a client disconnect from
	// cutting speech off mid-sentence; failures surface via onResult.
	go func() {
		s.onResult(s.selector.Synthesize(context.Background(), req))
	}()

	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: "Speaking with " + info}},
	}, nil, nil
}

// buildRequest maps the wire arguments onto a synthesis request and
// validates its structure. Backend-specific values such as an unknown
// OpenAI voice are deliberately not checked here: the call is acknowledged
// optimistically and a bad parameter becomes a cloud failure that fallback
// recovers from.
func buildRequest(args SayArgs) (*tts.Request, error) {
	req := &tts.Request{
		Text:       args.Text,
		Language:   args.Language,
		VoiceName:  args.Voice,
		UseCloud:   args.UseOpenAI,
		CloudVoice: args.OpenAIVoice,
		CloudModel: args.OpenAIModel,
	}
	if args.OpenAISpeed != nil {
		req.CloudSpeed = *args.OpenAISpeed
	}
	if args.Echo != nil {
		cfg, err := args.Echo.Config()
		if err != nil {
			return nil, err
		}
		req.Echo = cfg
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func logResult(res tts.Result) {
	if res.Success {
		if res.ErrorMessage != "" {
			// Fallback succeeded; keep the original failure visible.
			log.Warn("synthesis recovered",
				"engine", res.Engine, "voice", res.VoiceDescription,
				"duration", res.Duration, "err", res.ErrorMessage)
			return
		}
		log.Info("synthesis finished",
			"engine", res.Engine, "voice", res.VoiceDescription, "duration", res.Duration)
		return
	}
	log.Error("synthesis failed",
		"engine", res.Engine, "duration", res.Duration, "err", res.ErrorMessage)
}
