//go:build windows

package say

import (
	"strings"
	"testing"
)

func TestSpeakArgsBuildsSAPIScript(t *testing.T) {
	args := speakArgs("hello world", "Microsoft Zira Desktop")
	if len(args) != 3 || args[0] != "-NoProfile" || args[1] != "-Command" {
		t.Fatalf("unexpected argument shape: %v", args)
	}

	script := args[2]
	if !strings.Contains(script, "SelectVoice('Microsoft Zira Desktop')") {
		t.Errorf("voice selection missing from script: %s", script)
	}
	if !strings.Contains(script, "Speak('hello world')") {
		t.Errorf("speak call missing from script: %s", script)
	}
}

func TestSpeakArgsQuotesText(t *testing.T) {
	args := speakArgs("it's here", "")
	script := args[len(args)-1]
	if !strings.Contains(script, "Speak('it''s here')") {
		t.Errorf("single quote not doubled: %s", script)
	}
	if strings.Contains(script, "SelectVoice") {
		t.Error("empty voice must not emit a SelectVoice call")
	}
}
