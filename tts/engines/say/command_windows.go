//go:build windows

package say

import "strings"

// Windows has no standalone speech command; SAPI is reached via PowerShell.
var engineCandidates = []string{"powershell"}

// speakArgs builds a PowerShell invocation of the SAPI synthesizer. Text
// and voice are embedded in single-quoted PowerShell strings, where only
// the quote itself needs escaping (by doubling).
func speakArgs(text, voiceID string) []string {
	var script strings.Builder
	script.WriteString("Add-Type -AssemblyName System.Speech; ")
	script.WriteString("$s = New-Object System.Speech.Synthesis.SpeechSynthesizer; ")
	if voiceID != "" {
		script.WriteString("$s.SelectVoice('" + psQuote(voiceID) + "'); ")
	}
	script.WriteString("$s.Speak('" + psQuote(text) + "');")
	return []string{"-NoProfile", "-Command", script.String()}
}

func psQuote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
