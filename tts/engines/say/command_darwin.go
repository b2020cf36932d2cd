//go:build darwin

package say

// macOS ships the say command with the system speech voices.
var engineCandidates = []string{"say"}

// speakArgs builds the say invocation. Passing text as a separate argument
// keeps it safe from shell interpretation.
func speakArgs(text, voiceID string) []string {
	args := []string{}
	if voiceID != "" {
		args = append(args, "-v", voiceID)
	}
	return append(args, text)
}
