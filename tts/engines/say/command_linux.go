//go:build linux

package say

// espeak-ng is the maintained fork; plain espeak remains common on older
// distributions.
var engineCandidates = []string{"espeak-ng", "espeak"}

// speakArgs builds the espeak invocation. voiceID is an espeak voice
// identifier such as "en-us" or "mb-en1".
func speakArgs(text, voiceID string) []string {
	args := []string{}
	if voiceID != "" {
		args = append(args, "-v", voiceID)
	}
	return append(args, text)
}
