//go:build windows

package voices

import (
	"fmt"
	"os/exec"
)

// discover lists the installed SAPI voices through PowerShell, one
// Name|Culture|Gender line per voice.
func discover() ([]Voice, error) {
	script := "Add-Type -AssemblyName System.Speech; " +
		"$s = New-Object System.Speech.Synthesis.SpeechSynthesizer; " +
		"$s.GetInstalledVoices() | ForEach-Object { " +
		"$v = $_.VoiceInfo; Write-Output ($v.Name + '|' + $v.Culture + '|' + $v.Gender) }"

	out, err := exec.Command("powershell", "-NoProfile", "-Command", script).Output()
	if err != nil {
		return nil, fmt.Errorf("powershell voice probe: %w", err)
	}
	return parseSAPICatalog(string(out)), nil
}
