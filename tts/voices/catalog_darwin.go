//go:build darwin

package voices

import (
	"fmt"
	"os/exec"
)

// discover lists the installed voices via the say command.
func discover() ([]Voice, error) {
	out, err := exec.Command("say", "-v", "?").Output()
	if err != nil {
		return nil, fmt.Errorf("say -v ?: %w", err)
	}
	return parseSayCatalog(string(out)), nil
}
