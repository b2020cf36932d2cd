//go:build linux

package voices

import (
	"fmt"
	"os/exec"
)

// discover lists the installed voices via espeak. Both the espeak-ng fork
// and classic espeak print the same table.
func discover() ([]Voice, error) {
	for _, binary := range []string{"espeak-ng", "espeak"} {
		path, err := exec.LookPath(binary)
		if err != nil {
			continue
		}
		out, err := exec.Command(path, "--voices").Output()
		if err != nil {
			return nil, fmt.Errorf("%s --voices: %w", binary, err)
		}
		return parseESpeakCatalog(string(out)), nil
	}
	return nil, fmt.Errorf("no espeak binary found")
}
