package voices

import "strings"

// parseSayCatalog parses `say -v ?` output. Each line looks like
//
//	Samantha            en_US    # Hello! My name is Samantha.
//	Eddy (Enhanced)     en_US    # Hello! My name is Eddy.
//
// where the name may contain spaces and a quality suffix in parentheses.
func parseSayCatalog(output string) []Voice {
	var vs []Voice
	for _, line := range strings.Split(output, "\n") {
		left := line
		if idx := strings.Index(line, "#"); idx >= 0 {
			left = line[:idx]
		}
		fields := strings.Fields(left)
		if len(fields) < 2 {
			continue
		}
		language := fields[len(fields)-1]
		name := strings.Join(fields[:len(fields)-1], " ")
		vs = append(vs, Voice{
			ID:       name,
			Language: language,
			Quality:  sayQuality(name),
		})
	}
	return vs
}

func sayQuality(name string) Quality {
	switch {
	case strings.Contains(name, "(Premium)"):
		return QualityPremium
	case strings.Contains(name, "(Enhanced)"):
		return QualityEnhanced
	default:
		return QualityDefault
	}
}

// parseESpeakCatalog parses `espeak-ng --voices` output. Each data row looks
// like
//
//	 5  en-us          --/M      English (America)    gmw/en-US
//
// with an age/gender column whose part after the slash is M, F or -.
func parseESpeakCatalog(output string) []Voice {
	lines := strings.Split(output, "\n")
	var vs []Voice
	for i, line := range lines {
		fields := strings.Fields(line)
		if i == 0 || len(fields) < 4 {
			// Header row or blank line.
			continue
		}
		vs = append(vs, Voice{
			ID:       fields[1],
			Language: fields[1],
			Gender:   espeakGender(fields[2]),
		})
	}
	return vs
}

func espeakGender(ageGender string) string {
	if idx := strings.Index(ageGender, "/"); idx >= 0 {
		ageGender = ageGender[idx+1:]
	}
	switch strings.ToUpper(ageGender) {
	case "F":
		return "female"
	case "M":
		return "male"
	default:
		return ""
	}
}

// parseSAPICatalog parses the pipe-separated lines produced by the
// PowerShell probe: Name|Culture|Gender.
func parseSAPICatalog(output string) []Voice {
	var vs []Voice
	for _, line := range strings.Split(output, "\n") {
		parts := strings.Split(strings.TrimSpace(line), "|")
		if len(parts) < 3 || parts[0] == "" {
			continue
		}
		vs = append(vs, Voice{
			ID:       parts[0],
			Language: parts[1],
			Gender:   strings.ToLower(parts[2]),
		})
	}
	return vs
}
