// Package voices discovers the installed system voices and ranks them so a
// language code can be resolved to the best available voice.
package voices

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// Quality is the voice quality tier, best last.
type Quality int

const (
	// QualityDefault is a standard system voice.
	QualityDefault Quality = iota
	// QualityEnhanced is a higher-quality downloadable voice.
	QualityEnhanced
	// QualityPremium is the best tier offered by the platform.
	QualityPremium
)

// String returns the tier name.
func (q Quality) String() string {
	switch q {
	case QualityPremium:
		return "premium"
	case QualityEnhanced:
		return "enhanced"
	default:
		return "default"
	}
}

// Voice is one installed system voice.
type Voice struct {
	// ID is the identifier the speech command accepts.
	ID string

	// Language is the voice's language code as reported by the platform.
	Language string

	// Gender is "female", "male" or empty when the platform does not say.
	Gender string

	// Quality is the voice quality tier.
	Quality Quality
}

// Directory is the ranked voice catalog. Built once at startup, read-only
// afterwards, safe for concurrent use.
type Directory struct {
	voices     []Voice
	byLanguage map[string][]Voice
	byName     map[string]Voice
}

// Discover probes the platform voice catalog and builds a directory. A
// failed probe yields an empty directory; the platform default voice still
// works without one.
func Discover() *Directory {
	vs, err := discover()
	if err != nil {
		log.Warn("voice discovery failed, using platform default voice only", "err", err)
		return NewDirectory(nil)
	}
	log.Info("voice catalog discovered", "voices", len(vs))
	return NewDirectory(vs)
}

// NewDirectory builds a directory from an explicit voice list.
func NewDirectory(vs []Voice) *Directory {
	d := &Directory{
		voices:     rank(vs),
		byLanguage: map[string][]Voice{},
		byName:     map[string]Voice{},
	}
	for _, v := range d.voices {
		lang := normalizeLanguage(v.Language)
		d.byLanguage[lang] = append(d.byLanguage[lang], v)
		if primary := primarySubtag(lang); primary != lang {
			d.byLanguage[primary] = append(d.byLanguage[primary], v)
		}
		key := strings.ToLower(v.ID)
		if _, exists := d.byName[key]; !exists {
			d.byName[key] = v
		}
	}
	return d
}

// Voices returns the catalog in rank order.
func (d *Directory) Voices() []Voice {
	return d.voices
}

// BestVoiceFor returns the highest-ranked voice for a language code. An
// exact match ("en-US") is preferred; the primary subtag ("en") is tried
// next.
func (d *Directory) BestVoiceFor(language string) (string, bool) {
	lang := normalizeLanguage(language)
	if vs := d.byLanguage[lang]; len(vs) > 0 {
		return vs[0].ID, true
	}
	if vs := d.byLanguage[primarySubtag(lang)]; len(vs) > 0 {
		return vs[0].ID, true
	}
	return "", false
}

// VoiceNamed looks up a voice by exact name, case-insensitively.
func (d *Directory) VoiceNamed(name string) (string, bool) {
	v, ok := d.byName[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return v.ID, true
}

// rank orders voices best-first: quality tier, then gender (platforms rank
// their female voices as the flagship ones), then name for stability.
func rank(vs []Voice) []Voice {
	ranked := make([]Voice, len(vs))
	copy(ranked, vs)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Quality != ranked[j].Quality {
			return ranked[i].Quality > ranked[j].Quality
		}
		if gi, gj := genderRank(ranked[i].Gender), genderRank(ranked[j].Gender); gi != gj {
			return gi < gj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

func genderRank(gender string) int {
	switch strings.ToLower(gender) {
	case "female":
		return 0
	case "male":
		return 1
	default:
		return 2
	}
}

// normalizeLanguage folds case and separator differences: "en-US", "en_US"
// and "EN_us" all become "en_us".
func normalizeLanguage(language string) string {
	return strings.ToLower(strings.ReplaceAll(language, "-", "_"))
}

func primarySubtag(normalized string) string {
	if idx := strings.Index(normalized, "_"); idx > 0 {
		return normalized[:idx]
	}
	return normalized
}
