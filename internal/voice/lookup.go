package voice

import (
	"errors"
	"strings"

	"github.com/antzucaro/matchr"
)

// ErrVoiceNotFound is returned by [Registry.Find] when no voice carries the
// requested name.
var ErrVoiceNotFound = errors.New("voice not found")

const (
	// phoneticThreshold is the minimum Jaro-Winkler score required for a
	// phonetically-matched candidate to be suggested.
	phoneticThreshold = 0.70

	// fuzzyThreshold is the minimum Jaro-Winkler score required when no
	// candidate overlaps phonetically and the suggestion falls back to pure
	// string similarity.
	fuzzyThreshold = 0.85
)

// Find returns the voice with the given name. Predefined voices shadow file
// voices that happen to share a name, matching the ordering of
// [Registry.AllVoices]. Returns [ErrVoiceNotFound] when the name is unknown.
func (r *Registry) Find(name string) (VoiceInfo, error) {
	if _, ok := r.predefined[name]; ok {
		return VoiceInfo{Name: name, Source: SourcePredefined}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.fileVoices {
		if v.Name == name {
			return v, nil
		}
	}
	return VoiceInfo{}, ErrVoiceNotFound
}

// Nearest suggests the catalogued voice whose name sounds most like name,
// for "did you mean" hints after a failed [Registry.Find].
//
// Candidates whose Double Metaphone codes overlap with the input are ranked
// by Jaro-Winkler similarity and accepted above phoneticThreshold; when no
// candidate overlaps phonetically, a pure-similarity pass applies the
// stricter fuzzyThreshold. Returns ok=false when nothing scores above its
// threshold.
func (r *Registry) Nearest(name string) (v VoiceInfo, score float64, ok bool) {
	input := strings.ToLower(strings.TrimSpace(name))
	if input == "" {
		return VoiceInfo{}, 0, false
	}
	inputPrimary, inputSecondary := matchr.DoubleMetaphone(input)

	var (
		best         VoiceInfo
		bestScore    float64
		bestPhonetic bool
	)

	for _, candidate := range r.AllVoices() {
		cand := strings.ToLower(candidate.Name)
		if cand == "" {
			continue
		}

		jw := matchr.JaroWinkler(input, cand, false)

		candPrimary, candSecondary := matchr.DoubleMetaphone(cand)
		phonetic := codesOverlap(inputPrimary, inputSecondary, candPrimary, candSecondary)

		switch {
		case phonetic && jw >= phoneticThreshold:
			if !bestPhonetic || jw > bestScore {
				best, bestScore, bestPhonetic = candidate, jw, true
			}
		case !phonetic && !bestPhonetic && jw >= fuzzyThreshold && jw > bestScore:
			best, bestScore = candidate, jw
		}
	}

	if best.Name == "" {
		return VoiceInfo{}, 0, false
	}
	return best, bestScore, true
}

// codesOverlap reports whether any non-empty Double Metaphone code is shared
// between the two (primary, secondary) code pairs.
func codesOverlap(aPrimary, aSecondary, bPrimary, bSecondary string) bool {
	for _, a := range [...]string{aPrimary, aSecondary} {
		if a == "" {
			continue
		}
		if a == bPrimary || a == bSecondary {
			return true
		}
	}
	return false
}
