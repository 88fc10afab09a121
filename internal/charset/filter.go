package charset

import "unicode"

// FilterRunes drops characters that cannot be drilled and removes repeats,
// keeping first-seen order.
func FilterRunes(runes []rune) []rune {
	seen := make(map[rune]struct{}, len(runes))
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if !drillable(r) {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

func drillable(r rune) bool {
	if r == unicode.ReplacementChar {
		return false
	}
	return !unicode.IsSpace(r) && !unicode.IsControl(r)
}
