package quiz

// RevealHint returns a deterministic partial reveal of the answer: the first
// max(floor(len * percent/100 * multiplier), 1) characters of the original,
// un-normalized text, capped at the full answer. Rune-safe.
func RevealHint(answer string, multiplier, percent int) string {
	runes := []rune(answer)
	if len(runes) == 0 {
		return ""
	}
	n := len(runes) * percent * multiplier / 100
	if n < 1 {
		n = 1
	}
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n])
}
