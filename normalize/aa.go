package normalize

import "strings"

// aaThreeToOne maps lowercase three-letter amino-acid codes to one-letter
// codes. Termination codons map to "*".
var aaThreeToOne = map[string]string{
	"ala": "A", "arg": "R", "asn": "N", "asp": "D",
	"cys": "C", "gln": "Q", "glu": "E", "gly": "G",
	"his": "H", "ile": "I", "leu": "L", "lys": "K",
	"met": "M", "phe": "F", "pro": "P", "ser": "S",
	"thr": "T", "trp": "W", "tyr": "Y", "val": "V",
	"ter": "*", "sec": "U", "pyl": "O",
}

const aaOneLetter = "ACDEFGHIKLMNPQRSTUVWYO*"

// aaRunToOne converts a run of amino-acid letters to the one-letter
// canonical form. Three-letter codes are tried first so "Val600Glu" and
// "V600E" canonicalize identically.
func aaRunToOne(run string) (string, bool) {
	lower := strings.ToLower(run)
	if lower == "stop" {
		return "*", true
	}
	if len(run)%3 == 0 {
		var b strings.Builder
		ok := true
		for i := 0; i < len(lower); i += 3 {
			one, found := aaThreeToOne[lower[i:i+3]]
			if !found {
				ok = false
				break
			}
			b.WriteString(one)
		}
		if ok {
			return b.String(), true
		}
	}
	upper := strings.ToUpper(run)
	for i := 0; i < len(upper); i++ {
		if !strings.ContainsRune(aaOneLetter, rune(upper[i])) {
			return "", false
		}
	}
	return upper, true
}
