package grammar

import (
	"regexp"
	"strconv"
	"strings"
)

// aa1 is the set of valid one-letter amino-acid codes.
const aa1 = "ACDEFGHIKLMNPQRSTVWY"

// aa3Codes maps lowercase three-letter codes, including the stop codon.
var aa3Codes = map[string]bool{
	"ala": true, "arg": true, "asn": true, "asp": true, "cys": true,
	"gln": true, "glu": true, "gly": true, "his": true, "ile": true,
	"leu": true, "lys": true, "met": true, "phe": true, "pro": true,
	"ser": true, "thr": true, "trp": true, "tyr": true, "val": true,
	"ter": true,
}

var plainRange = regexp.MustCompile(`\.([0-9]+)_([0-9]+)`)

// validRange rejects ranges whose start exceeds their end. Positions with
// UTR markers or intronic offsets are left to the normalizer.
func validRange(s string) bool {
	m := plainRange.FindStringSubmatch(s)
	if m == nil {
		return true
	}
	start, err1 := strconv.Atoi(m[1])
	end, err2 := strconv.Atoi(m[2])
	if err1 != nil || err2 != nil {
		return true
	}
	return start <= end
}

// validProtein checks that every amino-acid code in a protein notation is a
// real code. The coarse pattern admits any capital letter; this is where
// p.B600Z gets dropped.
func validProtein(s string) bool {
	if i := strings.IndexByte(s, ':'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimPrefix(s, "p.")
	for i := 0; i < len(s); {
		if !isLetter(s[i]) {
			i++
			continue
		}
		j := i
		for j < len(s) && isLetter(s[j]) {
			j++
		}
		if !validAARun(s[i:j]) {
			return false
		}
		i = j
	}
	return true
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// validAARun validates one contiguous letter run from a protein notation:
// either a notation keyword, a one-letter code, or a sequence of three-letter
// codes, optionally prefixed by ins/delins/fs.
func validAARun(run string) bool {
	switch run {
	case "del", "dup", "ins", "delins", "fs":
		return true
	}
	for _, kw := range []string{"delins", "ins", "fs"} {
		if strings.HasPrefix(run, kw) {
			run = run[len(kw):]
			break
		}
	}
	if run == "" {
		return true
	}
	if len(run) == 1 {
		return strings.Contains(aa1, run)
	}
	if len(run)%3 != 0 {
		return false
	}
	for i := 0; i < len(run); i += 3 {
		if !aa3Codes[strings.ToLower(run[i:i+3])] {
			return false
		}
	}
	return true
}

// validChromosome bounds numeric chromosomes to 1..22.
func validChromosome(s string) bool {
	ls := strings.ToLower(s)
	rest := ls[strings.Index(ls, "chr")+3:]
	num := rest[:strings.IndexByte(rest, ':')]
	n, err := strconv.Atoi(num)
	if err != nil {
		return true // X, Y, M, MT
	}
	return n >= 1 && n <= 22
}

var aberrationChrom = regexp.MustCompile(`\(([0-9]{1,2})(?:;([0-9]{1,2}))?\)`)

func validAberration(s string) bool {
	m := aberrationChrom.FindStringSubmatch(s)
	if m == nil {
		return true
	}
	for _, num := range m[1:] {
		if num == "" {
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil || n < 1 || n > 22 {
			return false
		}
	}
	return true
}
