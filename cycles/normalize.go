package cycles

import (
	"regexp"
	"strconv"
	"strings"
)

// Normalization rewrites an instruction into the canonical form used as a
// lookup key in the cycle database: registers, immediates, displacements and
// absolute addresses are replaced by fixed placeholders so that every
// cost-equivalent spelling of an instruction maps to the same key.
//
// The pass order below is load-bearing: later passes must not re-match the
// placeholders produced by earlier ones.

var (
	reLabel = regexp.MustCompile(`^\s*[a-zA-Z_][a-zA-Z0-9_]*:\s*`)

	// lea/moveq are written without a size suffix but always operate long.
	reFixedSize = regexp.MustCompile(`^(lea|moveq)$`)

	// Branch family: a three-letter b-mnemonic, optionally suffixed. A
	// short-form ".s" suffix means the 8-bit displacement encoding. Longer
	// tokens (btst, bchg, ...) are not branches and fall through.
	reBranch = regexp.MustCompile(`^b[a-z]{2}(\..*)?$`)

	reDisplacement = regexp.MustCompile(`([^\s,()]+)\((a[0-7]|sp)\)`)
	reImmediate    = regexp.MustCompile(`#[^,\s]+`)

	// A register list names two or more registers joined by "-" (range) or
	// "/" (list), e.g. d0-d7/a0-a6. Matched before the single-register
	// passes so the members are still spelled out.
	reRegList    = regexp.MustCompile(`\b(?:[ad][0-7]|sp)(?:[-/](?:[ad][0-7]|sp))+\b`)
	reListMember = regexp.MustCompile(`^(?:[ad]([0-7])|sp)$`)

	reDataReg = regexp.MustCompile(`\bd[0-7]\b`)
	reAddrReg = regexp.MustCompile(`\b(a[0-7]|sp)\b`)

	reAbsAddress = regexp.MustCompile(`(^|[ \t,(\[])([a-zA-Z_][a-zA-Z0-9_]*)(\.[lw])?\b`)
	reSpaces     = regexp.MustCompile(`[ \t]+`)
	reHexAddress = regexp.MustCompile(`\$(\w+)(\.w)?([,;\n\t])?`)
)

// Normalize canonicalizes one source line into a cycle-database key and
// reports how many registers its register-list operand names (0 when the
// line has none). It is total: any input yields some key; whether the key
// resolves is the lookup's problem.
func Normalize(line string) (string, int) {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		line = line[:idx]
	}
	line = reLabel.ReplaceAllString(line, "")
	trimmed := strings.ToLower(strings.TrimSpace(line))

	mnemonic := trimmed
	operands := ""
	if idx := strings.IndexFunc(trimmed, isSpace); idx >= 0 {
		mnemonic = trimmed[:idx]
		operands = strings.TrimSpace(trimmed[idx+1:])
	}

	mnemonic = normalizeMnemonic(mnemonic)

	regCount := 0
	operands = reDisplacement.ReplaceAllStringFunc(operands, func(m string) string {
		caps := reDisplacement.FindStringSubmatch(m)
		if caps[1] == "-" {
			// Predecrement, not a displacement.
			return "-(" + caps[2] + ")"
		}
		return "d(" + caps[2] + ")"
	})
	operands = reImmediate.ReplaceAllString(operands, "#xxx")
	operands = reRegList.ReplaceAllStringFunc(operands, func(m string) string {
		regCount += countListRegisters(m)
		return "reglist"
	})
	operands = reDataReg.ReplaceAllString(operands, "dn")
	operands = reAddrReg.ReplaceAllString(operands, "an")
	operands = reAbsAddress.ReplaceAllStringFunc(operands, normalizeAbsToken)
	operands = strings.TrimSpace(reSpaces.ReplaceAllString(operands, " "))
	if strings.ContainsRune(operands, '$') {
		operands = reHexAddress.ReplaceAllStringFunc(operands, func(m string) string {
			caps := reHexAddress.FindStringSubmatch(m)
			if caps[2] == ".w" {
				return "xxx.w" + caps[3]
			}
			return "xxx.l" + caps[3]
		})
	}

	if operands == "" {
		return mnemonic, regCount
	}
	return mnemonic + " " + operands, regCount
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

func normalizeMnemonic(tok string) string {
	switch {
	case tok == "":
		return tok
	case reFixedSize.MatchString(tok):
		return tok + ".l"
	case reBranch.MatchString(tok):
		base, rest := tok[:3], tok[3:]
		if strings.HasPrefix(rest, ".s") {
			// Trailing sub-suffix after the size, if any, is preserved.
			return base + ".b" + rest[2:]
		}
		if rest == "" {
			return base + ".w"
		}
		// Already carries an explicit size; keys must be stable under
		// renormalization.
		return tok
	case !strings.ContainsRune(tok, '.'):
		return tok + ".w"
	default:
		return tok
	}
}

// countListRegisters sums the members of a register-list operand. A range
// like d0-d3 contributes trailing-digit distance + 1; a malformed range
// (e.g. mixing sp into one) counts as a single register.
func countListRegisters(list string) int {
	total := 0
	for _, seg := range strings.Split(list, "/") {
		lo, hi, ok := strings.Cut(seg, "-")
		if !ok {
			total++
			continue
		}
		a := reListMember.FindStringSubmatch(lo)
		b := reListMember.FindStringSubmatch(hi)
		if a == nil || b == nil || a[1] == "" || b[1] == "" {
			total++
			continue
		}
		from, _ := strconv.Atoi(a[1])
		to, _ := strconv.Atoi(b[1])
		if to < from {
			from, to = to, from
		}
		total += to - from + 1
	}
	return total
}

func normalizeAbsToken(m string) string {
	caps := reAbsAddress.FindStringSubmatch(m)
	before, token, suffix := caps[1], caps[2], caps[3]
	// Placeholders from earlier passes stay put.
	if token == "an" || token == "dn" || token == "d" || token == "reglist" || token == "xxx" {
		return m
	}
	if suffix == ".w" {
		return before + "xxx.w"
	}
	return before + "xxx.l"
}
