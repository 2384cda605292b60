package toolcall

import "regexp"

// Repair applies a best-effort fix to a near-JSON object span. It handles
// exactly three malformed shapes models commonly produce:
//
//   - single-quoted strings:   {'tool': 'dice_roll'}
//   - bareword keys:           {tool: "dice_roll"}
//   - trailing commas:         {"tool": "dice_roll",}
//
// It is deliberately limited to these cases; anything else stays as-is and
// the caller treats a second decode failure as "no tool call recognized".
func Repair(s string) string {
	s = singleQuoted.ReplaceAllString(s, `"$1"`)
	s = barewordKey.ReplaceAllString(s, `$1"$2":`)
	s = trailingComma.ReplaceAllString(s, "$1")
	return s
}

var (
	singleQuoted  = regexp.MustCompile(`'([^']*)'`)
	barewordKey   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingComma = regexp.MustCompile(`,\s*([}\]])`)
)
