package utils

import (
	"regexp"
	"strconv"
	"strings"
)

var rxKeepNums = regexp.MustCompile(`[^\d\.\-]`)

// ParseAmount parses ledger-style numbers: "1,234.50", "１２３", "¥ 3 200",
// full-width commas, NBSP padding, parenthesized negatives. Returns false
// when nothing numeric is left.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") ||
		strings.HasPrefix(s, "（") && strings.HasSuffix(s, "）") {
		neg = true
	}
	repl := strings.NewReplacer(
		" ", "", " ", "", "　", "", " ", "", "\t", "",
		",", "", "，", "", "¥", "", "￥", "", "元", "",
		"（", "", "）", "", "(", "", ")", "",
	)
	s = repl.Replace(s)
	// full-width digits → ASCII
	s = strings.Map(func(r rune) rune {
		if r >= '０' && r <= '９' {
			return '0' + (r - '０')
		}
		if r == '．' {
			return '.'
		}
		return r
	}, s)
	s = rxKeepNums.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		f = -f
	}
	return f, true
}
