package service

import (
	"regexp"
	"strings"
)

// DefaultPrefixes — organizational prefixes some exports prepend to customer
// names. Each entry is matched literally at the start of the string, at most
// once. Short dealer tags like "鑫帅辉-" are deliberately not listed: those
// names resolve through containment, and stripping them here would hide the
// tag from the keyword extractor too.
var DefaultPrefixes = []string{
	"鑫帅辉商贸有限公司-",
	"鑫帅辉商贸有限公司",
	"鑫帅辉商贸-",
	"鑫帅辉商贸",
}

// Ordered separator classes for keyword splitting. Only the FIRST class
// present in the name is used; we do not cascade-split. Opening and closing
// parentheses count as one class.
var keywordSepClasses = [][]rune{
	{'-'}, {'_'}, {'—'}, {' '}, {'·'}, {'(', ')', '（', '）'},
}

// Maximal runs of >=2 CJK ideographs — the fallback when no separator exists.
var reCJKRun = regexp.MustCompile(`[\x{4e00}-\x{9fff}]{2,}`)

// Standardizer canonicalizes raw customer names for comparison.
type Standardizer struct {
	prefixes []string
}

func NewStandardizer(prefixes []string) *Standardizer {
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}
	return &Standardizer{prefixes: prefixes}
}

func (st *Standardizer) stripPrefixes(s string) string {
	for _, p := range st.prefixes {
		s = strings.TrimPrefix(s, p)
	}
	return s
}

// Standardize strips known prefixes, then drops every rune that is not
// ASCII alphanumeric, a CJK ideograph or a hyphen. Never fails; empty in,
// empty out.
func (st *Standardizer) Standardize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = st.stripPrefixes(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= 0x4e00 && r <= 0x9fff,
			r == '-':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Keywords extracts comparison tokens from a raw name. The name is split on
// the first separator found (one separator type only); parts longer than two
// runes are added twice to weight "core name" tokens, which collapses under
// set semantics but mirrors the source scoring. Single-rune tokens are
// dropped. With no separator at all, runs of >=2 CJK ideographs are used.
func (st *Standardizer) Keywords(raw string) map[string]struct{} {
	out := make(map[string]struct{})
	s := strings.TrimSpace(raw)
	if s == "" {
		return out
	}
	s = st.stripPrefixes(s)

	var parts []string
	for _, class := range keywordSepClasses {
		if strings.ContainsAny(s, string(class)) {
			parts = splitWeighted(s, class)
			break
		}
	}
	if parts == nil {
		parts = reCJKRun.FindAllString(s, -1)
	}
	for _, p := range parts {
		if len([]rune(p)) < 2 {
			continue
		}
		out[p] = struct{}{}
	}
	return out
}

// splitWeighted splits on one separator class, keeps every non-empty part
// and re-adds parts longer than two runes.
func splitWeighted(s string, class []rune) []string {
	isSep := func(r rune) bool {
		for _, c := range class {
			if r == c {
				return true
			}
		}
		return false
	}
	var parts []string
	for _, p := range strings.FieldsFunc(s, isSep) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, p)
		if len([]rune(p)) > 2 {
			parts = append(parts, p)
		}
	}
	return parts
}

// keywordsIntersect reports whether two token sets share any member.
func keywordsIntersect(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for k := range a {
		if _, ok := b[k]; ok {
			return true
		}
	}
	return false
}
