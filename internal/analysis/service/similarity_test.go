package service

import "testing"

func TestLCSRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"", "", 1},
		{"abc", "abc", 1},
		{"abc", "xyz", 0},
		{"昌盛门市A", "昌盛门市B", 0.8}, // lcs 4 over 5+5 runes
	}
	for _, tt := range tests {
		if got := lcsRatio(tt.a, tt.b); got != tt.want {
			t.Errorf("lcsRatio(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsSimilar(t *testing.T) {
	sc := NewScorer(NewStandardizer(nil))

	tests := []struct {
		name      string
		a, b      string
		threshold float64
		want      bool
	}{
		{"empty left", "", "九方昌盛门市", 0.7, false},
		{"empty right", "九方昌盛门市", "", 0.7, false},
		{"identical", "九方昌盛门市", "九方昌盛门市", 0.7, true},
		{"containment after standardize", "鑫帅辉-九方昌盛门市", "九方昌盛门市", 0.7, true},
		{"punctuation ignored", "九方（昌盛）门市", "九方昌盛门市", 0.7, true},
		{"ratio above threshold", "昌盛门市A", "昌盛门市B", 0.7, true},
		{"unrelated", "天天商行", "昌盛门市", 0.7, false},
		{"threshold honored", "昌盛门市A", "昌盛门市B", 0.9, false},
		{"only symbols", "！！！", "九方昌盛门市", 0.7, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sc.IsSimilar(tt.a, tt.b, tt.threshold); got != tt.want {
				t.Errorf("IsSimilar(%q, %q, %v) = %v, want %v", tt.a, tt.b, tt.threshold, got, tt.want)
			}
		})
	}
}
