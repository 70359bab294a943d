package service

import (
	"reflect"
	"sort"
	"testing"
)

func TestStandardize(t *testing.T) {
	st := NewStandardizer(nil)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"九方昌盛门市", "九方昌盛门市"},
		{" 九方昌盛门市 ", "九方昌盛门市"},
		{"九方(昌盛)门市", "九方昌盛门市"},
		{"九方，昌盛。门市！", "九方昌盛门市"},
		{"ABC-123商行", "ABC-123商行"},
		{"鑫帅辉商贸有限公司-九方昌盛门市", "九方昌盛门市"},
		{"鑫帅辉-九方昌盛门市", "鑫帅辉-九方昌盛门市"}, // bare tag is not a configured prefix
	}
	for _, tt := range tests {
		if got := st.Standardize(tt.in); got != tt.want {
			t.Errorf("Standardize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStandardizeCustomPrefix(t *testing.T) {
	st := NewStandardizer([]string{"宁夏分部-"})
	if got := st.Standardize("宁夏分部-天天商行"); got != "天天商行" {
		t.Errorf("got %q", got)
	}
	// applied at most once
	if got := st.Standardize("宁夏分部-宁夏分部-天天商行"); got != "宁夏分部-天天商行" {
		t.Errorf("prefix stripped more than once: %q", got)
	}
}

func TestKeywords(t *testing.T) {
	st := NewStandardizer(nil)

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"hyphen split", "九方-昌盛门市", []string{"九方", "昌盛门市"}},
		{"first separator only", "九方-昌盛 门市", []string{"九方", "昌盛 门市"}},
		{"underscore", "九方_门市", []string{"九方", "门市"}},
		{"fullwidth parens", "九方昌盛（旗舰店）", []string{"九方昌盛", "旗舰店"}},
		{"no separator cjk runs", "九方昌盛门市", []string{"九方昌盛门市"}},
		{"single rune parts dropped", "甲-乙", nil},
		{"prefix stripped before split", "鑫帅辉商贸-九方昌盛门市", []string{"九方昌盛门市"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := st.Keywords(tt.in)
			var keys []string
			for k := range got {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			want := append([]string(nil), tt.want...)
			sort.Strings(want)
			if !reflect.DeepEqual(keys, want) {
				t.Errorf("Keywords(%q) = %v, want %v", tt.in, keys, want)
			}
		})
	}
}

func TestKeywordsIntersect(t *testing.T) {
	st := NewStandardizer(nil)
	a := st.Keywords("九方-昌盛门市")
	b := st.Keywords("昌盛门市（旗舰店）")
	if !keywordsIntersect(a, b) {
		t.Errorf("expected overlap between %v and %v", a, b)
	}
	c := st.Keywords("天天商行")
	if keywordsIntersect(a, c) {
		t.Errorf("unexpected overlap between %v and %v", a, c)
	}
	if keywordsIntersect(a, st.Keywords("")) {
		t.Error("empty set must not intersect")
	}
}
