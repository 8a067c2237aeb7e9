package typo

import "testing"

func TestContainsCJK(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"hello world", false},
		{"论语", true},
		{"mixed 中文 text", true},
		{"ｈｅｌｌｏ", false},       // fullwidth Latin is not CJK
		{"「」«»", false},         // quote glyphs alone
		{"\xff\xfe", false},     // malformed UTF-8
		{"\xff论", true},         // malformed prefix, valid ideograph after
		{"一", true},        // first ideograph in the block
		{"鿿", true},        // last ideograph in the block
		{"あ", false},       // hiragana is outside the block
		{"ascii with 数字", true}, // trailing ideographs
	}
	for _, tt := range tests {
		if got := ContainsCJK(tt.in); got != tt.want {
			t.Errorf("ContainsCJK(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
