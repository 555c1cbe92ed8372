package jptext

import "testing"

func TestCountJapanese_MixedScript(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"latin only", "housing allowance rules", 0},
		{"hiragana", "これはてすと", 6},
		{"katakana", "テスト", 3},
		{"kanji", "住宅手当", 4},
		{"mixed", "第1条 これはテスト規程です。", 12},
		{"digits and punctuation ignored", "１２３、。- 45 -", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountJapanese(tt.in); got != tt.want {
				t.Errorf("CountJapanese(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestToHalfWidth(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"１０倍", "10倍"},
		{"１，０００", "1,000"},
		{"ＡＢＣ", "ABC"},
		{"already half 123", "already half 123"},
		{"かなは変換しない", "かなは変換しない"},
	}
	for _, tt := range tests {
		if got := ToHalfWidth(tt.in); got != tt.want {
			t.Errorf("ToHalfWidth(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"1,000", "1000"},
		{"１，０００", "1000"},
		{"１２３", "123"},
		{"50000", "50000"},
	}
	for _, tt := range tests {
		if got := NormalizeDigits(tt.in); got != tt.want {
			t.Errorf("NormalizeDigits(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
