package domain

import "testing"

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
	}{
		{"english", LanguageEnglish},
		{"English", LanguageEnglish},
		{" ENGLISH ", LanguageEnglish},
		{"urdu", LanguageUrdu},
		{"Urdu", LanguageUrdu},
		{"french", LanguageUnknown},
		{"", LanguageUnknown},
	}

	for _, tt := range tests {
		if got := ParseLanguage(tt.in); got != tt.want {
			t.Errorf("ParseLanguage(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
