package plates

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean text unchanged", "AB12CD3456", "AB12CD3456"},
		{"punctuation stripped", "AB12-CD.3456!", "AB12CD3456"},
		{"internal space kept", "AB12 CD3456", "AB12 CD3456"},
		{"noise glyphs stripped", "[AB12|CD]", "AB12CD"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAccept(t *testing.T) {
	filter := Acceptance{MinConfidence: 0.2, MinLength: 4}

	tests := []struct {
		name       string
		text       string
		confidence float64
		wantText   string
		wantOK     bool
	}{
		{"accepted", "AB12CD3456", 0.9, "AB12CD3456", true},
		{"at confidence floor", "AB12CD3456", 0.2, "AB12CD3456", true},
		{"below confidence floor", "AB12CD3456", 0.19, "", false},
		{"too short", "AB1", 0.9, "", false},
		{"too short after normalization", "A-B-1!", 0.9, "", false},
		{"exactly minimum length", "AB12", 0.9, "AB12", true},
		{"normalized before length check", "AB-12-CD", 0.9, "AB12CD", true},
		{"length counts characters not bytes", "ÄÖ", 0.9, "", false},
		{"multibyte at minimum length", "ÄÖÜ1", 0.9, "ÄÖÜ1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := filter.Accept(tt.text, tt.confidence)
			if ok != tt.wantOK || got != tt.wantText {
				t.Errorf("Accept(%q, %v) = (%q, %v), want (%q, %v)",
					tt.text, tt.confidence, got, ok, tt.wantText, tt.wantOK)
			}
		})
	}
}
