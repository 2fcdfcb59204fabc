package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only whitespace", "   \t\n  ", ""},
		{"simple trim", "  Desk 7  ", "Desk 7"},
		{"collapses runs", "Meeting\t\tRoom   A", "Meeting Room A"},
		{"drops control chars", "Desk\x007", "Desk7"},
		{"unicode preserved", "Büro Nr. 3", "Büro Nr. 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimAndNormalize(tt.input)
			if got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	got := NormalizeEmail("  Alice@Example.COM ")
	if got != "alice@example.com" {
		t.Errorf("NormalizeEmail() = %q, want %q", got, "alice@example.com")
	}
}
