package sqlstore

import "testing"

func TestRebind(t *testing.T) {
	tests := []struct {
		name     string
		numbered bool
		query    string
		expected string
	}{
		{"question marks kept", false, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = ? AND b = ?"},
		{"numbered", true, "SELECT 1 WHERE a = ? AND b = ?", "SELECT 1 WHERE a = $1 AND b = $2"},
		{"no placeholders", true, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, Dialect{NumberedPlaceholders: tt.numbered})
			if got := s.rebind(tt.query); got != tt.expected {
				t.Errorf("rebind(%q) = %q, expected %q", tt.query, got, tt.expected)
			}
		})
	}
}
