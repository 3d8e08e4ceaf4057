package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	defer func(v, c string) { Version, GitCommit = v, c }(Version, GitCommit)

	tests := []struct {
		version, commit, expected string
	}{
		{"dev", "unknown", "dev"},
		{"dev", "0123456789", "dev"},
		{"1.2.0", "unknown", "1.2.0"},
		{"1.2.0", "0123456789", "1.2.0 (0123456)"},
	}
	for _, tt := range tests {
		Version, GitCommit = tt.version, tt.commit
		if got := GetFullVersion(); got != tt.expected {
			t.Errorf("GetFullVersion failed: expected %q, got %q", tt.expected, got)
		}
	}
}
