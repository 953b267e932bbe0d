package model

import "testing"

func TestLevelOf(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"", 0},
		{"Pr", 1},
		{"Pr_20", 2},
		{"Pr_20_93", 3},
		{"Pr_20_93_58", 4},
	}
	for _, tt := range tests {
		if got := LevelOf(tt.code); got != tt.want {
			t.Errorf("LevelOf(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestParentOf(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"Pr", ""},
		{"Pr_20", "Pr"},
		{"Pr_20_93_58", "Pr_20_93"},
	}
	for _, tt := range tests {
		if got := ParentOf(tt.code); got != tt.want {
			t.Errorf("ParentOf(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestTruncateCode(t *testing.T) {
	tests := []struct {
		code  string
		level int
		want  string
	}{
		{"Pr_20_93_58", 2, "Pr_20"},
		{"Pr_20_93_58", 4, "Pr_20_93_58"},
		{"Pr_20_93_58", 7, "Pr_20_93_58"},
		{"Pr_20", 0, "Pr_20"},
		{"Pr", 1, "Pr"},
	}
	for _, tt := range tests {
		if got := TruncateCode(tt.code, tt.level); got != tt.want {
			t.Errorf("TruncateCode(%q, %d) = %q, want %q", tt.code, tt.level, got, tt.want)
		}
	}
}
