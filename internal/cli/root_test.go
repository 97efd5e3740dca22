package cli

import "testing"

func TestSetVersion(t *testing.T) {
	defer SetVersion("", "", "")

	SetVersion("v1.2.3", "abc1234", "2026-01-01T00:00:00Z")

	if version != "v1.2.3" {
		t.Errorf("version = %q, want v1.2.3", version)
	}
	if commit != "abc1234" {
		t.Errorf("commit = %q, want abc1234", commit)
	}
	if date != "2026-01-01T00:00:00Z" {
		t.Errorf("date = %q, want the build timestamp", date)
	}
}
