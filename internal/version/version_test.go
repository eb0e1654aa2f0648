package version

import (
	"strings"
	"testing"
)

func TestVersion_DefaultValues(t *testing.T) {
	// Test that default values are set
	if Version == "" {
		t.Error("Version should have a default value")
	}

	// GitCommit and BuildDate can be empty (optional)
	// Just verify they exist as variables
	_ = GitCommit
	_ = BuildDate
}

func TestVersion_CanBeOverridden(t *testing.T) {
	// Save original values
	origVersion := Version
	origGitCommit := GitCommit
	origBuildDate := BuildDate

	// Override values (simulating build-time ldflags)
	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	// Verify overrides worked
	if Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", Version, "1.2.3")
	}
	if GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want %q", GitCommit, "abc123def456")
	}
	if BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("BuildDate = %q, want %q", BuildDate, "2024-01-15T10:30:00Z")
	}

	// Restore original values
	Version = origVersion
	GitCommit = origGitCommit
	BuildDate = origBuildDate
}

func TestPlain_NoEscapeSequences(t *testing.T) {
	plain := Plain()
	if plain == "" {
		t.Fatal("Plain() returned empty string")
	}
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("Plain() = %q contains terminal escapes", plain)
	}
	want := versionMajor + "." + versionMinor + "." + versionPatch + versionPre
	if plain != want {
		t.Errorf("Plain() = %q, want %q", plain, want)
	}
}
