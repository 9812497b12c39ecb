package utils

import (
	"strings"
	"testing"
)

func TestSanitizeKeyName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"LowercaseSimple", "MacBook", "macbook"},
		{"SpacesToHyphens", "My Key", "my-key"},
		{"RemoveSpecialChars", "My@Key#123!", "mykey123"},
		{"RemoveConsecutiveHyphens", "my--key", "my-key"},
		{"TrimHyphens", "-my-key-", "my-key"},
		{"EmptyToDefault", "", "key"},
		{"OnlySpecialChars", "@#$%", "key"},
		{"PreserveUnderscores", "my_key", "my_key"},
		{"HostnameWithDomain", "build.example.com", "buildexamplecom"},
		{"TrimWhitespace", "  laptop  ", "laptop"},
		{"TooLong", strings.Repeat("a", 80), strings.Repeat("a", 64)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := SanitizeKeyName(tc.input)
			if result != tc.expected {
				t.Errorf("SanitizeKeyName(%q) = %q, expected %q", tc.input, result, tc.expected)
			}
			if !IsValidKeyName(result) {
				t.Errorf("SanitizeKeyName(%q) = %q is not a valid key name", tc.input, result)
			}
		})
	}
}

func TestUniqueKeyName(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		expected string
	}{
		{"NoConflict", nil, "laptop"},
		{"AppendsNumberOnConflict", []string{"laptop"}, "laptop-2"},
		{"IncrementsForMultipleConflicts", []string{"laptop", "laptop-2", "laptop-3"}, "laptop-4"},
		{"CaseInsensitiveConflictCheck", []string{"LAPTOP"}, "laptop-2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := UniqueKeyName("laptop", tc.existing); got != tc.expected {
				t.Errorf("UniqueKeyName = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestGenerateKeyName(t *testing.T) {
	name := GenerateKeyName(nil)
	if !IsValidKeyName(name) {
		t.Fatalf("GenerateKeyName returned invalid name %q", name)
	}

	again := GenerateKeyName([]string{name})
	if again != name+"-2" {
		t.Errorf("Expected %q, got %q", name+"-2", again)
	}
}

func TestIsValidKeyName(t *testing.T) {
	valid := []string{"laptop", "ci-2024", "A_key", "9"}
	invalid := []string{"", "-laptop", "../etc/passwd", "my key", "key.pub", strings.Repeat("a", 65)}

	for _, name := range valid {
		if !IsValidKeyName(name) {
			t.Errorf("IsValidKeyName(%q) = false, want true", name)
		}
	}
	for _, name := range invalid {
		if IsValidKeyName(name) {
			t.Errorf("IsValidKeyName(%q) = true, want false", name)
		}
	}
}

func TestReadAllTrimmed(t *testing.T) {
	text, err := ReadAllTrimmed(strings.NewReader("  11,ca1\n"))
	if err != nil {
		t.Fatalf("ReadAllTrimmed failed: %v", err)
	}
	if text != "11,ca1" {
		t.Errorf("Expected %q, got %q", "11,ca1", text)
	}

	if _, err := ReadAllTrimmed(strings.NewReader(" \n")); err == nil {
		t.Error("Expected error for blank input")
	}
}

func TestGetUsername(t *testing.T) {
	username, err := GetUsername()
	if err != nil {
		t.Fatalf("GetUsername failed: %v", err)
	}
	if username == "" {
		t.Fatal("Expected non-empty username")
	}
}

func TestGetHostname(t *testing.T) {
	hostname, err := GetHostname()
	if err != nil {
		t.Fatalf("GetHostname failed: %v", err)
	}
	if hostname == "" {
		t.Fatal("Expected non-empty hostname")
	}
}
