package testutil

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// File-related assertions

// AssertFileExists asserts that a file exists.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("Expected file %s to exist: %v", path, err)
	}
}

// AssertFileNotExists asserts that a file does not exist.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Expected file %s to not exist", path)
	}
}

// AssertFileContains asserts that a file contains a substring.
func AssertFileContains(t *testing.T, path, substring string) {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Failed to read file %s: %v", path, err)
		return
	}
	if !strings.Contains(string(content), substring) {
		t.Errorf("Expected file %s to contain %q", path, substring)
	}
}

// AssertDirExists asserts that a directory exists.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("Expected directory %s to exist: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory", path)
	}
}

// JSON helpers

// ReadJSON parses a JSON object file or fails the test.
func ReadJSON(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("parsing %s: %v", path, err)
	}
	return doc
}

// AssertJSONContainsKey asserts that a JSON object file has a top-level key.
func AssertJSONContainsKey(t *testing.T, path, key string) {
	t.Helper()
	if _, ok := ReadJSON(t, path)[key]; !ok {
		t.Errorf("Expected %s to contain key %q", path, key)
	}
}
