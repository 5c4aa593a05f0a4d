package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata
// directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// JSONBody marshals v for use as a scripted response body, failing the test
// on error.
func JSONBody(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	return data
}
