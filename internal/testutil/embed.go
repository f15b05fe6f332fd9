package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Fixtures returns the names of all embedded CSV fixtures, sorted.
func Fixtures() []string {
	matches, _ := fs.Glob(TestdataFS, "testdata/*.csv")
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m[len("testdata/"):]
	}
	sort.Strings(names)
	return names
}
