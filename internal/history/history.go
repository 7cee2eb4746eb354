// Package history records spin results and summarizes them.
package history

import (
	"cmp"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Result is one landed spin.
type Result struct {
	Entry   string    `yaml:"entry"`
	Profile string    `yaml:"profile,omitempty"`
	Time    time.Time `yaml:"time"`
}

// FileStore keeps results in a YAML file, oldest first.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the storage file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored results. A missing file is an empty history.
func (s *FileStore) Load() ([]Result, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var results []Result
	if err := yaml.Unmarshal(data, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Append adds results to the end of the history.
func (s *FileStore) Append(results ...Result) error {
	if len(results) == 0 {
		return nil
	}
	existing, err := s.Load()
	if err != nil {
		return err
	}
	return s.save(append(existing, results...))
}

// Clear removes every stored result.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) save(results []Result) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(results)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o644)
}

// Count is how often an entry won.
type Count struct {
	Entry string
	Wins  int
}

// Tally counts wins per entry, most wins first and ties by label.
func Tally(results []Result) []Count {
	wins := make(map[string]int)
	for _, r := range results {
		wins[r.Entry]++
	}

	counts := make([]Count, 0, len(wins))
	for e, n := range wins {
		counts = append(counts, Count{Entry: e, Wins: n})
	}
	slices.SortFunc(counts, func(a, b Count) int {
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(a.Entry, b.Entry)
	})
	return counts
}
