// Package ledger reads and writes the release metadata ledger: the package
// version deltas recorded by the external bump step, plus the latest
// release tag pointer.
package ledger

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/blang/semver/v4"
	"github.com/ghodss/yaml"

	"github.com/relgen/relgen/model"
)

var (
	// ErrUnavailable means the ledger file couldn't be read at all.
	ErrUnavailable = errors.New("ledger: unavailable")
	// ErrMalformed means the ledger file was read but doesn't hold a
	// valid ledger document.
	ErrMalformed = errors.New("ledger: malformed")
)

// File is the on-disk ledger document.
type File struct {
	LatestTag string               `json:"latest_tag,omitempty"`
	Packages  []model.VersionDelta `json:"packages,omitempty"`
}

type Ledger struct {
	path string
}

func New(path string) *Ledger {
	return &Ledger{path: path}
}

func (l *Ledger) Path() string { return l.path }

// ReadDeltas loads the recorded version deltas, in file order. The
// recorded previous/new pairs are trusted verbatim; this only checks that
// they are well-formed.
func (l *Ledger) ReadDeltas() ([]model.VersionDelta, error) {
	f, err := l.read()
	if err != nil {
		return nil, err
	}
	return f.Packages, nil
}

// LatestTag returns the recorded latest release tag, empty if none has
// been written yet.
func (l *Ledger) LatestTag() (string, error) {
	f, err := l.read()
	if err != nil {
		return "", err
	}
	return f.LatestTag, nil
}

// WriteLatestTag records tag as the latest release marker, preserving the
// rest of the document.
func (l *Ledger) WriteLatestTag(tag string) error {
	f, err := l.read()
	if err != nil {
		return err
	}
	f.LatestTag = tag

	b, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := ioutil.WriteFile(l.path, b, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (l *Ledger) read() (*File, error) {
	b, err := ioutil.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: no ledger at %s", ErrUnavailable, l.path)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	f := &File{}
	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	seen := make(map[string]bool, len(f.Packages))
	for i, d := range f.Packages {
		if d.Name == "" {
			return nil, fmt.Errorf("%w: package %d has no name", ErrMalformed, i)
		}
		if seen[d.Name] {
			return nil, fmt.Errorf("%w: package %q recorded twice", ErrMalformed, d.Name)
		}
		seen[d.Name] = true

		if d.New == "" {
			return nil, fmt.Errorf("%w: package %q has no new version", ErrMalformed, d.Name)
		}
		if _, err := semver.Parse(d.New); err != nil {
			return nil, fmt.Errorf("%w: package %q new version %q: %v", ErrMalformed, d.Name, d.New, err)
		}
		if d.Previous != "" {
			if _, err := semver.Parse(d.Previous); err != nil {
				return nil, fmt.Errorf("%w: package %q previous version %q: %v", ErrMalformed, d.Name, d.Previous, err)
			}
		}
	}
	return f, nil
}
