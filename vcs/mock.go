package vcs

import (
	"context"
	"strings"
	"time"

	"github.com/relgen/relgen/model"
)

// Mock implements Interface in memory and records mutating calls so tests
// can assert on side effects.
type Mock struct {
	t            time.Time
	tags         []string
	commits      []*model.Commit
	createTagErr error
	pushErr      error

	CommitQueries []string
	CreatedTags   []string
	Pushed        []string
}

func NewMock() *Mock {
	return &Mock{
		t: time.Now(),
	}
}

func (m *Mock) SetTags(tags ...string) *Mock {
	m.tags = tags
	return m
}

func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		if c.CommitterDate.IsZero() {
			c.CommitterDate = m.t
			m.t = m.t.Add(-time.Minute)
		}
		finalCommits[i] = &c
	}
	m.commits = finalCommits
	return m
}

func (m *Mock) FailCreateTag(err error) *Mock {
	m.createTagErr = err
	return m
}

func (m *Mock) FailPush(err error) *Mock {
	m.pushErr = err
	return m
}

func (m *Mock) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	m.CommitQueries = append(m.CommitQueries, query)
	return m.commits, nil
}

func (m *Mock) ReadTags(ctx context.Context, query string) ([]string, error) {
	var tags []string
	for _, t := range m.tags {
		if globMatches(t, query) {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (m *Mock) CreateTag(ctx context.Context, commit, tag string, opts TagOpts) error {
	if m.createTagErr != nil {
		return m.createTagErr
	}
	m.CreatedTags = append(m.CreatedTags, tag)
	return nil
}

func (m *Mock) Push(ctx context.Context, upstream, ref string, opts PushOpts) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	m.Pushed = append(m.Pushed, upstream+" "+ref)
	return nil
}

func globMatches(s string, glob string) bool {
	parts := strings.Split(glob, "*")
	remaining := s
	for {
		if len(parts) == 0 {
			break
		}
		part := parts[0]
		parts = parts[1:]

		if !strings.HasPrefix(remaining, part) {
			return false
		}
		remaining = strings.TrimPrefix(remaining, part)
	}
	if len(glob) > 0 && glob[len(glob)-1] == '*' {
		return true
	}
	return remaining == ""
}
