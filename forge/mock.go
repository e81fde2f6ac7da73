package forge

import "context"

// Release is one recorded publish call.
type Release struct {
	Repo string
	Tag  string
	Body string
}

// Mock implements Interface in memory, recording published releases.
type Mock struct {
	createErr error

	Releases []Release
}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) FailCreateRelease(err error) *Mock {
	m.createErr = err
	return m
}

func (m *Mock) CreateRelease(ctx context.Context, repo, tag, body string) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.Releases = append(m.Releases, Release{Repo: repo, Tag: tag, Body: body})
	return nil
}
