// Package model contains abstract data models.
package model

import "time"

type Commit struct {
	ID             string `json:"commit"`
	Author         string
	AuthorEmail    string
	AuthorDate     time.Time
	Committer      string
	CommitterEmail string
	CommitterDate  time.Time
	Subject        string
	Body           string
}

func (c *Commit) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}

// VersionDelta records one package's version movement for a release, as
// written by the external bump step. Previous is empty when the package is
// newly introduced.
type VersionDelta struct {
	Name     string `json:"name"`
	Previous string `json:"previous,omitempty"`
	New      string `json:"new"`
}

// ReleaseMode selects how the release range is resolved.
type ReleaseMode int

const (
	// ModeBetween diffs the two most recent release tags.
	ModeBetween ReleaseMode = iota + 1
	// ModeSinceHead covers commits since the most recent release tag.
	ModeSinceHead
)

func (m ReleaseMode) String() string {
	switch m {
	case ModeBetween:
		return "between"
	case ModeSinceHead:
		return "since-head"
	default:
		return "<INVALID>"
	}
}

// ReleaseRange is the resolved (base, head) tag pair for one invocation.
// Base is empty in since-head mode.
type ReleaseRange struct {
	Base string
	Head string
	Mode ReleaseMode
}
