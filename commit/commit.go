// Package commit contains code for classifying and grouping commits.
package commit

import "github.com/relgen/relgen/model"

// TypeUnrecognized is the fallback type for commits whose subject doesn't
// follow the conventional pattern, or whose type token isn't known.
const TypeUnrecognized = "unrecognized"

// defaultTypes are the recognized conventional commit types, in section
// order. feat and fix always render first (after breaking changes).
var defaultTypes = []string{
	"feat",
	"fix",
	"chore",
	"docs",
	"refactor",
	"perf",
	"test",
	"build",
	"ci",
	"style",
	"revert",
}

// ClassifiedCommit is the result of classifying a single commit message.
// Classification is total: every commit produces exactly one of these.
type ClassifiedCommit struct {
	Type     string        `json:"type"`
	Scope    string        `json:"scope,omitempty"`
	Breaking bool          `json:"breaking,omitempty"`
	Subject  string        `json:"subject"`
	Commit   *model.Commit `json:"commit"`
}

func (c *ClassifiedCommit) ShortID() string {
	if c.Commit == nil {
		return ""
	}
	return c.Commit.ShortID()
}

// Recognized reports whether the commit's type is anything other than the
// unrecognized fallback.
func (c *ClassifiedCommit) Recognized() bool {
	return c.Type != TypeUnrecognized
}
