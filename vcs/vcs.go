// Package vcs abstracts version control systems. Currently just git.
package vcs

import (
	"context"
	"fmt"

	"github.com/relgen/relgen/model"
)

type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("vcs: ref %q not found", e.Ref)
}

type Interface interface {
	ReadCommits(ctx context.Context, query string) ([]*model.Commit, error)
	ReadTags(ctx context.Context, query string) ([]string, error)
	CreateTag(ctx context.Context, commit, tag string, opts TagOpts) error
	Push(ctx context.Context, upstream, ref string, opts PushOpts) error
}

type TagOpts struct {
	Message     string
	Author      string
	AuthorEmail string
}

type PushOpts struct {
	Tags       bool
	FollowTags bool
}
