package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/relgen/relgen/commit"
	"github.com/relgen/relgen/model"
)

// resolveRange determines the (base, head) pair for the requested mode.
// Candidate tags are ordered by their embedded ordinal only.
func (r *Runner) resolveRange(ctx context.Context, mode model.ReleaseMode) (model.ReleaseRange, error) {
	tags, err := r.vcs.ReadTags(ctx, commit.TagGlob(r.cfg.TagPrefix))
	if err != nil {
		return model.ReleaseRange{}, err
	}

	head, err := commit.LatestReleaseTag(r.cfg.TagPrefix, tags)
	if err != nil {
		if errors.Is(err, commit.ErrNoTags) {
			return model.ReleaseRange{}, ErrNoReleaseTag
		}
		return model.ReleaseRange{}, err
	}

	switch mode {
	case model.ModeBetween:
		prev, err := commit.PreviousReleaseTag(r.cfg.TagPrefix, tags)
		if err != nil {
			if errors.Is(err, commit.ErrNoTags) {
				return model.ReleaseRange{}, ErrNoPreviousTag
			}
			return model.ReleaseRange{}, err
		}
		return model.ReleaseRange{Base: prev.Name, Head: head.Name, Mode: mode}, nil
	case model.ModeSinceHead:
		return model.ReleaseRange{Head: head.Name, Mode: mode}, nil
	default:
		return model.ReleaseRange{}, fmt.Errorf("runner: unknown release mode %d", mode)
	}
}

// fetchCommits reads the commit range for rr, preserving the order the
// backend returns.
func (r *Runner) fetchCommits(ctx context.Context, rr model.ReleaseRange) ([]*model.Commit, error) {
	var query string
	switch rr.Mode {
	case model.ModeBetween:
		query = rr.Base + ".." + rr.Head
	case model.ModeSinceHead:
		query = rr.Head + "..HEAD"
	default:
		return nil, fmt.Errorf("runner: unknown release mode %d", rr.Mode)
	}
	return r.vcs.ReadCommits(ctx, query)
}

// LatestRelease returns the most recent release tag name, for the CLI's
// --latest surface.
func (r *Runner) LatestRelease(ctx context.Context) (string, error) {
	tags, err := r.vcs.ReadTags(ctx, commit.TagGlob(r.cfg.TagPrefix))
	if err != nil {
		return "", err
	}
	head, err := commit.LatestReleaseTag(r.cfg.TagPrefix, tags)
	if err != nil {
		if errors.Is(err, commit.ErrNoTags) {
			return "", ErrNoReleaseTag
		}
		return "", err
	}
	return head.Name, nil
}
