// Package runner sequences the release pipeline: resolve the tag range,
// fetch and classify commits, load the ledger, render the changelog, then
// publish and advance the release marker.
package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/relgen/relgen/changelog"
	"github.com/relgen/relgen/commit"
	"github.com/relgen/relgen/config"
	"github.com/relgen/relgen/forge"
	"github.com/relgen/relgen/ledger"
	"github.com/relgen/relgen/model"
	"github.com/relgen/relgen/vcs"
)

var (
	ErrNoReleaseTag  = errors.New("runner: no release tags found")
	ErrNoPreviousTag = errors.New("runner: no previous release tag to diff against")
	ErrNoCommits     = errors.New("runner: no commits in release range")
)

// Step names one stage of the pipeline. Failures carry the step they
// happened in, so callers can tell a failed publish from a failed advance.
type Step int

const (
	_ Step = iota

	StepResolve
	StepFetch
	StepClassify
	StepLedger
	StepRender
	StepPublish
	StepAdvance
)

func (s Step) String() string {
	switch s {
	case StepResolve:
		return "resolve-range"
	case StepFetch:
		return "fetch-commits"
	case StepClassify:
		return "classify"
	case StepLedger:
		return "load-ledger"
	case StepRender:
		return "render"
	case StepPublish:
		return "publish"
	case StepAdvance:
		return "advance"
	case 0:
		return "<INVALID>"
	default:
		return "<UNKNOWN>"
	}
}

// StepError wraps a failure with the pipeline step it aborted.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("runner: %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ReleaseOpts is the single operation surface: preview or publish, and
// which range mode to resolve.
type ReleaseOpts struct {
	DryRun bool
	NewTag bool
}

// Release is the completed pipeline result. NextTag is set only after a
// successful advance (never on dry runs).
type Release struct {
	Range     model.ReleaseRange
	Groups    *commit.Groups
	Deltas    []model.VersionDelta
	Changelog string
	NextTag   string
}

type Runner struct {
	cfg        config.Config
	vcs        vcs.Interface
	forge      forge.Interface
	classifier *commit.Classifier
	grouper    *commit.Grouper
	ledger     *ledger.Ledger
	renderer   *changelog.Renderer
}

func New(cfg config.Config, vcs vcs.Interface, fg forge.Interface) (*Runner, error) {
	renderer, err := changelog.New(cfg.ChangelogTemplate)
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:        cfg,
		vcs:        vcs,
		forge:      fg,
		classifier: commit.NewClassifier(cfg),
		grouper:    commit.NewGrouper(cfg.ExtraTypes),
		ledger:     ledger.New(cfg.LedgerPath),
		renderer:   renderer,
	}, nil
}

// Release runs the pipeline once. Steps run strictly in order and the
// first failure aborts the run; a dry run stops after rendering with no
// side effects beyond the returned changelog.
func (r *Runner) Release(ctx context.Context, opts ReleaseOpts) (*Release, error) {
	mode := model.ModeSinceHead
	if opts.NewTag {
		mode = model.ModeBetween
	}

	rr, err := r.resolveRange(ctx, mode)
	if err != nil {
		return nil, &StepError{Step: StepResolve, Err: err}
	}
	r.cfg.Debugf("resolved range: base=%q head=%q mode=%s", rr.Base, rr.Head, rr.Mode)

	commits, err := r.fetchCommits(ctx, rr)
	if err != nil {
		return nil, &StepError{Step: StepFetch, Err: err}
	}
	if len(commits) == 0 {
		return nil, &StepError{Step: StepFetch, Err: ErrNoCommits}
	}
	r.cfg.Debugf("fetched %d commits", len(commits))

	groups := r.grouper.Group(r.classifier.ClassifyAll(commits))

	deltas, err := r.ledger.ReadDeltas()
	if err != nil {
		return nil, &StepError{Step: StepLedger, Err: err}
	}

	body, err := r.renderer.ExecuteString(changelog.Data{
		Head:    rr.Head,
		Base:    rr.Base,
		Deltas:  deltas,
		Buckets: groups.Buckets(),
	})
	if err != nil {
		return nil, &StepError{Step: StepRender, Err: err}
	}

	res := &Release{
		Range:     rr,
		Groups:    groups,
		Deltas:    deltas,
		Changelog: body,
	}
	if opts.DryRun {
		return res, nil
	}

	if r.cfg.Repo == "" {
		return nil, &StepError{Step: StepPublish, Err: errors.New("runner: a repo is required to publish")}
	}
	if err := r.forge.CreateRelease(ctx, r.cfg.Repo, rr.Head, body); err != nil {
		return nil, &StepError{Step: StepPublish, Err: err}
	}
	r.cfg.Printf("published release for %s", rr.Head)

	next, err := r.advance(ctx, rr, body)
	if err != nil {
		return nil, &StepError{Step: StepAdvance, Err: err}
	}
	r.cfg.Printf("advanced release marker to %s", next)

	res.NextTag = next
	return res, nil
}

// advance creates and pushes the next release marker tag, then records it
// as the ledger's latest-tag pointer.
func (r *Runner) advance(ctx context.Context, rr model.ReleaseRange, body string) (string, error) {
	head, err := commit.ParseReleaseTag(r.cfg.TagPrefix, rr.Head)
	if err != nil {
		return "", err
	}
	next := commit.NextReleaseTag(r.cfg.TagPrefix, head)

	if err := r.vcs.CreateTag(ctx, "", next, vcs.TagOpts{Message: body}); err != nil {
		return "", err
	}
	if err := r.vcs.Push(ctx, "origin", next, vcs.PushOpts{}); err != nil {
		return "", err
	}
	if err := r.ledger.WriteLatestTag(next); err != nil {
		return "", err
	}
	return next, nil
}
