// Package forge publishes hosted releases for release tags.
package forge

import "context"

// Interface is the hosted-repository release primitive. repo is the
// opaque repository identifier (owner/name) threaded from config.
type Interface interface {
	CreateRelease(ctx context.Context, repo, tag, body string) error
}
