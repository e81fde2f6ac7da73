// Package relgen generates release notes from the conventional commits
// between release tags, and publishes them as hosted releases.
//
// Related packages: config, commit, changelog, ledger, runner, model, vcs,
// vcs/gitcli, forge
package relgen

import "github.com/relgen/relgen/config"

// Config holds most of the configuration variables for relgen. This struct
// is intended for command-line use, so not all of its attributes are
// applicable to every operation.
//
// See "go doc github.com/relgen/relgen/config Config" for more information.
type Config = config.Config
