// Package config contains configuration for relgen.
package config

import (
	"fmt"
	"strings"

	"github.com/imdario/mergo"
)

type Config struct {
	Verbose           bool       `json:"verbose,omitempty"`
	Quiet             bool       `json:"quiet,omitempty"`
	Dryrun            bool       `json:"dryrun,omitempty"`
	InCI              bool       `json:"ci,omitempty"`
	Repo              string     `json:"repo,omitempty"`
	TagPrefix         string     `json:"tag_prefix,omitempty"`
	LedgerPath        string     `json:"ledger,omitempty"`
	ForgeURL          string     `json:"forge_url,omitempty"`
	ExtraTypes        []string   `json:"extra_types,omitempty"`
	ChangelogTemplate string     `json:"changelog_template,omitempty"`
	Term              TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	return cfg
}

func (c Config) Validate() error {
	if c.TagPrefix == "" {
		return fmt.Errorf("config: tag_prefix must not be empty")
	}
	if strings.ContainsAny(c.TagPrefix, "*?[") {
		return fmt.Errorf("config: tag_prefix %q must not contain glob characters", c.TagPrefix)
	}
	if c.Repo != "" {
		parts := strings.Split(c.Repo, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("config: repo %q should look like owner/name", c.Repo)
		}
	}
	return nil
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stdout, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.Printf(msg, args...)
}
