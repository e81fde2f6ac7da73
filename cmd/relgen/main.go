package main

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/relgen/relgen/config"
	"github.com/relgen/relgen/forge"
	"github.com/relgen/relgen/runner"
	"github.com/relgen/relgen/vcs/gitcli"
)

var (
	// these are overridden by go build -X
	Version string
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	cfg := config.New(nil)

	var help bool
	var version bool
	var cfgFile string
	var newTag bool
	var printConfig bool
	var printLatest bool
	flags := pflag.NewFlagSet("relgen", pflag.ExitOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.BoolVarP(&cfg.Dryrun, "dry-run", "n", false, "print the changelog without publishing")
	flags.BoolVarP(&newTag, "new-tag", "t", false, "release the range between the two most recent release tags")
	flags.BoolVar(&cfg.InCI, "ci", false, "Run in CI mode")
	flags.StringVarP(&cfg.Repo, "repo", "r", "", "hosted repository `owner/name`")
	flags.StringVar(&cfg.TagPrefix, "tag-prefix", cfg.TagPrefix, "release tag `prefix`")
	flags.StringVar(&cfg.LedgerPath, "ledger", cfg.LedgerPath, "version ledger `file`")
	flags.StringVar(&cfg.ForgeURL, "forge-url", cfg.ForgeURL, "release API base `url`")
	flags.StringVar(&cfg.ChangelogTemplate, "template", "", "go text/template for the changelog `format`")
	flags.StringArrayVar(&cfg.ExtraTypes, "extra-type", nil, "recognize additional commit `type`s")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")
	flags.BoolVar(&printConfig, "print-config", false, "Print effective configuration and exit")
	flags.BoolVar(&printLatest, "latest", false, "Print the latest release tag and exit")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("%s", Version)
		return nil
	}
	if !cfg.InCI {
		if env := os.Getenv("CI"); env == "true" || env == "1" || env == "yes" {
			cfg.InCI = true
		}
	}

	relgenYAML, err := readRelgenYAML(cfgFile)
	if err != nil {
		return err
	}
	if relgenYAML != nil {
		flagged := cfg
		if err := mergo.Merge(&cfg, relgenYAML, mergo.WithOverride); err != nil {
			return err
		}
		// explicitly set flags win over the config file
		if flags.Lookup("repo").Changed {
			cfg.Repo = flagged.Repo
		}
		if flags.Lookup("tag-prefix").Changed {
			cfg.TagPrefix = flagged.TagPrefix
		}
		if flags.Lookup("ledger").Changed {
			cfg.LedgerPath = flagged.LedgerPath
		}
		if flags.Lookup("forge-url").Changed {
			cfg.ForgeURL = flagged.ForgeURL
		}
		if flags.Lookup("template").Changed {
			cfg.ChangelogTemplate = flagged.ChangelogTemplate
		}
		if flags.Lookup("extra-type").Changed {
			cfg.ExtraTypes = flagged.ExtraTypes
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		cfg.Printf("%s", string(b))
		return nil
	}

	git := gitcli.New(cfg, "")
	fg := forge.NewClient(cfg.ForgeURL, os.Getenv("GITHUB_TOKEN"))
	rnr, err := runner.New(cfg, git, fg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	stdoutfd := os.Stdout.Fd()
	istty := isatty.IsTerminal(stdoutfd)

	if printLatest {
		latest, err := rnr.LatestRelease(ctx)
		if err != nil {
			return err
		}
		if cfg.Quiet || !istty {
			fmt.Fprintf(cfg.Term.Stdout, "%s", latest)
		} else {
			fmt.Fprintln(cfg.Term.Stdout, latest)
		}
		return nil
	}

	res, err := rnr.Release(ctx, runner.ReleaseOpts{
		DryRun: cfg.Dryrun,
		NewTag: newTag,
	})
	if err != nil {
		return err
	}

	if cfg.Dryrun {
		fmt.Fprint(cfg.Term.Stdout, res.Changelog)
		return nil
	}
	cfg.Printf("released %s (next marker: %s)", res.Range.Head, res.NextTag)
	return nil
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Printf(`%s

Generates release notes from conventional commits between release tags, and
publishes them as hosted releases.

FLAGS
%s

EXAMPLES

# preview the changelog for commits since the newest release tag
$ relgen --dry-run

# release the range between the two most recent release tags
$ relgen --new-tag --repo myorg/myrepo

# print the newest release tag
$ relgen --latest
`, os.Args[0], flags.FlagUsages())
}

func readRelgenYAML(p string) (*config.Config, error) {
	if p != "" {
		b, err := ioutil.ReadFile(p)
		if err != nil {
			return nil, err
		}
		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	for {
		candPath := filepath.Join(wd, "relgen.yaml")
		b, err := ioutil.ReadFile(candPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				wd, _ = filepath.Split(filepath.Clean(wd))
				if wd == "/" {
					break
				}
				continue
			}
			return nil, err
		}

		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, nil
}
