package commit

import (
	"regexp"
	"strings"

	"github.com/relgen/relgen/config"
	"github.com/relgen/relgen/model"
)

// subjectRE matches "type(scope)!: subject". scope and "!" are optional.
var subjectRE = regexp.MustCompile(`^(?P<type>[A-Za-z0-9]+)(?:\((?P<scope>[^\)]+)\))?(?P<breaking>!)?:\s+(?P<subject>.+)$`)

// breakingFooters are the reserved footer markers that flag a breaking
// change regardless of the subject line.
var breakingFooters = []string{
	"BREAKING CHANGE: ",
	"BREAKING-CHANGE: ",
}

// Classifier turns raw commits into classified ones. It never fails:
// anything unparseable lands in the unrecognized type.
type Classifier struct {
	types map[string]bool
}

func NewClassifier(cfg config.Config) *Classifier {
	types := make(map[string]bool, len(defaultTypes)+len(cfg.ExtraTypes))
	for _, t := range defaultTypes {
		types[t] = true
	}
	for _, t := range cfg.ExtraTypes {
		types[strings.ToLower(t)] = true
	}
	return &Classifier{types: types}
}

func (c *Classifier) Classify(commit *model.Commit) *ClassifiedCommit {
	res := &ClassifiedCommit{
		Type:    TypeUnrecognized,
		Subject: commit.Subject,
		Commit:  commit,
	}

	if m := subjectRE.FindStringSubmatch(commit.Subject); m != nil {
		typ := strings.ToLower(m[subjectRE.SubexpIndex("type")])
		if m[subjectRE.SubexpIndex("breaking")] != "" {
			res.Breaking = true
		}
		if c.types[typ] {
			res.Type = typ
			res.Scope = m[subjectRE.SubexpIndex("scope")]
			res.Subject = m[subjectRE.SubexpIndex("subject")]
		}
	}

	if hasBreakingFooter(commit.Body) {
		res.Breaking = true
	}
	return res
}

func (c *Classifier) ClassifyAll(commits []*model.Commit) []*ClassifiedCommit {
	res := make([]*ClassifiedCommit, len(commits))
	for i, commit := range commits {
		res[i] = c.Classify(commit)
	}
	return res
}

func hasBreakingFooter(body string) bool {
	if body == "" {
		return false
	}
	for _, line := range strings.Split(body, "\n") {
		for _, marker := range breakingFooters {
			if strings.HasPrefix(line, marker) {
				return true
			}
		}
	}
	return false
}
