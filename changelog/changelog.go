// Package changelog renders grouped commits and version deltas into a
// markdown document.
package changelog

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/relgen/relgen/commit"
	"github.com/relgen/relgen/model"
)

// DefaultTemplate renders a release with a version summary block first,
// then one section per non-empty bucket in bucket order.
const DefaultTemplate = `# Release {{ .Head }}
{{- if .Base }}

Changes since {{ .Base }}.
{{- end }}
{{- if .Deltas }}

## Package Versions
{{ range $d := .Deltas }}
* {{ delta $d }}
{{- end }}
{{- end }}
{{- range $b := .Buckets }}
{{- if $b.Commits }}

## {{ heading $b.Name }}
{{ range $c := $b.Commits }}
* {{ line $c }}
{{- end }}
{{- end }}
{{- end }}
`

// headings maps bucket names to section titles. Anything absent (extra
// configured types) falls back to title casing.
var headings = map[string]string{
	commit.BucketBreaking:     "Breaking Changes",
	"feat":                    "Features",
	"fix":                     "Fixes",
	"chore":                   "Chores",
	"docs":                    "Documentation",
	"refactor":                "Refactoring",
	"perf":                    "Performance",
	"test":                    "Tests",
	"build":                   "Build",
	"ci":                      "CI",
	"style":                   "Style",
	"revert":                  "Reverts",
	commit.BucketUnrecognized: "Other",
}

var titler = cases.Title(language.English)

var funcMap = template.FuncMap{
	"join": strings.Join,
	"heading": func(name string) string {
		if h, ok := headings[name]; ok {
			return h
		}
		return titler.String(name)
	},
	"delta": func(d model.VersionDelta) string {
		prev := d.Previous
		if prev == "" {
			prev = "(new)"
		}
		return fmt.Sprintf("%s: %s -> %s", d.Name, prev, d.New)
	},
	"line": func(c *commit.ClassifiedCommit) string {
		if c.Scope != "" {
			return fmt.Sprintf("**%s**: %s (%s)", c.Scope, c.Subject, c.ShortID())
		}
		return fmt.Sprintf("%s (%s)", c.Subject, c.ShortID())
	},
}

// Data is everything one render needs. Head is the publish target tag;
// Base is empty in since-head mode and is then never mentioned.
type Data struct {
	Head    string
	Base    string
	Deltas  []model.VersionDelta
	Buckets []commit.Bucket
}

type Renderer struct {
	t *template.Template
}

// New builds a renderer, with s overriding the default template when
// non-empty.
func New(s string) (*Renderer, error) {
	name := ""
	if s != "" {
		name = "custom_changelog"
	}
	tmpl := s
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	t, err := template.New(name).Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return nil, err
	}
	return &Renderer{t: t}, nil
}

func (r *Renderer) Execute(w io.Writer, d Data) error {
	return r.t.Execute(w, d)
}

// ExecuteString renders the document. Identical inputs yield identical
// bytes: the dry-run preview is exactly what gets published.
func (r *Renderer) ExecuteString(d Data) (string, error) {
	b := &bytes.Buffer{}
	if err := r.Execute(b, d); err != nil {
		return "", err
	}
	return b.String(), nil
}
