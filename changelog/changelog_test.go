package changelog

import (
	"strings"
	"testing"

	"github.com/relgen/relgen/commit"
	"github.com/relgen/relgen/model"
)

func classified(typ, scope, subject, id string, breaking bool) *commit.ClassifiedCommit {
	return &commit.ClassifiedCommit{
		Type:     typ,
		Scope:    scope,
		Breaking: breaking,
		Subject:  subject,
		Commit:   &model.Commit{ID: id, Subject: subject},
	}
}

func scenarioData() Data {
	groups := commit.NewGrouper(nil).Group([]*commit.ClassifiedCommit{
		classified("feat", "cli", "add x", "deadbeef", false),
		classified("fix", "", "y", "cafebabe", true),
	})
	return Data{
		Head: "rel@200",
		Base: "rel@100",
		Deltas: []model.VersionDelta{
			{Name: "core", Previous: "1.2.3", New: "1.3.0"},
			{Name: "cli", New: "0.1.0"},
		},
		Buckets: groups.Buckets(),
	}
}

const expectScenario = `# Release rel@200

Changes since rel@100.

## Package Versions

* core: 1.2.3 -> 1.3.0
* cli: (new) -> 0.1.0

## Breaking Changes

* y (cafebabe)

## Features

* **cli**: add x (deadbeef)

## Fixes

* y (cafebabe)
`

func TestRenderScenario(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ExecuteString(scenarioData())
	if err != nil {
		t.Fatal(err)
	}
	if got != expectScenario {
		t.Fatalf("expected:\n%q\ngot:\n%q", expectScenario, got)
	}

	breakingAt := strings.Index(got, "## Breaking Changes")
	featuresAt := strings.Index(got, "## Features")
	if breakingAt == -1 || featuresAt == -1 || breakingAt > featuresAt {
		t.Fatal("breaking changes section must render before features")
	}
}

func TestRenderDeterministic(t *testing.T) {
	r, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	d := scenarioData()
	first, err := r.ExecuteString(d)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.ExecuteString(d)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("rendering the same data twice must be byte-identical")
	}
}

func TestRenderSinceHead(t *testing.T) {
	groups := commit.NewGrouper(nil).Group([]*commit.ClassifiedCommit{
		classified("feat", "", "one", "deadbeef", false),
		classified("feat", "", "two", "cafebabe", false),
	})
	r, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ExecuteString(Data{Head: "rel@200", Buckets: groups.Buckets()})
	if err != nil {
		t.Fatal(err)
	}

	expect := `# Release rel@200

## Features

* one (deadbeef)
* two (cafebabe)
`
	if got != expect {
		t.Fatalf("expected:\n%q\ngot:\n%q", expect, got)
	}
	if strings.Contains(got, "since") {
		t.Fatal("since-head renders must not mention a base tag")
	}
}

func TestRenderEmptyBucketsOmitted(t *testing.T) {
	groups := commit.NewGrouper(nil).Group([]*commit.ClassifiedCommit{
		classified("docs", "", "clarify the readme", "deadbeef", false),
	})
	r, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ExecuteString(Data{Head: "rel@3", Buckets: groups.Buckets()})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "## Features") || strings.Contains(got, "## Fixes") {
		t.Fatalf("empty buckets must be omitted:\n%s", got)
	}
	if !strings.Contains(got, "## Documentation") {
		t.Fatalf("expected a documentation section:\n%s", got)
	}
}

func TestRenderExtraTypeHeading(t *testing.T) {
	groups := commit.NewGrouper([]string{"deps"}).Group([]*commit.ClassifiedCommit{
		{Type: "deps", Subject: "bump everything", Commit: &model.Commit{ID: "deadbeef"}},
	})
	r, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ExecuteString(Data{Head: "rel@3", Buckets: groups.Buckets()})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "## Deps") {
		t.Fatalf("expected a title-cased section for the extra type:\n%s", got)
	}
}

func TestRenderCustomTemplate(t *testing.T) {
	r, err := New(`{{ .Head }}: {{ len .Deltas }} packages`)
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ExecuteString(Data{Head: "rel@9", Deltas: []model.VersionDelta{{Name: "core", New: "1.0.0"}}})
	if err != nil {
		t.Fatal(err)
	}
	if got != "rel@9: 1 packages" {
		t.Fatalf("unexpected render: %q", got)
	}
}
