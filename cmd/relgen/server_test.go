package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/sosedoff/gitkit"
)

type gitServer struct {
	cfg  gitkit.Config
	dir  string
	svc  *gitkit.Server
	http *httptest.Server
}

func newGitServer() *gitServer {
	dir, err := ioutil.TempDir("", "relgen-remote")
	if err != nil {
		panic(err)
	}
	cfg := gitkit.Config{
		Dir:        dir,
		AutoCreate: true,
	}
	return &gitServer{
		dir: dir,
		cfg: cfg,
		svc: gitkit.New(cfg),
	}
}

func (g *gitServer) start(t *testing.T) net.Addr {
	t.Helper()
	if err := g.svc.Setup(); err != nil {
		t.Fatal(err)
	}
	g.http = httptest.NewServer(g.svc)
	addr := g.http.Listener.Addr()
	t.Logf("Test git server listening: %s", addr)
	return addr
}

func (g *gitServer) stop(t *testing.T) {
	g.http.Close()
	if t.Failed() {
		t.Logf("Test failed so leaving tmpdir in place: %s", g.dir)
		return
	}
	os.RemoveAll(g.dir)
}

type recordedRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
}

// TestPublishEndToEnd exercises the wet-run path against a real git remote
// and a fake release API: publish, create and push the next marker tag,
// update the ledger.
func TestPublishEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("-short")
	}
	if runtime.GOOS == "windows" {
		t.Skip("windows not supported (gitkit uses syscall.Kill)")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}

	ctx := context.Background()

	var releases []recordedRelease
	var paths []string
	forgeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		b, err := ioutil.ReadAll(r.Body)
		if err != nil {
			t.Error(err)
		}
		rel := recordedRelease{}
		if err := json.Unmarshal(b, &rel); err != nil {
			t.Error(err)
		}
		releases = append(releases, rel)
		w.WriteHeader(http.StatusCreated)
	}))
	defer forgeSrv.Close()

	srv := newGitServer()
	addr := srv.start(t)
	defer srv.stop(t)

	repoPath, err := ioutil.TempDir("", "relgen-clone")
	die(err)
	currDir, err := os.Getwd()
	die(err)
	defer func() {
		os.Chdir(currDir)
		if t.Failed() {
			t.Logf("Test failed, leaving clone dir in place: %s", repoPath)
			return
		}
		os.RemoveAll(repoPath)
	}()

	cloneURL := fmt.Sprintf("http://%s/myrepo.git", addr)
	call(ctx, t, "git", "clone", cloneURL, repoPath)
	die(os.Chdir(repoPath))
	call(ctx, t, "git", "config", "--local", "user.email", "relgen-test@example.com")
	call(ctx, t, "git", "config", "--local", "user.name", "relgen-test")
	ledger := `latest_tag: rel@1
packages:
- name: cli
  previous: 0.1.0
  new: 0.2.0
`
	die(ioutil.WriteFile(filepath.Join(repoPath, "release-ledger.yaml"), []byte(ledger), 0644))

	call(ctx, t, "git", "commit", "--allow-empty", "-m", "initial commit")
	call(ctx, t, "git", "tag", "-a", "rel@1", "-m", "rel@1")
	call(ctx, t, "git", "commit", "--allow-empty", "-m", "feat(cli): add x")

	err = run(strs("relgen",
		"--repo", "cool/repo",
		"--forge-url", forgeSrv.URL,
		"--quiet",
	))
	if err != nil {
		t.Fatal(err)
	}

	// the release was published for the head tag with the changelog body
	if len(releases) != 1 {
		t.Fatalf("expected 1 release, got %d", len(releases))
	}
	if paths[0] != "/repos/cool/repo/releases" {
		t.Fatalf("unexpected release path %q", paths[0])
	}
	if releases[0].TagName != "rel@1" {
		t.Fatalf("expected release for rel@1, got %q", releases[0].TagName)
	}
	if !strings.Contains(releases[0].Body, "## Features") {
		t.Fatalf("expected a features section in the published body:\n%s", releases[0].Body)
	}
	if !strings.Contains(releases[0].Body, "add x") {
		t.Fatalf("expected the commit subject in the published body:\n%s", releases[0].Body)
	}

	// the next marker tag reached the remote
	out, err := exec.CommandContext(ctx, "git", "ls-remote", "--tags", "origin").Output()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "refs/tags/rel@2") {
		t.Fatalf("expected rel@2 on the remote, got:\n%s", string(out))
	}

	// the ledger points at the new marker
	b, err := ioutil.ReadFile("release-ledger.yaml")
	if err != nil {
		t.Fatal(err)
	}
	ledgerFile := struct {
		LatestTag string `json:"latest_tag"`
	}{}
	die(yaml.Unmarshal(b, &ledgerFile))
	if ledgerFile.LatestTag != "rel@2" {
		t.Fatalf("expected ledger latest_tag rel@2, got %q", ledgerFile.LatestTag)
	}
}
