package forge

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientCreateRelease(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq createReleaseRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		b, err := ioutil.ReadAll(r.Body)
		if err != nil {
			t.Error(err)
		}
		if err := json.Unmarshal(b, &gotReq); err != nil {
			t.Error(err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sekrit")
	if err := c.CreateRelease(context.Background(), "cool/repo", "rel@201", "# Release rel@201\n"); err != nil {
		t.Fatal(err)
	}

	if gotPath != "/repos/cool/repo/releases" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer sekrit" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotReq.TagName != "rel@201" || gotReq.Body != "# Release rel@201\n" {
		t.Fatalf("unexpected request: %+v", gotReq)
	}
}

func TestClientCreateReleaseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if err := c.CreateRelease(context.Background(), "cool/repo", "rel@201", "body"); err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
}
