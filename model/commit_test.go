package model

import "testing"

func TestCommit(t *testing.T) {
	cmt := &Commit{ID: "deadbeefdeadbeef"}
	short := cmt.ShortID()
	expect := "deadbeef"
	if short != expect {
		t.Fatal("expected", expect, "got", short)
	}
}

func TestReleaseModeString(t *testing.T) {
	if s := ModeBetween.String(); s != "between" {
		t.Fatal("expected between, got", s)
	}
	if s := ModeSinceHead.String(); s != "since-head" {
		t.Fatal("expected since-head, got", s)
	}
	if s := ReleaseMode(0).String(); s != "<INVALID>" {
		t.Fatal("expected <INVALID>, got", s)
	}
}
