// Copyright (c) 2017-2019, AT&T Intellectual Property.
// All rights reserved.
//
// SPDX-License-Identifier: MPL-2.0

package modfile

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("module stub {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", path, err)
	}
	return path
}

func TestLocatorFindBareFilename(t *testing.T) {
	dir := t.TempDir()
	want := touch(t, dir, "foo.yang")

	loc := NewLocator(dir)
	got, err := loc.Find("foo", "")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Fatalf("Find = %q, want %q", got, want)
	}
}

func TestLocatorFindSelectsNewestRevision(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "foo@2019-01-01.yang")
	want := touch(t, dir, "foo@2021-06-15.yang")
	touch(t, dir, "foo@2020-03-10.yang")

	loc := NewLocator(dir)
	got, err := loc.Find("foo", "")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Fatalf("Find with no requested revision = %q, want newest %q", got, want)
	}
}

func TestLocatorFindExplicitRevision(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "foo@2019-01-01.yang")
	want := touch(t, dir, "foo@2021-06-15.yang")

	loc := NewLocator(dir)
	got, err := loc.Find("foo", "2021-06-15")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Fatalf("Find(explicit revision) = %q, want %q", got, want)
	}
}

func TestLocatorFindMissingRevisionErrors(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "foo@2019-01-01.yang")

	loc := NewLocator(dir)
	if _, err := loc.Find("foo", "2099-01-01"); err == nil {
		t.Fatalf("expected an error for a revision not present on disk")
	}
}

func TestLocatorFirstDirectoryWins(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	want := touch(t, dirA, "foo.yang")
	touch(t, dirB, "foo@2099-01-01.yang")

	loc := NewLocator(dirA, dirB)
	got, err := loc.Find("foo", "")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got != want {
		t.Fatalf("Find = %q, want the first directory's candidate %q (no mixing across directories)", got, want)
	}
}

func TestLocatorFindNotFound(t *testing.T) {
	dir := t.TempDir()
	loc := NewLocator(dir)
	if _, err := loc.Find("nosuch", ""); err == nil {
		t.Fatalf("expected an error when no directory has a candidate")
	}
}

func TestSplitRevisionedName(t *testing.T) {
	name, rev := SplitRevisionedName("foo@2021-06-15")
	if name != "foo" || rev != "2021-06-15" {
		t.Fatalf("SplitRevisionedName = (%q, %q), want (\"foo\", \"2021-06-15\")", name, rev)
	}
	name, rev = SplitRevisionedName("foo")
	if name != "foo" || rev != "" {
		t.Fatalf("SplitRevisionedName(no revision) = (%q, %q), want (\"foo\", \"\")", name, rev)
	}
}
