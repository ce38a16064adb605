package get

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSource(t *testing.T) {
	testcases := []struct {
		src      string
		expected Source
		key      string
	}{
		{
			src:      "github.com/mumoshu/pipelines//demo.yaml",
			expected: Source{Dir: "github.com/mumoshu/pipelines", File: "demo.yaml"},
			key:      "github_com_mumoshu_pipelines",
		},
		{
			src:      "github.com/mumoshu/pipelines//defs/demo.yaml?ref=v1",
			expected: Source{Dir: "github.com/mumoshu/pipelines", File: "defs/demo.yaml", Query: "ref=v1"},
			key:      "github_com_mumoshu_pipelines.ref=v1",
		},
		{
			src:      "git::https://example.com/repo.git?ref=main//demo.yaml?depth=1",
			expected: Source{Dir: "git::https://example.com/repo.git", File: "demo.yaml", Query: "ref=main&depth=1"},
			key:      "git__https___example_com_repo_git.ref=main_depth=1",
		},
	}

	for _, tc := range testcases {
		t.Run(tc.src, func(t *testing.T) {
			s, err := ParseSource(tc.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.expected, *s); diff != "" {
				t.Errorf("ParseSource() mismatch (-want +got):\n%s", diff)
			}
			if got := s.CacheKey(); got != tc.key {
				t.Errorf("CacheKey(): expected %q, got %q", tc.key, got)
			}
		})
	}
}

func TestParseSourceErrors(t *testing.T) {
	for _, src := range []string{"demo.yaml", "github.com/mumoshu/pipelines//", "//demo.yaml"} {
		t.Run(src, func(t *testing.T) {
			if _, err := ParseSource(src); err == nil {
				t.Errorf("expected an error for %q", src)
			}
		})
	}
}

func TestGetBytesReadsLocalFiles(t *testing.T) {
	dir, err := ioutil.TempDir("", "pipeline-get")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "pipeline.yaml")
	if err := ioutil.WriteFile(path, []byte("steps: [pipe]\n"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bytes, err := GetBytes(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(bytes) != "steps: [pipe]\n" {
		t.Errorf("unexpected content: %q", string(bytes))
	}
}

func TestGetBytesRejectsUnknownLocalPath(t *testing.T) {
	if _, err := GetBytes(context.Background(), "does-not-exist.yaml"); err == nil {
		t.Errorf("expected an error for a missing file without a $repo//$path form")
	}
}
