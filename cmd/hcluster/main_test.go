package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const blogMatrix = "Blog\tchina\tkids\tmusic\tyahoo\n" +
	"Gothamist\t0\t3\t3\t0\n" +
	"GigaOM\t6\t0\t0\t2\n" +
	"Quick Online Tips\t0\t2\t2\t22\n"

func TestRun_TextFromStdin(t *testing.T) {
	var out bytes.Buffer
	err := run([]string{"-log-level", "disabled"}, strings.NewReader(blogMatrix), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := "+ [1.71]\n" +
		" Gothamist\n" +
		" + [1.09]\n" +
		"  GigaOM\n" +
		"  Quick Online Tips\n"
	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestRun_LinkageWithThreshold(t *testing.T) {
	var out bytes.Buffer
	args := []string{"-log-level", "disabled", "-output", "linkage", "-threshold", "1.2", "-workers", "2"}
	if err := run(args, strings.NewReader(blogMatrix), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 2 linkage rows and 2 cluster lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "[1,2,") {
		t.Errorf("first linkage row = %q, want merge of rows 1 and 2", lines[0])
	}
	if lines[2] != "cluster 0: [Gothamist]" {
		t.Errorf("cluster line = %q", lines[2])
	}
	if lines[3] != "cluster 1: [GigaOM Quick Online Tips]" {
		t.Errorf("cluster line = %q", lines[3])
	}
}

func TestRun_PointsLayout(t *testing.T) {
	var out bytes.Buffer
	args := []string{"-log-level", "disabled", "-output", "points", "-iterations", "50", "-seed", "3"}
	if err := run(args, strings.NewReader(blogMatrix), &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 points, got %q", out.String())
	}
	for i, name := range []string{"Gothamist", "GigaOM", "Quick Online Tips"} {
		fields := strings.Split(lines[i], "\t")
		if len(fields) != 3 || fields[0] != name {
			t.Errorf("line %d = %q, want %s followed by two coordinates", i, lines[i], name)
		}
	}
}

func TestRun_DebugLoggingKeepsOutput(t *testing.T) {
	var quiet, verbose bytes.Buffer
	if err := run([]string{"-log-level", "disabled"}, strings.NewReader(blogMatrix), &quiet); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := run([]string{"-log-level", "debug"}, strings.NewReader(blogMatrix), &verbose); err != nil {
		t.Fatalf("run: %v", err)
	}
	if quiet.String() != verbose.String() {
		t.Errorf("debug logging changed stdout:\n%s\nvs\n%s", verbose.String(), quiet.String())
	}
}

func TestRun_JSONFileTransposed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogdata.json")
	doc := `{"words": ["china", "kids", "music"], "blogs": [
		{"name": "a", "wc": [0, 3, 3]},
		{"name": "b", "wc": [6, 0, 1]}
	]}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	args := []string{"-log-level", "disabled", "-transpose", "-metric", "euclidean", "-output", "json", path}
	if err := run(args, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, word := range []string{`"china"`, `"kids"`, `"music"`, `"id":-2`} {
		if !strings.Contains(out.String(), word) {
			t.Errorf("output %s missing %s", out.String(), word)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	tests := map[string]struct {
		args  []string
		input string
	}{
		"unknown metric": {[]string{"-metric", "nope"}, blogMatrix},
		"bad cell":       {[]string{"-log-level", "disabled"}, "h\ta\nx\ty\n"},
		"missing file":   {[]string{"-log-level", "disabled", "/does/not/exist.tsv"}, ""},
		"bad flag":       {[]string{"-bogus"}, ""},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(tt.args, strings.NewReader(tt.input), &out); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRun_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-log-level", "disabled"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
