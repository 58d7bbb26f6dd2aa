// Package fitter tests
package fitter

import "testing"

func TestDetectFormatSupported(t *testing.T) {
	text := "# File: src/main.go\n```go\npackage main\n```\n"
	f := DetectFormat(text)

	if f.Name != "markdown-file-header" {
		t.Errorf("Name = %s, want markdown-file-header", f.Name)
	}
	if !f.Supported {
		t.Error("Supported = false, want true")
	}
	if f.Warning != "" {
		t.Errorf("Warning = %q, want empty", f.Warning)
	}
}

func TestDetectFormatVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"lowercase", "## file: src/main.go\ncontent\n", "lowercase-file-header"},
		{"source", "## Source: src/main.go\ncontent\n", "source-header"},
		{"path", "### Path: src/main.go\ncontent\n", "path-header"},
		{"fenced", "```\n# File: src/main.go\n```\n", "fenced-file-header"},
		{"unknown", "just some text\nwith no headers\n", "unknown"},
		{"empty", "", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DetectFormat(tt.text)
			if f.Name != tt.want {
				t.Errorf("Name = %s, want %s", f.Name, tt.want)
			}
			if f.Supported {
				t.Error("variant formats must not be supported")
			}
			if f.Warning == "" {
				t.Error("variant formats must carry a warning")
			}
		})
	}
}

func TestDetectFormatFirstMatchWins(t *testing.T) {
	// Both a supported header and a lowercase variant present: the
	// supported convention is checked first.
	text := "# File: a.go\ncontent\n# file: b.go\ncontent\n"
	f := DetectFormat(text)

	if f.Name != "markdown-file-header" || !f.Supported {
		t.Errorf("got %+v, want supported markdown-file-header", f)
	}
}

func TestDetectFormatFenceAware(t *testing.T) {
	// Header-shaped lines inside fences are content, not headers: a dump
	// whose only headers sit inside fences is the fenced variant, while
	// real headers outside fences keep the dump supported even when
	// fenced regions quote more header-shaped lines.
	tests := []struct {
		name          string
		text          string
		want          string
		wantSupported bool
	}{
		{
			"only fenced headers",
			"```\n# File: src/main.go\npackage main\n```\n",
			"fenced-file-header", false,
		},
		{
			"real header plus quoted header in fence",
			"# File: docs/readme.md\n```\n# File: quoted/example.go\n```\n",
			"markdown-file-header", true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DetectFormat(tt.text)
			if f.Name != tt.want {
				t.Errorf("Name = %s, want %s", f.Name, tt.want)
			}
			if f.Supported != tt.wantSupported {
				t.Errorf("Supported = %t, want %t", f.Supported, tt.wantSupported)
			}
		})
	}
}

func TestHeaderPath(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"# File: src/main.go", "src/main.go"},
		{"###   File:   deep/path/x.go  ", "deep/path/x.go"},
		{"###### File: f.go", "f.go"},
		{"####### File: too-deep.go", ""},
		{"# file: lower.go", ""},
		{"File: no-hash.go", ""},
		{"plain text", ""},
	}

	for _, tt := range tests {
		if got := headerPath(tt.line); got != tt.want {
			t.Errorf("headerPath(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
