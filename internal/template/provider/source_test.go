package provider

import "testing"

func TestParseGitHubSource(t *testing.T) {
	tests := []struct {
		name      string
		source    string
		wantOwner string
		wantRepo  string
		wantRef   string
		wantPath  string
		wantErr   bool
	}{
		{
			name:      "owner/repo shorthand",
			source:    "skaffio/rust-api",
			wantOwner: "skaffio",
			wantRepo:  "rust-api",
			wantRef:   DefaultRef,
		},
		{
			name:      "owner/repo with subdirectory",
			source:    "skaffio/templates/rust/api",
			wantOwner: "skaffio",
			wantRepo:  "templates",
			wantRef:   DefaultRef,
			wantPath:  "rust/api",
		},
		{
			name:      "https URL",
			source:    "https://github.com/skaffio/rust-api",
			wantOwner: "skaffio",
			wantRepo:  "rust-api",
			wantRef:   DefaultRef,
		},
		{
			name:      "https URL with tree ref and path",
			source:    "https://github.com/skaffio/rust-api/tree/v2/templates/api",
			wantOwner: "skaffio",
			wantRepo:  "rust-api",
			wantRef:   "v2",
			wantPath:  "templates/api",
		},
		{
			name:      "ssh URL",
			source:    "git@github.com:skaffio/rust-api.git",
			wantOwner: "skaffio",
			wantRepo:  "rust-api",
			wantRef:   DefaultRef,
		},
		{
			name:      "github.com prefix",
			source:    "github.com/skaffio/rust-api",
			wantOwner: "skaffio",
			wantRepo:  "rust-api",
			wantRef:   DefaultRef,
		},
		{
			name:      "trailing .git",
			source:    "https://github.com/skaffio/rust-api.git",
			wantOwner: "skaffio",
			wantRepo:  "rust-api",
			wantRef:   DefaultRef,
		},
		{name: "empty", source: "", wantErr: true},
		{name: "bare name", source: "rust-api", wantErr: true},
		{name: "empty owner", source: "/repo", wantErr: true},
		{name: "empty repo", source: "owner/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseGitHubSource(tt.source)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseGitHubSource(%q) expected error, got %+v", tt.source, ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGitHubSource(%q) error = %v", tt.source, err)
			}
			if ref.Owner != tt.wantOwner || ref.Repo != tt.wantRepo || ref.Ref != tt.wantRef || ref.Path != tt.wantPath {
				t.Errorf("ParseGitHubSource(%q) = %+v, want owner=%q repo=%q ref=%q path=%q",
					tt.source, ref, tt.wantOwner, tt.wantRepo, tt.wantRef, tt.wantPath)
			}
			if ref.Provider != "github" {
				t.Errorf("Provider = %q, want github", ref.Provider)
			}
		})
	}
}

func TestIsLocalSource(t *testing.T) {
	tests := []struct {
		source string
		want   bool
	}{
		{"./template", true},
		{"../shared/template", true},
		{"/abs/path/template", true},
		{"file:///abs/path", true},
		{"skaffio/rust-api", false},
		{"https://github.com/skaffio/rust-api", false},
		{"git@github.com:skaffio/rust-api.git", false},
		{"github.com/skaffio/rust-api", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := IsLocalSource(tt.source); got != tt.want {
				t.Errorf("IsLocalSource(%q) = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestParseFileSource(t *testing.T) {
	path, err := ParseFileSource("file:///home/dev/template")
	if err != nil {
		t.Fatalf("ParseFileSource() error = %v", err)
	}
	if path != "/home/dev/template" {
		t.Errorf("path = %q, want /home/dev/template", path)
	}

	if _, err := ParseFileSource("file://"); err == nil {
		t.Error("ParseFileSource(\"file://\") expected error")
	}
	if _, err := ParseFileSource("/plain/path"); err == nil {
		t.Error("ParseFileSource(non-URL) expected error")
	}
}
