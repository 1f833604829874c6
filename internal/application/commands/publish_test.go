package commands

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"notepub/internal/domain"
)

// memStorage is a minimal in-memory storage fake for command tests.
type memStorage struct {
	files     map[string]string
	binaries  map[string][]byte
	folders   map[string]bool
	failReads map[string]bool
}

func newMemStorage() *memStorage {
	return &memStorage{
		files:     make(map[string]string),
		binaries:  make(map[string][]byte),
		folders:   make(map[string]bool),
		failReads: make(map[string]bool),
	}
}

func (s *memStorage) Read(path string) (string, error) {
	if s.failReads[path] {
		return "", fmt.Errorf("simulated read failure")
	}
	content, ok := s.files[path]
	if !ok {
		return "", fmt.Errorf("file not found: %s", path)
	}
	return content, nil
}

func (s *memStorage) ReadBinary(path string) ([]byte, error) {
	data, ok := s.binaries[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return data, nil
}

func (s *memStorage) Write(path, content string) error {
	s.files[path] = content
	return nil
}

func (s *memStorage) WriteBinary(path string, data []byte) error {
	s.binaries[path] = data
	return nil
}

func (s *memStorage) Exists(path string) bool {
	if _, ok := s.files[path]; ok {
		return true
	}
	return s.folders[path]
}

func (s *memStorage) CreateFolder(path string) error {
	s.folders[path] = true
	return nil
}

func (s *memStorage) List(folder string) ([]string, error) {
	var out []string
	for path := range s.files {
		if strings.HasPrefix(path, folder+"/") {
			out = append(out, path)
		}
	}
	return out, nil
}

type memResolver struct {
	storage *memStorage
}

func (r *memResolver) Resolve(raw, sourcePath string) (domain.NoteRef, bool) {
	for _, c := range []string{raw, raw + ".md"} {
		if _, ok := r.storage.files[c]; ok {
			return domain.NoteRefFromPath(c), true
		}
	}
	for path := range r.storage.files {
		if domain.NoteRefFromPath(path).Basename() == raw {
			return domain.NoteRefFromPath(path), true
		}
	}
	return domain.NoteRef{}, false
}

type noDrawings struct{}

func (noDrawings) IsDrawing(ref domain.NoteRef, content string) bool { return false }
func (noDrawings) Render(content, sourcePath string) ([]byte, error) {
	return nil, fmt.Errorf("not a drawing")
}

func TestPublishCommand_Validate(t *testing.T) {
	storage := newMemStorage()
	storage.files["Root.md"] = "hello"

	tests := []struct {
		name     string
		rootPath string
		options  domain.PublishOptions
		settings domain.Settings
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "valid publish",
			rootPath: "Root.md",
			options:  domain.PublishOptions{IncludeLinked: true, MaxDepth: 3},
			settings: domain.Settings{TargetFolder: "Published"},
			wantErr:  false,
		},
		{
			name:     "empty root path",
			rootPath: "",
			options:  domain.PublishOptions{IncludeLinked: true, MaxDepth: 3},
			settings: domain.Settings{TargetFolder: "Published"},
			wantErr:  true,
			errMsg:   "root note path is required",
		},
		{
			name:     "target folder unset",
			rootPath: "Root.md",
			options:  domain.PublishOptions{IncludeLinked: true, MaxDepth: 3},
			settings: domain.Settings{},
			wantErr:  true,
			errMsg:   "target folder is required",
		},
		{
			name:     "depth out of range",
			rootPath: "Root.md",
			options:  domain.PublishOptions{IncludeLinked: true, MaxDepth: 21},
			settings: domain.Settings{TargetFolder: "Published"},
			wantErr:  true,
			errMsg:   "max depth must be between",
		},
		{
			name:     "depth ignored when linked disabled",
			rootPath: "Root.md",
			options:  domain.PublishOptions{IncludeLinked: false, MaxDepth: 0},
			settings: domain.Settings{TargetFolder: "Published"},
			wantErr:  false,
		},
		{
			name:     "not a markdown note",
			rootPath: "image.png",
			options:  domain.PublishOptions{IncludeLinked: true, MaxDepth: 3},
			settings: domain.Settings{TargetFolder: "Published"},
			wantErr:  true,
			errMsg:   "expected a markdown note",
		},
		{
			name:     "missing note",
			rootPath: "Nope.md",
			options:  domain.PublishOptions{IncludeLinked: true, MaxDepth: 3},
			settings: domain.Settings{TargetFolder: "Published"},
			wantErr:  true,
			errMsg:   "note does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewPublishCommand(storage, &memResolver{storage: storage}, noDrawings{},
				tt.rootPath, tt.options, tt.settings)
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
		})
	}
}

func TestPublishCommand_Execute(t *testing.T) {
	storage := newMemStorage()
	storage.files["A & B/note name.md"] = "see [[Other]]"
	storage.files["Other.md"] = "linked"

	cmd := NewPublishCommand(storage, &memResolver{storage: storage}, noDrawings{},
		"A & B/note name.md",
		domain.PublishOptions{IncludeLinked: true, MaxDepth: 2},
		domain.Settings{TargetFolder: "pub", BaseURL: "http://x"},
	)

	report, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if len(report.Files.PublishedFiles) != 2 {
		t.Errorf("published = %v, want 2 files", report.Files.PublishedFiles)
	}
	if report.URL != "http://x/A--and--B/note-name" {
		t.Errorf("URL = %q, want derived from source path", report.URL)
	}
	if _, ok := storage.files["pub/note name.md"]; !ok {
		t.Errorf("root copy missing, files: %v", storage.files)
	}
	if !contains(report.Message, "Published 2 files") {
		t.Errorf("Message = %q", report.Message)
	}
}

func TestPublishCommand_ExecuteWithoutBaseURL(t *testing.T) {
	storage := newMemStorage()
	storage.files["Root.md"] = "solo"

	cmd := NewPublishCommand(storage, &memResolver{storage: storage}, noDrawings{},
		"Root.md", domain.PublishOptions{}, domain.Settings{TargetFolder: "pub"})

	report, err := cmd.Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if report.URL != "" {
		t.Errorf("URL = %q, want empty without base URL", report.URL)
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
