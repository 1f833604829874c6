package application

import (
	"errors"
	"testing"

	"notepub/internal/domain"
)

func TestValidateSettingsRequiresTargetFolder(t *testing.T) {
	err := ValidateSettings(domain.Settings{TargetFolder: "  "})
	if err == nil {
		t.Fatal("expected error for blank target folder")
	}
	if !errors.Is(err, ErrNoTargetFolder) {
		t.Errorf("expected ErrNoTargetFolder, got %v", err)
	}

	if err := ValidateSettings(domain.Settings{TargetFolder: "Published"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateOptionsDepthBounds(t *testing.T) {
	tests := []struct {
		name    string
		opts    domain.PublishOptions
		wantErr bool
	}{
		{"depth below minimum", domain.PublishOptions{IncludeLinked: true, MaxDepth: 0}, true},
		{"depth above maximum", domain.PublishOptions{IncludeLinked: true, MaxDepth: 21}, true},
		{"depth at bounds", domain.PublishOptions{IncludeLinked: true, MaxDepth: 20}, false},
		{"depth ignored when root only", domain.PublishOptions{IncludeLinked: false, MaxDepth: 99}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOptions(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrDepthOutOfRange) {
				t.Errorf("expected ErrDepthOutOfRange, got %v", err)
			}
		})
	}
}

func TestValidateRoot(t *testing.T) {
	err := ValidateRoot(domain.NoteRefFromPath("diagram.png"))
	if !errors.Is(err, ErrNotANote) {
		t.Errorf("expected ErrNotANote for png, got %v", err)
	}

	if err := ValidateRoot(domain.NoteRefFromPath("Note.md")); err != nil {
		t.Errorf("unexpected error for markdown note: %v", err)
	}
}
