package obsidian

import (
	"testing"
)

func TestNewOpener_DerivesVaultName(t *testing.T) {
	tests := []struct {
		name          string
		vaultPath     string
		wantVaultName string
	}{
		{
			name:          "simple vault path",
			vaultPath:     "/home/test/MyVault",
			wantVaultName: "MyVault",
		},
		{
			name:          "vault with spaces",
			vaultPath:     "/home/test/My Obsidian Vault",
			wantVaultName: "My Obsidian Vault",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := NewOpener(tt.vaultPath)
			if opener.vaultName != tt.wantVaultName {
				t.Errorf("vaultName = %q, want %q", opener.vaultName, tt.wantVaultName)
			}
		})
	}
}

func TestBuildURI(t *testing.T) {
	tests := []struct {
		name      string
		vaultPath string
		relPath   string
		wantURI   string
		wantErr   bool
	}{
		{
			name:      "file at vault root",
			vaultPath: "/home/test/MyVault",
			relPath:   "README.md",
			wantURI:   "obsidian://open?vault=MyVault&file=README.md",
		},
		{
			name:      "nested file with spaces",
			vaultPath: "/home/test/MyVault",
			relPath:   "Projects/Side Quests/note.md",
			wantURI:   "obsidian://open?vault=MyVault&file=Projects%2FSide+Quests%2Fnote.md",
		},
		{
			name:      "vault name with spaces",
			vaultPath: "/home/test/My Vault",
			relPath:   "notes/README.md",
			wantURI:   "obsidian://open?vault=My+Vault&file=notes%2FREADME.md",
		},
		{
			name:      "path escaping the vault",
			vaultPath: "/home/test/MyVault",
			relPath:   "../outside.md",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := NewOpener(tt.vaultPath)
			gotURI, err := opener.BuildURI(tt.relPath)

			if (err != nil) != tt.wantErr {
				t.Errorf("BuildURI() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if gotURI != tt.wantURI {
				t.Errorf("BuildURI() = %q, want %q", gotURI, tt.wantURI)
			}
		})
	}
}
