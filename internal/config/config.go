package config

import (
	"os"
	"path/filepath"
	"strings"

	"notepub/internal/domain"

	"github.com/spf13/viper"
)

const configFilename = ".notepub.yaml"

// DefaultVaultPath is used when neither the flag nor NOTEPUB_VAULT is set.
const DefaultVaultPath = "~/Documents/vault"

// Config holds everything the binaries need at startup: where the vault is,
// how publishing behaves, and how logging is set up. Values come from
// .notepub.yaml inside the vault, overridable via NOTEPUB_* env vars.
type Config struct {
	VaultPath string
	Settings  domain.Settings
	Options   domain.PublishOptions
	LogFormat string
	LogLevel  string
}

// VaultPath returns the vault path from the NOTEPUB_VAULT env var,
// falling back to DefaultVaultPath.
func VaultPath() string {
	if env := os.Getenv("NOTEPUB_VAULT"); env != "" {
		return env
	}
	return DefaultVaultPath
}

// Load reads .notepub.yaml from the vault root. A missing file is fine, the
// defaults apply; a malformed file is an error.
func Load(vaultPath string) (*Config, error) {
	vaultPath = expandHome(vaultPath)

	v := viper.New()
	v.SetDefault("target_folder", "")
	v.SetDefault("include_linked", true)
	v.SetDefault("max_depth", 3)
	v.SetDefault("exclude_patterns", []string{})
	v.SetDefault("preserve_structure", false)
	v.SetDefault("add_prefix", false)
	v.SetDefault("prefix", "")
	v.SetDefault("base_url", "")
	v.SetDefault("log_format", "pretty") // pretty, json, or text
	v.SetDefault("log_level", "info")    // debug, info, warn, error

	v.SetEnvPrefix("NOTEPUB")
	v.AutomaticEnv()

	v.SetConfigFile(filepath.Join(vaultPath, configFilename))
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) && !strings.Contains(err.Error(), "no such file") {
			return nil, err
		}
	}

	return &Config{
		VaultPath: vaultPath,
		Settings: domain.Settings{
			TargetFolder:      v.GetString("target_folder"),
			PreserveStructure: v.GetBool("preserve_structure"),
			AddPrefix:         v.GetBool("add_prefix"),
			Prefix:            v.GetString("prefix"),
			BaseURL:           v.GetString("base_url"),
		},
		Options: domain.PublishOptions{
			IncludeLinked:   v.GetBool("include_linked"),
			MaxDepth:        v.GetInt("max_depth"),
			ExcludePatterns: v.GetStringSlice("exclude_patterns"),
		},
		LogFormat: v.GetString("log_format"),
		LogLevel:  v.GetString("log_level"),
	}, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
