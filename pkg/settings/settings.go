// Package settings persists the five-field resolution settings record.
// Loading always merges stored values over defaults; validation happens
// here, at the edit boundary, never inside the resolver.
package settings

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"

	"github.com/grovetools/foldernote/pkg/models"
)

// Keys of the persisted settings record.
const (
	KeyFallbackStrategy    = "fallback_strategy"
	KeyEmptyFolderStrategy = "empty_folder_strategy"
	KeyAllowFolderToggle   = "allow_folder_toggle"
	KeyStrictMatching      = "strict_matching"
	KeyKeyword             = "keyword"
)

// Keys lists the settings record's fields in display order.
func Keys() []string {
	return []string{
		KeyFallbackStrategy,
		KeyEmptyFolderStrategy,
		KeyAllowFolderToggle,
		KeyStrictMatching,
		KeyKeyword,
	}
}

// SetDefaults registers every field's default value on v. Missing fields
// then read back as their defaults: a freshly loaded record is a full
// replacement merged over defaults.
func SetDefaults(v *viper.Viper) {
	def := models.DefaultConfig()
	v.SetDefault(KeyFallbackStrategy, string(def.FallbackStrategy))
	v.SetDefault(KeyEmptyFolderStrategy, string(def.EmptyFolderStrategy))
	v.SetDefault(KeyAllowFolderToggle, def.AllowFolderToggle)
	v.SetDefault(KeyStrictMatching, def.StrictMatching)
	v.SetDefault(KeyKeyword, def.Keyword)
}

// Load builds the resolution settings from v. Malformed stored values are
// coerced to defaults; Load never fails.
func Load(v *viper.Viper) *models.Config {
	cfg := &models.Config{
		FallbackStrategy:    models.FallbackStrategy(v.GetString(KeyFallbackStrategy)),
		EmptyFolderStrategy: models.EmptyFolderStrategy(v.GetString(KeyEmptyFolderStrategy)),
		AllowFolderToggle:   v.GetBool(KeyAllowFolderToggle),
		StrictMatching:      v.GetBool(KeyStrictMatching),
		Keyword:             v.GetString(KeyKeyword),
	}
	cfg.Normalize()
	return cfg
}

// Validate checks one field edit. This is the only place a short keyword
// or unknown strategy is rejected.
func Validate(key, value string) error {
	switch key {
	case KeyFallbackStrategy:
		switch models.FallbackStrategy(value) {
		case models.FallbackMostRecent, models.FallbackAlphabetical, models.FallbackNone:
			return nil
		}
		return fmt.Errorf("unknown fallback strategy %q (want %s, %s or %s)",
			value, models.FallbackMostRecent, models.FallbackAlphabetical, models.FallbackNone)
	case KeyEmptyFolderStrategy:
		switch models.EmptyFolderStrategy(value) {
		case models.EmptyRecentIndexInSubfolders, models.EmptyRecentNoteRecursive, models.EmptyNone:
			return nil
		}
		return fmt.Errorf("unknown empty folder strategy %q (want %s, %s or %s)",
			value, models.EmptyRecentIndexInSubfolders, models.EmptyRecentNoteRecursive, models.EmptyNone)
	case KeyAllowFolderToggle, KeyStrictMatching:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s must be a boolean: %w", key, err)
		}
		return nil
	case KeyKeyword:
		if len(value) < models.MinKeywordLen {
			return fmt.Errorf("keyword must be at least %d characters", models.MinKeywordLen)
		}
		return nil
	}
	return fmt.Errorf("unknown setting %q", key)
}

// Set validates and stores one field edit, writing the record back to the
// active config file.
func Set(v *viper.Viper, key, value string) error {
	if err := Validate(key, value); err != nil {
		return err
	}

	switch key {
	case KeyAllowFolderToggle, KeyStrictMatching:
		b, _ := strconv.ParseBool(value)
		v.Set(key, b)
	default:
		v.Set(key, value)
	}

	if err := v.WriteConfig(); err != nil {
		// No config file yet: create it rather than failing the edit.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v.SafeWriteConfig()
		}
		return err
	}
	return nil
}
