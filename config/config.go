// Copyright © 2026 Herbstluftwm contributors
// SPDX-License-Identifier: BSD-2-Clause
//
// File: config/config.go
// Summary: Runtime settings consumed by the event handlers.
// Usage: Loaded once by the host before the main loop starts.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Settings holds the behavioural switches the event loop consults. Values can
// be flipped at runtime (e.g. by a settings command), so access is guarded.
type Settings struct {
	mu sync.RWMutex

	focusFollowsMouse    bool
	raiseOnClick         bool
	autoDetectMonitors   bool
	importTagsFromEwmh   bool
	swapMonitorsToGetTag bool
}

// Load reads settings from file and env. Env var overrides use prefix HLWM_.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetDefault("focus_follows_mouse", false)
	v.SetDefault("raise_on_click", true)
	v.SetDefault("auto_detect_monitors", false)
	v.SetDefault("import_tags_from_ewmh", true)
	v.SetDefault("swap_monitors_to_get_tag", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("HLWM_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "herbstluftwm"))
		v.SetConfigName("settings")
	}

	v.SetEnvPrefix("HLWM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// a missing file just means defaults; an explicit path must exist
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && cfgPath != "" {
			return nil, fmt.Errorf("config: read %s: %w", cfgPath, err)
		}
	}

	return &Settings{
		focusFollowsMouse:    v.GetBool("focus_follows_mouse"),
		raiseOnClick:         v.GetBool("raise_on_click"),
		autoDetectMonitors:   v.GetBool("auto_detect_monitors"),
		importTagsFromEwmh:   v.GetBool("import_tags_from_ewmh"),
		swapMonitorsToGetTag: v.GetBool("swap_monitors_to_get_tag"),
	}, nil
}

// Defaults returns settings with the built-in default values.
func Defaults() *Settings {
	return &Settings{
		raiseOnClick:         true,
		importTagsFromEwmh:   true,
		swapMonitorsToGetTag: true,
	}
}

func (s *Settings) FocusFollowsMouse() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focusFollowsMouse
}

func (s *Settings) RaiseOnClick() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raiseOnClick
}

func (s *Settings) AutoDetectMonitors() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.autoDetectMonitors
}

func (s *Settings) ImportTagsFromEwmh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.importTagsFromEwmh
}

func (s *Settings) SwapMonitorsToGetTag() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.swapMonitorsToGetTag
}

// SetFocusFollowsMouse flips the focus-follows-mouse policy.
func (s *Settings) SetFocusFollowsMouse(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focusFollowsMouse = on
}

// SetRaiseOnClick flips the click-raise policy.
func (s *Settings) SetRaiseOnClick(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raiseOnClick = on
}

// SetAutoDetectMonitors flips automatic monitor detection.
func (s *Settings) SetAutoDetectMonitors(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoDetectMonitors = on
}

// SetImportTagsFromEwmh flips tag import for windows of a previous manager.
func (s *Settings) SetImportTagsFromEwmh(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importTagsFromEwmh = on
}

// SetSwapMonitorsToGetTag flips whether focusing a tag shown elsewhere swaps
// monitors instead of moving the tag.
func (s *Settings) SetSwapMonitorsToGetTag(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swapMonitorsToGetTag = on
}
