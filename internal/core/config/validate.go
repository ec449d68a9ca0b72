package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/dialogview/internal/core/dialog"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// file accessibility of the transcript and sticker directory. The configPath
// argument specifies the config file location to validate (empty string skips
// the config file check). This calls Validate() first for basic structural
// validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		c.validateDialogs(),
		c.validateAssets(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.Source().IsRemote() {
		warnings = append(warnings, ValidationWarning{
			Category: "Dialogs",
			Item:     c.Source().Location(),
			Message:  "remote transcript is not checked until it is fetched",
		})
	}

	if dialog.IsURL(c.Assets.Dir) {
		warnings = append(warnings, ValidationWarning{
			Category: "Assets",
			Item:     c.Assets.Dir,
			Message:  "remote sticker directory is not checked",
		})
	} else if c.Assets.Dir != "" && !strings.HasSuffix(c.Assets.Dir, "/") {
		warnings = append(warnings, ValidationWarning{
			Category: "Assets",
			Item:     c.Assets.Dir,
			Message:  "assets.dir has no trailing slash; sticker names are appended verbatim",
		})
	}

	if c.Fetch.Timeout == 0 {
		warnings = append(warnings, ValidationWarning{
			Category: "Fetch",
			Message:  "no fetch timeout; a stalled load waits until interrupted",
		})
	}

	return warnings
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validateDialogs checks the local transcript and the discovery pattern.
func (c *Config) validateDialogs() error {
	var errs criterio.FieldErrorsBuilder

	if !doublestar.ValidatePattern(c.Dialogs.Pattern) {
		errs = errs.Append("dialogs.pattern", fmt.Errorf("invalid glob %q", c.Dialogs.Pattern))
	}

	src := c.Source()
	if !src.IsRemote() {
		if err := isRegularFile(src.Location()); err != nil {
			errs = errs.Append("dialogs.file", err)
		}
		if c.Dialogs.Dir != "" {
			if err := isDirectory(c.Dialogs.Dir); err != nil {
				errs = errs.Append("dialogs.dir", err)
			}
		}
	}

	return errs.ToError()
}

func (c *Config) validateAssets() error {
	if c.Assets.Dir == "" || dialog.IsURL(c.Assets.Dir) {
		return nil
	}
	return criterio.Run("assets.dir", c.Assets.Dir, isDirectory)
}

func isRegularFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

func isDirectory(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("directory not found: %s", path)
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}
