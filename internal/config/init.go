package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
)

// Init writes an example configuration file holding every default.
// An existing file is only replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ValidationError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	cfg := Default()
	cfg.Site.Title = "My Documentation"
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal configuration").Build()
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write configuration file").
			WithContext("path", path).
			Build()
	}
	return nil
}
