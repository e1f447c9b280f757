package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options configures the string-keyed checker cmd/isocheck builds on
// top of the core library. GuardPrefix namespaces synthetic SI guard
// keys away from real ones; AbnormalValue is the SI poison marker.
type Options struct {
	GuardPrefix   string `yaml:"guard_prefix"`
	AbnormalValue string `yaml:"abnormal_value"`
	Debug         bool   `yaml:"debug"`
}

// Default returns the options used when no config file is given.
func Default() Options {
	return Options{
		GuardPrefix:   "__isocheck_guard__",
		AbnormalValue: "__isocheck_abnormal__",
		Debug:         false,
	}
}

// Load reads YAML options from path, filling in defaults for any field
// left zero.
func Load(path string) (Options, error) {
	opts := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if opts.GuardPrefix == "" {
		opts.GuardPrefix = Default().GuardPrefix
	}
	if opts.AbnormalValue == "" {
		opts.AbnormalValue = Default().AbnormalValue
	}
	return opts, nil
}

// Validate reports whether opts can be used to build a Checker: the
// abnormal value must differ from the zero value (empty string) a
// string-valued history's default reads resolve to.
func (o Options) Validate() error {
	if o.AbnormalValue == "" {
		return fmt.Errorf("config: abnormal_value must not be empty (collides with the default value)")
	}
	return nil
}

// Guard derives cmd/isocheck's namespacing scheme: prefix + writer
// index + the original key. Distinct across (k, i) because the index
// is embedded positionally before the key, and distinct from any real
// key as long as no real key happens to start with GuardPrefix — which
// Validate does not check, since the core library's own ValidateGuard
// (internal/rewrite) verifies this against the actual history each
// time SiCheck runs.
func (o Options) Guard(k string, i int) string {
	return fmt.Sprintf("%s%d__%s", o.GuardPrefix, i, k)
}
