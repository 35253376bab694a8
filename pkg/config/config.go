// Package config loads stoop.yaml, the project file that names the runtime
// hooks a rewritten script is compiled against.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tomaswrobel/scrap-native/pkg/rewrite"
	"gopkg.in/yaml.v3"
)

// FileName is the project file looked up in the working directory.
const FileName = "stoop.yaml"

// Config represents the stoop configuration
type Config struct {
	Context           string            `yaml:"context"`
	Interrupt         string            `yaml:"interrupt"`
	ErrorBinding      string            `yaml:"error_binding"`
	PureCallees       []string          `yaml:"pure_callees"`
	Setters           map[string]string `yaml:"setters"`
	BareCalleeContext bool              `yaml:"bare_callee_context"`
	Emit              EmitConfig        `yaml:"emit"`
}

type EmitConfig struct {
	Indent string `yaml:"indent"`
}

// Default returns the configuration matching rewrite.DefaultOptions.
func Default() *Config {
	opts := rewrite.DefaultOptions()
	return &Config{
		Context:      opts.Context,
		Interrupt:    opts.Interrupt,
		ErrorBinding: opts.ErrorBinding,
		PureCallees:  opts.PureCallees,
		Setters:      opts.Setters,
		Emit:         EmitConfig{Indent: "  "},
	}
}

// Load reads and validates a configuration file. Keys missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates configuration text.
func Parse(data []byte) (*Config, error) {
	config := Default()
	config.Setters = nil
	config.PureCallees = nil
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Apply defaults
	if config.Setters == nil {
		config.Setters = rewrite.DefaultSetters()
	}
	if config.PureCallees == nil {
		config.PureCallees = rewrite.DefaultOptions().PureCallees
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Find loads path when it is set, otherwise stoop.yaml from the working
// directory when one exists, otherwise the defaults.
func Find(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	config, err := Load(FileName)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return config, err
}

// Validate checks that every name the rewrite injects is usable in a
// script.
func (c *Config) Validate() error {
	var errs []error
	if !isPath(c.Context) {
		errs = append(errs, fmt.Errorf("context %q is not an identifier path", c.Context))
	}
	if !isPath(c.Interrupt) {
		errs = append(errs, fmt.Errorf("interrupt %q is not an identifier path", c.Interrupt))
	}
	if !isIdentifier(c.ErrorBinding) {
		errs = append(errs, fmt.Errorf("error_binding %q is not an identifier", c.ErrorBinding))
	}
	for _, name := range c.PureCallees {
		if !isIdentifier(name) {
			errs = append(errs, fmt.Errorf("pure callee %q is not an identifier", name))
		}
	}
	for prop, method := range c.Setters {
		if prop == "" || !isIdentifier(method) {
			errs = append(errs, fmt.Errorf("setter %q -> %q is not valid", prop, method))
		}
	}
	if strings.Trim(c.Emit.Indent, " \t") != "" {
		errs = append(errs, fmt.Errorf("emit.indent must contain only spaces and tabs"))
	}
	return errors.Join(errs...)
}

// RewriteOptions converts the configuration into rewrite options.
func (c *Config) RewriteOptions() rewrite.Options {
	setters := make(map[string]string, len(c.Setters))
	for prop, method := range c.Setters {
		setters[prop] = method
	}
	return rewrite.Options{
		Context:           c.Context,
		Interrupt:         c.Interrupt,
		ErrorBinding:      c.ErrorBinding,
		PureCallees:       append([]string{}, c.PureCallees...),
		Setters:           setters,
		BareCalleeContext: c.BareCalleeContext,
	}
}

// Write stores c at path, refusing to replace an existing file unless
// force is set.
func Write(path string, c *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file %s already exists", path)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

const header = `# stoop configuration file
# context: receiver of injected runtime calls
# interrupt: error class that catch clauses always rethrow
# setters: property name -> runtime method replacing the write
`

func isPath(s string) bool {
	if s == "" {
		return false
	}
	for _, part := range strings.Split(s, ".") {
		if !isIdentifier(part) {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
