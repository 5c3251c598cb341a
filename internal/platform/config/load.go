package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "APP_"

// DefaultProfile is used when APP_PROFILE is unset. It adds nothing to
// base.yaml, so the store endpoint stays the regional default.
const DefaultProfile = "default"

// Profile returns APP_PROFILE, or DefaultProfile when it is unset or blank.
func Profile() string {
	if p := strings.TrimSpace(os.Getenv("APP_PROFILE")); p != "" {
		return p
	}
	return DefaultProfile
}

// bareEnv lists the variables deployments set without the APP_ prefix.
// They are applied last and win over everything else.
var bareEnv = map[string]string{
	"TABLE_NAME": "store.table_name",
	"PORT":       "server.port",
}

type Option func(*loader)

// WithConfigDir points Load at a directory other than ./configs.
func WithConfigDir(dir string) Option {
	return func(l *loader) { l.dir = dir }
}

type loader struct {
	dir     string
	profile string
	k       *koanf.Koanf
}

// Load builds the Config for profile from, lowest precedence first:
// built-in defaults, {dir}/base.yaml, {dir}/{profile}.yaml, APP_* variables
// and finally TABLE_NAME and PORT. The result is validated.
//
// APP_* names are matched against the keys known after the file layers, so
// APP_STORE_CIRCUIT_BREAKER_MAX_FAILURES lands on
// store.circuit_breaker.max_failures. Unknown APP_* names are ignored.
func Load(profile string, opts ...Option) (*Config, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}

	l := &loader{dir: "configs", profile: profile, k: koanf.New(".")}
	for _, opt := range opts {
		opt(l)
	}

	layers := []struct {
		name string
		load func() error
	}{
		{"defaults", l.defaults},
		{"base config", func() error { return l.yamlFile("base") }},
		{"profile config", func() error { return l.yamlFile(l.profile) }},
		{"APP_ environment", l.prefixedEnv},
		{"operational environment", l.bareEnv},
	}
	for _, layer := range layers {
		if err := layer.load(); err != nil {
			return nil, fmt.Errorf("config %s: %w", layer.name, err)
		}
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config invalid: %w", err)
	}
	return &cfg, nil
}

func (l *loader) defaults() error {
	return l.k.Load(confmap.Provider(defaults(), "."), nil)
}

func (l *loader) yamlFile(name string) error {
	path := filepath.Join(l.dir, name+".yaml")
	if err := l.k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (l *loader) prefixedEnv() error {
	known := make(map[string]string, len(l.k.Keys()))
	for _, key := range l.k.Keys() {
		known[strings.ToUpper(envPrefix+strings.ReplaceAll(key, ".", "_"))] = key
	}

	return l.k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(name, value string) (string, any) {
			return known[strings.ToUpper(name)], value
		},
	}), nil)
}

func (l *loader) bareEnv() error {
	return l.k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(name, value string) (string, any) {
			if value == "" {
				return "", nil
			}
			return bareEnv[name], value
		},
	}), nil)
}

// checkProfile rejects names that would escape the config directory.
func checkProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`), strings.Contains(profile, ".."):
		return fmt.Errorf("profile %q must be a plain file name", profile)
	}
	return nil
}
