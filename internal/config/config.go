// Package config resolves run settings from defaults, NHMMERX_* environment
// variables and command-line values, in increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"nhmmerx/internal/hits"
	"nhmmerx/internal/writers"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "NHMMERX_"

// Config holds every setting of a run.
type Config struct {
	Report          string  `koanf:"report"            validate:"required"`
	Fasta           string  `koanf:"fasta"`
	EslSfetch       string  `koanf:"esl_sfetch"        validate:"required"`
	EValueThreshold float64 `koanf:"e_value_threshold" validate:"gte=0"`
	SpeciesID       string  `koanf:"species_id"`
	LineWidth       int     `koanf:"line_width"        validate:"gte=1"`
	TmpDir          string  `koanf:"tmp_dir"`
	KeepTmp         bool    `koanf:"keep_tmp"`
	LogLevel        string  `koanf:"log_level"         validate:"oneof=debug info warn error"`
	LogJSON         bool    `koanf:"log_json"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		EslSfetch:       "esl-sfetch",
		EValueThreshold: hits.DefaultThreshold,
		LineWidth:       writers.DefaultLineWidth,
		LogLevel:        "info",
	}
}

// Load merges defaults, environment and overrides, then validates. Keys in
// overrides use the koanf tag names above; values may be strings.
func Load(overrides map[string]any) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnvKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if len(overrides) > 0 {
		if err := k.Load(rawMap(overrides), nil); err != nil {
			return nil, fmt.Errorf("failed to apply overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	// A FASTA identifier ends at the first blank.
	if strings.ContainsAny(cfg.SpeciesID, " \t") {
		return fmt.Errorf("configuration validation failed: species id %q contains whitespace", cfg.SpeciesID)
	}
	return nil
}

// transformEnvKey maps NHMMERX_E_VALUE_THRESHOLD to e_value_threshold.
func transformEnvKey(key, value string) (string, any) {
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ToLower(key), value
}

// rawMap is a koanf.Provider adapter for map[string]any data.
type rawMap map[string]any

func (r rawMap) Read() (map[string]any, error) {
	return r, nil
}

func (r rawMap) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("ReadBytes not implemented")
}
