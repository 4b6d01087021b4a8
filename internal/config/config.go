package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonlex/internal/lexer"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatText   = "text"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatPretty = "pretty"
)

// Kind name cases
const (
	CaseSnake      = "snake"
	CaseKebab      = "kebab"
	CaseCamel      = "camel"
	CaseLowerCamel = "lower_camel"
	CaseScreaming  = "screaming"
)

var (
	formats   = []string{FormatText, FormatJSON, FormatYAML, FormatPretty}
	kindCases = []string{CaseSnake, CaseKebab, CaseCamel, CaseLowerCamel, CaseScreaming}
)

// Config represents the complete configuration for jsonlex
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Lexing   LexingConfig   `yaml:"lexing"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Dev      DevConfig      `yaml:"dev"`
}

// OutputConfig controls how tokens are rendered
type OutputConfig struct {
	Format   string `yaml:"format"`
	Indent   string `yaml:"indent"`
	KindCase string `yaml:"kind_case"`
}

// LexingConfig controls error handling while tokenizing
type LexingConfig struct {
	// KeepGoing collects errors and continues instead of stopping at the first one.
	KeepGoing bool `yaml:"keep_going"`
	// MaxErrors bounds the errors collected in keep-going mode. Zero means no limit.
	MaxErrors int `yaml:"max_errors"`
}

// AnalysisConfig controls the token stream summary
type AnalysisConfig struct {
	Summary         bool `yaml:"summary"`
	RequireBalanced bool `yaml:"require_balanced"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format:   FormatText,
			Indent:   "  ",
			KindCase: CaseSnake,
		},
		Lexing: LexingConfig{
			KeepGoing: false,
			MaxErrors: 10,
		},
		Analysis: AnalysisConfig{
			Summary:         false,
			RequireBalanced: false,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".jsonlex.yml", ".jsonlex.yaml", "jsonlex.yml", "jsonlex.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			break
		}
		dir = parentDir
	}

	return ""
}

// Validate checks that enumerated settings hold known values
func (c *Config) Validate() error {
	if !slices.Contains(formats, c.Output.Format) {
		return fmt.Errorf("unknown output format '%s' (want one of %v)", c.Output.Format, formats)
	}
	if !slices.Contains(kindCases, c.Output.KindCase) {
		return fmt.Errorf("unknown kind case '%s' (want one of %v)", c.Output.KindCase, kindCases)
	}
	if c.Lexing.MaxErrors < 0 {
		return fmt.Errorf("max_errors must not be negative, got %d", c.Lexing.MaxErrors)
	}
	return nil
}

// KindName renders a token kind name in the configured case
func (c *Config) KindName(kind lexer.Kind) string {
	return c.CaseName(kind.String())
}

// CaseName converts name to the configured kind case
func (c *Config) CaseName(name string) string {
	switch c.Output.KindCase {
	case CaseKebab:
		return strcase.ToKebab(name)
	case CaseCamel:
		return strcase.ToCamel(name)
	case CaseLowerCamel:
		return strcase.ToLowerCamel(name)
	case CaseScreaming:
		return strcase.ToScreamingSnake(name)
	default:
		return strcase.ToSnake(name)
	}
}

// CLIOverrides holds values given on the command line. Nil pointers mean
// the flag was not set and the file value is kept.
type CLIOverrides struct {
	Format          string
	KeepGoing       *bool
	MaxErrors       *int
	Summary         *bool
	RequireBalanced *bool
	Debug           *bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Format != "" {
		cfg.Output.Format = cli.Format
	}
	if cli.KeepGoing != nil {
		cfg.Lexing.KeepGoing = *cli.KeepGoing
	}
	if cli.MaxErrors != nil {
		cfg.Lexing.MaxErrors = *cli.MaxErrors
	}
	if cli.Summary != nil {
		cfg.Analysis.Summary = *cli.Summary
	}
	if cli.RequireBalanced != nil {
		cfg.Analysis.RequireBalanced = *cli.RequireBalanced
	}
	if cli.Debug != nil {
		cfg.Dev.Debug = *cli.Debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
