package config

import (
	"fmt"
	"os"

	"berkotech.co/particlecorr/internal/dataset"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Run holds every setting of a pipeline run.
type Run struct {
	Input         string   `mapstructure:"input" yaml:"input"`
	Output        string   `mapstructure:"output" yaml:"output"`
	HeatMapOutput string   `mapstructure:"heatmap_output" yaml:"heatmap_output"`
	Report        string   `mapstructure:"report" yaml:"report"`
	Drop          []string `mapstructure:"drop" yaml:"drop"`

	// AllowMissingDrop skips drop columns the input does not have.
	AllowMissingDrop bool    `mapstructure:"allow_missing_drop" yaml:"allow_missing_drop"`
	FilterColumn     string  `mapstructure:"filter_column" yaml:"filter_column"`
	Threshold        float64 `mapstructure:"threshold" yaml:"threshold"`
	PreviewRows      int     `mapstructure:"preview_rows" yaml:"preview_rows"`
	Describe         bool    `mapstructure:"describe" yaml:"describe"`

	// Plot settings
	Show     bool   `mapstructure:"show" yaml:"show"`
	Viewer   string `mapstructure:"viewer" yaml:"viewer"`
	Trend    bool   `mapstructure:"trend" yaml:"trend"`
	Bins     int    `mapstructure:"bins" yaml:"bins"`
	Annotate bool   `mapstructure:"annotate" yaml:"annotate"`

	Debug bool `mapstructure:"debug" yaml:"debug"`
}

// EnvPrefix is the prefix of environment overrides, e.g. PARTICLECORR_THRESHOLD.
const EnvPrefix = "PARTICLECORR"

// New returns a viper instance with the defaults and env binding applied.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("input", "particle_shapes.csv")
	v.SetDefault("output", "correlation_plot.png")
	v.SetDefault("heatmap_output", "")
	v.SetDefault("report", "")
	v.SetDefault("drop", dataset.IdentifierColumns)
	v.SetDefault("allow_missing_drop", false)
	v.SetDefault("filter_column", "elongation")
	v.SetDefault("threshold", 100.0)
	v.SetDefault("preview_rows", 5)
	v.SetDefault("describe", false)
	v.SetDefault("show", true)
	v.SetDefault("viewer", "")
	v.SetDefault("trend", false)
	v.SetDefault("bins", 10)
	v.SetDefault("annotate", true)
	v.SetDefault("debug", false)
	return v
}

// Load resolves the configuration. Precedence: flags bound to v > env >
// config file > defaults. A missing cfgFile is an error; with no cfgFile,
// ./particlecorr.yaml is read if present.
func Load(v *viper.Viper, cfgFile string) (*Run, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("particlecorr")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Run
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks settings that would otherwise fail deep in the pipeline.
func (c *Run) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("config: input is empty")
	}
	if c.Output == "" {
		return fmt.Errorf("config: output is empty")
	}
	if c.Bins < 0 {
		return fmt.Errorf("config: bins must be >= 0, got %d", c.Bins)
	}
	return nil
}

// Save writes c as YAML to path.
func Save(c *Run, path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
