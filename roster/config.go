package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable holding the default config path.
const ConfigEnv = "ROSTER_CONFIG"

// Config holds the defaults both commands start from. Command line flags
// override individual fields.
type Config struct {
	Threshold              float64        `yaml:"similarity_threshold"`
	AllBroadstripesColumns []string       `yaml:"all_bs_cols"`
	SkippedColumns         []string       `yaml:"skipped_cols"`
	ProgramMappingFile     string         `yaml:"program_mapping_file"`
	OutputDir              string         `yaml:"output_dir"`
	PhoneRegion            string         `yaml:"phone_region"`
	Address                AddressColumns `yaml:"address"`
	Workers                int            `yaml:"workers"`
	FoldAccents            bool           `yaml:"fold_accents"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Threshold:              0.75,
		AllBroadstripesColumns: []string{"Last Name", "First Name", "Middle Name"},
		SkippedColumns:         []string{"Last", "First", "Middle"},
		ProgramMappingFile:     "program_mapping.yaml",
		OutputDir:              "data",
		PhoneRegion:            "US",
		Address:                DefaultAddressColumns,
		Workers:                1,
	}
}

// LoadConfig reads a YAML config over the defaults. An empty path falls back to
// $ROSTER_CONFIG; with neither set the defaults are returned as is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the threshold range and the name column counts.
func (c Config) Validate() error {
	if err := CheckThreshold(c.Threshold); err != nil {
		return err
	}
	if len(c.AllBroadstripesColumns) != 3 {
		return fmt.Errorf("%w: all_bs_cols %q", ErrInvalidNameColumnSpec, c.AllBroadstripesColumns)
	}
	if len(c.SkippedColumns) != 3 {
		return fmt.Errorf("%w: skipped_cols %q", ErrInvalidNameColumnSpec, c.SkippedColumns)
	}
	return nil
}
