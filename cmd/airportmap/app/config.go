package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/airportmap/internal/sources/registry"
	"github.com/agentstation/airportmap/pkg/countries"
	"github.com/agentstation/airportmap/pkg/errors"
	"github.com/agentstation/airportmap/pkg/sources"
)

// envPrefix prefixes every environment variable read through viper.
const envPrefix = "AIRPORTMAP"

// CountryOverride pins the code for one country name.
type CountryOverride struct {
	Name string `mapstructure:"name"`
	Code string `mapstructure:"code"`
}

// Config holds the application configuration loaded from config files,
// environment variables and .env files. Command-line flags are applied on
// top by the commands.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Dataset paths by source; an empty path disables the source
	SourcePaths map[sources.ID]string

	// Order is the comma-separated source precedence
	Order string

	// CountriesFile replaces the embedded seed table when set
	CountriesFile string

	// Overrides are consulted before prompting for unknown countries
	Overrides []CountryOverride

	// Logging configuration
	LogLevel    string
	EnvLogLevel string
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Environment variables (AIRPORTMAP_ prefix)
//  2. .env files
//  3. Config file (configFile, or .airportmap.yaml in $HOME or the working directory)
//  4. Defaults
//
// Command-line flags win over all of these and are applied by the commands.
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".airportmap")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "failed to read config file", err)
		}
	}

	config := &Config{
		Verbose:       v.GetBool("verbose"),
		Quiet:         v.GetBool("quiet"),
		NoColor:       v.GetBool("no-color"),
		ConfigFile:    v.ConfigFileUsed(),
		SourcePaths:   make(map[sources.ID]string),
		Order:         v.GetString("order"),
		CountriesFile: v.GetString("countries.file"),
		EnvLogLevel:   os.Getenv("LOG_LEVEL"),
		LogFormat:     getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:     getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
	for _, id := range registry.List() {
		config.SourcePaths[id] = v.GetString("sources." + id.String())
	}
	if err := v.UnmarshalKey("countries.overrides", &config.Overrides); err != nil {
		return nil, errors.NewConfigError("countries.overrides", "expected a list of name and code pairs", err)
	}

	return config, nil
}

// setDefaults registers every key so AutomaticEnv can find it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("no-color", false)
	v.SetDefault("order", joinIDs(sources.IDs()))
	v.SetDefault("countries.file", "")
	for _, id := range registry.List() {
		v.SetDefault("sources."+id.String(), registry.DefaultPath(id))
	}
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// Fixed returns the overrides as a lookup table.
func (c *Config) Fixed() countries.Fixed {
	fixed := make(countries.Fixed, len(c.Overrides))
	for _, o := range c.Overrides {
		if o.Name == "" {
			continue
		}
		fixed[o.Name] = o.Code
	}
	return fixed
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set win, and .env.local overrides .env.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func joinIDs(ids []sources.ID) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, ",")
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
