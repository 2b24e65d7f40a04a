package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("target-wizard version %s, commit %s, built at %s", version, commit, date)
}

type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Gateway GatewayConfig `mapstructure:"gateway"`
	Wizard  WizardConfig  `mapstructure:"wizard"`
}

// AuthType represents the type of authentication to use against the gateway admin API
type AuthType string

const (
	AuthTypeNone   AuthType = "none"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeBearer AuthType = "bearer"
	AuthTypeAPIKey AuthType = "api_key"
)

type GatewayConfig struct {
	BaseURL    string            `json:"base_url" mapstructure:"base_url"`
	AuthType   AuthType          `json:"auth_type" mapstructure:"auth_type"`
	AuthConfig map[string]string `json:"auth_config" mapstructure:"auth_config"`
	Headers    map[string]string `json:"headers" mapstructure:"headers"`
	Timeout    time.Duration     `json:"timeout" mapstructure:"timeout"`
}

type WizardConfig struct {
	// Listeners preselected in the listener picker
	Listeners []string `mapstructure:"listeners"`
	// OutputFile, when set, receives the descriptor instead of the gateway
	OutputFile string `mapstructure:"output_file"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// InitFlags registers the flags Load binds into viper
func InitFlags(flags *pflag.FlagSet) {
	flags.String("gateway-url", "", "Base URL of the gateway admin API")
	flags.String("output-file", "", "Write the target descriptor to this file instead of the gateway")
	flags.String("log-level", "", "Log level (debug|info|warn|error)")
	flags.String("log-file", "", "Write logs to this file")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("gateway.base_url", "http://localhost:19000")
	v.SetDefault("gateway.auth_type", string(AuthTypeNone))
	v.SetDefault("gateway.timeout", 30*time.Second)
}

// Load reads config.yaml (optional), the environment and the given flags
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("TARGET_WIZARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "target-wizard"))
	v.AddConfigPath("/etc/target-wizard")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Flags win over file and environment
	if gatewayURL := v.GetString("gateway-url"); gatewayURL != "" {
		config.Gateway.BaseURL = gatewayURL
	}
	if outputFile := v.GetString("output-file"); outputFile != "" {
		config.Wizard.OutputFile = outputFile
	}
	if level := v.GetString("log-level"); level != "" {
		config.Logging.Level = level
	}
	if logFile := v.GetString("log-file"); logFile != "" {
		config.Logging.OutputPath = logFile
	}

	switch config.Gateway.AuthType {
	case AuthTypeNone, AuthTypeBasic, AuthTypeBearer, AuthTypeAPIKey:
	case "":
		config.Gateway.AuthType = AuthTypeNone
	default:
		return nil, fmt.Errorf("unsupported gateway.auth_type %q", config.Gateway.AuthType)
	}

	return &config, nil
}
