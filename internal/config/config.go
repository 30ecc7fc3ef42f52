package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tryalma/doccheck/internal/crosscheck"
	"github.com/tryalma/doccheck/internal/vision"
)

// Config holds the full application configuration.
type Config struct {
	MRZ        MRZConfig        `yaml:"mrz" mapstructure:"mrz"`
	Vision     vision.Config    `yaml:"vision" mapstructure:"vision"`
	CrossCheck CrossCheckConfig `yaml:"crosscheck" mapstructure:"crosscheck"`
	FormFill   FormFillConfig   `yaml:"formfill" mapstructure:"formfill"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// MRZConfig configures the deterministic OCR path.
type MRZConfig struct {
	TesseractPath string `yaml:"tesseract_path" mapstructure:"tesseract_path"`
}

// CrossCheckConfig carries the orchestrator tunables in config-file form;
// durations are seconds.
type CrossCheckConfig struct {
	MRZTimeoutSecs    int                         `yaml:"mrz_timeout_secs" mapstructure:"mrz_timeout_secs"`
	VisionTimeoutSecs int                         `yaml:"vision_timeout_secs" mapstructure:"vision_timeout_secs"`
	Confidence        crosscheck.ConfidenceConfig `yaml:"confidence" mapstructure:"confidence"`
}

// Engine converts the file form into the orchestrator config.
func (c CrossCheckConfig) Engine() crosscheck.Config {
	cfg := crosscheck.DefaultConfig()
	if c.MRZTimeoutSecs > 0 {
		cfg.TimeoutA = time.Duration(c.MRZTimeoutSecs) * time.Second
	}
	if c.VisionTimeoutSecs > 0 {
		cfg.TimeoutB = time.Duration(c.VisionTimeoutSecs) * time.Second
	}
	if c.Confidence != (crosscheck.ConfidenceConfig{}) {
		cfg.Confidence = c.Confidence
	}
	return cfg
}

// FormFillConfig configures browser form population.
type FormFillConfig struct {
	MappingPath string `yaml:"mapping_path" mapstructure:"mapping_path"`
	Headless    bool   `yaml:"headless" mapstructure:"headless"`
}

// ServerConfig configures the upload server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	TempDir        string   `yaml:"temp_dir" mapstructure:"temp_dir"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DOCCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("mrz.tesseract_path", "tesseract")
	v.SetDefault("vision.provider", "anthropic")
	v.SetDefault("vision.max_tokens", 1024)
	v.SetDefault("vision.requests_per_minute", 30)
	v.SetDefault("crosscheck.mrz_timeout_secs", 30)
	v.SetDefault("crosscheck.vision_timeout_secs", 60)
	v.SetDefault("crosscheck.confidence.agreement", 1.0)
	v.SetDefault("crosscheck.confidence.disagreement_base", 0.4)
	v.SetDefault("crosscheck.confidence.single_source_deterministic", 0.7)
	v.SetDefault("crosscheck.confidence.single_source_probabilistic", 0.5)
	v.SetDefault("crosscheck.confidence.critical_field_weight", 2.0)
	v.SetDefault("crosscheck.confidence.standard_field_weight", 1.0)
	v.SetDefault("formfill.headless", true)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
