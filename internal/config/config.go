package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Audit    AuditConfig    `mapstructure:"audit"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LedgerConfig struct {
	Difficulty    int `mapstructure:"difficulty"`
	MaxDifficulty int `mapstructure:"max_difficulty"`
}

// EffectiveDifficulty clamps the configured difficulty to the configured
// cap. Mining cost grows exponentially, so the cap bounds worst-case
// latency of a sale request.
func (l *LedgerConfig) EffectiveDifficulty() int {
	difficulty := l.Difficulty
	if difficulty <= 0 {
		difficulty = 2
	}
	if l.MaxDifficulty > 0 && difficulty > l.MaxDifficulty {
		difficulty = l.MaxDifficulty
	}
	return difficulty
}

type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("database.path", "data/ledger.db")
	v.SetDefault("ledger.difficulty", 2)
	v.SetDefault("ledger.max_difficulty", 4)
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.cron", "0 */5 * * * *")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}
