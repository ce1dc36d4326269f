package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Database   DatabaseConfig   `yaml:"database"`
	Log        LogConfig        `yaml:"log"`
}

// DictionaryConfig holds dictionary build settings: the source tables, the
// output files and the ingestion defaults.
type DictionaryConfig struct {
	CodeTablePath string `yaml:"code_table_path" env:"DICT_CODE_TABLE_PATH" env-default:"86word-8105-better.txt"`
	WeightPath    string `yaml:"weight_path"     env:"DICT_WEIGHT_PATH"     env-default:"phrase_weight.txt"`
	OutputPath    string `yaml:"output_path"     env:"DICT_OUTPUT_PATH"     env-default:"wubi.user.dict.yaml"`
	FailPath      string `yaml:"fail_path"       env:"DICT_FAIL_PATH"       env-default:"fail.txt"`
	RecordDir     string `yaml:"record_dir"      env:"DICT_RECORD_DIR"      env-default:"update_record"`
	DefaultWeight int    `yaml:"default_weight"  env:"DICT_DEFAULT_WEIGHT"  env-default:"100"`
	BatchSize     int    `yaml:"batch_size"      env:"DICT_BATCH_SIZE"      env-default:"500"`
}

// DatabaseConfig holds PostgreSQL connection settings for the publish
// command.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Validate checks cross-field constraints that tags cannot express.
func (c *Config) Validate() error {
	if c.Dictionary.DefaultWeight < 0 {
		return fmt.Errorf("dictionary.default_weight must be non-negative, got %d", c.Dictionary.DefaultWeight)
	}
	if c.Dictionary.BatchSize <= 0 {
		return fmt.Errorf("dictionary.batch_size must be positive, got %d", c.Dictionary.BatchSize)
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}
