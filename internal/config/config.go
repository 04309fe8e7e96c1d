// Package config содержит структуры конфигурации приложения и функцию их загрузки.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TsepisoMotloung/360-Rating/internal/domain"
	"github.com/TsepisoMotloung/360-Rating/internal/repository/csvfile"
)

const (
	defaultHTTPPort = "8080"

	defaultInputPath = "Employee_Rating_Guide_Managers.csv"
	defaultSQLPath   = "database/import-assignments.sql"
	defaultJSONPath  = "database/assignments.json"

	defaultDialect  = string(domain.DialectMSSQL)
	defaultQuoting  = string(domain.QuotingEscape)
	defaultPeriodID = 1

	defaultLogLevel  = "info"
	defaultLogFormat = "json"
)

// HTTPConfig содержит настройки HTTP-сервера.
type HTTPConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// InputConfig описывает исходный CSV.
type InputConfig struct {
	Path string `yaml:"path"`
	// Заголовки колонок сравниваются как есть, в том числе с пробелами.
	RaterColumn string `yaml:"rater_column"`
	RateeColumn string `yaml:"ratee_column"`
}

// OutputConfig пути выгрузок.
type OutputConfig struct {
	SQLPath  string `yaml:"sql_path"`
	JSONPath string `yaml:"json_path"`
}

// SQLConfig настройки генерации SQL.
type SQLConfig struct {
	Dialect string `yaml:"dialect"`
	Quoting string `yaml:"quoting"`
}

// JSONConfig настройки JSON-выгрузки.
type JSONConfig struct {
	PeriodID int `yaml:"period_id"`
}

// LogConfig настройки логгера.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config агрегирует конфигурацию всех подсистем приложения.
type Config struct {
	HTTP   HTTPConfig   `yaml:"http"`
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	SQL    SQLConfig    `yaml:"sql"`
	JSON   JSONConfig   `yaml:"json"`
	Log    LogConfig    `yaml:"log"`
}

// Default конфигурация без файла и переменных окружения.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:         defaultHTTPPort,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Input: InputConfig{
			Path:        defaultInputPath,
			RaterColumn: csvfile.DefaultRaterColumn,
			RateeColumn: csvfile.DefaultRateeColumn,
		},
		Output: OutputConfig{
			SQLPath:  defaultSQLPath,
			JSONPath: defaultJSONPath,
		},
		SQL: SQLConfig{
			Dialect: defaultDialect,
			Quoting: defaultQuoting,
		},
		JSON: JSONConfig{
			PeriodID: defaultPeriodID,
		},
		Log: LogConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load собирает конфиг: значения по умолчанию, затем YAML-файл (если путь задан),
// затем переменные окружения.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if _, err := cfg.RenderOptions(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// RenderOptions переводит строковые настройки в доменные.
func (c Config) RenderOptions() (domain.RenderOptions, error) {
	dialect, err := domain.ParseDialect(c.SQL.Dialect)
	if err != nil {
		return domain.RenderOptions{}, fmt.Errorf("sql.dialect %q: %w", c.SQL.Dialect, err)
	}
	quoting, err := domain.ParseQuoting(c.SQL.Quoting)
	if err != nil {
		return domain.RenderOptions{}, fmt.Errorf("sql.quoting %q: %w", c.SQL.Quoting, err)
	}
	return domain.RenderOptions{
		Dialect:  dialect,
		Quoting:  quoting,
		PeriodID: c.JSON.PeriodID,
	}, nil
}

// Columns заголовки колонок для чтения CSV.
func (c Config) Columns() csvfile.Columns {
	return csvfile.Columns{
		Rater: c.Input.RaterColumn,
		Ratee: c.Input.RateeColumn,
	}
}

// Outputs пути выходных файлов.
func (c Config) Outputs() domain.Outputs {
	return domain.Outputs{
		SQLPath:  c.Output.SQLPath,
		JSONPath: c.Output.JSONPath,
	}
}

func (c *Config) applyEnv() {
	c.HTTP.Port = getEnv("HTTP_PORT", c.HTTP.Port)
	c.HTTP.ReadTimeout = getDurationEnv("HTTP_READ_TIMEOUT", c.HTTP.ReadTimeout)
	c.HTTP.WriteTimeout = getDurationEnv("HTTP_WRITE_TIMEOUT", c.HTTP.WriteTimeout)
	c.HTTP.IdleTimeout = getDurationEnv("HTTP_IDLE_TIMEOUT", c.HTTP.IdleTimeout)

	c.Input.Path = getEnv("INPUT_CSV_PATH", c.Input.Path)
	c.Input.RaterColumn = getEnv("INPUT_RATER_COLUMN", c.Input.RaterColumn)
	c.Input.RateeColumn = getEnv("INPUT_RATEE_COLUMN", c.Input.RateeColumn)

	c.Output.SQLPath = getEnv("OUTPUT_SQL_PATH", c.Output.SQLPath)
	c.Output.JSONPath = getEnv("OUTPUT_JSON_PATH", c.Output.JSONPath)

	c.SQL.Dialect = getEnv("SQL_DIALECT", c.SQL.Dialect)
	c.SQL.Quoting = getEnv("SQL_QUOTING", c.SQL.Quoting)
	c.JSON.PeriodID = getIntEnv("JSON_PERIOD_ID", c.JSON.PeriodID)

	c.Log.Level = strings.ToLower(getEnv("LOG_LEVEL", c.Log.Level))
	c.Log.Format = strings.ToLower(getEnv("LOG_FORMAT", c.Log.Format))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
