package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Source types.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config represents the top-level YAML configuration.
type Config struct {
	Source     Source     `yaml:"source"`
	Connection Connection `yaml:"connection"`
	Analysis   Analysis   `yaml:"analysis"`
	LogLevel   string     `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Output     string     `yaml:"output"`
}

// Source describes where comments are read from.
type Source struct {
	Type    string  `yaml:"type" validate:"oneof=csv postgres"`
	Path    string  `yaml:"path"`
	Table   string  `yaml:"table"`
	Where   string  `yaml:"where"`
	Columns Columns `yaml:"columns"`
}

// Columns names the source columns holding each table cell.
// For CSV these are header names, for PostgreSQL column names.
type Columns struct {
	User    string `yaml:"user" validate:"required"`
	Content string `yaml:"content" validate:"required"`
	Video   string `yaml:"video" validate:"required"`
	Label   string `yaml:"label" validate:"required"`
}

// Connection holds database connection parameters.
type Connection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port" validate:"gte=0,lte=65535"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// Analysis holds the similarity thresholds.
type Analysis struct {
	Threshold   float64   `yaml:"threshold" validate:"gte=0,lte=1"`
	Sweep       []float64 `yaml:"sweep" validate:"dive,gte=0,lte=1"`
	Parallelism int       `yaml:"parallelism" validate:"gte=0"`
}

var validate = newValidator()

// newValidator reports fields by their YAML names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Default returns the configuration used when no file is given.
// Connection settings still come from the environment.
func Default() *Config {
	cfg := base()
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg
}

// base holds the defaults that YAML may override with zero values,
// so they are set before decoding rather than after.
func base() *Config {
	return &Config{
		Analysis: Analysis{
			Threshold:   0.7,
			Sweep:       []float64{0.0, 0.2, 0.5, 0.9, 1.0},
			Parallelism: 4,
		},
		LogLevel: "info",
	}
}

// DSN builds a PostgreSQL connection string.
func (c *Connection) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode,
	)
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML config data, fills defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := base()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv fills in empty Connection fields from environment variables.
// YAML values take precedence; env vars are used only as fallback.
func (c *Config) applyEnv() {
	conn := &c.Connection
	if conn.Host == "" {
		conn.Host = envOr("PGHOST", "POSTGRES_HOST")
	}
	if conn.Port == 0 {
		if s := envOr("PGPORT", "POSTGRES_PORT"); s != "" {
			if p, err := strconv.Atoi(s); err == nil {
				conn.Port = p
			}
		}
	}
	if conn.Database == "" {
		conn.Database = envOr("PGDATABASE", "POSTGRES_DB")
	}
	if conn.User == "" {
		conn.User = envOr("PGUSER", "POSTGRES_USER")
	}
	if conn.Password == "" {
		conn.Password = envOr("PGPASSWORD", "POSTGRES_PASSWORD")
	}
	if conn.SSLMode == "" {
		conn.SSLMode = envOr("PGSSLMODE")
	}
}

// envOr returns the first non-empty value from the given env var names.
func envOr(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

func (c *Config) applyDefaults() {
	if c.Source.Type == "" {
		c.Source.Type = SourceCSV
	}
	if c.Source.Path == "" && c.Source.Type == SourceCSV {
		c.Source.Path = "Youtube-Spam-Dataset.csv"
	}
	if c.Source.Table == "" && c.Source.Type == SourcePostgres {
		c.Source.Table = "comments"
	}

	cols := &c.Source.Columns
	def := DefaultColumns(c.Source.Type)
	setDefault(&cols.User, def.User)
	setDefault(&cols.Content, def.Content)
	setDefault(&cols.Video, def.Video)
	setDefault(&cols.Label, def.Label)

	if c.Connection.Port == 0 {
		c.Connection.Port = 5432
	}
	if c.Connection.SSLMode == "" {
		c.Connection.SSLMode = "disable"
	}

	if c.Analysis.Parallelism == 0 {
		c.Analysis.Parallelism = 1
	}
}

// DefaultColumns returns the column names of the YouTube spam collection
// CSV files, or of the table written by the dump command for postgres.
func DefaultColumns(sourceType string) Columns {
	if sourceType == SourcePostgres {
		return Columns{User: "author", Content: "content", Video: "video_name", Label: "class"}
	}
	return Columns{User: "AUTHOR", Content: "CONTENT", Video: "VIDEO_NAME", Label: "CLASS"}
}

// SetSourceType switches the source type. Column names still at the old
// type's defaults are replaced by the new type's defaults.
func (c *Config) SetSourceType(sourceType string) {
	if c.Source.Type == sourceType {
		return
	}
	if c.Source.Columns == DefaultColumns(c.Source.Type) {
		c.Source.Columns = Columns{}
	}
	c.Source.Type = sourceType
	c.applyDefaults()
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}

// Validate checks field constraints and the settings the chosen source needs.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if c.Source.Type == SourcePostgres {
		if err := c.ValidateForPostgres(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForPostgres checks the fields required to read from PostgreSQL.
func (c *Config) ValidateForPostgres() error {
	if c.Connection.Host == "" {
		return fmt.Errorf("connection.host is required")
	}
	if c.Connection.Database == "" {
		return fmt.Errorf("connection.database is required")
	}
	if c.Connection.User == "" {
		return fmt.Errorf("connection.user is required")
	}
	if c.Source.Table == "" {
		return fmt.Errorf("source.table is required")
	}
	return nil
}

func formatValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Namespace())
		switch e.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, e.Param()))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("%s must be %s %s", field, e.Tag(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
