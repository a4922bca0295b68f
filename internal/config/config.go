package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// placeholderKey is shipped in sample env files and means "no key".
const placeholderKey = "sk-test-key-placeholder"

type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		CORSOrigins []string `yaml:"corsOrigins"`
		// TrustProxy honours forwarding headers for client addresses.
		TrustProxy bool `yaml:"trustProxy"`
		// RateLimit applies per client IP to the expensive endpoints.
		RateLimit struct {
			PerMinute int `yaml:"perMinute"`
			Burst     int `yaml:"burst"`
		} `yaml:"rateLimit"`
	} `yaml:"server"`

	Database struct {
		Driver   string `yaml:"driver"`
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
		PublicURL  string `yaml:"publicURL"`
	} `yaml:"minio"`

	Storage struct {
		Dir     string `yaml:"dir"`
		BaseURL string `yaml:"baseURL"`
	} `yaml:"storage"`

	OpenAI struct {
		APIKey      string        `yaml:"apiKey"`
		Model       string        `yaml:"model"`
		BaseURL     string        `yaml:"baseURL"`
		Timeout     time.Duration `yaml:"timeout"`
		MaxTokens   int           `yaml:"maxTokens"`
		Temperature float32       `yaml:"temperature"`
	} `yaml:"openai"`

	Upload struct {
		MaxFileMB int `yaml:"maxFileMB"`
		MaxFiles  int `yaml:"maxFiles"`
	} `yaml:"upload"`

	OCR struct {
		Enabled  bool   `yaml:"enabled"`
		Binary   string `yaml:"binary"`
		Language string `yaml:"language"`
	} `yaml:"ocr"`

	Fixtures struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"fixtures"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns the configuration used for keys the file leaves out.
func Default() *Config {
	var c Config
	c.Server.Port = 8080
	c.Server.CORSOrigins = []string{"http://localhost:3000"}
	c.Server.RateLimit.PerMinute = 30
	c.Server.RateLimit.Burst = 5
	c.Database.Driver = DriverMySQL
	c.Database.Host = "127.0.0.1"
	c.Database.Port = 3306
	c.Database.User = "schouw"
	c.Database.Name = "schouw"
	c.Database.SSLMode = "disable"
	c.Minio.BucketName = "schouw"
	c.Minio.Region = "us-east-1"
	c.Storage.Dir = "uploads"
	c.Storage.BaseURL = "/uploads"
	c.OpenAI.Model = "gpt-4o-mini"
	c.OpenAI.Timeout = 60 * time.Second
	c.OpenAI.MaxTokens = 4000
	c.OpenAI.Temperature = 0.2
	c.Upload.MaxFileMB = 10
	c.Upload.MaxFiles = 20
	c.OCR.Binary = "tesseract"
	c.OCR.Language = "nld"
	c.Log.Level = "info"
	return &c
}

// Load baca file config.yaml di atas default, lalu .env dan environment.
// File yang tidak ada tidak dianggap error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "parse %s", path)
		}
	case !os.IsNotExist(err):
		return nil, errors.Wrapf(err, "read %s", path)
	}

	// .env opsional, variabel yang sudah ada tidak ditimpa
	_ = godotenv.Load()
	cfg.applyEnv(os.LookupEnv)
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := lookup(key); ok {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	num("PORT", &c.Server.Port)
	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		c.Server.CORSOrigins = strings.Split(v, ",")
	}
	flag("TRUST_PROXY", &c.Server.TrustProxy)
	str("DATABASE_DRIVER", &c.Database.Driver)
	str("DB_HOST", &c.Database.Host)
	num("DB_PORT", &c.Database.Port)
	str("DB_USER", &c.Database.User)
	str("DB_PASSWORD", &c.Database.Password)
	str("DB_NAME", &c.Database.Name)
	flag("MINIO_ENABLED", &c.Minio.Enabled)
	str("MINIO_ENDPOINT", &c.Minio.Endpoint)
	str("MINIO_ACCESS_KEY", &c.Minio.AccessKey)
	str("MINIO_SECRET_KEY", &c.Minio.SecretKey)
	str("OPENAI_API_KEY", &c.OpenAI.APIKey)
	str("OPENAI_MODEL", &c.OpenAI.Model)
	flag("OCR_ENABLED", &c.OCR.Enabled)
	flag("FIXTURES_ENABLED", &c.Fixtures.Enabled)
	str("LOG_LEVEL", &c.Log.Level)
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Minio.Enabled && c.Minio.Endpoint == "" {
		return errors.New("minio enabled without endpoint")
	}
	if c.Upload.MaxFileMB <= 0 || c.Upload.MaxFiles <= 0 {
		return errors.New("upload limits must be positive")
	}
	return nil
}

// HasOpenAI reports whether a usable API key is configured.
func (c *Config) HasOpenAI() bool {
	k := strings.TrimSpace(c.OpenAI.APIKey)
	return k != "" && k != placeholderKey
}

// MaxFileSize is the per-file upload limit in bytes.
func (c *Config) MaxFileSize() int64 { return int64(c.Upload.MaxFileMB) << 20 }

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection URL.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}
