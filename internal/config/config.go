package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SecretPrefix marks a value that must be resolved through Secret Manager
// before use, e.g. LIBRETRANSLATEKEY=sm://libretranslate-key.
const SecretPrefix = "sm://"

type Config struct {
	ProjectID string `mapstructure:"PROJECTID"`
	Region    string `mapstructure:"REGION"`
	LogLevel  string `mapstructure:"LOGLEVEL"`
	Port      string `mapstructure:"PORT"`

	MediaBucket          string   `mapstructure:"MEDIABUCKET"`
	MediaBaseURL         string   `mapstructure:"MEDIABASEURL"`
	MediaAllowedTypes    []string `mapstructure:"MEDIAALLOWEDTYPES"`
	MediaMaxBytes        int64    `mapstructure:"MEDIAMAXBYTES"`
	DocumentAllowedTypes []string `mapstructure:"DOCUMENTALLOWEDTYPES"`
	DocumentMaxBytes     int64    `mapstructure:"DOCUMENTMAXBYTES"`

	KMSKeyName  string   `mapstructure:"KMSKEYNAME"`
	CORSOrigins []string `mapstructure:"CORSORIGINS"`

	RedisAddr     string `mapstructure:"REDISADDR"`
	RedisPassword string `mapstructure:"REDISPASSWORD"`

	TranslateBudget    int           `mapstructure:"TRANSLATEBUDGET"`
	TranslateTTL       time.Duration `mapstructure:"TRANSLATETTL"`
	TranslateCooldown  time.Duration `mapstructure:"TRANSLATECOOLDOWN"`
	TranslateTimeout   time.Duration `mapstructure:"TRANSLATETIMEOUT"`
	GoogleTranslateURL string        `mapstructure:"GOOGLETRANSLATEURL"`
	MyMemoryURL        string        `mapstructure:"MYMEMORYURL"`
	LibreTranslateURL  string        `mapstructure:"LIBRETRANSLATEURL"`
	LibreTranslateKey  string        `mapstructure:"LIBRETRANSLATEKEY"`
	VertexModel        string        `mapstructure:"VERTEXMODEL"`
}

var defaults = map[string]any{
	"PROJECTID":            "",
	"REGION":               "asia-south1",
	"LOGLEVEL":             "info",
	"PORT":                 "8080",
	"MEDIABUCKET":          "",
	"MEDIABASEURL":         "https://storage.googleapis.com",
	"MEDIAALLOWEDTYPES":    "image/jpeg,image/png,image/jpg,image/webp",
	"MEDIAMAXBYTES":        5 << 20,
	"DOCUMENTALLOWEDTYPES": "image/jpeg,image/png,image/jpg,image/webp,application/pdf",
	"DOCUMENTMAXBYTES":     10 << 20,
	"KMSKEYNAME":           "",
	"CORSORIGINS":          "http://localhost:5173",
	"REDISADDR":            "",
	"REDISPASSWORD":        "",
	"TRANSLATEBUDGET":      30,
	"TRANSLATETTL":         "24h",
	"TRANSLATECOOLDOWN":    "5m",
	"TRANSLATETIMEOUT":     "3s",
	"GOOGLETRANSLATEURL":   "https://translate.googleapis.com/translate_a/single",
	"MYMEMORYURL":          "https://api.mymemory.translated.net/get",
	"LIBRETRANSLATEURL":    "https://libretranslate.com/translate",
	"LIBRETRANSLATEKEY":    "",
	"VERTEXMODEL":          "",
}

// New reads configuration from the environment, falling back to a .env file
// in the working directory when one exists.
func New() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	// every key needs a default so AutomaticEnv picks it up on Unmarshal
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.MediaAllowedTypes = normalizeList(cfg.MediaAllowedTypes)
	cfg.DocumentAllowedTypes = normalizeList(cfg.DocumentAllowedTypes)
	cfg.CORSOrigins = normalizeList(cfg.CORSOrigins)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.ProjectID == "" {
		missing = append(missing, "PROJECTID")
	}
	if c.MediaBucket == "" {
		missing = append(missing, "MEDIABUCKET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.MediaMaxBytes <= 0 || c.DocumentMaxBytes <= 0 {
		return errors.New("MEDIAMAXBYTES and DOCUMENTMAXBYTES must be positive")
	}
	if c.TranslateBudget <= 0 {
		return errors.New("TRANSLATEBUDGET must be positive")
	}
	return nil
}

// SecretFields returns the configuration values that may hold a Secret
// Manager reference.
func (c *Config) SecretFields() []*string {
	return []*string{&c.LibreTranslateKey, &c.RedisPassword}
}

// normalizeList splits comma separated entries that arrive as a single
// element and drops blanks.
func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
