// config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type SourceConfig struct {
	BaseURL    string `yaml:"base_url"`
	ReportPath string `yaml:"report_path"`
	TimeoutStr string `yaml:"timeout"`

	Timeout time.Duration `yaml:"-"` // parsed from TimeoutStr
}

type CacheConfig struct {
	Backend string `yaml:"backend"` // "file" (default) or "mysql"
	Dir     string `yaml:"dir"`     // root directory for the file backend
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Cache    CacheConfig    `yaml:"cache"`
	Database DatabaseConfig `yaml:"database"`
}

var AppConfig = Defaults()

// Defaults returns the built-in configuration: the JHU CSSE daily report
// repository on GitHub and a local file cache.
func Defaults() Config {
	return Config{
		Source: SourceConfig{
			BaseURL:    "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master",
			ReportPath: "/csse_covid_19_data/csse_covid_19_daily_reports/",
			Timeout:    30 * time.Second,
		},
		Cache: CacheConfig{
			Backend: "file",
			Dir:     "cache",
		},
		Database: DatabaseConfig{
			Host:   "127.0.0.1",
			Port:   "3306",
			User:   "covid",
			DBName: "covidtracker",
		},
	}
}

// LoadConfig populates AppConfig from an optional YAML file and the
// environment. When configPath is empty the standard locations are
// tried; a missing file leaves the defaults in place.
func LoadConfig(configPath string) error {
	AppConfig = Defaults()

	// .env is optional and only carries environment overrides such as
	// database credentials.
	_ = godotenv.Load()

	if configPath == "" {
		for _, p := range []string{"config.yaml", "config/config.yaml"} {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}
	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		if err := yaml.Unmarshal(file, &AppConfig); err != nil {
			return fmt.Errorf("failed to unmarshal config %s: %w", configPath, err)
		}
	}

	if AppConfig.Source.TimeoutStr != "" {
		d, err := time.ParseDuration(AppConfig.Source.TimeoutStr)
		if err != nil {
			return fmt.Errorf("failed to parse source timeout %q: %w", AppConfig.Source.TimeoutStr, err)
		}
		AppConfig.Source.Timeout = d
	} else if AppConfig.Source.Timeout == 0 {
		AppConfig.Source.Timeout = 30 * time.Second
	}

	applyEnvOverrides()

	switch AppConfig.Cache.Backend {
	case "", "file", "mysql":
	default:
		return fmt.Errorf("unknown cache backend %q (expected \"file\" or \"mysql\")", AppConfig.Cache.Backend)
	}
	return nil
}

func applyEnvOverrides() {
	overrides := []struct {
		env string
		dst *string
	}{
		{"DB_HOST", &AppConfig.Database.Host},
		{"DB_PORT", &AppConfig.Database.Port},
		{"DB_USER", &AppConfig.Database.User},
		{"DB_PASSWORD", &AppConfig.Database.Password},
		{"DB_NAME", &AppConfig.Database.DBName},
		{"CACHE_DIR", &AppConfig.Cache.Dir},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}
