package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

// Public holds settings that are safe to log or expose.
type Public struct {
	ListenAddr     string   `yaml:"listen_addr"`
	TemplatePath   string   `yaml:"template_path"`
	StaticPath     string   `yaml:"static_path"`
	LogLevel       string   `yaml:"log_level"`
	LogJSON        bool     `yaml:"log_json"`
	SecureCookies  bool     `yaml:"secure_cookies"`
	SessionTTLDays int      `yaml:"session_ttl_days"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	Pg             Pg       `yaml:"pg"`
}

// SessionTTL is the lifetime of the signin cookie and its token.
func (p Public) SessionTTL() time.Duration {
	return time.Duration(p.SessionTTLDays) * 24 * time.Hour
}

type Pg struct {
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	User   string `yaml:"user"`
	Dbname string `yaml:"dbname"`
}

type Private struct {
	PgPassword string `yaml:"pg_password"`
	JwtKey     string `yaml:"jwt_key"`
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	return &Config{public, private}
}
