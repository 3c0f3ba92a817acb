package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type TwoFAConfig struct {
	Issuer       string `yaml:"issuer"`
	TempTokenTTL string `yaml:"temp_token_ttl"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	TwoFA    TwoFAConfig    `yaml:"two_fa"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port            string
	GinMode         string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	TwoFAIssuer     string
	TempTokenTTL    time.Duration
	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the YAML config file and applies environment overrides for
// deployment secrets. The file path itself can be overridden with CONFIG_PATH.
func Load() (*Config, error) {
	configFile, err := loadConfigFile(env("CONFIG_PATH", "config/config.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	refTTL, err := time.ParseDuration(configFile.JWT.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT refresh TTL: %w", err)
	}

	tempTTL, err := time.ParseDuration(configFile.TwoFA.TempTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid temporary token TTL: %w", err)
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		AccessTTL:       accTTL,
		RefreshTTL:      refTTL,
		TwoFAIssuer:     configFile.TwoFA.Issuer,
		TempTokenTTL:    tempTTL,
		CasbinModelPath: configFile.Casbin.ModelPath,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
