package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "ARTICLES"

type Config struct {
	Addr            string        `mapstructure:"addr"`
	DiagAddr        string        `mapstructure:"diag_addr"`
	BasePath        string        `mapstructure:"base_path"`
	Routes          bool          `mapstructure:"routes"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	Log struct {
		Development bool `mapstructure:"development"`
	} `mapstructure:"log"`

	Store struct {
		Backend  string        `mapstructure:"backend"`
		URI      string        `mapstructure:"uri"`
		Database string        `mapstructure:"database"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"store"`
}

// Flags returns the command line flags understood by Load.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("articles", pflag.ContinueOnError)
	fs.String("addr", ":3333", "application address")
	fs.String("diag_addr", ":9999", "diagnostics address serving /metrics")
	fs.String("base_path", "/api", "path the resource routes are mounted under")
	fs.Bool("routes", false, "Generate router documentation")
	fs.String("config", "", "path to a config file")
	fs.String("store.backend", "mongo", "store backend: mongo, sqlite, postgres or memory")
	fs.String("store.uri", "mongodb://localhost:27017", "store connection uri or dsn")

	return fs
}

// Load resolves configuration from defaults, an optional config file,
// ARTICLES_* environment variables and flags, in increasing precedence.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetDefault("addr", ":3333")
	v.SetDefault("diag_addr", ":9999")
	v.SetDefault("base_path", "/api")
	v.SetDefault("routes", false)
	v.SetDefault("shutdown_timeout", "10s")
	v.SetDefault("log.development", false)
	v.SetDefault("store.backend", "mongo")
	v.SetDefault("store.uri", "mongodb://localhost:27017")
	v.SetDefault("store.database", "articles")
	v.SetDefault("store.timeout", "5s")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	switch cfg.Store.Backend {
	case "mongo", "sqlite", "postgres", "memory":
	default:
		return nil, errors.New("unknown store backend: " + cfg.Store.Backend)
	}

	return &cfg, nil
}
