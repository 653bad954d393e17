// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package config maps command line flags, environment variables and the
// TOML config file onto typed settings.
package config

import (
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
	"golang.org/x/crypto/bcrypt"
)

// configFile is filled by the --config flag before other sources are read.
var configFile = "config.toml"

var configSource = altsrc.NewStringPtrSourcer(&configFile)

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Seed     SeedConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string
	MaxBodySize int // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

type AuthConfig struct {
	BcryptCost int
	TokenName  string // label stored with every issued token
}

// SeedConfig holds the account the seed command creates.
type SeedConfig struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	CompanyCNPJ   string
	CompanyName   string
}

func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		Auth: AuthConfig{
			BcryptCost: int(cmd.Int("bcrypt-cost")),
			TokenName:  cmd.String("token-name"),
		},
		Seed: SeedConfig{
			AdminName:     cmd.String("seed-admin-name"),
			AdminEmail:    cmd.String("seed-admin-email"),
			AdminPassword: cmd.String("seed-admin-password"),
			CompanyCNPJ:   cmd.String("seed-company-cnpj"),
			CompanyName:   cmd.String("seed-company-name"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}
	if cfg.Server.MaxBodySize < 1 {
		cfg.Server.MaxBodySize = 1
	}
	if cfg.Auth.BcryptCost < bcrypt.MinCost || cfg.Auth.BcryptCost > bcrypt.MaxCost {
		cfg.Auth.BcryptCost = bcrypt.DefaultCost
	}

	return cfg
}

func buildBaseURL(cfg *Config) string {
	host := cfg.Server.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	// Hide the default port in the URL
	if cfg.Server.Port == 80 {
		return fmt.Sprintf("http://%s", host)
	}
	return fmt.Sprintf("http://%s:%d", host, cfg.Server.Port)
}

// sources chains an environment variable with a key in the config file.
func sources(envKey, tomlKey string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(cli.EnvVar(envKey), toml.TOML(tomlKey, configSource))
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Value:       "config.toml",
			Usage:       "Path to configuration file",
			Destination: &configFile,
			Sources:     cli.EnvVars("CONFIG"),
		},
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: sources("HOST", "server.host"),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: sources("PORT", "server.port"),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Base URL for the application",
			Sources: sources("BASE_URL", "server.base_url"),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   1,
			Usage:   "Maximum request body size in MB",
			Sources: sources("MAX_BODY_SIZE", "server.max_body_size"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: sources("LOG_LEVEL", "log.level"),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: sources("LOG_FORMAT", "log.format"),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/app.db",
			Usage:   "Database DSN",
			Sources: sources("DATABASE_DSN", "database.dsn"),
		},
		// Auth flags
		&cli.IntFlag{
			Name:    "bcrypt-cost",
			Value:   bcrypt.DefaultCost,
			Usage:   "bcrypt work factor for password hashes",
			Sources: sources("BCRYPT_COST", "auth.bcrypt_cost"),
		},
		&cli.StringFlag{
			Name:    "token-name",
			Value:   "authToken",
			Usage:   "Name stored with every issued access token",
			Sources: sources("TOKEN_NAME", "auth.token_name"),
		},
		// Seed flags
		&cli.StringFlag{
			Name:    "seed-admin-name",
			Value:   "Admin",
			Usage:   "Name of the seeded admin user",
			Sources: sources("SEED_ADMIN_NAME", "seed.admin_name"),
		},
		&cli.StringFlag{
			Name:    "seed-admin-email",
			Value:   "admin@example.com",
			Usage:   "Email of the seeded admin user",
			Sources: sources("SEED_ADMIN_EMAIL", "seed.admin_email"),
		},
		&cli.StringFlag{
			Name:    "seed-admin-password",
			Usage:   "Password of the seeded admin user (required by the seed command)",
			Sources: sources("SEED_ADMIN_PASSWORD", "seed.admin_password"),
		},
		&cli.StringFlag{
			Name:    "seed-company-cnpj",
			Value:   "12345678000199",
			Usage:   "CNPJ of the seeded company",
			Sources: sources("SEED_COMPANY_CNPJ", "seed.company_cnpj"),
		},
		&cli.StringFlag{
			Name:    "seed-company-name",
			Value:   "Empresa Exemplo",
			Usage:   "Name of the seeded company",
			Sources: sources("SEED_COMPANY_NAME", "seed.company_name"),
		},
	}
}
