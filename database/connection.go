package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config locates the Postgres database holding the reporting tables.
// URL wins over the individual fields when set.
type Config struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// FillFromEnv completes empty fields from the POSTGRES_* environment variables.
func (c *Config) FillFromEnv() {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = os.Getenv(key)
		}
	}
	fill(&c.Host, "POSTGRES_HOST")
	fill(&c.Port, "POSTGRES_PORT")
	fill(&c.User, "POSTGRES_USER")
	fill(&c.Password, "POSTGRES_PASSWORD")
	fill(&c.Name, "POSTGRES_DB")
}

// Configured reports whether enough is known to open a connection.
func (c Config) Configured() bool {
	return c.URL != "" || c.Host != ""
}

func (c Config) ConnString() string {
	if c.URL != "" {
		return c.URL
	}
	port := c.Port
	if port == "" {
		port = "5432"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Host, port, c.User, c.Password, c.Name)
}

// Connect opens a connection pool and checks it with a ping.
func Connect(ctx context.Context, c Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(c.ConnString())
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}
	if c.MaxConns > 0 {
		poolCfg.MaxConns = c.MaxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	slog.Info("connected to database",
		"host", poolCfg.ConnConfig.Host,
		"database", poolCfg.ConnConfig.Database,
		"max_conns", poolCfg.MaxConns)
	return pool, nil
}
