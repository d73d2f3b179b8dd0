// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage backend selectors.
const (
	BackendSQLite = "sqlite"
	BackendDynamo = "dynamo"
)

// Config is the full runtime configuration of the storefront.
type Config struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
	RunLocal   bool   `env:"RUN_LOCAL" envDefault:"false"`

	// Backend picks the storage implementation: sqlite or dynamo.
	Backend    string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"storefront.db"`

	CustomersTable string `env:"CUSTOMERS_TABLE" envDefault:"Customers"`
	ProductsTable  string `env:"PRODUCTS_TABLE" envDefault:"Products"`
	CartsTable     string `env:"CARTS_TABLE" envDefault:"Carts"`
	OrdersTable    string `env:"ORDERS_TABLE" envDefault:"Orders"`
	ReviewsTable   string `env:"REVIEWS_TABLE" envDefault:"Reviews"`

	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"12h"`
	MetricsEnabled bool          `env:"METRICS_ENABLED" envDefault:"false"`
}

// Load parses the environment and validates the backend selector.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Backend != BackendSQLite && cfg.Backend != BackendDynamo {
		return cfg, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	return cfg, nil
}
