package internal

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/DrGermanius/Reconciler/internal/model"
	"github.com/DrGermanius/Reconciler/internal/retry"
)

const (
	RunAddress  = "RUN_ADDRESS"
	DatabaseURI = "DATABASE_URI"
	ConfigFile  = "CONFIG_FILE"
	AdminSecret = "ADMIN_SECRET"

	AccountingURL    = "ACCOUNTING_URL"
	AccountingAPIKey = "ACCOUNTING_API_KEY"
	WarehouseURL     = "WAREHOUSE_URL"
	WarehouseAPIKey  = "WAREHOUSE_API_KEY"

	RetryMaxRetries = "RETRY_MAX_RETRIES"
	RetryBaseDelay  = "RETRY_BASE_DELAY"
)

const (
	defaultRunAddress = "localhost:8080"
	defaultTimeout    = 10 * time.Second
)

const (
	host     = "localhost"
	port     = 5432
	user     = "postgres"
	password = "12345"
)

type DownstreamConfig struct {
	URL     string        `yaml:"url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

type RetryConfig struct {
	MaxRetries int           `yaml:"max_retries"`
	BaseDelay  time.Duration `yaml:"base_delay"`
	MaxDelay   time.Duration `yaml:"max_delay"`
}

type AuditConfig struct {
	MaxPayloadBytes int `yaml:"max_payload_bytes"`
}

type Config struct {
	RunAddress  string `yaml:"run_address"`
	DatabaseURI string `yaml:"database_uri"`
	AdminSecret string `yaml:"admin_secret"`

	Accounting DownstreamConfig `yaml:"accounting"`
	Warehouse  DownstreamConfig `yaml:"warehouse"`
	Retry      RetryConfig      `yaml:"retry"`
	Audit      AuditConfig      `yaml:"audit"`
}

// Capabilities tells which downstream integrations may be called. It is computed once
// per notification.
type Capabilities struct {
	Accounting bool
	Warehouse  bool
}

func (c Capabilities) Has(t model.Target) bool {
	switch t {
	case model.TargetAccounting:
		return c.Accounting
	case model.TargetWarehouse:
		return c.Warehouse
	}
	return false
}

// NewConfig reads the optional YAML file named by CONFIG_FILE, applies environment
// overrides and binds the result to command line flags.
func NewConfig() (*Config, error) {
	c, err := LoadConfig(setEnvOrDefault(ConfigFile, ""))
	if err != nil {
		return nil, err
	}

	flag.StringVar(&c.RunAddress, "a", c.RunAddress, "host to listen on")
	flag.StringVar(&c.DatabaseURI, "d", c.DatabaseURI, "postgres connection path")
	flag.StringVar(&c.Accounting.URL, "accounting", c.Accounting.URL, "accounting system address")
	flag.StringVar(&c.Warehouse.URL, "warehouse", c.Warehouse.URL, "warehouse system address")
	flag.Parse()

	return c, nil
}

// LoadConfig builds the configuration from defaults, the YAML file at path (if any) and
// environment variables, in that order of precedence.
func LoadConfig(path string) (*Config, error) {
	defaultConn := fmt.Sprintf("host=%s port=%d user=%s "+
		"password=%s sslmode=disable", // database=reconciler
		host, port, user, password)

	c := &Config{
		RunAddress:  defaultRunAddress,
		DatabaseURI: defaultConn,
		Accounting:  DownstreamConfig{Timeout: defaultTimeout},
		Warehouse:   DownstreamConfig{Timeout: defaultTimeout},
		Retry: RetryConfig{
			MaxRetries: retry.DefaultMaxRetries,
			BaseDelay:  retry.DefaultBaseDelay,
			MaxDelay:   retry.DefaultMaxDelay,
		},
		Audit: AuditConfig{MaxPayloadBytes: DefaultMaxPayloadBytes},
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err = yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	c.RunAddress = setEnvOrDefault(RunAddress, c.RunAddress)
	c.DatabaseURI = setEnvOrDefault(DatabaseURI, c.DatabaseURI)
	c.AdminSecret = setEnvOrDefault(AdminSecret, c.AdminSecret)
	c.Accounting.URL = setEnvOrDefault(AccountingURL, c.Accounting.URL)
	c.Accounting.APIKey = setEnvOrDefault(AccountingAPIKey, c.Accounting.APIKey)
	c.Warehouse.URL = setEnvOrDefault(WarehouseURL, c.Warehouse.URL)
	c.Warehouse.APIKey = setEnvOrDefault(WarehouseAPIKey, c.Warehouse.APIKey)

	if v, ok := os.LookupEnv(RetryMaxRetries); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", RetryMaxRetries, err)
		}
		c.Retry.MaxRetries = n
	}
	if v, ok := os.LookupEnv(RetryBaseDelay); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", RetryBaseDelay, err)
		}
		c.Retry.BaseDelay = d
	}

	return c, nil
}

// IsAccountingConfigured is a pure configuration check, no network call.
func (c Config) IsAccountingConfigured() bool {
	return c.Accounting.URL != "" && c.Accounting.APIKey != ""
}

// IsWarehouseConfigured is a pure configuration check, no network call.
func (c Config) IsWarehouseConfigured() bool {
	return c.Warehouse.URL != "" && c.Warehouse.APIKey != ""
}

func (c Config) Capabilities() Capabilities {
	return Capabilities{
		Accounting: c.IsAccountingConfigured(),
		Warehouse:  c.IsWarehouseConfigured(),
	}
}

func (c Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxRetries: c.Retry.MaxRetries,
		BaseDelay:  c.Retry.BaseDelay,
		MaxDelay:   c.Retry.MaxDelay,
		Jitter:     retry.DefaultJitter,
	}
}

func setEnvOrDefault(env, def string) string {
	res, e := os.LookupEnv(env)
	if !e {
		res = def
	}
	return res
}
