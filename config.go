package bankx

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr            string        `yaml:"addr"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Database struct {
		Driver           string `yaml:"driver"`
		ConnectionString string `yaml:"conn_str"`
	} `yaml:"database"`
	Ledger struct {
		Currency      string `yaml:"currency"`
		IBANCountry   string `yaml:"iban_country"`
		IBANBankCode  string `yaml:"iban_bank_code"`
		SnowflakeNode int64  `yaml:"snowflake_node"`
	} `yaml:"ledger"`
	Transfer struct {
		LockTimeout time.Duration `yaml:"lock_timeout"`
	} `yaml:"transfer"`
	Limits struct {
		Transfer       int64         `yaml:"transfer"`
		Lifecycle      int64         `yaml:"lifecycle"`
		AcquireTimeout time.Duration `yaml:"acquire_timeout"`
	} `yaml:"limits"`
	Breaker struct {
		MaxRequests  uint32        `yaml:"max_requests"`
		Interval     time.Duration `yaml:"interval"`
		Timeout      time.Duration `yaml:"timeout"`
		MinRequests  uint32        `yaml:"min_requests"`
		FailureRatio float64       `yaml:"failure_ratio"`
	} `yaml:"breaker"`
	Auth struct {
		PublicKeyPath string `yaml:"public_key_path"`
	} `yaml:"auth"`
	Events struct {
		NatsURL string `yaml:"nats_url"`
		Subject string `yaml:"subject"`
	} `yaml:"events"`
}

// LoadConfig decodes YAML from r and fills every unset field with its
// default.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return nil, err
	}
	cfg.Defaults()
	return &cfg, nil
}

func (c *Config) Defaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":3000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Ledger.Currency == "" {
		c.Ledger.Currency = "EUR"
	}
	if c.Ledger.IBANCountry == "" {
		c.Ledger.IBANCountry = "NL"
	}
	if c.Ledger.IBANBankCode == "" {
		c.Ledger.IBANBankCode = "BANX"
	}
	if c.Ledger.SnowflakeNode == 0 {
		c.Ledger.SnowflakeNode = 1
	}
	if c.Transfer.LockTimeout == 0 {
		c.Transfer.LockTimeout = 2 * time.Second
	}
	if c.Limits.Transfer == 0 {
		c.Limits.Transfer = 64
	}
	if c.Limits.Lifecycle == 0 {
		c.Limits.Lifecycle = 32
	}
	if c.Limits.AcquireTimeout == 0 {
		c.Limits.AcquireTimeout = 500 * time.Millisecond
	}
	if c.Breaker.MaxRequests == 0 {
		c.Breaker.MaxRequests = 3
	}
	if c.Breaker.Interval == 0 {
		c.Breaker.Interval = 30 * time.Second
	}
	if c.Breaker.Timeout == 0 {
		c.Breaker.Timeout = 10 * time.Second
	}
	if c.Breaker.MinRequests == 0 {
		c.Breaker.MinRequests = 5
	}
	if c.Breaker.FailureRatio == 0 {
		c.Breaker.FailureRatio = 0.6
	}
	if c.Events.Subject == "" {
		c.Events.Subject = "bankx.transfers"
	}
}
