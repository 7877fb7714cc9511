package bankx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arhyth/bankx"
)

func TestLoadConfig(t *testing.T) {
	t.Run("fills defaults on empty input", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)

		cfg, err := bankx.LoadConfig(strings.NewReader(""))
		reqrd.Nil(err)
		as.Equal(":3000", cfg.Server.Addr)
		as.Equal("postgres", cfg.Database.Driver)
		as.Equal("EUR", cfg.Ledger.Currency)
		as.Equal(2*time.Second, cfg.Transfer.LockTimeout)
		as.Equal("bankx.transfers", cfg.Events.Subject)
	})

	t.Run("keeps configured values", func(tt *testing.T) {
		as := assert.New(tt)
		reqrd := require.New(tt)
		yml := `
server:
  addr: ":8080"
database:
  driver: memory
ledger:
  currency: USD
  snowflake_node: 7
transfer:
  lock_timeout: 750ms
limits:
  transfer: 4
`
		cfg, err := bankx.LoadConfig(strings.NewReader(yml))
		reqrd.Nil(err)
		as.Equal(":8080", cfg.Server.Addr)
		as.Equal("memory", cfg.Database.Driver)
		as.Equal("USD", cfg.Ledger.Currency)
		as.Equal(int64(7), cfg.Ledger.SnowflakeNode)
		as.Equal(750*time.Millisecond, cfg.Transfer.LockTimeout)
		as.Equal(int64(4), cfg.Limits.Transfer)
		as.Equal(int64(32), cfg.Limits.Lifecycle)
	})

	t.Run("returns error on malformed yaml", func(tt *testing.T) {
		as := assert.New(tt)
		_, err := bankx.LoadConfig(strings.NewReader("server: [unclosed"))
		as.NotNil(err)
	})
}
