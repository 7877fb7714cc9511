package bankx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5"
)

// LocalHelper applies and removes the schema under dir, for local setups and
// database tests.
type LocalHelper struct {
	Conn *pgx.Conn
	dir  string
}

func NewLocalHelper(cfg *Config, dir string) (*LocalHelper, error) {
	conn, err := pgx.Connect(context.Background(), cfg.Database.ConnectionString)
	if err != nil {
		return nil, err
	}
	return &LocalHelper{
		Conn: conn,
		dir:  dir,
	}, nil
}

// InitDB applies init_db.sql and returns the matching teardown.
func (lh *LocalHelper) InitDB() (func(), error) {
	if err := lh.execFile("init_db.sql"); err != nil {
		return nil, err
	}
	return lh.teardownDB(), nil
}

func (lh *LocalHelper) execFile(name string) error {
	bits, err := os.ReadFile(filepath.Join(lh.dir, name))
	if err != nil {
		return err
	}
	_, err = lh.Conn.Exec(context.Background(), string(bits))
	return err
}

func (lh *LocalHelper) teardownDB() func() {
	return func() {
		defer lh.Conn.Close(context.Background())

		if err := lh.execFile("teardown_db.sql"); err != nil {
			fmt.Fprintf(os.Stderr, "DB cleanup exec teardown sql: %s", err.Error())
		}
	}
}

func (lh *LocalHelper) Close() error {
	return lh.Conn.Close(context.Background())
}
