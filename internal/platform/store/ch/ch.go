// Package ch is the ClickHouse client used for append only analytics tables
package ch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures the client. URL is a clickhouse:// DSN.
type Config struct {
	URL          string
	Database     string
	MaxOpenConns int
	Role         string
	Tag          string
}

// CH wraps a native protocol connection pool
type CH struct {
	conn driver.Conn
}

var openConn = clickhouse.Open

// Open parses the DSN and dials. Database overrides the DSN path when set.
func Open(ctx context.Context, cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("ch: parse dsn: %w", err)
	}
	if cfg.Database != "" {
		opts.Auth.Database = cfg.Database
	}
	if cfg.MaxOpenConns > 0 {
		opts.MaxOpenConns = cfg.MaxOpenConns
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, cfg.Tag)

	conn, err := openConn(opts)
	if err != nil {
		return nil, fmt.Errorf("ch: open: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ch: ping: %w", err)
	}
	return &CH{conn: conn}, nil
}

// Ping checks the server answers
func (c *CH) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return errors.New("ch: not connected")
	}
	return c.conn.Ping(ctx)
}

// Exec runs a statement with no result set
func (c *CH) Exec(ctx context.Context, sql string, args ...any) error {
	return c.conn.Exec(ctx, sql, args...)
}

// Query runs a select
func (c *CH) Query(ctx context.Context, sql string, args ...any) (driver.Rows, error) {
	return c.conn.Query(ctx, sql, args...)
}

// Insert appends rows to table in one native batch. Every row must have
// one value per column.
func (c *CH) Insert(ctx context.Context, table string, columns []string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	stmt, err := insertSQL(table, columns)
	if err != nil {
		return err
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return fmt.Errorf("ch: row %d has %d values, want %d", i, len(r), len(columns))
		}
	}

	batch, err := c.conn.PrepareBatch(ctx, stmt)
	if err != nil {
		return fmt.Errorf("ch: prepare %s: %w", table, err)
	}
	for _, r := range rows {
		if err := batch.Append(r...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("ch: append %s: %w", table, err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("ch: send %s: %w", table, err)
	}
	return nil
}

// Close releases the pool; nil safe
func (c *CH) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func insertSQL(table string, columns []string) (string, error) {
	if !ident(table) {
		return "", fmt.Errorf("ch: bad table name %q", table)
	}
	if len(columns) == 0 {
		return "", errors.New("ch: insert needs columns")
	}
	for _, c := range columns {
		if !ident(c) {
			return "", fmt.Errorf("ch: bad column name %q", c)
		}
	}
	return "INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ")", nil
}

// ident accepts [A-Za-z_][A-Za-z0-9_]* optionally qualified by one dot
func ident(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for i, r := range p {
			switch {
			case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			case i > 0 && r >= '0' && r <= '9':
			default:
				return false
			}
		}
	}
	return true
}
