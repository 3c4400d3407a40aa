package datalake

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// SQLSource reads payloads from a table with the columns
// (company, data_type, layer, payload). It never writes.
type SQLSource struct {
	db      *sql.DB
	backend schema.SourceBackend
	query   string
	target  string
}

var _ contract.PayloadSource = &SQLSource{} // Compile-time check

// NewSQLSource connects to the given backend and verifies the connection.
func NewSQLSource(ctx context.Context, backend schema.SourceBackend, connStr, tableName string) (*SQLSource, error) {
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	var driverName string
	target := connStr
	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		if connStr == "" {
			connStr = contract.GetDatalakeDBFilePath()
		}
		target = connStr
	case schema.MySQLBackend:
		// user:password@tcp(host:port)/dbname
		driverName = "mysql"
		target = "mysql"
	case schema.PostgreSQLBackend:
		// host=localhost port=5432 user=postgres dbname=datalake
		driverName = "pgx"
		target = "postgresql"
	default:
		return nil, fmt.Errorf("unsupported SQL backend: %s. Must be sqlite, mysql, or postgresql", backend)
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s DataLake: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s DataLake. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	return &SQLSource{
		db:      db,
		backend: backend,
		query:   selectQuery(tableName, backend),
		target:  target + "/" + tableName,
	}, nil
}

// Fetch returns the stored payload of one domain.
func (s *SQLSource) Fetch(ctx context.Context, company string, domain schema.Domain, layer schema.Layer) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, s.query, company, string(domain), string(layer)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrNotFound, company, domain, layer)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s payload of %s: %w", domain, company, err)
	}
	return DecodeText(data)
}

// Describe returns the backend and table of the source.
func (s *SQLSource) Describe() string {
	return string(s.backend) + ":" + s.target
}

// Close closes the database connection.
func (s *SQLSource) Close() error {
	return s.db.Close()
}

func selectQuery(tableName string, backend schema.SourceBackend) string {
	quoted := quoteTableName(tableName, backend)
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf(`SELECT payload FROM %s WHERE company = $1 AND data_type = $2 AND layer = $3`, quoted)
	}
	return fmt.Sprintf(`SELECT payload FROM %s WHERE company = ? AND data_type = ? AND layer = ?`, quoted)
}

// validateTableName guards the only identifier interpolated into SQL.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.SourceBackend) string {
	if backend == schema.MySQLBackend {
		return fmt.Sprintf("`%s`", name)
	}
	return fmt.Sprintf("\"%s\"", name)
}
