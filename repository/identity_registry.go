package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/goccy/go-json"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	_ "modernc.org/sqlite"

	"github.com/Aashish23092/ocr-document-verifier/dto"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

var ErrIdentityNotFound = errors.New("identity not found in registry")

var sqlOpen = sql.Open

// Open connects to the registry database through an otelsql-wrapped driver.
// driver is "sqlite" (modernc, pure Go) or "pgx" (PostgreSQL).
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var system string
	switch driver {
	case DriverSQLite:
		system = "sqlite"
	case DriverPostgres:
		system = "postgresql"
	default:
		return nil, fmt.Errorf("unsupported registry driver: %s", driver)
	}

	driverName, err := otelsql.Register(driver, otelsql.WithAttributes(semconv.DBSystemKey.String(system)))
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if driver == DriverSQLite {
		// one connection keeps ":memory:" databases shared and avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// IdentityRegistry looks up registered people by Aadhaar or PAN number.
// It never writes outside Migrate and Seed.
type IdentityRegistry struct {
	db     *sql.DB
	driver string
}

func NewIdentityRegistry(db *sql.DB, driver string) *IdentityRegistry {
	return &IdentityRegistry{db: db, driver: driver}
}

var migrationSteps = []string{
	`CREATE TABLE IF NOT EXISTS identities (
  name           TEXT NOT NULL DEFAULT '',
  dob            TEXT NOT NULL DEFAULT '',
  aadhaar_number TEXT NOT NULL DEFAULT '',
  pan_number     TEXT NOT NULL DEFAULT '',
  gender         TEXT NOT NULL DEFAULT '',
  father_name    TEXT NOT NULL DEFAULT '',
  roll_number    TEXT NOT NULL DEFAULT '',
  total_marks    TEXT NOT NULL DEFAULT ''
)`,
	`CREATE INDEX IF NOT EXISTS idx_identities_aadhaar ON identities (aadhaar_number)`,
	`CREATE INDEX IF NOT EXISTS idx_identities_pan ON identities (pan_number)`,
}

// Migrate creates the identities table and its lookup indexes
func (r *IdentityRegistry) Migrate(ctx context.Context) error {
	for _, step := range migrationSteps {
		if _, err := r.db.ExecContext(ctx, step); err != nil {
			return fmt.Errorf("registry migration failed: %w", err)
		}
	}
	return nil
}

// Seed replaces the registry contents with ids in a single transaction
func (r *IdentityRegistry) Seed(ctx context.Context, ids []dto.Identity) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM identities"); err != nil {
		return fmt.Errorf("clear identities: %w", err)
	}

	q := r.rebind(`INSERT INTO identities
  (name, dob, aadhaar_number, pan_number, gender, father_name, roll_number, total_marks)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, q,
			id.Name, id.DOB, id.AadhaarNumber, id.PANNumber,
			id.Gender, id.FatherName, id.RollNumber, id.TotalMarks,
		); err != nil {
			return fmt.Errorf("insert identity %q: %w", id.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	log.Printf("Identity registry seeded with %d entries", len(ids))
	return nil
}

// FindByAadhaar returns the entry registered under a "dddd dddd dddd" number.
// The lookup key is cleared from the returned identity.
func (r *IdentityRegistry) FindByAadhaar(ctx context.Context, number string) (*dto.Identity, error) {
	id, err := r.findOne(ctx, "aadhaar_number", number)
	if err != nil {
		return nil, err
	}
	id.AadhaarNumber = ""
	return id, nil
}

// FindByPAN returns the entry registered under a PAN. The PAN is cleared from the result.
func (r *IdentityRegistry) FindByPAN(ctx context.Context, pan string) (*dto.Identity, error) {
	id, err := r.findOne(ctx, "pan_number", pan)
	if err != nil {
		return nil, err
	}
	id.PANNumber = ""
	return id, nil
}

// findOne only receives column names from this file
func (r *IdentityRegistry) findOne(ctx context.Context, column, value string) (*dto.Identity, error) {
	q := r.rebind(`SELECT name, dob, aadhaar_number, pan_number, gender, father_name, roll_number, total_marks
FROM identities
WHERE ` + column + ` = ?
LIMIT 1`)

	var id dto.Identity
	err := r.db.QueryRowContext(ctx, q, value).Scan(
		&id.Name,
		&id.DOB,
		&id.AadhaarNumber,
		&id.PANNumber,
		&id.Gender,
		&id.FatherName,
		&id.RollNumber,
		&id.TotalMarks,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIdentityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("registry lookup by %s: %w", column, err)
	}
	return &id, nil
}

// rebind turns ? placeholders into $n for PostgreSQL
func (r *IdentityRegistry) rebind(q string) string {
	if r.driver != DriverPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, c := range q {
		if c == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// LoadSeedFile reads a JSON array of identities
func LoadSeedFile(path string) ([]dto.Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var ids []dto.Identity
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	return ids, nil
}
