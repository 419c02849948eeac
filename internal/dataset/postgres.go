package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/census/internal/census"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// DBTX is the subset of pgx used by Store.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// txBeginner is implemented by *pgxpool.Pool; Store uses it to make
// Import atomic when it is not already running inside a transaction.
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store keeps the census dataset in a PostgreSQL table.
type Store struct {
	db    DBTX
	table pgx.Identifier
}

// NewStore returns a Store for table, which may be schema-qualified
// ("public.census_records").
func NewStore(db DBTX, table string) *Store {
	return &Store{
		db:    db,
		table: pgx.Identifier(strings.Split(table, ".")),
	}
}

// dbColumns lists the data columns in schema order.
func dbColumns() []string {
	cols := Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.DBColumn()
	}
	return names
}

// EnsureTable creates the table if it does not exist.
func (s *Store) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	age INTEGER NOT NULL,
	workclass TEXT,
	fnlwgt INTEGER NOT NULL,
	education TEXT,
	education_num INTEGER NOT NULL,
	marital_status TEXT,
	occupation TEXT,
	relationship TEXT,
	race TEXT,
	sex TEXT,
	capital_gain INTEGER NOT NULL,
	capital_loss INTEGER NOT NULL,
	hours_per_week INTEGER NOT NULL,
	native_country TEXT,
	salary TEXT
)`, s.table.Sanitize())

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", s.table.Sanitize(), err)
	}
	return nil
}

// copyRow returns the values of r in dbColumns order.
func copyRow(r census.Record) []any {
	return []any{
		r.Age,
		r.Workclass,
		r.Fnlwgt,
		r.Education,
		r.EducationNum,
		r.MaritalStatus,
		r.Occupation,
		r.Relationship,
		r.Race,
		r.Sex,
		r.CapitalGain,
		r.CapitalLoss,
		r.HoursPerWeek,
		r.NativeCountry,
		r.Salary,
	}
}

// Import replaces the table contents with ds using the COPY protocol.
// Returns the number of rows copied.
func (s *Store) Import(ctx context.Context, ds census.Dataset) (int64, error) {
	if b, ok := s.db.(txBeginner); ok {
		tx, err := b.Begin(ctx)
		if err != nil {
			return 0, fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback(ctx) // no-op after commit

		n, err := s.replace(ctx, tx, ds)
		if err != nil {
			return 0, err
		}
		if err := tx.Commit(ctx); err != nil {
			return 0, fmt.Errorf("commit import: %w", err)
		}
		return n, nil
	}
	return s.replace(ctx, s.db, ds)
}

func (s *Store) replace(ctx context.Context, db DBTX, ds census.Dataset) (int64, error) {
	if _, err := db.Exec(ctx, "TRUNCATE "+s.table.Sanitize()); err != nil {
		return 0, fmt.Errorf("truncate %s: %w", s.table.Sanitize(), err)
	}

	n, err := db.CopyFrom(ctx, s.table, dbColumns(), pgx.CopyFromSlice(len(ds), func(i int) ([]any, error) {
		return copyRow(ds[i]), nil
	}))
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", s.table.Sanitize(), err)
	}
	return n, nil
}

// normalize applies the CSV loader's cell cleaning to text scanned from the
// table, so rows written by other tools read the same as imported ones.
func normalize(r census.Record) census.Record {
	clean := func(t pgtype.Text) pgtype.Text {
		if !t.Valid {
			return t
		}
		return ToText(t.String)
	}

	r.Workclass = clean(r.Workclass)
	r.Education = clean(r.Education)
	r.MaritalStatus = clean(r.MaritalStatus)
	r.Occupation = clean(r.Occupation)
	r.Relationship = clean(r.Relationship)
	r.Race = clean(r.Race)
	r.Sex = clean(r.Sex)
	r.NativeCountry = clean(r.NativeCountry)
	if r.Salary.Valid {
		r.Salary = ToSalary(r.Salary.String)
	}
	return r
}

// Load reads the whole table back in insertion order. Text columns are
// cleaned the way ReadCSV cleans cells.
func (s *Store) Load(ctx context.Context) (census.Dataset, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY id",
		strings.Join(dbColumns(), ", "), s.table.Sanitize())

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table.Sanitize(), err)
	}
	defer rows.Close()

	ds := make(census.Dataset, 0)
	for rows.Next() {
		var r census.Record
		if err := rows.Scan(
			&r.Age,
			&r.Workclass,
			&r.Fnlwgt,
			&r.Education,
			&r.EducationNum,
			&r.MaritalStatus,
			&r.Occupation,
			&r.Relationship,
			&r.Race,
			&r.Sex,
			&r.CapitalGain,
			&r.CapitalLoss,
			&r.HoursPerWeek,
			&r.NativeCountry,
			&r.Salary,
		); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(ds)+1, err)
		}
		ds = append(ds, normalize(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.table.Sanitize(), err)
	}
	return ds, nil
}
