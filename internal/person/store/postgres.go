package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"registru/internal/person/models"
	"registru/internal/person/query"
)

// Postgres persists person records in PostgreSQL. It mirrors the pure query
// package exactly: lower() ordering for names, NULLS LAST / NULLS FIRST for
// birth dates, ILIKE over the four searched fields.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed person store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const personColumns = `id, first_name, last_name, birth_date, cin_series, cin_number,
	id_issue_date, id_expiry_date, address, city, county, national_id,
	email, phone, id_photo_path, notes, created_at, updated_at`

// Create inserts a new record.
func (s *Postgres) Create(ctx context.Context, p *models.Person) error {
	if p == nil {
		return fmt.Errorf("person is required")
	}
	stmt := `
		INSERT INTO people (` + personColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	if _, err := s.db.ExecContext(ctx, stmt, personArgs(p)...); err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

// FindByID retrieves a record by its UUID.
func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Person, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+personColumns+` FROM people WHERE id = $1`, id)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find person by id: %w", err)
	}
	return p, nil
}

// Update locks the row, applies the merge closure, and writes the result in
// one transaction so concurrent partial merges cannot lose fields.
func (s *Postgres) Update(ctx context.Context, id uuid.UUID, apply func(*models.Person) error) (*models.Person, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	row := tx.QueryRowContext(ctx, `SELECT `+personColumns+` FROM people WHERE id = $1 FOR UPDATE`, id)
	p, err := scanPerson(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock person for update: %w", err)
	}

	if err := apply(p); err != nil {
		return nil, err
	}

	updateStmt := `
		UPDATE people
		SET first_name = $2, last_name = $3, birth_date = $4, cin_series = $5,
			cin_number = $6, id_issue_date = $7, id_expiry_date = $8, address = $9,
			city = $10, county = $11, national_id = $12, email = $13, phone = $14,
			id_photo_path = $15, notes = $16, updated_at = $17
		WHERE id = $1
	`
	args := []any{
		p.ID,
		p.FirstName,
		p.LastName,
		nullableDate(p.BirthDate),
		p.CINSeries,
		p.CINNumber,
		nullableDate(p.IDIssueDate),
		nullableDate(p.IDExpiryDate),
		p.Address,
		p.City,
		p.County,
		p.NationalID,
		p.Email,
		p.Phone,
		p.IDPhotoPath,
		p.Notes,
		p.UpdatedAt,
	}
	if _, err := tx.ExecContext(ctx, updateStmt, args...); err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return p, nil
}

// Delete removes a record. Deleting an unknown id reports ErrNotFound.
func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete person rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// List runs the count and page queries inside one repeatable-read
// transaction so the page and total come from a single snapshot.
func (s *Postgres) List(ctx context.Context, params query.Params) ([]*models.Person, int, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("begin list: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // read-only

	where, args := listFilter(params.Q)

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM people`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count people: %w", err)
	}

	stmt := `SELECT ` + personColumns + ` FROM people` + where + listOrder(params) +
		fmt.Sprintf(` LIMIT %d OFFSET %d`, params.PageSize, params.Offset())
	rows, err := tx.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	items := make([]*models.Person, 0, params.PageSize)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan person: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate people: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit list: %w", err)
	}
	return items, total, nil
}

// listFilter builds the WHERE clause for the search term. The four searched
// fields match the query package's Matches.
func listFilter(q string) (string, []any) {
	if q == "" {
		return "", nil
	}
	pattern := "%" + escapeLike(q) + "%"
	where := ` WHERE (first_name ILIKE $1 OR last_name ILIKE $1 OR national_id ILIKE $1 OR cin_number ILIKE $1)`
	return where, []any{pattern}
}

// listOrder builds the ORDER BY clause. Explicit sorts are single-key;
// created_at breaks ties to pin storage order like the memory store does.
func listOrder(params query.Params) string {
	if !params.SortExplicit() {
		return ` ORDER BY lower(last_name) ASC, lower(first_name) ASC, created_at ASC`
	}
	dir := "ASC"
	nulls := "NULLS LAST"
	if params.Desc() {
		dir = "DESC"
		nulls = "NULLS FIRST"
	}
	switch params.Sort {
	case query.SortBirthDate:
		return fmt.Sprintf(` ORDER BY birth_date %s %s, created_at ASC`, dir, nulls)
	case query.SortFirstName:
		return fmt.Sprintf(` ORDER BY lower(first_name) %s, created_at ASC`, dir)
	default:
		return fmt.Sprintf(` ORDER BY lower(last_name) %s, created_at ASC`, dir)
	}
}

// escapeLike neutralizes LIKE metacharacters in user search input.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// personArgs orders field values to match personColumns.
func personArgs(p *models.Person) []any {
	return []any{
		p.ID,
		p.FirstName,
		p.LastName,
		nullableDate(p.BirthDate),
		p.CINSeries,
		p.CINNumber,
		nullableDate(p.IDIssueDate),
		nullableDate(p.IDExpiryDate),
		p.Address,
		p.City,
		p.County,
		p.NationalID,
		p.Email,
		p.Phone,
		p.IDPhotoPath,
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	}
}

func nullableDate(d *models.Date) any {
	if d == nil {
		return nil
	}
	return d.Time()
}

type personRow interface {
	Scan(dest ...any) error
}

func scanPerson(row personRow) (*models.Person, error) {
	var p models.Person
	var birth, issue, expiry sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&birth,
		&p.CINSeries,
		&p.CINNumber,
		&issue,
		&expiry,
		&p.Address,
		&p.City,
		&p.County,
		&p.NationalID,
		&p.Email,
		&p.Phone,
		&p.IDPhotoPath,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.BirthDate = dateFromNull(birth)
	p.IDIssueDate = dateFromNull(issue)
	p.IDExpiryDate = dateFromNull(expiry)
	return &p, nil
}

func dateFromNull(t sql.NullTime) *models.Date {
	if !t.Valid {
		return nil
	}
	d := models.DateOf(t.Time)
	return &d
}
