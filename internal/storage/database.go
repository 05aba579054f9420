package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/conorfennell/examprep/internal/domain"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn     *sql.DB
	validate *validator.Validate
}

// Open creates a new database connection and ensures the schema is up to date.
// The database file is created if it does not exist.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn, validate: validator.New()}
	if err := db.EnsureSchema(context.Background()); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// EnsureSchema creates the questions table if it doesn't exist.
// It is safe to call on every startup.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// InsertQuestion appends one record and returns its assigned id.
// Each insert commits on its own.
func (db *DB) InsertQuestion(ctx context.Context, question, answer, subject string) (int64, error) {
	rec := domain.QuestionRecord{Question: question, Answer: answer, Subject: subject}
	if err := db.validate.Struct(rec); err != nil {
		return 0, fmt.Errorf("invalid question record: %w", err)
	}

	res, err := db.conn.ExecContext(ctx, `
		INSERT INTO questions (question, answer, subject)
		VALUES (?, ?, ?)
	`, rec.Question, rec.Answer, rec.Subject)
	if err != nil {
		return 0, fmt.Errorf("failed to insert question for subject %q: %w", subject, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for subject %q: %w", subject, err)
	}
	return id, nil
}

// FetchBySubject returns all pairs stored under subject in insertion order.
// An unknown subject yields an empty result.
func (db *DB) FetchBySubject(ctx context.Context, subject string) ([]domain.Pair, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT question, answer
		FROM questions WHERE subject = ?
		ORDER BY id
	`, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions for subject %q: %w", subject, err)
	}
	defer rows.Close()

	pairs := []domain.Pair{}
	for rows.Next() {
		var p domain.Pair
		if err := rows.Scan(&p.Question, &p.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan question row for subject %q: %w", subject, err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions for subject %q: %w", subject, err)
	}
	return pairs, nil
}

// ListSubjects returns the distinct subject labels currently stored.
// The order is whatever SQLite returns.
func (db *DB) ListSubjects(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx, `SELECT DISTINCT subject FROM questions`)
	if err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan subject row: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// CountBySubject returns the number of stored questions per subject.
func (db *DB) CountBySubject(ctx context.Context) (map[string]int, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT subject, COUNT(*)
		FROM questions
		GROUP BY subject
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions by subject: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			subject string
			n       int
		)
		if err := rows.Scan(&subject, &n); err != nil {
			return nil, fmt.Errorf("failed to scan subject count row: %w", err)
		}
		counts[subject] = n
	}
	return counts, rows.Err()
}
