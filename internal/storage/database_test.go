package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/examprep/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "questions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.EnsureSchema(ctx))
	require.NoError(t, db.EnsureSchema(ctx))

	var tables int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'questions'`,
	).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 1, tables)
}

func TestOpenCreatesFileAndReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested.db")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	_, err = db.InsertQuestion(ctx, "Q1: What is 2+2?", "4", "Math")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	pairs, err := db.FetchBySubject(ctx, "Math")
	require.NoError(t, err)
	assert.Equal(t, []domain.Pair{{Question: "Q1: What is 2+2?", Answer: "4"}}, pairs)
}

func TestInsertAndFetchBySubject(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	math := []domain.Pair{
		{Question: "Q1: What is 2+2?", Answer: "4"},
		{Question: "Q2: What is 3*3?", Answer: "9"},
		{Question: "Q2: What is 3*3?", Answer: "9"},
	}
	for _, p := range math {
		_, err := db.InsertQuestion(ctx, p.Question, p.Answer, "Math")
		require.NoError(t, err)
	}
	_, err := db.InsertQuestion(ctx, "Q: Capital of France?", "Paris", "Geography")
	require.NoError(t, err)

	got, err := db.FetchBySubject(ctx, "Math")
	require.NoError(t, err)
	assert.ElementsMatch(t, math, got)

	t.Run("subjects are case sensitive", func(t *testing.T) {
		got, err := db.FetchBySubject(ctx, "math")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("unknown subject is not an error", func(t *testing.T) {
		got, err := db.FetchBySubject(ctx, "History")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first, err := db.InsertQuestion(ctx, "Q1", "a", "S")
	require.NoError(t, err)
	second, err := db.InsertQuestion(ctx, "Q1", "a", "S")
	require.NoError(t, err)
	assert.Greater(t, second, first)

	var maxID int64
	require.NoError(t, db.conn.QueryRowContext(ctx, `SELECT MAX(id) FROM questions`).Scan(&maxID))
	assert.Equal(t, second, maxID)
}

func TestInsertQuestionValidation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		question string
		answer   string
		subject  string
		wantErr  bool
	}{
		{name: "complete record", question: "Q1", answer: "A1", subject: "S"},
		{name: "empty answer is stored", question: "Q: trailing", answer: "", subject: "S"},
		{name: "empty question", question: "", answer: "A1", subject: "S", wantErr: true},
		{name: "empty subject", question: "Q1", answer: "A1", subject: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := db.InsertQuestion(ctx, tc.question, tc.answer, tc.subject)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	subjects, err := db.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"S"}, subjects)
}

func TestListSubjectsAndCounts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	subjects, err := db.ListSubjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, subjects)

	for _, s := range []string{"Math", "math", "Math", "Physics"} {
		_, err := db.InsertQuestion(ctx, "Q", "A", s)
		require.NoError(t, err)
	}

	subjects, err = db.ListSubjects(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Math", "math", "Physics"}, subjects)

	counts, err := db.CountBySubject(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Math": 2, "math": 1, "Physics": 1}, counts)
}
