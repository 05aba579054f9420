package ingest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/examprep/internal/logger"
	"github.com/conorfennell/examprep/internal/session"
)

type call struct {
	name    string
	subject string
}

// recordingImporter pretends every document holds two questions, except
// documents whose content says "empty" or "fail".
type recordingImporter struct {
	calls []call
}

func (r *recordingImporter) Import(_ context.Context, doc session.Document, subject string) (session.ImportResult, error) {
	r.calls = append(r.calls, call{name: filepath.Base(doc.Name), subject: subject})
	switch {
	case strings.Contains(string(doc.Data), "fail"):
		return session.ImportResult{Status: session.Saved, Extracted: 2, Saved: 1}, errors.New("disk full")
	case strings.Contains(string(doc.Data), "empty"):
		return session.ImportResult{Status: session.Empty}, nil
	}
	return session.ImportResult{Status: session.Saved, Extracted: 2, Saved: 2}, nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestImportDirUsesParentDirectoryAsSubject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Math", "2023.pdf"), "ok")
	writeFile(t, filepath.Join(root, "Math", "2024.PDF"), "empty")
	writeFile(t, filepath.Join(root, "Physics", "mock.pdf"), "fail")
	writeFile(t, filepath.Join(root, "Physics", "notes.txt"), "ok")
	writeFile(t, filepath.Join(root, ".git", "objects.pdf"), "ok")

	imp := &recordingImporter{}
	report, err := ImportDir(context.Background(), imp, logger.Nop(), root, "")
	require.NoError(t, err)

	assert.ElementsMatch(t, []call{
		{name: "2023.pdf", subject: "Math"},
		{name: "2024.PDF", subject: "Math"},
		{name: "mock.pdf", subject: "Physics"},
	}, imp.calls)
	assert.Equal(t, 3, report.Files)
	assert.Equal(t, 1, report.Empty)
	assert.Equal(t, 3, report.Questions)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0].Error(), "disk full")
}

func TestImportDirExplicitSubject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "one.pdf"), "ok")
	writeFile(t, filepath.Join(root, "b", "two.pdf"), "ok")

	imp := &recordingImporter{}
	_, err := ImportDir(context.Background(), imp, logger.Nop(), root, "Finals")
	require.NoError(t, err)
	for _, c := range imp.calls {
		assert.Equal(t, "Finals", c.subject)
	}
	assert.Len(t, imp.calls, 2)
}

func TestImportDirMissing(t *testing.T) {
	_, err := ImportDir(context.Background(), &recordingImporter{}, logger.Nop(), filepath.Join(t.TempDir(), "missing"), "")
	assert.Error(t, err)
}

func TestImportSourceLocalDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Biology", "paper.pdf"), "ok")

	imp := &recordingImporter{}
	report, err := ImportSource(context.Background(), imp, logger.Nop(), root, t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Files)
	assert.Equal(t, []call{{name: "paper.pdf", subject: "Biology"}}, imp.calls)
}
