// Package ingest imports every PDF found under a directory or a git
// repository of past papers.
package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/examprep/internal/gitsource"
	"github.com/conorfennell/examprep/internal/logger"
	"github.com/conorfennell/examprep/internal/session"
)

// Importer is the single-document import flow.
type Importer interface {
	Import(ctx context.Context, doc session.Document, subject string) (session.ImportResult, error)
}

// Report summarises a batch import.
type Report struct {
	Files     int
	Empty     int
	Questions int
	Errors    []error
}

// ImportSource imports source, cloning or pulling it under reposDir first
// when it is a git URL.
func ImportSource(ctx context.Context, imp Importer, log *logger.Logger, source, reposDir, subject string) (Report, error) {
	dir := source
	if gitsource.IsGitURL(source) {
		localPath, err := gitsource.LocalPath(reposDir, source)
		if err != nil {
			return Report{}, err
		}
		if err := os.MkdirAll(filepath.Dir(localPath), os.ModePerm); err != nil {
			return Report{}, fmt.Errorf("failed to create repos directory: %w", err)
		}
		if err := gitsource.Sync(ctx, log, source, localPath); err != nil {
			return Report{}, err
		}
		dir = localPath
	}
	return ImportDir(ctx, imp, log, dir, subject)
}

// ImportDir walks dir and imports every .pdf file. With an empty subject
// each file is filed under the name of its parent directory. A file that
// fails is recorded in the report and the walk carries on.
func ImportDir(ctx context.Context, imp Importer, log *logger.Logger, dir, subject string) (Report, error) {
	var report Report

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".pdf") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := os.ReadFile(path)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Errorf("reading %s: %w", path, err))
			return nil
		}

		fileSubject := subject
		if fileSubject == "" {
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			fileSubject = filepath.Base(filepath.Dir(abs))
		}

		report.Files++
		res, err := imp.Import(ctx, session.Document{Name: path, Data: data}, fileSubject)
		report.Questions += res.Saved
		if err != nil {
			report.Errors = append(report.Errors, fmt.Errorf("importing %s: %w", path, err))
			return nil
		}
		if res.Status == session.Empty {
			report.Empty++
		}
		return nil
	})
	if walkErr != nil {
		return report, fmt.Errorf("error walking directory %s: %w", dir, walkErr)
	}

	log.Info("batch import complete",
		"path", dir,
		"files", report.Files,
		"questions", report.Questions,
		"empty", report.Empty,
		"errors", len(report.Errors),
	)
	return report, nil
}
