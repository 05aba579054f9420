package gitsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/examprep/internal/logger"
)

func TestIsGitURL(t *testing.T) {
	testCases := map[string]bool{
		"https://github.com/org/papers.git": true,
		"git@github.com:org/papers.git":     true,
		"/srv/papers.git":                   true,
		"./papers":                          false,
		"/home/me/exams":                    false,
	}
	for source, want := range testCases {
		assert.Equal(t, want, IsGitURL(source), source)
	}
}

func TestLocalPath(t *testing.T) {
	testCases := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{url: "https://github.com/org/papers.git", want: filepath.Join("repos", "github.com", "org", "papers")},
		{url: "http://example.com/exams", want: filepath.Join("repos", "example.com", "exams")},
		{url: "git@github.com:org/papers.git", want: filepath.Join("repos", "github.com", "org", "papers")},
		{url: "/srv/papers.git", want: filepath.Join("repos", "local", "papers")},
		{url: "not a url", wantErr: true},
		{url: "ftp://example.com/papers.git", wantErr: true},
		{url: "https://h/../../x.git", wantErr: true},
		{url: "https://h/..", wantErr: true},
		{url: "git@h:../../x.git", wantErr: true},
		{url: "/srv/...git", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			got, err := LocalPath("repos", tc.url)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// initRepo creates a local repository with one committed file.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "paper.pdf"), []byte("%PDF-1.4\n"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("paper.pdf")
	require.NoError(t, err)
	_, err = wt.Commit("add paper", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir
}

func TestSyncClonesThenPulls(t *testing.T) {
	remote := initRepo(t)
	local := filepath.Join(t.TempDir(), "checkout")
	ctx := context.Background()

	require.NoError(t, Sync(ctx, logger.Nop(), remote, local))
	assert.FileExists(t, filepath.Join(local, "paper.pdf"))

	// Second sync pulls and finds nothing new.
	require.NoError(t, Sync(ctx, logger.Nop(), remote, local))
}
