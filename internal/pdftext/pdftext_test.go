package pdftext

import (
	"context"
	"os/exec"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/examprep/internal/pdftext/pdftest"
)

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF(pdftest.Build("Q1: What is 2+2?", "4")))
	assert.False(t, IsPDF([]byte("Q1: What is 2+2?\n4\n")))
	assert.False(t, IsPDF(nil))
}

func TestNew(t *testing.T) {
	r, err := New(KindNative)
	require.NoError(t, err)
	assert.IsType(t, Native{}, r)

	r, err = New(KindPdftotext)
	require.NoError(t, err)
	assert.Equal(t, Poppler{Bin: "pdftotext"}, r)

	_, err = New("ocr")
	assert.Error(t, err)
}

func TestNativeText(t *testing.T) {
	text, err := Native{}.Text(context.Background(), pdftest.Build("Q1: What is 2+2?", "4", "Q2: Capital of France?", "Paris"))
	require.NoError(t, err)
	assert.Equal(t, "Q1: What is 2+2?\n4\nQ2: Capital of France?\nParis", text)
}

func TestRowsOrdering(t *testing.T) {
	texts := []pdf.Text{
		{X: 72, Y: 700, S: "4"},
		{X: 80, Y: 720.2, S: "b"},
		{X: 72, Y: 720, S: "a"},
		{X: 80, Y: 719.8, S: "c"},
	}
	assert.Equal(t, []string{"abc", "4"}, rows(texts))
}

func TestNativeTextRejectsGarbage(t *testing.T) {
	_, err := Native{}.Text(context.Background(), []byte("not a pdf"))
	assert.Error(t, err)
}

func TestPopplerText(t *testing.T) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		t.Skip("pdftotext not installed")
	}
	text, err := Poppler{Bin: "pdftotext"}.Text(context.Background(), pdftest.Build("Q: Capital of France?", "Paris"))
	require.NoError(t, err)
	assert.Contains(t, text, "Capital of France?")
}

func TestPopplerMissingBinary(t *testing.T) {
	_, err := Poppler{Bin: "examprep-no-such-binary"}.Text(context.Background(), pdftest.Build("Q"))
	assert.Error(t, err)
}
