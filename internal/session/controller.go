// Package session orchestrates the two user flows: importing a PDF of
// questions under a subject, and starting a shuffled quiz over a subject.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/conorfennell/examprep/internal/domain"
	"github.com/conorfennell/examprep/internal/extract"
	"github.com/conorfennell/examprep/internal/logger"
	"github.com/conorfennell/examprep/internal/pdftext"
	"github.com/conorfennell/examprep/internal/quiz"
)

var (
	// ErrMissingInput means a required subject or document was not supplied.
	ErrMissingInput = errors.New("missing input")
	// ErrNotPDF means the uploaded document is not a PDF.
	ErrNotPDF = errors.New("document is not a PDF")
	// ErrStorage wraps failures of the underlying question store.
	ErrStorage = errors.New("storage error")
)

// Store is the persistence the controller needs.
type Store interface {
	InsertQuestion(ctx context.Context, question, answer, subject string) (int64, error)
	FetchBySubject(ctx context.Context, subject string) ([]domain.Pair, error)
	ListSubjects(ctx context.Context) ([]string, error)
	CountBySubject(ctx context.Context) (map[string]int, error)
}

// Document is an uploaded file.
type Document struct {
	Name string
	Data []byte
}

// ImportStatus tells the caller which message to show after an import.
type ImportStatus int

const (
	// Skipped: no document or no subject, nothing was done.
	Skipped ImportStatus = iota
	// Empty: the document held no questions.
	Empty
	// Saved: every extracted question was stored.
	Saved
)

// ImportResult reports the outcome of Import.
type ImportResult struct {
	Status    ImportStatus
	Subject   string
	Extracted int
	Saved     int
	Size      string
}

// SubjectSummary is a subject label with its number of stored questions.
type SubjectSummary struct {
	Name      string
	Questions int
}

// Controller wires the store, the PDF text reader and the extractor together.
type Controller struct {
	store Store
	text  pdftext.Reader
	log   *logger.Logger

	// newRand returns the source used to shuffle each quiz; nil means the
	// global source.
	newRand func() *rand.Rand
}

// New creates a Controller. A nil logger discards output.
func New(store Store, text pdftext.Reader, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{store: store, text: text, log: log}
}

// Import extracts question/answer pairs from doc and stores them under
// subject. Inserts are not atomic: if storage fails part way, the questions
// saved so far stay saved and the error wraps ErrStorage.
func (c *Controller) Import(ctx context.Context, doc Document, subject string) (ImportResult, error) {
	res := ImportResult{Status: Skipped, Subject: subject}
	if len(doc.Data) == 0 || subject == "" {
		return res, nil
	}
	res.Size = humanize.Bytes(uint64(len(doc.Data)))

	if !pdftext.IsPDF(doc.Data) {
		return res, fmt.Errorf("%w: %s", ErrNotPDF, doc.Name)
	}

	text, err := c.text.Text(ctx, doc.Data)
	if err != nil {
		return res, fmt.Errorf("failed to read text from %s: %w", doc.Name, err)
	}

	pairs := extract.Extract(text)
	res.Extracted = len(pairs)
	if len(pairs) == 0 {
		res.Status = Empty
		c.log.Info("no questions found", "document", doc.Name, "size", res.Size, "subject", subject)
		return res, nil
	}

	for i, p := range pairs {
		if _, err := c.store.InsertQuestion(ctx, p.Question, p.Answer, subject); err != nil {
			c.log.Error("import interrupted", "document", doc.Name, "subject", subject, "saved", res.Saved, "error", err)
			return res, fmt.Errorf("%w: insert question %d of %d: %w", ErrStorage, i+1, len(pairs), err)
		}
		res.Saved++
	}

	res.Status = Saved
	c.log.Info("questions imported",
		"document", doc.Name,
		"size", res.Size,
		"subject", subject,
		"extracted", res.Extracted,
	)
	return res, nil
}

// StartQuiz fetches the subject's questions, shuffles them into a new run
// and starts it. Every call re-fetches and re-shuffles.
func (c *Controller) StartQuiz(ctx context.Context, subject string) (*quiz.Run, error) {
	if subject == "" {
		return nil, ErrMissingInput
	}
	pairs, err := c.store.FetchBySubject(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	var rng *rand.Rand
	if c.newRand != nil {
		rng = c.newRand()
	}
	run := quiz.NewRun(pairs, rng)
	if err := run.Start(); err != nil {
		return nil, err
	}
	c.log.Debug("quiz started", "subject", subject, "questions", run.Len())
	return run, nil
}

// Subjects lists every subject with at least one stored question, sorted
// by name.
func (c *Controller) Subjects(ctx context.Context) ([]SubjectSummary, error) {
	names, err := c.store.ListSubjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	counts, err := c.store.CountBySubject(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	out := make([]SubjectSummary, 0, len(names))
	for _, name := range names {
		out = append(out, SubjectSummary{Name: name, Questions: counts[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
