package web

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/google/uuid"

	"github.com/conorfennell/examprep/internal/logger"
	"github.com/conorfennell/examprep/internal/quiz"
	"github.com/conorfennell/examprep/internal/session"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// Server holds the dependencies for the HTTP server.
type Server struct {
	ctrl      *session.Controller
	log       *logger.Logger
	router    *http.ServeMux
	templates *template.Template
	maxUpload int64
	runs      *runTable
}

// NewServer creates and configures a new server. maxUpload caps the size of
// an uploaded PDF in bytes.
func NewServer(ctrl *session.Controller, log *logger.Logger, maxUpload int64) (*Server, error) {
	tpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		ctrl:      ctrl,
		log:       log,
		router:    http.NewServeMux(),
		templates: tpl,
		maxUpload: maxUpload,
		runs:      newRunTable(defaultRunTTL, defaultMaxRuns),
	}
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() error {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return err
	}

	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	s.router.HandleFunc("GET /{$}", s.handleIndex())

	// HTMX fragments
	s.router.HandleFunc("POST /import", s.handlePostImport())
	s.router.HandleFunc("GET /subjects", s.handleGetSubjects())
	s.router.HandleFunc("POST /quiz", s.handlePostQuiz())
	s.router.HandleFunc("POST /quiz/{id}/answer", s.handlePostAnswer())
	return nil
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("failed to render template", "template", name, "error", err)
	}
}

// handleIndex renders the upload form and the subject selector.
func (s *Server) handleIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjects, err := s.ctrl.Subjects(r.Context())
		if err != nil {
			s.log.Error("failed to list subjects", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.render(w, "index", map[string]any{"Subjects": subjects})
	}
}

// handleGetSubjects re-renders the subject selector.
func (s *Server) handleGetSubjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subjects, err := s.ctrl.Subjects(r.Context())
		if err != nil {
			s.log.Error("failed to list subjects", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		s.render(w, "subject_list", map[string]any{"Subjects": subjects})
	}
}

// handlePostImport extracts and stores the questions of an uploaded PDF.
// A request missing the file or the subject does nothing.
func (s *Server) handlePostImport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
		if err := r.ParseMultipartForm(s.maxUpload); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				http.Error(w, "File too large", http.StatusRequestEntityTooLarge)
				return
			}
			if !errors.Is(err, http.ErrNotMultipart) {
				http.Error(w, "Invalid upload", http.StatusBadRequest)
				return
			}
		}

		subject := r.FormValue("subject")
		file, header, err := r.FormFile("pdf")
		if err != nil || subject == "" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Invalid upload", http.StatusBadRequest)
			return
		}

		res, err := s.ctrl.Import(r.Context(), session.Document{Name: header.Filename, Data: data}, subject)
		switch {
		case errors.Is(err, session.ErrNotPDF):
			http.Error(w, "Please upload a PDF file", http.StatusBadRequest)
			return
		case err != nil:
			s.log.Error("import failed", "document", header.Filename, "subject", subject, "error", err)
			http.Error(w, "Failed to import questions", http.StatusInternalServerError)
			return
		case res.Status == session.Skipped:
			w.WriteHeader(http.StatusNoContent)
			return
		}
		s.render(w, "import_result", res)
	}
}

// handlePostQuiz starts a new shuffled run over the selected subject.
func (s *Server) handlePostQuiz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := r.PostFormValue("subject")
		run, err := s.ctrl.StartQuiz(r.Context(), subject)
		if errors.Is(err, session.ErrMissingInput) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if err != nil {
			s.log.Error("failed to start quiz", "subject", subject, "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		id := uuid.NewString()
		if run.State() != quiz.Completed {
			s.runs.add(id, run)
		}
		s.renderStep(w, id, run, nil)
	}
}

// handlePostAnswer scores the submitted answer and shows the next question
// or the final score.
func (s *Server) handlePostAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		run, fb, ok, err := s.runs.submit(id, r.PostFormValue("answer"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		s.renderStep(w, id, run, &fb)
	}
}

func (s *Server) renderStep(w http.ResponseWriter, id string, run *quiz.Run, fb *quiz.Feedback) {
	data := map[string]any{
		"ID":       id,
		"Feedback": fb,
		"Score":    run.Score(),
	}
	if p, ok := run.Current(); ok {
		data["Prompt"] = p
	}
	s.render(w, "quiz_step", data)
}
