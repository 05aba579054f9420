package domain

// Pair is a single question with its expected answer, as extracted from a
// document and as presented during a quiz.
type Pair struct {
	Question string
	Answer   string
}

// QuestionRecord is a stored pair filed under a subject label.
// Subjects are free text and compared case-sensitively.
type QuestionRecord struct {
	ID       int64
	Question string `validate:"required"`
	Answer   string
	Subject  string `validate:"required"`
}
