package trivia

import (
	"fmt"
	"slices"
)

// Difficulty is the provider's difficulty filter. The zero value means
// "no filter".
type Difficulty string

const (
	DifficultyUnset  Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty parses a difficulty name. "", "any" and "unset" map to
// DifficultyUnset.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "", "any", "unset":
		return DifficultyUnset, nil
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return DifficultyUnset, fmt.Errorf("invalid difficulty %q: must be easy, medium or hard", s)
}

// String returns the display name, "any" for the unset difficulty.
func (d Difficulty) String() string {
	if d == DifficultyUnset {
		return "any"
	}
	return string(d)
}

// QuestionType selects multiple-choice or true/false questions.
type QuestionType string

const (
	TypeMultiple QuestionType = "multiple"
	TypeBoolean  QuestionType = "boolean"
)

// ParseQuestionType parses a question type name.
func ParseQuestionType(s string) (QuestionType, error) {
	switch s {
	case "multiple":
		return TypeMultiple, nil
	case "boolean":
		return TypeBoolean, nil
	}
	return "", fmt.Errorf("invalid question type %q: must be multiple or boolean", s)
}

// Label returns the human-readable name of the question type.
func (t QuestionType) Label() string {
	if t == TypeBoolean {
		return "True / False"
	}
	return "Multiple Choice"
}

const (
	MinAmount = 1
	MaxAmount = 20
)

// Request is the filter tuple for one batch of questions.
type Request struct {
	Amount     int
	Difficulty Difficulty
	Type       QuestionType
}

// WithDifficulty returns a copy of r with the difficulty replaced.
func (r Request) WithDifficulty(d Difficulty) Request {
	r.Difficulty = d
	return r
}

// Validate checks the request against the provider's accepted ranges.
func (r Request) Validate() error {
	if r.Amount < MinAmount || r.Amount > MaxAmount {
		return fmt.Errorf("amount %d out of range %d-%d", r.Amount, MinAmount, MaxAmount)
	}
	if _, err := ParseDifficulty(string(r.Difficulty)); err != nil {
		return err
	}
	if _, err := ParseQuestionType(string(r.Type)); err != nil {
		return err
	}
	return nil
}

// RawRecord is one entry of the provider's "results" array, still
// HTML-entity encoded.
type RawRecord struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// Question is a decoded question with its answer order fixed at
// construction. It is immutable; the zero value is not useful.
type Question struct {
	id      string
	text    string
	correct string
	answers []string
}

// NewQuestion builds a Question with the given answer order. The correct
// answer must appear exactly once in answers and answers must be unique.
func NewQuestion(id, text, correct string, answers []string) (Question, error) {
	if text == "" {
		return Question{}, fmt.Errorf("question %s: empty text", id)
	}
	if correct == "" {
		return Question{}, fmt.Errorf("question %s: empty correct answer", id)
	}
	seen := make(map[string]bool, len(answers))
	for _, a := range answers {
		if seen[a] {
			return Question{}, fmt.Errorf("question %s: duplicate answer %q", id, a)
		}
		seen[a] = true
	}
	if !seen[correct] {
		return Question{}, fmt.Errorf("question %s: correct answer missing from answers", id)
	}
	return Question{
		id:      id,
		text:    text,
		correct: correct,
		answers: slices.Clone(answers),
	}, nil
}

// ID returns the 1-based position of the question within its batch.
func (q Question) ID() string { return q.id }

// Text returns the decoded question text.
func (q Question) Text() string { return q.text }

// CorrectAnswer returns the decoded correct answer.
func (q Question) CorrectAnswer() string { return q.correct }

// Answers returns the display order of the answers. Every call returns
// the same order.
func (q Question) Answers() []string { return slices.Clone(q.answers) }

// NumAnswers returns the number of answers.
func (q Question) NumAnswers() int { return len(q.answers) }

// Answer returns the i-th answer in display order.
func (q Question) Answer(i int) string { return q.answers[i] }

// HasAnswer reports whether a is one of the question's answers.
func (q Question) HasAnswer(a string) bool { return slices.Contains(q.answers, a) }

// IsCorrect reports whether a is the correct answer.
func (q Question) IsCorrect(a string) bool { return a == q.correct }

// LoadResult is the outcome of a Loader cascade.
type LoadResult struct {
	Questions []Question

	// Requested is the request the cascade started from.
	Requested Request

	// UsedDifficulty is the difficulty the questions were fetched with;
	// DifficultyUnset when the filter was dropped.
	UsedDifficulty Difficulty

	// Degraded is true when the questions came from a fallback attempt,
	// or when every attempt came back empty.
	Degraded bool
}

// Empty reports whether the cascade produced no questions.
func (r LoadResult) Empty() bool { return len(r.Questions) == 0 }
