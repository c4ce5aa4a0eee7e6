package trivia

import (
	"errors"
	"fmt"
	"html"
	"math/rand/v2"
	"strconv"
)

// Normalize decodes raw provider records into Questions. Each question's
// answers are shuffled exactly once using rng. A record with missing
// fields fails the whole batch with a *MalformedDataError.
func Normalize(records []RawRecord, rng *rand.Rand) ([]Question, error) {
	questions := make([]Question, 0, len(records))
	for i, rec := range records {
		q, err := normalizeRecord(i, rec, rng)
		if err != nil {
			return nil, &MalformedDataError{Index: i, Err: err}
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func normalizeRecord(i int, rec RawRecord, rng *rand.Rand) (Question, error) {
	if rec.Question == "" {
		return Question{}, errors.New("missing question")
	}
	if rec.CorrectAnswer == "" {
		return Question{}, errors.New("missing correct_answer")
	}
	if len(rec.IncorrectAnswers) == 0 {
		return Question{}, errors.New("missing incorrect_answers")
	}

	correct := html.UnescapeString(rec.CorrectAnswer)
	answers := make([]string, 0, len(rec.IncorrectAnswers)+1)
	answers = append(answers, correct)
	for j, a := range rec.IncorrectAnswers {
		if a == "" {
			return Question{}, fmt.Errorf("empty incorrect_answers[%d]", j)
		}
		answers = append(answers, html.UnescapeString(a))
	}

	rng.Shuffle(len(answers), func(a, b int) {
		answers[a], answers[b] = answers[b], answers[a]
	})

	return NewQuestion(strconv.Itoa(i+1), html.UnescapeString(rec.Question), correct, answers)
}
