package trivia

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestNormalizeDecodesEntities(t *testing.T) {
	records := []RawRecord{
		{
			Question:         "Who said &quot;Veni, vidi, vici&quot;?",
			CorrectAnswer:    "Julius Caesar",
			IncorrectAnswers: []string{"Nero", "Augustus", "Cicero &amp; Cato"},
		},
	}

	qs, err := Normalize(records, testRand())
	require.NoError(t, err)
	require.Len(t, qs, 1)

	q := qs[0]
	assert.Equal(t, "1", q.ID())
	assert.Equal(t, `Who said "Veni, vidi, vici"?`, q.Text())
	assert.Equal(t, "Julius Caesar", q.CorrectAnswer())
	assert.ElementsMatch(t, []string{"Julius Caesar", "Nero", "Augustus", "Cicero & Cato"}, q.Answers())
}

func TestNormalizeDecodesCorrectAnswer(t *testing.T) {
	records := []RawRecord{
		{
			Question:         "Pick one",
			CorrectAnswer:    "Fran&ccedil;ois &#039;I&#039;",
			IncorrectAnswers: []string{"Henri"},
		},
	}

	qs, err := Normalize(records, testRand())
	require.NoError(t, err)
	assert.Equal(t, "François 'I'", qs[0].CorrectAnswer())
	assert.True(t, qs[0].HasAnswer("François 'I'"))
}

func TestNormalizeAssignsPositionalIDs(t *testing.T) {
	records := make([]RawRecord, 5)
	for i := range records {
		records[i] = RawRecord{Question: "Q", CorrectAnswer: "True", IncorrectAnswers: []string{"False"}}
	}

	qs, err := Normalize(records, testRand())
	require.NoError(t, err)
	for i, q := range qs {
		assert.Equal(t, []string{"1", "2", "3", "4", "5"}[i], q.ID())
	}
}

func TestNormalizeAnswerSetProperties(t *testing.T) {
	records := []RawRecord{
		{Question: "Boolean", CorrectAnswer: "False", IncorrectAnswers: []string{"True"}},
		{Question: "Multiple", CorrectAnswer: "1066", IncorrectAnswers: []string{"1067", "1166", "966"}},
	}

	qs, err := Normalize(records, testRand())
	require.NoError(t, err)

	tests := []struct {
		idx  int
		want int
	}{
		{0, 2},
		{1, 4},
	}
	for _, tt := range tests {
		q := qs[tt.idx]
		answers := q.Answers()
		assert.Len(t, answers, tt.want)
		assert.Contains(t, answers, q.CorrectAnswer())

		seen := map[string]bool{}
		for _, a := range answers {
			assert.False(t, seen[a], "duplicate answer %q", a)
			seen[a] = true
		}
	}
}

func TestNormalizeDeterministicWithSameSeed(t *testing.T) {
	records := []RawRecord{
		{Question: "Q", CorrectAnswer: "A", IncorrectAnswers: []string{"B", "C", "D"}},
	}

	a, err := Normalize(records, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)
	b, err := Normalize(records, rand.New(rand.NewPCG(7, 7)))
	require.NoError(t, err)

	assert.Equal(t, a[0].Answers(), b[0].Answers())
}

func TestNormalizeShufflesUniformlyEnough(t *testing.T) {
	records := []RawRecord{
		{Question: "Q", CorrectAnswer: "A", IncorrectAnswers: []string{"B", "C", "D"}},
	}
	rng := testRand()

	positions := make([]int, 4)
	for range 4000 {
		qs, err := Normalize(records, rng)
		require.NoError(t, err)
		for i, a := range qs[0].Answers() {
			if a == "A" {
				positions[i]++
			}
		}
	}

	for i, n := range positions {
		assert.InDelta(t, 1000, n, 150, "correct answer at position %d", i)
	}
}

func TestAnswerOrderStable(t *testing.T) {
	records := []RawRecord{
		{Question: "Q", CorrectAnswer: "A", IncorrectAnswers: []string{"B", "C", "D"}},
	}
	qs, err := Normalize(records, testRand())
	require.NoError(t, err)

	q := qs[0]
	first := q.Answers()
	for range 10 {
		assert.Equal(t, first, q.Answers())
	}

	// Mutating the returned slice must not leak into the question.
	first[0] = "tampered"
	assert.NotEqual(t, "tampered", q.Answer(0))
}

func TestNormalizeMalformedFailsBatch(t *testing.T) {
	tests := []struct {
		name   string
		record RawRecord
	}{
		{"missing question", RawRecord{CorrectAnswer: "A", IncorrectAnswers: []string{"B"}}},
		{"missing correct", RawRecord{Question: "Q", IncorrectAnswers: []string{"B"}}},
		{"missing incorrect", RawRecord{Question: "Q", CorrectAnswer: "A"}},
		{"empty incorrect", RawRecord{Question: "Q", CorrectAnswer: "A", IncorrectAnswers: []string{""}}},
		{"duplicate after decode", RawRecord{Question: "Q", CorrectAnswer: "A&amp;B", IncorrectAnswers: []string{"A&B"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			good := RawRecord{Question: "ok", CorrectAnswer: "yes", IncorrectAnswers: []string{"no"}}
			qs, err := Normalize([]RawRecord{good, tt.record}, testRand())
			require.Error(t, err)
			assert.Nil(t, qs)

			var me *MalformedDataError
			require.ErrorAs(t, err, &me)
			assert.Equal(t, 1, me.Index)
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	qs, err := Normalize(nil, testRand())
	require.NoError(t, err)
	assert.Empty(t, qs)
}

func TestNewQuestionValidation(t *testing.T) {
	_, err := NewQuestion("1", "Q", "A", []string{"B", "C"})
	assert.Error(t, err)

	_, err = NewQuestion("1", "Q", "A", []string{"A", "A"})
	assert.Error(t, err)

	q, err := NewQuestion("1", "Q", "A", []string{"B", "A"})
	require.NoError(t, err)
	assert.True(t, q.IsCorrect("A"))
	assert.False(t, q.IsCorrect("B"))
	assert.Equal(t, 2, q.NumAnswers())
}
