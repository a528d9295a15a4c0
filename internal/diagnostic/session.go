// internal/diagnostic/session.go
package diagnostic

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedQuestion = errors.New("answer does not match the current question")
	ErrSessionComplete    = errors.New("session is complete")
	ErrSessionIncomplete  = errors.New("session is not complete")
)

// State is the answer-collection state: answering question Index, or Complete.
type State struct {
	Index    int  `json:"index"`
	Complete bool `json:"complete"`
}

// Results is what a completed session produces.
type Results struct {
	Scores          Scores           `json:"scores"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Session walks a respondent through the catalog one question at a time.
// It is owned by a single caller and is not safe for concurrent use.
type Session struct {
	catalog   Catalog
	questions []IndexedQuestion
	answers   AnswerSet
	index     int
	complete  bool
}

// NewSession starts at the first question with no answers.
func NewSession(catalog Catalog) (*Session, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &Session{
		catalog:   catalog,
		questions: catalog.Questions(),
		answers:   make(AnswerSet),
	}, nil
}

func (s *Session) State() State {
	return State{Index: s.index, Complete: s.complete}
}

// Current is the question being answered. It stays on the last question once complete.
func (s *Session) Current() IndexedQuestion {
	return s.questions[s.index]
}

func (s *Session) TotalQuestions() int { return len(s.questions) }

// Answered counts recorded answers, which may exceed the current index after GoBack.
func (s *Session) Answered() int { return len(s.answers) }

// Answers returns a copy of the recorded answers.
func (s *Session) Answers() AnswerSet {
	out := make(AnswerSet, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

// Answer records value for the current question and advances, or completes on the last question.
func (s *Session) Answer(questionID string, value int) error {
	if s.complete {
		return ErrSessionComplete
	}
	q := s.questions[s.index]
	if q.ID != questionID {
		return fmt.Errorf("%w: got %q, want %q", ErrUnexpectedQuestion, questionID, q.ID)
	}
	if !q.HasOption(value) {
		return fmt.Errorf("%w: %s=%d", ErrInvalidAnswer, questionID, value)
	}

	s.answers[questionID] = value
	if s.index < len(s.questions)-1 {
		s.index++
	} else {
		s.complete = true
	}
	return nil
}

// GoBack returns to the previous question. Recorded answers are kept.
func (s *Session) GoBack() bool {
	if s.complete || s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Retake clears every answer and starts over.
func (s *Session) Retake() {
	s.answers = make(AnswerSet)
	s.index = 0
	s.complete = false
}

// Results scores the answers and derives recommendations. Only available once complete.
func (s *Session) Results() (*Results, error) {
	if !s.complete {
		return nil, ErrSessionIncomplete
	}
	scores, err := ScoreAnswers(s.answers, s.catalog)
	if err != nil {
		return nil, err
	}
	recs, err := Recommend(scores)
	if err != nil {
		return nil, err
	}
	return &Results{Scores: scores, Recommendations: recs}, nil
}
