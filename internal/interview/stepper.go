// Package interview holds the client-side state of one mock interview:
// which question is showing, the candidate's transcript and the feedback.
package interview

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/codegenius/internal/question"
	"github.com/abhisek/codegenius/internal/speech"
)

// minTranscriptChars is the shortest trimmed transcript worth grading.
const minTranscriptChars = 3

// LoadingText is shown while no question is available.
const LoadingText = "Loading question..."

// Validation errors. Their messages are shown to the candidate verbatim.
var (
	ErrNoTranscript = errors.New("Please record your answer before submitting (speak for at least a few words).")
	ErrNoQuestions  = errors.New("Questions not loaded. Please try again or check backend.")
)

// Stepper walks a fixed, ordered question sequence. Stepping wraps around
// at both ends and clears the answer state.
type Stepper struct {
	questions  []question.Question
	index      int
	transcript string
	feedback   string
	speaker    speech.Speaker
}

// NewStepper creates an empty stepper. A nil speaker disables speech.
func NewStepper(speaker speech.Speaker) *Stepper {
	if speaker == nil {
		speaker = speech.NewNoOp(nil)
	}
	return &Stepper{speaker: speaker}
}

// Load replaces the question sequence and starts from the first question.
func (s *Stepper) Load(qs []question.Question) {
	s.questions = append([]question.Question(nil), qs...)
	s.index = 0
	s.reset()
}

// Len returns the number of loaded questions.
func (s *Stepper) Len() int {
	return len(s.questions)
}

// Index returns the zero-based position of the current question.
func (s *Stepper) Index() int {
	return s.index
}

// Current returns the current question, or false when none are loaded.
func (s *Stepper) Current() (question.Question, bool) {
	if len(s.questions) == 0 {
		return question.Question{}, false
	}
	return s.questions[s.index], true
}

// CurrentText returns the current question text or LoadingText.
func (s *Stepper) CurrentText() string {
	q, ok := s.Current()
	if !ok {
		return LoadingText
	}
	return q.Question
}

// Next advances to the following question, wrapping to the first.
func (s *Stepper) Next() {
	if len(s.questions) == 0 {
		return
	}
	s.index = (s.index + 1) % len(s.questions)
	s.reset()
}

// Prev moves to the preceding question, wrapping to the last.
func (s *Stepper) Prev() {
	if len(s.questions) == 0 {
		return
	}
	s.index = (s.index - 1 + len(s.questions)) % len(s.questions)
	s.reset()
}

// SetTranscript records the candidate's answer so far.
func (s *Stepper) SetTranscript(t string) {
	s.transcript = t
}

// Transcript returns the recorded answer.
func (s *Stepper) Transcript() string {
	return s.transcript
}

// SetFeedback records the grader's response to the current answer.
func (s *Stepper) SetFeedback(f string) {
	s.feedback = f
}

// Feedback returns the last feedback for the current question.
func (s *Stepper) Feedback() string {
	return s.feedback
}

// Clear drops the transcript and feedback and silences speech.
func (s *Stepper) Clear() {
	s.reset()
}

func (s *Stepper) reset() {
	s.transcript = ""
	s.feedback = ""
	s.speaker.Cancel()
}

// Validate reports whether the current answer can be submitted. The
// transcript is checked before the question list.
func (s *Stepper) Validate() error {
	if len(strings.TrimSpace(s.transcript)) < minTranscriptChars {
		return ErrNoTranscript
	}
	if len(s.questions) == 0 {
		return ErrNoQuestions
	}
	return nil
}

// Prompt composes the grading prompt for the current question and answer.
// Call Validate first.
func (s *Stepper) Prompt() string {
	return fmt.Sprintf(
		"Consider yourself an interviewer for a full stack web developer. Question: %s Answer: %s. Provide concise feedback (subject matter expertise & communication) with ratings 0-10, do not mention you are an AI.",
		s.CurrentText(), strings.TrimSpace(s.transcript),
	)
}
