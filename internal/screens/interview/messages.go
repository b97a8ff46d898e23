package interview

import "github.com/abhisek/codegenius/internal/question"

// questionsLoadedMsg is sent when the question fetch for the track ends.
type questionsLoadedMsg struct {
	Questions []question.Question
	Err       error
}

// feedbackMsg carries the feedback service reply. Seq ties it to the
// submission that asked for it so stale replies can be dropped.
type feedbackMsg struct {
	Seq  int
	Text string
	Err  error
}

// speechDoneMsg is sent when reading feedback aloud finishes or fails.
type speechDoneMsg struct {
	Err error
}

// copiedMsg reports the result of copying the transcript.
type copiedMsg struct {
	Err error
}
