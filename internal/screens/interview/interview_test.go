package interview

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codegenius/internal/feedback"
	iv "github.com/abhisek/codegenius/internal/interview"
	"github.com/abhisek/codegenius/internal/question"
)

type fakeQuestions struct {
	questions []question.Question
	err       error
	gotTrack  string
	deadline  bool
}

func (f *fakeQuestions) Questions(ctx context.Context, techStack string) ([]question.Question, error) {
	f.gotTrack = techStack
	_, f.deadline = ctx.Deadline()
	return f.questions, f.err
}

type fakeFeedback struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeFeedback) Chat(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

type recordingSpeaker struct {
	mu      sync.Mutex
	spoken  []string
	cancels int
}

func (r *recordingSpeaker) Speak(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spoken = append(r.spoken, text)
	return nil
}

func (r *recordingSpeaker) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancels++
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func ctrlKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

var nodeQuestions = []question.Question{
	{Question: "What is the event loop in Node.js?", TechStack: "node"},
	{Question: "Explain streams in Node.js.", TechStack: "node"},
	{Question: "What is middleware in Express?", TechStack: "node"},
}

func nodeTrack() iv.Track {
	return iv.Tracks()[1]
}

type fixture struct {
	screen    *InterviewScreen
	questions *fakeQuestions
	feedback  *fakeFeedback
	speaker   *recordingSpeaker
	copied    []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		questions: &fakeQuestions{questions: nodeQuestions},
		feedback:  &fakeFeedback{reply: "Solid answer.\nSubject Matter Expertise: 7/10"},
		speaker:   &recordingSpeaker{},
	}
	f.screen = New(nodeTrack(), Deps{
		Questions: f.questions,
		Feedback:  f.feedback,
		Speaker:   f.speaker,
		APIBase:   "http://localhost:8080",
		Copy: func(s string) error {
			f.copied = append(f.copied, s)
			return nil
		},
	})
	t.Cleanup(f.screen.Close)
	return f
}

// load runs the fetch command and delivers its result.
func (f *fixture) load() {
	f.screen.Update(f.screen.fetchQuestions()())
}

// run executes cmd and feeds the resulting message back to the screen.
func (f *fixture) run(t *testing.T, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	_, next := f.screen.Update(cmd())
	return next
}

func TestLoadsQuestionsForTrack(t *testing.T) {
	f := newFixture(t)
	f.load()

	if f.questions.gotTrack != "node" {
		t.Errorf("fetched track %q, want node", f.questions.gotTrack)
	}
	if !f.questions.deadline {
		t.Error("fetch should run under a timeout")
	}
	if f.screen.loading {
		t.Error("loading flag should clear")
	}
	if f.screen.stepper.Len() != 3 {
		t.Fatalf("expected 3 questions, got %d", f.screen.stepper.Len())
	}
	if !strings.Contains(f.screen.View(100, 40), "What is the event loop") {
		t.Error("view should show the first question")
	}
}

func TestLoadFailureShowsBackendMessage(t *testing.T) {
	f := newFixture(t)
	f.questions.err = errors.New("connection refused")
	f.load()

	want := "Failed to load questions. Check backend at http://localhost:8080"
	if f.screen.loadErr != want {
		t.Errorf("loadErr = %q, want %q", f.screen.loadErr, want)
	}
	if f.screen.stepper.Len() != 0 {
		t.Error("question list should be empty")
	}
	if !strings.Contains(f.screen.View(100, 40), iv.LoadingText) {
		t.Error("view should show the loading placeholder")
	}
}

func TestSubmitWithoutTranscriptIsRejected(t *testing.T) {
	f := newFixture(t)
	f.load()
	f.screen.input.SetValue("  a ")

	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("no request should be sent")
	}
	if f.screen.status != iv.ErrNoTranscript.Error() {
		t.Errorf("status = %q", f.screen.status)
	}
	if len(f.feedback.prompts) != 0 {
		t.Error("feedback service must not be called")
	}
}

func TestSubmitWithoutQuestionsIsRejected(t *testing.T) {
	f := newFixture(t)
	f.questions.questions = nil
	f.load()
	f.screen.input.SetValue("the event loop runs callbacks")

	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	if cmd != nil {
		t.Fatal("no request should be sent")
	}
	if f.screen.status != iv.ErrNoQuestions.Error() {
		t.Errorf("status = %q", f.screen.status)
	}
}

func TestSubmitShowsAndSpeaksFeedback(t *testing.T) {
	f := newFixture(t)
	f.load()
	f.screen.input.SetValue("It runs callbacks when the stack is empty")

	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	if !f.screen.submitting || !f.screen.showFeedback {
		t.Fatal("expected submitting feedback view")
	}
	if !strings.Contains(f.screen.View(100, 40), "Evaluating your answer") {
		t.Error("view should show progress while waiting")
	}

	speak := f.run(t, cmd)
	if len(f.feedback.prompts) != 1 {
		t.Fatalf("expected one prompt, got %d", len(f.feedback.prompts))
	}
	prompt := f.feedback.prompts[0]
	if !strings.Contains(prompt, "Question: What is the event loop in Node.js?") ||
		!strings.Contains(prompt, "Answer: It runs callbacks when the stack is empty.") {
		t.Errorf("unexpected prompt %q", prompt)
	}

	if f.screen.submitting {
		t.Error("submitting should clear")
	}
	view := f.screen.View(100, 40)
	for _, want := range []string{"Your Answer", "Feedback", "Solid answer."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	f.run(t, speak)
	if len(f.speaker.spoken) != 1 || f.speaker.spoken[0] != f.feedback.reply {
		t.Errorf("spoken = %v", f.speaker.spoken)
	}
}

func TestFeedbackErrorShowsServerMessage(t *testing.T) {
	f := newFixture(t)
	f.load()
	f.feedback.err = &feedback.ChatError{Status: 400, Message: "Candidate answer (prompt) is missing or empty"}
	f.screen.input.SetValue("an answer")

	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	if next := f.run(t, cmd); next != nil {
		t.Error("errors should not be spoken")
	}
	if f.screen.stepper.Feedback() != "Candidate answer (prompt) is missing or empty" {
		t.Errorf("feedback = %q", f.screen.stepper.Feedback())
	}
}

func TestFeedbackTransportErrorShowsGenericMessage(t *testing.T) {
	f := newFixture(t)
	f.load()
	f.feedback.err = errors.New("dial tcp: refused")
	f.screen.input.SetValue("an answer")

	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	f.run(t, cmd)
	if f.screen.stepper.Feedback() != feedback.GenericChatError {
		t.Errorf("feedback = %q", f.screen.stepper.Feedback())
	}
}

func TestDoubleSubmitIgnored(t *testing.T) {
	f := newFixture(t)
	f.load()
	f.screen.input.SetValue("an answer")

	_, first := f.screen.Update(specialKey(tea.KeyEnter))
	_, second := f.screen.Update(specialKey(tea.KeyEnter))
	if first == nil || second != nil {
		t.Fatal("only the first submit should send a request")
	}
}

func TestNextAndPrevWrapAndClear(t *testing.T) {
	f := newFixture(t)
	f.load()
	f.screen.input.SetValue("draft")

	f.screen.Update(ctrlKey('p'))
	if f.screen.stepper.Index() != 2 {
		t.Fatalf("prev from first should wrap to last, got %d", f.screen.stepper.Index())
	}
	if f.screen.input.Value() != "" {
		t.Error("input should clear on navigation")
	}

	f.screen.Update(ctrlKey('n'))
	if f.screen.stepper.Index() != 0 {
		t.Fatalf("next from last should wrap to first, got %d", f.screen.stepper.Index())
	}
	if f.speaker.cancels < 2 {
		t.Errorf("navigation should cancel speech, cancels=%d", f.speaker.cancels)
	}
}

func TestStaleFeedbackDropped(t *testing.T) {
	f := newFixture(t)
	f.load()
	f.screen.input.SetValue("an answer")

	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	f.screen.Update(ctrlKey('n'))

	if next := f.run(t, cmd); next != nil {
		t.Error("stale reply should not be spoken")
	}
	if f.screen.stepper.Feedback() != "" || f.screen.showFeedback {
		t.Error("stale reply should be ignored")
	}
}

func TestClearReturnsToAnswerEntry(t *testing.T) {
	f := newFixture(t)
	f.load()
	f.screen.input.SetValue("an answer")
	_, cmd := f.screen.Update(specialKey(tea.KeyEnter))
	f.run(t, cmd)

	f.screen.Update(ctrlKey('l'))
	if f.screen.showFeedback || f.screen.stepper.Feedback() != "" || f.screen.stepper.Transcript() != "" {
		t.Error("clear should drop feedback and transcript")
	}
	if f.screen.stepper.Index() != 0 {
		t.Error("clear should stay on the same question")
	}
}

func TestCopyTranscript(t *testing.T) {
	f := newFixture(t)
	f.load()

	_, cmd := f.screen.Update(ctrlKey('y'))
	if cmd != nil || f.screen.status != "Nothing to copy yet." {
		t.Fatalf("empty transcript: cmd=%v status=%q", cmd != nil, f.screen.status)
	}

	f.screen.input.SetValue("closures keep scope")
	_, cmd = f.screen.Update(ctrlKey('y'))
	f.run(t, cmd)
	if len(f.copied) != 1 || f.copied[0] != "closures keep scope" {
		t.Errorf("copied = %v", f.copied)
	}
	if f.screen.status != "Transcript copied to clipboard." {
		t.Errorf("status = %q", f.screen.status)
	}
}

func TestCloseCancelsSpeech(t *testing.T) {
	f := newFixture(t)
	before := f.speaker.cancels
	f.screen.Close()
	if f.speaker.cancels != before+1 {
		t.Error("close should cancel speech")
	}
	if f.screen.ctx.Err() == nil {
		t.Error("close should cancel the screen context")
	}
}

func TestKeyHintsFollowMode(t *testing.T) {
	f := newFixture(t)
	f.load()
	if f.screen.KeyHints()[0].Key != "Enter" {
		t.Error("answer mode should offer submit first")
	}
	f.screen.input.SetValue("an answer")
	f.screen.Update(specialKey(tea.KeyEnter))
	if f.screen.KeyHints()[0].Key != "Ctrl+N" {
		t.Error("feedback mode should offer next first")
	}
}

func TestDefaultFetchTimeout(t *testing.T) {
	s := New(nodeTrack(), Deps{})
	defer s.Close()
	if s.deps.FetchTimeout != 10*time.Second {
		t.Errorf("timeout = %v", s.deps.FetchTimeout)
	}
	if s.Title() != "Node.js Interview" {
		t.Errorf("title = %q", s.Title())
	}
}

func TestTypingUpdatesInput(t *testing.T) {
	f := newFixture(t)
	f.load()
	for _, r := range "hi" {
		f.screen.Update(keyPress(r))
	}
	if f.screen.input.Value() != "hi" {
		t.Errorf("input = %q", f.screen.input.Value())
	}
}
