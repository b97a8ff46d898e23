package interview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/abhisek/codegenius/internal/feedback"
	iv "github.com/abhisek/codegenius/internal/interview"
	"github.com/abhisek/codegenius/internal/question"
	"github.com/abhisek/codegenius/internal/screen"
	"github.com/abhisek/codegenius/internal/speech"
	"github.com/abhisek/codegenius/internal/ui/components"
	"github.com/abhisek/codegenius/internal/ui/layout"
)

// DefaultFetchTimeout bounds the question fetch for a track.
const DefaultFetchTimeout = 10 * time.Second

// QuestionSource fetches the questions of one track.
type QuestionSource interface {
	Questions(ctx context.Context, techStack string) ([]question.Question, error)
}

// FeedbackSource grades a candidate prompt.
type FeedbackSource interface {
	Chat(ctx context.Context, prompt string) (string, error)
}

// Deps are the collaborators of an interview screen.
type Deps struct {
	Questions    QuestionSource
	Feedback     FeedbackSource
	Speaker      speech.Speaker
	APIBase      string
	FetchTimeout time.Duration
	Copy         func(string) error // defaults to the system clipboard
	Logger       *slog.Logger
}

// InterviewScreen runs one mock interview for a track: show a question,
// take the transcript, submit it for feedback and read the feedback out.
type InterviewScreen struct {
	deps    Deps
	track   iv.Track
	stepper *iv.Stepper
	input   components.TextInput

	ctx    context.Context
	cancel context.CancelFunc

	loading      bool
	submitting   bool
	showFeedback bool
	seq          int
	loadErr      string
	status       string
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)
var _ screen.Closer = (*InterviewScreen)(nil)

// New creates an InterviewScreen for track.
func New(track iv.Track, deps Deps) *InterviewScreen {
	if deps.Speaker == nil {
		deps.Speaker = speech.NewNoOp(deps.Logger)
	}
	if deps.FetchTimeout <= 0 {
		deps.FetchTimeout = DefaultFetchTimeout
	}
	if deps.Copy == nil {
		deps.Copy = clipboard.WriteAll
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &InterviewScreen{
		deps:    deps,
		track:   track,
		stepper: iv.NewStepper(deps.Speaker),
		input:   components.NewTextInput("Speak, then paste or type your transcript here...", 0),
		ctx:     ctx,
		cancel:  cancel,
		loading: true,
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	return tea.Batch(
		s.fetchQuestions(),
		s.input.Init(),
	)
}

func (s *InterviewScreen) Title() string {
	return s.track.Title + " Interview"
}

// Close stops speech and abandons in-flight requests.
func (s *InterviewScreen) Close() {
	s.cancel()
	s.deps.Speaker.Cancel()
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	if s.showFeedback {
		return []layout.KeyHint{
			{Key: "Ctrl+N", Description: "Next"},
			{Key: "Ctrl+P", Description: "Previous"},
			{Key: "Ctrl+L", Description: "Try again"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+N/P", Description: "Next/Prev"},
		{Key: "Ctrl+L", Description: "Clear"},
		{Key: "Ctrl+Y", Description: "Copy"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		return s.handleQuestions(msg)

	case feedbackMsg:
		return s.handleFeedback(msg)

	case speechDoneMsg:
		if msg.Err != nil {
			s.deps.Logger.Warn("speech failed", "err", msg.Err)
		}
		return s, nil

	case copiedMsg:
		if msg.Err != nil {
			s.status = fmt.Sprintf("Copy failed: %v", msg.Err)
		} else {
			s.status = "Transcript copied to clipboard."
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *InterviewScreen) fetchQuestions() tea.Cmd {
	src := s.deps.Questions
	timeout := s.deps.FetchTimeout
	ctx := s.ctx
	key := s.track.Key
	return func() tea.Msg {
		if src == nil {
			return questionsLoadedMsg{Err: errors.New("no question source configured")}
		}
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		qs, err := src.Questions(ctx, key)
		return questionsLoadedMsg{Questions: qs, Err: err}
	}
}

func (s *InterviewScreen) handleQuestions(msg questionsLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.deps.Logger.Warn("load questions failed", "track", s.track.Key, "err", msg.Err)
		s.stepper.Load(nil)
		s.loadErr = fmt.Sprintf("Failed to load questions. Check backend at %s", s.deps.APIBase)
		return s, nil
	}
	s.stepper.Load(msg.Questions)
	s.deps.Logger.Info("questions loaded", "track", s.track.Key, "count", len(msg.Questions))
	return s, nil
}

func (s *InterviewScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return s.submit()
	case "ctrl+n":
		s.step(s.stepper.Next)
		return s, nil
	case "ctrl+p":
		s.step(s.stepper.Prev)
		return s, nil
	case "ctrl+l":
		s.step(s.stepper.Clear)
		return s, nil
	case "ctrl+y":
		return s, s.copyTranscript()
	}

	if s.showFeedback {
		return s, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// step applies a stepper transition and returns to answer entry. Bumping
// seq drops any feedback still in flight for the old answer.
func (s *InterviewScreen) step(move func()) {
	move()
	s.input.Reset()
	s.showFeedback = false
	s.submitting = false
	s.status = ""
	s.seq++
}

func (s *InterviewScreen) submit() (screen.Screen, tea.Cmd) {
	if s.submitting || s.showFeedback {
		return s, nil
	}

	s.stepper.SetTranscript(s.input.Value())
	if err := s.stepper.Validate(); err != nil {
		s.status = err.Error()
		return s, nil
	}

	s.status = ""
	s.showFeedback = true
	s.submitting = true
	s.seq++
	return s, s.requestFeedback(s.seq, s.stepper.Prompt())
}

func (s *InterviewScreen) requestFeedback(seq int, prompt string) tea.Cmd {
	src := s.deps.Feedback
	ctx := s.ctx
	return func() tea.Msg {
		if src == nil {
			return feedbackMsg{Seq: seq, Err: errors.New("no feedback service configured")}
		}
		text, err := src.Chat(ctx, prompt)
		return feedbackMsg{Seq: seq, Text: text, Err: err}
	}
}

func (s *InterviewScreen) handleFeedback(msg feedbackMsg) (screen.Screen, tea.Cmd) {
	if msg.Seq != s.seq {
		return s, nil
	}
	s.submitting = false

	if msg.Err != nil {
		s.deps.Logger.Warn("feedback request failed", "track", s.track.Key, "err", msg.Err)
		text := feedback.GenericChatError
		var chatErr *feedback.ChatError
		if errors.As(msg.Err, &chatErr) && chatErr.Message != "" {
			text = chatErr.Message
		}
		s.stepper.SetFeedback(text)
		return s, nil
	}

	s.stepper.SetFeedback(msg.Text)
	if msg.Text == "" {
		return s, nil
	}
	return s, s.speak(msg.Text)
}

func (s *InterviewScreen) speak(text string) tea.Cmd {
	speaker := s.deps.Speaker
	ctx := s.ctx
	return func() tea.Msg {
		return speechDoneMsg{Err: speaker.Speak(ctx, text)}
	}
}

func (s *InterviewScreen) copyTranscript() tea.Cmd {
	text := s.input.Value()
	if s.showFeedback {
		text = s.stepper.Transcript()
	}
	if text == "" {
		s.status = "Nothing to copy yet."
		return nil
	}
	copyFn := s.deps.Copy
	return func() tea.Msg {
		return copiedMsg{Err: copyFn(text)}
	}
}
