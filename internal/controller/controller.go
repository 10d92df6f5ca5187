// Package controller holds the application state machine. It is a pure
// single-actor core: event methods mutate state synchronously and
// return Command values describing asynchronous work for the caller to
// run; completion methods feed the results back in. All methods must be
// called from a single goroutine (the bubbletea update loop).
package controller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lumilearn/lumi/internal/session"
	"github.com/lumilearn/lumi/internal/store"
)

// State is the top-level application state.
type State int

const (
	StateWelcome State = iota
	StateLoading
	StateLearning
	StateShowQuiz
	StateShowQuizResults
)

func (s State) String() string {
	switch s {
	case StateWelcome:
		return "welcome"
	case StateLoading:
		return "loading"
	case StateLearning:
		return "learning"
	case StateShowQuiz:
		return "show-quiz"
	case StateShowQuizResults:
		return "show-quiz-results"
	default:
		return "unknown"
	}
}

// Learning pairs an analyzed session with the style it is taught in.
// The controller only ever enters StateLearning by constructing one of
// these, so a learning state without its data cannot be represented.
type Learning struct {
	Session *session.Session
	Style   session.Style
}

// Fixed user-facing strings. These are part of the observable behavior
// and are asserted on in tests.
const (
	greetingText = "Hello! I've reviewed your material. Here's a quick summary and some questions to get us started. Feel free to ask me anything!"
	apologyText  = "I'm having a little trouble right now. Please try again in a moment."

	explainMorePrompt = "Can you elaborate on your last response?"

	msgAnalyzeFailed  = "Sorry, I couldn't process that content. Please try again."
	msgClassifyFailed = "Sorry, there was an error analyzing your quiz results. Please try again."
	msgQuizFailed     = "Sorry, I couldn't generate the quiz. Please try again."
	msgNotesFailed    = "Sorry, I couldn't generate the notes. Please try again."
	msgResumeAbsent   = "Could not find a saved session to resume."
	msgResumeCorrupt  = "Your saved session might be corrupted. Starting fresh."
)

// Controller is the session state machine.
type Controller struct {
	state    State
	learning *Learning

	// style selected on the welcome screen, carried into the next
	// Learning when content is submitted.
	style session.Style

	transcript []session.Message
	quiz       []session.QuizQuestion
	notes      *session.Notes
	activeTab  session.Tab

	generating bool   // quiz or notes generation in flight
	chatting   bool   // a chat turn is in flight
	streamID   string // message ID the current stream appends to

	lastErr   *Error
	resumable bool

	// content submitted for analysis, held until AnalyzeDone.
	pendingContent string

	// epoch increments on every reset. Completions carrying an older
	// epoch are ignored.
	epoch uint64

	snapshots store.SnapshotStore
	logger    *slog.Logger
}

// New builds a controller in StateWelcome. Resume is offered when the
// snapshot store reports a saved session.
func New(snapshots store.SnapshotStore, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		state:     StateWelcome,
		style:     session.DefaultStyle,
		activeTab: session.TabChat,
		snapshots: snapshots,
		logger:    logger,
	}
	if snapshots != nil {
		ok, err := snapshots.Exists(context.Background())
		if err != nil {
			logger.Warn("snapshot probe failed", "error", err)
		}
		c.resumable = ok
	}
	return c
}

// Accessors. The controller owns its slices; callers must not mutate
// what these return.

func (c *Controller) State() State                  { return c.state }
func (c *Controller) Style() session.Style          { return c.style }
func (c *Controller) Learning() *Learning           { return c.learning }
func (c *Controller) Transcript() []session.Message { return c.transcript }
func (c *Controller) Quiz() []session.QuizQuestion  { return c.quiz }
func (c *Controller) Notes() *session.Notes         { return c.notes }
func (c *Controller) ActiveTab() session.Tab        { return c.activeTab }
func (c *Controller) Generating() bool              { return c.generating }
func (c *Controller) Chatting() bool                { return c.chatting }
func (c *Controller) Err() *Error                   { return c.lastErr }
func (c *Controller) Resumable() bool               { return c.resumable }
func (c *Controller) Epoch() uint64                 { return c.epoch }

// ClearErr dismisses the error banner without other effect.
func (c *Controller) ClearErr() { c.lastErr = nil }

// CanExplainMore reports whether the explain-more shortcut applies: the
// last transcript message is a completed, non-empty tutor reply.
func (c *Controller) CanExplainMore() bool {
	if c.state != StateLearning || c.chatting || len(c.transcript) == 0 {
		return false
	}
	last := c.transcript[len(c.transcript)-1]
	return last.Sender == session.SenderAI && last.Text != ""
}

// SelectStyle records the style choice on the welcome screen.
func (c *Controller) SelectStyle(s session.Style) {
	if c.state != StateWelcome || !s.Valid() {
		return
	}
	c.style = s
}

// SubmitContent starts a new session from study material. Any previous
// session, in-flight work, and saved snapshot are discarded first.
func (c *Controller) SubmitContent(content string) Command {
	if c.state != StateWelcome {
		return none()
	}
	if content == "" || !c.style.Valid() {
		c.lastErr = &Error{Kind: KindValidation, Message: "Please paste some study material first."}
		return none()
	}
	c.epoch++
	c.clearSession()
	c.clearSnapshot()
	c.lastErr = nil
	c.pendingContent = content
	c.state = StateLoading
	return Command{Kind: CmdAnalyze, Epoch: c.epoch, Content: content, Style: c.style}
}

// AnalyzeDone completes SubmitContent. On success the controller enters
// StateLearning with a fresh transcript seeded by the tutor greeting.
func (c *Controller) AnalyzeDone(epoch uint64, analysis *session.Analysis, err error) {
	if epoch != c.epoch || c.state != StateLoading || c.pendingContent == "" {
		return
	}
	content := c.pendingContent
	c.pendingContent = ""
	if err != nil {
		c.logger.Error("content analysis failed", "error", err)
		c.state = StateWelcome
		c.lastErr = generationErr(msgAnalyzeFailed, err)
		return
	}
	c.learning = &Learning{
		Session: session.NewSession(content, analysis),
		Style:   c.style,
	}
	c.transcript = []session.Message{session.NewMessage(session.SenderAI, greetingText)}
	c.quiz = nil
	c.notes = nil
	c.activeTab = session.TabChat
	c.state = StateLearning
	c.lastErr = nil
	c.persist()
}

// TakeStyleQuiz opens the learning-style discovery quiz.
func (c *Controller) TakeStyleQuiz() {
	if c.state != StateWelcome {
		return
	}
	c.lastErr = nil
	c.state = StateShowQuiz
}

// CancelStyleQuiz returns from the discovery quiz without answering.
func (c *Controller) CancelStyleQuiz() {
	if c.state != StateShowQuiz {
		return
	}
	c.state = StateWelcome
}

// SubmitStyleQuiz sends the discovery answers off for classification.
func (c *Controller) SubmitStyleQuiz(answers []string) Command {
	if c.state != StateShowQuiz || len(answers) == 0 {
		return none()
	}
	c.lastErr = nil
	c.state = StateLoading
	return Command{Kind: CmdClassifyStyle, Epoch: c.epoch, Answers: answers}
}

// ClassifyDone completes SubmitStyleQuiz.
func (c *Controller) ClassifyDone(epoch uint64, style session.Style, err error) {
	if epoch != c.epoch || c.state != StateLoading {
		return
	}
	if err != nil {
		c.logger.Error("style classification failed", "error", err)
		c.state = StateShowQuiz
		c.lastErr = generationErr(msgClassifyFailed, err)
		return
	}
	if !style.Valid() {
		style = session.DefaultStyle
	}
	c.style = style
	c.state = StateShowQuizResults
	c.lastErr = nil
}

// ContinueFromResults returns to the welcome screen with the classified
// style preselected.
func (c *Controller) ContinueFromResults() {
	if c.state != StateShowQuizResults {
		return
	}
	c.state = StateWelcome
}

// ChangeTab switches the learning view. Entering the quiz or notes tab
// for the first time kicks off generation of that artifact.
func (c *Controller) ChangeTab(tab session.Tab) Command {
	if c.state != StateLearning || c.learning == nil {
		return none()
	}
	c.activeTab = tab
	cmd := none()
	switch tab {
	case session.TabQuiz:
		if c.quiz == nil && !c.generating {
			c.generating = true
			cmd = Command{
				Kind:    CmdGenerateQuiz,
				Epoch:   c.epoch,
				Content: c.learning.Session.OriginalContent,
				Style:   c.learning.Style,
			}
		}
	case session.TabNotes:
		if c.notes == nil && !c.generating {
			if c.learning.Style == session.StyleCornellNotes {
				c.generating = true
				history := make([]session.Message, len(c.transcript))
				copy(history, c.transcript)
				cmd = Command{
					Kind:       CmdGenerateNotes,
					Epoch:      c.epoch,
					Content:    c.learning.Session.OriginalContent,
					Transcript: history,
				}
			} else {
				// Structured notes are a Cornell feature. Other styles
				// get the static pointer without a generation call.
				c.notes = session.PlaceholderNotes()
			}
		}
	}
	c.persist()
	return cmd
}

// QuizReady completes quiz generation.
func (c *Controller) QuizReady(epoch uint64, questions []session.QuizQuestion, err error) {
	if epoch != c.epoch || c.state != StateLearning || !c.generating {
		return
	}
	c.generating = false
	// An empty question list is schema-valid but unusable; treating it
	// as a failure leaves c.quiz nil so reopening the tab retries.
	if err == nil && len(questions) == 0 {
		err = errors.New("quiz has no questions")
	}
	if err != nil {
		c.logger.Error("quiz generation failed", "error", err)
		c.lastErr = generationErr(msgQuizFailed, err)
		return
	}
	c.quiz = questions
	c.lastErr = nil
	c.persist()
}

// NotesReady completes notes generation.
func (c *Controller) NotesReady(epoch uint64, notes *session.Notes, err error) {
	if epoch != c.epoch || c.state != StateLearning || !c.generating {
		return
	}
	c.generating = false
	if err != nil {
		c.logger.Error("notes generation failed", "error", err)
		c.lastErr = generationErr(msgNotesFailed, err)
		return
	}
	c.notes = notes
	c.lastErr = nil
	c.persist()
}

// SendChat appends the user's message plus an empty tutor placeholder
// and requests a streamed reply. One turn may be in flight at a time.
func (c *Controller) SendChat(text string) Command {
	if c.state != StateLearning || c.learning == nil || c.chatting || text == "" {
		return none()
	}
	c.chatting = true
	c.lastErr = nil
	c.transcript = append(c.transcript, session.NewMessage(session.SenderUser, text))

	// History for the prompt excludes the placeholder about to be added.
	history := make([]session.Message, len(c.transcript))
	copy(history, c.transcript)

	placeholder := session.NewMessage(session.SenderAI, "")
	c.streamID = placeholder.ID
	c.transcript = append(c.transcript, placeholder)
	c.persist()
	return Command{
		Kind:       CmdStreamChat,
		Epoch:      c.epoch,
		Transcript: history,
		MessageID:  placeholder.ID,
		Style:      c.learning.Style,
		Content:    c.learning.Session.OriginalContent,
	}
}

// ExplainMore asks the tutor to expand on its last reply.
func (c *Controller) ExplainMore() Command {
	if !c.CanExplainMore() {
		return none()
	}
	return c.SendChat(explainMorePrompt)
}

// ChatDelta appends a streamed fragment to the placeholder message.
func (c *Controller) ChatDelta(epoch uint64, messageID, delta string) {
	if epoch != c.epoch || c.state != StateLearning || !c.chatting {
		return
	}
	if messageID != c.streamID || delta == "" {
		return
	}
	i := c.messageIndex(messageID)
	if i < 0 {
		return
	}
	c.transcript[i].Text += delta
	c.persist()
}

// ChatDone finishes the streaming turn. On failure the placeholder is
// replaced with a fixed apology, or, when partial text already arrived,
// the apology is appended as a separate message.
func (c *Controller) ChatDone(epoch uint64, messageID string, err error) {
	if epoch != c.epoch || c.state != StateLearning || !c.chatting {
		return
	}
	if messageID != c.streamID {
		return
	}
	c.chatting = false
	c.streamID = ""
	if err != nil {
		c.logger.Error("chat stream failed", "error", err)
		if i := c.messageIndex(messageID); i >= 0 {
			if c.transcript[i].Text == "" {
				c.transcript[i].Text = apologyText
			} else {
				c.transcript = append(c.transcript, session.NewMessage(session.SenderAI, apologyText))
			}
		}
	}
	c.persist()
}

// StartOver abandons the current session entirely: state, artifacts,
// style choice, and the saved snapshot.
func (c *Controller) StartOver() {
	c.epoch++
	c.clearSession()
	c.clearSnapshot()
	c.style = session.DefaultStyle
	c.lastErr = nil
	c.state = StateWelcome
}

// RequestResume restores the saved session, if any. A corrupt snapshot
// is cleared and reported, leaving the user on a fresh welcome screen.
func (c *Controller) RequestResume() {
	if c.state != StateWelcome || c.snapshots == nil {
		return
	}
	snap, err := c.snapshots.Load(context.Background())
	if err != nil {
		c.logger.Error("snapshot load failed", "error", err)
		c.clearSnapshot()
		c.lastErr = persistenceErr(msgResumeCorrupt, err)
		return
	}
	if snap == nil {
		c.resumable = false
		c.lastErr = persistenceErr(msgResumeAbsent, nil)
		return
	}
	c.epoch++
	c.learning = &Learning{Session: snap.Session, Style: snap.Style}
	c.style = snap.Style
	c.transcript = snap.Transcript
	c.quiz = snap.Quiz
	c.notes = snap.Notes
	c.activeTab = snap.ActiveTab
	if !c.activeTab.Valid() {
		c.activeTab = session.TabChat
	}
	c.generating = false
	c.chatting = false
	c.streamID = ""
	c.resumable = false
	c.lastErr = nil
	c.state = StateLearning
}

// CheckInvariants repairs an impossible state by forcing a reset. The
// Learning struct makes this unreachable through normal transitions;
// the guard stays as a last line of defense before rendering. The
// repair is silent: it logs and resets, but never raises a banner.
func (c *Controller) CheckInvariants() {
	if c.state == StateLearning && c.learning == nil {
		c.logger.Error("learning state without session data, resetting",
			"state", c.state.String())
		c.StartOver()
	}
}

func (c *Controller) messageIndex(id string) int {
	for i := len(c.transcript) - 1; i >= 0; i-- {
		if c.transcript[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) clearSession() {
	c.learning = nil
	c.transcript = nil
	c.quiz = nil
	c.notes = nil
	c.activeTab = session.TabChat
	c.generating = false
	c.chatting = false
	c.streamID = ""
	c.pendingContent = ""
}

func (c *Controller) clearSnapshot() {
	c.resumable = false
	if c.snapshots == nil {
		return
	}
	if err := c.snapshots.Clear(context.Background()); err != nil {
		c.logger.Warn("snapshot clear failed", "error", err)
	}
}

// persist writes the current learning state as the single saved
// snapshot. Failures are logged and otherwise ignored: losing resume
// must never interrupt the session itself.
func (c *Controller) persist() {
	if c.snapshots == nil || c.state != StateLearning || c.learning == nil {
		return
	}
	snap := &session.Snapshot{
		Version:    session.SnapshotVersion,
		Session:    c.learning.Session,
		Style:      c.learning.Style,
		Transcript: c.transcript,
		Quiz:       c.quiz,
		Notes:      c.notes,
		ActiveTab:  c.activeTab,
	}
	if err := c.snapshots.Save(context.Background(), snap); err != nil {
		c.logger.Warn("snapshot save failed", "error", err)
	}
}
