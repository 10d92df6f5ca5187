package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/lumilearn/lumi/internal/session"
)

// fakeSnapshots is an in-memory SnapshotStore for controller tests.
type fakeSnapshots struct {
	snap    *session.Snapshot
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func (f *fakeSnapshots) Exists(ctx context.Context) (bool, error) {
	return f.snap != nil, nil
}

func (f *fakeSnapshots) Load(ctx context.Context) (*session.Snapshot, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.snap, nil
}

func (f *fakeSnapshots) Save(ctx context.Context, snap *session.Snapshot) error {
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snap = snap
	return nil
}

func (f *fakeSnapshots) Clear(ctx context.Context) error {
	f.clears++
	f.snap = nil
	return nil
}

func testAnalysis() *session.Analysis {
	return &session.Analysis{
		Summary:      "Photosynthesis converts light into chemical energy.",
		Outline:      []string{"Light reactions", "Calvin cycle"},
		KeyQuestions: []string{"Where do the light reactions occur?"},
	}
}

// startLearning drives a fresh controller into the learning state.
func startLearning(t *testing.T, fs *fakeSnapshots, style session.Style) *Controller {
	t.Helper()
	c := New(fs, nil)
	c.SelectStyle(style)
	cmd := c.SubmitContent("photosynthesis notes")
	if cmd.Kind != CmdAnalyze {
		t.Fatalf("SubmitContent returned %v, want CmdAnalyze", cmd.Kind)
	}
	c.AnalyzeDone(cmd.Epoch, testAnalysis(), nil)
	if c.State() != StateLearning {
		t.Fatalf("state = %v after AnalyzeDone, want learning", c.State())
	}
	return c
}

func TestSubmitContent_HappyPath(t *testing.T) {
	fs := &fakeSnapshots{}
	c := New(fs, nil)
	c.SelectStyle(session.StyleVisual)

	cmd := c.SubmitContent("some notes")
	if cmd.Kind != CmdAnalyze {
		t.Fatalf("cmd.Kind = %v, want CmdAnalyze", cmd.Kind)
	}
	if cmd.Content != "some notes" {
		t.Errorf("cmd.Content = %q", cmd.Content)
	}
	if c.State() != StateLoading {
		t.Fatalf("state = %v, want loading", c.State())
	}

	c.AnalyzeDone(cmd.Epoch, testAnalysis(), nil)

	if c.State() != StateLearning {
		t.Fatalf("state = %v, want learning", c.State())
	}
	l := c.Learning()
	if l == nil || l.Session == nil {
		t.Fatal("learning data missing")
	}
	if l.Style != session.StyleVisual {
		t.Errorf("learning style = %q, want visual", l.Style)
	}
	if l.Session.Summary != testAnalysis().Summary {
		t.Errorf("summary = %q", l.Session.Summary)
	}

	tr := c.Transcript()
	if len(tr) != 1 {
		t.Fatalf("transcript has %d messages, want 1", len(tr))
	}
	if tr[0].Sender != session.SenderAI || tr[0].Text != greetingText {
		t.Errorf("first message = %+v, want tutor greeting", tr[0])
	}
	if tr[0].ID == "" {
		t.Error("greeting has no message ID")
	}
	if fs.saves == 0 {
		t.Error("entering learning did not persist a snapshot")
	}
}

func TestSubmitContent_EmptyContentRejected(t *testing.T) {
	c := New(&fakeSnapshots{}, nil)

	cmd := c.SubmitContent("")
	if cmd.Kind != CmdNone {
		t.Fatalf("cmd.Kind = %v, want CmdNone", cmd.Kind)
	}
	if c.State() != StateWelcome {
		t.Errorf("state = %v, want welcome", c.State())
	}
	if c.Err() == nil || c.Err().Kind != KindValidation {
		t.Errorf("err = %+v, want validation error", c.Err())
	}
}

func TestSubmitContent_WrongStateIgnored(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)

	cmd := c.SubmitContent("more notes")
	if cmd.Kind != CmdNone {
		t.Errorf("cmd.Kind = %v, want CmdNone in learning state", cmd.Kind)
	}
}

func TestAnalyzeDone_FailureReturnsToWelcome(t *testing.T) {
	fs := &fakeSnapshots{}
	c := New(fs, nil)
	cmd := c.SubmitContent("notes")

	c.AnalyzeDone(cmd.Epoch, nil, errors.New("boom"))

	if c.State() != StateWelcome {
		t.Fatalf("state = %v, want welcome", c.State())
	}
	e := c.Err()
	if e == nil || e.Kind != KindGeneration {
		t.Fatalf("err = %+v, want generation error", e)
	}
	if e.Message != msgAnalyzeFailed {
		t.Errorf("err message = %q", e.Message)
	}
	if c.Learning() != nil {
		t.Error("learning data set despite failure")
	}
}

func TestAnalyzeDone_StaleEpochIgnored(t *testing.T) {
	c := New(&fakeSnapshots{}, nil)
	cmd := c.SubmitContent("notes")

	c.StartOver()
	c.AnalyzeDone(cmd.Epoch, testAnalysis(), nil)

	if c.State() != StateWelcome {
		t.Errorf("state = %v, stale completion must be ignored", c.State())
	}
	if c.Learning() != nil {
		t.Error("stale completion populated learning data")
	}
}

func TestStyleQuiz_Flow(t *testing.T) {
	c := New(&fakeSnapshots{}, nil)

	c.TakeStyleQuiz()
	if c.State() != StateShowQuiz {
		t.Fatalf("state = %v, want show-quiz", c.State())
	}

	answers := []string{"a", "b", "c", "d"}
	cmd := c.SubmitStyleQuiz(answers)
	if cmd.Kind != CmdClassifyStyle {
		t.Fatalf("cmd.Kind = %v, want CmdClassifyStyle", cmd.Kind)
	}
	if len(cmd.Answers) != 4 {
		t.Errorf("cmd.Answers = %v", cmd.Answers)
	}
	if c.State() != StateLoading {
		t.Fatalf("state = %v, want loading", c.State())
	}

	c.ClassifyDone(cmd.Epoch, session.StyleSQ3R, nil)
	if c.State() != StateShowQuizResults {
		t.Fatalf("state = %v, want show-quiz-results", c.State())
	}
	if c.Style() != session.StyleSQ3R {
		t.Errorf("style = %q, want SQ3R", c.Style())
	}

	c.ContinueFromResults()
	if c.State() != StateWelcome {
		t.Fatalf("state = %v, want welcome", c.State())
	}
	if c.Style() != session.StyleSQ3R {
		t.Errorf("style not carried back to welcome: %q", c.Style())
	}
}

func TestStyleQuiz_Cancel(t *testing.T) {
	c := New(&fakeSnapshots{}, nil)
	c.TakeStyleQuiz()
	c.CancelStyleQuiz()
	if c.State() != StateWelcome {
		t.Errorf("state = %v, want welcome after cancel", c.State())
	}
}

func TestClassifyDone_UnknownStyleFallsBack(t *testing.T) {
	c := New(&fakeSnapshots{}, nil)
	c.TakeStyleQuiz()
	cmd := c.SubmitStyleQuiz([]string{"a"})

	c.ClassifyDone(cmd.Epoch, session.Style("banana"), nil)

	if c.Style() != session.DefaultStyle {
		t.Errorf("style = %q, want default", c.Style())
	}
	if c.State() != StateShowQuizResults {
		t.Errorf("state = %v, want show-quiz-results", c.State())
	}
}

func TestClassifyDone_FailureReturnsToQuiz(t *testing.T) {
	c := New(&fakeSnapshots{}, nil)
	c.TakeStyleQuiz()
	cmd := c.SubmitStyleQuiz([]string{"a"})

	c.ClassifyDone(cmd.Epoch, "", errors.New("boom"))

	if c.State() != StateShowQuiz {
		t.Fatalf("state = %v, want show-quiz", c.State())
	}
	if c.Err() == nil || c.Err().Message != msgClassifyFailed {
		t.Errorf("err = %+v", c.Err())
	}
}

func TestChangeTab_QuizTriggersGenerationOnce(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)

	cmd := c.ChangeTab(session.TabQuiz)
	if cmd.Kind != CmdGenerateQuiz {
		t.Fatalf("cmd.Kind = %v, want CmdGenerateQuiz", cmd.Kind)
	}
	if !c.Generating() {
		t.Error("Generating() = false while quiz in flight")
	}

	// Tab flapping while in flight must not issue a second command.
	c.ChangeTab(session.TabChat)
	again := c.ChangeTab(session.TabQuiz)
	if again.Kind != CmdNone {
		t.Errorf("second ChangeTab issued %v", again.Kind)
	}

	qs := []session.QuizQuestion{{
		Question:      "What pigment absorbs light?",
		Options:       []string{"Chlorophyll", "Keratin", "Hemoglobin", "Melanin"},
		CorrectAnswer: "Chlorophyll",
		Explanation:   "Chlorophyll absorbs red and blue light.",
	}}
	c.QuizReady(c.Epoch(), qs, nil)

	if c.Generating() {
		t.Error("Generating() = true after QuizReady")
	}
	if len(c.Quiz()) != 1 {
		t.Fatalf("quiz has %d questions", len(c.Quiz()))
	}

	// Once present, revisiting the tab does not regenerate.
	if cmd := c.ChangeTab(session.TabQuiz); cmd.Kind != CmdNone {
		t.Errorf("revisit issued %v", cmd.Kind)
	}
}

func TestQuizReady_FailureLeavesQuizAbsent(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)
	cmd := c.ChangeTab(session.TabQuiz)

	c.QuizReady(cmd.Epoch, nil, errors.New("boom"))

	if c.Quiz() != nil {
		t.Error("quiz set despite failure")
	}
	if c.Err() == nil || c.Err().Message != msgQuizFailed {
		t.Errorf("err = %+v", c.Err())
	}

	// The failed artifact can be retried by re-entering the tab.
	c.ChangeTab(session.TabChat)
	if retry := c.ChangeTab(session.TabQuiz); retry.Kind != CmdGenerateQuiz {
		t.Errorf("retry issued %v, want CmdGenerateQuiz", retry.Kind)
	}
}

func TestQuizReady_EmptyQuizIsFailure(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)
	cmd := c.ChangeTab(session.TabQuiz)

	c.QuizReady(cmd.Epoch, []session.QuizQuestion{}, nil)

	if c.Quiz() != nil {
		t.Error("empty quiz stored")
	}
	if c.Err() == nil || c.Err().Message != msgQuizFailed {
		t.Errorf("err = %+v", c.Err())
	}

	// Retryable exactly like any other generation failure.
	c.ChangeTab(session.TabChat)
	if retry := c.ChangeTab(session.TabQuiz); retry.Kind != CmdGenerateQuiz {
		t.Errorf("retry issued %v, want CmdGenerateQuiz", retry.Kind)
	}
}

func TestSubmitContent_OnlyFromWelcome(t *testing.T) {
	c := New(&fakeSnapshots{}, nil)
	c.TakeStyleQuiz()
	cmd := c.SubmitStyleQuiz([]string{"pictures"})
	c.ClassifyDone(cmd.Epoch, session.StyleVisual, nil)
	if c.State() != StateShowQuizResults {
		t.Fatalf("state = %v, want show-quiz-results", c.State())
	}

	if got := c.SubmitContent("notes"); got.Kind != CmdNone {
		t.Errorf("SubmitContent issued %v outside welcome", got.Kind)
	}
	if c.State() != StateShowQuizResults {
		t.Errorf("state = %v, want show-quiz-results unchanged", c.State())
	}
}

func TestChangeTab_NotesCornellGenerates(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleCornellNotes)

	cmd := c.ChangeTab(session.TabNotes)
	if cmd.Kind != CmdGenerateNotes {
		t.Fatalf("cmd.Kind = %v, want CmdGenerateNotes", cmd.Kind)
	}

	notes := &session.Notes{MainNotes: "Light reactions.", Cues: []string{"ATP?"}, Summary: "Short."}
	c.NotesReady(cmd.Epoch, notes, nil)

	if c.Notes() == nil || c.Notes().MainNotes != "Light reactions." {
		t.Errorf("notes = %+v", c.Notes())
	}
}

func TestChangeTab_NotesOtherStylesGetPlaceholder(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleVisual)

	cmd := c.ChangeTab(session.TabNotes)
	if cmd.Kind != CmdNone {
		t.Fatalf("cmd.Kind = %v, non-Cornell notes must not generate", cmd.Kind)
	}
	if c.Notes() == nil {
		t.Fatal("placeholder notes missing")
	}
	if c.Generating() {
		t.Error("Generating() = true for placeholder notes")
	}
}

func TestSendChat_AppendsUserAndPlaceholder(t *testing.T) {
	fs := &fakeSnapshots{}
	c := startLearning(t, fs, session.StyleFeynman)

	cmd := c.SendChat("What is the Calvin cycle?")
	if cmd.Kind != CmdStreamChat {
		t.Fatalf("cmd.Kind = %v, want CmdStreamChat", cmd.Kind)
	}

	tr := c.Transcript()
	if len(tr) != 3 {
		t.Fatalf("transcript has %d messages, want 3", len(tr))
	}
	if tr[1].Sender != session.SenderUser || tr[1].Text != "What is the Calvin cycle?" {
		t.Errorf("user message = %+v", tr[1])
	}
	last := tr[2]
	if last.Sender != session.SenderAI || last.Text != "" {
		t.Errorf("placeholder = %+v", last)
	}
	if cmd.MessageID != last.ID {
		t.Errorf("cmd.MessageID = %q, want placeholder ID %q", cmd.MessageID, last.ID)
	}

	// Prompt history includes the user's message but not the placeholder.
	if len(cmd.Transcript) != 2 {
		t.Fatalf("cmd.Transcript has %d messages, want 2", len(cmd.Transcript))
	}
	if cmd.Transcript[1].Text != "What is the Calvin cycle?" {
		t.Errorf("history tail = %+v", cmd.Transcript[1])
	}

	if !c.Chatting() {
		t.Error("Chatting() = false with a turn in flight")
	}
	if second := c.SendChat("another"); second.Kind != CmdNone {
		t.Errorf("second SendChat issued %v while chatting", second.Kind)
	}
}

func TestChatDelta_AccumulatesIntoPlaceholder(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)
	cmd := c.SendChat("hi")

	c.ChatDelta(cmd.Epoch, cmd.MessageID, "The Calvin ")
	c.ChatDelta(cmd.Epoch, cmd.MessageID, "cycle fixes carbon.")
	c.ChatDone(cmd.Epoch, cmd.MessageID, nil)

	tr := c.Transcript()
	got := tr[len(tr)-1].Text
	if got != "The Calvin cycle fixes carbon." {
		t.Errorf("streamed text = %q", got)
	}
	if c.Chatting() {
		t.Error("Chatting() = true after ChatDone")
	}
}

func TestChatDelta_WrongMessageIgnored(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)
	cmd := c.SendChat("hi")

	c.ChatDelta(cmd.Epoch, "not-the-placeholder", "stray")

	tr := c.Transcript()
	if tr[len(tr)-1].Text != "" {
		t.Errorf("placeholder text = %q, want empty", tr[len(tr)-1].Text)
	}
}

func TestChatDone_ErrorWithNoDeltas_ReplacesWithApology(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)
	cmd := c.SendChat("hi")

	c.ChatDone(cmd.Epoch, cmd.MessageID, errors.New("stream broken"))

	tr := c.Transcript()
	if len(tr) != 3 {
		t.Fatalf("transcript has %d messages, want 3", len(tr))
	}
	if tr[2].Text != apologyText {
		t.Errorf("placeholder text = %q, want apology", tr[2].Text)
	}
}

func TestChatDone_ErrorAfterPartialText_AppendsApology(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)
	cmd := c.SendChat("hi")

	c.ChatDelta(cmd.Epoch, cmd.MessageID, "Partial answer")
	c.ChatDone(cmd.Epoch, cmd.MessageID, errors.New("stream broken"))

	tr := c.Transcript()
	if len(tr) != 4 {
		t.Fatalf("transcript has %d messages, want 4", len(tr))
	}
	if tr[2].Text != "Partial answer" {
		t.Errorf("partial text = %q", tr[2].Text)
	}
	if tr[3].Sender != session.SenderAI || tr[3].Text != apologyText {
		t.Errorf("apology message = %+v", tr[3])
	}
}

func TestExplainMore(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)

	// Greeting is a completed tutor reply, so explain-more is available.
	if !c.CanExplainMore() {
		t.Fatal("CanExplainMore() = false after greeting")
	}

	cmd := c.ExplainMore()
	if cmd.Kind != CmdStreamChat {
		t.Fatalf("cmd.Kind = %v, want CmdStreamChat", cmd.Kind)
	}
	tr := c.Transcript()
	if tr[1].Text != explainMorePrompt {
		t.Errorf("prompt = %q", tr[1].Text)
	}

	// Not available while the reply is streaming.
	if c.CanExplainMore() {
		t.Error("CanExplainMore() = true mid-stream")
	}
}

func TestStartOver_ClearsEverything(t *testing.T) {
	fs := &fakeSnapshots{}
	c := startLearning(t, fs, session.StyleVisual)
	c.ChangeTab(session.TabNotes)

	c.StartOver()

	if c.State() != StateWelcome {
		t.Fatalf("state = %v, want welcome", c.State())
	}
	if c.Learning() != nil || c.Transcript() != nil || c.Notes() != nil {
		t.Error("session data survived StartOver")
	}
	if c.Style() != session.DefaultStyle {
		t.Errorf("style = %q, want default", c.Style())
	}
	if fs.clears == 0 {
		t.Error("StartOver did not clear the snapshot store")
	}
	if fs.snap != nil {
		t.Error("snapshot survived StartOver")
	}
}

func TestResume_RestoresSavedSession(t *testing.T) {
	fs := &fakeSnapshots{snap: &session.Snapshot{
		Version:    session.SnapshotVersion,
		Session:    session.NewSession("saved content", testAnalysis()),
		Style:      session.StyleCornellNotes,
		Transcript: []session.Message{session.NewMessage(session.SenderAI, greetingText)},
		ActiveTab:  session.TabNotes,
	}}

	c := New(fs, nil)
	if !c.Resumable() {
		t.Fatal("Resumable() = false with a saved snapshot")
	}

	c.RequestResume()

	if c.State() != StateLearning {
		t.Fatalf("state = %v, want learning", c.State())
	}
	l := c.Learning()
	if l == nil || l.Session.OriginalContent != "saved content" {
		t.Fatalf("learning = %+v", l)
	}
	if l.Style != session.StyleCornellNotes {
		t.Errorf("style = %q", l.Style)
	}
	if c.ActiveTab() != session.TabNotes {
		t.Errorf("active tab = %q", c.ActiveTab())
	}
	if c.Resumable() {
		t.Error("Resumable() = true after resuming")
	}
}

func TestResume_AbsentSnapshot(t *testing.T) {
	c := New(&fakeSnapshots{}, nil)

	c.RequestResume()

	if c.State() != StateWelcome {
		t.Fatalf("state = %v, want welcome", c.State())
	}
	e := c.Err()
	if e == nil || e.Kind != KindPersistence || e.Message != msgResumeAbsent {
		t.Errorf("err = %+v", e)
	}
}

func TestResume_CorruptSnapshotClearsStore(t *testing.T) {
	fs := &fakeSnapshots{loadErr: errors.New("invalid payload")}
	c := New(fs, nil)

	c.RequestResume()

	if c.State() != StateWelcome {
		t.Fatalf("state = %v, want welcome", c.State())
	}
	e := c.Err()
	if e == nil || e.Kind != KindPersistence || e.Message != msgResumeCorrupt {
		t.Errorf("err = %+v", e)
	}
	if fs.clears == 0 {
		t.Error("corrupt snapshot was not cleared")
	}
	if c.Resumable() {
		t.Error("Resumable() = true after corrupt load")
	}
}

func TestPersist_SnapshotReflectsLearningState(t *testing.T) {
	fs := &fakeSnapshots{}
	c := startLearning(t, fs, session.StyleFeynman)

	cmd := c.SendChat("hello")
	c.ChatDelta(cmd.Epoch, cmd.MessageID, "hi there")
	c.ChatDone(cmd.Epoch, cmd.MessageID, nil)

	snap := fs.snap
	if snap == nil {
		t.Fatal("no snapshot saved")
	}
	if snap.Version != session.SnapshotVersion {
		t.Errorf("version = %d", snap.Version)
	}
	if snap.Style != session.StyleFeynman {
		t.Errorf("style = %q", snap.Style)
	}
	if len(snap.Transcript) != 3 {
		t.Errorf("snapshot transcript has %d messages", len(snap.Transcript))
	}
	if snap.Transcript[2].Text != "hi there" {
		t.Errorf("snapshot tail = %q", snap.Transcript[2].Text)
	}
}

func TestPersist_SaveFailureDoesNotDisturbSession(t *testing.T) {
	fs := &fakeSnapshots{saveErr: errors.New("disk full")}
	c := startLearning(t, fs, session.StyleFeynman)

	if c.Err() != nil {
		t.Errorf("err = %+v, snapshot failure must stay silent", c.Err())
	}
	if c.State() != StateLearning {
		t.Errorf("state = %v", c.State())
	}
}

func TestCheckInvariants_RepairsLostLearningData(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)
	c.learning = nil // simulate the impossible

	c.CheckInvariants()

	if c.State() != StateWelcome {
		t.Fatalf("state = %v, want welcome after repair", c.State())
	}
	if c.Err() != nil {
		t.Errorf("err = %+v, repair must stay silent", c.Err())
	}
}

func TestSelectStyle_OnlyOnWelcome(t *testing.T) {
	c := startLearning(t, &fakeSnapshots{}, session.StyleFeynman)
	c.SelectStyle(session.StyleVisual)
	if c.Style() != session.StyleFeynman {
		t.Errorf("style changed mid-session: %q", c.Style())
	}
}
