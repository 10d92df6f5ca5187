package app

import (
	"errors"
	"testing"

	"github.com/lumilearn/lumi/internal/controller"
	"github.com/lumilearn/lumi/internal/session"
	"github.com/lumilearn/lumi/internal/tutor"
)

func newTestModel(tc tutor.Client) *AppModel {
	return newAppModel(Options{Tutor: tc})
}

func TestDispatchAnalyze(t *testing.T) {
	mock := &tutor.MockClient{
		AnalysisResult: &session.Analysis{Summary: "the water cycle"},
	}
	m := newTestModel(mock)

	cmd := m.dispatch(controller.Command{Kind: controller.CmdAnalyze, Epoch: 7, Content: "rain"})
	if cmd == nil {
		t.Fatal("expected a command for analyze")
	}

	msg, ok := cmd().(analyzeDoneMsg)
	if !ok {
		t.Fatalf("expected analyzeDoneMsg, got %T", cmd())
	}
	if msg.epoch != 7 {
		t.Errorf("epoch = %d, want 7", msg.epoch)
	}
	if msg.err != nil || msg.analysis.Summary != "the water cycle" {
		t.Errorf("analysis = %+v, err = %v", msg.analysis, msg.err)
	}
	if mock.AnalyzeCalls != 1 {
		t.Errorf("AnalyzeCalls = %d", mock.AnalyzeCalls)
	}
	if m.loadingCaption == "" {
		t.Error("dispatch should set a loading caption for analyze")
	}
}

func TestDispatchClassifyError(t *testing.T) {
	mock := &tutor.MockClient{StyleErr: errors.New("provider down")}
	m := newTestModel(mock)

	cmd := m.dispatch(controller.Command{Kind: controller.CmdClassifyStyle, Epoch: 1, Answers: []string{"a"}})
	msg, ok := cmd().(classifyDoneMsg)
	if !ok {
		t.Fatalf("expected classifyDoneMsg, got %T", cmd())
	}
	if msg.err == nil {
		t.Error("provider error should be carried on the message")
	}
}

func TestDispatchNone(t *testing.T) {
	m := newTestModel(&tutor.MockClient{})
	if m.dispatch(controller.Command{Kind: controller.CmdNone}) != nil {
		t.Error("CmdNone should map to a nil command")
	}
}

// drainStream runs the await/re-arm loop the update loop performs,
// returning every event in order.
func drainStream(t *testing.T, m *AppModel, cmd controller.Command) []chatEventMsg {
	t.Helper()
	var events []chatEventMsg
	next := m.startChatStream(cmd)
	for next != nil {
		msg := next()
		if msg == nil {
			break
		}
		sm, ok := msg.(chatStreamMsg)
		if !ok {
			t.Fatalf("expected chatStreamMsg, got %T", msg)
		}
		events = append(events, sm.event)
		if sm.event.done {
			break
		}
		next = awaitChat(sm.ch)
	}
	return events
}

func TestChatStreamDeliversDeltasInOrder(t *testing.T) {
	mock := &tutor.MockClient{ChatDeltas: []string{"Hel", "lo", "!"}}
	m := newTestModel(mock)

	events := drainStream(t, m, controller.Command{
		Kind: controller.CmdStreamChat, Epoch: 3, MessageID: "m1",
	})

	if len(events) != 4 {
		t.Fatalf("got %d events, want 3 deltas + done", len(events))
	}
	text := ""
	for _, e := range events[:3] {
		if e.done || e.id != "m1" || e.epoch != 3 {
			t.Errorf("bad delta event: %+v", e)
		}
		text += e.delta
	}
	if text != "Hello!" {
		t.Errorf("assembled text = %q", text)
	}
	final := events[3]
	if !final.done || final.err != nil {
		t.Errorf("final event = %+v", final)
	}
}

func TestChatStreamErrorAfterPartialOutput(t *testing.T) {
	mock := &tutor.MockClient{
		ChatDeltas:   []string{"part", "ial"},
		ChatErr:      errors.New("connection reset"),
		ChatErrAfter: 1,
	}
	m := newTestModel(mock)

	events := drainStream(t, m, controller.Command{
		Kind: controller.CmdStreamChat, Epoch: 1, MessageID: "m2",
	})

	if len(events) != 2 {
		t.Fatalf("got %d events, want 1 delta + done", len(events))
	}
	if events[0].delta != "part" {
		t.Errorf("delta = %q", events[0].delta)
	}
	if !events[1].done || events[1].err == nil {
		t.Errorf("final event should carry the stream error: %+v", events[1])
	}
}
