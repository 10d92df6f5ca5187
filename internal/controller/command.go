package controller

import "github.com/lumilearn/lumi/internal/session"

// CommandKind names the asynchronous work a controller event has
// requested. The controller itself never performs I/O: it returns a
// Command and the caller runs it, feeding the result back through the
// matching completion method with the Command's Epoch.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdAnalyze
	CmdClassifyStyle
	CmdGenerateQuiz
	CmdGenerateNotes
	CmdStreamChat
)

func (k CommandKind) String() string {
	switch k {
	case CmdNone:
		return "none"
	case CmdAnalyze:
		return "analyze"
	case CmdClassifyStyle:
		return "classify-style"
	case CmdGenerateQuiz:
		return "generate-quiz"
	case CmdGenerateNotes:
		return "generate-notes"
	case CmdStreamChat:
		return "stream-chat"
	default:
		return "unknown"
	}
}

// Command describes one unit of asynchronous work. Only the fields
// relevant to the Kind are populated. Epoch must be echoed back on the
// completion so the controller can discard results from a session that
// has since been reset.
type Command struct {
	Kind  CommandKind
	Epoch uint64

	// CmdAnalyze, CmdGenerateQuiz, CmdGenerateNotes
	Content string
	Style   session.Style

	// CmdClassifyStyle
	Answers []string

	// CmdStreamChat
	Transcript []session.Message
	MessageID  string
}

func none() Command {
	return Command{Kind: CmdNone}
}
