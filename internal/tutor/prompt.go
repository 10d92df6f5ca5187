package tutor

import (
	"fmt"
	"strings"

	"github.com/lumilearn/lumi/internal/session"
)

const (
	// chatHistoryWindow is how many recent transcript entries are sent
	// with each chat turn.
	chatHistoryWindow = 6

	// chatContentLimit is the maximum number of characters of the
	// original content included in chat prompts.
	chatContentLimit = 1500
)

const basePersona = `You are 'Lumi', a friendly, patient, and encouraging learning companion. Your primary goal is to help users, especially those who are neurodiverse, understand complex topics. You break down information into simple, manageable steps. You never judge mistakes and always reframe them as learning opportunities. Your communication style is clear, positive, and supportive.`

// personaPrompt returns the tutor system prompt for a learning style.
func personaPrompt(style session.Style) string {
	var b strings.Builder
	b.WriteString(basePersona)

	switch style {
	case session.StyleVisual:
		b.WriteString(" You excel at creating visual analogies, describing diagrams, and structuring information in a way that is easy to visualize, like using mind maps in text format.")
	case session.StyleFeynman:
		b.WriteString(" You are an expert at using the Feynman technique. You explain everything in the simplest possible terms, using analogies and avoiding jargon.")
	case session.StyleCornellNotes:
		b.WriteString(" You are a master of organization and structure, helping the user create and understand notes in the Cornell Notes format.")
	case session.StyleSQ3R:
		b.WriteString(" You guide the user through the SQ3R (Survey, Question, Read, Recite, Review) method, helping them to actively engage with the material.")
	}

	return b.String()
}

func buildAnalyzeMessage(content string) string {
	var b strings.Builder
	b.WriteString("Based on the following content, please act as the user's learning companion and prepare their initial learning session.\n")
	b.WriteString("Content:\n---\n")
	b.WriteString(content)
	b.WriteString("\n---\n")
	return b.String()
}

func buildClassifyMessage(answers []string) string {
	var b strings.Builder
	b.WriteString("A user has answered a quiz to determine their learning style. Based on these answers, which of the following learning styles do they most align with? The options are: Visual, Feynman, Cornell Notes, SQ3R Method.\n\nAnswers:\n")
	for i, a := range answers {
		fmt.Fprintf(&b, "%d. %s\n", i+1, a)
	}
	b.WriteString("\nRespond with only the name of the learning style (e.g., \"Visual\").")
	return b.String()
}

func buildQuizMessage(content string) string {
	var b strings.Builder
	b.WriteString("Based on the provided content, generate a 5-question multiple-choice quiz. The questions should test understanding of the key concepts.\n")
	b.WriteString("Content:\n---\n")
	b.WriteString(content)
	b.WriteString("\n---\n")
	return b.String()
}

func buildNotesMessage(content string, transcript []session.Message) string {
	var b strings.Builder
	b.WriteString("Create a set of Cornell Notes based on the original content and our conversation.\n")
	b.WriteString("Original Content:\n---\n")
	b.WriteString(content)
	b.WriteString("\n---\nConversation History:\n---\n")
	b.WriteString(formatTranscript(transcript, 0))
	b.WriteString("\n---\nPlease structure the notes into main notes, cues, and a summary.")
	return b.String()
}

func buildChatMessage(content string, transcript []session.Message) string {
	var b strings.Builder
	b.WriteString("You are continuing a conversation with a user about the following content. Keep your answers concise and tailored to their learning style.\n")
	b.WriteString("Original Content Summary:\n---\n")
	b.WriteString(truncate(content, chatContentLimit))
	b.WriteString("\n---\n\nConversation History:\n")
	b.WriteString(formatTranscript(transcript, chatHistoryWindow))
	return b.String()
}

// formatTranscript renders the last `window` messages as "sender: text"
// lines. A window of 0 includes the whole transcript.
func formatTranscript(transcript []session.Message, window int) string {
	msgs := transcript
	if window > 0 && len(msgs) > window {
		msgs = msgs[len(msgs)-window:]
	}
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, fmt.Sprintf("%s: %s", m.Sender, m.Text))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
