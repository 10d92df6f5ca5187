package tutor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lumilearn/lumi/internal/llm"
	"github.com/lumilearn/lumi/internal/session"
)

// Client is the generation capability set the session controller
// consumes. All methods may fail with a wrapped llm error; style
// classification is the exception — an unrecognized answer falls back
// to the default style instead of failing.
type Client interface {
	// Analyze produces the initial session analysis for the content.
	Analyze(ctx context.Context, content string, style session.Style) (*session.Analysis, error)

	// ClassifyStyle maps style-quiz answers to a learning style.
	ClassifyStyle(ctx context.Context, answers []string) (session.Style, error)

	// GenerateQuiz produces a multiple-choice comprehension quiz.
	GenerateQuiz(ctx context.Context, content string, style session.Style) ([]session.QuizQuestion, error)

	// GenerateNotes produces Cornell notes from the content and the
	// conversation so far.
	GenerateNotes(ctx context.Context, content string, transcript []session.Message) (*session.Notes, error)

	// StreamChat continues the tutoring conversation, invoking onDelta
	// for each reply fragment in order.
	StreamChat(ctx context.Context, content string, transcript []session.Message, style session.Style, onDelta func(string)) error
}

// Config bounds generation requests.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard generation limits.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// client implements Client on an llm.Provider.
type client struct {
	provider llm.Provider
	cfg      Config
}

// New creates a tutor client backed by the given provider.
func New(provider llm.Provider, cfg Config) Client {
	return &client{provider: provider, cfg: cfg}
}

func (c *client) Analyze(ctx context.Context, content string, style session.Style) (*session.Analysis, error) {
	req := llm.Request{
		System: personaPrompt(style),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildAnalyzeMessage(content)},
		},
		Schema:      AnalysisSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("analyze content: %w", err)
	}

	var out session.Analysis
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse analysis response: %w", err)
	}
	return &out, nil
}

func (c *client) ClassifyStyle(ctx context.Context, answers []string) (session.Style, error) {
	req := llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildClassifyMessage(answers)},
		},
		MaxTokens: 64,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("classify style: %w", err)
	}

	raw := trimQuotes(string(resp.Content))
	if style, ok := session.ParseStyle(raw); ok {
		return style, nil
	}
	// The model answered something outside the enumerated set; fall back
	// rather than failing the quiz flow.
	return session.DefaultStyle, nil
}

func (c *client) GenerateQuiz(ctx context.Context, content string, style session.Style) ([]session.QuizQuestion, error) {
	req := llm.Request{
		System: personaPrompt(style),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizMessage(content)},
		},
		Schema:      QuizSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	var out struct {
		Questions []session.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	// Drop questions whose stated answer matches none of the options;
	// they cannot be scored.
	questions := out.Questions[:0]
	for _, q := range out.Questions {
		if q.CorrectIndex() >= 0 {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("generate quiz: %w", &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     errors.New("no scorable questions"),
		})
	}
	return questions, nil
}

func (c *client) GenerateNotes(ctx context.Context, content string, transcript []session.Message) (*session.Notes, error) {
	req := llm.Request{
		System: personaPrompt(session.StyleCornellNotes),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildNotesMessage(content, transcript)},
		},
		Schema:      NotesSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate notes: %w", err)
	}

	var out session.Notes
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse notes response: %w", err)
	}
	return &out, nil
}

func (c *client) StreamChat(ctx context.Context, content string, transcript []session.Message, style session.Style, onDelta func(string)) error {
	req := llm.Request{
		System: personaPrompt(style),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildChatMessage(content, transcript)},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}

	if _, err := c.provider.GenerateStream(ctx, req, llm.StreamHandler(onDelta)); err != nil {
		return fmt.Errorf("stream chat: %w", err)
	}
	return nil
}

// trimQuotes strips surrounding whitespace and quote characters a model
// sometimes wraps around a bare style name.
func trimQuotes(s string) string {
	return strings.Trim(s, " \t\r\n\"'`")
}
