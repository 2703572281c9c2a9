package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/todo-api/internal/constants"
	"github.com/yukikurage/todo-api/internal/models"
)

var (
	ErrSuggestionsUnavailable = errors.New("suggestion service is not configured")
	ErrSuggestionTextRequired = errors.New("text is required")
	ErrSuggestionTextTooLong  = errors.New("text is too long")
	ErrNoSuggestions          = errors.New("no todos could be extracted from the text")
)

// SuggestedTodo is a todo proposed by the model. It is never persisted here;
// the client decides which ones to create.
type SuggestedTodo struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *models.Date `json:"dueDate"`
	Priority    string       `json:"priority"`
}

// SuggestionService extracts todos from free text with an OpenAI chat model.
type SuggestionService struct {
	client *openai.Client
	model  string
	now    func() time.Time
}

// NewSuggestionService returns nil when apiKey is empty so that callers can
// treat the feature as disabled.
func NewSuggestionService(apiKey, model string) *SuggestionService {
	if apiKey == "" {
		return nil
	}
	return NewSuggestionServiceWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewSuggestionServiceWithConfig allows pointing the client at another base URL.
func NewSuggestionServiceWithConfig(cfg openai.ClientConfig, model string) *SuggestionService {
	if model == "" {
		model = openai.GPT4o
	}
	return &SuggestionService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		now:    time.Now,
	}
}

const suggestionPrompt = `You extract to-do items from text.

Today is %s.

Text:
%s

Reply with a JSON array only, no prose:
[
  {
    "title": "short title",
    "description": "details, may be empty",
    "dueDate": "YYYY-MM-DD or null when no deadline is stated",
    "priority": "High, Medium or Low"
  }
]

Rules:
- Return [] when the text contains no tasks
- Convert relative deadlines ("tomorrow", "next Friday") to calendar dates`

// Suggest asks the model for todos found in text.
func (s *SuggestionService) Suggest(ctx context.Context, text string) ([]SuggestedTodo, error) {
	if s == nil || s.client == nil {
		return nil, ErrSuggestionsUnavailable
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrSuggestionTextRequired
	}
	if len(text) > constants.MaxSuggestionTextLength {
		return nil, ErrSuggestionTextTooLong
	}

	today := s.now().Format(constants.DateLayout)
	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf(suggestionPrompt, today, text),
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	suggestions, err := parseSuggestions(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if len(suggestions) == 0 {
		return nil, ErrNoSuggestions
	}
	if len(suggestions) > constants.MaxSuggestedTodos {
		suggestions = suggestions[:constants.MaxSuggestedTodos]
	}
	return suggestions, nil
}

// suggestionReply is one entry as the model writes it. dueDate stays a string
// so that one malformed date cannot reject the whole reply.
type suggestionReply struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"dueDate"`
	Priority    string  `json:"priority"`
}

// parseSuggestions decodes the model reply, tolerating a markdown code fence.
// Entries without a title are dropped; unparseable due dates are cleared.
func parseSuggestions(content string) ([]SuggestedTodo, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	var raw []suggestionReply
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	valid := make([]SuggestedTodo, 0, len(raw))
	for _, reply := range raw {
		title := strings.TrimSpace(reply.Title)
		if title == "" {
			continue
		}
		valid = append(valid, SuggestedTodo{
			Title:       title,
			Description: reply.Description,
			DueDate:     parseSuggestedDate(reply.DueDate),
			Priority:    reply.Priority,
		})
	}
	return valid, nil
}

// parseSuggestedDate accepts a calendar date or an RFC 3339 timestamp and
// returns nil for anything else.
func parseSuggestedDate(value *string) *models.Date {
	if value == nil {
		return nil
	}
	text := strings.TrimSpace(*value)
	if text == "" {
		return nil
	}

	if date, err := models.ParseDate(text); err == nil {
		return &date
	}
	if ts, err := time.Parse(time.RFC3339, text); err == nil {
		date := models.NewDate(ts.Year(), ts.Month(), ts.Day())
		return &date
	}
	return nil
}
