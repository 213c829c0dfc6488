package tool

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidTool = errors.New("invalid tool")
)

type Tool struct {
	Name        string
	Description string

	Parameters map[string]any
}

type Provider interface {
	Tools(ctx context.Context) ([]Tool, error)
	Execute(ctx context.Context, name string, parameters map[string]any) (any, error)
}

const (
	ContentTypeResource = "resource"
	ContentTypeError    = "error"
)

// Result is the envelope every tool execution is answered with: either a
// resource (success) or an error entry.
type Result struct {
	Content []Content `json:"content"`

	Meta map[string]any `json:"meta,omitempty"`
}

type Content struct {
	Type string `json:"type"`

	Resource *Resource `json:"resource,omitempty"`
	Message  string    `json:"message,omitempty"`
}

type Resource struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`

	Text string `json:"text,omitempty"`

	Filename  string     `json:"filename,omitempty"`
	Size      *int64     `json:"size,omitempty"`
	Duration  *float64   `json:"duration,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func NewResult(r Resource) *Result {
	return &Result{
		Content: []Content{
			{
				Type:     ContentTypeResource,
				Resource: &r,
			},
		},
	}
}

func NewError(message string) *Result {
	return &Result{
		Content: []Content{
			{
				Type:    ContentTypeError,
				Message: message,
			},
		},
	}
}

// Error returns the message of the first error entry, if any.
func (r *Result) Error() (string, bool) {
	for _, c := range r.Content {
		if c.Type == ContentTypeError {
			return c.Message, true
		}
	}

	return "", false
}

func NormalizeSchema(schema map[string]any) map[string]any {
	if len(schema) == 0 {
		return map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		}
	}

	if schema["type"] == nil {
		schema["type"] = "object"
	}

	if schema["type"] == "object" && schema["properties"] == nil {
		schema["properties"] = map[string]any{}
	}

	return schema
}
