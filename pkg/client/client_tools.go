package client

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ToolService struct {
	Options []RequestOption
}

func NewToolService(opts ...RequestOption) ToolService {
	return ToolService{
		Options: opts,
	}
}

type Tool struct {
	Name        string
	Description string

	Schema any
}

type ToolResult struct {
	IsError bool

	Text  string
	Links []Link

	Structured json.RawMessage
}

type Link struct {
	URI      string
	Name     string
	MIMEType string

	Size *int64
}

func (r *ToolService) List(ctx context.Context, opts ...RequestOption) ([]Tool, error) {
	c := newRequestConfig(append(r.Options, opts...)...)

	session, err := c.connect(ctx)

	if err != nil {
		return nil, err
	}

	defer session.Close()

	resp, err := session.ListTools(ctx, nil)

	if err != nil {
		return nil, err
	}

	var result []Tool

	for _, t := range resp.Tools {
		result = append(result, Tool{
			Name:        t.Name,
			Description: t.Description,

			Schema: t.InputSchema,
		})
	}

	return result, nil
}

func (r *ToolService) Call(ctx context.Context, name string, args map[string]any, opts ...RequestOption) (*ToolResult, error) {
	if name == "" {
		return nil, errors.New("tool name required")
	}

	c := newRequestConfig(append(r.Options, opts...)...)

	session, err := c.connect(ctx)

	if err != nil {
		return nil, err
	}

	defer session.Close()

	resp, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})

	if err != nil {
		return nil, err
	}

	result := &ToolResult{
		IsError: resp.IsError,
	}

	var texts []string

	for _, content := range resp.Content {
		switch content := content.(type) {
		case *mcp.TextContent:
			texts = append(texts, content.Text)

		case *mcp.EmbeddedResource:
			if content.Resource != nil {
				texts = append(texts, content.Resource.Text)
			}

		case *mcp.ResourceLink:
			result.Links = append(result.Links, Link{
				URI:      content.URI,
				Name:     content.Name,
				MIMEType: content.MIMEType,

				Size: content.Size,
			})
		}
	}

	result.Text = strings.Join(texts, "\n")

	if resp.StructuredContent != nil {
		data, err := json.Marshal(resp.StructuredContent)

		if err != nil {
			return nil, err
		}

		result.Structured = data
	}

	return result, nil
}
