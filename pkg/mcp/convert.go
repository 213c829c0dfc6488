package mcp

import (
	"encoding/json"
	"time"

	"github.com/adrianliechti/waves-mcp/pkg/tool"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func convertResult(result any) *mcp.CallToolResult {
	switch v := result.(type) {
	case *mcp.CallToolResult:
		return v

	case *tool.Result:
		return convertEnvelope(v)

	case string:
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: v,
				},
			},
		}

	default:
		data, _ := json.Marshal(v)

		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: string(data),
				},
			},

			StructuredContent: v,
		}
	}
}

// convertEnvelope maps a tool envelope onto MCP content. The envelope is
// additionally attached as structured content.
func convertEnvelope(r *tool.Result) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		StructuredContent: r,
	}

	if len(r.Meta) > 0 {
		result.Meta = r.Meta
	}

	for _, c := range r.Content {
		switch c.Type {
		case tool.ContentTypeError:
			result.IsError = true

			result.Content = append(result.Content, &mcp.TextContent{
				Text: c.Message,
			})

		case tool.ContentTypeResource:
			if c.Resource == nil {
				continue
			}

			result.Content = append(result.Content, convertResource(c.Resource))
		}
	}

	return result
}

func convertResource(r *tool.Resource) mcp.Content {
	if r.Filename == "" {
		return &mcp.EmbeddedResource{
			Resource: &mcp.ResourceContents{
				URI:      r.URI,
				MIMEType: r.MIMEType,

				Text: r.Text,
			},
		}
	}

	meta := map[string]any{}

	if r.Duration != nil {
		meta["duration"] = *r.Duration
	}

	if r.CreatedAt != nil {
		meta["created_at"] = r.CreatedAt.Format(time.RFC3339Nano)
	}

	return &mcp.ResourceLink{
		URI:      r.URI,
		Name:     r.Filename,
		MIMEType: r.MIMEType,

		Size: r.Size,

		Meta: meta,
	}
}
