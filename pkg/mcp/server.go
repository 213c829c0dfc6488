package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adrianliechti/waves-mcp/pkg/tool"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	impl *mcp.Implementation
	opts *mcp.ServerOptions

	tools []tool.Provider
}

type Option func(*Server)

func WithVersion(version string) Option {
	return func(s *Server) {
		s.impl.Version = version
	}
}

func WithInstructions(instructions string) Option {
	return func(s *Server) {
		s.opts.Instructions = instructions
	}
}

func New(name string, tools []tool.Provider, options ...Option) (*Server, error) {
	s := &Server{
		impl: &mcp.Implementation{
			Name:    name,
			Version: "dev",
		},

		opts: &mcp.ServerOptions{
			KeepAlive: time.Second * 30,
		},

		tools: tools,
	}

	for _, option := range options {
		option(s)
	}

	return s, nil
}

// Server builds an mcp.Server exposing the tools of all providers.
func (s *Server) Server(ctx context.Context) (*mcp.Server, error) {
	server := mcp.NewServer(s.impl, s.opts)

	for _, p := range s.tools {
		tools, err := p.Tools(ctx)

		if err != nil {
			return nil, err
		}

		for _, t := range tools {
			data, _ := json.Marshal(tool.NormalizeSchema(t.Parameters))

			schema := new(jsonschema.Schema)

			if err := schema.UnmarshalJSON(data); err != nil {
				return nil, err
			}

			handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				args, err := parseArguments(req.Params.Arguments)

				if err != nil {
					return convertResult(tool.NewError("invalid input: " + err.Error())), nil
				}

				result, err := p.Execute(ctx, t.Name, args)

				if err != nil {
					return convertResult(tool.NewError(t.Name + " failed: " + err.Error())), nil
				}

				return convertResult(result), nil
			}

			server.AddTool(&mcp.Tool{
				Name:        t.Name,
				Description: t.Description,

				InputSchema: schema,
			}, handler)
		}
	}

	return server, nil
}

func parseArguments(val any) (map[string]any, error) {
	var args map[string]any

	switch v := val.(type) {
	case nil:
		return args, nil

	case map[string]any:
		return v, nil

	case json.RawMessage:
		if len(v) == 0 {
			return args, nil
		}

		if err := json.Unmarshal(v, &args); err != nil {
			return nil, err
		}

		return args, nil

	default:
		data, err := json.Marshal(v)

		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(data, &args); err != nil {
			return nil, err
		}

		return args, nil
	}
}
