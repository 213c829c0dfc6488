package config

import (
	"github.com/adrianliechti/waves-mcp/pkg/mcp"
)

const DefaultName = "smallest-ai-waves"

func (c *Config) MCP() *mcp.Server {
	return c.mcp
}

type mcpConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Instructions string `yaml:"instructions"`
}

func (c *Config) registerMCP(f *configFile) error {
	name := f.MCP.Name

	if name == "" {
		name = DefaultName
	}

	var options []mcp.Option

	if f.MCP.Version != "" {
		options = append(options, mcp.WithVersion(f.MCP.Version))
	}

	if f.MCP.Instructions != "" {
		options = append(options, mcp.WithInstructions(f.MCP.Instructions))
	}

	s, err := mcp.New(name, c.Tools(), options...)

	if err != nil {
		return err
	}

	c.mcp = s

	return nil
}
