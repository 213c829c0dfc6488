package config

import (
	"errors"
	"slices"

	"github.com/adrianliechti/waves-mcp/pkg/limiter"
	"github.com/adrianliechti/waves-mcp/pkg/otel"
	"github.com/adrianliechti/waves-mcp/pkg/tool"

	toolwaves "github.com/adrianliechti/waves-mcp/pkg/tool/waves"
)

func (c *Config) RegisterTool(id string, p tool.Provider) {
	if c.tools == nil {
		c.tools = make(map[string]tool.Provider)
	}

	c.tools[id] = p
}

// Tools returns the registered tool providers ordered by id.
func (c *Config) Tools() []tool.Provider {
	var ids []string

	for id := range c.tools {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	var tools []tool.Provider

	for _, id := range ids {
		tools = append(tools, c.tools[id])
	}

	return tools
}

func (c *Config) Tool(id string) (tool.Provider, error) {
	if c.tools != nil {
		if p, ok := c.tools[id]; ok {
			return p, nil
		}
	}

	return nil, errors.New("tool not found: " + id)
}

func (c *Config) registerTools(f *configFile) error {
	client, err := toolwaves.New(c.waves, c.store, toolwaves.WithMaxAge(c.Cleanup.MaxAge))

	if err != nil {
		return err
	}

	var p tool.Provider = client

	if l := createLimiter(f.Waves.Limit); l != nil {
		p = limiter.NewTool(l, p)
	}

	p = otel.NewTool("waves", p)

	c.RegisterTool("waves", p)

	return nil
}
