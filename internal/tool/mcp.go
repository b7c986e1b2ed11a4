package tool

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerTools converts every registered tool into its mcp-go form, each
// paired with a handler that dispatches back through the registry.
func ServerTools(reg *Registry) []server.ServerTool {
	defs := reg.Definitions()
	tools := make([]server.ServerTool, 0, len(defs))
	for _, def := range defs {
		schema, err := json.Marshal(def.InputSchema)
		if err != nil {
			// A tool with an unmarshalable schema is a programming error;
			// expose it with an empty schema rather than dropping it.
			schema = []byte(`{"type":"object"}`)
		}
		tools = append(tools, server.ServerTool{
			Tool:    mcp.NewToolWithRawSchema(def.Name, def.Description, schema),
			Handler: dispatchHandler(reg, def.Name),
		})
	}
	return tools
}

func dispatchHandler(reg *Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := reg.Execute(ctx, name, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}
