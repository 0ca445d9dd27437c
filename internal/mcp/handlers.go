package mcp

import (
	"fmt"

	"github.com/kaz/mysqlgen/internal/sqlexec"
	"github.com/mark3labs/mcp-go/mcp"
)

// requiredString returns the string argument name. Empty strings are passed
// through so the database decides what they mean.
func requiredString(request mcp.CallToolRequest, name string) (string, error) {
	raw, ok := request.Params.Arguments[name]
	if !ok || raw == nil {
		return "", fmt.Errorf("%s is required", name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", name, raw)
	}
	return s, nil
}

func requestFormat(request mcp.CallToolRequest) (sqlexec.Format, error) {
	v, ok := request.Params.Arguments[ArgFormat]
	if !ok || v == nil {
		return sqlexec.FormatText, nil
	}
	raw, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", ArgFormat, v)
	}
	return sqlexec.ParseFormat(raw)
}

// Argument problems are reported through the same text channel as execution
// failures; the tool never returns a protocol-level error.
func newToolResultError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultText(sqlexec.RenderError(err))
}
