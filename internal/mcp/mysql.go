package mcp

import (
	"context"
	"log"

	"github.com/kaz/mysqlgen/internal/sqlexec"
	"github.com/mark3labs/mcp-go/mcp"
)

type handler struct {
	exec Executor
}

// SQL execution handler
func (h *handler) handleSQLExecutor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Println("Executing sql_executor")

	stmt, err := requiredString(request, ArgSQL)
	if err != nil {
		return newToolResultError(err), nil
	}
	database, err := requiredString(request, ArgDatabase)
	if err != nil {
		return newToolResultError(err), nil
	}
	format, err := requestFormat(request)
	if err != nil {
		return newToolResultError(err), nil
	}

	res, err := h.exec.Execute(ctx, stmt, database)
	return mcp.NewToolResultText(sqlexec.Render(res, err, format)), nil
}

// Table DDL retrieval handler
func (h *handler) handleTableDDL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log.Println("Retrieving table DDL")

	table, err := requiredString(request, ArgTableName)
	if err != nil {
		return newToolResultError(err), nil
	}
	database, err := requiredString(request, ArgDatabase)
	if err != nil {
		return newToolResultError(err), nil
	}
	format, err := requestFormat(request)
	if err != nil {
		return newToolResultError(err), nil
	}

	res, err := h.exec.TableDDL(ctx, table, database)
	return mcp.NewToolResultText(sqlexec.Render(res, err, format)), nil
}
