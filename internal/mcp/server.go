package mcp

import (
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerName is the name announced to MCP clients
const ServerName = "mysql_generator"

// NewServer creates an MCP server exposing sql_executor and get_table_ddl backed by exec
func NewServer(exec Executor, version string) *server.MCPServer {
	log.Println("Setting up MCP server")

	s := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
		server.WithLogging(),
	)

	h := &handler{exec: exec}

	// Create SQL execution tool
	sqlExecutorTool := mcp.NewTool(ToolSQLExecutor,
		mcp.WithDescription("Executes a SQL statement (INSERT/UPDATE/DELETE/SELECT/SHOW) against the named MySQL database. "+
			"SELECT returns one line per row, SHOW returns the DDL column of the first row, "+
			"other statements are committed and return the affected row count. "+
			"Connection settings come from MYSQL_HOST, MYSQL_PORT, MYSQL_USER and MYSQL_PASSWORD."),
		mcp.WithString(ArgSQL,
			mcp.Required(),
			mcp.Description("The SQL statement to execute"),
		),
		mcp.WithString(ArgDatabase,
			mcp.Required(),
			mcp.Description("Database name"),
		),
		mcp.WithString(ArgFormat,
			mcp.Description("Output format: text (default) or json"),
			mcp.DefaultString("text"),
		),
	)

	// Create table DDL tool
	tableDDLTool := mcp.NewTool(ToolTableDDL,
		mcp.WithDescription("Returns the CREATE TABLE statement of the specified table"),
		mcp.WithString(ArgTableName,
			mcp.Required(),
			mcp.Description("Table name"),
		),
		mcp.WithString(ArgDatabase,
			mcp.Required(),
			mcp.Description("Database name"),
		),
		mcp.WithString(ArgFormat,
			mcp.Description("Output format: text (default) or json"),
			mcp.DefaultString("text"),
		),
	)

	// Register tool handlers
	s.AddTool(sqlExecutorTool, h.handleSQLExecutor)
	s.AddTool(tableDDLTool, h.handleTableDDL)

	log.Println("MCP server setup complete")
	return s
}
