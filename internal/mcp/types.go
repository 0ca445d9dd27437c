package mcp

import (
	"context"

	"github.com/kaz/mysqlgen/internal/sqlexec"
)

// Tool names
const (
	ToolSQLExecutor = "sql_executor"
	ToolTableDDL    = "get_table_ddl"
)

// Tool argument names
const (
	ArgSQL       = "sql"
	ArgDatabase  = "database"
	ArgTableName = "table_name"
	ArgFormat    = "format"
)

// Executor runs statements for the tools. *sqlexec.Executor satisfies it.
type Executor interface {
	Execute(ctx context.Context, stmt string, database string) (*sqlexec.Result, error)
	TableDDL(ctx context.Context, table string, database string) (*sqlexec.Result, error)
}
