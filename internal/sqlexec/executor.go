package sqlexec

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/kaz/mysqlgen/internal/config"
	"github.com/percona/go-mysql/query"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Opener opens a database handle for one call
type Opener func(cfg *mysql.Config) (*sql.DB, error)

// OpenMySQL is the default Opener backed by go-sql-driver/mysql
func OpenMySQL(cfg *mysql.Config) (*sql.DB, error) {
	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}
	return sql.OpenDB(connector), nil
}

// Executor runs single statements against a database chosen per call.
// It holds no mutable state and is safe for concurrent use.
type Executor struct {
	base config.Config
	open Opener
}

type Option func(*Executor)

// WithOpener replaces the function used to open connections
func WithOpener(open Opener) Option {
	return func(e *Executor) {
		e.open = open
	}
}

// New creates an Executor using base as the connection parameters of every call
func New(base config.Config, opts ...Option) *Executor {
	e := &Executor{
		base: base,
		open: OpenMySQL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute opens a connection to database, runs stmt verbatim and closes the
// connection before returning. Any failure is returned as *ExecutionError.
func (e *Executor) Execute(ctx context.Context, stmt string, database string) (*Result, error) {
	kind := Classify(stmt)
	log.Printf("Executing %s statement on database %q (query id %s)", kind, database, query.Id(query.Fingerprint(stmt)))

	db, err := e.open(e.base.ForDatabase(database))
	if err != nil {
		return nil, newExecutionError(StageConnect, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database handle: %v", err)
		}
	}()
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, newExecutionError(StageConnect, err)
	}
	defer conn.Close()

	var res *Result
	switch kind {
	case Introspection:
		res, err = introspect(ctx, conn, stmt)
	case Query:
		res, err = selectRows(ctx, conn, stmt)
	default:
		res, err = mutate(ctx, conn, stmt)
	}
	if err != nil {
		log.Printf("%s statement on database %q failed: %v", kind, database, err)
		return nil, err
	}

	return res, nil
}

// TableDDL fetches the CREATE TABLE statement of table.
// The name is placed between backticks without escaping.
func (e *Executor) TableDDL(ctx context.Context, table string, database string) (*Result, error) {
	return e.Execute(ctx, ShowCreateTable(table), database)
}

// ShowCreateTable builds the statement used by TableDDL
func ShowCreateTable(table string) string {
	return "SHOW CREATE TABLE `" + table + "`"
}

func introspect(ctx context.Context, conn *sql.Conn, stmt string) (*Result, error) {
	rows, err := conn.QueryContext(ctx, stmt)
	if err != nil {
		return nil, newExecutionError(StageExecute, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, newExecutionError(StageFetch, err)
	}

	res := &Result{Kind: Introspection}
	values := make([]sql.RawBytes, len(columns))
	ptrs := make([]interface{}, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if res.DDLFound {
			continue
		}
		// SHOW CREATE TABLE returns (Table, Create Table)
		if len(columns) < 2 {
			return nil, newExecutionError(StageFetch, fmt.Errorf("expected at least 2 columns, got %d", len(columns)))
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, newExecutionError(StageFetch, err)
		}
		res.DDL = string(values[1])
		res.DDLFound = true
	}
	if err := rows.Err(); err != nil {
		return nil, newExecutionError(StageFetch, err)
	}

	return res, nil
}

func selectRows(ctx context.Context, conn *sql.Conn, stmt string) (*Result, error) {
	rows, err := conn.QueryContext(ctx, stmt)
	if err != nil {
		return nil, newExecutionError(StageExecute, err)
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, newExecutionError(StageFetch, err)
	}

	columns := make([]string, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = ct.Name()
	}

	res := &Result{Kind: Query, Columns: columns}

	// Buffer for scanning row data
	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range columns {
		valuePtrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, newExecutionError(StageFetch, err)
		}

		row := orderedmap.New[string, any]()
		for i, col := range columns {
			row.Set(col, convertValue(values[i], columnTypes[i].DatabaseTypeName()))
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, newExecutionError(StageFetch, err)
	}

	return res, nil
}

func mutate(ctx context.Context, conn *sql.Conn, stmt string) (*Result, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, newExecutionError(StageExecute, err)
	}

	result, err := tx.ExecContext(ctx, stmt)
	if err != nil {
		tx.Rollback()
		return nil, newExecutionError(StageExecute, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return nil, newExecutionError(StageFetch, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, newExecutionError(StageCommit, err)
	}

	return &Result{Kind: Mutation, RowsAffected: affected}, nil
}

// convertValue copies the []byte values the driver leaves undecoded.
// Integer and float columns already arrive as int64, uint64, float32 or
// float64 and pass through unchanged; DECIMAL keeps its exact text.
func convertValue(v interface{}, dbType string) interface{} {
	b, ok := v.([]byte)
	if !ok {
		return v
	}
	if strings.TrimPrefix(dbType, "UNSIGNED ") == "DECIMAL" {
		return Decimal(b)
	}
	return string(b)
}
