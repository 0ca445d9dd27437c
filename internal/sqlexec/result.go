package sqlexec

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row maps column names to values in result-set column order
type Row = *orderedmap.OrderedMap[string, any]

// Decimal holds a DECIMAL column value in its exact textual form
type Decimal string

// Result is the outcome of a successful Execute. Kind selects which fields are set:
// Rows and Columns for Query, DDL and DDLFound for Introspection, RowsAffected for Mutation.
type Result struct {
	Kind Kind

	Columns []string
	Rows    []Row

	DDL      string
	DDLFound bool

	RowsAffected int64
}

// Stage names the step where an execution failed
type Stage string

const (
	StageConnect Stage = "connect"
	StageExecute Stage = "execute"
	StageFetch   Stage = "fetch"
	StageCommit  Stage = "commit"
)

// ExecutionError wraps any failure of a single call. Callers never see
// anything finer grained than the stage and the driver's message.
type ExecutionError struct {
	Stage Stage
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

func newExecutionError(stage Stage, err error) *ExecutionError {
	return &ExecutionError{Stage: stage, Err: err}
}
