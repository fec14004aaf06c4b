package iodb

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
)

// ConnectionError is returned when the database cannot be reached. It
// carries a detailed user message for gnlib.PrintUserMessage.
type ConnectionError struct {
	error
	gnlib.MessageBase
}

// NewConnectionError creates a ConnectionError with hints for the user.
func NewConnectionError(
	host string,
	port int,
	database, user string,
	cause error,
) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Database Connection Failed</title>
<warn>Could not connect to PostgreSQL database.</warn>

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>
  2. Verify the database exists:
     <em>psql -h %s -U %s -l</em>
  3. Review connection settings in <em>~/.config/bgcatlas/config.yaml</em>
     or BGCATLAS_DATABASE_* environment variables.

  Host: %s
  Port: %d
  Database: %s
  User: %s
`,
		Vars: []any{host, port, host, user, host, port, database, user},
	}

	return ConnectionError{
		error: &gn.Error{
			Code: errcode.DBConnectionError,
			Msg:  "Cannot connect to database <em>%s</em> at %s:%d",
			Vars: []any{database, host, port},
			Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
				host, port, database, cause),
		},
		MessageBase: msgBase,
	}
}

// Unwrap gives access to the underlying *gn.Error.
func (e ConnectionError) Unwrap() error {
	return e.error
}

// SchemaMissingError is returned when required tables are absent.
type SchemaMissingError struct {
	error
	gnlib.MessageBase
}

// NewSchemaMissingError creates an error listing missing tables.
func NewSchemaMissingError(database string, tables []string) error {
	list := strings.Join(tables, ", ")
	msgBase := gnlib.MessageBase{
		Msg: `<title>Database Is Not Ready</title>
<warn>Database <em>%s</em> misses tables: %s</warn>

<em>How to fix:</em>
  Create the schema first:
     <em>bgcatlas create</em>
`,
		Vars: []any{database, list},
	}
	return SchemaMissingError{
		error: &gn.Error{
			Code: errcode.DBTableCheckError,
			Msg:  "Database <em>%s</em> misses tables: %s",
			Vars: []any{database, list},
			Err:  fmt.Errorf("missing tables in %s: %s", database, list),
		},
		MessageBase: msgBase,
	}
}

func (e SchemaMissingError) Unwrap() error {
	return e.error
}

func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Database operation attempted without connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

func TableCheckError(err error) error {
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  "Cannot check database tables",
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}

func TableExistsCheckError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  "Cannot check if table <em>%s</em> exists",
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: table %s: %w", caller(), table, err),
	}
}

func QueryTablesError(err error) error {
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  "Cannot list database tables",
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}

func ScanTableError(err error) error {
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  "Cannot read table names",
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}

func DropTableError(table string, err error) error {
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  "Cannot drop table <em>%s</em>",
		Vars: []any{table},
		Err:  fmt.Errorf("from %s: drop %s: %w", caller(), table, err),
	}
}

func RunStatusError(assembly, status string, err error) error {
	return &gn.Error{
		Code: errcode.DBRunStatusError,
		Msg:  "Cannot record status <em>%s</em> of assembly <em>%s</em>",
		Vars: []any{status, assembly},
		Err: fmt.Errorf("from %s: run %s status %s: %w",
			caller(), assembly, status, err),
	}
}

// caller returns the name of the function that called the error
// constructor.
func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name()
}
