package query

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Common query error types
var (
	// ErrNotFound is returned when a query matches no rows
	ErrNotFound = errors.New("record not found")

	// ErrUndefinedTable is returned when the queried table does not exist
	ErrUndefinedTable = errors.New("undefined table")

	// ErrUndefinedColumn is returned when a referenced column does not exist
	ErrUndefinedColumn = errors.New("undefined column")

	// ErrInvalidJSONText is returned when the database rejects a JSON payload
	ErrInvalidJSONText = errors.New("invalid json text")

	// ErrSyntax is returned when the rendered statement is malformed
	ErrSyntax = errors.New("syntax error in statement")
)

// ConvertDBError converts database-specific errors to query errors
func ConvertDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("%w: %s", ErrUndefinedTable, pgErr.Message)
		case "42703": // undefined_column
			return fmt.Errorf("%w: %s", ErrUndefinedColumn, pgErr.Message)
		case "22032", "22030": // invalid_json_text, duplicate_json_object_key_value
			return fmt.Errorf("%w: %s", ErrInvalidJSONText, pgErr.Message)
		case "42601": // syntax_error
			return fmt.Errorf("%w: %s", ErrSyntax, pgErr.Message)
		}
	}

	return err
}
