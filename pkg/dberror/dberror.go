// Package dberror classifies driver errors from Postgres (pgx) and SQLite
// (go-sqlite3) into constraint violations and maps them to API errors.
package dberror

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"

	apperrors "github.com/frahmantamala/airline-admin/internal"
)

type Kind int

const (
	KindNone Kind = iota
	KindUnique
	KindForeignKey
	KindRestrict
	KindCheck
	KindNotNull
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnique:
		return "unique"
	case KindForeignKey:
		return "foreign_key"
	case KindRestrict:
		return "restrict"
	case KindCheck:
		return "check"
	case KindNotNull:
		return "not_null"
	}
	return "other"
}

// Violation describes a failed database constraint. Constraint is empty
// when the driver does not report a name.
type Violation struct {
	Kind       Kind
	Constraint string
}

// Postgres SQLSTATE codes.
const (
	pgRestrictViolation   = "23001"
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

var sqliteCheckName = regexp.MustCompile(`CHECK constraint failed: ([A-Za-z0-9_]+)`)

// Classify inspects err, unwrapping as needed.
func Classify(err error) Violation {
	if err == nil {
		return Violation{Kind: KindNone}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPostgres(pgErr)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return classifySQLite(liteErr)
	}

	return classifyMessage(err.Error())
}

func classifyPostgres(e *pgconn.PgError) Violation {
	v := Violation{Constraint: e.ConstraintName}
	switch e.Code {
	case pgUniqueViolation:
		v.Kind = KindUnique
	case pgForeignKeyViolation:
		v.Kind = KindForeignKey
	case pgRestrictViolation:
		v.Kind = KindRestrict
	case pgCheckViolation:
		v.Kind = KindCheck
	case pgNotNullViolation:
		v.Kind = KindNotNull
	default:
		v.Kind = KindOther
	}
	return v
}

func classifySQLite(e sqlite3.Error) Violation {
	switch e.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return Violation{Kind: KindUnique, Constraint: sqliteUniqueName(e.Error())}
	case sqlite3.ErrConstraintForeignKey:
		return Violation{Kind: KindForeignKey}
	case sqlite3.ErrConstraintCheck:
		return Violation{Kind: KindCheck, Constraint: sqliteCheckConstraint(e.Error())}
	case sqlite3.ErrConstraintNotNull:
		return Violation{Kind: KindNotNull}
	}
	if e.Code == sqlite3.ErrConstraint {
		return classifyMessage(e.Error())
	}
	return Violation{Kind: KindOther}
}

// classifyMessage is the fallback for errors that lost their driver type.
func classifyMessage(msg string) Violation {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "unique constraint failed"):
		return Violation{Kind: KindUnique, Constraint: sqliteUniqueName(msg)}
	case strings.Contains(lower, "duplicate key value"):
		return Violation{Kind: KindUnique, Constraint: quotedConstraint(msg)}
	case strings.Contains(lower, "foreign key constraint"):
		return Violation{Kind: KindForeignKey, Constraint: quotedConstraint(msg)}
	case strings.Contains(lower, "check constraint"):
		return Violation{Kind: KindCheck, Constraint: sqliteCheckConstraint(msg)}
	case strings.Contains(lower, "not null constraint"):
		return Violation{Kind: KindNotNull}
	}
	return Violation{Kind: KindOther}
}

// sqliteUniqueName derives the name the Postgres schema gives the same
// index: "users.email" becomes users_email_unique and
// "aircraft.name, aircraft.livery" becomes aircraft_name_livery_unique.
func sqliteUniqueName(msg string) string {
	idx := strings.Index(msg, "UNIQUE constraint failed: ")
	if idx < 0 {
		return ""
	}
	cols := strings.Split(msg[idx+len("UNIQUE constraint failed: "):], ",")
	table := ""
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		col = strings.TrimSpace(col)
		t, c, ok := strings.Cut(col, ".")
		if !ok {
			return ""
		}
		if table == "" {
			table = t
		}
		parts = append(parts, c)
	}
	if table == "" {
		return ""
	}
	return table + "_" + strings.Join(parts, "_") + "_unique"
}

func sqliteCheckConstraint(msg string) string {
	m := sqliteCheckName.FindStringSubmatch(msg)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func quotedConstraint(msg string) string {
	_, rest, ok := strings.Cut(msg, `constraint "`)
	if !ok {
		return ""
	}
	name, _, ok := strings.Cut(rest, `"`)
	if !ok {
		return ""
	}
	return name
}

// Messages chooses the user-facing text per violation. Constraints is
// consulted first by constraint name.
type Messages struct {
	Constraints map[string]string
	Unique      string
	Constraint  string
	Reference   string
	Check       string
	Fallback    string
}

// Map converts err into an AppError. Constraint violations become conflicts
// or validation failures with the configured message; anything else is an
// internal error carrying Fallback. A nil err maps to nil.
func Map(err error, msgs Messages) error {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.IsAppError(err); ok {
		return appErr
	}

	v := Classify(err)
	if msg, ok := msgs.Constraints[v.Constraint]; ok && v.Constraint != "" {
		return errorFor(v.Kind, msg).WithCause(err)
	}

	switch v.Kind {
	case KindUnique:
		if msgs.Unique != "" {
			return apperrors.NewConflictError(msgs.Unique, apperrors.ErrCodeDuplicate).WithCause(err)
		}
	case KindForeignKey:
		if msgs.Constraint != "" {
			return apperrors.NewConflictError(msgs.Constraint, apperrors.ErrCodeStillReferenced).WithCause(err)
		}
	case KindRestrict:
		msg := msgs.Reference
		if msg == "" {
			msg = msgs.Constraint
		}
		if msg != "" {
			return apperrors.NewConflictError(msg, apperrors.ErrCodeStillReferenced).WithCause(err)
		}
	case KindCheck:
		if msgs.Check != "" {
			return apperrors.NewValidationError(msgs.Check, apperrors.ErrCodeConstraintFailed).WithCause(err)
		}
	}

	fallback := msgs.Fallback
	if fallback == "" {
		fallback = "Database operation failed"
	}
	return apperrors.NewInternalError(fallback, err)
}

func errorFor(kind Kind, msg string) *apperrors.AppError {
	switch kind {
	case KindUnique:
		return apperrors.NewConflictError(msg, apperrors.ErrCodeDuplicate)
	case KindForeignKey, KindRestrict:
		return apperrors.NewConflictError(msg, apperrors.ErrCodeStillReferenced)
	}
	return apperrors.NewValidationError(msg, apperrors.ErrCodeConstraintFailed)
}
