package infra

import (
	"equipment-reservation/internal/pkg/errs"
)

// RepositoryErrorKind classifies store failures so use cases can react without
// knowing whether PostgreSQL or MongoDB produced them.
type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT" // check constraint or write conflict
)

type RepositoryError struct {
	Kind  RepositoryErrorKind
	msg   string
	cause error
}

func (e RepositoryError) Error() string {
	if e.cause == nil {
		return string(e.Kind) + ": " + e.msg
	}
	return string(e.Kind) + ": " + e.cause.Error()
}

func (e RepositoryError) Unwrap() error { return e.cause }

// WrapRepoErr attaches a kind (KindDBFailure when omitted) to err. A nil err yields a bare
// kinded error, which is how "no rows" outcomes are reported.
func WrapRepoErr(msg string, err error, kind ...RepositoryErrorKind) error {
	k := KindDBFailure
	if len(kind) > 0 {
		k = kind[0]
	}
	return RepositoryError{Kind: k, msg: msg, cause: errs.Wrap(err, msg)}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var repoErr RepositoryError
	return errs.As(err, &repoErr) && repoErr.Kind == kind
}
