package repository

import (
	"equipment-reservation/internal/infra"
	"equipment-reservation/internal/pkg/pgconv"
)

func wrapWriteErr(msg string, err error) error {
	switch {
	case pgconv.IsUniqueViolation(err):
		return infra.WrapRepoErr(msg, err, infra.KindDuplicateKey)
	case pgconv.IsForeignKeyViolation(err):
		return infra.WrapRepoErr(msg, err, infra.KindForeignKeyViolated)
	case pgconv.IsCheckViolation(err):
		return infra.WrapRepoErr(msg, err, infra.KindConflict)
	default:
		return infra.WrapRepoErr(msg, err)
	}
}
