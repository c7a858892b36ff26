package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation      = "23505"
	codeCheckViolation       = "23514"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if pgCode(err) == codeUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isCheckViolation true ante un CHECK fallido (p. ej. stock >= 0).
func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// isRetryable true para conflictos de concurrencia que se resuelven reintentando la transacción.
func isRetryable(err error) bool {
	switch pgCode(err) {
	case codeSerializationFailure, codeDeadlockDetected:
		return true
	}
	return false
}

// isCanonicalUUID true si s es un UUID en la forma que devuelve PostgreSQL (minúsculas con guiones).
func isCanonicalUUID(s string) bool {
	u, err := uuid.Parse(s)
	return err == nil && u.String() == s
}
