package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// IsRetryableTxError indica si el error garantiza que la sentencia NO se
// aplicó y por tanto es seguro reintentarla: serialization_failure (40001) y
// deadlock_detected (40P01). Cualquier otro fallo (timeout, conexión caída a
// mitad de commit) podría haberse aplicado y NO debe reintentarse a ciegas.
func IsRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
