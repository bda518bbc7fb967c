package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/invorya/stockledger/internal/domain"
)

// Códigos SQLSTATE de PostgreSQL relevantes para el módulo.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// translateError convierte errores de PostgreSQL en errores de dominio cuando
// corresponde: unicidad violada -> ErrDuplicate; fallo de serialización o
// deadlock -> ErrConcurrentModification (el caller puede reintentar).
// Cualquier otro error se devuelve tal cual (fallo de persistencia).
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return domain.ErrDuplicate
		case codeSerializationFailure, codeDeadlockDetected:
			return domain.ErrConcurrentModification
		}
	}
	return err
}
