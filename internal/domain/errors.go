package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrRecordNotFound         = errors.New("registro de inventario no encontrado")
	ErrTargetNotFound         = errors.New("estantería destino no encontrada")
	ErrInvalidAmount          = errors.New("cantidad inválida")
	ErrUnknownTransactionType = errors.New("tipo de transacción desconocido")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrUnitMismatch           = errors.New("unidad de medida no coincide")
	ErrDuplicate              = errors.New("ya existe un registro para producto, estantería y lote")
	ErrConcurrentModification = errors.New("modificación concurrente, reintentar la operación")
	ErrUnauthenticated        = errors.New("operación sin actor autenticado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrConflict               = errors.New("conflicto con el estado actual")
)
