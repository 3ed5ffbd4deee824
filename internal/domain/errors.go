package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrForbidden    = errors.New("acceso denegado")

	// Errores del motor de cumplimiento de órdenes.
	ErrInvalidTransition           = errors.New("transición de estado inválida")
	ErrInventoryUpdateFailed       = errors.New("actualización de inventario fallida")
	ErrRequirementResolutionFailed = errors.New("resolución de ingredientes fallida")
	ErrConcurrentModification      = errors.New("la orden fue modificada concurrentemente")
)
