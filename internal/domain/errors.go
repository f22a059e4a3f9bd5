package domain

import "errors"

// Errores de dominio (sin dependencias externas). El orden de precedencia
// cuando aplican varios lo impone el orquestador, no este paquete:
// autenticación → alcance → permiso → catálogo → conflicto → estado.
var (
	// ErrUnauthenticated credencial ausente, malformada o expirada.
	ErrUnauthenticated = errors.New("credencial inválida")
	// ErrLocationScope la ubicación no existe o pertenece a otra empresa.
	// Ambos casos colapsan en un solo error para no revelar ubicaciones ajenas.
	ErrLocationScope = errors.New("ubicación no encontrada en su empresa")
	// ErrForbidden autenticado y dentro de alcance, pero sin permiso para la acción.
	ErrForbidden = errors.New("acceso denegado")
	// ErrProductNotFound el producto no existe en el catálogo.
	ErrProductNotFound = errors.New("producto no encontrado")
	// ErrNotFound el registro de inventario no existe.
	ErrNotFound = errors.New("registro de inventario no encontrado")
	// ErrDuplicate ya existe inventario para ese producto en esa ubicación.
	ErrDuplicate = errors.New("inventario duplicado para producto y ubicación")
	// ErrInvalidState cantidad negativa o stock_min > stock_max tras aplicar cambios.
	ErrInvalidState = errors.New("estado de inventario inválido")
	// ErrDependencyUnavailable un servicio colaborador falló o no respondió a tiempo.
	ErrDependencyUnavailable = errors.New("servicio colaborador no disponible")
	// ErrInvalidInput entrada sintácticamente inválida.
	ErrInvalidInput = errors.New("entrada inválida")
)
