package domain

import "errors"

// Client-facing messages. The API has always answered in Spanish.
const (
	MsgInvalidPagination = "Número de página o tamaño de página inválido"
	MsgNotFound          = "Producto no encontrado"
	MsgMissingFields     = "Faltan campos requeridos: nombre y precio"
	MsgNoUpdateData      = "No se enviaron datos para actualizar"
	MsgInvalidBody       = "Cuerpo JSON inválido o con campos no permitidos"
	MsgCreated           = "Producto creado exitosamente"
	MsgUpdated           = "Producto actualizado exitosamente"
	MsgDeleted           = "Producto eliminado exitosamente"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)
