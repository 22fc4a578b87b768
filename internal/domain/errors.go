package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicateName      = errors.New("ya existe una tienda activa con ese nombre")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUnknownEndpoint    = errors.New("endpoint desconocido")
	ErrTokenRevoked       = errors.New("token revocado")
	ErrWebhookUnavailable = errors.New("servidor de automatización no disponible")
	ErrWebhookTooLarge    = errors.New("respuesta demasiado grande del servidor de automatización")
)
