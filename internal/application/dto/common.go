package dto

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// FieldError detalle de validación por campo (nombre JSON).
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// ProxyErrorResponse cuerpo de error de las rutas que reenvían al servidor de automatización.
// Details lleva el texto devuelto por el servidor o el mensaje del fallo de red.
type ProxyErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}
