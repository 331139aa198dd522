package dto

// ErrorResponse respuesta estándar de error de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageResponse parámetros de paginación reflejados en la respuesta.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
