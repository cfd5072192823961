package commons

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Code is the failure class of an unsuccessful response, for example NOT_FOUND.
	Code   string   `json:"code,omitempty"`
	Data   *T       `json:"data,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// WithCode tags a failed response with its failure class. Successful
// responses are returned unchanged.
func (r Response[T]) WithCode(code string) Response[T] {
	if r.Success {
		return r
	}
	r.Code = code
	return r
}
