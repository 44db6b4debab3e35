package serverutils

// Response is the success envelope. Data is always emitted, so an empty
// collection serializes as "data":[] rather than disappearing.
type Response[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type ErrResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Message: message,
		Data:    data,
	}
}
