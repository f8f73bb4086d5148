package http_common

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
