package dto

// Envelope codes.
const (
	CodeSuccess = "SUCCESS"
	CodeError   = "ERROR"
)

// APIResponse is the envelope every endpoint answers with. Data is null on
// errors.
type APIResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func Success(message string, data any) APIResponse {
	return APIResponse{Code: CodeSuccess, Message: message, Data: data}
}

func Error(message string) APIResponse {
	return APIResponse{Code: CodeError, Message: message}
}
