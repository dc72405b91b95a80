package domain

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageInternalServerError  = "internal server error"
)
