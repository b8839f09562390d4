package constants

// Error codes that are interpolated into error messages
// to make grepping the logs for a failure class easier.
const (
	DEV_ERROR = iota + 1000
	UNEXPECTED_ERROR
	OS_ERROR
	INPUT_ERROR
	CONNECTION_ERROR
	RESPONSE_ERROR
	DOWNLOAD_ERROR
	HTML_ERROR
	JSON_ERROR
	RENDER_ERROR
	EXTRACTION_ERROR
)
