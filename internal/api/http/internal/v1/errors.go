package v1

// Errors
const (
	UnknownErrorCode    = 0
	UnknownErrorMessage = "unknown error"

	UnknownAttributeCode          = 2001
	UnsupportedLanguageCode       = 2002
	SurveyQuestionCode            = 2003
	RegistrationValidationCode    = 2004
	InvalidPartnerOrAPIKeyCode    = 2005
	InvalidPartnerOrAPIKeyMessage = "invalid partner or api key"
	InvalidSinceCode              = 2006
	InvalidSinceMessage           = "since must be a timestamp"
	InvalidRequestBodyCode        = 2007
	InvalidRequestBodyMessage     = "request body must be a json object"
)

// ErrorStruct is the error envelope every endpoint returns. FieldName is only
// present for field-level failures.
type ErrorStruct struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	FieldName    string `json:"field_name,omitempty"`
} // @name ErrorStruct

type ValidationErrorStruct struct {
	ErrorCode    int               `json:"error_code"`
	ErrorMessage string            `json:"error_message"`
	Errors       []ValidationError `json:"validation_errors"`
}

type ValidationError struct {
	FieldKey     string `json:"field_key"`
	ErrorMessage string `json:"error_message"`
}
