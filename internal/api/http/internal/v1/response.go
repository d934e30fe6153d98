package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/voterworks/backend/internal/service"
	"github.com/voterworks/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func errorResponse(c *gin.Context, status int, code int, message string) {
	c.AbortWithStatusJSON(status, ErrorStruct{ErrorCode: code, ErrorMessage: message})
}

// serviceErrorResponse maps the registration service error taxonomy onto HTTP
// responses. The partner/key failure stays a single opaque 401 on purpose.
func serviceErrorResponse(c *gin.Context, err error) {
	var (
		unknownAttr *service.UnknownAttributeError
		unsupported *service.UnsupportedLanguageError
		survey      *service.SurveyQuestionError
		validation  *service.ValidationError
	)

	switch {
	case errors.As(err, &unknownAttr):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorStruct{
			ErrorCode:    UnknownAttributeCode,
			ErrorMessage: unknownAttr.Error(),
			FieldName:    unknownAttr.Attr,
		})
	case errors.As(err, &unsupported):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorStruct{
			ErrorCode:    UnsupportedLanguageCode,
			ErrorMessage: unsupported.Error(),
		})
	case errors.As(err, &survey):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorStruct{
			ErrorCode:    SurveyQuestionCode,
			ErrorMessage: survey.Error(),
		})
	case errors.As(err, &validation):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorStruct{
			ErrorCode:    RegistrationValidationCode,
			ErrorMessage: validation.Message,
			FieldName:    validation.Field,
		})
	case errors.Is(err, service.ErrInvalidPartnerOrAPIKey):
		errorResponse(c, http.StatusUnauthorized, InvalidPartnerOrAPIKeyCode, InvalidPartnerOrAPIKeyMessage)
	default:
		logger.Error("unhandled service error", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, UnknownErrorCode, UnknownErrorMessage)
	}
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		out := make([]ValidationError, len(verr))
		for i, ferr := range verr {
			out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
		}
		response := ValidationErrorStruct{
			ErrorCode:    6000,
			ErrorMessage: "Validation error",
		}
		response.Errors = out
		c.JSON(http.StatusBadRequest, response)
		return
	}
	errorResponse(c, http.StatusBadRequest, InvalidRequestBodyCode, InvalidRequestBodyMessage)
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "Required"
	case "email":
		return "Invalid email format"
	case "url":
		return "Invalid url format"
	case "zipcode":
		return "Zip code must look like ##### or #####-####"
	case "usphone":
		return "Phone must look like ###-###-####"
	case "min":
		return fmt.Sprintf("Must be at least %v characters", value)
	case "max":
		return fmt.Sprintf("Must be at most %v characters", value)
	}
	return tag
}
