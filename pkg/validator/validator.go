package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		if err := v.RegisterValidation("zipcode", zipCodeValidator); err != nil {
			log.Fatal("register zipcode validator failed")
		}
		if err := v.RegisterValidation("usphone", usPhoneValidator); err != nil {
			log.Fatal("register usphone validator failed")
		}
	}
}

var zipCodeValidator validator.Func = func(fl validator.FieldLevel) bool {
	matched, err := regexp.MatchString(`^\d{5}(-\d{4})?$`, fl.Field().String())
	if err != nil {
		return false
	}
	return matched
}

var usPhoneValidator validator.Func = func(fl validator.FieldLevel) bool {
	matched, err := regexp.MatchString(`^\d{3}-\d{3}-\d{4}$`, fl.Field().String())
	if err != nil {
		return false
	}
	return matched
}
