package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const clockTag = "clock"

var (
	registerOnce sync.Once
	translator   ut.Translator
)

// RegisterValidators installs the custom tags and English messages on gin's validator.
// It is safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		english := en.New()
		translator, _ = ut.New(english, english).GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, translator)

		// Report fields by their wire names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})

		_ = v.RegisterValidation(clockTag, clockValidation)
		_ = v.RegisterTranslation(clockTag, translator,
			func(t ut.Translator) error {
				return t.Add(clockTag, "{0} must be a time of day in HH:MM format", true)
			},
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(clockTag, fe.Field())
				return msg
			},
		)
	})
}

// clockValidation accepts HH:MM and HH:MM:SS.
func clockValidation(fl validator.FieldLevel) bool {
	_, err := domain.ParseClock(fl.Field().String())
	return err == nil
}

// validationDetails turns binding errors into field -> message pairs.
// Errors that are not validation failures (malformed JSON, bad numbers) yield nil.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if translator != nil {
			details[fe.Field()] = fe.Translate(translator)
		} else {
			details[fe.Field()] = fe.Error()
		}
	}
	return details
}
