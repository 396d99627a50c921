package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const alphaSpaceTag = "alphaspace"

var alphaSpaceRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// messages override the default english translations. {0} is the Go field
// name, {1} the tag parameter.
var messages = map[string]string{
	"required":    "{0} is required",
	"email":       "{0} must be a valid email format",
	"min":         "{0} must be at least {1}",
	"max":         "{0} must not exceed {1}",
	"oneof":       "{0} must be one of [{1}]",
	alphaSpaceTag: "{0} must contain only letters (a-z, A-Z) and spaces",
}

// Errors maps a JSON field name to a human readable message.
type Errors map[string]string

func (e Errors) Error() string {
	return "validation failed"
}

// Validator checks struct tags and reports failures keyed by JSON field name.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func New() *Validator {
	locale := en.New()
	translator, _ := ut.New(locale, locale).GetTranslator("en")

	validate := validator.New()
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(alphaSpaceTag, func(fl validator.FieldLevel) bool {
		return alphaSpaceRegex.MatchString(fl.Field().String())
	})

	for tag, text := range messages {
		registerTranslation(validate, translator, tag, text)
	}

	return &Validator{validate: validate, translator: translator}
}

// Struct validates v. It returns Errors for tag violations and the raw error
// for anything else, such as a nil or non-struct value.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fe.Translate(v.translator)
	}
	return out
}

func registerTranslation(validate *validator.Validate, translator ut.Translator, tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.StructField(), fe.Param())
			return s
		},
	)
}
