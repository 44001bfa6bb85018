package errs

import (
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {

	// Instantiate a validator.
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Instantiate the english locale for the validator library.
	locale := en.New()

	// Create a value using English as the fallback locale (first argument).
	// Provide one or more arguments for additional supported locales.
	uni := ut.New(locale, locale)

	// Query the universal translator for the english translator.
	translator, _ = uni.GetTranslator(locale.Locale())

	// Register the english error messages for use.
	entranslations.RegisterDefaultTranslations(validate, translator)
}

// Check validates the provided model against it's declared tags.
func Check(val any) error {
	if err := validate.Struct(val); err != nil {

		// Use a type assertion to get the real error value.
		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		var fields FieldErrors
		for _, verror := range verrors {
			fields.Add(verror.Field(), errorOnly{verror.Translate(translator)})
		}

		return fields
	}

	return nil
}

// errorOnly lets a plain message satisfy the error interface for Add.
type errorOnly struct {
	msg string
}

func (e errorOnly) Error() string {
	return e.msg
}
