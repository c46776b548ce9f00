// Package i18n translates user-facing node validation messages.
package i18n

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dukex/trialkit/pkg/models"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
)

const (
	LocaleEN      = "en"
	LocaleZH      = "zh"
	DefaultLocale = LocaleEN
)

// Translator renders a message key, substituting positional params ({0}, {1}, ...).
type Translator interface {
	T(key string, params ...string) string
}

// Nop returns every key unchanged.
var Nop Translator = nopTranslator{}

type nopTranslator struct{}

func (nopTranslator) T(key string, _ ...string) string {
	return key
}

// Catalog holds the translators of every supported locale.
type Catalog struct {
	uni *ut.UniversalTranslator
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	catalog, err := NewCatalog()
	if err != nil {
		panic(fmt.Errorf("failed to build message catalog: %w", err))
	}

	return catalog
})

// NewCatalog builds a catalog loaded with the built-in messages.
func NewCatalog() (*Catalog, error) {
	uni := ut.New(en.New(), en.New(), zh.New())

	for locale, table := range messages {
		trans, found := uni.GetTranslator(locale)
		if !found {
			return nil, fmt.Errorf("locale %q not registered", locale)
		}

		for key, text := range table {
			err := trans.Add(key, text, false)
			if err != nil {
				return nil, fmt.Errorf("failed to add %s message %q: %w", locale, key, err)
			}
		}
	}

	return &Catalog{uni: uni}, nil
}

// Translator returns the translator of locale, falling back to English.
func (c *Catalog) Translator(locale string) Translator {
	trans, _ := c.uni.FindTranslator(normalize(locale), DefaultLocale)

	return &translator{trans: trans}
}

// New returns the default catalog's translator for locale.
func New(locale string) Translator {
	return defaultCatalog().Translator(locale)
}

// FromAcceptLanguage picks a translator from an Accept-Language header value.
func FromAcceptLanguage(header string) Translator {
	var candidates []string

	for _, part := range strings.Split(header, ",") {
		tag, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if tag == "" || tag == "*" {
			continue
		}

		candidates = append(candidates, normalize(tag))
	}

	candidates = append(candidates, DefaultLocale)
	trans, _ := defaultCatalog().uni.FindTranslator(candidates...)

	return &translator{trans: trans}
}

type validation struct {
	validate *validator.Validate
	uni      *ut.UniversalTranslator
}

var sharedValidation = sync.OnceValue(func() *validation {
	validate := validator.New(validator.WithRequiredStructEnabled())
	uni := ut.New(en.New(), en.New(), zh.New())

	enTrans, _ := uni.GetTranslator(LocaleEN)
	if err := en_translations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		panic(fmt.Errorf("failed to register en validator translations: %w", err))
	}

	zhTrans, _ := uni.GetTranslator(LocaleZH)
	if err := zh_translations.RegisterDefaultTranslations(validate, zhTrans); err != nil {
		panic(fmt.Errorf("failed to register zh validator translations: %w", err))
	}

	if err := validate.RegisterValidation(RecordIDTag, func(fl validator.FieldLevel) bool {
		return models.IsValidID(fl.Field().String())
	}); err != nil {
		panic(fmt.Errorf("failed to register %s validation: %w", RecordIDTag, err))
	}

	registerRecordIDTranslation(validate, enTrans, "{0} must be a plain identifier of at most 255 characters without slashes")
	registerRecordIDTranslation(validate, zhTrans, "{0}必须是不含斜杠且长度不超过255个字符的标识符")

	return &validation{validate: validate, uni: uni}
})

// RecordIDTag validates ids that name stored records, see models.IsValidID.
const RecordIDTag = "record_id"

func registerRecordIDTranslation(validate *validator.Validate, trans ut.Translator, text string) {
	if err := validate.RegisterTranslation(RecordIDTag, trans, func(t ut.Translator) error {
		return t.Add(RecordIDTag, text, true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		msg, _ := t.T(RecordIDTag, fe.Field())
		return msg
	}); err != nil {
		panic(fmt.Errorf("failed to register %s translation: %w", RecordIDTag, err))
	}
}

// Validator returns the process-wide validator, with en and zh error translations registered.
func Validator() *validator.Validate {
	return sharedValidation().validate
}

// ValidationMessage renders an error from Validator() in the locale of tr.
// Errors of any other kind fall back to err.Error().
func ValidationMessage(err error, tr Translator) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}

	locale := DefaultLocale
	if localized, ok := tr.(interface{ Locale() string }); ok {
		locale = localized.Locale()
	}

	trans, _ := sharedValidation().uni.FindTranslator(locale, DefaultLocale)

	parts := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		parts = append(parts, fieldErr.Translate(trans))
	}

	return strings.Join(parts, "; ")
}

type translator struct {
	trans ut.Translator
}

func (t *translator) T(key string, params ...string) string {
	text, err := t.trans.T(key, params...)
	if err != nil {
		return key
	}

	return text
}

// Locale returns the locale the translator renders.
func (t *translator) Locale() string {
	return t.trans.Locale()
}

// normalize maps tags like "zh-CN" or "en_US" onto the catalog's base locales.
func normalize(tag string) string {
	base, _, _ := strings.Cut(strings.ReplaceAll(tag, "_", "-"), "-")

	return strings.ToLower(base)
}
