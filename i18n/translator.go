// Package i18n maps issue codes to human-readable descriptions.
package i18n

import "strings"

// Translator retrieves messages for issue codes. data provides optional
// values to embed in the message (for example "field").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in English dictionary.
type dictTranslator struct{}

var dict = map[string]string{
	"malformed_xml":              "document is not well-formed XML",
	"required":                   "required element `{field}` is missing",
	"query_error":                "path for `{field}` could not be evaluated",
	"invalid":                    "invalid value for `{field}`",
	"invalid_id":                 "identifier must be <tld>.<vendor>.<product> using [A-Za-z0-9_.-]",
	"unknown_tld":                "identifier must start with a registered top-level domain",
	"unknown_license":            "license expression uses an identifier outside the SPDX list",
	"invalid_license_expression": "license expression is not a well-formed SPDX expression",
	"unknown_category":           "category is not a freedesktop.org main category",
	"missing_copyright":          "document must start with a copyright comment",
	"malformed_date_range":       "copyright comment has no year or year range",
	"invalid_copyright":          "comment must read `Copyright <years> <holder>`",
	"empty":                      "`{field}` must not be empty",
	"invalid_text":               "`{field}` has an invalid value",
	"invalid_icon_type":          "icon type must be stock, cached, local or remote",
	"invalid_icon_attribute":     "icon attribute is not allowed or has a bad value",
	"invalid_icon":               "icon value is empty or malformed",
	"invalid_component_type":     "component type attribute is missing or unknown",
}

func (dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dict[code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var currentTranslator Translator = dictTranslator{}

// SetTranslator replaces the Translator implementation. nil restores the
// built-in dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
