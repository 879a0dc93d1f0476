package lang

import (
	"errors"
	"fmt"
)

// ErrInvalidLanguage is matched by every language configuration error
var ErrInvalidLanguage = errors.New("invalid language")

// ErrSameLanguage is returned when both sides use the same language code
var ErrSameLanguage = fmt.Errorf("%w: must be two different languages! 必須是兩種不同語言！", ErrInvalidLanguage)

// UnsupportedLanguageError reports a code outside the supported set
type UnsupportedLanguageError struct {
	Code string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("language '%s' not supported. 不支援此語言。", e.Code)
}

// Is makes errors.Is(err, ErrInvalidLanguage) succeed
func (e *UnsupportedLanguageError) Is(target error) bool {
	return target == ErrInvalidLanguage
}

type language struct {
	code   string
	name   string
	locale string
}

// Order matters: Supported() lists codes in this order.
var languages = []language{
	{"en", "English", "en-US"},
	{"zh-TW", "繁體中文", "cmn-TW"},
	{"zh-CN", "简体中文", "cmn-CN"},
	{"ja", "日本語", "ja-JP"},
	{"ko", "한국어", "ko-KR"},
	{"de", "Deutsch", "de-DE"},
	{"fr", "Français", "fr-FR"},
	{"es", "Español", "es-ES"},
	{"th", "ไทย", "th-TH"},
	{"vi", "Tiếng Việt", "vi-VN"},
}

func find(code string) (language, bool) {
	for _, l := range languages {
		if l.code == code {
			return l, true
		}
	}
	return language{}, false
}

// Supported returns all supported language codes
func Supported() []string {
	codes := make([]string, len(languages))
	for i, l := range languages {
		codes[i] = l.code
	}
	return codes
}

// IsSupported reports whether code is a supported language code
func IsSupported(code string) bool {
	_, ok := find(code)
	return ok
}

// Name returns the native display name of a language, or the code itself
func Name(code string) string {
	if l, ok := find(code); ok {
		return l.name
	}
	return code
}

// Locale returns the BCP-47 locale used by speech services for a code
func Locale(code string) string {
	if l, ok := find(code); ok {
		return l.locale
	}
	return code
}
