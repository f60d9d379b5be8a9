package i18n

import "errors"

var (
	ErrNoTranslations    = errors.New("i18n: no translations found")
	ErrFailedToParseYAML = errors.New("i18n: failed to parse YAML")
	ErrInvalidStructure  = errors.New("i18n: invalid catalog structure")
	ErrUnknownLanguage   = errors.New("i18n: default language has no catalog")
)
