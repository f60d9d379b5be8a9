package i18n

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// Translator resolves message keys against per-language catalogs.
// It is read-only after construction and safe for concurrent use.
type Translator struct {
	translations map[string]map[string]any
	defaultLang  string
	langs        []string
	matcher      language.Matcher
	logger       *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language used when nothing else matches.
func WithDefaultLanguage(lang string) Option {
	return func(t *Translator) {
		if lang != "" {
			t.defaultLang = strings.ToLower(lang)
		}
	}
}

// WithLogger enables warnings for missing keys.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTranslator loads every *.yaml and *.yml file at the root of fsys.
func NewTranslator(ctx context.Context, fsys fs.FS, opts ...Option) (*Translator, error) {
	t := &Translator{
		translations: make(map[string]map[string]any),
		defaultLang:  DefaultLanguage,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("i18n: failed to read catalogs: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ext := path.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}

		content, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("i18n: failed to read %s: %w", entry.Name(), err)
		}

		catalog, err := parseYAML(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}

		lang := strings.ToLower(strings.TrimSuffix(entry.Name(), ext))
		t.translations[lang] = catalog
	}

	if len(t.translations) == 0 {
		return nil, ErrNoTranslations
	}
	if _, ok := t.translations[t.defaultLang]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, t.defaultLang)
	}

	// The default language goes first so the matcher falls back to it.
	t.langs = []string{t.defaultLang}
	for lang := range t.translations {
		if lang != t.defaultLang {
			t.langs = append(t.langs, lang)
		}
	}
	slices.Sort(t.langs[1:])

	tags := make([]language.Tag, 0, len(t.langs))
	for _, lang := range t.langs {
		tags = append(tags, language.Make(lang))
	}
	t.matcher = language.NewMatcher(tags)

	t.logger.InfoContext(ctx, "translations loaded", slog.Any("languages", t.langs))

	return t, nil
}

// SupportedLanguages returns the loaded languages, default first.
func (t *Translator) SupportedLanguages() []string {
	return slices.Clone(t.langs)
}

// DefaultLanguage returns the fallback language.
func (t *Translator) DefaultLanguage() string {
	return t.defaultLang
}

// Supports reports whether a catalog exists for lang.
func (t *Translator) Supports(lang string) bool {
	_, ok := t.translations[strings.ToLower(lang)]
	return ok
}

// Match picks the best supported language for an Accept-Language header.
func (t *Translator) Match(acceptLanguage string) string {
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return t.defaultLang
	}

	_, idx, confidence := t.matcher.Match(desired...)
	if confidence == language.No {
		return t.defaultLang
	}
	return t.langs[idx]
}

// T translates key for lang. Extra arguments are key/value pairs substituted
// into %{name} placeholders. Missing keys fall back to the default language
// and then to the key itself.
func (t *Translator) T(lang, key string, args ...string) string {
	msg, ok := t.lookup(strings.ToLower(lang), key)
	if !ok {
		msg, ok = t.lookup(t.defaultLang, key)
	}
	if !ok {
		t.logger.Warn("translation not found", slog.String("lang", lang), slog.String("key", key))
		msg = key
	}
	return substitute(msg, args)
}

// Tc translates key using the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(GetLocale(ctx), key, args...)
}

// Has reports whether key exists for lang without fallback.
func (t *Translator) Has(lang, key string) bool {
	_, ok := t.lookup(strings.ToLower(lang), key)
	return ok
}

func (t *Translator) lookup(lang, key string) (string, bool) {
	current, ok := t.translations[lang]
	if !ok {
		return "", false
	}

	parts := strings.Split(key, ".")
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return "", false
		}
		if i == len(parts)-1 {
			s, ok := val.(string)
			return s, ok
		}
		current, ok = val.(map[string]any)
		if !ok {
			return "", false
		}
	}

	return "", false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} placeholders; unknown names are left intact.
func substitute(tmpl string, args []string) string {
	if len(args) < 2 {
		return tmpl
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}

	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
