package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Message IDs shared by the calendar and reminder packages.
const (
	KeyEntryVacation      = "EntryVacation"
	KeyEntrySick          = "EntrySick"
	KeyEntryMeeting       = "EntryMeeting"
	KeyEntryTraining      = "EntryTraining"
	KeyEntrySpecialLeave  = "EntrySpecialLeave"
	KeyEntryWorkedTime    = "EntryWorkedTime"
	KeyStatusRequested    = "StatusRequested"
	KeyStatusApproved     = "StatusApproved"
	KeyStatusRejected     = "StatusRejected"
	KeyOverflowMore       = "OverflowMore"
	KeyReminderDefault    = "ReminderDefaultMessage"
	KeyReminderTitle      = "ReminderNotificationTitle"
	KeyExportCalendarName = "ExportCalendarName"
)

// AllKeys lists every message ID the code looks up.
var AllKeys = []string{
	KeyEntryVacation, KeyEntrySick, KeyEntryMeeting, KeyEntryTraining,
	KeyEntrySpecialLeave, KeyEntryWorkedTime,
	KeyStatusRequested, KeyStatusApproved, KeyStatusRejected,
	KeyOverflowMore, KeyReminderDefault, KeyReminderTitle, KeyExportCalendarName,
}

// Translator holds the loaded bundle. It is safe for concurrent use; every
// call builds its own localizer.
type Translator struct {
	bundle        *i18n.Bundle
	defaultLocale string
	languages     []string
}

// NewTranslator loads the embedded locale files. Files that fail to parse are
// logged and skipped.
func NewTranslator(defaultLocale string) *Translator {
	bundle := i18n.NewBundle(language.German)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	t := &Translator{bundle: bundle, defaultLocale: defaultLocale}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error("failed to read embedded locales", "error", err)
		return t
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}
		lang := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error("failed to load locale file", "file", name, "error", err)
			continue
		}
		t.languages = append(t.languages, lang)
	}

	slog.Debug("locales loaded", "languages", t.languages, "default", defaultLocale)
	return t
}

// Languages returns the locale codes found in the embedded files.
func (t *Translator) Languages() []string {
	return t.languages
}

// Localizer returns a localizer preferring the given Accept-Language values,
// then the default locale.
func (t *Translator) Localizer(preferred ...string) *Localizer {
	langs := append(append([]string{}, preferred...), t.defaultLocale)
	return &Localizer{l: i18n.NewLocalizer(t.bundle, langs...)}
}

// Localizer translates message IDs for one request.
type Localizer struct {
	l *i18n.Localizer
}

// Msg translates key. A missing key returns the key itself.
func (l *Localizer) Msg(key string) string {
	return l.MsgWith(key, nil)
}

// MsgWith translates key with template data.
func (l *Localizer) MsgWith(key string, data map[string]interface{}) string {
	if l == nil || l.l == nil {
		return key
	}
	msg, err := l.l.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil {
		slog.Debug("translation missing", "key", key, "error", err)
		return key
	}
	return msg
}

// Plural translates a message with one/other forms selected by count.
func (l *Localizer) Plural(key string, count int) string {
	if l == nil || l.l == nil {
		return key
	}
	msg, err := l.l.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: map[string]interface{}{"Count": count},
		PluralCount:  count,
	})
	if err != nil {
		slog.Debug("translation missing", "key", key, "error", err)
		return key
	}
	return msg
}
