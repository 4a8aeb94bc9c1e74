package i18n

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every key the code looks up must exist in every locale file.
func TestLocaleIntegrity(t *testing.T) {
	entries, err := localeFS.ReadDir("locales")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		require.NoError(t, err)

		var messages map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &messages), entry.Name())

		for _, key := range AllKeys {
			_, ok := messages[key]
			assert.True(t, ok, "%s is missing key %s", entry.Name(), key)
		}
	}
}

func TestLocalizer(t *testing.T) {
	tr := NewTranslator("de")
	assert.ElementsMatch(t, []string{"de", "en"}, tr.Languages())

	de := tr.Localizer()
	assert.Equal(t, "Urlaub", de.Msg(KeyEntryVacation))
	assert.Equal(t, "Urlaubserinnerung - 1 Tag vorher", de.Plural(KeyReminderTitle, 1))
	assert.Equal(t, "Urlaubserinnerung - 7 Tage vorher", de.Plural(KeyReminderTitle, 7))

	en := tr.Localizer("en-US")
	assert.Equal(t, "Sick", en.Msg(KeyEntrySick))
	assert.Equal(t, "+2 more", en.MsgWith(KeyOverflowMore, map[string]interface{}{"Count": 2}))

	assert.Equal(t, "NoSuchKey", en.Msg("NoSuchKey"))

	var nilLocalizer *Localizer
	assert.Equal(t, KeyEntrySick, nilLocalizer.Msg(KeyEntrySick))
}
