package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedLocales(t *testing.T) {
	require.NoError(t, Initialize())

	assert.Equal(t, "Product not found", T("en", KeyProductNotFound))
	assert.NotEqual(t, T("en", KeyOutfitEmptyCatalog), T("zh_TW", KeyOutfitEmptyCatalog))
	assert.Equal(t, "Invalid category", T("en", KeyValidationInvalid, "category"))
	assert.ElementsMatch(t, []string{"en", "zh_TW"}, GetSupportedLanguages())
}

func TestEmbeddedLocales_CoverEveryKey(t *testing.T) {
	require.NoError(t, Initialize())

	keys := []string{
		KeySuccess, KeyError, KeyAuthRequired, KeyAuthInvalidToken, KeyAdminAccessDenied, KeyRateLimitExceeded,
		KeyProductNotFound, KeyOutfitGenerated, KeyOutfitInvalidProfile, KeyOutfitEmptyCatalog,
		KeyOutfitCompletionFailed, KeyOutfitMalformedResponse, KeyOutfitGenerationFailed,
		KeyFeedbackRecorded, KeyFeedbackUserID, KeyValidationRequired, KeyValidationInvalid,
	}
	for _, lang := range []string{"en", "zh_TW"} {
		for _, key := range keys {
			_, ok := instance.lookup(lang, key)
			assert.True(t, ok, "%s missing %s", lang, key)
		}
	}
}

func TestT_Fallback(t *testing.T) {
	i := &I18n{translations: map[string]map[string]string{}, defaultLang: "en"}
	fsys := fstest.MapFS{
		"l/en.json":    {Data: []byte(`{"greeting":"Hello %s","only_en":"English"}`)},
		"l/fr.json":    {Data: []byte(`{"greeting":"Bonjour %s"}`)},
		"l/README.txt": {Data: []byte("ignored")},
	}
	require.NoError(t, i.LoadTranslations(fsys, "l"))

	assert.Equal(t, "Bonjour Ada", i.T("fr", "greeting", "Ada"))
	assert.Equal(t, "English", i.T("fr", "only_en"))
	assert.Equal(t, "missing.key", i.T("fr", "missing.key"))

	bad := fstest.MapFS{"l/en.json": {Data: []byte(`{`)}}
	assert.Error(t, i.LoadTranslations(bad, "l"))
}
