package melcloud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageCode(t *testing.T) {
	code, err := LanguageCode("en")
	assert.NoError(t, err)
	assert.Equal(t, 0, code)

	code, err = LanguageCode("UK")
	assert.NoError(t, err)
	assert.Equal(t, 20, code)

	_, err = LanguageCode("xx")
	assert.Error(t, err)

	assert.Len(t, SupportedLanguages(), 26)
}
