package validator

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUUID(t *testing.T) {
	id := uuid.New()
	parsed, err := ValidateUUID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ValidateUUID("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidUUID)
}

func TestValidateAnalysisText(t *testing.T) {
	assert.NoError(t, ValidateAnalysisText("a perfectly fine caption"))
	assert.ErrorIs(t, ValidateAnalysisText("   "), ErrMissingParam)
	assert.ErrorIs(t, ValidateAnalysisText(strings.Repeat("x", 10001)), ErrTextTooLong)
}

func TestValidateBrandList(t *testing.T) {
	assert.NoError(t, ValidateBrandList(nil))
	assert.NoError(t, ValidateBrandList([]string{"Acme", "Globex"}))
	assert.ErrorIs(t, ValidateBrandList([]string{"Acme", " "}), ErrMissingParam)

	tooMany := make([]string, 11)
	for i := range tooMany {
		tooMany[i] = "brand"
	}
	assert.ErrorIs(t, ValidateBrandList(tooMany), ErrTooManyBrands)
}

func TestValidatePageParams(t *testing.T) {
	assert.NoError(t, ValidatePageParams(1, 20))
	assert.ErrorIs(t, ValidatePageParams(0, 20), ErrInvalidPagination)
	assert.ErrorIs(t, ValidatePageParams(1, 0), ErrInvalidPagination)
	assert.ErrorIs(t, ValidatePageParams(1, 101), ErrInvalidPagination)
}
