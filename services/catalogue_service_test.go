package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"review-catalogue-api/models"
)

func TestValidateSlug(t *testing.T) {
	assert.NoError(t, validateSlug("sci-fi"))
	assert.NoError(t, validateSlug("sf"))
	assert.NoError(t, validateSlug("noir_2"))

	for _, slug := range []string{"", "sci fi", "sci/fi", "фантастика", "a.b"} {
		err := validateSlug(slug)
		assert.True(t, errors.Is(err, models.ErrValidation), "slug %q should be rejected", slug)
	}
}
