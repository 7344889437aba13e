package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"review-catalogue-api/models"
)

func TestRatingFromAvg(t *testing.T) {
	assert.Nil(t, ratingFromAvg(nil))

	avg := 8.0
	assert.Equal(t, 8, *ratingFromAvg(&avg))

	// Floor, not round: two reviews of 8 and 5 average to 6.5 and read
	// back as 6.
	avg = 6.5
	assert.Equal(t, 6, *ratingFromAvg(&avg))

	avg = 9.99
	assert.Equal(t, 9, *ratingFromAvg(&avg))

	avg = 1.0
	assert.Equal(t, 1, *ratingFromAvg(&avg))
}

func TestValidateYear(t *testing.T) {
	current := time.Now().Year()

	assert.NoError(t, validateYear(current))
	assert.NoError(t, validateYear(1965))
	// No lower bound: ancient and negative years pass.
	assert.NoError(t, validateYear(-500))

	err := validateYear(current + 1)
	assert.True(t, errors.Is(err, models.ErrValidation))
}
