package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseCatalogTime_AcceptedFormats(t *testing.T) {
	// Catalogs emit a handful of near-RFC3339 variants
	inputs := []string{
		"2017-01-01T10:30:00.123456789Z",
		"2017-01-01T10:30:00.123456789",
		"2017-01-01T10:30:00Z",
		"2017-01-01T10:30:00",
	}

	for _, input := range inputs {
		parsed, err := ParseCatalogTime(input)
		assert.Nil(t, err, input)
		assert.Equal(t, 2017, parsed.Year(), input)
		assert.Equal(t, time.January, parsed.Month(), input)
	}
}

func TestParseCatalogTime_Unparseable(t *testing.T) {
	_, err := ParseCatalogTime("01/01/2017 10:30")

	assert.NotNil(t, err)
}
