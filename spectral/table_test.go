package spectral

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
)

const validTableJSON = `{
	"sensors": {
		"Sentinel-2A": {"B2": "S2A_MSI_02", "B3": "S2A_MSI_03"},
		"Sentinel-2B": {"B2": "S2B_MSI_02"}
	}
}`

func TestLoadTable_Success(t *testing.T) {
	// Tested code
	table, err := LoadTable(strings.NewReader(validTableJSON))

	// Asserts
	assert.Nil(t, err)
	assert.ElementsMatch(t, []string{"Sentinel-2A", "Sentinel-2B"}, table.Sensors())
}

func TestLoadTable_InvalidJSON(t *testing.T) {
	_, err := LoadTable(strings.NewReader("not json at all"))

	assert.NotNil(t, err)
}

func TestLoadTable_EmptyTable(t *testing.T) {
	_, err := LoadTable(strings.NewReader(`{"sensors": {}}`))

	assert.NotNil(t, err)
}

func TestResponseCurve_Success(t *testing.T) {
	table, err := LoadTable(strings.NewReader(validTableJSON))
	assert.Nil(t, err)

	curve, err := table.ResponseCurve("Sentinel-2A", "B3")

	assert.Nil(t, err)
	assert.Equal(t, "S2A_MSI_03", curve)
}

func TestResponseCurve_UnknownSensor(t *testing.T) {
	table, _ := LoadTable(strings.NewReader(validTableJSON))

	_, err := table.ResponseCurve("Landsat-8", "B2")

	assert.IsType(t, model.ConfigurationError{}, err)
	assert.Equal(t, "sensor", err.(model.ConfigurationError).Field)
}

func TestResponseCurve_UnknownBand(t *testing.T) {
	table, _ := LoadTable(strings.NewReader(validTableJSON))

	_, err := table.ResponseCurve("Sentinel-2B", "B3")

	assert.IsType(t, model.ConfigurationError{}, err)
	assert.Equal(t, "band", err.(model.ConfigurationError).Field)
}

func TestLoadTableFromFile_MissingFile(t *testing.T) {
	_, err := LoadTableFromFile("/nonexistent/spectral.json")

	assert.NotNil(t, err)
}
