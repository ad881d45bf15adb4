// Package spectral maps sensor bands to the predefined spectral response
// curves the radiative transfer solver understands. The mapping is
// configuration data supplied at deploy time, never hardcoded.
package spectral

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jonas-eberle/gee-atmcorr-S2/model"
)

// Table is a static sensor+band → response curve lookup
type Table struct {
	sensors map[string]map[string]string
}

type tableFile struct {
	Sensors map[string]map[string]string `json:"sensors"`
}

// LoadTable reads a JSON table of the form
// {"sensors": {"Sentinel-2A": {"B2": "S2A_MSI_02", ...}, ...}}
func LoadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var parsed tableFile
	if err = json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("Failed to parse spectral response table: %v", err)
	}
	if len(parsed.Sensors) == 0 {
		return nil, fmt.Errorf("Spectral response table contains no sensors")
	}

	return &Table{sensors: parsed.Sensors}, nil
}

// LoadTableFromFile reads a JSON table from the given path
func LoadTableFromFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadTable(f)
}

// ResponseCurve returns the response curve handle for a sensor band.
// An unknown sensor or band is a configuration error, not a data error.
func (t *Table) ResponseCurve(sensor, band string) (string, error) {
	bands, ok := t.sensors[sensor]
	if !ok {
		return "", model.ConfigurationError{Field: "sensor", Reason: fmt.Sprintf("%q is not in the spectral response table", sensor)}
	}
	curve, ok := bands[band]
	if !ok {
		return "", model.ConfigurationError{Field: "band", Reason: fmt.Sprintf("%q is not in the spectral response table for sensor %q", band, sensor)}
	}
	return curve, nil
}

// Sensors lists the sensors the table knows about
func (t *Table) Sensors() []string {
	names := make([]string, 0, len(t.sensors))
	for name := range t.sensors {
		names = append(names, name)
	}
	return names
}
