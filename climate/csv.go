package climate

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"ph_calc/diagnostics"
)

// MonthlyRow is one month of a monthly climate table.
type MonthlyRow struct {
	Month      int     `csv:"month"`
	AirTemp    float64 `csv:"air_temp"`
	DewPoint   float64 `csv:"dew_point"`
	SkyTemp    float64 `csv:"sky_temp"`
	GroundTemp float64 `csv:"ground_temp"`
	RadNorth   float64 `csv:"rad_north"`
	RadEast    float64 `csv:"rad_east"`
	RadSouth   float64 `csv:"rad_south"`
	RadWest    float64 `csv:"rad_west"`
	RadGlobal  float64 `csv:"rad_global"`
}

/*
ReadMonthlyCSV reads a monthly climate table.

	Args:
		name: climate name
		r: CSV with a header row and one row per month 1..12
	Returns:
		climate record without peak loads
*/
func ReadMonthlyCSV(name string, r io.Reader) (*Climate, error) {
	var rows []*MonthlyRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read monthly climate %s: %w", name, err)
	}
	if len(rows) != 12 {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, name, "monthly climate needs 12 rows, got %d", len(rows))
	}

	c := &Climate{Name: name}
	seen := make(map[int]bool)
	for _, row := range rows {
		if row.Month < 1 || row.Month > 12 || seen[row.Month] {
			return nil, diagnostics.Errorf(diagnostics.InputInvalid, name, "invalid or repeated month %d", row.Month)
		}
		seen[row.Month] = true
		i := row.Month - 1
		c.AirTemp[i] = row.AirTemp
		c.DewPoint[i] = row.DewPoint
		c.SkyTemp[i] = row.SkyTemp
		c.GroundTemp[i] = row.GroundTemp
		c.Radiation.North[i] = row.RadNorth
		c.Radiation.East[i] = row.RadEast
		c.Radiation.South[i] = row.RadSouth
		c.Radiation.West[i] = row.RadWest
		c.Radiation.Global[i] = row.RadGlobal
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadMonthlyCSV reads a monthly climate table from a file.
func LoadMonthlyCSV(name, path string) (*Climate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open climate file: %w", err)
	}
	defer f.Close()
	return ReadMonthlyCSV(name, f)
}

// HourlyRow is one hour of an hourly weather file.
type HourlyRow struct {
	Temperature       float64 `csv:"temperature"`
	DirectNormal      float64 `csv:"normal_direct_solar_radiation"`
	DiffuseHorizontal float64 `csv:"horizontal_sky_solar_radiation"`
	AbsoluteHumidity  float64 `csv:"absolute_humidity"` // g/kgDA, optional
}

// Hourly is an hourly weather year.
type Hourly struct {
	Temperature       []float64 // degree C, [8760]
	DirectNormal      []float64 // W/m2, [8760]
	DiffuseHorizontal []float64 // W/m2, [8760]
	AbsoluteHumidity  []float64 // kg/kgDA, [8760]; nil when the file has no humidity column
}

// ReadHourlyCSV reads an hourly weather file with exactly 8760 rows.
func ReadHourlyCSV(r io.Reader) (*Hourly, error) {
	var rows []*HourlyRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("read hourly weather: %w", err)
	}
	if len(rows) != HoursPerYear {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, "hourly weather", "weather file needs %d rows, got %d", HoursPerYear, len(rows))
	}

	h := &Hourly{
		Temperature:       make([]float64, HoursPerYear),
		DirectNormal:      make([]float64, HoursPerYear),
		DiffuseHorizontal: make([]float64, HoursPerYear),
	}
	humidity := make([]float64, HoursPerYear)
	hasHumidity := false
	for i, row := range rows {
		if row.DirectNormal < 0 || row.DiffuseHorizontal < 0 {
			return nil, diagnostics.Errorf(diagnostics.InputInvalid, "hourly weather", "row %d: radiation must be >= 0", i+2)
		}
		h.Temperature[i] = row.Temperature
		h.DirectNormal[i] = row.DirectNormal
		h.DiffuseHorizontal[i] = row.DiffuseHorizontal
		if row.AbsoluteHumidity < 0 {
			return nil, diagnostics.Errorf(diagnostics.InputInvalid, "hourly weather", "row %d: absolute humidity must be >= 0", i+2)
		}
		humidity[i] = row.AbsoluteHumidity / 1000.0
		hasHumidity = hasHumidity || row.AbsoluteHumidity > 0
	}
	if hasHumidity {
		h.AbsoluteHumidity = humidity
	}
	return h, nil
}

// LoadHourlyCSV reads an hourly weather file from disk.
func LoadHourlyCSV(path string) (*Hourly, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open weather file: %w", err)
	}
	defer f.Close()
	return ReadHourlyCSV(f)
}

// MonthOfHour returns the calendar month of hour i of a non-leap year.
func MonthOfHour(i int) time.Month {
	return time.Date(2001, time.January, 1+i/24, 0, 0, 0, 0, time.UTC).Month()
}

// MonthlyMeanTemperature averages the hourly temperatures per month.
func (h *Hourly) MonthlyMeanTemperature() Monthly {
	return monthlyMean(h.Temperature)
}
