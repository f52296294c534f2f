package units

// Conversion factors to SI. The core works exclusively in SI; IP values
// only appear at the API edge and in the Phius tabulations.
const (
	M2ToFt2 = 10.763910416709722 // ft2 per m2
	FtToM   = 0.3048             // m per ft
	InToM   = 0.0254             // m per in
	MmToM   = 0.001              // m per mm
	CmToM   = 0.01               // m per cm

	// W/mK per Btu/(hr ft F)
	BtuHrFtFToWMK = 1.730734666

	// m2K/W per hr ft2 F/Btu
	RIPToRSI = 0.176110183

	// W/m2K per Btu/(hr ft2 F)
	UIPToUSI = 5.678263337

	// J per kWh
	KWhToJ = 3.6e6

	// kWh/m2 per kBtu/ft2, W/m2 per Btu/(hr ft2)
	KBtuFt2ToKWhM2 = 3.154590745
	BtuHrFt2ToWM2  = 3.154590745

	// kWh per kBtu
	KBtuToKWh = 0.29307107

	// hours per (non-leap) year
	HoursPerYear = 8760.0
)

/*
M2ToFt2Area converts a floor area from m2 to ft2.

	Args:
		a: area, m2
	Returns:
		area, ft2
*/
func M2ToFt2Area(a float64) float64 {
	return a * M2ToFt2
}

// Ft2ToM2Area converts an area from ft2 to m2.
func Ft2ToM2Area(a float64) float64 {
	return a / M2ToFt2
}

// CToF converts a temperature from degree C to degree F.
func CToF(c float64) float64 {
	return c*9.0/5.0 + 32.0
}

// FToC converts a temperature from degree F to degree C.
func FToC(f float64) float64 {
	return (f - 32.0) * 5.0 / 9.0
}

// AverageWatts converts an annual energy, kWh/yr, to a constant load, W.
func AverageWatts(kwhPerYear float64) float64 {
	return kwhPerYear * 1000.0 / HoursPerYear
}
