package climate

import "math"

// AtmosphericPressure is the standard atmosphere, Pa.
const AtmosphericPressure = 101325.0

/*
SaturationPressure returns the saturation vapour pressure over water
(theta >= 0) or ice (theta < 0).

	Args:
		theta: air temperature, degree C
	Returns:
		saturation vapour pressure, Pa
	Notes:
		Wexler-Hyland
*/
func SaturationPressure(theta float64) float64 {
	t := theta + 273.15

	const a1 = -6096.9385
	const a2 = 21.2409642
	const a3 = -0.02711193
	const a4 = 0.00001673952
	const a5 = 2.433502
	const b1 = -6024.5282
	const b2 = 29.32707
	const b3 = 0.010613863
	const b4 = -0.000013198825
	const b5 = -0.49382577

	if theta >= 0.0 {
		return math.Exp(a1/t + a2 + a3*t + a4*t*t + a5*math.Log(t))
	}
	return math.Exp(b1/t + b2 + b3*t + b4*t*t + b5*math.Log(t))
}

/*
VapourPressure converts absolute humidity to vapour pressure.

	Args:
		x: absolute humidity, kg/kgDA
	Returns:
		vapour pressure, Pa
*/
func VapourPressure(x float64) float64 {
	return AtmosphericPressure * x / (x + 0.62198)
}

// RelativeHumidity returns p_v/p_vs at theta, %.
func RelativeHumidity(theta, x float64) float64 {
	return VapourPressure(x) / SaturationPressure(theta) * 100.0
}

/*
DewPoint returns the temperature at which the vapour pressure of x
saturates.

	Args:
		x: absolute humidity, kg/kgDA, > 0
	Returns:
		dew point, degree C
	Notes:
		bisection on SaturationPressure over [-100, 100] C.
*/
func DewPoint(x float64) float64 {
	pv := VapourPressure(x)
	lo, hi := -100.0, 100.0
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if SaturationPressure(mid) < pv {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

/*
SkyTemperature returns the clear-sky effective sky temperature.

	Args:
		air: air temperature, degree C
		dew: dew point, degree C
	Returns:
		sky temperature, degree C
	Notes:
		Berdahl-Martin clear-sky emissivity
*/
func SkyTemperature(air, dew float64) float64 {
	eps := 0.711 + 0.0056*dew + 0.000073*dew*dew
	eps = math.Max(0, math.Min(1, eps))
	return (air+273.15)*math.Pow(eps, 0.25) - 273.15
}
