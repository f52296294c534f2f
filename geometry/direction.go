package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Direction is the compass orientation of a surface normal.
type Direction string

const (
	DirectionS      Direction = "s"
	DirectionSW     Direction = "sw"
	DirectionW      Direction = "w"
	DirectionNW     Direction = "nw"
	DirectionN      Direction = "n"
	DirectionNE     Direction = "ne"
	DirectionE      Direction = "e"
	DirectionSE     Direction = "se"
	DirectionTop    Direction = "top"
	DirectionBottom Direction = "bottom"
)

func DirectionFromString(str string) (Direction, error) {
	switch d := Direction(str); d {
	case DirectionS, DirectionSW, DirectionW, DirectionNW, DirectionN,
		DirectionNE, DirectionE, DirectionSE, DirectionTop, DirectionBottom:
		return d, nil
	default:
		return "", fmt.Errorf("invalid direction %q", str)
	}
}

// surfaces steeper than this are walls, rad
const wallTiltLimit = math.Pi / 3

/*
DirectionFromNormal classifies a surface normal.

	Args:
		n: outward surface normal
	Returns:
		the nearest of the eight compass directions, or top/bottom for
		surfaces within 30 degrees of horizontal
*/
func DirectionFromNormal(n r3.Vec) Direction {
	n = Normalize(n)
	tilt := math.Acos(math.Max(-1, math.Min(1, n.Z)))
	if tilt < math.Pi/2-wallTiltLimit {
		return DirectionTop
	}
	if tilt > math.Pi/2+wallTiltLimit {
		return DirectionBottom
	}

	// azimuth from south, positive toward west, rad
	alpha := math.Atan2(-n.X, -n.Y)
	octant := int(math.Round(alpha/(math.Pi/4))+8) % 8
	return [...]Direction{
		DirectionS, DirectionSW, DirectionW, DirectionNW,
		DirectionN, DirectionNE, DirectionE, DirectionSE,
	}[octant]
}

/*
Azimuth returns the azimuth of a surface facing d.

	Returns:
		azimuth measured from south, positive toward west, rad
*/
func (d Direction) Azimuth() (float64, error) {
	switch d {
	case DirectionS:
		return math.Pi * 0.0 / 180.0, nil
	case DirectionSW:
		return math.Pi * 45.0 / 180.0, nil
	case DirectionW:
		return math.Pi * 90.0 / 180.0, nil
	case DirectionNW:
		return math.Pi * 135.0 / 180.0, nil
	case DirectionN:
		return math.Pi * 180.0 / 180.0, nil
	case DirectionNE:
		return math.Pi * -135.0 / 180.0, nil
	case DirectionE:
		return math.Pi * -90.0 / 180.0, nil
	case DirectionSE:
		return math.Pi * -45.0 / 180.0, nil
	default:
		return 0, fmt.Errorf("direction %q has no azimuth", d)
	}
}

/*
Tilt returns the tilt of a surface facing d.

	Returns:
		tilt from horizontal-facing-up, rad
*/
func (d Direction) Tilt() float64 {
	switch d {
	case DirectionTop:
		return 0.0
	case DirectionBottom:
		return math.Pi
	default:
		return math.Pi / 2
	}
}
