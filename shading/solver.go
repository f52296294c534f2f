package shading

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"ph_calc/diagnostics"
	"ph_calc/geometry"
	"ph_calc/model"
)

const (
	// DefaultGridSize is the analysis grid spacing, m.
	DefaultGridSize = 0.1

	// factors this close to 0 or 1 are reported as suspicious
	suspiciousTolerance = 1e-4

	// analysis points are lifted off the aperture to avoid self hits, m
	pointLift = 1e-6

	// distance of the back mesh behind the aperture, m
	backOffset = 0.01
)

// Input is everything a solver run needs.
type Input struct {
	Apertures   []*model.Aperture
	WinterSky   *SkyMatrix
	SummerSky   *SkyMatrix
	WinterShade *geometry.Mesh
	SummerShade *geometry.Mesh
	GridSize    float64 // m, <= 0 means DefaultGridSize
	CPUs        int     // <= 0 means runtime.NumCPU()
}

// Factors are the shading factors of one aperture.
type Factors struct {
	Aperture string
	Winter   float64
	Summer   float64
	Skipped  bool // degenerate aperture, factors left at 1
}

// Result holds one Factors per input aperture, in input order.
type Result struct {
	Factors []Factors
}

/*
Reveals returns the inset aperture face and the four reveal faces that
connect it to the outer wall plane.

	Args:
		f: aperture face, normal pointing outwards
		depth: install depth, m
	Returns:
		inset face, reveal faces (nil when depth is 0)
*/
func Reveals(f geometry.Face, depth float64) (geometry.Face, []geometry.Face) {
	if depth <= 0 {
		return f, nil
	}
	inset := f.Offset(-depth)
	n := len(f.Vertices)
	reveals := make([]geometry.Face, 0, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		reveals = append(reveals, geometry.NewFace(
			f.Vertices[i], inset.Vertices[i], inset.Vertices[j], f.Vertices[j],
		))
	}
	return inset, reveals
}

// analysis holds the per-aperture geometry shared by both seasons.
type analysis struct {
	normal r3.Vec
	points []r3.Vec
	areas  []float64
	shade  *geometry.Mesh // reveals, joined per season with the context
	back   *geometry.Mesh
}

func newAnalysis(ap *model.Aperture, gridSize float64) *analysis {
	face := ap.Geometry
	n := face.Normal()
	inset, reveals := Reveals(face, ap.InstallDepth)
	cells := inset.Grid(gridSize)
	a := &analysis{
		normal: n,
		points: make([]r3.Vec, len(cells)),
		areas:  make([]float64, len(cells)),
		shade:  geometry.NewMesh(reveals...),
		back:   geometry.NewMesh(inset.Offset(-backOffset)),
	}
	for i, c := range cells {
		a.points[i] = r3.Add(c.Center, r3.Scale(pointLift, n))
		a.areas[i] = c.Area
	}
	return a
}

/*
irradiation builds the (points x patches) matrix of area·cos·visibility and
multiplies it by the sky vector.

	Returns:
		Σ over points of the received irradiation, kWh
*/
func (a *analysis) irradiation(sky *SkyMatrix, ctx *geometry.Mesh) float64 {
	k, p := len(a.points), sky.Len()
	if k == 0 || p == 0 {
		return 0
	}
	m := mat.NewDense(k, p, nil)
	for j, patch := range sky.Patches {
		if patch.Ground {
			continue
		}
		cos := r3.Dot(a.normal, patch.Direction)
		if cos <= 0 {
			continue
		}
		for i, pt := range a.points {
			if ctx.Intersects(pt, patch.Direction) {
				continue
			}
			m.Set(i, j, a.areas[i]*cos)
		}
	}
	var e mat.VecDense
	e.MulVec(m, mat.NewVecDense(p, sky.Values()))
	return floats.Sum(e.RawVector().Data)
}

func (a *analysis) factor(sky *SkyMatrix, context *geometry.Mesh) float64 {
	unshaded := a.irradiation(sky, a.back)
	if unshaded <= 0 {
		return 1
	}
	shaded := a.irradiation(sky, context.Join(a.shade, a.back))
	return math.Min(1, math.Max(0, shaded/unshaded))
}

/*
Solve computes the winter and summer shading factors of every aperture.

	Returns:
		result, warnings, error
	Notes:
		apertures are solved in parallel; the result and the warnings
		are assembled in input order, so repeated runs are bitwise
		identical.
*/
func Solve(in Input) (*Result, *diagnostics.Report, error) {
	report := diagnostics.NewReport()
	if in.WinterSky == nil || in.SummerSky == nil {
		return nil, report, diagnostics.Errorf(diagnostics.InputMissing, "sky matrix", "winter and summer sky matrices are required")
	}
	size := in.GridSize
	if size <= 0 {
		size = DefaultGridSize
	}
	cpus := in.CPUs
	if cpus <= 0 {
		cpus = runtime.NumCPU()
	}

	out := make([]Factors, len(in.Apertures))
	var g errgroup.Group
	g.SetLimit(cpus)
	for i, ap := range in.Apertures {
		out[i] = Factors{Aperture: ap.Name, Winter: 1, Summer: 1}
		if ap.Geometry.IsDegenerate() {
			out[i].Skipped = true
			continue
		}
		g.Go(func() error {
			a := newAnalysis(ap, size)
			out[i].Winter = a.factor(in.WinterSky, in.WinterShade)
			out[i].Summer = a.factor(in.SummerSky, in.SummerShade)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, report, err
	}

	for _, f := range out {
		if f.Skipped {
			report.Warn(diagnostics.GeoDegenerateAperture, f.Aperture, "aperture has no area; skipped")
			continue
		}
		for _, v := range []float64{f.Winter, f.Summer} {
			if v < suspiciousTolerance || v > 1-suspiciousTolerance {
				report.Warn(diagnostics.ShadingSuspiciousFactor, f.Aperture, "shading factor %.6f", v)
				break
			}
		}
	}
	return &Result{Factors: out}, report, nil
}

// Apply returns copies of apertures carrying the solved factors. Skipped
// apertures are copied unchanged.
func (r *Result) Apply(apertures []*model.Aperture) ([]*model.Aperture, error) {
	if len(apertures) != len(r.Factors) {
		return nil, diagnostics.Errorf(diagnostics.InputInvalid, "shading", "%d apertures for %d results", len(apertures), len(r.Factors))
	}
	out := make([]*model.Aperture, len(apertures))
	for i, ap := range apertures {
		f := r.Factors[i]
		if f.Skipped {
			c := *ap
			out[i] = &c
			continue
		}
		c, err := ap.WithShadingFactors(f.Winter, f.Summer)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}
