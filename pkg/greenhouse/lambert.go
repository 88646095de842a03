package greenhouse

import (
	"math"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// Statistics Canada Lambert conformal conic projection (EPSG:3347) on the
// GRS80 ellipsoid. Used for planar area computation in square meters.
const (
	grs80SemiMajor = 6378137.0
	grs80Flatten   = 1.0 / 298.257222101

	lambertStdParallel1 = 49.0
	lambertStdParallel2 = 77.0
	lambertLatOrigin    = 63.390675
	lambertLonOrigin    = -91.866666666666667
	lambertFalseEast    = 6200000.0
	lambertFalseNorth   = 3000000.0
)

// lambert holds the derived projection constants
type lambert struct {
	e    float64 // eccentricity
	n    float64 // cone constant
	f    float64 // scale constant
	rho0 float64 // radius at the latitude of origin
}

var statcanLambert = newLambert()

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func newLambert() *lambert {
	e2 := 2*grs80Flatten - grs80Flatten*grs80Flatten
	p := &lambert{e: math.Sqrt(e2)}

	phi1 := radians(lambertStdParallel1)
	phi2 := radians(lambertStdParallel2)
	phi0 := radians(lambertLatOrigin)

	m1 := p.m(phi1)
	m2 := p.m(phi2)
	t0 := p.t(phi0)
	t1 := p.t(phi1)
	t2 := p.t(phi2)

	p.n = (math.Log(m1) - math.Log(m2)) / (math.Log(t1) - math.Log(t2))
	p.f = m1 / (p.n * math.Pow(t1, p.n))
	p.rho0 = grs80SemiMajor * p.f * math.Pow(t0, p.n)
	return p
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Forward projects a WGS84 longitude and latitude in degrees to easting
// and northing in meters.
func (p *lambert) Forward(lon, lat float64) (float64, float64) {
	phi := radians(lat)
	theta := p.n * (radians(lon) - radians(lambertLonOrigin))
	rho := grs80SemiMajor * p.f * math.Pow(p.t(phi), p.n)

	x := lambertFalseEast + rho*math.Sin(theta)
	y := lambertFalseNorth + p.rho0 - rho*math.Cos(theta)
	return x, y
}

// Inverse converts easting and northing in meters back to longitude and
// latitude in degrees.
func (p *lambert) Inverse(x, y float64) (float64, float64) {
	dx := x - lambertFalseEast
	dy := p.rho0 - (y - lambertFalseNorth)

	rho := math.Hypot(dx, dy)
	if p.n < 0 {
		rho = -rho
		dx = -dx
		dy = -dy
	}

	theta := math.Atan2(dx, dy)
	lon := theta/p.n + radians(lambertLonOrigin)

	t := math.Pow(rho/(grs80SemiMajor*p.f), 1/p.n)
	phi := math.Pi/2 - 2*math.Atan(t)
	for i := 0; i < 10; i++ {
		es := p.e * math.Sin(phi)
		next := math.Pi/2 - 2*math.Atan(t*math.Pow((1-es)/(1+es), p.e/2))
		if math.Abs(next-phi) < 1e-12 {
			phi = next
			break
		}
		phi = next
	}
	return degrees(lon), degrees(phi)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (p *lambert) m(phi float64) float64 {
	s := math.Sin(phi)
	return math.Cos(phi) / math.Sqrt(1-p.e*p.e*s*s)
}

func (p *lambert) t(phi float64) float64 {
	s := math.Sin(phi)
	return math.Tan(math.Pi/4-phi/2) / math.Pow((1-p.e*s)/(1+p.e*s), p.e/2)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
