// Package greenhouse provides read-only queries over the Statistics Canada
// Open Database of Greenhouses (ODG v1) shapefile, and the tools which
// expose those queries to a chat client.
package greenhouse

import (
	"math"

	// Packages
	orb "github.com/paulmach/orb"
	geojson "github.com/paulmach/orb/geojson"
	planar "github.com/paulmach/orb/planar"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Record is a single greenhouse polygon with its attributes. Geometry is
// held in WGS84 (EPSG:4326) longitude and latitude degrees.
type Record struct {
	ID         int              `json:"id"`
	DataSource string           `json:"data_source"`
	ImageYear  *int             `json:"image_year"`
	Latitude   *float64         `json:"latitude"`
	Longitude  *float64         `json:"longitude"`
	Province   string           `json:"province"`
	PRUID      *int             `json:"pruid"`
	Area       float64          `json:"area_sq_meters"`
	Perimeter  *float64         `json:"perimeter_meters"`
	Geometry   orb.MultiPolygon `json:"-"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// provinceLookup maps StatCan PRUID codes to province names
var provinceLookup = map[int]string{
	24: "Quebec",
	35: "Ontario",
	47: "Saskatchewan",
	48: "Alberta",
	59: "British Columbia",
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ProvinceName returns the province name for a StatCan PRUID code
func ProvinceName(pruid int) string {
	return provinceLookup[pruid]
}

// GeoJSON returns the record geometry as a GeoJSON geometry object.
// A single-ring multipolygon is flattened to a Polygon.
func (r Record) GeoJSON() *geojson.Geometry {
	if len(r.Geometry) == 1 {
		return geojson.NewGeometry(r.Geometry[0])
	}
	return geojson.NewGeometry(r.Geometry)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// planarArea computes the area of the geometry in square meters by
// projecting each point into the StatCan Lambert CRS
func planarArea(geometry orb.MultiPolygon) float64 {
	projected := make(orb.MultiPolygon, 0, len(geometry))
	for _, polygon := range geometry {
		rings := make(orb.Polygon, 0, len(polygon))
		for _, ring := range polygon {
			points := make(orb.Ring, 0, len(ring))
			for _, point := range ring {
				x, y := statcanLambert.Forward(point[0], point[1])
				points = append(points, orb.Point{x, y})
			}
			rings = append(rings, points)
		}
		projected = append(projected, rings)
	}
	return math.Abs(planar.Area(projected))
}

// round2 rounds to two decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round4 rounds to four decimal places
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// round6 rounds to six decimal places
func round6(v float64) float64 {
	return math.Round(v*1000000) / 1000000
}
