package greenhouse

import (
	"os"
	"strconv"
	"strings"
	"sync"

	// Packages
	athena "github.com/ayush27316/Athena"
	shp "github.com/jonas-p/go-shp"
	orb "github.com/paulmach/orb"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Dataset is the immutable in-memory greenhouse table, loaded lazily from
// a shapefile on first access and cached for the process lifetime.
type Dataset struct {
	path    string
	once    sync.Once
	err     error
	records []Record
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Open returns a dataset backed by the shapefile at the given path.
// The file is not read until the first query.
func Open(path string) *Dataset {
	return &Dataset{path: path}
}

// NewDataset returns a dataset over the given records. Records without an
// area have it computed from their geometry.
func NewDataset(records ...Record) *Dataset {
	for i := range records {
		records[i].ID = i
		if records[i].Area == 0 && len(records[i].Geometry) > 0 {
			records[i].Area = planarArea(records[i].Geometry)
		}
	}
	d := &Dataset{records: records}
	d.once.Do(func() {})
	return d
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Records returns all records, loading the shapefile if required
func (d *Dataset) Records() ([]Record, error) {
	d.once.Do(func() {
		d.records, d.err = readShapefile(d.path)
	})
	return d.records, d.err
}

// Len returns the number of records in the dataset
func (d *Dataset) Len() (int, error) {
	records, err := d.Records()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// readShapefile reads records and attributes from the shapefile at path.
// Geometry is converted to WGS84 when the sidecar .prj declares a
// projected CRS.
func readShapefile(path string) ([]Record, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, athena.ErrNotFound.Withf("failed to open shapefile: %v", err)
	}
	defer reader.Close()

	projected := isProjected(path)

	// Resolve attribute column indexes by name
	fields := reader.Fields()
	index := make(map[string]int, len(fields))
	for i, field := range fields {
		index[field.String()] = i
	}

	var records []Record
	for reader.Next() {
		row, raw := reader.Shape()
		polygon, ok := raw.(*shp.Polygon)
		if !ok {
			continue
		}

		// IDs are slice positions so Get(id) stays aligned when
		// non-polygon rows are skipped
		record := Record{
			ID:         len(records),
			DataSource: attribute(reader, index, row, "DataSource"),
			Province:   attribute(reader, index, row, "PROV_TERR"),
			ImageYear:  attributeInt(reader, index, row, "ImageDate"),
			Latitude:   attributeFloat(reader, index, row, "Latitude"),
			Longitude:  attributeFloat(reader, index, row, "Longitude"),
			PRUID:      attributeInt(reader, index, row, "PRUID"),
			Perimeter:  attributeFloat(reader, index, row, "Shape_Leng"),
			Geometry:   multiPolygon(polygon, projected),
		}

		// Derive province name from PRUID when the attribute is absent
		if record.Province == "" && record.PRUID != nil {
			record.Province = ProvinceName(*record.PRUID)
		}

		record.Area = round2(planarArea(record.Geometry))
		records = append(records, record)
	}

	if len(records) == 0 {
		return nil, athena.ErrNotFound.Withf("no polygon records in %q", path)
	}
	return records, nil
}

// isProjected reports whether the sidecar .prj file declares a projected
// CRS. Absent or geographic CRS files are treated as WGS84.
func isProjected(path string) bool {
	prj := strings.TrimSuffix(path, ".shp") + ".prj"
	data, err := os.ReadFile(prj)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), "PROJCS")
}

// multiPolygon converts a shapefile polygon into an orb multipolygon in
// WGS84 degrees. The first part is the outer ring; subsequent parts are
// treated as holes.
func multiPolygon(p *shp.Polygon, projected bool) orb.MultiPolygon {
	rings := make(orb.Polygon, 0, len(p.Parts))
	for i, start := range p.Parts {
		end := len(p.Points)
		if i+1 < len(p.Parts) {
			end = int(p.Parts[i+1])
		}
		ring := make(orb.Ring, 0, end-int(start))
		for _, point := range p.Points[start:end] {
			x, y := point.X, point.Y
			if projected {
				x, y = statcanLambert.Inverse(x, y)
			}
			ring = append(ring, orb.Point{x, y})
		}
		rings = append(rings, ring)
	}
	return orb.MultiPolygon{rings}
}

// attribute returns the named attribute for a row, or "" if missing
func attribute(reader *shp.Reader, index map[string]int, row int, name string) string {
	i, ok := index[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(reader.ReadAttribute(row, i))
}

func attributeInt(reader *shp.Reader, index map[string]int, row int, name string) *int {
	value := attribute(reader, index, row, name)
	if value == "" {
		return nil
	}
	// DBF numeric fields may carry a decimal point
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

func attributeFloat(reader *shp.Reader, index map[string]int, row int, name string) *float64 {
	value := attribute(reader, index, row, name)
	if value == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return &f
	}
	return nil
}
