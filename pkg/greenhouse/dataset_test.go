package greenhouse

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	// Packages
	shp "github.com/jonas-p/go-shp"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// LIVE SHAPEFILE TESTS

// datasetPath returns the shapefile path from the environment, or ""
func datasetPath() string {
	return os.Getenv("ATHENA_DATA")
}

func Test_dataset_001(t *testing.T) {
	// Test loading the real shapefile
	path := datasetPath()
	if path == "" {
		t.Skip("ATHENA_DATA not set, skipping")
	}
	assert := assert.New(t)

	dataset := Open(path)
	records, err := dataset.Records()
	assert.NoError(err)

	// The ODG v1 dataset has ~2476 records
	assert.Greater(len(records), 2000)
	assert.Less(len(records), 3000)
}

func Test_dataset_002(t *testing.T) {
	// Test that geometry and coordinates are in WGS84 degrees
	path := datasetPath()
	if path == "" {
		t.Skip("ATHENA_DATA not set, skipping")
	}
	assert := assert.New(t)

	stats, err := Open(path).Stats()
	assert.NoError(err)
	assert.Greater(stats.Latitude.Min, 40.0)
	assert.Less(stats.Latitude.Max, 85.0)
	assert.Greater(stats.Longitude.Min, -145.0)
	assert.Less(stats.Longitude.Max, -50.0)
	assert.Greater(stats.Area.Mean, 0.0)
}

func Test_dataset_003(t *testing.T) {
	// Test that the loader errors on a missing file
	assert := assert.New(t)
	_, err := Open("/nonexistent/odg_v1.shp").Records()
	assert.Error(err)
}

///////////////////////////////////////////////////////////////////////////////
// FIXTURE TESTS

// writeTestShapefile writes a shapefile of small square polygons with one
// attribute row per shape. Coordinates are WGS84 degrees.
func writeTestShapefile(t *testing.T, path string, sources []string) {
	t.Helper()
	writer, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatal(err)
	}
	if err := writer.SetFields([]shp.Field{
		shp.StringField("DataSource", 40),
		shp.StringField("PROV_TERR", 40),
		shp.NumberField("ImageDate", 8),
		shp.NumberField("PRUID", 8),
	}); err != nil {
		t.Fatal(err)
	}
	for i, source := range sources {
		lon, lat := -82.6+float64(i)*0.01, 42.05
		square := shp.Polygon(*shp.NewPolyLine([][]shp.Point{{
			{X: lon, Y: lat},
			{X: lon + 0.001, Y: lat},
			{X: lon + 0.001, Y: lat + 0.001},
			{X: lon, Y: lat + 0.001},
			{X: lon, Y: lat},
		}}))
		row := int(writer.Write(&square))
		if err := writer.WriteAttribute(row, 0, source); err != nil {
			t.Fatal(err)
		}
		if err := writer.WriteAttribute(row, 1, "Ontario"); err != nil {
			t.Fatal(err)
		}
		if err := writer.WriteAttribute(row, 2, 2020); err != nil {
			t.Fatal(err)
		}
		if err := writer.WriteAttribute(row, 3, 35); err != nil {
			t.Fatal(err)
		}
	}
	writer.Close()

	// The writer drops the dot from the attribute file name; the reader
	// expects it
	base := path[:len(path)-4]
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		t.Fatal(err)
	}
}

// nullifyShape rewrites the shape type of the given zero-based record to
// NULL, so the loader skips it.
func nullifyShape(t *testing.T, path string, record int) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Records follow a 100-byte file header. Each record is an 8-byte
	// header (number, content length in 16-bit words) then content,
	// which begins with a little-endian shape type.
	offset := 100
	for i := 0; i < record; i++ {
		length := int(binary.BigEndian.Uint32(data[offset+4 : offset+8]))
		offset += 8 + 2*length
	}
	binary.LittleEndian.PutUint32(data[offset+8:offset+12], 0)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func Test_dataset_004(t *testing.T) {
	// Test that a generated shapefile loads with sequential ids and
	// parsed attributes
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "test.shp")
	writeTestShapefile(t, path, []string{"first", "second", "third"})

	records, err := Open(path).Records()
	assert.NoError(err)
	assert.Len(records, 3)
	for i, record := range records {
		assert.Equal(i, record.ID)
		assert.Equal("Ontario", record.Province)
		if assert.NotNil(record.ImageYear) {
			assert.Equal(2020, *record.ImageYear)
		}
		if assert.NotNil(record.PRUID) {
			assert.Equal(35, *record.PRUID)
		}
		assert.Greater(record.Area, 0.0)
	}
}

func Test_dataset_005(t *testing.T) {
	// Ids stay aligned with lookup positions when non-polygon rows
	// are skipped during load
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "test.shp")
	writeTestShapefile(t, path, []string{"first", "second", "third"})
	nullifyShape(t, path, 1)

	dataset := Open(path)
	records, err := dataset.Records()
	assert.NoError(err)
	assert.Len(records, 2)
	assert.Equal("first", records[0].DataSource)
	assert.Equal("third", records[1].DataSource)
	for i, record := range records {
		assert.Equal(i, record.ID)
	}

	record, err := dataset.Get(1)
	assert.NoError(err)
	if assert.NotNil(record) {
		assert.Equal(1, record.ID)
		assert.Equal("third", record.DataSource)
	}
}
