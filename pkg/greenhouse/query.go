package greenhouse

import (
	"fmt"
	"sort"
	"strings"

	// Packages
	athena "github.com/ayush27316/Athena"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Column describes a single dataset column for the schema listing
type Column struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Samples []string `json:"sample_values,omitempty"`
}

// Stats holds aggregate statistics over the whole dataset
type Stats struct {
	Total      int            `json:"total_greenhouses"`
	Provinces  map[string]int `json:"provinces"`
	ImageYears map[int]int    `json:"image_years"`
	Area       AreaStats      `json:"area_stats_sq_meters"`
	Latitude   Range          `json:"latitude_range"`
	Longitude  Range          `json:"longitude_range"`
}

// AreaStats holds area statistics in square meters
type AreaStats struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Total  float64 `json:"total"`
}

// Range is a min/max pair
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// SearchRequest holds the search filters and pagination parameters
type SearchRequest struct {
	Province  string   `json:"province,omitempty"`
	MinArea   *float64 `json:"min_area,omitempty"`
	MaxArea   *float64 `json:"max_area,omitempty"`
	ImageYear *int     `json:"image_year,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	Offset    int      `json:"offset,omitempty"`
}

// SearchResponse holds a page of matching records and pagination state
type SearchResponse struct {
	Total   int      `json:"total"`
	Offset  int      `json:"offset"`
	Limit   int      `json:"limit"`
	Records []Record `json:"records"`
}

// ProvinceSummary is the per-province aggregate breakdown
type ProvinceSummary struct {
	Province   string  `json:"province"`
	Count      int     `json:"greenhouse_count"`
	TotalArea  float64 `json:"total_area_sq_meters"`
	AvgArea    float64 `json:"avg_area_sq_meters"`
	ImageYears []int   `json:"image_years"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultSearchLimit is the page size when none is given
	DefaultSearchLimit = 50

	// MaxSearchLimit caps the page size
	MaxSearchLimit = 500
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Schema returns the dataset columns with types and sample values
func (d *Dataset) Schema() ([]Column, error) {
	records, err := d.Records()
	if err != nil {
		return nil, err
	}

	samples := func(get func(Record) (string, bool)) []string {
		var result []string
		for _, r := range records {
			if len(result) == 3 {
				break
			}
			if value, ok := get(r); ok {
				result = append(result, value)
			}
		}
		return result
	}

	return []Column{
		{Name: "DataSource", Type: "object", Samples: samples(func(r Record) (string, bool) {
			return r.DataSource, r.DataSource != ""
		})},
		{Name: "ImageDate", Type: "int64", Samples: samples(func(r Record) (string, bool) {
			if r.ImageYear == nil {
				return "", false
			}
			return fmt.Sprintf("%d", *r.ImageYear), true
		})},
		{Name: "Latitude", Type: "float64", Samples: samples(func(r Record) (string, bool) {
			if r.Latitude == nil {
				return "", false
			}
			return fmt.Sprintf("%g", *r.Latitude), true
		})},
		{Name: "Longitude", Type: "float64", Samples: samples(func(r Record) (string, bool) {
			if r.Longitude == nil {
				return "", false
			}
			return fmt.Sprintf("%g", *r.Longitude), true
		})},
		{Name: "PRUID", Type: "int64", Samples: samples(func(r Record) (string, bool) {
			if r.PRUID == nil {
				return "", false
			}
			return fmt.Sprintf("%d", *r.PRUID), true
		})},
		{Name: "PROV_TERR", Type: "object", Samples: samples(func(r Record) (string, bool) {
			return r.Province, r.Province != ""
		})},
		{Name: "Shape_Leng", Type: "float64", Samples: samples(func(r Record) (string, bool) {
			if r.Perimeter == nil {
				return "", false
			}
			return fmt.Sprintf("%g", *r.Perimeter), true
		})},
		{Name: "geometry", Type: "geometry (polygon)", Samples: []string{"Greenhouse polygon boundary"}},
	}, nil
}

// Stats returns aggregate statistics over the whole dataset
func (d *Dataset) Stats() (*Stats, error) {
	records, err := d.Records()
	if err != nil {
		return nil, err
	} else if len(records) == 0 {
		return nil, athena.ErrNotFound.With("dataset is empty")
	}

	stats := &Stats{
		Total:      len(records),
		Provinces:  make(map[string]int),
		ImageYears: make(map[int]int),
	}

	areas := make([]float64, 0, len(records))
	var total float64
	latitude := Range{Min: 90, Max: -90}
	longitude := Range{Min: 180, Max: -180}
	for _, r := range records {
		if r.Province != "" {
			stats.Provinces[r.Province]++
		}
		if r.ImageYear != nil {
			stats.ImageYears[*r.ImageYear]++
		}
		areas = append(areas, r.Area)
		total += r.Area
		if r.Latitude != nil {
			latitude.Min = min(latitude.Min, *r.Latitude)
			latitude.Max = max(latitude.Max, *r.Latitude)
		}
		if r.Longitude != nil {
			longitude.Min = min(longitude.Min, *r.Longitude)
			longitude.Max = max(longitude.Max, *r.Longitude)
		}
	}

	sort.Float64s(areas)
	stats.Area = AreaStats{
		Mean:   round2(total / float64(len(areas))),
		Median: round2(median(areas)),
		Min:    round2(areas[0]),
		Max:    round2(areas[len(areas)-1]),
		Total:  round2(total),
	}
	stats.Latitude = Range{Min: round4(latitude.Min), Max: round4(latitude.Max)}
	stats.Longitude = Range{Min: round4(longitude.Min), Max: round4(longitude.Max)}
	return stats, nil
}

// Search returns the records matching the request filters, paginated.
// The limit defaults to DefaultSearchLimit and is capped at MaxSearchLimit.
func (d *Dataset) Search(request SearchRequest) (*SearchResponse, error) {
	records, err := d.Records()
	if err != nil {
		return nil, err
	}

	province := strings.ToLower(strings.TrimSpace(request.Province))
	var matches []Record
	for _, r := range records {
		if province != "" && !strings.Contains(strings.ToLower(r.Province), province) {
			continue
		}
		if request.MinArea != nil && r.Area < *request.MinArea {
			continue
		}
		if request.MaxArea != nil && r.Area > *request.MaxArea {
			continue
		}
		if request.ImageYear != nil && (r.ImageYear == nil || *r.ImageYear != *request.ImageYear) {
			continue
		}
		matches = append(matches, r)
	}

	limit := request.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	limit = min(limit, MaxSearchLimit)

	offset := max(request.Offset, 0)
	page := []Record{}
	if offset < len(matches) {
		page = matches[offset:min(offset+limit, len(matches))]
	}

	return &SearchResponse{
		Total:   len(matches),
		Offset:  offset,
		Limit:   limit,
		Records: page,
	}, nil
}

// Get returns the record with the given 0-based index, or nil when the
// index is out of range.
func (d *Dataset) Get(id int) (*Record, error) {
	records, err := d.Records()
	if err != nil {
		return nil, err
	}
	if id < 0 || id >= len(records) {
		return nil, nil
	}
	record := records[id]
	return &record, nil
}

// Provinces returns the per-province breakdown, sorted by province name
func (d *Dataset) Provinces() ([]ProvinceSummary, error) {
	records, err := d.Records()
	if err != nil {
		return nil, err
	}

	byProvince := make(map[string][]Record)
	for _, r := range records {
		if r.Province != "" {
			byProvince[r.Province] = append(byProvince[r.Province], r)
		}
	}

	names := make([]string, 0, len(byProvince))
	for name := range byProvince {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]ProvinceSummary, 0, len(names))
	for _, name := range names {
		subset := byProvince[name]
		var total float64
		years := make(map[int]bool)
		for _, r := range subset {
			total += r.Area
			if r.ImageYear != nil {
				years[*r.ImageYear] = true
			}
		}
		sortedYears := make([]int, 0, len(years))
		for year := range years {
			sortedYears = append(sortedYears, year)
		}
		sort.Ints(sortedYears)

		result = append(result, ProvinceSummary{
			Province:   name,
			Count:      len(subset),
			TotalArea:  round2(total),
			AvgArea:    round2(total / float64(len(subset))),
			ImageYears: sortedYears,
		})
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// median of a sorted slice
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
