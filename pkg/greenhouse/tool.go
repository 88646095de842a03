package greenhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	// Packages
	athena "github.com/ayush27316/Athena"
	schema "github.com/ayush27316/Athena/pkg/schema"
	tool "github.com/ayush27316/Athena/pkg/tool"
	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Report is the result of a greenhouse tool call: a markdown rendering
// alongside structured tables for clients which prefer them.
type Report struct {
	Text   string          `json:"markdown"`
	Tables []*schema.Table `json:"tables,omitempty"`
}

type schemaTool struct{ dataset *Dataset }
type statsTool struct{ dataset *Dataset }
type searchTool struct{ dataset *Dataset }
type getTool struct{ dataset *Dataset }
type provincesTool struct{ dataset *Dataset }

// searchArgs is the input to the search_greenhouses tool
type searchArgs struct {
	Province  string   `json:"province,omitempty" jsonschema:"Filter by province name (e.g. Ontario, Quebec, British Columbia, Alberta). Case-insensitive partial match."`
	MinArea   *float64 `json:"min_area_sq_meters,omitempty" jsonschema:"Minimum greenhouse area in square meters."`
	MaxArea   *float64 `json:"max_area_sq_meters,omitempty" jsonschema:"Maximum greenhouse area in square meters."`
	ImageYear *int     `json:"image_year,omitempty" jsonschema:"Filter by the year the satellite image was taken (e.g. 2017, 2018, 2020, 2021)."`
	Limit     int      `json:"limit,omitempty" jsonschema:"Maximum number of records to return (default 20, max 500)."`
	Offset    int      `json:"offset,omitempty" jsonschema:"Number of records to skip for pagination."`
}

// getArgs is the input to the get_greenhouse tool
type getArgs struct {
	GreenhouseId int `json:"greenhouse_id" jsonschema:"The numeric ID of the greenhouse (0-based index)."`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// DefaultToolLimit is the search page size at the tool surface
	DefaultToolLimit = 20
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the greenhouse query tools over the given dataset
func NewTools(dataset *Dataset) []tool.Tool {
	return []tool.Tool{
		schemaTool{dataset},
		statsTool{dataset},
		searchTool{dataset},
		getTool{dataset},
		provincesTool{dataset},
	}
}

///////////////////////////////////////////////////////////////////////////////
// MARKDOWN

// Markdown returns the markdown rendering of the report
func (r Report) Markdown() string {
	return r.Text
}

///////////////////////////////////////////////////////////////////////////////
// SCHEMA TOOL

func (schemaTool) Name() string {
	return "get_database_schema"
}

func (schemaTool) Description() string {
	return "Get the schema of the greenhouse database, including column names, " +
		"data types, and sample values. Use this to understand what data is " +
		"available before querying."
}

func (schemaTool) Schema() (*jsonschema.Schema, error) {
	return &jsonschema.Schema{Type: "object"}, nil
}

func (t schemaTool) Run(context.Context, json.RawMessage) (any, error) {
	columns, err := t.dataset.Schema()
	if err != nil {
		return nil, err
	}

	table := schema.NewTable("Column", "Type", "Sample Values")
	for _, column := range columns {
		table.Append(column.Name, column.Type, strings.Join(column.Samples, ", "))
	}

	var sb strings.Builder
	sb.WriteString("# Greenhouse Database Schema\n\n")
	sb.WriteString(table.Markdown())
	return Report{
		Text:   sb.String(),
		Tables: []*schema.Table{table},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// STATISTICS TOOL

func (statsTool) Name() string {
	return "get_statistics"
}

func (statsTool) Description() string {
	return "Get aggregate statistics about all greenhouses in the database. " +
		"Returns total count, breakdown by province, breakdown by image year, " +
		"area statistics (mean, median, min, max, total in square meters), " +
		"and coordinate ranges."
}

func (statsTool) Schema() (*jsonschema.Schema, error) {
	return &jsonschema.Schema{Type: "object"}, nil
}

func (t statsTool) Run(context.Context, json.RawMessage) (any, error) {
	stats, err := t.dataset.Stats()
	if err != nil {
		return nil, err
	}

	provinces := schema.NewTable("Province", "Count")
	for _, name := range sortedKeys(stats.Provinces) {
		provinces.Append(name, stats.Provinces[name])
	}

	years := schema.NewTable("Year", "Count")
	for _, year := range sortedIntKeys(stats.ImageYears) {
		years.Append(year, stats.ImageYears[year])
	}

	area := schema.NewTable("Metric", "Value")
	area.Append("Mean", stats.Area.Mean)
	area.Append("Median", stats.Area.Median)
	area.Append("Min", stats.Area.Min)
	area.Append("Max", stats.Area.Max)
	area.Append("Total", stats.Area.Total)

	coverage := schema.NewTable("Coordinate", "Min", "Max")
	coverage.Append("Latitude", fmt.Sprintf("%g", stats.Latitude.Min), fmt.Sprintf("%g", stats.Latitude.Max))
	coverage.Append("Longitude", fmt.Sprintf("%g", stats.Longitude.Min), fmt.Sprintf("%g", stats.Longitude.Max))

	var sb strings.Builder
	sb.WriteString("# Greenhouse Database Statistics\n\n")
	sb.WriteString(fmt.Sprintf("**Total greenhouses:** %d\n\n", stats.Total))
	sb.WriteString("## Greenhouses by Province\n\n")
	sb.WriteString(provinces.Markdown() + "\n\n")
	sb.WriteString("## Greenhouses by Image Year\n\n")
	sb.WriteString(years.Markdown() + "\n\n")
	sb.WriteString("## Area Statistics (square meters)\n\n")
	sb.WriteString(area.Markdown() + "\n\n")
	sb.WriteString("## Geographic Coverage\n\n")
	sb.WriteString(coverage.Markdown())

	return Report{
		Text:   sb.String(),
		Tables: []*schema.Table{provinces, years, area, coverage},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// SEARCH TOOL

func (searchTool) Name() string {
	return "search_greenhouses"
}

func (searchTool) Description() string {
	return "Search and filter greenhouses in the database by province, area " +
		"or image year. Returns a table of greenhouse records with " +
		"pagination info."
}

func (searchTool) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[searchArgs](nil)
}

func (t searchTool) Run(_ context.Context, input json.RawMessage) (any, error) {
	var args searchArgs
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return nil, athena.ErrBadParameter.Withf("invalid input: %v", err)
		}
	}
	if args.Limit <= 0 {
		args.Limit = DefaultToolLimit
	}

	response, err := t.dataset.Search(SearchRequest{
		Province:  args.Province,
		MinArea:   args.MinArea,
		MaxArea:   args.MaxArea,
		ImageYear: args.ImageYear,
		Limit:     args.Limit,
		Offset:    args.Offset,
	})
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("# Search Results\n\n")
	sb.WriteString(fmt.Sprintf("**Showing %d–%d of %d greenhouses**\n\n",
		response.Offset+1, response.Offset+len(response.Records), response.Total))

	table := schema.NewTable("ID", "Province", "Data Source", "Image Year", "Latitude", "Longitude", "Area (m²)")
	for _, r := range response.Records {
		table.Append(r.ID, r.Province, r.DataSource, intCell(r.ImageYear), coordCell(r.Latitude), coordCell(r.Longitude), r.Area)
	}

	if len(response.Records) > 0 {
		sb.WriteString(table.Markdown())
	} else {
		sb.WriteString("*No greenhouses found matching the given filters.*")
	}

	if response.Total > response.Offset+response.Limit {
		sb.WriteString(fmt.Sprintf("\n\n*Use `offset=%d` to see the next page.*", response.Offset+response.Limit))
	}

	return Report{
		Text:   sb.String(),
		Tables: []*schema.Table{table},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// GET TOOL

func (getTool) Name() string {
	return "get_greenhouse"
}

func (getTool) Description() string {
	return "Get detailed information about a specific greenhouse by its ID, " +
		"including its GeoJSON polygon geometry."
}

func (getTool) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[getArgs](nil)
}

func (t getTool) Run(_ context.Context, input json.RawMessage) (any, error) {
	var args getArgs
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return nil, athena.ErrBadParameter.Withf("invalid input: %v", err)
		}
	}

	record, err := t.dataset.Get(args.GreenhouseId)
	if err != nil {
		return nil, err
	}
	if record == nil {
		// An unknown id is an in-band result, not a transport failure
		return Report{
			Text: fmt.Sprintf("**Error:** Greenhouse with ID %d not found.", args.GreenhouseId),
		}, nil
	}

	table := schema.NewTable("Field", "Value")
	table.Append("ID", record.ID)
	table.Append("Province", record.Province)
	table.Append("Data Source", record.DataSource)
	table.Append("Image Year", intCell(record.ImageYear))
	table.Append("Latitude", coordCell(record.Latitude))
	table.Append("Longitude", coordCell(record.Longitude))
	table.Append("PRUID", intCell(record.PRUID))
	table.Append("Area (m²)", record.Area)
	if record.Perimeter != nil {
		table.Append("Perimeter (m)", *record.Perimeter)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Greenhouse #%d\n\n", record.ID))
	sb.WriteString(table.Markdown())

	if len(record.Geometry) > 0 {
		geometry, err := json.MarshalIndent(record.GeoJSON(), "", "  ")
		if err != nil {
			return nil, err
		}
		sb.WriteString("\n\n## GeoJSON Geometry\n\n")
		sb.WriteString("```json\n" + string(geometry) + "\n```")
	}

	return Report{
		Text:   sb.String(),
		Tables: []*schema.Table{table},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PROVINCES TOOL

func (provincesTool) Name() string {
	return "get_provinces"
}

func (provincesTool) Description() string {
	return "Get a summary breakdown by province, including greenhouse count, " +
		"total area, average area, and which image years are available " +
		"for each province."
}

func (provincesTool) Schema() (*jsonschema.Schema, error) {
	return &jsonschema.Schema{Type: "object"}, nil
}

func (t provincesTool) Run(context.Context, json.RawMessage) (any, error) {
	summary, err := t.dataset.Provinces()
	if err != nil {
		return nil, err
	}

	table := schema.NewTable("Province", "Count", "Total Area (m²)", "Avg Area (m²)", "Image Years")
	for _, item := range summary {
		years := make([]string, 0, len(item.ImageYears))
		for _, year := range item.ImageYears {
			years = append(years, fmt.Sprint(year))
		}
		table.Append(item.Province, item.Count, item.TotalArea, item.AvgArea, strings.Join(years, ", "))
	}

	var sb strings.Builder
	sb.WriteString("# Greenhouse Summary by Province\n\n")
	sb.WriteString(table.Markdown())

	return Report{
		Text:   sb.String(),
		Tables: []*schema.Table{table},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func sortedIntKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Ints(keys)
	return keys
}

// intCell renders an optional integer attribute
func intCell(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// coordCell renders an optional coordinate to six decimal places
func coordCell(v *float64) any {
	if v == nil {
		return nil
	}
	return fmt.Sprintf("%g", round6(*v))
}
