// Package csvio reads catalog rows from header-driven CSV files.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/madlig/mygameon/internal/contract"
	"github.com/madlig/mygameon/schema"
)

// objectNamespace seeds deterministic object IDs for rows that lack one.
var objectNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://mygameon.app/games"))

// column aliases, matched case-insensitively
var columnAliases = map[string]string{
	"objectid":      "objectID",
	"id":            "objectID",
	"name":          "name",
	"title":         "name",
	"genre":         "genre",
	"genres":        "genre",
	"tags":          "tags",
	"size":          "size",
	"size_gb":       "size",
	"estimatedsize": "size",
}

// Row is one parsed catalog row.
type Row struct {
	Line     int
	ObjectID string
	Name     string
	Genre    []string
	Tags     []string
	SizeGB   float64
}

// Game converts the row into a catalog record with the given tags.
func (r Row) Game(tags []string) schema.Game {
	return schema.Game{
		ObjectID: r.ObjectID,
		Name:     r.Name,
		Genre:    r.Genre,
		Tags:     tags,
		SizeGB:   r.SizeGB,
	}
}

// Result is the outcome of reading a CSV source.
type Result struct {
	Rows    []Row
	Skipped int
}

// ObjectID returns the deterministic object ID for a game name.
func ObjectID(name string) string {
	return uuid.NewSHA1(objectNamespace, []byte(strings.ToLower(strings.TrimSpace(name)))).String()
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (*Result, error) {
	return readPath(path, Read)
}

// ReadIDsFile opens path and parses it with ReadIDs.
func ReadIDsFile(path string) (*Result, error) {
	return readPath(path, ReadIDs)
}

func readPath(path string, parse func(io.Reader) (*Result, error)) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return parse(f)
}

// Read parses catalog rows. Rows without a name are skipped and counted.
// Missing object IDs are derived from the name.
func Read(r io.Reader) (*Result, error) {
	return read(r, true)
}

// ReadIDs parses rows that only need to identify a game. The header must
// carry an object ID or a name column; a missing object ID is derived from
// the name, and rows with neither are skipped and counted.
func ReadIDs(r io.Reader) (*Result, error) {
	return read(r, false)
}

func read(r io.Reader, requireName bool) (*Result, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := mapColumns(header)
	_, hasName := columns["name"]
	_, hasID := columns["objectID"]
	switch {
	case requireName && !hasName:
		return nil, fmt.Errorf("CSV header must contain a name or title column (got %s)", strings.Join(header, ","))
	case !hasName && !hasID:
		return nil, fmt.Errorf("CSV header must contain an objectID, id, name or title column (got %s)", strings.Join(header, ","))
	}

	result := &Result{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		row := Row{
			Line:     line,
			ObjectID: cell(record, columns, "objectID"),
			Name:     cell(record, columns, "name"),
			Genre:    contract.SplitList(cell(record, columns, "genre")),
			Tags:     contract.SplitList(cell(record, columns, "tags")),
		}
		if row.Name == "" && (requireName || row.ObjectID == "") {
			result.Skipped++
			continue
		}
		if row.ObjectID == "" {
			row.ObjectID = ObjectID(row.Name)
		}
		if size := cell(record, columns, "size"); size != "" {
			if v, err := strconv.ParseFloat(size, 64); err == nil && v >= 0 {
				row.SizeGB = v
			}
		}
		result.Rows = append(result.Rows, row)
	}

	if result.Skipped > 0 {
		contract.LogWarn("CSV rows skipped", fmt.Errorf("%d rows without a usable name or object ID", result.Skipped))
	}
	return result, nil
}

// mapColumns maps canonical column names to their index in header.
// The first occurrence of an alias wins.
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		canonical, ok := columnAliases[key]
		if !ok {
			continue
		}
		if _, seen := columns[canonical]; !seen {
			columns[canonical] = i
		}
	}
	return columns
}

func cell(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
