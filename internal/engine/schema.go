package engine

import (
	"strings"

	"laptops/internal/models"
)

const (
	idColumn    = "id"
	priceColumn = "price"
)

// Conventional positions of the categorical columns in the laptop table,
// used when the header does not name them.
var defaultPositions = map[models.Attribute]int{
	models.AttrCPU:      6,
	models.AttrRAM:      7,
	models.AttrStorage:  8,
	models.AttrGraphics: 9,
}

var aliases = map[string]models.Attribute{
	"cpu":      models.AttrCPU,
	"ram":      models.AttrRAM,
	"storage":  models.AttrStorage,
	"graphics": models.AttrGraphics,
	"gpu":      models.AttrGraphics,
}

// Schema describes the loaded table: column names with id and price
// renamed, and where each attribute lives.
type Schema struct {
	Columns []string
	attrs   map[models.Attribute]int
}

func newSchema(header []string) *Schema {
	cols := make([]string, len(header))
	copy(cols, header)
	last := len(cols) - 1
	cols[0] = idColumn
	cols[last] = priceColumn

	s := &Schema{Columns: cols, attrs: make(map[models.Attribute]int, len(defaultPositions))}

	// Named columns first, the first match wins
	for i := 1; i < last; i++ {
		a, ok := aliases[strings.ToLower(strings.TrimSpace(cols[i]))]
		if !ok {
			continue
		}
		if _, seen := s.attrs[a]; !seen {
			s.attrs[a] = i
		}
	}
	for a, pos := range defaultPositions {
		if _, ok := s.attrs[a]; ok {
			continue
		}
		if pos > 0 && pos < last {
			s.attrs[a] = pos
		}
	}
	return s
}

// Index reports the column holding a, or -1 when the table has none.
func (s *Schema) Index(a models.Attribute) int {
	if i, ok := s.attrs[a]; ok {
		return i
	}
	return -1
}

func (s *Schema) field(row []string, a models.Attribute) string {
	if i := s.Index(a); i >= 0 {
		return row[i]
	}
	return ""
}
