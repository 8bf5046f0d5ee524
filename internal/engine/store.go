package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"laptops/internal/models"
)

// Inventory holds the loaded laptops plus the indexes built over them.
// It is never modified after New returns, so concurrent readers are safe.
type Inventory struct {
	schema *Schema

	// Rows in file order
	records []*models.Laptop

	// Derived views, sharing the pointers in records
	idIndex  map[int]*models.Laptop
	priceSet map[int]struct{}
	byPrice  []*models.Laptop
}

// New builds an Inventory from a header and its data rows. Every row must
// have the header's arity, an integer id in the first column and a numeric
// price in the last one. The first bad row fails the whole build.
func New(header []string, rows [][]string) (*Inventory, error) {
	if len(header) < 2 {
		return nil, ErrShortHeader
	}
	schema := newSchema(header)
	last := len(header) - 1

	// 1. Coerce rows
	records := make([]*models.Laptop, 0, len(rows))
	for i, row := range rows {
		rowNum := i + 1
		if len(row) != len(header) {
			return nil, &MalformedRecordError{
				Row: rowNum,
				Err: fmt.Errorf("got %d fields, header has %d", len(row), len(header)),
			}
		}

		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, &MalformedRecordError{Row: rowNum, Column: idColumn, Value: row[0], Err: err}
		}
		price, err := ParsePrice(row[last])
		if err != nil {
			return nil, &MalformedRecordError{Row: rowNum, Column: priceColumn, Value: row[last], Err: err}
		}

		fields := make([]string, len(row))
		copy(fields, row)
		records = append(records, &models.Laptop{
			ID:       id,
			CPU:      schema.field(row, models.AttrCPU),
			RAM:      schema.field(row, models.AttrRAM),
			Storage:  schema.field(row, models.AttrStorage),
			Graphics: schema.field(row, models.AttrGraphics),
			Price:    price,
			Fields:   fields,
		})
	}

	// 2. Indexes
	inv := &Inventory{
		schema:   schema,
		records:  records,
		idIndex:  make(map[int]*models.Laptop, len(records)),
		priceSet: make(map[int]struct{}),
		byPrice:  make([]*models.Laptop, len(records)),
	}
	for _, l := range records {
		inv.idIndex[l.ID] = l
		inv.priceSet[l.Price] = struct{}{}
	}

	// 3. Price order, ties keep file order
	copy(inv.byPrice, records)
	sort.SliceStable(inv.byPrice, func(i, j int) bool { return inv.byPrice[i].Price < inv.byPrice[j].Price })

	return inv, nil
}

// ParsePrice coerces a textual price to an integer by parsing it as a float
// and dropping the fraction ("999.99" -> 999).
func ParsePrice(s string) (int, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("price is not a finite number")
	}
	if f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, strconv.ErrRange
	}
	return int(f), nil
}

// Header returns the column names with the first and last renamed to id and price.
func (inv *Inventory) Header() []string {
	out := make([]string, len(inv.schema.Columns))
	copy(out, inv.schema.Columns)
	return out
}

// Schema exposes where each searchable attribute was found.
func (inv *Inventory) Schema() *Schema { return inv.schema }

func (inv *Inventory) Len() int { return len(inv.records) }

// Records returns the laptops in file order.
func (inv *Inventory) Records() []*models.Laptop {
	out := make([]*models.Laptop, len(inv.records))
	copy(out, inv.records)
	return out
}

// DistinctPrices reports how many different prices the inventory holds.
func (inv *Inventory) DistinctPrices() int { return len(inv.priceSet) }
