package models

import "strings"

// Laptop is one row of the inventory file
type Laptop struct {
	ID       int    `json:"id"`
	CPU      string `json:"cpu"`
	RAM      string `json:"ram"`
	Storage  string `json:"storage"`
	Graphics string `json:"graphics"`
	Price    int    `json:"price"`

	// Raw columns in file order (id and price as read)
	Fields []string `json:"fields"`
}

// Attribute names a categorical column usable in a specification search.
type Attribute string

const (
	AttrCPU      Attribute = "cpu"
	AttrRAM      Attribute = "ram"
	AttrStorage  Attribute = "storage"
	AttrGraphics Attribute = "graphics"
)

// Attributes lists every searchable attribute.
var Attributes = []Attribute{AttrCPU, AttrRAM, AttrStorage, AttrGraphics}

// Valid reports whether a is one of Attributes.
func (a Attribute) Valid() bool {
	switch a {
	case AttrCPU, AttrRAM, AttrStorage, AttrGraphics:
		return true
	}
	return false
}

// Value returns the laptop's value for a. ok is false for attributes outside
// the known set.
func (l *Laptop) Value(a Attribute) (v string, ok bool) {
	switch a {
	case AttrCPU:
		return l.CPU, true
	case AttrRAM:
		return l.RAM, true
	case AttrStorage:
		return l.Storage, true
	case AttrGraphics:
		return l.Graphics, true
	}
	return "", false
}

// Criteria maps attributes to the exact value required.
type Criteria map[Attribute]string

// ParseCriteria keeps the recognised keys of raw (case-insensitive) and
// drops the rest.
func ParseCriteria(raw map[string]string) Criteria {
	c := make(Criteria, len(raw))
	for k, v := range raw {
		a := Attribute(strings.ToLower(strings.TrimSpace(k)))
		if a.Valid() {
			c[a] = v
		}
	}
	return c
}

// --- API payloads ---

type LookupResult struct {
	Mode   string  `json:"mode"`
	Laptop *Laptop `json:"laptop"`
}

type PromotionResult struct {
	Amount   int    `json:"amount"`
	Mode     string `json:"mode"`
	Eligible bool   `json:"eligible"`
}

type BudgetResult struct {
	Budget     int     `json:"budget"`
	Affordable int     `json:"affordable"`
	Laptop     *Laptop `json:"laptop"`
}

type RangeResult struct {
	Min   int       `json:"min"`
	Max   int       `json:"max"`
	Count int       `json:"count"`
	Data  []*Laptop `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
