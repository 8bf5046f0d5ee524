package bench

import (
	"fmt"
	"io"
	"strings"

	"laptops/internal/models"
)

// DemoCriteria is the specification search shown by Demo.
var DemoCriteria = models.Criteria{
	models.AttrRAM:      "8GB",
	models.AttrStorage:  "128GB SSD",
	models.AttrGraphics: "Intel Iris Plus Graphics 640",
}

// Demo prints the sample budget, range and specification queries to w.
func Demo(w io.Writer, inv Inventory) {
	for _, budget := range []int{1000, 100} {
		best, n := inv.BestWithinBudget(budget)
		if best == nil {
			fmt.Fprintf(w, "Budget %d: no laptops within budget.\n", budget)
			continue
		}
		fmt.Fprintf(w, "Budget %d: %d laptops within budget, best is %s\n", budget, n, Format(best))
	}

	in := inv.WithinBudgetRange(1000, 1010)
	fmt.Fprintf(w, "Price range [1000, 1010]: %d laptops\n", len(in))
	for _, l := range in {
		fmt.Fprintf(w, "  %s\n", Format(l))
	}

	matches := inv.FindBySpecifications(DemoCriteria)
	fmt.Fprintf(w, "Specification search: %d laptops\n", len(matches))
	for _, l := range matches {
		fmt.Fprintf(w, "  %s\n", Format(l))
	}
}

// Format renders a laptop as its raw columns with the coerced id and price.
func Format(l *models.Laptop) string {
	if l == nil {
		return "<none>"
	}
	cols := make([]string, len(l.Fields))
	copy(cols, l.Fields)
	if len(cols) > 0 {
		cols[0] = fmt.Sprint(l.ID)
		cols[len(cols)-1] = fmt.Sprint(l.Price)
	}
	return "[" + strings.Join(cols, ", ") + "]"
}
