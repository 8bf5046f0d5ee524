package engine

import (
	"sort"

	"laptops/internal/models"
)

// --- 1. ID LOOKUP ---

// GetByID scans the records in file order and returns the first laptop
// with the given id. O(n).
func (inv *Inventory) GetByID(id int) (*models.Laptop, bool) {
	for _, l := range inv.records {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// GetByIDFast answers the same question through the id index. O(1).
// When an id appears more than once the index holds the last occurrence.
func (inv *Inventory) GetByIDFast(id int) (*models.Laptop, bool) {
	l, ok := inv.idIndex[id]
	return l, ok
}

// --- 2. PROMOTIONS ---

// HasPromotionPrice reports whether amount is the price of a laptop or the
// sum of the prices of two laptops (the same laptop may count twice).
// Nested scan over all records: O(n^2) in the worst case.
func (inv *Inventory) HasPromotionPrice(amount int) bool {
	for _, a := range inv.records {
		if a.Price == amount {
			return true
		}
		for _, b := range inv.records {
			if a.Price+b.Price == amount {
				return true
			}
		}
	}
	return false
}

// HasPromotionPriceFast evaluates the HasPromotionPrice predicate over the
// distinct prices only, looking up each complement in the price set.
// O(d) for d distinct prices.
func (inv *Inventory) HasPromotionPriceFast(amount int) bool {
	if _, ok := inv.priceSet[amount]; ok {
		return true
	}
	for p := range inv.priceSet {
		if _, ok := inv.priceSet[amount-p]; ok {
			return true
		}
	}
	return false
}

// --- 3. BUDGET ---

// BestWithinBudget binary searches the price order for the most expensive
// laptop costing at most budget. Among equal prices the last one in price
// order is returned. affordable is the number of laptops priced at or
// below budget; best is nil when that number is zero. O(log n).
func (inv *Inventory) BestWithinBudget(budget int) (best *models.Laptop, affordable int) {
	affordable = inv.upperBound(budget)
	if affordable == 0 {
		return nil, 0
	}
	return inv.byPrice[affordable-1], affordable
}

// WithinBudgetRange returns every laptop with minPrice <= price <= maxPrice in
// ascending price order.
func (inv *Inventory) WithinBudgetRange(minPrice, maxPrice int) []*models.Laptop {
	if minPrice > maxPrice {
		return []*models.Laptop{}
	}
	lo := sort.Search(len(inv.byPrice), func(i int) bool { return inv.byPrice[i].Price >= minPrice })
	hi := inv.upperBound(maxPrice)

	out := make([]*models.Laptop, hi-lo)
	copy(out, inv.byPrice[lo:hi])
	return out
}

// upperBound is the index of the first laptop in price order costing more than price.
func (inv *Inventory) upperBound(price int) int {
	return sort.Search(len(inv.byPrice), func(i int) bool { return inv.byPrice[i].Price > price })
}

// --- 4. SPECIFICATIONS ---

// FindBySpecifications returns, in file order, the laptops matching every
// criterion exactly. Attributes outside the known set are ignored, so an
// empty (or all-unknown) criteria matches everything. O(n*k).
func (inv *Inventory) FindBySpecifications(c models.Criteria) []*models.Laptop {
	out := make([]*models.Laptop, 0)
	for _, l := range inv.records {
		if matches(l, c) {
			out = append(out, l)
		}
	}
	return out
}

func matches(l *models.Laptop, c models.Criteria) bool {
	for a, want := range c {
		got, known := l.Value(a)
		if known && got != want {
			return false
		}
	}
	return true
}
