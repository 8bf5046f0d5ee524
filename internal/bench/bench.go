// Package bench times the linear and indexed inventory queries against
// each other over random inputs and prints the demonstration queries.
package bench

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"laptops/internal/config"
	"laptops/internal/logger"
	"laptops/internal/metrics"
	"laptops/internal/models"
)

// Inventory is the query surface the driver exercises.
type Inventory interface {
	GetByID(id int) (*models.Laptop, bool)
	GetByIDFast(id int) (*models.Laptop, bool)
	HasPromotionPrice(amount int) bool
	HasPromotionPriceFast(amount int) bool
	BestWithinBudget(budget int) (*models.Laptop, int)
	WithinBudgetRange(minPrice, maxPrice int) []*models.Laptop
	FindBySpecifications(c models.Criteria) []*models.Laptop
}

// Report compares the two variants of one query.
type Report struct {
	Name       string
	Calls      int
	Linear     time.Duration
	Indexed    time.Duration
	Mismatches int
}

// Speedup is Linear/Indexed, 0 when the indexed total is zero.
func (r Report) Speedup() float64 {
	if r.Indexed <= 0 {
		return 0
	}
	return float64(r.Linear) / float64(r.Indexed)
}

func (r Report) String() string {
	return fmt.Sprintf("%-16s calls=%-6d linear=%-12v indexed=%-12v speedup=%.1fx mismatches=%d",
		r.Name, r.Calls, r.Linear, r.Indexed, r.Speedup(), r.Mismatches)
}

// Runner draws the random inputs and times each call individually.
type Runner struct {
	cfg     config.BenchConfig
	rng     *rand.Rand
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewRunner builds a Runner. A zero seed draws one from the clock; m may be nil.
func NewRunner(cfg config.BenchConfig, m *metrics.Metrics) *Runner {
	seed := uint64(cfg.Seed)
	if cfg.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Runner{
		cfg:     cfg,
		rng:     rand.New(rand.NewPCG(seed, seed)),
		metrics: m,
		logger:  logger.WithComponent(logger.ComponentBench),
	}
}

// Run executes both comparisons: id lookups first, then promotions.
func (r *Runner) Run(inv Inventory) []Report {
	return []Report{r.IDLookups(inv), r.Promotions(inv)}
}

// IDLookups compares GetByID with GetByIDFast over cfg.IDs random ids in
// [cfg.MinID, cfg.MaxID].
func (r *Runner) IDLookups(inv Inventory) Report {
	ids := r.draw(r.cfg.IDs, r.cfg.MinID, r.cfg.MaxID)
	rep := Report{Name: "id lookup", Calls: len(ids)}

	slow := make([]*models.Laptop, len(ids))
	for i, id := range ids {
		start := time.Now()
		slow[i], _ = inv.GetByID(id)
		rep.Linear += r.observe(metrics.OpGetByID, start)
	}

	for i, id := range ids {
		start := time.Now()
		fast, _ := inv.GetByIDFast(id)
		rep.Indexed += r.observe(metrics.OpGetByIDFast, start)

		if !sameLaptop(slow[i], fast) {
			rep.Mismatches++
		}
	}

	r.log(rep)
	return rep
}

// Promotions compares HasPromotionPrice with HasPromotionPriceFast over
// cfg.Amounts random amounts in [cfg.MinAmount, cfg.MaxAmount].
func (r *Runner) Promotions(inv Inventory) Report {
	amounts := r.draw(r.cfg.Amounts, r.cfg.MinAmount, r.cfg.MaxAmount)
	rep := Report{Name: "promotion check", Calls: len(amounts)}

	slow := make([]bool, len(amounts))
	for i, a := range amounts {
		start := time.Now()
		slow[i] = inv.HasPromotionPrice(a)
		rep.Linear += r.observe(metrics.OpHasPromotion, start)
	}

	for i, a := range amounts {
		start := time.Now()
		fast := inv.HasPromotionPriceFast(a)
		rep.Indexed += r.observe(metrics.OpHasPromotionFast, start)

		if fast != slow[i] {
			rep.Mismatches++
		}
	}

	r.log(rep)
	return rep
}

// draw returns n integers uniform in [lo, hi]. The span is computed in
// uint64 so that any lo <= hi works, including the whole int range.
func (r *Runner) draw(n, lo, hi int) []int {
	span := uint64(hi) - uint64(lo)
	out := make([]int, n)
	for i := range out {
		var off uint64
		if span == math.MaxUint64 {
			off = r.rng.Uint64()
		} else {
			off = r.rng.Uint64N(span + 1)
		}
		out[i] = lo + int(off)
	}
	return out
}

func (r *Runner) observe(op string, start time.Time) time.Duration {
	d := time.Since(start)
	if r.metrics != nil {
		r.metrics.ObserveQuery(op, d)
	}
	return d
}

func (r *Runner) log(rep Report) {
	r.logger.Info("benchmark complete",
		"query", rep.Name,
		"calls", rep.Calls,
		"linear", rep.Linear,
		"indexed", rep.Indexed,
		"mismatches", rep.Mismatches)
	if rep.Mismatches > 0 {
		r.logger.Warn("linear and indexed variants disagree", "query", rep.Name, "mismatches", rep.Mismatches)
	}
}

// Duplicate ids make the two lookups return different rows with the same id.
func sameLaptop(a, b *models.Laptop) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
