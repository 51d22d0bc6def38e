package cmd

import (
	"fmt"
	"time"
)

// ── Domain constants ──

var productCategories = []string{"t-shirts", "hoodies", "shoes", "accessories", "jackets"}

var variantColors = []string{"Red", "Blue", "Black", "White", "Green"}

// Size domains per category. Shoes use numeric-string sizes, everything else
// uses the apparel label set; chaos injection deliberately crosses the two.
var (
	apparelSizes = []string{"S", "M", "L", "XL"}
	shoeSizes    = []string{"36", "38", "40", "42", "44"}
)

var (
	orderStatuses      = []string{"pending", "paid", "cancelled", "shipped"}
	orderStatusWeights = []float64{0.2, 0.5, 0.1, 0.2}
)

// productParent is a persisted product read back from the store. Variant
// generation keys off store-assigned ids, never client-predicted ones.
type productParent struct {
	ID       int
	Category string
}

// ── Row generation per table ──
//
// Each generator returns rows in the argument order of the matching insert
// statement in store.go. Generators only draw from the shared Faker; all ids
// they reference come from read-backs of previously persisted batches.

func genCustomers(f *Faker, n int) [][]any {
	rows := make([][]any, 0, n)
	for i := 0; i < n; i++ {
		now := time.Now().UTC()
		rows = append(rows, []any{
			f.Name(),
			f.UniqueEmail(),
			f.Country(),
			f.City(),
			f.IntRange(18, 70),
			now,
			now,
		})
	}
	return rows
}

func genProducts(f *Faker, n int) [][]any {
	rows := make([][]any, 0, n)
	for i := 0; i < n; i++ {
		cat := f.Choice(productCategories)
		now := time.Now().UTC()
		rows = append(rows, []any{
			fmt.Sprintf("%s %s", f.CapitalizedWord(), cat),
			cat,
			f.UniqueSKU("SKU"),
			now,
			now,
		})
	}
	return rows
}

// genVariants emits 1-4 variants per persisted product. With chaosPercent > 0
// each variant independently has that chance of getting a size from the wrong
// category domain. The trial is skipped entirely at chaosPercent <= 0 so a
// chaos-free run consumes the exact same draw sequence either way.
func genVariants(f *Faker, parents []productParent, chaosPercent float64) [][]any {
	var rows [][]any
	for _, p := range parents {
		count := f.IntRange(1, 4)
		for i := 0; i < count; i++ {
			sku := f.UniqueSKU("VAR")
			color := f.Choice(variantColors)

			var size string
			if p.Category == "shoes" {
				size = f.Choice(shoeSizes)
			} else {
				size = f.Choice(apparelSizes)
			}
			if chaosPercent > 0 && f.Chance(chaosPercent/100) {
				if p.Category == "shoes" {
					size = f.Choice(apparelSizes)
				} else {
					size = f.Choice(shoeSizes)
				}
			}

			manufacturing := f.Price(10, 80)
			selling := float64(int(manufacturing*f.Float(1.2, 2.0)*100)) / 100
			now := time.Now().UTC()
			rows = append(rows, []any{
				p.ID,
				sku,
				color,
				size,
				manufacturing,
				selling,
				f.IntRange(0, 200),
				true,
				now,
				now,
			})
		}
	}
	return rows
}

func genOrders(f *Faker, customerIDs []int, n int, w window) ([][]any, error) {
	if n > 0 && len(customerIDs) == 0 {
		return nil, fmt.Errorf("%w: cannot generate %d orders", ErrEmptyCustomerPool, n)
	}
	rows := make([][]any, 0, n)
	for i := 0; i < n; i++ {
		now := time.Now().UTC()
		rows = append(rows, []any{
			customerIDs[f.IntRange(0, len(customerIDs)-1)],
			f.Time(w.Start, w.End),
			f.WeightedChoice(orderStatuses, orderStatusWeights),
			0.0, // real totals are aggregated from items after insertion
			now,
			now,
		})
	}
	return rows, nil
}

// genOrderItems gives every order 1..maxItems distinct variants. The per-order
// item count is capped at the variant pool size, so small catalogs shrink
// orders instead of failing the run.
func genOrderItems(f *Faker, orderIDs, variantIDs []int, maxItems int) ([][]any, error) {
	if len(orderIDs) > 0 && len(variantIDs) == 0 {
		return nil, fmt.Errorf("%w: cannot generate items for %d orders", ErrEmptyVariantPool, len(orderIDs))
	}
	if maxItems < 1 {
		maxItems = 1
	}

	var rows [][]any
	for _, orderID := range orderIDs {
		limit := maxItems
		if limit > len(variantIDs) {
			limit = len(variantIDs)
		}
		for _, variantID := range f.SampleIDs(variantIDs, f.IntRange(1, limit)) {
			rows = append(rows, []any{
				orderID,
				variantID,
				f.IntRange(1, 3),
				f.Price(20, 200),
				time.Now().UTC(),
			})
		}
	}
	return rows, nil
}
