package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
)

// ── Upsert statements ──
//
// Conflict targets are the natural keys the downstream pipeline relies on:
// re-running a seed updates existing rows instead of duplicating them.
// Order items conflict on (order_id, variant_id) so overlapping runs skip
// rows they already wrote; ids alone could never collide since the store
// assigns them at insert time.

const sqlUpsertCustomers = `
INSERT INTO customers (full_name, email, country, city, age, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (email) DO UPDATE
SET full_name  = EXCLUDED.full_name,
    country    = EXCLUDED.country,
    age        = EXCLUDED.age,
    updated_at = EXCLUDED.updated_at`

const sqlUpsertProducts = `
INSERT INTO products (name, category, sku, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (sku) DO UPDATE
SET name       = EXCLUDED.name,
    category   = EXCLUDED.category,
    updated_at = EXCLUDED.updated_at`

const sqlUpsertVariants = `
INSERT INTO product_variants
  (product_id, variant_sku, color, size, manufacturing_price, selling_price,
   stock_quantity, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (variant_sku) DO UPDATE
SET color               = EXCLUDED.color,
    size                = EXCLUDED.size,
    manufacturing_price = EXCLUDED.manufacturing_price,
    selling_price       = EXCLUDED.selling_price,
    stock_quantity      = EXCLUDED.stock_quantity,
    updated_at          = EXCLUDED.updated_at`

const sqlInsertOrders = `
INSERT INTO orders (customer_id, order_date, status, total_amount, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`

const sqlInsertOrderItems = `
INSERT INTO order_items (order_id, variant_id, quantity, unit_price, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (order_id, variant_id) DO NOTHING`

const sqlDeleteOrdersInWindow = `DELETE FROM orders WHERE order_date BETWEEN $1 AND $2`

const sqlUpdateOrderTotals = `
UPDATE orders o
SET total_amount = COALESCE(oi.sum_total, 0)
FROM (
  SELECT order_id, SUM(total_price) AS sum_total
  FROM order_items
  GROUP BY order_id
) oi
WHERE o.id = oi.order_id
  AND o.order_date BETWEEN $1 AND $2`

const sqlChaosAudit = `
SELECT p.category,
       SUM(CASE
             WHEN (p.category = 'shoes' AND v.size !~ '^[0-9]+$')
               OR (p.category <> 'shoes' AND v.size NOT IN ('S', 'M', 'L', 'XL'))
               THEN 1
             ELSE 0
           END) AS invalid
FROM product_variants v
JOIN products p ON p.id = v.product_id
GROUP BY 1
ORDER BY 1`

// ── Store ──

// seedStore wraps the single connection a run holds from first batch to
// final summary. Later batches depend on ids the store assigned to earlier
// ones, so there is nothing to parallelize.
type seedStore struct {
	conn *pgx.Conn
}

func openStore(ctx context.Context, dsn string) (*seedStore, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return &seedStore{conn: conn}, nil
}

func (s *seedStore) Close(ctx context.Context) {
	_ = s.conn.Close(ctx)
}

// Bootstrap applies the DDL document so the five target tables exist before
// generation starts. The document is the schema contract with the pipeline;
// an unreadable path fails the run before any write.
func (s *seedStore) Bootstrap(ctx context.Context, schemaFile string) error {
	ddl, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSchemaMissing, schemaFile)
	}
	if _, err := s.conn.Exec(ctx, string(ddl)); err != nil {
		return fmt.Errorf("apply schema %s: %w", schemaFile, err)
	}
	return nil
}

// ApplyBatch writes one entity batch inside a single transaction: every row
// commits together or the run aborts. Earlier committed batches stay
// committed; re-runs rely on the upsert keys instead of rollback.
func (s *seedStore) ApplyBatch(ctx context.Context, sql string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(sql, row...)
	}

	var affected int64
	results := tx.SendBatch(ctx, batch)
	for range rows {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("apply batch row: %w", err)
		}
		affected += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit batch: %w", err)
	}
	return affected, nil
}

// ── Identity read-backs ──

func (s *seedStore) ProductParents(ctx context.Context) ([]productParent, error) {
	rows, err := s.conn.Query(ctx, `SELECT id, category FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("read back products: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[productParent])
}

func (s *seedStore) CustomerIDs(ctx context.Context) ([]int, error) {
	rows, err := s.conn.Query(ctx, `SELECT id FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("read back customers: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (s *seedStore) VariantIDs(ctx context.Context) ([]int, error) {
	rows, err := s.conn.Query(ctx, `SELECT id FROM product_variants ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("read back variants: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

func (s *seedStore) OrderIDsInWindow(ctx context.Context, w window) ([]int, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT id FROM orders WHERE order_date BETWEEN $1 AND $2 ORDER BY id`, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("read back orders: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

// ── Window maintenance ──

// ClearOrdersInWindow deletes the window's orders (items cascade) so a re-run
// regenerates the window's facts instead of stacking a second copy on top.
func (s *seedStore) ClearOrdersInWindow(ctx context.Context, w window) (int64, error) {
	tag, err := s.conn.Exec(ctx, sqlDeleteOrdersInWindow, w.Start, w.End)
	if err != nil {
		return 0, fmt.Errorf("clear window orders: %w", err)
	}
	return tag.RowsAffected(), nil
}

// RecomputeOrderTotals rolls item totals up into the window's orders.
func (s *seedStore) RecomputeOrderTotals(ctx context.Context, w window) error {
	if _, err := s.conn.Exec(ctx, sqlUpdateOrderTotals, w.Start, w.End); err != nil {
		return fmt.Errorf("recompute order totals: %w", err)
	}
	return nil
}

// ── Summary ──

type categoryAudit struct {
	Category string
	Invalid  int64
}

type seedSummary struct {
	Customers int64
	Products  int64
	Variants  int64
	Orders    int64
	Items     int64
	BadSizes  []categoryAudit
}

// Summary gathers the table counts, window-scoped fact counts, and the
// invalid-size audit used to verify chaos injection.
func (s *seedStore) Summary(ctx context.Context, w window) (seedSummary, error) {
	var sum seedSummary

	counts := []struct {
		dest *int64
		sql  string
		args []any
	}{
		{&sum.Customers, `SELECT COUNT(*) FROM customers`, nil},
		{&sum.Products, `SELECT COUNT(*) FROM products`, nil},
		{&sum.Variants, `SELECT COUNT(*) FROM product_variants`, nil},
		{&sum.Orders, `SELECT COUNT(*) FROM orders WHERE order_date BETWEEN $1 AND $2`, []any{w.Start, w.End}},
		{&sum.Items, `SELECT COUNT(*)
			FROM order_items oi
			JOIN orders o ON o.id = oi.order_id
			WHERE o.order_date BETWEEN $1 AND $2`, []any{w.Start, w.End}},
	}
	for _, c := range counts {
		if err := s.conn.QueryRow(ctx, c.sql, c.args...).Scan(c.dest); err != nil {
			return seedSummary{}, fmt.Errorf("summary count: %w", err)
		}
	}

	rows, err := s.conn.Query(ctx, sqlChaosAudit)
	if err != nil {
		return seedSummary{}, fmt.Errorf("chaos audit: %w", err)
	}
	sum.BadSizes, err = pgx.CollectRows(rows, pgx.RowToStructByPos[categoryAudit])
	if err != nil {
		return seedSummary{}, fmt.Errorf("chaos audit: %w", err)
	}
	return sum, nil
}
