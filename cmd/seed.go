package cmd

import (
	"bufio"
	"context"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultPort = 5432

// seedConfig carries the full flag/env surface of one seeding run.
// Validation tags bound the knobs before any connection is attempted.
type seedConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string

	Customers  int     `validate:"min=0"`
	Products   int     `validate:"min=0"`
	Orders     int     `validate:"min=0"`
	MaxItems   int     `validate:"min=1"`
	Chaos      float64 `validate:"min=0,max=100"`
	Scale      int     `validate:"min=1"`
	Seed       int64
	StartingAt string
	EndingAt   string
	SchemaFile string `validate:"required"`

	NonInteractive bool
}

var seedCfg seedConfig

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate demo ecommerce data and upsert it into the target schema",
	Long: `Generates customers, products, product variants, orders, and order items
with referential integrity and upserts them into PostgreSQL in dependency
order. Orders are sampled into the given time window; re-running the same
window replaces its orders and updates dimension rows in place.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedCfg.DSN, "dsn", "", "PostgreSQL DSN (or DATABASE_URL env)")
	seedCmd.Flags().StringVar(&seedCfg.Host, "host", "", "PostgreSQL host (or SEED_HOST env; ignored when --dsn is set)")
	seedCmd.Flags().IntVar(&seedCfg.Port, "port", 0, "PostgreSQL port (default 5432, or SEED_PORT env)")
	seedCmd.Flags().StringVar(&seedCfg.User, "user", "", "PostgreSQL username (or SEED_USER env)")
	seedCmd.Flags().StringVar(&seedCfg.DBName, "dbname", "", "Database name (or SEED_DBNAME env)")
	seedCmd.Flags().StringVar(&seedCfg.SSLMode, "sslmode", "disable", "sslmode for built connection strings")
	seedCmd.Flags().IntVar(&seedCfg.Customers, "customers", 100, "Number of customers to generate")
	seedCmd.Flags().IntVar(&seedCfg.Products, "products", 50, "Number of products to generate")
	seedCmd.Flags().IntVar(&seedCfg.Orders, "orders", 500, "Number of orders to generate in the window")
	seedCmd.Flags().IntVar(&seedCfg.MaxItems, "max-items-per-order", 5, "Maximum distinct items per order")
	seedCmd.Flags().Float64Var(&seedCfg.Chaos, "chaos-percent", 0.0, "Percent of variants given invalid sizes")
	seedCmd.Flags().IntVar(&seedCfg.Scale, "scale", 1, "Multiply base volumes")
	seedCmd.Flags().Int64Var(&seedCfg.Seed, "seed", 42, "Deterministic RNG seed")
	seedCmd.Flags().StringVar(&seedCfg.StartingAt, "starting-at", "", "ISO window start (e.g. 2024-01-01); default start of current UTC day")
	seedCmd.Flags().StringVar(&seedCfg.EndingAt, "ending-at", "", "ISO window end (e.g. 2024-06-30); default end of current UTC day")
	seedCmd.Flags().StringVar(&seedCfg.SchemaFile, "schema-file", "sql/schema.sql", "Path to the DDL document applied before seeding")
	seedCmd.Flags().BoolVar(&seedCfg.NonInteractive, "non-interactive", false, "Never prompt; fail if any required value is missing")
}

// resolveSeedEnv fills unset connection fields from the environment, loading
// a .env file first when present.
func resolveSeedEnv(cfg *seedConfig) {
	_ = godotenv.Load()

	if cfg.DSN == "" {
		cfg.DSN = os.Getenv("DATABASE_URL")
	}
	if cfg.Host == "" {
		cfg.Host = os.Getenv("SEED_HOST")
	}
	if cfg.Port == 0 {
		if p := os.Getenv("SEED_PORT"); p != "" {
			if port, err := strconv.Atoi(p); err == nil {
				cfg.Port = port
			}
		}
	}
	if cfg.User == "" {
		cfg.User = os.Getenv("SEED_USER")
	}
	if cfg.DBName == "" {
		cfg.DBName = os.Getenv("SEED_DBNAME")
	}
	if cfg.Password == "" {
		cfg.Password = os.Getenv("SEED_PGPASSWORD")
		if cfg.Password == "" {
			cfg.Password = os.Getenv("PGPASSWORD")
		}
	}
}

// resolveDSN returns the connection string for the run: --dsn/DATABASE_URL
// wins, otherwise one is built from the discrete flags, prompting for a
// missing password when interactive.
func resolveDSN(cfg *seedConfig) (string, error) {
	if cfg.DSN != "" {
		return cfg.DSN, nil
	}
	if cfg.Host == "" || cfg.User == "" || cfg.DBName == "" {
		return "", fmt.Errorf("missing connection config: set --dsn (or DATABASE_URL), or --host/--user/--dbname")
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Password == "" && !cfg.NonInteractive {
		cfg.Password = promptPassword(fmt.Sprintf("Password for %s@%s: ", cfg.User, cfg.Host))
	}
	return buildConnStr(cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode), nil
}

func buildConnStr(host string, port int, user, password, db, sslmode string) string {
	hostPort := host
	if port > 0 {
		hostPort = fmt.Sprintf("%s:%d", host, port)
	}
	u := &url.URL{
		Scheme:   "postgres",
		Host:     hostPort,
		Path:     "/" + db,
		RawQuery: "sslmode=" + url.QueryEscape(sslmode),
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		reader := bufio.NewReader(os.Stdin)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}
	return string(pass)
}

func runSeed(cmd *cobra.Command, args []string) error {
	resolveSeedEnv(&seedCfg)

	if err := validator.New().Struct(seedCfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	w, err := resolveWindow(seedCfg.StartingAt, seedCfg.EndingAt, time.Now())
	if err != nil {
		return err
	}

	dsn, err := resolveDSN(&seedCfg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	runID := uuid.NewString()[:8]
	faker := NewFaker(seedCfg.Seed)

	nCustomers := seedCfg.Customers * seedCfg.Scale
	nProducts := seedCfg.Products * seedCfg.Scale
	nOrders := seedCfg.Orders * seedCfg.Scale

	log("[%s] run %s: window %s | scale x%d | seed %d | chaos %.1f%%",
		ts(), runID, w, seedCfg.Scale, seedCfg.Seed, seedCfg.Chaos)

	store, err := openStore(ctx, dsn)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	if err := store.Bootstrap(ctx, seedCfg.SchemaFile); err != nil {
		return err
	}
	log("[%s] run %s: schema ready (%s)", ts(), runID, seedCfg.SchemaFile)

	// Customers and products have no FK dependencies and go first.
	affected, err := store.ApplyBatch(ctx, sqlUpsertCustomers, genCustomers(faker, nCustomers))
	if err != nil {
		return fmt.Errorf("upsert customers: %w", err)
	}
	log("[%s] run %s: upserted %d customers", ts(), runID, affected)

	affected, err = store.ApplyBatch(ctx, sqlUpsertProducts, genProducts(faker, nProducts))
	if err != nil {
		return fmt.Errorf("upsert products: %w", err)
	}
	log("[%s] run %s: upserted %d products", ts(), runID, affected)

	// Variants key off store-assigned product ids, read back after the
	// product batch committed.
	parents, err := store.ProductParents(ctx)
	if err != nil {
		return err
	}
	affected, err = store.ApplyBatch(ctx, sqlUpsertVariants, genVariants(faker, parents, seedCfg.Chaos))
	if err != nil {
		return fmt.Errorf("upsert variants: %w", err)
	}
	log("[%s] run %s: upserted %d variants for %d products", ts(), runID, affected, len(parents))

	// The window's orders are replaced wholesale; items cascade with them.
	cleared, err := store.ClearOrdersInWindow(ctx, w)
	if err != nil {
		return err
	}
	if cleared > 0 {
		log("[%s] run %s: cleared %d existing orders in window", ts(), runID, cleared)
	}

	customerIDs, err := store.CustomerIDs(ctx)
	if err != nil {
		return err
	}
	orderRows, err := genOrders(faker, customerIDs, nOrders, w)
	if err != nil {
		return err
	}
	affected, err = store.ApplyBatch(ctx, sqlInsertOrders, orderRows)
	if err != nil {
		return fmt.Errorf("insert orders: %w", err)
	}
	log("[%s] run %s: inserted %d orders", ts(), runID, affected)

	orderIDs, err := store.OrderIDsInWindow(ctx, w)
	if err != nil {
		return err
	}
	variantIDs, err := store.VariantIDs(ctx)
	if err != nil {
		return err
	}
	itemRows, err := genOrderItems(faker, orderIDs, variantIDs, seedCfg.MaxItems)
	if err != nil {
		return err
	}
	affected, err = store.ApplyBatch(ctx, sqlInsertOrderItems, itemRows)
	if err != nil {
		return fmt.Errorf("insert order items: %w", err)
	}
	log("[%s] run %s: inserted %d order items", ts(), runID, affected)

	if err := store.RecomputeOrderTotals(ctx, w); err != nil {
		return err
	}

	sum, err := store.Summary(ctx, w)
	if err != nil {
		return err
	}
	printSeedSummary(w, seedCfg.MaxItems, sum)
	return nil
}

func printSeedSummary(w window, maxItems int, sum seedSummary) {
	fmt.Println()
	fmt.Println("Seed complete (idempotent window load)")
	fmt.Printf("  Window:       %s\n", w)
	fmt.Printf("  Dimensions:   customers %d | products %d | variants %d\n",
		sum.Customers, sum.Products, sum.Variants)
	fmt.Printf("  Window facts: orders %d | items %d | max items/order %d\n",
		sum.Orders, sum.Items, maxItems)
	fmt.Println("  Invalid sizes per category:")
	for _, audit := range sum.BadSizes {
		fmt.Printf("    %-12s %d\n", audit.Category, audit.Invalid)
	}
}

func ts() string {
	return time.Now().Format(time.RFC3339)
}

func log(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}
