package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/jhoicas/ledger-api/internal/bootstrap"
	"github.com/jhoicas/ledger-api/internal/domain/entity"
	"github.com/jhoicas/ledger-api/pkg/config"
	"github.com/jhoicas/ledger-api/pkg/logger"
)

var commands = []subcommands.Command{
	&inventoryCmd{},
	&verifyCmd{},
	&migrateCmd{},
}

// open carga configuración y casos de uso; el llamador debe cerrar los almacenes.
func open(ctx context.Context) (*bootstrap.Stores, *bootstrap.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	stores, err := bootstrap.OpenStores(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return stores, bootstrap.NewServices(stores, cfg, nil, log), nil
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, err)
	return subcommands.ExitFailure
}

type inventoryCmd struct{}

func (*inventoryCmd) Name() string     { return "inventory" }
func (*inventoryCmd) Synopsis() string { return "print the guest inventory" }
func (*inventoryCmd) Usage() string {
	return `ledgerctl inventory

  Lists the guest items sorted by name with their current quantity.
`
}
func (*inventoryCmd) SetFlags(*flag.FlagSet) {}

func (*inventoryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	stores, services, err := open(ctx)
	if err != nil {
		return fail(err)
	}
	defer stores.Close()

	items, err := services.Inventory.GetInventory(ctx, entity.GuestSession())
	if err != nil {
		return fail(err)
	}
	printItems(os.Stdout, items)
	return subcommands.ExitSuccess
}

func printItems(out io.Writer, items []*entity.InventoryItem) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tQUANTITY\tUNIT\tLOW")
	for _, it := range items {
		low := ""
		if it.IsLowStock(it.Quantity) {
			low = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", it.ID, it.Name, it.Quantity.String(), it.Unit, low)
	}
	w.Flush()
}

type verifyCmd struct{}

func (*verifyCmd) Name() string     { return "verify" }
func (*verifyCmd) Synopsis() string { return "check guest quantities against the movement log" }
func (*verifyCmd) Usage() string {
	return `ledgerctl verify

  Recomputes every guest item quantity from its baseline plus its movements
  and reports the items whose stored quantity differs. Exits non-zero when
  any difference is found.
`
}
func (*verifyCmd) SetFlags(*flag.FlagSet) {}

func (*verifyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	stores, services, err := open(ctx)
	if err != nil {
		return fail(err)
	}
	defer stores.Close()

	report, err := services.Inventory.VerifyConsistency(ctx, entity.GuestSession())
	if err != nil {
		return fail(err)
	}
	fmt.Printf("checked %d items, %d inconsistent\n", report.Checked, len(report.Issues))
	for _, issue := range report.Issues {
		fmt.Printf("  %s (%s): stored %s, recomputed %s\n", issue.Name, issue.ItemID, issue.Stored, issue.Recomputed)
	}
	if len(report.Issues) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type migrateCmd struct {
	scope string
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "upload guest data to a business in the remote store" }
func (*migrateCmd) Usage() string {
	return `ledgerctl migrate -scope <business_id>

  Upserts guest items and transactions into the configured database under
  the given business, then clears the guest data. Safe to re-run after a
  failure.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.scope, "scope", "", "target business identifier")
}

func (c *migrateCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.scope == "" {
		fmt.Fprintln(os.Stderr, "missing -scope")
		return subcommands.ExitUsageError
	}
	stores, services, err := open(ctx)
	if err != nil {
		return fail(err)
	}
	defer stores.Close()

	report, err := services.Migration.MigrateGuestData(ctx, c.scope)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("migrated %d items and %d transactions in %d batches\n", report.Items, report.Transactions, report.Batches)
	return subcommands.ExitSuccess
}
