// shop-demo walks through the whole order flow against an in-memory
// ledger: restocking, validation failures, a processed order, a forced
// rollback, and the daily report.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/petalworks/flowershop/internal/inventory"
	"github.com/petalworks/flowershop/internal/order"
	"github.com/petalworks/flowershop/internal/pkg/telemetry"
	"github.com/petalworks/flowershop/internal/report"
)

func main() {
	app := &cli.App{
		Name:  "shop-demo",
		Usage: "walk through the flower shop order flow",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "customer",
				Value: "John Smith",
				Usage: "customer name for the demo order",
			},
			&cli.BoolFlag{
				Name:  "force-failure",
				Usage: "drain stock mid-order to demonstrate the rollback",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		slog.Error("demo aborted", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ctx := context.Background()
	telemetry.InitLogger("shop-demo")

	ledger := inventory.NewLedger(inventory.WithObserver(&inventory.LogObserver{}))

	fmt.Println("Flower Shop Inventory Management")
	fmt.Println("================================")

	fmt.Println("\n1. Restocking...")
	for _, row := range []struct {
		name, price, quantity string
		freshnessDays         int
	}{
		{"Rose", "4.99", "50", 5},
		{"Tulip", "3.49", "30", 7},
		{"Lily", "5.99", "20", 4},
	} {
		f, err := inventory.ParseFlower(row.name, row.price, row.quantity,
			inventory.WithFreshnessDays(row.freshnessDays))
		if err != nil {
			return err
		}
		if err := ledger.Add(ctx, f); err != nil {
			return err
		}
		fmt.Printf("   %s\n", f)
	}

	fmt.Println("\n2. Rejecting malformed flower data...")
	if _, err := inventory.ParseFlower("Rose@", "-5.99", "ten"); err != nil {
		fmt.Printf("   caught: %v\n", err)
	}

	fmt.Println("\n3. Rejecting an oversized removal...")
	if err := ledger.Remove(ctx, "Rose", 100); err != nil {
		fmt.Printf("   caught: %v\n", err)
	}

	fmt.Println("\n4. Processing an order...")
	o, err := order.New(c.String("customer"), ledger)
	if err != nil {
		return err
	}
	if _, err := o.AddItem("Rose", 5); err != nil {
		return err
	}
	if _, err := o.AddItem("Tulip", 3); err != nil {
		return err
	}
	fmt.Printf("   %s\n", o)

	if c.Bool("force-failure") {
		// Drain Tulip behind the order's back so processing fails on the
		// second line and rolls the first back.
		if err := ledger.Remove(ctx, "Tulip", 28); err != nil {
			return err
		}
	}

	summary, err := o.Process(ctx)
	if err != nil {
		fmt.Printf("   processing failed: %v\n", err)
		roseStock, serr := ledger.CheckStock("Rose")
		if serr != nil {
			return serr
		}
		fmt.Printf("   Rose stock after rollback: %d\n", roseStock)
	} else {
		fmt.Printf("   done: %s owes $%s (%s)\n",
			summary.Customer, summary.Total.StringFixed(2), summary.Status)
	}

	fmt.Println("\n5. Daily report...")
	daily, err := report.Generate(ledger)
	if err != nil {
		return err
	}
	fmt.Printf("   date: %s\n", daily.Date)
	fmt.Printf("   flower types: %d, units sold: %d, units restocked: %d\n",
		daily.FlowerCount, daily.UnitsSold, daily.UnitsRestocked)
	for _, alert := range daily.StockAlerts {
		fmt.Printf("   low stock: %s (%d left at $%s)\n",
			alert.Flower, alert.CurrentStock, alert.Price.StringFixed(2))
	}

	return nil
}
