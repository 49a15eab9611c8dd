package main

import (
	"fmt"
	"os"

	"github.com/sangkips/stockdesk/internal/application/detail"
	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/application/service"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	"github.com/sangkips/stockdesk/internal/infrastructure/repository"
	"github.com/sangkips/stockdesk/pkg/amountwords"
	"github.com/sangkips/stockdesk/pkg/notify"
	"github.com/sangkips/stockdesk/pkg/printer"
	"github.com/urfave/cli/v2"
)

func invoiceCommand() *cli.Command {
	return &cli.Command{
		Name:      "invoice",
		Usage:     "render a sale invoice to a file",
		ArgsUsage: "<sale-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Value: string(printer.LayoutA4), Usage: "58mm, 80mm, a5 or a4"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file (default invoice-<id>.pdf or .bin)"},
		},
		Action: func(c *cli.Context) error {
			id := c.Args().First()
			if id == "" {
				return cli.Exit("a sale id is required", 2)
			}
			layout, err := printer.ParseLayout(c.String("format"))
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			e, err := newEnv(c)
			if err != nil {
				return err
			}

			store := service.StoreInfo{
				Name:     e.cfg.Store.Name,
				Address:  e.cfg.Store.Address,
				Phone:    e.cfg.Store.Phone,
				Currency: amountwords.Currency{Major: e.cfg.Store.Currency, Minor: e.cfg.Store.Fraction},
			}
			receipts := service.NewPrinterService(printer.NewNullPrinter(), "none", layout, store, e.logger)

			sales := repository.NewSaleRepository(e.client)
			busy := &listing.Busy{}
			view := detail.New(sales.GetByID, detail.Options{
				Name:     "Sale",
				Notifier: &notify.Writer{W: c.App.ErrWriter},
				Busy:     busy,
				Logger:   e.logger,
			})
			stop := watchBusy(e.ctx, busy, c.App.ErrWriter, busyTick)
			err = view.Load(e.ctx, id)
			stop()
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			job, err := detail.Print(view, layout, func(s *entity.Sale) *printer.Sheet {
				return receipts.ReceiptSheet(receipts.SaleReceipt(s))
			})
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			out := c.String("out")
			if out == "" {
				ext := ".bin"
				if job.ContentType == printer.ContentTypePDF {
					ext = ".pdf"
				}
				out = "invoice-" + id + ext
			}
			if err := os.WriteFile(out, job.Data, 0o644); err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.App.Writer, "wrote %s (%d bytes)\n", out, len(job.Data))
			return err
		},
	}
}
