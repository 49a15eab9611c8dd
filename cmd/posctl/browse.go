package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sangkips/stockdesk/internal/application/listing"
	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
	"github.com/sangkips/stockdesk/internal/infrastructure/repository"
	"github.com/sangkips/stockdesk/pkg/notify"
	"github.com/sangkips/stockdesk/pkg/pagination"
	"github.com/sangkips/stockdesk/pkg/period"
	"github.com/urfave/cli/v2"
)

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:      "browse",
		Usage:     "page through a list interactively",
		ArgsUsage: "<products|sales|purchases|expenses|damages>",
		Description: "Commands: n (next), p (previous), /text (search), limit N,\n" +
			"period TOKEN, q (quit).",
		Action: func(c *cli.Context) error {
			e, err := newEnv(c)
			if err != nil {
				return err
			}
			out := c.App.Writer
			ctx := notify.WithNotifier(e.ctx, &notify.Writer{W: c.App.ErrWriter})
			busy := &listing.Busy{}
			stop := watchBusy(ctx, busy, c.App.ErrWriter, busyTick)
			defer stop()
			opts := listing.Options{Name: c.Args().First(), Busy: busy, Logger: e.logger}
			dated := period.NewRange(period.ThisMonth, time.Now())

			switch c.Args().First() {
			case "products":
				repo := repository.NewProductRepository(e.client)
				return browse(ctx, c.App.Reader, out, fetcher(repo.List, false), opts, productRow)
			case "sales":
				repo := repository.NewSaleRepository(e.client)
				opts.Range = dated
				return browse(ctx, c.App.Reader, out, fetcher(repo.List, true), opts, saleRow)
			case "purchases":
				repo := repository.NewPurchaseRepository(e.client)
				opts.Range = dated
				return browse(ctx, c.App.Reader, out, fetcher(repo.List, true), opts, purchaseRow)
			case "expenses":
				repo := repository.NewExpenseRepository(e.client)
				opts.Range = dated
				return browse(ctx, c.App.Reader, out, fetcher(repo.List, true), opts, expenseRow)
			case "damages":
				repo := repository.NewDamageRepository(e.client)
				opts.Range = dated
				return browse(ctx, c.App.Reader, out, fetcher(repo.List, true), opts, damageRow)
			default:
				return cli.Exit(fmt.Sprintf("unknown list %q", c.Args().First()), 2)
			}
		},
	}
}

// fetcher adapts a repository List to a list controller.
func fetcher[T any](list func(context.Context, domainRepo.ListParams) (*pagination.PageResult[T], error), dated bool) listing.Fetcher[T] {
	return func(ctx context.Context, q pagination.ListQuery, r period.Range) (*pagination.PageResult[T], error) {
		params := domainRepo.ListParams{Query: q}
		if dated {
			params.Range = &r
		}
		return list(ctx, params)
	}
}

// pager is the subset of the list controller driven by the prompt.
type pager interface {
	SetPage(ctx context.Context, page int) error
	SetLimit(ctx context.Context, limit int) error
	SetSearch(ctx context.Context, search string) error
	SetPeriod(ctx context.Context, token period.Token, now time.Time) error
}

// command applies one prompt line against the current page pg. It reports quit
// for "q"; lines it does not understand return an error wrapping errUsage, and
// n or p past either end return errNoNext or errNoPrev without a fetch. Fetch
// failures are reported by the controller's notifier.
func command(ctx context.Context, p pager, pg *pagination.Pagination, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "q":
		return true, nil
	case line == "n":
		if pg == nil || !pg.HasNext {
			return false, errNoNext
		}
		return false, p.SetPage(ctx, pg.CurrentPage+1)
	case line == "p":
		if pg == nil || !pg.HasPrev {
			return false, errNoPrev
		}
		return false, p.SetPage(ctx, pg.CurrentPage-1)
	case strings.HasPrefix(line, "/"):
		return false, p.SetSearch(ctx, strings.TrimPrefix(line, "/"))
	case strings.HasPrefix(line, "limit "):
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "limit ")))
		if err != nil {
			return false, fmt.Errorf("%w: %v", errUsage, err)
		}
		return false, p.SetLimit(ctx, n)
	case strings.HasPrefix(line, "period "):
		token, err := period.ParseToken(strings.TrimSpace(strings.TrimPrefix(line, "period ")))
		if err != nil {
			return false, fmt.Errorf("%w: %v", errUsage, err)
		}
		return false, p.SetPeriod(ctx, token, time.Now())
	default:
		return false, errUsage
	}
}

var (
	errUsage  = errors.New("commands: n, p, /text, limit N, period TOKEN, q")
	errNoNext = errors.New("no next page")
	errNoPrev = errors.New("no previous page")
)

func browse[T any](ctx context.Context, in io.Reader, out io.Writer, fetch listing.Fetcher[T], opts listing.Options, row func(T) []string) error {
	ctrl := listing.New(fetch, opts)
	// Failures are reported through the notifier; the previous page stays.
	_ = ctrl.Refresh(ctx)
	render(out, ctrl.Snapshot(), row)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		quit, err := command(ctx, ctrl, ctrl.Snapshot().Pagination, scanner.Text())
		if quit {
			return nil
		}
		if errors.Is(err, errUsage) || errors.Is(err, errNoNext) || errors.Is(err, errNoPrev) {
			fmt.Fprintln(out, err)
			continue
		}
		render(out, ctrl.Snapshot(), row)
	}
}

func render[T any](out io.Writer, snap listing.Snapshot[T], row func(T) []string) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, it := range snap.Items {
		fmt.Fprintln(tw, strings.Join(row(it), "\t"))
	}
	_ = tw.Flush()

	footer := fmt.Sprintf("%d total", snap.Total)
	if pg := snap.Pagination; pg != nil {
		footer = fmt.Sprintf("page %d/%d, %d per page, %d total", pg.CurrentPage, pg.TotalPages, pg.PerPage, pg.Total)
	}
	if !snap.Range.IsZero() {
		footer += fmt.Sprintf(", %s %s..%s", snap.Range.Token, snap.Range.StartDate(), snap.Range.EndDate())
	}
	if snap.Query.Search != "" {
		footer += fmt.Sprintf(", search %q", snap.Query.Search)
	}
	fmt.Fprintln(out, footer)
}

func productRow(p entity.Product) []string {
	return []string{p.Code, p.Name, strconv.FormatInt(p.Stock, 10), p.SalePrice.StringFixed(2)}
}

func saleRow(s entity.Sale) []string {
	customer := "Walk-in"
	if s.Customer != nil {
		customer = s.Customer.Name
	}
	return []string{s.InvoiceNo, s.Date.Format(period.DateLayout), customer, s.Total.StringFixed(2), s.Due.StringFixed(2)}
}

func purchaseRow(p entity.Purchase) []string {
	supplier := ""
	if p.Supplier != nil {
		supplier = p.Supplier.Name
	}
	return []string{p.PurchaseNo, p.Date.Format(period.DateLayout), supplier, p.Total.StringFixed(2), p.Due.StringFixed(2)}
}

func expenseRow(e entity.Expense) []string {
	return []string{e.Date.Format(period.DateLayout), e.TypeName, e.Amount.StringFixed(2), e.Note}
}

func damageRow(d entity.Damage) []string {
	return []string{d.DamageNo, d.Date.Format(period.DateLayout), d.Total.StringFixed(2), d.Note}
}
