// Command posctl is a terminal client for the POS backend: it resolves
// reporting periods, pages through lists and renders sale invoices.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sangkips/stockdesk/internal/config"
	"github.com/sangkips/stockdesk/internal/infrastructure/backend"
	"github.com/sangkips/stockdesk/pkg/logger"
	"github.com/sangkips/stockdesk/pkg/period"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "posctl",
		Usage: "browse and print from the POS backend",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", EnvVars: []string{"POSCTL_TOKEN"}, Usage: "backend session token"},
			&cli.StringFlag{Name: "business", EnvVars: []string{"POSCTL_BUSINESS"}, Usage: "active business id"},
			&cli.StringFlag{Name: "base-url", EnvVars: []string{"BACKEND_BASE_URL"}, Usage: "backend base url (defaults to the configured one)"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log backend calls"},
		},
		Commands: []*cli.Command{
			periodCommand(),
			browseCommand(),
			invoiceCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func periodCommand() *cli.Command {
	return &cli.Command{
		Name:      "period",
		Usage:     "print the bounds of a period token",
		ArgsUsage: "<token>",
		Action: func(c *cli.Context) error {
			token, err := period.ParseToken(c.Args().First())
			if err != nil {
				return cli.Exit(err.Error(), 2)
			}
			b, ok := period.Resolve(token, time.Now())
			if !ok {
				return cli.Exit("custom periods have no implied bounds", 2)
			}
			_, err = fmt.Fprintf(c.App.Writer, "%s\t%s\t%s\n", token,
				b.Start.Format(time.DateTime), b.End.Format(time.DateTime))
			return err
		},
	}
}

// env is what every backend-facing command needs.
type env struct {
	cfg    *config.Config
	client *backend.Client
	logger *zap.Logger
	ctx    context.Context
}

func newEnv(c *cli.Context) (*env, error) {
	token, business := c.String("token"), c.String("business")
	if token == "" || business == "" {
		return nil, cli.Exit("--token and --business (or POSCTL_TOKEN and POSCTL_BUSINESS) are required", 2)
	}

	cfg := config.Load()
	level := "warn"
	if c.Bool("verbose") {
		level = "debug"
	}
	zl, err := logger.New(logger.Config{Development: true, Level: level})
	if err != nil {
		return nil, err
	}

	base := cfg.Backend.BaseURL
	if u := c.String("base-url"); u != "" {
		base = u
	}
	client, err := backend.NewClient(backend.Config{
		BaseURL:     base,
		Timeout:     cfg.Backend.Timeout,
		LegacyVerbs: cfg.Backend.LegacyVerbs,
	}, backend.WithLogger(zl), backend.OnUnauthorized(func(context.Context, string) {
		fmt.Fprintln(c.App.ErrWriter, "session rejected by the backend; log in again")
	}))
	if err != nil {
		return nil, err
	}

	ctx := backend.WithCredentials(c.Context, backend.Credentials{Token: token, BusinessID: business})
	return &env{cfg: cfg, client: client, logger: zl, ctx: ctx}, nil
}
