package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	wordsapp "github.com/exos/backend/internal/application/amountwords"
	"github.com/exos/backend/internal/domain/amountwords"
	"github.com/exos/backend/internal/infrastructure/config"
	"github.com/exos/backend/internal/infrastructure/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "exosctl",
		Short:         "EX'OS back office tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config.toml (default: search ., ./backend, /app)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log rejected input")

	root.AddCommand(newWordsCmd(opts), newCurrenciesCmd(opts))
	return root
}

// loadService builds the conversion service from configuration
func loadService(opts *rootOptions) (*wordsapp.Service, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	table, err := cfg.Currency.Table()
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if opts.verbose {
		log, err = logger.New(&logger.Config{Level: "debug", Format: "console", Output: "stderr"})
		if err != nil {
			return nil, err
		}
	}

	return wordsapp.NewService(
		amountwords.NewFormatter(amountwords.WithCurrencies(table)),
		wordsapp.WithDefaultCurrency(cfg.Currency.Default),
		wordsapp.WithLogger(log),
	), nil
}

func newWordsCmd(opts *rootOptions) *cobra.Command {
	var (
		currency string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "words <amount>",
		Short: "Write an amount in words",
		Long: `Write an amount as uppercase Spanish legal text.

Examples:
  exosctl words 15000
  exosctl words 1234.56 --currency USD

Amounts starting with "-" must follow "--" to be read as an argument:
  exosctl words -- -5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := loadService(opts)
			if err != nil {
				return err
			}
			if currency == "" {
				currency = service.DefaultCurrency()
			}

			resp, err := service.Convert(cmd.Context(), wordsapp.ConvertRequest{
				Amount:   wordsapp.NewAmountValue(args[0]),
				Currency: currency,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			_, err = fmt.Fprintln(out, resp.Text)
			return err
		},
	}
	cmd.Flags().StringVarP(&currency, "currency", "c", "", "currency code or alias (default: configured default)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full conversion as JSON")
	cmd.SetFlagErrorFunc(negativeAmountFlagError)
	return cmd
}

// negativeAmountFlagError reports "words -5" as a negative amount rather
// than an unknown shorthand flag.
func negativeAmountFlagError(_ *cobra.Command, err error) error {
	_, token, found := strings.Cut(err.Error(), " in ")
	if !found {
		return err
	}
	if _, perr := strconv.ParseFloat(token, 64); perr != nil {
		return err
	}
	if _, perr := amountwords.ParseAmount(token); perr != nil {
		return perr
	}
	return err
}

func newCurrenciesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "List known currencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := loadService(opts)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tSINGULAR\tPLURAL\tSYMBOL\tALIASES\t")
			for _, c := range service.ListCurrencies(cmd.Context()) {
				code := c.Code
				if c.Default {
					code += " *"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
					code, c.Singular, c.Plural, c.Symbol, strings.Join(c.Aliases, ","))
			}
			return w.Flush()
		},
	}
}
