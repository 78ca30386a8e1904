package commands

import (
	"github.com/spf13/cobra"

	"github.com/bankfeed-dev/bankfeed/internal/app"
	"github.com/bankfeed-dev/bankfeed/internal/config"
	"github.com/bankfeed-dev/bankfeed/internal/export"
	"github.com/bankfeed-dev/bankfeed/internal/progress"
)

func newFetchCommand() *cobra.Command {
	var configPath string
	var continueOnError bool
	var noSpinner bool

	cmd := &cobra.Command{
		Use:   "fetch <bank>...",
		Short: "Fetch transactions from one or more banks and export them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			reporter := progress.NewConsole(out, !noSpinner)

			exporters := []export.Exporter{export.NewConsole(out)}
			if cfg.Has("exporter.ynab.csv.outDirectory") {
				exporters = append(exporters, export.NewYnabCSV(cfg))
			}
			if cfg.Has("exporter.ynab.api.key") {
				exporters = append(exporters, export.NewYnabAPI(cfg, out))
			}

			return app.FetchAndExport(cmd.Context(), app.DefaultRegistry(cfg), exporters,
				args, reporter, app.Options{ContinueOnError: continueOnError})
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "path to the credentials file")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "keep fetching remaining banks after a failure")
	cmd.Flags().BoolVar(&noSpinner, "no-spinner", false, "print plain progress lines instead of a spinner")

	return cmd
}
