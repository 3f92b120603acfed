package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aibiikeo/journal-cli/pkg/api"
	"github.com/aibiikeo/journal-cli/pkg/auth"
	"github.com/aibiikeo/journal-cli/pkg/config"
	"github.com/aibiikeo/journal-cli/pkg/journal"
	"github.com/aibiikeo/journal-cli/pkg/session"
	teaui "github.com/aibiikeo/journal-cli/pkg/tui/app"
	"go.uber.org/zap"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
journal ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log := zap.NewNop()
			if cfg.Log != "" {
				zc := zap.NewProductionConfig()
				zc.OutputPaths = []string{cfg.Log}
				zc.ErrorOutputPaths = []string{cfg.Log}
				if log, err = zc.Build(); err != nil {
					return err
				}
			}

			// The 401 callback signals the running program instead of writing
			// to the terminal the UI owns.
			invalidated := make(chan struct{}, 1)
			s := session.Open(cfg.Path)
			client, err := api.New(cfg.Server, s,
				api.WithTimeout(cfg.Timeout),
				api.WithLogger(log),
				api.WithAuthInvalidated(func() {
					select {
					case invalidated <- struct{}{}:
					default:
					}
				}),
			)
			if err != nil {
				return err
			}

			return teaui.Run(context.Background(), s, auth.NewFlow(client, s), journal.NewService(client), invalidated)
		},
	}

	topLevel.AddCommand(cmd)
}
