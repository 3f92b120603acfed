package commands

import (
	"context"
	"fmt"
	"os"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aibiikeo/journal-cli/pkg/api"
	"github.com/aibiikeo/journal-cli/pkg/auth"
	"github.com/aibiikeo/journal-cli/pkg/config"
	"github.com/aibiikeo/journal-cli/pkg/journal"
	"github.com/aibiikeo/journal-cli/pkg/session"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "journal",
		Short: base.Wrap80("Personal journaling against a journal service, from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&oo.JSON, "json", false,
		"Output errors as JSON.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addLogin(topLevel)
	addLogout(topLevel)
	addRegister(topLevel)
	addWhoami(topLevel)
	addGet(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addImages(topLevel)
	addReset(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// environment holds the wired client stack shared by all commands.
type environment struct {
	cfg     *config.Config
	session session.Store
	client  *api.Client
	flow    *auth.Flow
	journal *journal.Service
	log     *zap.Logger
}

func newEnvironment() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if cfg.Log != "" {
		zc := zap.NewProductionConfig()
		zc.OutputPaths = []string{cfg.Log}
		zc.ErrorOutputPaths = []string{cfg.Log}
		if log, err = zc.Build(); err != nil {
			return nil, err
		}
	}

	s := session.Open(cfg.Path)
	client, err := api.New(cfg.Server, s,
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(log),
		api.WithAuthInvalidated(func() {
			fmt.Fprintln(os.Stderr, "Session expired. Please log in again with `journal login`.")
		}),
	)
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:     cfg,
		session: s,
		client:  client,
		flow:    auth.NewFlow(client, s),
		journal: journal.NewService(client),
		log:     log,
	}, nil
}

// resolveUser maps the stored token to the numeric user id every entry
// operation needs.
func (e *environment) resolveUser(ctx context.Context) (int64, error) {
	email, err := session.Identity(e.session)
	if err != nil {
		return 0, fmt.Errorf("not logged in, run `journal login`: %w", err)
	}
	return e.flow.ResolveUserID(ctx, email)
}
