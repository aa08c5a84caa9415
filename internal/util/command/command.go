package command

import (
	"context"

	"github.com/spf13/cobra"

	"github/splitpot/go-relay/internal/api"
	"github/splitpot/go-relay/internal/config"
)

// NewSubcommandGroup returns a parent command that only prints its own usage
// and attaches the given subcommands.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use: use,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(subcommands...)

	return cmd
}

// WithServer initializes a fully wired server from the given config, runs the
// closure against it and shuts it down afterwards. Intended for one-shot CLI
// commands that need the service components without the HTTP listener.
func WithServer(ctx context.Context, cfg config.Server, closure func(ctx context.Context, s *api.Server) error) error {
	config.InitLogger(cfg)

	s, err := api.InitNewServer(cfg)
	if err != nil {
		return err
	}

	defer func() {
		_ = s.Shutdown(ctx)
	}()

	return closure(ctx, s)
}
