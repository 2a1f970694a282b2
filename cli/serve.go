package cli

import (
	"github.com/spf13/cobra"

	"tourism/web"
)

// NewServe wraps the web UI in a subcommand so one binary carries both
// front ends.
func NewServe(server *web.Server, addr string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the single-page web UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")

	return cmd
}
