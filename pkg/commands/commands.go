package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "shopkeep",
		Short: base.Wrap80("Catalog administration for the shop, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addLogin(topLevel)
	addLogout(topLevel)
	addGet(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addUI(topLevel)
	addVersion(topLevel)
}
