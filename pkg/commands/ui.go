package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/shopkeep/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse and edit the catalog interactively",
		Example: `
shopkeep ui
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := loadClient()
			if err != nil {
				return err
			}
			s := ui.UI{
				Gateway:  client,
				Uploader: loadUploader(cfg),
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
