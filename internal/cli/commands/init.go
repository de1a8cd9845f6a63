package commands

import (
	"github.com/spf13/cobra"

	"github.com/decodoc/decodoc/internal/cli/config"
	"github.com/decodoc/decodoc/internal/cli/ui"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName,
		Long: `Write a configuration file to the current directory.

Values given as flags are written instead of the defaults:

  decodoc init --ext .ts --ext .tsx --jobs 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			if err := config.Save(config.FileName, e.cfg, force); err != nil {
				return err
			}
			ui.WriteSuccess(e.out, "Created "+config.FileName, e.noColor)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
