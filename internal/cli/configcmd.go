package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) configCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective config as YAML",
		Long: `Prints the config after the file, environment and flags have been merged.
With --out the result is written to a file instead, which is a quick way to
start a config of your own.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out != "" {
				if err := a.cfg.Save(out); err != nil {
					return err
				}
				a.log.Info("config written", zap.String("path", out))
				return nil
			}
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}
