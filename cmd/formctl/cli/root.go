package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type VersionInfo struct {
	Version string
	Commit  string
}

func NewRootCommand(info VersionInfo) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:           "formctl",
		Short:         "Operate formflow forms from the command line",
		Long:          "Validate answer files offline, seed forms from YAML and clear collected answers.",
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(path)
		},
	}

	cmd.PersistentFlags().StringVar(&path, "config", "", "config file (default is ./formctl.yaml)")
	cmd.PersistentFlags().String("backend", "", "store backend (postgres, sqlite)")
	cmd.PersistentFlags().String("sqlite-path", "", "sqlite database file")
	cmd.PersistentFlags().String("db-log-level", "", "gorm log level (silent, error, warn, info)")

	_ = viper.BindPFlag("store.backend", cmd.PersistentFlags().Lookup("backend"))
	_ = viper.BindPFlag("sqlite.path", cmd.PersistentFlags().Lookup("sqlite-path"))
	_ = viper.BindPFlag("db.log_level", cmd.PersistentFlags().Lookup("db-log-level"))

	cmd.Version = fmt.Sprintf("%s.%s", info.Version, info.Commit)

	return cmd
}
