// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/cobra"

	"github.com/skyfold/exoatlas/internal/config"
	xglog "github.com/skyfold/exoatlas/internal/log"
	"github.com/skyfold/exoatlas/internal/version"
)

var cfgPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "exoatlas",
		Short:         "Exoplanet catalog sync daemon and analytics dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(newSyncCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// setup loads the effective configuration and installs the global logger.
func setup() (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, err
	}
	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: version.Version,
	})
	return cfg, nil
}
