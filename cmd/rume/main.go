// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nicochatzi/rume/internal/config"
	"github.com/nicochatzi/rume/pkg/build"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	// Without a full set of ldflags this fails and the "unknown" defaults stay.
	_ = build.Initialize()
	info := build.GetBuildFlags()

	root := &cobra.Command{
		Use:           "rume",
		Short:         "A real-time audio signal-processing graph engine",
		Version:       info.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	root.AddCommand(newDevicesCmd())
	root.AddCommand(newRunCmd())

	return root
}

func loadConfig() (*config.Config, error) {
	return config.LoadConfig(configPath)
}
