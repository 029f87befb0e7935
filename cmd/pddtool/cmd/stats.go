// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "create a manager with the configured options and print its initial size statistics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		m := newManager()
		m.DisplayManager(os.Stdout)
	},
}

func init() {
	RootCmd.AddCommand(statsCmd)
}
