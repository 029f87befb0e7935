// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dalzilio/pdd/internal/exprlang"
)

var reduceCmd = &cobra.Command{
	Use:   "reduce <p> <q>",
	Short: "reduce p modulo q and print the result",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		m := newManager()
		p, err := exprlang.Parse(m, args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		q, err := exprlang.Parse(m, args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		r, err := m.Reduce(p, q)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		m.DisplayHandle(os.Stdout, r)
	},
}

func init() {
	RootCmd.AddCommand(reduceCmd)
}
