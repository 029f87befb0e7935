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

var spolyCmd = &cobra.Command{
	Use:   "spoly <a> <b>",
	Short: "build the S-polynomial of a and b, if their leading monomials share a variable",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		m := newManager()
		a, err := exprlang.Parse(m, args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		b, err := exprlang.Parse(m, args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		r, ok, err := m.TrySpoly(a, b)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if !ok {
			fmt.Println("no common factor: leading monomials share no variable")
			return
		}
		m.DisplayHandle(os.Stdout, r)
	},
}

func init() {
	RootCmd.AddCommand(spolyCmd)
}
