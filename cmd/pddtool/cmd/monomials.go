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

var monomialsCmd = &cobra.Command{
	Use:   "monomials <p>",
	Short: "print p's expansion, degree, and free variables",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := newManager()
		p, err := exprlang.Parse(m, args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		m.DisplayHandle(os.Stdout, p)
		fmt.Printf("degree: %d\n", m.Degree(p))
		fmt.Printf("free variables: %v\n", m.FreeVars(p))
		fmt.Printf("dag size: %d\n", m.DagSize(p))
	},
}

func init() {
	RootCmd.AddCommand(monomialsCmd)
}
