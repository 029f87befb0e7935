// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package cmd implements the pddtool command tree: a small CLI wrapping the
// pdd.Manager API, built the way junjiewwang-perf-analysis's cmd/cli uses
// cobra for its command tree and viper for layered configuration.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dalzilio/pdd"
)

var cfgFile string

// RootCmd is the entry point of the pddtool command tree.
var RootCmd = &cobra.Command{
	Use:   "pddtool",
	Short: "pddtool manipulates Polynomial Decision Diagrams from the command line",
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default none)")
	RootCmd.PersistentFlags().Int("vars", 8, "number of variables the manager is created with")
	RootCmd.PersistentFlags().Bool("mod2-semantics", false, "use GF(2) coefficient arithmetic")
	RootCmd.PersistentFlags().Int("max-num-nodes", 1<<24, "hard ceiling on the node pool size")
	RootCmd.PersistentFlags().Bool("disable-gc", false, "disable garbage collection, grow the node pool instead")
	RootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging of GC/resize/cache activity")

	viper.BindPFlag("vars", RootCmd.PersistentFlags().Lookup("vars"))
	viper.BindPFlag("mod2-semantics", RootCmd.PersistentFlags().Lookup("mod2-semantics"))
	viper.BindPFlag("max-num-nodes", RootCmd.PersistentFlags().Lookup("max-num-nodes"))
	viper.BindPFlag("disable-gc", RootCmd.PersistentFlags().Lookup("disable-gc"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pddtool")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("PDDTOOL")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig() // a missing config file is not an error
}

// Execute runs the command tree; it is the sole export cmd/pddtool's main
// package calls.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newManager builds a pdd.Manager from the layered viper configuration
// (flags, environment, optional config file), in that order of precedence.
func newManager() *pdd.Manager {
	opts := []pdd.Option{
		pdd.MaxNumNodes(viper.GetInt("max-num-nodes")),
	}
	if viper.GetBool("mod2-semantics") {
		opts = append(opts, pdd.Mod2Semantics())
	}
	if viper.GetBool("disable-gc") {
		opts = append(opts, pdd.DisableGC())
	}
	if viper.GetBool("verbose") {
		logger, _ := zap.NewDevelopment()
		opts = append(opts, pdd.WithLogger(logger))
	}
	return pdd.New(viper.GetInt("vars"), opts...)
}
