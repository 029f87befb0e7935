// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package main

import "github.com/dalzilio/pdd/cmd/pddtool/cmd"

func main() {
	cmd.Execute()
}
