// Package main is the entry point for the rivalstats CLI, which loads a
// Marvel Rivals squad stats snapshot and prints or serves views derived from it.
package main

import "github.com/pable/rivalstats/cmd"

func main() {
	cmd.Execute()
}
