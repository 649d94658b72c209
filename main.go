// Package main is the entry point for the cwlstats CLI tool, which folds
// league match exports into per-player and per-team JSON summaries.
package main

import "github.com/pable/go-cwl-stats/cmd"

func main() {
	cmd.Execute()
}
