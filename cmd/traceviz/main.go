// Package main provides the CLI for the TraceViz pipeline trace visualizer.
package main

import "github.com/leapstack-labs/traceviz/internal/cli"

func main() {
	cli.Execute()
}
