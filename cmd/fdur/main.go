// Command fdur is a toolkit for floating-point durations.
//
// Usage:
//
//	fdur <command> [flags] [args]
//
// Commands:
//
//	show       Show a duration in every representation
//	sum        Add up durations
//	subdivide  List evenly spaced samples between two durations
//	since      Elapsed time between two instants
//	simulate   Run a simulation scenario
//	trace      View a simulation trace file
//	repl       Interactive duration calculator
//
// Examples:
//
//	# Break 90000 seconds into days, hours and minutes
//	fdur show 90000
//
//	# Five samples over an hour, as JSON
//	fdur subdivide 0 1h --steps 5 --format json
//
//	# Run a scenario and keep its trace
//	fdur simulate decay.yaml --trace decay.steplog
//
//	# Show only the step events of that trace
//	fdur trace --kind step decay.steplog
//
// Every flag can also be set in fdur.yaml or through FDUR_* environment
// variables (FDUR_FORMAT=json, FDUR_LOG_LEVEL=debug).
package main

import (
	"fmt"
	"os"

	"github.com/floatdur/floatdur-go/cmd/fdur/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(commands.GetExitCode(err))
	}
}
