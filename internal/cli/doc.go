// Package cli implements the tusk command-line interface.
//
// Every command is a Cobra command. Commands that sample the machine open a
// session (config, logging, gopsutil source, primed collector) and close it
// when they return.
//
// # Command Structure
//
//	tusk                      - Full-screen dashboard
//	tusk snapshot [--json]    - One settled reading, printed as tables or JSON
//	tusk pick                 - Choose a process, then track it in the dashboard
//	tusk config [init|show]   - Write or inspect the config file
//	tusk version              - Build information
//	tusk completion <shell>   - Shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --log-level, --log-file, --no-color) are persistent
// on the root command. Flag values override the config file, which overrides
// the built-in defaults. TUSK_* environment variables sit between the file
// and the flags.
//
// # Error Handling
//
// Commands return *errors.Error values. Execute prints them in the
// "✗ what / why / how to fix" format and exits 1. With --json, snapshot
// writes the error inside the JSON envelope as well.
package cli
