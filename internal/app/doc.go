// Package app wires the configuration, transport and authorization services together
// and runs the commands of the CLI.
package app
