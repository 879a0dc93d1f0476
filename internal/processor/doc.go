// Package processor connects the command line to the glossary session:
// it loads the table and runs the lookup, export, HTTP or GUI front-end.
package processor
