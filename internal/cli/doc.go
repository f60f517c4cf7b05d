// Package cli implements the headless rodcut-trace command. It parses flags,
// resolves the price table from a preset, a price list or an imported file,
// prints the solution and writes the requested exports.
package cli
