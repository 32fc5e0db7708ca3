// Command ubjson converts between UBJSON and JSON or YAML and prints the
// Go value tree of UBJSON data.
//
// Subcommands:
//
//   - encode: convert JSON (comments and trailing commas allowed) or YAML
//     to UBJSON.
//   - decode: convert UBJSON to JSON or YAML.
//   - dump: print decoded values with their Go types.
//
// All subcommands read the file named by their only positional argument,
// or stdin when there is none or it is "-". Output goes to stdout, log
// records to stderr.
//
// Object key order is preserved in both directions. Integers outside the
// int64 range and numbers outside the float64 range are carried as
// UBJSON hugeints.
//
// Exit status is 0 on success, 1 when the conversion fails and 2 on
// usage errors.
package main
