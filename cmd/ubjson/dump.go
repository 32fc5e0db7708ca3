package main

import (
	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func (a *app) dump(args []string) error {
	fs, verbose := a.flagSet("dump")
	hexInput := fs.BoolP("hex", "x", false, "read hex-encoded input")
	allowNoOp := fs.Bool("allow-noop", false, "surface noop markers instead of skipping them")
	if err := a.parse(fs, verbose, args); err != nil {
		return err
	}

	data, err := readInput(fs.Args(), a.stdin, *hexInput)
	if err != nil {
		return err
	}
	values, _, err := decodeValues(data, *allowNoOp, true)
	if err != nil {
		return err
	}
	a.logger.Debug("decoded", "values", len(values), "bytes", len(data))

	for _, v := range values {
		dumpConfig.Fdump(a.stdout, v)
	}
	return nil
}
