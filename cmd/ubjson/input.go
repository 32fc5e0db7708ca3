package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"
)

// readInput reads the file named by the only element of args, or stdin
// when args is empty or names "-".
//
// With hexMode, whitespace is stripped and the remaining text is
// hex-decoded.
func readInput(args []string, stdin io.Reader, hexMode bool) ([]byte, error) {
	if len(args) > 1 {
		return nil, usagef("expected at most one file argument, got %q", args)
	}

	var data []byte
	var err error
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", args[0], err)
		}
	} else {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	if hexMode {
		return decodeHexInput(data)
	}
	return data, nil
}

// decodeHexInput strips whitespace from hex text and decodes it, so that
// "73 02 68 69" and "73026869" are equivalent.
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	n, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:n], nil
}
