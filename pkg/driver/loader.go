package driver

import (
	"errors"
	"fmt"
	"os"

	"uninter/interpreter-go/pkg/ast"
)

// ErrMalformedInput marks failures at the decoder boundary: unreadable
// files and documents that do not decode to a valid program.
var ErrMalformedInput = errors.New("malformed input")

// Load reads and decodes a JSON-encoded program from disk.
func Load(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrMalformedInput, path, err)
	}
	program, err := ast.DecodeProgram(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrMalformedInput, path, err)
	}
	return program, nil
}
