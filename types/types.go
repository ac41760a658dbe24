package types

import (
	"github.com/ethereum/go-ethereum/common"
)

const (
	// HexPrefix is the marker every artifact bytecode string starts with.
	HexPrefix = "0x"

	// DefaultBytecodeField is the artifact field holding the creation bytecode.
	DefaultBytecodeField = "bytecode"
)

// Target binds a symbolic placeholder to the artifact its bytecode is read from.
type Target struct {
	// Name is the identifier assigned in the destination, e.g. `UniswapV3Factory = hex'...'`.
	Name string
	// Source is either a path (absolute, or starting with ./ or ../) or a
	// package specifier resolved through node_modules.
	Source string
	// Field optionally overrides the bytecode lookup with a gjson path.
	Field string
}

// Bytecode is the normalized creation bytecode of one artifact.
type Bytecode struct {
	Name string
	// Hex holds the hex digits with the 0x prefix stripped, case preserved.
	Hex      string
	CodeHash common.Hash
}

// Size returns the length of the bytecode in bytes.
func (b Bytecode) Size() int {
	return len(b.Hex) / 2
}

// Values flattens loaded bytecodes into the name -> hex mapping used for substitution.
func Values(bytecodes map[string]Bytecode) map[string]string {
	values := make(map[string]string, len(bytecodes))
	for name, bc := range bytecodes {
		values[name] = bc.Hex
	}
	return values
}
