package redosprobe

import (
	"io"

	"github.com/seclab-tools/redosprobe/internal/bytecode"
)

// Instruction is a single decoded VM instruction. See the internal
// bytecode package for the closed family of concrete types.
type Instruction = bytecode.Instruction

// Opcode identifies which instruction a decoded byte represents.
type Opcode = bytecode.Opcode

// Decode reads buf as a regexp VM bytecode program, returning its
// instructions in address order.
func Decode(buf []byte) ([]Instruction, error) {
	return bytecode.Decode(buf)
}

// PrintProgram writes a human-readable disassembly of program to w, one
// instruction per line.
func PrintProgram(w io.Writer, program []Instruction) error {
	return bytecode.Fprint(w, program)
}

// DumpProgram writes program's disassembly to stdout, the same format
// cmd/redosdump uses.
func DumpProgram(program []Instruction) error {
	return bytecode.Print(program)
}
