package bytecode

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/stoewer/go-strcase"
	"golang.org/x/term"
)

// Fprint writes a human-readable disassembly of program to w, one
// instruction per line: the address, the opcode mnemonic, and a
// braces-delimited map of the instruction's remaining fields, e.g.
//
//	0x10  CHECK_CHAR  {char: 'a', target: 0x20}
//
// Unlike decoding, formatting an instruction's fields uses reflection: the
// field set is only ever read for display, never switched on, so there is
// no closed-family invariant to protect here.
func Fprint(w io.Writer, program []Instruction) error {
	if len(program) == 0 {
		return nil
	}

	addrWidth := 0
	nameWidth := 0
	for _, instr := range program {
		addrWidth = max(addrWidth, len(fmt.Sprintf("%#x", instr.PC())))
		nameWidth = max(nameWidth, len(mnemonic(instr.Op())))
	}

	for _, instr := range program {
		addr := fmt.Sprintf("%#x", instr.PC())
		fields := formatFields(instr)

		line := fmt.Sprintf("%-*s  %-*s", addrWidth, addr, nameWidth, mnemonic(instr.Op()))
		if fields != "" {
			line += "  " + fields
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// Print writes program's disassembly to stdout, preceded by a banner line
// when stdout is an interactive terminal. Piped output (the common case for
// feeding another tool) skips the banner so it doesn't pollute the stream.
func Print(program []Instruction) error {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintf(os.Stdout, "-- %d instructions --\n", len(program))
	}
	return Fprint(os.Stdout, program)
}

// mnemonic renders op's identifier-style name as the engine's own
// SCREAMING_SNAKE mnemonic, e.g. "PushBt" -> "PUSH_BT".
func mnemonic(op Opcode) string {
	return strcase.UpperSnakeCase(op.Name())
}

// formatFields renders every field of instr other than the embedded base
// (pc, op) as "snake_case: value, ...", matching the source decoder's
// habit of dumping the instruction's own __dict__.
func formatFields(instr Instruction) string {
	v := reflect.ValueOf(instr)
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	t := v.Type()

	var parts []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous && f.Type.Name() == "base" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strcase.SnakeCase(f.Name), formatValue(f.Name, v.Field(i))))
	}
	if len(parts) == 0 {
		return ""
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// isGotoLike reports whether a field name refers to a jump destination,
// which prints in hex to match an address rather than a count.
func isGotoLike(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "target") || strings.Contains(lower, "offset")
}

func formatValue(name string, v reflect.Value) string {
	// rune is an alias of int32, so character operands are told apart from
	// other int32 fields (Delta, Limit, Reg, ...) by field name.
	if name == "Char" && v.Kind() == reflect.Int32 {
		r := rune(v.Int())
		if r >= 0x20 && r < 0x7f {
			return fmt.Sprintf("%q", r)
		}
		return fmt.Sprintf("%#x", r)
	}

	switch v.Kind() {
	case reflect.Uint16, reflect.Uint32:
		if isGotoLike(name) {
			return fmt.Sprintf("%#x", v.Uint())
		}
		return fmt.Sprintf("%d", v.Uint())
	case reflect.Int16, reflect.Int32:
		return fmt.Sprintf("%d", v.Int())
	case reflect.Array:
		return fmt.Sprintf("%x", v.Interface())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
