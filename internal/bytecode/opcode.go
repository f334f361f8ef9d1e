// Package bytecode decodes a regexp VM's packed bytecode into a typed
// instruction stream.
//
// The VM's instruction set is a closed, hand-written family of opcodes (see
// instruction.go); it is not meant to grow by code generation, so decoding
// dispatches with a switch over that family rather than reflection. Only
// the pretty-printer (pretty.go) reads instruction fields by reflection.
package bytecode

// Opcode identifies the tag byte of a single VM instruction.
type Opcode byte

// The recognized opcodes of the regexp VM, per the instruction set this
// package decodes.
const (
	OpPushBt Opcode = iota
	OpPopBt
	OpGoTo
	OpAdvanceCpAndGoto
	OpCheckChar
	OpCheckNotChar
	OpLoadCurrentChar
	OpLoadCurrentCharUnchecked
	OpCheckCurrentPosition
	OpSkipUntilBitInTable
	OpSkipUntilChar
	OpSkipUntilCharPosChecked
	OpAndCheckChar
	OpAndCheckNotChar
	OpCheckCharInRange
	OpCheckCharNotInRange
	OpCheckGreedy
	OpCheckGt
	OpCheckLt
	OpCheckRegisterLt
	OpCheckRegisterGe
	OpCheckNotAtStart
	OpPushCp
	OpPopCp
	OpSetRegisterToCp
	OpAdvanceCp
	OpSetRegister
	OpAdvanceRegister
	OpPushRegister
	OpPopRegister
	OpSetCurrentPositionFromEnd
	OpSucceed
	OpFail

	opcodeCount
)

// names gives each opcode's identifier-style mnemonic, e.g. "PushBt". This
// is the form [Opcode.Name] returns and that error messages and tests key
// off of; the pretty-printer (see pretty.go) renders the engine's own
// SCREAMING_SNAKE form from it instead of storing that form here.
var names = [opcodeCount]string{
	OpPushBt:                    "PushBt",
	OpPopBt:                     "PopBt",
	OpGoTo:                      "GoTo",
	OpAdvanceCpAndGoto:          "AdvanceCpAndGoto",
	OpCheckChar:                 "CheckChar",
	OpCheckNotChar:              "CheckNotChar",
	OpLoadCurrentChar:           "LoadCurrentChar",
	OpLoadCurrentCharUnchecked:  "LoadCurrentCharUnchecked",
	OpCheckCurrentPosition:      "CheckCurrentPosition",
	OpSkipUntilBitInTable:       "SkipUntilBitInTable",
	OpSkipUntilChar:             "SkipUntilChar",
	OpSkipUntilCharPosChecked:   "SkipUntilCharPosChecked",
	OpAndCheckChar:              "AndCheckChar",
	OpAndCheckNotChar:           "AndCheckNotChar",
	OpCheckCharInRange:          "CheckCharInRange",
	OpCheckCharNotInRange:       "CheckCharNotInRange",
	OpCheckGreedy:               "CheckGreedy",
	OpCheckGt:                   "CheckGt",
	OpCheckLt:                   "CheckLt",
	OpCheckRegisterLt:           "CheckRegisterLt",
	OpCheckRegisterGe:           "CheckRegisterGe",
	OpCheckNotAtStart:           "CheckNotAtStart",
	OpPushCp:                    "PushCp",
	OpPopCp:                     "PopCp",
	OpSetRegisterToCp:           "SetRegisterToCp",
	OpAdvanceCp:                 "AdvanceCp",
	OpSetRegister:               "SetRegister",
	OpAdvanceRegister:           "AdvanceRegister",
	OpPushRegister:              "PushRegister",
	OpPopRegister:               "PopRegister",
	OpSetCurrentPositionFromEnd: "SetCurrentPositionFromEnd",
	OpSucceed:                   "Succeed",
	OpFail:                      "Fail",
}

// widths is the instruction width table: an immutable opcode -> byte-width
// mapping used both to parse operands and to compute each instruction's
// fall-through address. A gap here is a configuration error; [Decode]
// reports it as a missing-width DecodeError (see errors.go) at the pc of the
// first instruction that uses that opcode.
//
// Widths are derived from the VM's packed operand layout (a 24-bit signed
// immediate occupies the first word; wider operands follow at 16- or
// 32-bit aligned offsets), not chosen freely.
var widths = [opcodeCount]int{
	OpPushBt:                    8,
	OpPopBt:                     4,
	OpGoTo:                      8,
	OpAdvanceCpAndGoto:          8,
	OpCheckChar:                 8,
	OpCheckNotChar:              8,
	OpLoadCurrentChar:           8,
	OpLoadCurrentCharUnchecked:  4,
	OpCheckCurrentPosition:      8,
	OpSkipUntilBitInTable:       32,
	OpSkipUntilChar:             16,
	OpSkipUntilCharPosChecked:   20,
	OpAndCheckChar:              12,
	OpAndCheckNotChar:           12,
	OpCheckCharInRange:          12,
	OpCheckCharNotInRange:       12,
	OpCheckGreedy:               8,
	OpCheckGt:                   8,
	OpCheckLt:                   8,
	OpCheckRegisterLt:           12,
	OpCheckRegisterGe:           12,
	OpCheckNotAtStart:           8,
	OpPushCp:                    4,
	OpPopCp:                     4,
	OpSetRegisterToCp:           8,
	OpAdvanceCp:                 4,
	OpSetRegister:               8,
	OpAdvanceRegister:           8,
	OpPushRegister:              4,
	OpPopRegister:               4,
	OpSetCurrentPositionFromEnd: 4,
	OpSucceed:                   4,
	OpFail:                      4,
}

// Name returns the identifier-style name of op (e.g. "PushBt"), or "" if op
// is out of range.
func (op Opcode) Name() string {
	if int(op) < 0 || int(op) >= int(opcodeCount) {
		return ""
	}
	return names[op]
}

// Width returns the byte width of op and whether op has a known width.
func (op Opcode) Width() (int, bool) {
	if int(op) < 0 || int(op) >= int(opcodeCount) {
		return 0, false
	}
	w := widths[op]
	return w, w > 0
}

func (op Opcode) valid() bool {
	return int(op) >= 0 && int(op) < int(opcodeCount)
}
