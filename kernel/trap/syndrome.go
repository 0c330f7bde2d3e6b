package trap

// Fault is the fault kind extracted from the low 6 bits of an abort's
// instruction-specific syndrome (spec.md §4.5, ref: ARM ARM D1.10.4).
type Fault uint8

// Fault values.
const (
	FaultAddressSize Fault = iota
	FaultTranslation
	FaultAccessFlag
	FaultPermission
	FaultAlignment
	FaultTlbConflict
	FaultOther
)

// faultFrom maps the low 6 bits of an instruction/data abort's
// instruction-specific syndrome to a Fault.
func faultFrom(val uint32) Fault {
	code := val & 0x3F
	switch {
	case code <= 0b000011:
		return FaultAddressSize
	case code >= 0b000100 && code <= 0b000111:
		return FaultTranslation
	case code >= 0b001000 && code <= 0b001011:
		return FaultAccessFlag
	case code >= 0b001101 && code <= 0b001111:
		return FaultPermission
	case code == 0b100001:
		return FaultAlignment
	case code == 0b110000:
		return FaultTlbConflict
	default:
		return FaultOther
	}
}

// SyndromeKind tags the variant held by a decoded Syndrome.
type SyndromeKind uint8

// SyndromeKind values, covering every class spec.md §4.5 requires.
const (
	Unknown SyndromeKind = iota
	WfiWfe
	McrMrc
	McrrMrrc
	LdcStc
	SimdFp
	Vmrs
	Mrrc
	IllegalExecutionState
	Svc
	Hvc
	Smc
	MsrMrsSystem
	InstructionAbort
	PCAlignmentFault
	DataAbort
	SpAlignmentFault
	TrappedFpu
	SErrorSyndrome
	Breakpoint
	Step
	Watchpoint
	Brk
	Other
)

// Syndrome is the decoded form of a 32-bit Exception Syndrome Register
// (ESR). Kind tags which fields are meaningful:
//
//   - Svc, Hvc, Smc, Brk: Imm holds the 16-bit immediate.
//   - InstructionAbort, DataAbort: AbortFault and AbortLevel hold the fault
//     code and same-level (1) / lower-level (0) flag.
//   - Other: Raw holds the original 32-bit ESR value.
type Syndrome struct {
	Kind       SyndromeKind
	Imm        uint16
	AbortFault Fault
	AbortLevel uint8
	Raw        uint32
}

// DecodeSyndrome parses a raw ESR value into a Syndrome (spec.md §4.5, ref:
// ARM ARM D1.10.4).
func DecodeSyndrome(esr uint32) Syndrome {
	class := uint8((esr >> 26) & 0x3F)
	specific := esr & ((1 << 25) - 1)

	switch class {
	case 0b000000:
		return Syndrome{Kind: Unknown}
	case 0b000001:
		return Syndrome{Kind: WfiWfe}
	case 0b000011, 0b000100:
		return Syndrome{Kind: McrMrc}
	case 0b000110:
		return Syndrome{Kind: LdcStc}
	case 0b000111:
		return Syndrome{Kind: SimdFp}
	case 0b001000:
		return Syndrome{Kind: Vmrs}
	case 0b001001:
		return Syndrome{Kind: Other, Raw: esr}
	case 0b001100:
		return Syndrome{Kind: Mrrc}
	case 0b001110:
		return Syndrome{Kind: IllegalExecutionState}
	case 0b010001, 0b010101:
		return Syndrome{Kind: Svc, Imm: uint16(specific)}
	case 0b010010, 0b010110:
		return Syndrome{Kind: Hvc, Imm: uint16(specific)}
	case 0b010011, 0b010111:
		return Syndrome{Kind: Smc, Imm: uint16(specific)}
	case 0b011000:
		return Syndrome{Kind: MsrMrsSystem}
	case 0b011001, 0b011010, 0b011111:
		return Syndrome{Kind: Other, Raw: esr}
	case 0b100000, 0b100001:
		fault := faultFrom(specific)
		level := uint8(0)
		if class == 0b100001 {
			level = 1
		}
		return Syndrome{Kind: InstructionAbort, AbortFault: fault, AbortLevel: level}
	case 0b100010:
		return Syndrome{Kind: PCAlignmentFault}
	case 0b100100, 0b100101:
		fault := faultFrom(specific)
		level := uint8(0)
		if class == 0b100101 {
			level = 1
		}
		return Syndrome{Kind: DataAbort, AbortFault: fault, AbortLevel: level}
	case 0b100110:
		return Syndrome{Kind: SpAlignmentFault}
	case 0b101000, 0b101100:
		return Syndrome{Kind: TrappedFpu}
	case 0b101111:
		return Syndrome{Kind: SErrorSyndrome}
	case 0b110000, 0b110001:
		return Syndrome{Kind: Breakpoint}
	case 0b110010, 0b110011:
		return Syndrome{Kind: Step}
	case 0b110100, 0b110101:
		return Syndrome{Kind: Watchpoint}
	case 0b111000, 0b111100:
		return Syndrome{Kind: Brk, Imm: uint16(specific & 0xFFFF)}
	case 0b111010:
		return Syndrome{Kind: Other, Raw: esr}
	default:
		return Syndrome{Kind: Other, Raw: esr}
	}
}
