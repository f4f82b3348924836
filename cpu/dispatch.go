package cpu

// processOpcode dispatches the opcode latched in p.op via a lookup
// table rather than a branching switch: adding, auditing, or testing a
// single opcode's handler is then a single table entry rather than a
// case clause threaded through 255 others.
//
// Opcode matrix taken from:
// http://wiki.nesdev.com/w/index.php/CPU_unofficial_opcodes#Games_using_unofficial_opcodes
//
// NOTE: the above lists 0xAB as LAX #i but it's called OAL here since it
// has odd behavior and needs its own code compared to other LAX forms.
//
// Description of undocumented opcodes:
//
// http://www.ffd2.com/fridge/docs/6502-NMOS.extra.opcodes
// http://nesdev.com/6502_cpu.txt
// http://visual6502.org/wiki/index.php?title=6502_Opcode_8B_(XAA,_ANE)
//
// Opcode descriptions/timing/etc:
// http://obelisk.me.uk/6502/reference.html
func (p *Chip) processOpcode() (bool, error) {
	return opcodeTable[p.op](p)
}

// opcodeFunc is the per-opcode handler shape stored in opcodeTable.
type opcodeFunc func(*Chip) (bool, error)

// addrModeFunc matches the method-expression type of the addrXXX family
// (e.g. (*Chip).addrZP), letting table entries reference them directly
// without a bound closure per opcode.
type addrModeFunc func(*Chip, instructionMode) (bool, error)

// opFunc0 matches the method-expression type of the single-tick opFunc
// family (e.g. (*Chip).iORA, (*Chip).compareA).
type opFunc0 func(*Chip) (bool, error)

// ld builds a load-instruction opcode handler: addr computes
// p.opAddr/p.opVal and op consumes the resulting value.
func ld(addr addrModeFunc, op opFunc0) opcodeFunc {
	return func(p *Chip) (bool, error) {
		return p.loadInstruction(
			func(m instructionMode) (bool, error) { return addr(p, m) },
			func() (bool, error) { return op(p) },
		)
	}
}

// rmwOp builds a read-modify-write opcode handler.
func rmwOp(addr addrModeFunc, op opFunc0) opcodeFunc {
	return func(p *Chip) (bool, error) {
		return p.rmwInstruction(
			func(m instructionMode) (bool, error) { return addr(p, m) },
			func() (bool, error) { return op(p) },
		)
	}
}

// st builds a store-instruction opcode handler. val is evaluated on the
// tick the store actually reaches the bus so it always reflects current
// register state rather than whatever it was when the table was built.
func st(addr addrModeFunc, val func(*Chip) uint8) opcodeFunc {
	return func(p *Chip) (bool, error) {
		return p.storeInstruction(
			func(m instructionMode) (bool, error) { return addr(p, m) },
			val(p),
		)
	}
}

// unstable builds a handler for the AHX/SHX/SHY family, which drive
// their own addressing mode directly (see highByteAndStore) rather than
// going through storeInstruction.
func unstable(iop func(*Chip, func(instructionMode) (bool, error)) (bool, error), addr addrModeFunc) opcodeFunc {
	return func(p *Chip) (bool, error) {
		return iop(p, func(m instructionMode) (bool, error) { return addr(p, m) })
	}
}

// op builds a handler for instructions with no addressing mode of their
// own: implied, accumulator, branch, stack, and flag instructions.
func op(fn opFunc0) opcodeFunc {
	return func(p *Chip) (bool, error) { return fn(p) }
}

// addrOnly builds a handler for the undocumented NOP-with-operand variants:
// the addressing mode still has to run (to consume the right operand
// bytes and burn the right number of cycles) but the value it reads is
// discarded.
func addrOnly(addr addrModeFunc, mode instructionMode) opcodeFunc {
	return func(p *Chip) (bool, error) { return addr(p, mode) }
}

// hlt marks the chip halted; see Cycle, which turns this into a Halted
// error on the next check rather than surfacing anything from here.
func hlt(p *Chip) (bool, error) {
	p.halted = true
	return false, nil
}

// nop1 implements the one-byte, two-cycle NOP forms (0x1A/0x3A/0x5A/
// 0x7A/0xDA/0xEA/0xFA): the operand tick does nothing at all.
func nop1(p *Chip) (bool, error) {
	return true, nil
}

func regA(p *Chip) uint8  { return p.A }
func regX(p *Chip) uint8  { return p.X }
func regY(p *Chip) uint8  { return p.Y }
func regAX(p *Chip) uint8 { return p.A & p.X }

var opcodeTable = [256]opcodeFunc{
	0x00: op((*Chip).iBRK), // BRK #i
	0x01: ld((*Chip).addrIndirectX, (*Chip).iORA),
	0x02: hlt,
	0x03: rmwOp((*Chip).addrIndirectX, (*Chip).iSLO),
	0x04: addrOnly((*Chip).addrZP, kLOAD_INSTRUCTION), // NOP d
	0x05: ld((*Chip).addrZP, (*Chip).iORA),
	0x06: rmwOp((*Chip).addrZP, (*Chip).iASL),
	0x07: rmwOp((*Chip).addrZP, (*Chip).iSLO),
	0x08: op((*Chip).iPHP),
	0x09: ld((*Chip).addrImmediate, (*Chip).iORA),
	0x0A: op((*Chip).iASLAcc),
	0x0B: ld((*Chip).addrImmediate, (*Chip).iANC),
	0x0C: addrOnly((*Chip).addrAbsolute, kLOAD_INSTRUCTION), // NOP a
	0x0D: ld((*Chip).addrAbsolute, (*Chip).iORA),
	0x0E: rmwOp((*Chip).addrAbsolute, (*Chip).iASL),
	0x0F: rmwOp((*Chip).addrAbsolute, (*Chip).iSLO),
	0x10: op((*Chip).iBPL),
	0x11: ld((*Chip).addrIndirectY, (*Chip).iORA),
	0x12: hlt,
	0x13: rmwOp((*Chip).addrIndirectY, (*Chip).iSLO),
	0x14: addrOnly((*Chip).addrZPX, kLOAD_INSTRUCTION), // NOP d,x
	0x15: ld((*Chip).addrZPX, (*Chip).iORA),
	0x16: rmwOp((*Chip).addrZPX, (*Chip).iASL),
	0x17: rmwOp((*Chip).addrZPX, (*Chip).iSLO),
	0x18: op((*Chip).iCLC),
	0x19: ld((*Chip).addrAbsoluteY, (*Chip).iORA),
	0x1A: nop1,
	0x1B: rmwOp((*Chip).addrAbsoluteY, (*Chip).iSLO),
	0x1C: addrOnly((*Chip).addrAbsoluteX, kLOAD_INSTRUCTION), // NOP a,x
	0x1D: ld((*Chip).addrAbsoluteX, (*Chip).iORA),
	0x1E: rmwOp((*Chip).addrAbsoluteX, (*Chip).iASL),
	0x1F: rmwOp((*Chip).addrAbsoluteX, (*Chip).iSLO),
	0x20: op((*Chip).iJSR),
	0x21: ld((*Chip).addrIndirectX, (*Chip).iAND),
	0x22: hlt,
	0x23: rmwOp((*Chip).addrIndirectX, (*Chip).iRLA),
	0x24: ld((*Chip).addrZP, (*Chip).iBIT),
	0x25: ld((*Chip).addrZP, (*Chip).iAND),
	0x26: rmwOp((*Chip).addrZP, (*Chip).iROL),
	0x27: rmwOp((*Chip).addrZP, (*Chip).iRLA),
	0x28: op((*Chip).iPLP),
	0x29: ld((*Chip).addrImmediate, (*Chip).iAND),
	0x2A: op((*Chip).iROLAcc),
	0x2B: ld((*Chip).addrImmediate, (*Chip).iANC),
	0x2C: ld((*Chip).addrAbsolute, (*Chip).iBIT),
	0x2D: ld((*Chip).addrAbsolute, (*Chip).iAND),
	0x2E: rmwOp((*Chip).addrAbsolute, (*Chip).iROL),
	0x2F: rmwOp((*Chip).addrAbsolute, (*Chip).iRLA),
	0x30: op((*Chip).iBMI),
	0x31: ld((*Chip).addrIndirectY, (*Chip).iAND),
	0x32: hlt,
	0x33: rmwOp((*Chip).addrIndirectY, (*Chip).iRLA),
	0x34: addrOnly((*Chip).addrZPX, kLOAD_INSTRUCTION),
	0x35: ld((*Chip).addrZPX, (*Chip).iAND),
	0x36: rmwOp((*Chip).addrZPX, (*Chip).iROL),
	0x37: rmwOp((*Chip).addrZPX, (*Chip).iRLA),
	0x38: op((*Chip).iSEC),
	0x39: ld((*Chip).addrAbsoluteY, (*Chip).iAND),
	0x3A: nop1,
	0x3B: rmwOp((*Chip).addrAbsoluteY, (*Chip).iRLA),
	0x3C: addrOnly((*Chip).addrAbsoluteX, kLOAD_INSTRUCTION),
	0x3D: ld((*Chip).addrAbsoluteX, (*Chip).iAND),
	0x3E: rmwOp((*Chip).addrAbsoluteX, (*Chip).iROL),
	0x3F: rmwOp((*Chip).addrAbsoluteX, (*Chip).iRLA),
	0x40: op((*Chip).iRTI),
	0x41: ld((*Chip).addrIndirectX, (*Chip).iEOR),
	0x42: hlt,
	0x43: rmwOp((*Chip).addrIndirectX, (*Chip).iSRE),
	0x44: addrOnly((*Chip).addrZP, kLOAD_INSTRUCTION),
	0x45: ld((*Chip).addrZP, (*Chip).iEOR),
	0x46: rmwOp((*Chip).addrZP, (*Chip).iLSR),
	0x47: rmwOp((*Chip).addrZP, (*Chip).iSRE),
	0x48: op((*Chip).iPHA),
	0x49: ld((*Chip).addrImmediate, (*Chip).iEOR),
	0x4A: op((*Chip).iLSRAcc),
	0x4B: ld((*Chip).addrImmediate, (*Chip).iALR),
	0x4C: op((*Chip).iJMP),
	0x4D: ld((*Chip).addrAbsolute, (*Chip).iEOR),
	0x4E: rmwOp((*Chip).addrAbsolute, (*Chip).iLSR),
	0x4F: rmwOp((*Chip).addrAbsolute, (*Chip).iSRE),
	0x50: op((*Chip).iBVC),
	0x51: ld((*Chip).addrIndirectY, (*Chip).iEOR),
	0x52: hlt,
	0x53: rmwOp((*Chip).addrIndirectY, (*Chip).iSRE),
	0x54: addrOnly((*Chip).addrZPX, kLOAD_INSTRUCTION),
	0x55: ld((*Chip).addrZPX, (*Chip).iEOR),
	0x56: rmwOp((*Chip).addrZPX, (*Chip).iLSR),
	0x57: rmwOp((*Chip).addrZPX, (*Chip).iSRE),
	0x58: op((*Chip).iCLI),
	0x59: ld((*Chip).addrAbsoluteY, (*Chip).iEOR),
	0x5A: nop1,
	0x5B: rmwOp((*Chip).addrAbsoluteY, (*Chip).iSRE),
	0x5C: addrOnly((*Chip).addrAbsoluteX, kLOAD_INSTRUCTION),
	0x5D: ld((*Chip).addrAbsoluteX, (*Chip).iEOR),
	0x5E: rmwOp((*Chip).addrAbsoluteX, (*Chip).iLSR),
	0x5F: rmwOp((*Chip).addrAbsoluteX, (*Chip).iSRE),
	0x60: op((*Chip).iRTS),
	0x61: ld((*Chip).addrIndirectX, (*Chip).iADC),
	0x62: hlt,
	0x63: rmwOp((*Chip).addrIndirectX, (*Chip).iRRA),
	0x64: addrOnly((*Chip).addrZP, kLOAD_INSTRUCTION),
	0x65: ld((*Chip).addrZP, (*Chip).iADC),
	0x66: rmwOp((*Chip).addrZP, (*Chip).iROR),
	0x67: rmwOp((*Chip).addrZP, (*Chip).iRRA),
	0x68: op((*Chip).iPLA),
	0x69: ld((*Chip).addrImmediate, (*Chip).iADC),
	0x6A: op((*Chip).iRORAcc),
	0x6B: ld((*Chip).addrImmediate, (*Chip).iARR),
	0x6C: op((*Chip).iJMPIndirect),
	0x6D: ld((*Chip).addrAbsolute, (*Chip).iADC),
	0x6E: rmwOp((*Chip).addrAbsolute, (*Chip).iROR),
	0x6F: rmwOp((*Chip).addrAbsolute, (*Chip).iRRA),
	0x70: op((*Chip).iBVS),
	0x71: ld((*Chip).addrIndirectY, (*Chip).iADC),
	0x72: hlt,
	0x73: rmwOp((*Chip).addrIndirectY, (*Chip).iRRA),
	0x74: addrOnly((*Chip).addrZPX, kLOAD_INSTRUCTION),
	0x75: ld((*Chip).addrZPX, (*Chip).iADC),
	0x76: rmwOp((*Chip).addrZPX, (*Chip).iROR),
	0x77: rmwOp((*Chip).addrZPX, (*Chip).iRRA),
	0x78: op((*Chip).iSEI),
	0x79: ld((*Chip).addrAbsoluteY, (*Chip).iADC),
	0x7A: nop1,
	0x7B: rmwOp((*Chip).addrAbsoluteY, (*Chip).iRRA),
	0x7C: addrOnly((*Chip).addrAbsoluteX, kLOAD_INSTRUCTION),
	0x7D: ld((*Chip).addrAbsoluteX, (*Chip).iADC),
	0x7E: rmwOp((*Chip).addrAbsoluteX, (*Chip).iROR),
	0x7F: rmwOp((*Chip).addrAbsoluteX, (*Chip).iRRA),
	0x80: addrOnly((*Chip).addrImmediate, kLOAD_INSTRUCTION), // NOP #i
	0x81: st((*Chip).addrIndirectX, regA),
	0x82: addrOnly((*Chip).addrImmediate, kLOAD_INSTRUCTION),
	0x83: st((*Chip).addrIndirectX, regAX), // SAX
	0x84: st((*Chip).addrZP, regY),
	0x85: st((*Chip).addrZP, regA),
	0x86: st((*Chip).addrZP, regX),
	0x87: st((*Chip).addrZP, regAX),
	0x88: op(func(p *Chip) (bool, error) { return p.loadRegister(&p.Y, p.Y-1) }), // DEY
	0x89: addrOnly((*Chip).addrImmediate, kLOAD_INSTRUCTION),
	0x8A: op(func(p *Chip) (bool, error) { return p.loadRegister(&p.A, p.X) }), // TXA
	0x8B: ld((*Chip).addrImmediate, (*Chip).iXAA),
	0x8C: st((*Chip).addrAbsolute, regY),
	0x8D: st((*Chip).addrAbsolute, regA),
	0x8E: st((*Chip).addrAbsolute, regX),
	0x8F: st((*Chip).addrAbsolute, regAX),
	0x90: op((*Chip).iBCC),
	0x91: st((*Chip).addrIndirectY, regA),
	0x92: hlt,
	0x93: unstable((*Chip).iAHX, (*Chip).addrIndirectY),
	0x94: st((*Chip).addrZPX, regY),
	0x95: st((*Chip).addrZPX, regA),
	0x96: st((*Chip).addrZPY, regX),
	0x97: st((*Chip).addrZPY, regAX),
	0x98: op(func(p *Chip) (bool, error) { return p.loadRegister(&p.A, p.Y) }), // TYA
	0x99: st((*Chip).addrAbsoluteY, regA),
	0x9A: op(func(p *Chip) (bool, error) { p.S = p.X; return true, nil }), // TXS
	0x9B: op((*Chip).iTAS),
	0x9C: unstable((*Chip).iSHY, (*Chip).addrAbsoluteX),
	0x9D: st((*Chip).addrAbsoluteX, regA),
	0x9E: unstable((*Chip).iSHX, (*Chip).addrAbsoluteY),
	0x9F: unstable((*Chip).iAHX, (*Chip).addrAbsoluteY),
	0xA0: ld((*Chip).addrImmediate, (*Chip).loadRegisterY),
	0xA1: ld((*Chip).addrIndirectX, (*Chip).loadRegisterA),
	0xA2: ld((*Chip).addrImmediate, (*Chip).loadRegisterX),
	0xA3: ld((*Chip).addrIndirectX, (*Chip).iLAX),
	0xA4: ld((*Chip).addrZP, (*Chip).loadRegisterY),
	0xA5: ld((*Chip).addrZP, (*Chip).loadRegisterA),
	0xA6: ld((*Chip).addrZP, (*Chip).loadRegisterX),
	0xA7: ld((*Chip).addrZP, (*Chip).iLAX),
	0xA8: op(func(p *Chip) (bool, error) { return p.loadRegister(&p.Y, p.A) }), // TAY
	0xA9: ld((*Chip).addrImmediate, (*Chip).loadRegisterA),
	0xAA: op(func(p *Chip) (bool, error) { return p.loadRegister(&p.X, p.A) }), // TAX
	0xAB: ld((*Chip).addrImmediate, (*Chip).iOAL),
	0xAC: ld((*Chip).addrAbsolute, (*Chip).loadRegisterY),
	0xAD: ld((*Chip).addrAbsolute, (*Chip).loadRegisterA),
	0xAE: ld((*Chip).addrAbsolute, (*Chip).loadRegisterX),
	0xAF: ld((*Chip).addrAbsolute, (*Chip).iLAX),
	0xB0: op((*Chip).iBCS),
	0xB1: ld((*Chip).addrIndirectY, (*Chip).loadRegisterA),
	0xB2: hlt,
	0xB3: ld((*Chip).addrIndirectY, (*Chip).iLAX),
	0xB4: ld((*Chip).addrZPX, (*Chip).loadRegisterY),
	0xB5: ld((*Chip).addrZPX, (*Chip).loadRegisterA),
	0xB6: ld((*Chip).addrZPY, (*Chip).loadRegisterX),
	0xB7: ld((*Chip).addrZPY, (*Chip).iLAX),
	0xB8: op((*Chip).iCLV),
	0xB9: ld((*Chip).addrAbsoluteY, (*Chip).loadRegisterA),
	0xBA: op(func(p *Chip) (bool, error) { return p.loadRegister(&p.X, p.S) }), // TSX
	0xBB: ld((*Chip).addrAbsoluteY, (*Chip).iLAS),
	0xBC: ld((*Chip).addrAbsoluteX, (*Chip).loadRegisterY),
	0xBD: ld((*Chip).addrAbsoluteX, (*Chip).loadRegisterA),
	0xBE: ld((*Chip).addrAbsoluteY, (*Chip).loadRegisterX),
	0xBF: ld((*Chip).addrAbsoluteY, (*Chip).iLAX),
	0xC0: ld((*Chip).addrImmediate, (*Chip).compareY),
	0xC1: ld((*Chip).addrIndirectX, (*Chip).compareA),
	0xC2: addrOnly((*Chip).addrImmediate, kLOAD_INSTRUCTION),
	0xC3: rmwOp((*Chip).addrIndirectX, (*Chip).iDCP),
	0xC4: ld((*Chip).addrZP, (*Chip).compareY),
	0xC5: ld((*Chip).addrZP, (*Chip).compareA),
	0xC6: rmwOp((*Chip).addrZP, (*Chip).iDEC),
	0xC7: rmwOp((*Chip).addrZP, (*Chip).iDCP),
	0xC8: op(func(p *Chip) (bool, error) { return p.loadRegister(&p.Y, p.Y+1) }), // INY
	0xC9: ld((*Chip).addrImmediate, (*Chip).compareA),
	0xCA: op(func(p *Chip) (bool, error) { return p.loadRegister(&p.X, p.X-1) }), // DEX
	0xCB: ld((*Chip).addrImmediate, (*Chip).iAXS),
	0xCC: ld((*Chip).addrAbsolute, (*Chip).compareY),
	0xCD: ld((*Chip).addrAbsolute, (*Chip).compareA),
	0xCE: rmwOp((*Chip).addrAbsolute, (*Chip).iDEC),
	0xCF: rmwOp((*Chip).addrAbsolute, (*Chip).iDCP),
	0xD0: op((*Chip).iBNE),
	0xD1: ld((*Chip).addrIndirectY, (*Chip).compareA),
	0xD2: hlt,
	0xD3: rmwOp((*Chip).addrIndirectY, (*Chip).iDCP),
	0xD4: addrOnly((*Chip).addrZPX, kLOAD_INSTRUCTION),
	0xD5: ld((*Chip).addrZPX, (*Chip).compareA),
	0xD6: rmwOp((*Chip).addrZPX, (*Chip).iDEC),
	0xD7: rmwOp((*Chip).addrZPX, (*Chip).iDCP),
	0xD8: op((*Chip).iCLD),
	0xD9: ld((*Chip).addrAbsoluteY, (*Chip).compareA),
	0xDA: nop1,
	0xDB: rmwOp((*Chip).addrAbsoluteY, (*Chip).iDCP),
	0xDC: addrOnly((*Chip).addrAbsoluteX, kLOAD_INSTRUCTION),
	0xDD: ld((*Chip).addrAbsoluteX, (*Chip).compareA),
	0xDE: rmwOp((*Chip).addrAbsoluteX, (*Chip).iDEC),
	0xDF: rmwOp((*Chip).addrAbsoluteX, (*Chip).iDCP),
	0xE0: ld((*Chip).addrImmediate, (*Chip).compareX),
	0xE1: ld((*Chip).addrIndirectX, (*Chip).iSBC),
	0xE2: addrOnly((*Chip).addrImmediate, kLOAD_INSTRUCTION),
	0xE3: rmwOp((*Chip).addrIndirectX, (*Chip).iISC),
	0xE4: ld((*Chip).addrZP, (*Chip).compareX),
	0xE5: ld((*Chip).addrZP, (*Chip).iSBC),
	0xE6: rmwOp((*Chip).addrZP, (*Chip).iINC),
	0xE7: rmwOp((*Chip).addrZP, (*Chip).iISC),
	0xE8: op(func(p *Chip) (bool, error) { return p.loadRegister(&p.X, p.X+1) }), // INX
	0xE9: ld((*Chip).addrImmediate, (*Chip).iSBC),
	0xEA: nop1,
	0xEB: ld((*Chip).addrImmediate, (*Chip).iSBC), // undocumented SBC alias
	0xEC: ld((*Chip).addrAbsolute, (*Chip).compareX),
	0xED: ld((*Chip).addrAbsolute, (*Chip).iSBC),
	0xEE: rmwOp((*Chip).addrAbsolute, (*Chip).iINC),
	0xEF: rmwOp((*Chip).addrAbsolute, (*Chip).iISC),
	0xF0: op((*Chip).iBEQ),
	0xF1: ld((*Chip).addrIndirectY, (*Chip).iSBC),
	0xF2: hlt,
	0xF3: rmwOp((*Chip).addrIndirectY, (*Chip).iISC),
	0xF4: addrOnly((*Chip).addrZPX, kLOAD_INSTRUCTION),
	0xF5: ld((*Chip).addrZPX, (*Chip).iSBC),
	0xF6: rmwOp((*Chip).addrZPX, (*Chip).iINC),
	0xF7: rmwOp((*Chip).addrZPX, (*Chip).iISC),
	0xF8: op((*Chip).iSED),
	0xF9: ld((*Chip).addrAbsoluteY, (*Chip).iSBC),
	0xFA: nop1,
	0xFB: rmwOp((*Chip).addrAbsoluteY, (*Chip).iISC),
	0xFC: addrOnly((*Chip).addrAbsoluteX, kLOAD_INSTRUCTION),
	0xFD: ld((*Chip).addrAbsoluteX, (*Chip).iSBC),
	0xFE: rmwOp((*Chip).addrAbsoluteX, (*Chip).iINC),
	0xFF: rmwOp((*Chip).addrAbsoluteX, (*Chip).iISC),
}

// loadInstruction abstracts all load instruction opcodes. The address mode function is used to get the proper values loaded into p.opAddr and p.opVal.
// Then on the same tick this is done the opFunc is called to load the appropriate register.
// Returns true when complete and any error.
func (p *Chip) loadInstruction(addrFunc func(instructionMode) (bool, error), opFunc func() (bool, error)) (bool, error) {
	var err error
	if !p.addrDone {
		p.addrDone, err = addrFunc(kLOAD_INSTRUCTION)
	}
	if err != nil {
		return true, err
	}
	if p.addrDone {
		return opFunc()
	}
	return false, nil
}

// rmwInstruction abstracts all rmw instruction opcodes. The address mode function is used to get the proper values loaded into p.opAddr and p.opVal.
// This assumes the address mode function also handle the extra write rmw instructions perform.
// Then on the next tick the opFunc is called to perform the final write operation.
// Returns true when complete and any error.
func (p *Chip) rmwInstruction(addrFunc func(instructionMode) (bool, error), opFunc func() (bool, error)) (bool, error) {
	var err error
	if !p.addrDone {
		p.addrDone, err = addrFunc(kRMW_INSTRUCTION)
		return false, err
	}
	// This tick is always the modify-write half of the RMW pair: the
	// addressing function already wrote the unmodified operand back
	// (SD1) on the previous tick.
	p.timer |= SD2
	return opFunc()
}

// storeInstruction abstracts all store instruction opcodes. The address mode function is used to get the proper values loaded into p.opAddr and p.opVal.
// Then on the next tick the val passed is stored to p.opAddr.
// Returns true when complete and any error.
func (p *Chip) storeInstruction(addrFunc func(instructionMode) (bool, error), val uint8) (bool, error) {
	var err error
	if !p.addrDone {
		p.addrDone, err = addrFunc(kSTORE_INSTRUCTION)
		return false, err
	}
	return p.store(val, p.opAddr)
}

// isTwoCycleInstruction is the predecode bit test for the two-cycle
// group: bbb == 010 with cc == 01 (immediate ALU ops), bbb == 000 with cc
// of 00 or 11, or one of the flag instructions and NOP (0xEA). It is a
// coarse test, not an exact cycle count: it also matches longer opcodes
// such as 0x00 BRK and 0x20 JSR, and misses two-cycle opcodes such as the
// implied transfers (0xAA TAX) and branches. isT0Pulse is its only caller.
func isTwoCycleInstruction(op uint8) bool {
	bbb := (op >> 2) & 0x07
	cc := op & 0x03
	if bbb == 0x02 && cc == 0x01 {
		return true
	}
	if bbb == 0x00 && (cc == 0x00 || cc == 0x03) {
		return true
	}
	switch op {
	case 0x18, 0x38, 0x58, 0x78, 0xB8, 0xD8, 0xF8, 0xEA:
		return true
	}
	return false
}

// isOneByteInstruction is the predecode bit test for the one-byte
// (implied/accumulator) group: any opcode with bit 3 set, plus 0x40 RTI
// and 0x60 RTS. It is a coarse test: bit 3 is also set on opcodes that
// take operand bytes (0x09 ORA #i, 0x0D ORA a), which it matches too.
// isT0Pulse uses it to tag the matching instruction's own retiring cycle
// with T0; nothing is set on the following instruction's cycles.
func isOneByteInstruction(op uint8) bool {
	if op&0x08 == 0x08 || op&0x0A == 0x0A {
		return true
	}
	return op == 0x40 || op == 0x60 // RTI, RTS
}
