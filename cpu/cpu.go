// Package cpu implements a cycle-accurate MOS 6502 core as used in the
// NES 2A03 (NMOS 6502 minus decimal-mode ALU support). Cycle advances
// the processor by exactly one clock cycle: at most one bus transaction,
// full micro-architectural state update.
package cpu

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/hollowclock/nes6502/irq"
	"github.com/hollowclock/nes6502/memory"
)

// Chip is a single fixed-size 65xx processor record. No entity inside it
// is dynamically allocated; it's passed around by mutable reference and
// owned entirely by whatever drives Cycle().
type Chip struct {
	A   uint8  // Accumulator register.
	X   uint8  // X register.
	Y   uint8  // Y register.
	S   uint8  // Stack pointer, implicitly based at $0100.
	P   uint8  // Status register.
	PC  uint16 // Program counter.
	IR  uint8  // Instruction register: the opcode currently executing.
	MDR uint8  // Memory data register: last byte read from the bus.

	cpuType CPUType
	bus     memory.Bus
	irq     irq.Sender
	nmi     irq.Sender
	rdy     irq.Sender

	op     uint8  // Alias of IR kept for the internal tick machine's own use.
	opVal  uint8  // The byte argument after the opcode (most instructions have this).
	opTick int    // Tick number for internal operation of opcode.
	opAddr uint16 // Address computed during opcode to be used for read/write (MAR/DP).
	timer  Timer  // Live micro-cycle tag set for the tick currently executing.

	rw  bool // Read/write line: true = read.
	dst DST  // Which latch the next read routes into.

	opDone            bool // Stays false until the current opcode has completed all ticks.
	addrDone          bool // Stays false until the current opcode has completed any addressing mode ticks.
	skipInterrupt     bool // Skip interrupt processing on the next instruction.
	prevSkipInterrupt bool // Previous instruction skipped interrupt processing (so we shouldn't).
	irqRaised         irqType
	runningInterrupt  bool // Whether we're running an interrupt setup or an opcode.
	reset             bool // Whether a Reset sequence is in progress.
	halted            bool // If stopped due to a halt instruction.
	haltOpcode        uint8
}

// ChipDef defines a 65xx processor.
type ChipDef struct {
	// Cpu is the distinct cpu type for this implementation (stock 6502, 6510, 65C02, etc).
	Cpu CPUType
	// Bus is the memory interface for this implementation.
	Bus memory.Bus
	// Irq is an optional IRQ source to trigger the IRQ line.
	Irq irq.Sender
	// Nmi is an optional IRQ source to trigger the NMI line (acts as edge trigger even though real HW is level).
	Nmi irq.Sender
	// Rdy is an optional IRQ source to trigger the RDY line (which halts cycle advance). Not an interrupt but acts the same.
	Rdy irq.Sender
}

// Init creates a new 65xx CPU of the type requested and returns it in
// powered-on state. If irq/nmi/rdy are non-nil they're checked on each
// Cycle() call and interrupt/hold the processor accordingly. The bus
// passed in is also powered on.
func Init(cpu *ChipDef) (*Chip, error) {
	if cpu.Cpu <= CPU_UNIMPLMENTED || cpu.Cpu >= CPU_MAX {
		return nil, InvalidMicroState{fmt.Sprintf("CPU type %d is invalid", cpu.Cpu)}
	}
	p := &Chip{
		cpuType: cpu.Cpu,
		bus:     cpu.Bus,
		irq:     cpu.Irq,
		nmi:     cpu.Nmi,
		rdy:     cpu.Rdy,
	}
	if err := p.PowerOn(); err != nil {
		return nil, err
	}
	return p, nil
}

// PowerOn resets the CPU to power-on state, which isn't well defined.
// Registers are random, stack is at random (though visual6502 claims it's
// 0xFD due to a push P/PC in reset), and P is cleared with interrupts
// disabled and decimal mode random (for NMOS). PC is loaded from the
// reset vector.
func (p *Chip) PowerOn() error {
	rand.Seed(time.Now().UnixNano())
	p.bus.PowerOn()
	flags := P_S1
	if p.cpuType == CPU_NMOS || p.cpuType == CPU_NMOS_6510 {
		if rand.Float32() > 0.5 {
			flags |= P_DECIMAL
		}
	}
	p.A = uint8(rand.Intn(256))
	p.X = uint8(rand.Intn(256))
	p.Y = uint8(rand.Intn(256))
	p.S = uint8(rand.Intn(256))
	p.P = flags
	for {
		done, err := p.Reset()
		if err != nil {
			return err
		}
		if done {
			break
		}
	}
	return nil
}

// Reset is similar to PowerOn except the main registers aren't touched.
// The stack moves 3 bytes as if PC/P had been pushed. Flags aren't
// disturbed except for interrupts being disabled, and PC is loaded from
// the reset vector. Takes 6 cycles once triggered; returns true when the
// sequence is complete.
func (p *Chip) Reset() (bool, error) {
	if !p.reset {
		p.reset = true
		p.opTick = 0
	}
	p.opTick++
	switch {
	case p.opTick < 1 || p.opTick > 6:
		return true, InvalidMicroState{fmt.Sprintf("Reset: bad opTick: %d", p.opTick)}
	case p.opTick == 1:
		_ = p.read(p.PC)
		p.P |= P_INTERRUPT
		p.halted = false
		p.haltOpcode = 0x00
		p.irqRaised = kIRQ_NONE
		return false, nil
	case p.opTick >= 2 && p.opTick <= 4:
		p.S--
		return false, nil
	case p.opTick == 5:
		p.opVal = p.read(RESET_VECTOR)
		return false, nil
	}
	// case p.opTick == 6:
	p.PC = (uint16(p.read(RESET_VECTOR+1)) << 8) + uint16(p.opVal)
	p.reset = false
	p.opTick = 0
	return true, nil
}

// Cycle advances the processor by exactly one clock cycle: at most one
// bus transaction, full micro-architectural state update. It returns
// InvalidMicroState if the (IR, TIMER) pair has no defined successor
// (a programmer error — the chip is considered halted from that point
// on) and Halted if a JAM opcode is executing (a legal architectural
// condition, clearable only by Reset).
func (p *Chip) Cycle() error {
	if p.rdy != nil && p.rdy.Raised() {
		p.opDone = false
		return nil
	}

	if p.irqRaised < kIRQ_NONE || p.irqRaised >= kIRQ_MAX {
		p.haltOpcode = p.op
		p.halted = true
		p.opDone = true
		return InvalidMicroState{fmt.Sprintf("irqRaised is invalid: %d", p.irqRaised)}
	}
	if p.halted {
		p.opDone = true
		return Halted{p.haltOpcode}
	}

	p.opTick++
	p.timer = tickTimer(p.opTick)

	var irqLine, nmiLine bool
	if p.irq != nil {
		irqLine = p.irq.Raised()
	}
	if p.nmi != nil {
		nmiLine = p.nmi.Raised()
	}
	if irqLine || nmiLine {
		switch p.irqRaised {
		case kIRQ_NONE:
			p.irqRaised = kIRQ_IRQ
			if nmiLine {
				p.irqRaised = kIRQ_NMI
			}
		case kIRQ_IRQ:
			if nmiLine {
				p.irqRaised = kIRQ_NMI
			}
		}
	}

	switch {
	case p.opTick == 1:
		p.op = p.read(p.PC)
		p.IR = p.op
		p.opDone = false
		p.addrDone = false
		if p.irqRaised == kIRQ_NONE || p.skipInterrupt {
			p.PC++
			p.runningInterrupt = false
		}
		if p.irqRaised != kIRQ_NONE && !p.skipInterrupt {
			p.runningInterrupt = true
		}
		return nil
	case p.opTick == 2:
		p.opVal = p.read(p.PC)
		p.MDR = p.opVal
		p.prevSkipInterrupt = false
		if p.skipInterrupt {
			p.skipInterrupt = false
			p.prevSkipInterrupt = true
		}
	case p.opTick > 8:
		p.haltOpcode = p.op
		p.halted = true
		p.opDone = true
		return InvalidMicroState{fmt.Sprintf("opTick %d too large (> 8)", p.opTick)}
	}

	var err error
	if p.runningInterrupt {
		addr := IRQ_VECTOR
		if p.irqRaised == kIRQ_NMI {
			addr = NMI_VECTOR
		}
		p.opDone, err = p.runInterrupt(addr, true)
	} else {
		p.opDone, err = p.processOpcode()
	}

	if p.halted {
		p.haltOpcode = p.op
		p.opDone = true
		return Halted{p.op}
	}
	if err != nil {
		p.haltOpcode = p.op
		p.halted = true
		p.opDone = true
		return err
	}
	if p.opDone {
		p.timer |= TPLUS
	}
	if p.isT0Pulse() {
		p.timer |= T0
	}
	if p.opDone {
		p.opTick = 0
		if p.runningInterrupt {
			p.irqRaised = kIRQ_NONE
		}
		p.runningInterrupt = false
	}
	return nil
}

// InMiddleOfInstruction reports whether a Cycle() boundary falls inside
// an instruction still in flight. Equivalent to "the next Cycle() will not
// start a new opcode".
func (p *Chip) InMiddleOfInstruction() bool {
	return p.opTick != 0
}

// Timer returns the micro-cycle tag set describing the position within
// the instruction currently in flight, including any SD1/SD2/V0 tags the
// addressing, instruction, or interrupt logic latched onto it this cycle.
func (p *Chip) Timer() Timer {
	return p.timer
}

// isT0Pulse reports whether T0 is ORed onto this cycle's timer: true on
// the cycle an instruction retires (not the cycle before it) when its
// opcode matches isOneByteInstruction or isTwoCycleInstruction. T0 is a
// tag for observers of Timer(); no dispatch or interrupt logic tests it.
func (p *Chip) isT0Pulse() bool {
	if !p.opDone {
		return false
	}
	return isOneByteInstruction(p.op) || isTwoCycleInstruction(p.op)
}

// MAR returns the operand address latched by the current instruction
// (the same latch DP returns). It is not updated by opcode fetches,
// operand-byte fetches or stack accesses, so on those cycles it does not
// name the address on the bus.
func (p *Chip) MAR() uint16 { return p.opAddr }

// DP returns the data-pointer latch (operand-address accumulator built
// up across cycles).
func (p *Chip) DP() uint16 { return p.opAddr }

// RW returns the read/write line state for the cycle just executed; true
// means the cycle was a bus read.
func (p *Chip) RW() bool { return p.rw }

// CPUType returns the variant this chip was configured as.
func (p *Chip) CPUType() CPUType { return p.cpuType }

// read performs a bus read, latching the RW line true and the byte read
// into MDR for observability.
func (p *Chip) read(addr uint16) uint8 {
	p.rw = true
	p.MDR = p.bus.Read(addr)
	return p.MDR
}

// write performs a bus write, latching the RW line false for observability.
func (p *Chip) write(addr uint16, val uint8) {
	p.rw = false
	p.bus.Write(addr, val)
}

// zeroCheck sets the Z flag based on the register contents.
func (p *Chip) zeroCheck(reg uint8) {
	p.P &^= P_ZERO
	if reg == 0 {
		p.P |= P_ZERO
	}
}

// negativeCheck sets the N flag based on the register contents.
func (p *Chip) negativeCheck(reg uint8) {
	p.P &^= P_NEGATIVE
	if (reg & P_NEGATIVE) == 0x80 {
		p.P |= P_NEGATIVE
	}
}

// carryCheck sets the C flag if the result of an 8 bit ALU operation
// (passed as a 16 bit result) caused a carry out by generating a value
// >= 0x100. In some BCD overflow cases the value passed can be as large
// as 0x200; still a carry.
func (p *Chip) carryCheck(res uint16) {
	p.P &^= P_CARRY
	if res >= 0x100 {
		p.P |= P_CARRY
	}
}

// overflowCheck sets the V flag if the ALU operation caused a two's
// complement sign change. See http://www.righto.com/2012/12/the-6502-overflow-flag-explained.html
func (p *Chip) overflowCheck(reg, arg, res uint8) {
	p.P &^= P_OVERFLOW
	if (reg^res)&(arg^res)&0x80 != 0x00 {
		p.P |= P_OVERFLOW
	}
}
