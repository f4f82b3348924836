package cpu

import "fmt"

// addrImmediate implements immediate mode - #i
// returning the value in p.opVal
// NOTE: This has no W or RMW mode so the argument is ignored.
// Returns error on invalid tick.
// The bool return value is true if this tick ends address processing.
func (p *Chip) addrImmediate(instructionMode) (bool, error) {
	if p.timer != T2 {
		return true, InvalidMicroState{fmt.Sprintf("addrImmediate invalid timer %s, want T2", p.timer)}
	}
	// This mode consumed the opVal so increment the PC.
	p.PC++
	return true, nil
}

// addrZP implements Zero page mode - d
// returning the value in p.opVal and the address read in p.opAddr (so RW operations can do things without having to
// reread memory incorrectly to compute a storage address).
// If mode is RMW then another tick (tagged SD1) occurs that writes the
// unmodified value back to the same address before the instruction body
// performs its own write, matching the 6502's dummy-write-then-modify
// RMW bus pattern.
// Returns error on invalid tick.
// The bool return value is true if this tick ends address processing.
func (p *Chip) addrZP(mode instructionMode) (bool, error) {
	switch p.timer {
	case T2:
		// Already read the value but need to bump the PC
		p.opAddr = uint16(0x00FF & p.opVal)
		p.PC++
		// For a store we're done since we have the address needed.
		return mode == kSTORE_INSTRUCTION, nil
	case T3:
		p.opVal = p.read(p.opAddr)
		return mode != kRMW_INSTRUCTION, nil
	case T4:
		p.timer |= SD1
		p.write(p.opAddr, p.opVal)
		return true, nil
	default:
		return true, InvalidMicroState{fmt.Sprintf("addrZP invalid timer %s", p.timer)}
	}
}

// addrZPX implements Zero page plus X mode - d,x
// returning the value in p.opVal and the address read in p.opAddr (so RW operations can do things without having to
// reread memory incorrectly to compute a storage address).
// If mode is RMW then another tick will occur that writes the read value back to the same address due to how
// the 6502 operates.
// Returns error on invalid tick.
// The bool return value is true if this tick ends address processing.
func (p *Chip) addrZPX(mode instructionMode) (bool, error) {
	return p.addrZPXY(mode, p.X)
}

// addrZPY implements Zero page plus Y mode - d,y
// returning the value in p.opVal and the address read in p.opAddr (so RW operations can do things without having to
// reread memory incorrectly to compute a storage address).
// If mode is RMW then another tick will occur that writes the read value back to the same address due to how
// the 6502 operates.
// Returns error on invalid tick.
// The bool return value is true if this tick ends address processing.
func (p *Chip) addrZPY(mode instructionMode) (bool, error) {
	return p.addrZPXY(mode, p.Y)
}

// addrZPXY implements the details for addrZPX and addrZPY since they only differ based on the register used.
// See those functions for arg/return specifics. The SD1 tag marks the
// RMW dummy write-back cycle.
func (p *Chip) addrZPXY(mode instructionMode, reg uint8) (bool, error) {
	switch p.timer {
	case T2:
		// Already read the value but need to bump the PC
		p.opAddr = uint16(0x00FF & p.opVal)
		p.PC++
		return false, nil
	case T3:
		// Read from the ZP addr and then add the register for the real read later.
		_ = p.read(p.opAddr)
		// Does this as a uint8 so it wraps as needed.
		p.opAddr = uint16(uint8(p.opVal + reg))
		// For a store we're done since we have the address needed.
		return mode == kSTORE_INSTRUCTION, nil
	case T4:
		// Now read from the final address.
		p.opVal = p.read(p.opAddr)
		return mode != kRMW_INSTRUCTION, nil
	case T5:
		p.timer |= SD1
		p.write(p.opAddr, p.opVal)
		return true, nil
	default:
		return true, InvalidMicroState{fmt.Sprintf("addrZPXY invalid timer: %s", p.timer)}
	}
}

// addrIndirectX implements Zero page indirect plus X mode - (d,x)
// returning the value in p.opVal and the address read in p.opAddr (so RW operations can do things without having to
// reread memory incorrectly to compute a storage address).
// If mode is RMW then another tick will occur that writes the read value back to the same address due to how
// the 6502 operates.
// Returns error on invalid tick.
// The bool return value is true if this tick ends address processing.
func (p *Chip) addrIndirectX(mode instructionMode) (bool, error) {
	switch p.timer {
	case T2:
		// Already read the value but need to bump the PC
		p.opAddr = uint16(0x00FF & p.opVal)
		p.PC++
		return false, nil
	case T3:
		// Read from the ZP addr. We'll add the X register as well for the real read next.
		_ = p.read(p.opAddr)
		// Does this as a uint8 so it wraps as needed.
		p.opAddr = uint16(uint8(p.opVal + p.X))
		return false, nil
	case T4:
		// Read effective addr low byte.
		p.opVal = p.read(p.opAddr)
		// Setup opAddr for next read and handle wrapping
		p.opAddr = uint16(uint8(p.opAddr&0x00FF) + 1)
		return false, nil
	case T5:
		p.opAddr = (uint16(p.read(p.opAddr)) << 8) + uint16(p.opVal)
		// For a store we're done since we have the address needed.
		return mode == kSTORE_INSTRUCTION, nil
	case T6:
		p.opVal = p.read(p.opAddr)
		return mode != kRMW_INSTRUCTION, nil
	case T7:
		p.timer |= SD1
		p.write(p.opAddr, p.opVal)
		return true, nil
	default:
		return true, InvalidMicroState{fmt.Sprintf("addrIndirectX invalid timer: %s", p.timer)}
	}
}

// addrIndirectY implements Zero page indirect plus Y mode - (d),y
// returning the value in p.opVal and the address read in p.opAddr (so RW operations can do things without having to
// reread memory incorrectly to compute a storage address).
// If mode is RMW then another tick will occur that writes the read value back to the same address due to how
// the 6502 operates.
// Returns error on invalid tick.
// The bool return value is true if this tick ends address processing.
func (p *Chip) addrIndirectY(mode instructionMode) (bool, error) {
	switch p.timer {
	case T2:
		// Already read the value but need to bump the PC
		p.opAddr = uint16(0x00FF & p.opVal)
		p.PC++
		return false, nil
	case T3:
		// Read from the ZP addr to start building our pointer.
		p.opVal = p.read(p.opAddr)
		// Setup opAddr for next read and handle wrapping
		p.opAddr = uint16(uint8(p.opAddr&0x00FF) + 1)
		return false, nil
	case T4:
		// Compute effective address and then add Y to it (possibly wrongly).
		p.opAddr = (uint16(p.read(p.opAddr)) << 8) + uint16(p.opVal)
		// Add Y but do it in a way which won't page wrap (if needed)
		a := (p.opAddr & 0xFF00) + uint16(uint8(p.opAddr&0xFF)+p.Y)
		p.opVal = 0
		if a != (p.opAddr + uint16(p.Y)) {
			// Signal for next phase we got it wrong.
			p.opVal = 1
		}
		p.opAddr = a
		return false, nil
	case T5:
		crossed := p.opVal
		p.opVal = p.read(p.opAddr)

		// Check old opVal to see if it's non-zero. If so it means the Y addition
		// crosses a page boundary and we'll have to fixup.
		// For a load operation that means another tick to read the correct
		// address.
		// For RMW it doesn't matter (we always do the extra tick).
		// For Store we're done. Just fixup p.opAddr so the return value is correct.
		done := true
		if crossed != 0 {
			p.opAddr += 0x0100
			if mode == kLOAD_INSTRUCTION {
				done = false
			}
		}
		// For RMW it doesn't matter, we tick again.
		if mode == kRMW_INSTRUCTION {
			done = false
		}
		return done, nil
	case T6:
		// Optional (on load) in case adding Y went past a page boundary.
		p.opVal = p.read(p.opAddr)
		return mode != kRMW_INSTRUCTION, nil
	case T7:
		p.timer |= SD1
		p.write(p.opAddr, p.opVal)
		return true, nil
	default:
		return true, InvalidMicroState{fmt.Sprintf("addrIndirectY invalid timer: %s", p.timer)}
	}
}

// addrAbsolute implements absolute mode - a
// returning the value in p.opVal and the address read in p.opAddr (so RW operations can do things without having to
// reread memory incorrectly to compute a storage address).
// If mode is RMW then another tick will occur that writes the read value back to the same address due to how
// the 6502 operates.
// Returns error on invalid tick.
// The bool return value is true if this tick ends address processing.
func (p *Chip) addrAbsolute(mode instructionMode) (bool, error) {
	switch p.timer {
	case T2:
		// opVal has already been read so start constructing the address
		p.opAddr = 0x00FF & uint16(p.opVal)
		p.PC++
		return false, nil
	case T3:
		p.opVal = p.read(p.PC)
		p.PC++
		p.opAddr |= (uint16(p.opVal) << 8)
		return mode == kSTORE_INSTRUCTION, nil
	case T4:
		// For load and RMW instructions
		p.opVal = p.read(p.opAddr)
		return mode != kRMW_INSTRUCTION, nil
	case T5:
		p.timer |= SD1
		p.write(p.opAddr, p.opVal)
		return true, nil
	default:
		return true, InvalidMicroState{fmt.Sprintf("addrAbsolute invalid timer: %s", p.timer)}
	}
}

// addrAbsoluteX implements absolute plus X mode - a,x
// returning the value in p.opVal and the address read in p.opAddr (so RW operations can do things without having to
// reread memory incorrectly to compute a storage address).
// If mode is RMW then another tick will occur that writes the read value back to the same address due to how
// the 6502 operates.
// Returns error on invalid tick.
// The bool return value is true if this tick ends address processing.
func (p *Chip) addrAbsoluteX(mode instructionMode) (bool, error) {
	return p.addrAbsoluteXY(mode, p.X)
}

// addrAbsoluteY implements absolute plus Y mode - a,y
// returning the value in p.opVal and the address read in p.opAddr (so RW operations can do things without having to
// reread memory incorrectly to compute a storage address).
// If mode is RMW then another tick will occur that writes the read value back to the same address due to how
// the 6502 operates.
// Returns error on invalid tick.
// The bool return value is true if this tick ends address processing.
func (p *Chip) addrAbsoluteY(mode instructionMode) (bool, error) {
	return p.addrAbsoluteXY(mode, p.Y)
}

// addrAbsoluteXY implements the details for addrAbsoluteX and addrAbsoluteY since they only differ based on the register used.
// See those functions for arg/return specifics.
func (p *Chip) addrAbsoluteXY(mode instructionMode, reg uint8) (bool, error) {
	switch p.timer {
	case T2:
		// opVal has already been read so start constructing the address
		p.opAddr = 0x00FF & uint16(p.opVal)
		p.PC++
		return false, nil
	case T3:
		p.opVal = p.read(p.PC)
		p.PC++
		p.opAddr |= (uint16(p.opVal) << 8)
		// Add the register but do it in a way which won't page wrap (if needed)
		a := (p.opAddr & 0xFF00) + uint16(uint8(p.opAddr&0x00FF)+reg)
		p.opVal = 0
		if a != (p.opAddr + uint16(reg)) {
			// Signal for next phase we got it wrong.
			p.opVal = 1
		}
		p.opAddr = a
		return false, nil
	case T4:
		crossed := p.opVal
		p.opVal = p.read(p.opAddr)
		// Check old opVal to see if it's non-zero. If so it means the register addition
		// crosses a page boundary and we'll have to fixup.
		// For a load operation that means another tick to read the correct
		// address.
		// For RMW it doesn't matter (we always do the extra tick).
		// For Store we're done. Just fixup p.opAddr so the return value is correct.
		done := true
		if crossed != 0 {
			p.opAddr += 0x0100
			if mode == kLOAD_INSTRUCTION {
				done = false
			}
		}
		// For RMW it doesn't matter, we tick again.
		if mode == kRMW_INSTRUCTION {
			done = false
		}
		return done, nil
	case T5:
		// Optional (on load) in case adding the register went past a page boundary.
		p.opVal = p.read(p.opAddr)
		return mode != kRMW_INSTRUCTION, nil
	case T6:
		p.timer |= SD1
		p.write(p.opAddr, p.opVal)
		return true, nil
	default:
		return true, InvalidMicroState{fmt.Sprintf("addrAbsoluteXY invalid timer: %s", p.timer)}
	}
}
