// hand_asm takes a filename and produces a bin file from parsing the
// output as a hand assembled file of the form:
//
// XXXX OP A1 A2
//
// Where XXXX is the address field and OP is the opcode and A1,A2 are
// then optional params as needed. A line with more than three byte
// tokens after the address is rejected.
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/hollowclock/nes6502/cpu"
	"github.com/hollowclock/nes6502/memory"
)

var (
	offset = flag.Int("offset", 0x0000, "Offset to start writing assembled data. Everything prior is zero filled.")
	verify = flag.Int("verify", 0, "If non-zero, load the assembled output into an NMOS-Ricoh core at this start PC and step it for -verify_cycles cycles as a smoke test.")
	cycles = flag.Int("verify_cycles", 1000, "Number of cycles to run under -verify before reporting the final register state.")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 2 {
		log.Fatalf("Invalid command: %s <input> <output>", os.Args[0])
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	b, err := exec.Command("/bin/sh", "-c", fmt.Sprintf(`egrep ^[0-9A-F][0-9A-F][0-9A-F][0-9A-F] %s | sed -e 's:\t.*$::' -e 's:(\*).*$::'| cut -c6-`, fn)).Output()
	if err != nil {
		log.Fatalf("Can't open and process %q for input - %v", fn, err)
	}
	scanner := bufio.NewScanner(bytes.NewReader(b))
	var output []byte
	for i := 0; i < *offset; i++ {
		output = append(output, 0x00)
	}
	l := 0
	for scanner.Scan() {
		t := scanner.Text()
		l++
		// Should be 1-3 tokens
		toks := strings.Split(t, " ")
		if len(toks) > 3 {
			log.Fatalf("Invalid line %d - %q", l, t)
		}
		for _, v := range toks {
			b, err := strconv.ParseUint(v, 16, 8)
			if err != nil {
				log.Fatalf("Can't process input line %d %q - %v", l, t, err)
			}
			output = append(output, byte(b))
		}
	}
	of, err := os.Create(out)
	if err != nil {
		log.Fatalf("Can't open output %q - %v", out, err)
	}
	n, err := of.Write(output)
	if got, want := n, len(output); got != want {
		log.Fatalf("Short write to %q. Got %d and want %d", out, got, want)
	}
	if err != nil {
		log.Fatalf("Got error writing to %q - %v", out, err)
	}
	if err := of.Close(); err != nil {
		log.Fatalf("Error closing %q - %v", out, err)
	}

	if *verify != 0 {
		if err := runVerify(output, uint16(*verify), *cycles); err != nil {
			log.Fatalf("Verify failed: %v", err)
		}
	}
}

// runVerify loads the assembled bytes into a flat RAM bus with the reset
// vector pointed at startPC, then steps an NMOS-Ricoh (NES 2A03) core for
// the requested number of cycles, reporting any halt or invalid
// micro-state encountered and the final register snapshot. It's a smoke
// test, not a disassembler: it doesn't check results against expected
// register values, just that the assembled bytes form a sequence the
// core can execute without jamming or erroring out.
func runVerify(program []byte, startPC uint16, cycles int) error {
	bus, err := memory.NewFlatRAM(1 << 16)
	if err != nil {
		return fmt.Errorf("allocating RAM: %w", err)
	}
	chip, err := cpu.Init(&cpu.ChipDef{Cpu: cpu.CPU_NMOS_RICOH, Bus: bus})
	if err != nil {
		return fmt.Errorf("initializing core: %w", err)
	}

	// Init powers on the bus, which randomizes RAM, so the program and the
	// reset vector are loaded afterwards and PC is pointed at startPC.
	for i, b := range program {
		bus.Write(uint16(i), b)
	}
	bus.Write(cpu.RESET_VECTOR, uint8(startPC&0xFF))
	bus.Write(cpu.RESET_VECTOR+1, uint8(startPC>>8))
	chip.PC = startPC

	for i := 0; i < cycles; i++ {
		if err := chip.Cycle(); err != nil {
			if _, halted := err.(cpu.Halted); halted {
				log.Printf("halted after %d cycles: %v", i, err)
				break
			}
			return fmt.Errorf("cycle %d: %w", i, err)
		}
	}
	log.Printf("verify ok: PC=%.4X A=%.2X X=%.2X Y=%.2X S=%.2X P=%.2X", chip.PC, chip.A, chip.X, chip.Y, chip.S, chip.P)
	return nil
}
