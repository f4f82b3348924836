// Package irq defines the basic interfaces for working with a 6502
// family interrupt. A receiver of interrupts (IRQ/NMI) implements this
// interface so other components generating them can raise state without
// cross coupling component logic.
// NOTE: Even though chips distinguish level and edge type interrupts the
//
//	interface here doesn't; implementors account for that in their own
//	clock cycle management.
package irq

// Sender defines the interface for an IRQ source.
type Sender interface {
	// Raised indicates whether the interrupt is currently held high.
	Raised() bool
}

// SenderFunc adapts a plain function to Sender, the way http.HandlerFunc
// adapts a function to http.Handler. Useful for wiring a line straight
// off a closure (a test's manual toggle, a mapped hardware register bit)
// without declaring a named type for it.
type SenderFunc func() bool

// Raised calls f.
func (f SenderFunc) Raised() bool {
	return f()
}

// Latch is a level-held Sender: Set/Clear toggle the line and Raised
// reports its current state. Useful for wiring a mapped interrupt-enable
// register bit or a manual test toggle without a full Sender
// implementation of its own.
type Latch struct {
	held bool
}

// Set raises the line.
func (l *Latch) Set() {
	l.held = true
}

// Clear lowers the line.
func (l *Latch) Clear() {
	l.held = false
}

// Raised reports whether the line is currently held.
func (l *Latch) Raised() bool {
	return l.held
}
