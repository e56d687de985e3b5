package ast

import "fmt"

// Program is the ordered instruction sequence produced by a single
// parse. It is append-only while parsing and frozen before emission.
type Program struct {
	headerValidated bool
	frozen          bool
	instructions    []Instruction
}

// NewProgram creates an empty program awaiting header validation.
func NewProgram() *Program {
	return &Program{}
}

// MarkHeaderValidated records that the mandatory program marker was seen.
// No instruction may be added before this.
func (p *Program) MarkHeaderValidated() {
	p.headerValidated = true
}

// HeaderValidated reports whether the program marker has been accepted.
func (p *Program) HeaderValidated() bool {
	return p.headerValidated
}

// Add assigns the next order number to inst and appends it. Orders
// across a program are exactly 1..K in acceptance order.
func (p *Program) Add(inst Instruction) error {
	if !p.headerValidated {
		return fmt.Errorf("instruction %s added before header validation", inst.Opcode)
	}
	if p.frozen {
		return fmt.Errorf("instruction %s added to frozen program", inst.Opcode)
	}
	inst.Order = len(p.instructions) + 1
	p.instructions = append(p.instructions, inst)
	return nil
}

// Freeze marks the program complete. Further Add calls fail.
func (p *Program) Freeze() {
	p.frozen = true
}

// Frozen reports whether the program has been sealed for emission.
func (p *Program) Frozen() bool {
	return p.frozen
}

// Instructions returns the accepted instructions in order.
func (p *Program) Instructions() []Instruction {
	return p.instructions
}

// Len returns the number of accepted instructions.
func (p *Program) Len() int {
	return len(p.instructions)
}
