package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/ippcode/ippc/pkgs/ast"
)

// canonicalProgram is the intermediate form for deterministic program
// snapshots. Field order and canonical CBOR encoding guarantee that
// the same accepted program always produces identical bytes, so
// tooling can diff runs by digest alone.
type canonicalProgram struct {
	Version  uint8 // snapshot format version (for forward compatibility)
	Language string
	Steps    []canonicalInstruction
}

type canonicalInstruction struct {
	Order  int
	Opcode string
	Args   []canonicalArg
}

type canonicalArg struct {
	Position int
	Type     string
	Text     string
}

// Snapshot encodes a frozen program in canonical CBOR.
func Snapshot(program *ast.Program, language string) ([]byte, error) {
	if !program.Frozen() {
		return nil, fmt.Errorf("snapshotting unfrozen program")
	}

	cp := canonicalProgram{
		Version:  1,
		Language: language,
		Steps:    make([]canonicalInstruction, 0, program.Len()),
	}
	for _, inst := range program.Instructions() {
		ci := canonicalInstruction{
			Order:  inst.Order,
			Opcode: inst.Opcode,
			Args:   make([]canonicalArg, 0, len(inst.Args)),
		}
		for _, arg := range inst.Args {
			ci.Args = append(ci.Args, canonicalArg{
				Position: arg.Position,
				Type:     arg.Category.XMLType(),
				Text:     arg.Text(),
			})
		}
		cp.Steps = append(cp.Steps, ci)
	}

	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("creating canonical encoder: %w", err)
	}
	data, err := encMode.Marshal(cp)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// SnapshotDigest returns the hex SHA-256 of an encoded snapshot.
func SnapshotDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
