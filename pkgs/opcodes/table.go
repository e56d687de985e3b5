package opcodes

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed table.json
var tableJSON []byte

//go:embed schema.json
var tableSchema string

const schemaURL = "table://opcodes.json"

// Signature declares, for one opcode, how many operands it takes and
// which role each position plays.
type Signature struct {
	Name   string
	Params []Role
}

// Arity returns the declared operand count.
func (s Signature) Arity() int {
	return len(s.Params)
}

// Table is the immutable opcode signature table. It is loaded once at
// process start and shared read-only by all validations.
type Table struct {
	language string
	header   string
	sigs     map[string]Signature
	names    []string
}

// tableDoc mirrors the embedded JSON layout.
type tableDoc struct {
	Language string `json:"language"`
	Header   string `json:"header"`
	Opcodes  []struct {
		Name   string   `json:"name"`
		Params []string `json:"params"`
	} `json:"opcodes"`
}

// Load validates the embedded signature table against its schema and
// builds the lookup structures. Any failure here is an internal error:
// the table ships with the binary and cannot be repaired at runtime.
func Load() (*Table, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compiling table schema: %w", err)
	}

	var raw interface{}
	if err := json.Unmarshal(tableJSON, &raw); err != nil {
		return nil, fmt.Errorf("decoding signature table: %w", err)
	}
	if err := schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validating signature table: %w", err)
	}

	var doc tableDoc
	if err := json.Unmarshal(tableJSON, &doc); err != nil {
		return nil, fmt.Errorf("decoding signature table: %w", err)
	}

	t := &Table{
		language: doc.Language,
		header:   doc.Header,
		sigs:     make(map[string]Signature, len(doc.Opcodes)),
		names:    make([]string, 0, len(doc.Opcodes)),
	}
	for _, op := range doc.Opcodes {
		if _, exists := t.sigs[op.Name]; exists {
			return nil, fmt.Errorf("duplicate opcode %s in signature table", op.Name)
		}
		params := make([]Role, len(op.Params))
		for i, p := range op.Params {
			role, err := roleFromString(p)
			if err != nil {
				return nil, fmt.Errorf("opcode %s: %w", op.Name, err)
			}
			params[i] = role
		}
		t.sigs[op.Name] = Signature{Name: op.Name, Params: params}
		t.names = append(t.names, op.Name)
	}
	sort.Strings(t.names)
	return t, nil
}

// compileSchema compiles the embedded JSON Schema
func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, strings.NewReader(tableSchema)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
}

// Language returns the language identifier for the document root.
func (t *Table) Language() string {
	return t.language
}

// Header returns the mandatory program marker.
func (t *Table) Header() string {
	return t.header
}

// Lookup finds the signature for an opcode token, comparing
// case-insensitively. The returned signature carries the canonical
// uppercase name.
func (t *Table) Lookup(opcode string) (Signature, bool) {
	sig, ok := t.sigs[strings.ToUpper(opcode)]
	return sig, ok
}

// Names returns all canonical opcode names in sorted order.
func (t *Table) Names() []string {
	return t.names
}

// Suggest finds the closest known opcode for an unknown token using
// fuzzy matching, or "" when nothing ranks.
func (t *Table) Suggest(opcode string) string {
	ranks := fuzzy.RankFindFold(opcode, t.names)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	return ""
}
