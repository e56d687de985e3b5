package generator

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ippcode/ippc/pkgs/ast"
)

// Write serializes a frozen program as the XML document: a standard
// declaration, a program root carrying the language attribute, one
// instruction element per accepted instruction in ascending order, and
// one argN child per argument in ascending position. String content is
// escaped only through XML's own escaping; the backslash escapes were
// already decoded during classification.
func Write(w io.Writer, program *ast.Program, language string) error {
	if !program.Frozen() {
		return fmt.Errorf("emitting document from unfrozen program")
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "\t")
	xw := &tokenWriter{enc: enc}

	root := element("program", attr("language", language))
	xw.token(root)
	for _, inst := range program.Instructions() {
		instEl := element("instruction",
			attr("order", strconv.Itoa(inst.Order)),
			attr("opcode", inst.Opcode),
		)
		xw.token(instEl)
		for _, arg := range inst.Args {
			argEl := element("arg"+strconv.Itoa(arg.Position),
				attr("type", arg.Category.XMLType()))
			xw.token(argEl)
			xw.token(xml.CharData(arg.Text()))
			xw.token(argEl.End())
		}
		xw.token(instEl.End())
	}
	xw.token(root.End())

	if xw.err != nil {
		return xw.err
	}
	return enc.Flush()
}

// Generate renders the document to a string.
func Generate(program *ast.Program, language string) (string, error) {
	var b strings.Builder
	if err := Write(&b, program, language); err != nil {
		return "", err
	}
	return b.String(), nil
}

// tokenWriter funnels encoder tokens through a sticky error so the
// emission loop stays flat.
type tokenWriter struct {
	enc *xml.Encoder
	err error
}

func (w *tokenWriter) token(t xml.Token) {
	if w.err != nil {
		return
	}
	w.err = w.enc.EncodeToken(t)
}

func element(name string, attrs ...xml.Attr) xml.StartElement {
	return xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs}
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}
