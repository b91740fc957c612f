package codegen

import (
	"strconv"
	"strings"
)

// expr is a node in the literal tree the renderer composes before
// printing. Each constructor below covers one shape of the target
// grammar, so escaping and formatting decisions live in exactly one
// place.
type expr interface {
	emit(b *strings.Builder, indent int)
}

// symbolExpr is a bare identifier or qualified enum symbol.
type symbolExpr string

func symbol(s string) expr {
	return symbolExpr(s)
}

func (e symbolExpr) emit(b *strings.Builder, _ int) {
	b.WriteString(string(e))
}

// boolExpr is a bool literal.
type boolExpr bool

func (e boolExpr) emit(b *strings.Builder, _ int) {
	b.WriteString(strconv.FormatBool(bool(e)))
}

// stringExpr is a string literal. Content always goes through
// strconv.Quote, so no input can terminate the literal early; invalid
// UTF-8 sequences come out as byte escapes and still parse.
type stringExpr string

func quoted(s string) expr {
	return stringExpr(s)
}

func (e stringExpr) emit(b *strings.Builder, _ int) {
	b.WriteString(strconv.Quote(string(e)))
}

// callExpr is a single-line call such as a variant constructor or the
// optional-present wrapper.
type callExpr struct {
	fn   string
	args []expr
}

func call(fn string, args ...expr) expr {
	return callExpr{fn: fn, args: args}
}

func (e callExpr) emit(b *strings.Builder, indent int) {
	b.WriteString(e.fn)
	b.WriteByte('(')
	for i, arg := range e.args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.emit(b, indent)
	}
	b.WriteByte(')')
}

// seqExpr is a single-line ordered sequence literal.
type seqExpr struct {
	elemType string
	elems    []expr
}

func sequence(elemType string, elems ...expr) expr {
	return seqExpr{elemType: elemType, elems: elems}
}

func (e seqExpr) emit(b *strings.Builder, indent int) {
	b.WriteString("[]")
	b.WriteString(e.elemType)
	b.WriteByte('{')
	for i, elem := range e.elems {
		if i > 0 {
			b.WriteString(", ")
		}
		elem.emit(b, indent)
	}
	b.WriteByte('}')
}

// structField is one field of a struct literal.
type structField struct {
	name  string
	value expr
}

// structExpr is a multi-line struct literal with one field per line.
type structExpr struct {
	typeName string
	fields   []structField
}

func (e structExpr) emit(b *strings.Builder, indent int) {
	b.WriteString(e.typeName)
	b.WriteString("{\n")
	for _, f := range e.fields {
		writeIndent(b, indent+1)
		b.WriteString(f.name)
		b.WriteString(": ")
		f.value.emit(b, indent+1)
		b.WriteString(",\n")
	}
	writeIndent(b, indent)
	b.WriteByte('}')
}

func writeIndent(b *strings.Builder, indent int) {
	for i := 0; i < indent; i++ {
		b.WriteByte('\t')
	}
}

// some wraps v in the explicit optional-present marker.
func some(v expr) expr {
	return call("embedded.Some", v)
}

// none is the explicit optional-absent marker for the given element type.
func none(elemType string) expr {
	return symbol("embedded.None[" + elemType + "]()")
}

// printExpr prints a composed tree as source text.
func printExpr(e expr) string {
	var b strings.Builder
	e.emit(&b, 0)
	return b.String()
}
