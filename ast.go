package main

import (
	"strconv"
	"strings"
)

// Node is any AST node. Statements are Nodes; expressions are Exprs.
type Node interface {
	node()
}

// Expr is a node that yields a value.
type Expr interface {
	Node
	expr()
}

type (
	// NumberLit is an integer literal.
	NumberLit struct {
		Value int64
	}

	// Ident is a variable reference, resolved while parsing.
	Ident struct {
		Name string
		Var  *Var
	}

	// Null stands in for an empty statement or declaration.
	Null struct{}

	// Call calls a function by name. The grammar only produces calls
	// without arguments.
	Call struct {
		Name string
		Args []Expr
	}

	AddrOf struct {
		Operand Expr
	}

	Deref struct {
		Operand Expr
	}

	Assign struct {
		LHS, RHS Expr
	}

	// Binary is an arithmetic operator: one of + - * / %.
	Binary struct {
		Op       string
		LHS, RHS Expr
	}

	// Equal compares two values for equality, or inequality when Not is set.
	Equal struct {
		Not      bool
		LHS, RHS Expr
	}

	Compound struct {
		Stmts []Node
	}

	If struct {
		Cond Expr
		Then Node
		Else Node // nil when absent
	}

	Return struct {
		Value Expr
	}

	// FuncDef is a function definition. Vars holds every parameter and local
	// declared in the function, in declaration order; Params is the prefix
	// of Vars that are parameters.
	FuncDef struct {
		Name   string
		Params []*Var
		Body   *Compound
		Vars   []*Var
	}

	Root struct {
		Funcs []*FuncDef
	}
)

func (*NumberLit) node() {}
func (*Ident) node()     {}
func (*Null) node()      {}
func (*Call) node()      {}
func (*AddrOf) node()    {}
func (*Deref) node()     {}
func (*Assign) node()    {}
func (*Binary) node()    {}
func (*Equal) node()     {}
func (*Compound) node()  {}
func (*If) node()        {}
func (*Return) node()    {}
func (*FuncDef) node()   {}
func (*Root) node()      {}

func (*NumberLit) expr() {}
func (*Ident) expr()     {}
func (*Null) expr()      {}
func (*Call) expr()      {}
func (*AddrOf) expr()    {}
func (*Deref) expr()     {}
func (*Assign) expr()    {}
func (*Binary) expr()    {}
func (*Equal) expr()     {}

// ToSExpr renders a node as an s-expression. Identifiers carry the slot of
// the Var they resolved to, so two identifiers print alike only when they
// name the same declaration.
func ToSExpr(n Node) string {
	var b strings.Builder
	writeSExpr(&b, n)
	return b.String()
}

func writeSExpr(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case nil:
		b.WriteString("nil")
	case *NumberLit:
		b.WriteString("(num " + strconv.FormatInt(n.Value, 10) + ")")
	case *Ident:
		b.WriteString("(ident " + strconv.Quote(n.Name) + " " + strconv.Itoa(n.Var.Slot) + ")")
	case *Null:
		b.WriteString("(null)")
	case *Call:
		b.WriteString("(call " + strconv.Quote(n.Name))
		for _, arg := range n.Args {
			b.WriteByte(' ')
			writeSExpr(b, arg)
		}
		b.WriteByte(')')
	case *AddrOf:
		writeList(b, "addr", n.Operand)
	case *Deref:
		writeList(b, "deref", n.Operand)
	case *Assign:
		writeList(b, "assign", n.LHS, n.RHS)
	case *Binary:
		writeList(b, "binary "+strconv.Quote(n.Op), n.LHS, n.RHS)
	case *Equal:
		if n.Not {
			writeList(b, "ne", n.LHS, n.RHS)
		} else {
			writeList(b, "eq", n.LHS, n.RHS)
		}
	case *Compound:
		writeList(b, "block", n.Stmts...)
	case *If:
		if n.Else == nil {
			writeList(b, "if", n.Cond, n.Then)
		} else {
			writeList(b, "if", n.Cond, n.Then, n.Else)
		}
	case *Return:
		writeList(b, "return", n.Value)
	case *FuncDef:
		b.WriteString("(func " + strconv.Quote(n.Name) + " ")
		writeVars(b, "params", n.Params)
		b.WriteByte(' ')
		writeVars(b, "vars", n.Vars)
		b.WriteByte(' ')
		writeSExpr(b, n.Body)
		b.WriteByte(')')
	case *Root:
		b.WriteString("(program")
		for _, f := range n.Funcs {
			b.WriteByte(' ')
			writeSExpr(b, f)
		}
		b.WriteByte(')')
	default:
		b.WriteString("(unknown)")
	}
}

func writeList(b *strings.Builder, head string, items ...Node) {
	b.WriteString("(" + head)
	for _, item := range items {
		b.WriteByte(' ')
		writeSExpr(b, item)
	}
	b.WriteByte(')')
}

func writeVars(b *strings.Builder, head string, vars []*Var) {
	b.WriteString("(" + head)
	for _, v := range vars {
		b.WriteString(" (var " + strconv.Quote(v.Name) + " " + strconv.Itoa(v.Slot) + " " + strconv.Quote(v.Type.String()) + ")")
	}
	b.WriteByte(')')
}
