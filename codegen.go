package main

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

// argRegs are the integer argument registers of the System V calling
// convention, in order.
var argRegs = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

const (
	slotSize   = 8
	frameAlign = 16
)

// codegen walks the tree once and emits Intel-syntax x86-64. Every
// expression leaves exactly one value pushed on the machine stack; every
// statement leaves the stack as it found it.
type codegen struct {
	w      io.Writer
	target Target

	out   *bytes.Buffer // text of the function being generated
	label int           // last label number handed out; never reset
	depth int           // values currently pushed by the function body
}

// Generate writes the assembly for root to w.
//
// Each function is generated into a buffer and only written once it has
// generated completely, so on error w holds the preamble and the functions
// that preceded the failing one.
func Generate(w io.Writer, root *Root, target Target) (err error) {
	defer recoverError(&err)
	g := &codegen{w: w, target: target}
	return g.genProgram(root)
}

func (g *codegen) emit(format string, args ...any) {
	g.out.WriteString("  ")
	fmt.Fprintf(g.out, format, args...)
	g.out.WriteByte('\n')
}

func (g *codegen) emitLabel(name string) {
	g.out.WriteString(name)
	g.out.WriteString(":\n")
}

func (g *codegen) emitDirective(format string, args ...any) {
	g.out.WriteByte('.')
	fmt.Fprintf(g.out, format, args...)
	g.out.WriteByte('\n')
}

func (g *codegen) newLabel() string {
	g.label++
	return fmt.Sprintf(".LBB%d", g.label)
}

func (g *codegen) flush() error {
	_, err := g.w.Write(g.out.Bytes())
	g.out = nil
	return err
}

func (g *codegen) push(operand string) {
	g.emit("push %s", operand)
	g.depth++
}

func (g *codegen) pop(reg string) {
	g.emit("pop %s", reg)
	g.depth--
}

func (g *codegen) genProgram(root *Root) error {
	g.out = &bytes.Buffer{}
	g.emitDirective("intel_syntax noprefix")
	g.emitDirective("global %s", g.target.EntrySymbol())
	if err := g.flush(); err != nil {
		return err
	}

	for _, f := range root.Funcs {
		g.out = &bytes.Buffer{}
		g.genFunc(f)
		if err := g.flush(); err != nil {
			return err
		}
	}
	return nil
}

// layoutFrame assigns each variable its offset below rbp, in declaration
// order, and returns the frame size. Scalars take one slot; arrays take
// their whole storage.
func layoutFrame(vars []*Var) int {
	off := 0
	for _, v := range vars {
		if v.Type.Kind == TypeArray {
			off += roundUp(v.Type.StorageSize(), slotSize)
		} else {
			off += slotSize
		}
		v.Offset = off
	}
	return roundUp(off, frameAlign)
}

func roundUp(n, align int) int {
	return (n + align - 1) / align * align
}

func (g *codegen) genFunc(f *FuncDef) {
	if len(f.Params) > len(argRegs) {
		unsupported("parameter count", "function %q has %d parameters, at most %d are supported",
			f.Name, len(f.Params), len(argRegs))
	}

	frame := layoutFrame(f.Vars)
	g.depth = 0

	g.emitLabel(g.target.FuncSymbol(f.Name))
	g.emit("push rbp")
	g.emit("mov rbp, rsp")
	g.emit("sub rsp, %d", frame)
	for i, param := range f.Params {
		g.emit("mov [rbp-%d], %s", param.Offset, argRegs[i])
	}

	g.genStmt(f.Body)

	g.emit("mov rax, 0")
	g.emitEpilogue()
}

func (g *codegen) emitEpilogue() {
	g.emit("mov rsp, rbp")
	g.emit("pop rbp")
	g.emit("ret")
}

func (g *codegen) genStmt(n Node) {
	switch n := n.(type) {
	case *Null:

	case *Compound:
		for _, stmt := range n.Stmts {
			g.genStmt(stmt)
		}

	case *If:
		thenLabel := g.newLabel()
		elseLabel := g.newLabel()
		endLabel := g.newLabel()
		g.genExpr(n.Cond)
		g.pop("rax")
		g.emit("cmp rax, 0")
		g.emit("je %s", elseLabel)
		g.emitLabel(thenLabel)
		g.genStmt(n.Then)
		g.emit("jmp %s", endLabel)
		g.emitLabel(elseLabel)
		if n.Else != nil {
			g.genStmt(n.Else)
		}
		g.emitLabel(endLabel)

	case *Return:
		if _, empty := n.Value.(*Null); empty || n.Value == nil {
			g.emit("mov rax, 0")
		} else {
			g.genExpr(n.Value)
			g.pop("rax")
		}
		g.emitEpilogue()

	case Expr:
		g.genExpr(n)
		g.pop("rax")

	default:
		unsupported("statement", "%T", n)
	}
}

// genAddr pushes the address of an lvalue.
func (g *codegen) genAddr(e Expr) {
	switch e := e.(type) {
	case *Ident:
		g.emit("lea rax, [rbp-%d]", e.Var.Offset)
		g.push("rax")
	case *Deref:
		g.genExpr(e.Operand)
	default:
		unsupported("lvalue", "cannot take the address of %T", e)
	}
}

// load replaces the address in rax with the value stored there.
func (g *codegen) load(size int) {
	switch size {
	case 1:
		g.emit("movsx rax, byte ptr [rax]")
	case 4:
		g.emit("movsxd rax, dword ptr [rax]")
	case 8:
		g.emit("mov rax, [rax]")
	default:
		unsupported("register width", "no %d-byte register", size)
	}
}

func (g *codegen) genExpr(e Expr) {
	switch e := e.(type) {
	case *NumberLit:
		if e.Value < math.MinInt32 || e.Value > math.MaxInt32 {
			g.emit("movabs rax, %d", e.Value)
			g.push("rax")
		} else {
			g.push(fmt.Sprint(e.Value))
		}

	case *Ident:
		if e.Var.Type.Kind == TypeArray {
			g.genAddr(e)
			return
		}
		g.genAddr(e)
		g.pop("rax")
		g.load(e.Var.Type.Size())
		g.push("rax")

	case *Null:
		unsupported("empty expression", "a value is required here")

	case *Call:
		g.genCall(e)

	case *AddrOf:
		g.genAddr(e.Operand)

	case *Deref:
		g.genExpr(e.Operand)
		g.pop("rax")
		g.load(8)
		g.push("rax")

	case *Assign:
		g.genAddr(e.LHS)
		g.genExpr(e.RHS)
		g.pop("rdi")
		g.pop("rax")
		g.emit("mov [rax], rdi")
		g.push("rdi")

	case *Binary:
		g.genBinary(e)

	case *Equal:
		g.genEqual(e)

	default:
		unsupported("expression", "%T", e)
	}
}

func (g *codegen) genBinary(e *Binary) {
	g.genExpr(e.LHS)
	g.genExpr(e.RHS)
	g.pop("rdi")
	g.pop("rax")

	switch e.Op {
	case "+":
		g.emit("add rax, rdi")
	case "-":
		g.emit("sub rax, rdi")
	case "*":
		g.emit("imul rax, rdi")
	case "/":
		g.emit("cqo")
		g.emit("idiv rdi")
	case "%":
		g.emit("cqo")
		g.emit("idiv rdi")
		g.emit("mov rax, rdx")
	default:
		unsupported("binary operator", "%q", e.Op)
	}
	g.push("rax")
}

// genEqual materializes the comparison as 0 or 1. Both arms push, but only
// one runs, so the depth grows by one.
func (g *codegen) genEqual(e *Equal) {
	eqLabel := g.newLabel()
	neLabel := g.newLabel()
	endLabel := g.newLabel()

	g.genExpr(e.LHS)
	g.genExpr(e.RHS)
	g.pop("rdi")
	g.pop("rax")
	g.emit("cmp rax, rdi")

	if e.Not {
		g.emit("jne %s", neLabel)
		g.emitLabel(eqLabel)
		g.emit("push 0")
		g.emit("jmp %s", endLabel)
		g.emitLabel(neLabel)
		g.emit("push 1")
	} else {
		g.emit("je %s", eqLabel)
		g.emitLabel(neLabel)
		g.emit("push 0")
		g.emit("jmp %s", endLabel)
		g.emitLabel(eqLabel)
		g.emit("push 1")
	}
	g.emitLabel(endLabel)
	g.depth++
}

// genCall evaluates the arguments left to right, then pops them into the
// argument registers. rsp is padded to 16 bytes across the call when an
// odd number of values is pending on the stack.
func (g *codegen) genCall(e *Call) {
	if len(e.Args) > len(argRegs) {
		unsupported("argument count", "call to %q passes %d arguments, at most %d are supported",
			e.Name, len(e.Args), len(argRegs))
	}

	for _, arg := range e.Args {
		g.genExpr(arg)
	}
	for i := len(e.Args) - 1; i >= 0; i-- {
		g.pop(argRegs[i])
	}

	sym := g.target.FuncSymbol(e.Name)
	if g.depth%2 != 0 {
		g.emit("sub rsp, 8")
		g.emit("call %s", sym)
		g.emit("add rsp, 8")
	} else {
		g.emit("call %s", sym)
	}
	g.push("rax")
}
