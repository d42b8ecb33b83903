package main

import "strconv"

// TypeKind distinguishes the shapes a Type can take.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypePointer
	TypeArray
)

// Type is the declared type of a variable. Only the size matters to the
// generator: it picks load widths and frame storage.
type Type struct {
	Kind TypeKind
	Elem *Type // TypePointer, TypeArray
	Len  int   // TypeArray
}

var TypeI32 = &Type{Kind: TypeInt}

func PointerTo(t *Type) *Type {
	return &Type{Kind: TypePointer, Elem: t}
}

func ArrayOf(t *Type, n int) *Type {
	return &Type{Kind: TypeArray, Elem: t, Len: n}
}

// Size is the width of a value of this type. Arrays decay to a pointer,
// so their size is the pointer's.
func (t *Type) Size() int {
	switch t.Kind {
	case TypeInt:
		return 4
	default:
		return 8
	}
}

// StorageSize is the number of frame bytes a variable of this type
// reserves, before rounding to the slot width.
func (t *Type) StorageSize() int {
	if t.Kind == TypeArray {
		return t.Elem.Size() * t.Len
	}
	return t.Size()
}

func (t *Type) String() string {
	switch t.Kind {
	case TypeInt:
		return "int"
	case TypePointer:
		return t.Elem.String() + "*"
	case TypeArray:
		return t.Elem.String() + "[" + strconv.Itoa(t.Len) + "]"
	default:
		return "?"
	}
}
