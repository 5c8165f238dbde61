package types

import "fmt"

// TypeID uniquely identifies a type inside the interner. Because descriptors
// are interned, exact type equality is TypeID equality.
type TypeID uint32

// NoTypeID marks the absence of a type. Failed resolutions produce it so
// downstream checking can continue without cascading errors.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNil
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNil:
		return "Nil"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind    Kind
	Elem    TypeID // element type for lists
	Payload uint32 // side-table slot for custom types
}

// MakeList describes List(elem).
func MakeList(elem TypeID) Type {
	return Type{Kind: KindList, Elem: elem}
}
