// Package typesys implements the hash-consed type registry: interned
// type handles with late-resolution indirection. Interning is bucketed
// by a highwayhash of each type's structural key, so equality checks
// only run within a type's hash bucket instead of across every type
// ever created in that category.
package typesys

import "fmt"

// PrimitiveKind enumerates the language's 26 fixed-width primitive types.
type PrimitiveKind int

const (
	U8 PrimitiveKind = iota
	U16
	U32
	U64
	U128
	Usize
	I8
	I16
	I32
	I64
	I128
	Isize
	F16
	F32
	F64
	F128
	Bool
	B8
	B16
	B32
	B64
	Char
	Char7
	Char8
	Char16
	Char32
)

var primitiveNames = [...]string{
	"u8", "u16", "u32", "u64", "u128", "usize",
	"i8", "i16", "i32", "i64", "i128", "isize",
	"f16", "f32", "f64", "f128",
	"bool", "b8", "b16", "b32", "b64",
	"char", "char7", "char8", "char16", "char32",
}

// String renders the primitive's source spelling.
func (k PrimitiveKind) String() string { return primitiveNames[k] }

// ParsePrimitiveKind resolves a primitive's source spelling back to its
// PrimitiveKind, for driver code that builds type nodes from text (the
// fixture loader in cmd/xenonc).
func ParsePrimitiveKind(s string) (PrimitiveKind, bool) {
	for i, name := range primitiveNames {
		if name == s {
			return PrimitiveKind(i), true
		}
	}
	return 0, false
}

// ByteSize returns the type's size in bytes; regByteSize supplies the
// pointer-width value substituted for Usize/Isize.
func (k PrimitiveKind) ByteSize(regByteSize int) int {
	switch k {
	case U8, I8, Bool, B8, Char7, Char8:
		return 1
	case U16, I16, F16, B16, Char16:
		return 2
	case U32, I32, F32, B32, Char, Char32:
		return 4
	case U64, I64, F64, B64:
		return 8
	case U128, I128, F128:
		return 16
	case Usize, Isize:
		return regByteSize
	}
	return 0
}

// BitSize returns the type's size in bits; regBitSize supplies the
// pointer-width value substituted for Usize/Isize.
func (k PrimitiveKind) BitSize(regBitSize int) int {
	switch k {
	case Bool:
		return 1
	case Char7:
		return 7
	case U8, I8, B8, Char8:
		return 8
	case U16, I16, F16, B16, Char16:
		return 16
	case U32, I32, F32, B32, Char, Char32:
		return 32
	case U64, I64, F64, B64:
		return 64
	case U128, I128, F128:
		return 128
	case Usize, Isize:
		return regBitSize
	}
	return 0
}

// Align returns the type's required alignment, same as ByteSize.
func (k PrimitiveKind) Align(regByteSize int) int { return k.ByteSize(regByteSize) }

// StringSliceKind enumerates the Language's 6 string-slice variants.
type StringSliceKind int

const (
	Str StringSliceKind = iota
	Str7
	Str8
	Str16
	Str32
	CStr
)

var stringSliceNames = [...]string{"str", "str7", "str8", "str16", "str32", "cstr"}

// String renders the string-slice kind's source spelling.
func (k StringSliceKind) String() string { return stringSliceNames[k] }

// ParseStringSliceKind resolves a string-slice kind's source spelling
// back to its StringSliceKind, for driver code that builds type nodes
// from text.
func ParseStringSliceKind(s string) (StringSliceKind, bool) {
	for i, name := range stringSliceNames {
		if name == s {
			return StringSliceKind(i), true
		}
	}
	return 0, false
}

// ByteSize returns 2*regByteSize (a string slice is a fat pointer: data
// pointer + length, both register-width).
func (k StringSliceKind) ByteSize(regByteSize int) int { return regByteSize * 2 }

// BitSize returns 2*regBitSize.
func (k StringSliceKind) BitSize(regBitSize int) int { return regBitSize * 2 }

// Align returns regByteSize.
func (k StringSliceKind) Align(regByteSize int) int { return regByteSize }

// Category tags which Type variant a value carries.
type Category int

const (
	CategoryPrimitive Category = iota
	CategoryUnit
	CategoryNever
	CategoryPath
	CategoryTuple
	CategoryArray
	CategorySlice
	CategoryStringSlice
	CategoryPointer
	CategoryReference
	CategoryOptional
	CategoryFunction
	CategoryFunctionPointer
	CategoryClosure
	CategoryInferred
	CategoryTraitObject
	CategoryImplTrait
)

// Type is the structural payload behind a TypeHandle. Only the fields
// relevant to Category are meaningful.
type Type struct {
	Category Category

	Primitive    PrimitiveKind
	StringSlice  StringSliceKind
	PathSymbol   string // scope path string of the resolved (or unresolved) symbol
	Elements     []*TypeHandle
	ArraySize    *int
	IsMulti      bool // pointer: single vs multi
	IsMut        bool // reference: mutability
	TraitObject  string
	ImplTrait    string
}

// String renders a human-readable type expression.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Category {
	case CategoryPrimitive:
		return t.Primitive.String()
	case CategoryUnit:
		return "()"
	case CategoryNever:
		return "!"
	case CategoryPath:
		return t.PathSymbol
	case CategoryTuple:
		return joinTypes("(", t.Elements, ")")
	case CategoryArray:
		if t.ArraySize != nil {
			return fmt.Sprintf("[%s; %d]", elemString(t.Elements), *t.ArraySize)
		}
		return fmt.Sprintf("[%s; ?]", elemString(t.Elements))
	case CategorySlice:
		return fmt.Sprintf("[%s]", elemString(t.Elements))
	case CategoryStringSlice:
		return t.StringSlice.String()
	case CategoryPointer:
		if t.IsMulti {
			return fmt.Sprintf("[*]%s", elemString(t.Elements))
		}
		return fmt.Sprintf("*%s", elemString(t.Elements))
	case CategoryReference:
		if t.IsMut {
			return fmt.Sprintf("&mut %s", elemString(t.Elements))
		}
		return fmt.Sprintf("&%s", elemString(t.Elements))
	case CategoryOptional:
		return fmt.Sprintf("?%s", elemString(t.Elements))
	case CategoryFunction:
		return "fn(...)"
	case CategoryFunctionPointer:
		return "fnptr(...)"
	case CategoryClosure:
		return "closure(...)"
	case CategoryInferred:
		return "_"
	case CategoryTraitObject:
		return "dyn " + t.TraitObject
	case CategoryImplTrait:
		return "impl " + t.ImplTrait
	}
	return "<unknown>"
}

func elemString(elems []*TypeHandle) string {
	if len(elems) == 0 {
		return "?"
	}
	return elems[0].Get().String()
}

func joinTypes(open string, elems []*TypeHandle, close string) string {
	s := open
	for i, e := range elems {
		if i > 0 {
			s += ", "
		}
		s += e.Get().String()
	}
	return s + close
}
