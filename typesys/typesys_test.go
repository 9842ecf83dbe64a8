package typesys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimitiveSizes(t *testing.T) {
	tests := []struct {
		description string
		kind        PrimitiveKind
		wantByte    int
		wantBit     int
	}{
		{"u8", U8, 1, 8},
		{"i128", I128, 16, 128},
		{"f64", F64, 8, 64},
		{"bool", Bool, 1, 1},
		{"char7", Char7, 1, 7},
		{"char", Char, 4, 32},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.wantByte, tc.kind.ByteSize(8))
			assert.Equal(t, tc.wantBit, tc.kind.BitSize(64))
		})
	}
}

func TestUsizeFollowsRegisterWidth(t *testing.T) {
	assert.Equal(t, 4, Usize.ByteSize(4))
	assert.Equal(t, 8, Usize.ByteSize(8))
}

func TestCreatePrimitiveTypeIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	a := reg.CreatePrimitiveType(I32)
	b := reg.CreatePrimitiveType(I32)
	assert.True(t, PtrEq(a, b), "create_X(args) called twice returns handles comparing equal by identity")

	c := reg.CreatePrimitiveType(U32)
	assert.False(t, PtrEq(a, c))
}

func TestUnitAndNeverAreDistinctSingletons(t *testing.T) {
	reg := NewRegistry()
	unit := reg.CreateUnitType()
	never := reg.CreateNeverType()
	assert.False(t, PtrEq(unit, never), "never must not alias unit")
	assert.True(t, PtrEq(unit, reg.CreateUnitType()))
	assert.True(t, PtrEq(never, reg.CreateNeverType()))
}

func TestCompositeTypesInternByStructure(t *testing.T) {
	reg := NewRegistry()
	i32 := reg.CreatePrimitiveType(I32)
	i64 := reg.CreatePrimitiveType(I64)

	tup1 := reg.CreateTupleType([]*TypeHandle{i32, i64})
	tup2 := reg.CreateTupleType([]*TypeHandle{i32, i64})
	assert.True(t, PtrEq(tup1, tup2))

	tup3 := reg.CreateTupleType([]*TypeHandle{i64, i32})
	assert.False(t, PtrEq(tup1, tup3), "element order matters")

	size := 4
	arr1 := reg.CreateArrayType(i32, &size)
	arr2 := reg.CreateArrayType(i32, &size)
	assert.True(t, PtrEq(arr1, arr2))

	slice1 := reg.CreateSliceType(i32)
	slice2 := reg.CreateSliceType(i32)
	assert.True(t, PtrEq(slice1, slice2))

	ptr1 := reg.CreatePointerType(i32, false)
	ptr2 := reg.CreatePointerType(i32, true)
	assert.False(t, PtrEq(ptr1, ptr2), "single vs multi pointers are distinct")

	ref1 := reg.CreateReferenceType(i32, false)
	ref2 := reg.CreateReferenceType(i32, true)
	assert.False(t, PtrEq(ref1, ref2), "mutability makes references distinct")
}

func TestSetResolvedPropagatesToEveryHandleSharingTheCell(t *testing.T) {
	reg := NewRegistry()
	unresolved := reg.CreatePathType("pending::Self")
	distributedElsewhere := unresolved // shares the same *TypeHandle pointer

	resolved := reg.CreatePrimitiveType(I32)
	unresolved.SetResolved(resolved.Get())

	assert.Equal(t, resolved.Get(), unresolved.Get())
	assert.Equal(t, resolved.Get(), distributedElsewhere.Get(), "h.get() == h'.get() after set_resolved")
}

func TestPathTypeInterning(t *testing.T) {
	reg := NewRegistry()
	a := reg.CreatePathType("m.n.Foo")
	b := reg.CreatePathType("m.n.Foo")
	c := reg.CreatePathType("m.n.Bar")
	assert.True(t, PtrEq(a, b))
	assert.False(t, PtrEq(a, c))
}

func TestRegistryAllCountsMatchCount(t *testing.T) {
	reg := NewRegistry()
	reg.CreatePrimitiveType(I32)
	reg.CreateUnitType()
	reg.CreatePathType("m.Foo")
	assert.Len(t, reg.All(), reg.Count())
}

func TestParsePrimitiveAndStringSliceKindRoundTrip(t *testing.T) {
	k, ok := ParsePrimitiveKind("i32")
	assert.True(t, ok)
	assert.Equal(t, I32, k)

	_, ok = ParsePrimitiveKind("nope")
	assert.False(t, ok)

	s, ok := ParseStringSliceKind("str16")
	assert.True(t, ok)
	assert.Equal(t, Str16, s)
}
