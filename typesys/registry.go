package typesys

import "sync"

// Registry is the hash-consed, interning type registry. Per-category
// Create* calls are bucketed by bucketHash (see hash.go) so the linear
// structural-equality scan only runs within a type's bucket. never keeps
// its own singleton, distinct from unit.
type Registry struct {
	mu sync.RWMutex

	primitives   [len(primitiveNames)]*TypeHandle
	stringSlices [len(stringSliceNames)]*TypeHandle
	unitTy       *TypeHandle
	neverTy      *TypeHandle

	pathBuckets      [bucketCount][]*TypeHandle
	tupleBuckets     [bucketCount][]*TypeHandle
	arrayBuckets     [bucketCount][]*TypeHandle
	sliceBuckets     [bucketCount][]*TypeHandle
	pointerBuckets   [bucketCount][]*TypeHandle
	referenceBuckets [bucketCount][]*TypeHandle
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// CreatePrimitiveType interns a primitive type, one singleton per kind.
func (r *Registry) CreatePrimitiveType(k PrimitiveKind) *TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h := r.primitives[k]; h != nil {
		return h
	}
	h := newHandle(&Type{Category: CategoryPrimitive, Primitive: k})
	r.primitives[k] = h
	return h
}

// CreateStringSliceType interns a string-slice type, one singleton per kind.
func (r *Registry) CreateStringSliceType(k StringSliceKind) *TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h := r.stringSlices[k]; h != nil {
		return h
	}
	h := newHandle(&Type{Category: CategoryStringSlice, StringSlice: k})
	r.stringSlices[k] = h
	return h
}

// CreateUnitType interns the single unit-type singleton.
func (r *Registry) CreateUnitType() *TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unitTy != nil {
		return r.unitTy
	}
	r.unitTy = newHandle(&Type{Category: CategoryUnit})
	return r.unitTy
}

// CreateNeverType interns the single never-type singleton.
func (r *Registry) CreateNeverType() *TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.neverTy != nil {
		return r.neverTy
	}
	r.neverTy = newHandle(&Type{Category: CategoryNever})
	return r.neverTy
}

// CreatePathType interns a path type referring to sym (a resolved or
// unresolved scope path string).
func (r *Registry) CreatePathType(sym string) *TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	bucket := bucketFor(pathKey(sym))
	for _, h := range r.pathBuckets[bucket] {
		if h.Get().PathSymbol == sym {
			return h
		}
	}
	h := newHandle(&Type{Category: CategoryPath, PathSymbol: sym})
	r.pathBuckets[bucket] = append(r.pathBuckets[bucket], h)
	return h
}

// CreateTupleType interns a tuple over elems (compared by element
// pointer identity).
func (r *Registry) CreateTupleType(elems []*TypeHandle) *TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := compositeKey('t', elems)
	bucket := bucketFor(key)
	for _, h := range r.tupleBuckets[bucket] {
		if sameElems(h.Get().Elements, elems) {
			return h
		}
	}
	h := newHandle(&Type{Category: CategoryTuple, Elements: append([]*TypeHandle(nil), elems...)})
	r.tupleBuckets[bucket] = append(r.tupleBuckets[bucket], h)
	return h
}

// CreateArrayType interns an array of elem with an optional size.
func (r *Registry) CreateArrayType(elem *TypeHandle, size *int) *TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	extra := byte(0)
	if size != nil {
		extra = byte(*size%251) + 1
	}
	key := compositeKey('a', []*TypeHandle{elem}, extra)
	bucket := bucketFor(key)
	for _, h := range r.arrayBuckets[bucket] {
		t := h.Get()
		if PtrEq(elemAt(t.Elements, 0), elem) && sameSize(t.ArraySize, size) {
			return h
		}
	}
	h := newHandle(&Type{Category: CategoryArray, Elements: []*TypeHandle{elem}, ArraySize: size})
	r.arrayBuckets[bucket] = append(r.arrayBuckets[bucket], h)
	return h
}

// CreateSliceType interns a slice of elem.
func (r *Registry) CreateSliceType(elem *TypeHandle) *TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := compositeKey('s', []*TypeHandle{elem})
	bucket := bucketFor(key)
	for _, h := range r.sliceBuckets[bucket] {
		if PtrEq(elemAt(h.Get().Elements, 0), elem) {
			return h
		}
	}
	h := newHandle(&Type{Category: CategorySlice, Elements: []*TypeHandle{elem}})
	r.sliceBuckets[bucket] = append(r.sliceBuckets[bucket], h)
	return h
}

// CreatePointerType interns a pointer to elem, single or multi.
func (r *Registry) CreatePointerType(elem *TypeHandle, isMulti bool) *TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := compositeKey('p', []*TypeHandle{elem}, boolByte(isMulti))
	bucket := bucketFor(key)
	for _, h := range r.pointerBuckets[bucket] {
		t := h.Get()
		if PtrEq(elemAt(t.Elements, 0), elem) && t.IsMulti == isMulti {
			return h
		}
	}
	h := newHandle(&Type{Category: CategoryPointer, Elements: []*TypeHandle{elem}, IsMulti: isMulti})
	r.pointerBuckets[bucket] = append(r.pointerBuckets[bucket], h)
	return h
}

// CreateReferenceType interns a reference to elem with the given mutability.
func (r *Registry) CreateReferenceType(elem *TypeHandle, isMut bool) *TypeHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := compositeKey('r', []*TypeHandle{elem}, boolByte(isMut))
	bucket := bucketFor(key)
	for _, h := range r.referenceBuckets[bucket] {
		t := h.Get()
		if PtrEq(elemAt(t.Elements, 0), elem) && t.IsMut == isMut {
			return h
		}
	}
	h := newHandle(&Type{Category: CategoryReference, Elements: []*TypeHandle{elem}, IsMut: isMut})
	r.referenceBuckets[bucket] = append(r.referenceBuckets[bucket], h)
	return h
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func elemAt(elems []*TypeHandle, i int) *TypeHandle {
	if i < 0 || i >= len(elems) {
		return nil
	}
	return elems[i]
}

func sameElems(a, b []*TypeHandle) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !PtrEq(a[i], b[i]) {
			return false
		}
	}
	return true
}

func sameSize(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// All returns every distinct type handle interned so far, across every
// category, for dumping (`--dump-types`).
func (r *Registry) All() []*TypeHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*TypeHandle
	if r.unitTy != nil {
		out = append(out, r.unitTy)
	}
	if r.neverTy != nil {
		out = append(out, r.neverTy)
	}
	for _, h := range r.primitives {
		if h != nil {
			out = append(out, h)
		}
	}
	for _, h := range r.stringSlices {
		if h != nil {
			out = append(out, h)
		}
	}
	for _, buckets := range [][bucketCount][]*TypeHandle{
		r.pathBuckets, r.tupleBuckets, r.arrayBuckets,
		r.sliceBuckets, r.pointerBuckets, r.referenceBuckets,
	} {
		for _, b := range buckets {
			out = append(out, b...)
		}
	}
	return out
}

// Count reports the total number of distinct type handles interned so
// far, across every category.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	if r.unitTy != nil {
		n++
	}
	if r.neverTy != nil {
		n++
	}
	for _, h := range r.primitives {
		if h != nil {
			n++
		}
	}
	for _, h := range r.stringSlices {
		if h != nil {
			n++
		}
	}
	for _, b := range r.pathBuckets {
		n += len(b)
	}
	for _, b := range r.tupleBuckets {
		n += len(b)
	}
	for _, b := range r.arrayBuckets {
		n += len(b)
	}
	for _, b := range r.sliceBuckets {
		n += len(b)
	}
	for _, b := range r.pointerBuckets {
		n += len(b)
	}
	for _, b := range r.referenceBuckets {
		n += len(b)
	}
	return n
}
