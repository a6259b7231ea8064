package vm

import "github.com/nrkt/classvm/pkg/classfile"

// maxInstances bounds the instance table. There is no collector in
// this model (spec §3 lifecycles: "Instances live until process
// exit") — a bounded, append-only table suffices in place of garbage
// collection.
const maxInstances = 1024

// instanceCell is one field's storage inside an Instance: the
// descriptor-derived shape plus the underlying cell value, identical
// in shape to a static field cell (spec §3).
type instanceCell struct {
	Shape classfile.CellShape
	Value Value
}

// Instance is a heap-allocated object: a back-reference to its class
// and a per-field cell table keyed by field name.
type Instance struct {
	Class  *classfile.ClassFile
	Fields map[string]*instanceCell
}

// Heap is the bounded, append-only instance table. Instance identity
// is the table index (spec Design Note: "stable references via
// indices" rather than raw pointers).
type Heap struct {
	instances []*Instance
}

// NewHeap creates an empty instance heap.
func NewHeap() *Heap {
	return &Heap{}
}

// New allocates a new instance of class, walking its declared fields
// in order and giving each non-static field a zero-valued cell (0 for
// CellInt, null for CellRef); static fields get no instance cell. Returns the new instance's table index, or HeapFull if the
// table is already at capacity.
func (h *Heap) New(class *classfile.ClassFile) (int32, error) {
	if len(h.instances) >= maxInstances {
		return 0, heapFull(maxInstances)
	}
	fields := make(map[string]*instanceCell, len(class.Fields))
	for _, f := range class.Fields {
		if f.AccessFlags&classfile.AccStatic != 0 {
			continue
		}
		shape, err := classfile.FieldCellShape(f.Descriptor)
		if err != nil {
			return 0, err
		}
		cell := &instanceCell{Shape: shape}
		if shape == classfile.CellRef {
			cell.Value = NullValue()
		}
		fields[f.Name] = cell
	}
	idx := int32(len(h.instances))
	h.instances = append(h.instances, &Instance{Class: class, Fields: fields})
	return idx, nil
}

// Get returns the instance at ref, or BadRef if ref is out of range.
func (h *Heap) Get(ref int32) (*Instance, error) {
	if ref < 0 || int(ref) >= len(h.instances) {
		return nil, badRef(int(ref))
	}
	return h.instances[ref], nil
}
