package vm

import (
	"testing"

	"github.com/nrkt/classvm/pkg/classfile"
)

func sampleInstanceClass() *classfile.ClassFile {
	b := classfile.NewBuilder()
	b.AddField("value", "I", 0)
	b.AddField("next", "Lother/Thing;", 0)
	return b.Build("Thing", "java/lang/Object", classfile.AccPublic, 0, 52)
}

func TestHeapNewZeroInitializesFields(t *testing.T) {
	h := NewHeap()
	cf := sampleInstanceClass()

	ref, err := h.New(cf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ref != 0 {
		t.Fatalf("first allocation: got ref %d, want 0", ref)
	}

	inst, err := h.Get(ref)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if inst.Fields["value"].Value.Int != 0 {
		t.Errorf("value field: got %d, want 0", inst.Fields["value"].Value.Int)
	}
	next := inst.Fields["next"].Value
	if !next.IsRef || next.Int != -1 {
		t.Errorf("next field: got %+v, want null reference", next)
	}
}

func TestHeapIndicesAreStable(t *testing.T) {
	h := NewHeap()
	cf := sampleInstanceClass()

	first, err := h.New(cf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	second, err := h.New(cf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if second != first+1 {
		t.Errorf("second ref: got %d, want %d", second, first+1)
	}

	inst, err := h.Get(first)
	if err != nil {
		t.Fatalf("Get(first): %v", err)
	}
	inst.Fields["value"].Value = IntValue(7)

	again, err := h.Get(first)
	if err != nil {
		t.Fatalf("Get(first) again: %v", err)
	}
	if again.Fields["value"].Value.Int != 7 {
		t.Error("mutation through one Get call did not persist to the next")
	}
}

func TestHeapGetBadRef(t *testing.T) {
	h := NewHeap()
	if _, err := h.Get(0); err == nil {
		t.Fatal("Get on empty heap: want error, got nil")
	}
	if _, err := h.Get(-1); err == nil {
		t.Fatal("Get(-1): want error, got nil")
	}
}

func TestHeapFull(t *testing.T) {
	h := NewHeap()
	cf := sampleInstanceClass()
	for i := 0; i < maxInstances; i++ {
		if _, err := h.New(cf); err != nil {
			t.Fatalf("New at i=%d: %v", i, err)
		}
	}
	if _, err := h.New(cf); err == nil {
		t.Fatal("New past capacity: want error, got nil")
	}
}
