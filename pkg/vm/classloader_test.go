package vm

import (
	"bytes"
	"testing"

	"github.com/nrkt/classvm/pkg/classfile"
)

func TestClassLoaderLookupMissing(t *testing.T) {
	machine := New(discardLogger())
	if _, err := machine.Lookup("DoesNotExist"); err == nil {
		t.Fatal("Lookup on unloaded class: want error, got nil")
	}
}

func TestClassLoaderKeepsLoadOrder(t *testing.T) {
	// LoadAll records classes in the order given. Superclass references
	// are not resolved at load time: Base names java/lang/Object as its
	// superclass, and that class is not loaded here.
	baseBuilder := classfile.NewBuilder()
	base := baseBuilder.Build("Base", "java/lang/Object", classfile.AccPublic, 0, 52)

	derivedBuilder := classfile.NewBuilder()
	derivedBuilder.AddMethod("main", "()I", classfile.AccPublic|classfile.AccStatic,
		mainMethod([]byte{0x10, 1, 0xac}, 1, 0))
	derived := derivedBuilder.Build("Derived", "Base", classfile.AccPublic, 0, 52)

	machine := New(discardLogger())
	var sources []Source
	for _, cf := range []*classfile.ClassFile{base, derived} {
		encoded, err := classfile.EncodeClass(cf)
		if err != nil {
			t.Fatalf("EncodeClass: %v", err)
		}
		name, _ := cf.ClassName()
		sources = append(sources, Source{Label: name, Reader: bytes.NewReader(encoded)})
	}

	if err := machine.LoadAll(sources); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if order := machine.loader.order; len(order) != 2 || order[0] != "Base" || order[1] != "Derived" {
		t.Errorf("load order: got %v, want [Base Derived]", order)
	}

	got, err := machine.InvokeMain("Derived")
	if err != nil {
		t.Fatalf("InvokeMain: %v", err)
	}
	if got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}
