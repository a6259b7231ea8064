package vm

import (
	"io"

	"github.com/nrkt/classvm/pkg/classfile"
)

// ClassLoader owns an ordered list of loaded classes and runs each
// class's <clinit> once, in load order (spec §4.5, §5 ordering
// guarantees). Unlike a general-purpose JVM class loader, there is no
// classpath search: initialization takes the complete ordered list of
// byte sources up front (spec Non-goal: "dynamic class loading from a
// classpath search").
type ClassLoader struct {
	order   []string
	classes map[string]*classfile.ClassFile
	vm      *VM
}

// NewClassLoader creates an empty class loader bound to vm (needed so
// <clinit> execution can recurse into the interpreter).
func NewClassLoader(vm *VM) *ClassLoader {
	return &ClassLoader{classes: make(map[string]*classfile.ClassFile), vm: vm}
}

// Source is one byte-source to load, paired with a label used only for
// diagnostics (a file path, or "<bootstrap:java/lang/Object>").
type Source struct {
	Label  string
	Reader io.Reader
}

// LoadAll decodes and initializes each source in order: decode, then
// run <clinit> if present, before moving to the next source. Per spec
// §5, loading happens in the order given and <clinit>s run in that
// order.
func (cl *ClassLoader) LoadAll(sources []Source) error {
	for _, src := range sources {
		cf, err := classfile.Parse(src.Reader)
		if err != nil {
			return err
		}
		name, err := cf.ClassName()
		if err != nil {
			return err
		}
		cl.order = append(cl.order, name)
		cl.classes[name] = cf
		cl.vm.log.WithField("class", name).Debug("class loaded")

		if err := cl.vm.statics.allocate(name, cf); err != nil {
			return err
		}
		if err := cl.vm.runClinit(name, cf); err != nil {
			return err
		}
	}
	return nil
}

// Lookup finds a loaded class by its internal name.
func (cl *ClassLoader) Lookup(name string) (*classfile.ClassFile, error) {
	cf, ok := cl.classes[name]
	if !ok {
		return nil, &ClassNotFound{ClassName: name}
	}
	return cf, nil
}
