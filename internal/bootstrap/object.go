package bootstrap

import "github.com/nrkt/classvm/pkg/classfile"

// object builds java/lang/Object: no superclass, no declared fields,
// and a single native no-op constructor. It is the class user classes
// name as their superclass; the loader does not follow superclass
// references, so nothing walks the chain at run time.
func object() *classfile.ClassFile {
	b := classfile.NewBuilder()
	b.AddMethod("<init>", "()V", classfile.AccPublic|classfile.AccNative, nil)
	return b.Build("java/lang/Object", "", classfile.AccPublic, 0, 52)
}
