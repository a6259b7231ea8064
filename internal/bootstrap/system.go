package bootstrap

import "github.com/nrkt/classvm/pkg/classfile"

// system builds java/lang/System: a static native halt0(int), the
// minimum native surface spec §4.8 requires, plus a no-op static
// initializer so classloading never has to special-case "this class
// happens to have no Code-bearing <clinit>."
func system() *classfile.ClassFile {
	b := classfile.NewBuilder()
	b.AddMethod("<clinit>", "()V", classfile.AccStatic|classfile.AccNative, nil)
	b.AddMethod("halt0", "(I)V", classfile.AccPublic|classfile.AccStatic|classfile.AccNative, nil)
	return b.Build("java/lang/System", "java/lang/Object", classfile.AccPublic, 0, 52)
}
