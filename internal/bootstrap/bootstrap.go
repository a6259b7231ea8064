// Package bootstrap manufactures the two built-in classes spec §4.9
// requires to always be present (java/lang/Object, java/lang/System)
// without a javac toolchain: each is assembled in-process with
// classfile.Builder and serialized with classfile.EncodeClass, then
// fed through the ordinary classfile.Parse path like any user-supplied
// .class file.
package bootstrap

import "github.com/nrkt/classvm/pkg/classfile"

// Class is one bootstrap class's encoded wire bytes, labeled for
// diagnostics.
type Class struct {
	Label string
	Bytes []byte
}

// All returns java/lang/Object and java/lang/System, in that order.
// The loader does not resolve superclass references, so the order only
// fixes the order in which the two are recorded and initialized.
func All() ([]Class, error) {
	classes := []*classfile.ClassFile{object(), system()}
	out := make([]Class, 0, len(classes))
	for _, cf := range classes {
		name, err := cf.ClassName()
		if err != nil {
			return nil, err
		}
		encoded, err := classfile.EncodeClass(cf)
		if err != nil {
			return nil, err
		}
		out = append(out, Class{Label: "<bootstrap:" + name + ">", Bytes: encoded})
	}
	return out, nil
}
