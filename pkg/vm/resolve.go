package vm

import "github.com/nrkt/classvm/pkg/classfile"

// resolveMethodref resolves a Methodref constant-pool entry to its
// declaring class and the MethodInfo to invoke. Lookup is by name
// only, first match in table order wins (spec: overload resolution by
// descriptor is an explicit, documented limitation — "first method of
// that name in the methods table wins").
func (vm *VM) resolveMethodref(pool []classfile.ConstantPoolEntry, index uint16) (*classfile.ClassFile, *classfile.MethodInfo, error) {
	ref, err := classfile.ResolveMethodref(pool, index)
	if err != nil {
		return nil, nil, err
	}
	cf, err := vm.loader.Lookup(ref.ClassName)
	if err != nil {
		return nil, nil, err
	}
	method := cf.FindMethodByName(ref.MemberName)
	if method == nil {
		return nil, nil, &MethodNotFound{ClassName: ref.ClassName, MethodName: ref.MemberName}
	}
	return cf, method, nil
}

// resolveFieldref resolves a Fieldref constant-pool entry to its
// declaring class and field.
func (vm *VM) resolveFieldref(pool []classfile.ConstantPoolEntry, index uint16) (string, *classfile.FieldInfo, error) {
	ref, err := classfile.ResolveFieldref(pool, index)
	if err != nil {
		return "", nil, err
	}
	cf, err := vm.loader.Lookup(ref.ClassName)
	if err != nil {
		return "", nil, err
	}
	field := cf.FindField(ref.MemberName)
	if field == nil {
		return "", nil, &FieldNotFound{ClassName: ref.ClassName, FieldName: ref.MemberName}
	}
	return ref.ClassName, field, nil
}
