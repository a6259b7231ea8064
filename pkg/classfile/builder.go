package classfile

// Builder assembles a ClassFile programmatically instead of decoding
// one from bytes. It exists for internal/bootstrap, which manufactures
// java/lang/Object and java/lang/System in-process (no javac, no
// shipped .class fixture) and feeds the result through EncodeClass and
// then the ordinary Parse path, exactly like any user class.
type Builder struct {
	pool      []ConstantPoolEntry
	utf8index map[string]uint16
	fields    []FieldInfo
	methods   []MethodInfo
}

// NewBuilder starts a class with an empty (reserved-slot-0) constant
// pool.
func NewBuilder() *Builder {
	return &Builder{
		pool:      []ConstantPoolEntry{nil},
		utf8index: make(map[string]uint16),
	}
}

// Utf8 interns s, returning its constant pool index.
func (b *Builder) Utf8(s string) uint16 {
	if idx, ok := b.utf8index[s]; ok {
		return idx
	}
	idx := uint16(len(b.pool))
	b.pool = append(b.pool, &ConstantUtf8{Value: s})
	b.utf8index[s] = idx
	return idx
}

// ClassRef interns a CONSTANT_Class entry for the given internal class
// name, returning its constant pool index.
func (b *Builder) ClassRef(name string) uint16 {
	nameIdx := b.Utf8(name)
	idx := uint16(len(b.pool))
	b.pool = append(b.pool, &ConstantClass{NameIndex: nameIdx})
	return idx
}

// NameAndType interns a CONSTANT_NameAndType entry, returning its
// constant pool index.
func (b *Builder) NameAndType(name, descriptor string) uint16 {
	nameIdx := b.Utf8(name)
	descIdx := b.Utf8(descriptor)
	idx := uint16(len(b.pool))
	b.pool = append(b.pool, &ConstantNameAndType{NameIndex: nameIdx, DescriptorIndex: descIdx})
	return idx
}

// MethodRef interns a CONSTANT_Methodref entry for className.name:descriptor,
// returning its constant pool index — the operand invokestatic/invokevirtual/
// invokespecial consume.
func (b *Builder) MethodRef(className, name, descriptor string) uint16 {
	classIdx := b.ClassRef(className)
	natIdx := b.NameAndType(name, descriptor)
	idx := uint16(len(b.pool))
	b.pool = append(b.pool, &ConstantMethodref{ClassIndex: classIdx, NameAndTypeIndex: natIdx})
	return idx
}

// FieldRef interns a CONSTANT_Fieldref entry for className.name:descriptor,
// returning its constant pool index — the operand getstatic/putstatic/
// getfield/putfield consume.
func (b *Builder) FieldRef(className, name, descriptor string) uint16 {
	classIdx := b.ClassRef(className)
	natIdx := b.NameAndType(name, descriptor)
	idx := uint16(len(b.pool))
	b.pool = append(b.pool, &ConstantFieldref{ClassIndex: classIdx, NameAndTypeIndex: natIdx})
	return idx
}

// AddMethod appends a method declaration, interning its name and
// descriptor. Pass a nil code for native/abstract methods.
func (b *Builder) AddMethod(name, descriptor string, accessFlags uint16, code *CodeAttribute) {
	b.Utf8(name)
	b.Utf8(descriptor)
	var attrs []AttributeInfo
	if code != nil {
		attrs = append(attrs, AttributeInfo{Name: attrCode, Body: code})
		b.Utf8(attrCode)
	}
	b.methods = append(b.methods, MethodInfo{
		AccessFlags: accessFlags,
		Name:        name,
		Descriptor:  descriptor,
		Attributes:  attrs,
		Code:        code,
	})
}

// AddField appends a field declaration, interning its name and
// descriptor.
func (b *Builder) AddField(name, descriptor string, accessFlags uint16) {
	b.Utf8(name)
	b.Utf8(descriptor)
	b.fields = append(b.fields, FieldInfo{AccessFlags: accessFlags, Name: name, Descriptor: descriptor})
}

// Build finalizes the class. superName may be "" for a class with no
// superclass (java/lang/Object itself).
func (b *Builder) Build(thisName, superName string, accessFlags uint16, minorVersion, majorVersion uint16) *ClassFile {
	thisIdx := b.ClassRef(thisName)
	var superIdx uint16
	if superName != "" {
		superIdx = b.ClassRef(superName)
	}
	return &ClassFile{
		MinorVersion: minorVersion,
		MajorVersion: majorVersion,
		ConstantPool: b.pool,
		AccessFlags:  accessFlags,
		ThisClass:    thisIdx,
		SuperClass:   superIdx,
		Fields:       b.fields,
		Methods:      b.methods,
	}
}
