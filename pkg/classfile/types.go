// Package classfile decodes (and, for bootstrap class construction,
// encodes) the subset of the public class-file format this virtual
// machine needs: the constant pool, field and method tables, and the
// Code/SourceFile/LineNumberTable attribute bodies.
package classfile

// Access flags (the subset the interpreter consults).
const (
	AccPublic = 0x0001
	AccStatic = 0x0008
	AccNative = 0x0100
)

// Constant pool tags, as defined by the source format. Only Utf8,
// Class, Fieldref, Methodref and NameAndType get full runtime support;
// the rest are parsed into a placeholder or rejected, per spec.
const (
	TagUtf8               = 1
	TagInteger             = 3
	TagFloat               = 4
	TagLong                = 5
	TagDouble              = 6
	TagClass               = 7
	TagString              = 8
	TagFieldref            = 9
	TagMethodref           = 10
	TagInterfaceMethodref  = 11
	TagNameAndType         = 12
	TagMethodHandle        = 15
	TagMethodType          = 16
	TagInvokeDynamic       = 18
)

// ClassFile is a loaded class.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool []ConstantPoolEntry // 1-indexed; index 0 is nil
	AccessFlags  uint16
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo
}

// ConstantPoolEntry is implemented by every constant pool kind this
// decoder produces, including the unsupported-but-parsed placeholder.
type ConstantPoolEntry interface {
	Tag() uint8
}

type ConstantUtf8 struct{ Value string }

func (c *ConstantUtf8) Tag() uint8 { return TagUtf8 }

type ConstantClass struct{ NameIndex uint16 }

func (c *ConstantClass) Tag() uint8 { return TagClass }

type ConstantFieldref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantFieldref) Tag() uint8 { return TagFieldref }

type ConstantMethodref struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (c *ConstantMethodref) Tag() uint8 { return TagMethodref }

type ConstantNameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (c *ConstantNameAndType) Tag() uint8 { return TagNameAndType }

// unsupportedConstant stands in for a constant-pool kind that was
// parsed (its defined byte width consumed) but carries no runtime
// representation. Touching one through a typed accessor fails with
// CpKindMismatch; EncodeClass rejects it with UnsupportedConstant.
type unsupportedConstant struct {
	tag uint8
}

func (c *unsupportedConstant) Tag() uint8 { return c.tag }

// FieldInfo is a field declaration.
type FieldInfo struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []AttributeInfo
}

// MethodInfo is a method declaration; Code is non-nil iff the method
// carries a Code attribute (i.e. is neither native nor abstract).
type MethodInfo struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Attributes  []AttributeInfo
	Code        *CodeAttribute
}

// AttributeInfo is a recognized attribute: its name (already resolved
// through the constant pool) and its decoded body.
type AttributeInfo struct {
	Name string
	Body any // *CodeAttribute, *SourceFileAttribute, or *LineNumberTableAttribute
}

// ExceptionHandler is one entry of a Code attribute's exception table.
// Parsed but never consulted for handler dispatch (spec Non-goal:
// exception-table semantics).
type ExceptionHandler struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// LineNumberEntry is one (start_pc, line_number) pair.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// CodeAttribute is the executable body of a method.
type CodeAttribute struct {
	MaxStack         uint16
	MaxLocals        uint16
	Code             []byte
	ExceptionTable   []ExceptionHandler
	Attributes       []AttributeInfo
}

// SourceFileAttribute names the source file a class was compiled from.
type SourceFileAttribute struct {
	SourceFileIndex uint16
}

// LineNumberTableAttribute maps bytecode offsets to source lines.
type LineNumberTableAttribute struct {
	Entries []LineNumberEntry
}

// ClassName resolves this_class to its internal name string.
func (cf *ClassFile) ClassName() (string, error) {
	return GetClassName(cf.ConstantPool, cf.ThisClass)
}

// SuperClassName resolves super_class, or "" if there is none (the
// wire value 0, as for java/lang/Object).
func (cf *ClassFile) SuperClassName() (string, error) {
	if cf.SuperClass == 0 {
		return "", nil
	}
	return GetClassName(cf.ConstantPool, cf.SuperClass)
}

// FindMethod looks up a method by exact name and descriptor.
func (cf *ClassFile) FindMethod(name, descriptor string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name == name && cf.Methods[i].Descriptor == descriptor {
			return &cf.Methods[i]
		}
	}
	return nil
}

// FindMethodByName returns the first method with the given name, in
// table order. Overload resolution by descriptor is not performed
// (spec: "Method lookup is by name only").
func (cf *ClassFile) FindMethodByName(name string) *MethodInfo {
	for i := range cf.Methods {
		if cf.Methods[i].Name == name {
			return &cf.Methods[i]
		}
	}
	return nil
}

// FindField looks up a field declared directly on this class by name.
func (cf *ClassFile) FindField(name string) *FieldInfo {
	for i := range cf.Fields {
		if cf.Fields[i].Name == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

// codeAttributeOf extracts a method's Code attribute from its
// attribute list, if present.
func codeAttributeOf(attrs []AttributeInfo) *CodeAttribute {
	for _, a := range attrs {
		if code, ok := a.Body.(*CodeAttribute); ok {
			return code
		}
	}
	return nil
}
