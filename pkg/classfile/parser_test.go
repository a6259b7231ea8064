package classfile

import (
	"bytes"
	"errors"
	"testing"
)

// buildSample constructs a small but representative class in memory:
// one static int field, one instance method with a Code attribute and
// a nested LineNumberTable, and a SourceFile class attribute. It
// exercises every attribute kind this decoder recognizes.
func buildSample(t *testing.T) *ClassFile {
	t.Helper()
	b := NewBuilder()

	lineTable := &LineNumberTableAttribute{Entries: []LineNumberEntry{{StartPC: 0, LineNumber: 7}}}
	b.Utf8(attrLineNumberTable)
	code := &CodeAttribute{
		MaxStack:  2,
		MaxLocals: 1,
		Code:      []byte{0x1a, 0xac}, // iload_0, ireturn
		Attributes: []AttributeInfo{
			{Name: attrLineNumberTable, Body: lineTable},
		},
	}
	b.AddMethod("identity", "(I)I", AccPublic, code)
	b.AddField("counter", "I", AccStatic)

	cf := b.Build("Sample", "java/lang/Object", AccPublic, 0, 52)

	srcIdx := b.Utf8("Sample.java")
	b.Utf8(attrSourceFile)
	cf.Attributes = append(cf.Attributes, AttributeInfo{
		Name: attrSourceFile,
		Body: &SourceFileAttribute{SourceFileIndex: srcIdx},
	})
	cf.ConstantPool = b.pool
	return cf
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := buildSample(t)

	encoded, err := EncodeClass(original)
	if err != nil {
		t.Fatalf("EncodeClass: %v", err)
	}

	decoded, err := Parse(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	name, err := decoded.ClassName()
	if err != nil {
		t.Fatalf("ClassName: %v", err)
	}
	if name != "Sample" {
		t.Errorf("ClassName: got %q, want %q", name, "Sample")
	}

	super, err := decoded.SuperClassName()
	if err != nil {
		t.Fatalf("SuperClassName: %v", err)
	}
	if super != "java/lang/Object" {
		t.Errorf("SuperClassName: got %q, want %q", super, "java/lang/Object")
	}

	method := decoded.FindMethod("identity", "(I)I")
	if method == nil {
		t.Fatal("identity method not found after round trip")
	}
	if method.Code == nil {
		t.Fatal("identity method lost its Code attribute")
	}
	if !bytes.Equal(method.Code.Code, []byte{0x1a, 0xac}) {
		t.Errorf("Code bytes: got %v, want iload_0/ireturn", method.Code.Code)
	}
	if method.Code.MaxStack != 2 || method.Code.MaxLocals != 1 {
		t.Errorf("Code dims: got max_stack=%d max_locals=%d, want 2/1", method.Code.MaxStack, method.Code.MaxLocals)
	}

	field := decoded.FindField("counter")
	if field == nil {
		t.Fatal("counter field not found after round trip")
	}
	if field.AccessFlags&AccStatic == 0 {
		t.Error("counter field lost its static access flag")
	}

	reencoded, err := EncodeClass(decoded)
	if err != nil {
		t.Fatalf("EncodeClass(decoded): %v", err)
	}
	if !bytes.Equal(reencoded, encoded) {
		t.Error("re-encoding the decoded class did not reproduce the original bytes")
	}
}

func TestParseBadMagic(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte{0x00, 0x00, 0x00, 0x00}))
	var badMagic *BadMagic
	if !errors.As(err, &badMagic) {
		t.Fatalf("got %v, want *BadMagic", err)
	}
}

func TestParseTruncated(t *testing.T) {
	encoded, err := EncodeClass(buildSample(t))
	if err != nil {
		t.Fatalf("EncodeClass: %v", err)
	}

	_, err = Parse(bytes.NewReader(encoded[:10]))
	var truncated *Truncated
	if !errors.As(err, &truncated) {
		t.Fatalf("got %v, want *Truncated", err)
	}
}

func TestParseUnknownAttributeIsFatal(t *testing.T) {
	b := NewBuilder()
	cf := b.Build("Bare", "java/lang/Object", AccPublic, 0, 52)
	nameIdx := b.Utf8("MysteryAttribute")
	cf.Attributes = append(cf.Attributes, AttributeInfo{Name: "MysteryAttribute", Body: nil})
	cf.ConstantPool = b.pool

	// EncodeClass can't serialize an attribute with an unrecognized body
	// kind either — it fails the same way Parse does, confirming the
	// encoder and decoder agree on the supported attribute set.
	_, err := EncodeClass(cf)
	var unknown *UnknownAttribute
	if !errors.As(err, &unknown) {
		t.Fatalf("EncodeClass: got %v, want *UnknownAttribute", err)
	}

	// Parse: encode the class without the attribute, then replace the
	// trailing attributes_count (0) with one class-level attribute named
	// MysteryAttribute and an empty body.
	cf.Attributes = nil
	wire, err := EncodeClass(cf)
	if err != nil {
		t.Fatalf("EncodeClass without attribute: %v", err)
	}
	wire = append(wire[:len(wire)-2], 0x00, 0x01, byte(nameIdx>>8), byte(nameIdx), 0, 0, 0, 0)
	_, err = Parse(bytes.NewReader(wire))
	if !errors.As(err, &unknown) {
		t.Fatalf("Parse: got %v, want *UnknownAttribute", err)
	}
}
