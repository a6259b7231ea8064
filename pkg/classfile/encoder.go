package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// EncodeClass re-serializes a ClassFile to wire bytes. It is the
// structural mirror of Parse/parseFields/parseMethods/parseAttributes
// — same field order, same tag constants — so the two can't drift
// independently. Only the supported constant-pool tag set
// (Utf8/Class/Fieldref/Methodref/NameAndType) can be encoded; a pool
// containing any other tag fails with UnsupportedConstant.
func EncodeClass(cf *ClassFile) ([]byte, error) {
	var buf bytes.Buffer

	writeU32(&buf, classMagic)
	writeU16(&buf, cf.MinorVersion)
	writeU16(&buf, cf.MajorVersion)

	writeU16(&buf, uint16(len(cf.ConstantPool)))
	for i := 1; i < len(cf.ConstantPool); i++ {
		entry := cf.ConstantPool[i]
		if entry == nil {
			continue // hole left by a preceding Long/Double-shaped entry
		}
		if err := encodeConstant(&buf, entry); err != nil {
			return nil, fmt.Errorf("encoding constant pool index %d: %w", i, err)
		}
	}

	writeU16(&buf, cf.AccessFlags)
	writeU16(&buf, cf.ThisClass)
	writeU16(&buf, cf.SuperClass)

	writeU16(&buf, uint16(len(cf.Interfaces)))
	for _, idx := range cf.Interfaces {
		writeU16(&buf, idx)
	}

	writeU16(&buf, uint16(len(cf.Fields)))
	for _, f := range cf.Fields {
		nameIdx, err := utf8IndexOf(cf.ConstantPool, f.Name)
		if err != nil {
			return nil, err
		}
		descIdx, err := utf8IndexOf(cf.ConstantPool, f.Descriptor)
		if err != nil {
			return nil, err
		}
		writeU16(&buf, f.AccessFlags)
		writeU16(&buf, nameIdx)
		writeU16(&buf, descIdx)
		if err := encodeAttributes(&buf, cf.ConstantPool, f.Attributes); err != nil {
			return nil, err
		}
	}

	writeU16(&buf, uint16(len(cf.Methods)))
	for _, m := range cf.Methods {
		nameIdx, err := utf8IndexOf(cf.ConstantPool, m.Name)
		if err != nil {
			return nil, err
		}
		descIdx, err := utf8IndexOf(cf.ConstantPool, m.Descriptor)
		if err != nil {
			return nil, err
		}
		writeU16(&buf, m.AccessFlags)
		writeU16(&buf, nameIdx)
		writeU16(&buf, descIdx)
		if err := encodeAttributes(&buf, cf.ConstantPool, m.Attributes); err != nil {
			return nil, err
		}
	}

	if err := encodeAttributes(&buf, cf.ConstantPool, cf.Attributes); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func encodeConstant(buf *bytes.Buffer, entry ConstantPoolEntry) error {
	switch c := entry.(type) {
	case *ConstantUtf8:
		writeU8(buf, TagUtf8)
		raw := []byte(c.Value)
		writeU16(buf, uint16(len(raw)))
		buf.Write(raw)
	case *ConstantClass:
		writeU8(buf, TagClass)
		writeU16(buf, c.NameIndex)
	case *ConstantFieldref:
		writeU8(buf, TagFieldref)
		writeU16(buf, c.ClassIndex)
		writeU16(buf, c.NameAndTypeIndex)
	case *ConstantMethodref:
		writeU8(buf, TagMethodref)
		writeU16(buf, c.ClassIndex)
		writeU16(buf, c.NameAndTypeIndex)
	case *ConstantNameAndType:
		writeU8(buf, TagNameAndType)
		writeU16(buf, c.NameIndex)
		writeU16(buf, c.DescriptorIndex)
	default:
		return &UnsupportedConstant{Tag: entry.Tag()}
	}
	return nil
}

func encodeAttributes(buf *bytes.Buffer, pool []ConstantPoolEntry, attrs []AttributeInfo) error {
	writeU16(buf, uint16(len(attrs)))
	for _, a := range attrs {
		nameIdx, err := utf8IndexOf(pool, a.Name)
		if err != nil {
			return err
		}
		body, err := encodeAttributeBody(pool, a)
		if err != nil {
			return err
		}
		writeU16(buf, nameIdx)
		writeU32(buf, uint32(len(body)))
		buf.Write(body)
	}
	return nil
}

func encodeAttributeBody(pool []ConstantPoolEntry, attr AttributeInfo) ([]byte, error) {
	switch b := attr.Body.(type) {
	case *CodeAttribute:
		return encodeCodeAttribute(pool, b)
	case *SourceFileAttribute:
		var body bytes.Buffer
		writeU16(&body, b.SourceFileIndex)
		return body.Bytes(), nil
	case *LineNumberTableAttribute:
		var body bytes.Buffer
		writeU16(&body, uint16(len(b.Entries)))
		for _, e := range b.Entries {
			writeU16(&body, e.StartPC)
			writeU16(&body, e.LineNumber)
		}
		return body.Bytes(), nil
	default:
		return nil, &UnknownAttribute{Name: attr.Name}
	}
}

func encodeCodeAttribute(pool []ConstantPoolEntry, code *CodeAttribute) ([]byte, error) {
	var body bytes.Buffer
	writeU16(&body, code.MaxStack)
	writeU16(&body, code.MaxLocals)
	writeU32(&body, uint32(len(code.Code)))
	body.Write(code.Code)
	writeU16(&body, uint16(len(code.ExceptionTable)))
	for _, h := range code.ExceptionTable {
		writeU16(&body, h.StartPC)
		writeU16(&body, h.EndPC)
		writeU16(&body, h.HandlerPC)
		writeU16(&body, h.CatchType)
	}
	if err := encodeAttributes(&body, pool, code.Attributes); err != nil {
		return nil, err
	}
	return body.Bytes(), nil
}

// utf8IndexOf finds the index of a Utf8 entry whose value equals s.
// Every name/descriptor string stored in a ClassFile's Fields/Methods/
// Attributes was originally resolved from such an entry (by Parse) or
// interned into one (by Builder), so this always succeeds for a
// well-formed ClassFile.
func utf8IndexOf(pool []ConstantPoolEntry, s string) (uint16, error) {
	for i, entry := range pool {
		if utf8, ok := entry.(*ConstantUtf8); ok && utf8.Value == s {
			return uint16(i), nil
		}
	}
	return 0, fmt.Errorf("no Utf8 constant pool entry for %q", s)
}

func writeU8(buf *bytes.Buffer, v uint8)   { binary.Write(buf, binary.BigEndian, v) }
func writeU16(buf *bytes.Buffer, v uint16) { binary.Write(buf, binary.BigEndian, v) }
func writeU32(buf *bytes.Buffer, v uint32) { binary.Write(buf, binary.BigEndian, v) }
