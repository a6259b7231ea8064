package classfile

import (
	"io"
	"os"
)

const classMagic = 0xCAFEBABE

// ParseFile opens and parses a .class file from the given path.
func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a class file from r in the fixed order the format
// defines: magic, minor/major version, constant pool, access flags,
// this/super, interfaces, fields, methods, class attributes.
func Parse(r io.Reader) (*ClassFile, error) {
	rd := newReader(r)
	cf := &ClassFile{}

	magic, err := rd.readU32("magic")
	if err != nil {
		return nil, err
	}
	if magic != classMagic {
		return nil, &BadMagic{Got: magic}
	}

	if cf.MinorVersion, err = rd.readU16("minor_version"); err != nil {
		return nil, err
	}
	if cf.MajorVersion, err = rd.readU16("major_version"); err != nil {
		return nil, err
	}

	cpCount, err := rd.readU16("constant_pool_count")
	if err != nil {
		return nil, err
	}
	if cf.ConstantPool, err = parseConstantPool(rd, cpCount); err != nil {
		return nil, err
	}

	if cf.AccessFlags, err = rd.readU16("access_flags"); err != nil {
		return nil, err
	}
	if cf.ThisClass, err = rd.readU16("this_class"); err != nil {
		return nil, err
	}
	if cf.SuperClass, err = rd.readU16("super_class"); err != nil {
		return nil, err
	}

	interfacesCount, err := rd.readU16("interfaces_count")
	if err != nil {
		return nil, err
	}
	cf.Interfaces = make([]uint16, interfacesCount)
	for i := uint16(0); i < interfacesCount; i++ {
		if cf.Interfaces[i], err = rd.readU16("interface"); err != nil {
			return nil, err
		}
	}

	fieldsCount, err := rd.readU16("fields_count")
	if err != nil {
		return nil, err
	}
	if cf.Fields, err = parseFields(rd, cf.ConstantPool, fieldsCount); err != nil {
		return nil, err
	}

	methodsCount, err := rd.readU16("methods_count")
	if err != nil {
		return nil, err
	}
	if cf.Methods, err = parseMethods(rd, cf.ConstantPool, methodsCount); err != nil {
		return nil, err
	}

	attrsCount, err := rd.readU16("attributes_count")
	if err != nil {
		return nil, err
	}
	if cf.Attributes, err = parseAttributes(rd, cf.ConstantPool, attrsCount); err != nil {
		return nil, err
	}

	return cf, nil
}

func parseFields(rd *reader, pool []ConstantPoolEntry, count uint16) ([]FieldInfo, error) {
	fields := make([]FieldInfo, count)
	for i := uint16(0); i < count; i++ {
		accessFlags, err := rd.readU16("field access_flags")
		if err != nil {
			return nil, err
		}
		nameIndex, err := rd.readU16("field name_index")
		if err != nil {
			return nil, err
		}
		descIndex, err := rd.readU16("field descriptor_index")
		if err != nil {
			return nil, err
		}
		attrCount, err := rd.readU16("field attributes_count")
		if err != nil {
			return nil, err
		}

		name, err := GetUtf8(pool, nameIndex)
		if err != nil {
			return nil, err
		}
		desc, err := GetUtf8(pool, descIndex)
		if err != nil {
			return nil, err
		}
		attrs, err := parseAttributes(rd, pool, attrCount)
		if err != nil {
			return nil, err
		}

		fields[i] = FieldInfo{AccessFlags: accessFlags, Name: name, Descriptor: desc, Attributes: attrs}
	}
	return fields, nil
}

func parseMethods(rd *reader, pool []ConstantPoolEntry, count uint16) ([]MethodInfo, error) {
	methods := make([]MethodInfo, count)
	for i := uint16(0); i < count; i++ {
		accessFlags, err := rd.readU16("method access_flags")
		if err != nil {
			return nil, err
		}
		nameIndex, err := rd.readU16("method name_index")
		if err != nil {
			return nil, err
		}
		descIndex, err := rd.readU16("method descriptor_index")
		if err != nil {
			return nil, err
		}
		attrCount, err := rd.readU16("method attributes_count")
		if err != nil {
			return nil, err
		}

		name, err := GetUtf8(pool, nameIndex)
		if err != nil {
			return nil, err
		}
		desc, err := GetUtf8(pool, descIndex)
		if err != nil {
			return nil, err
		}
		attrs, err := parseAttributes(rd, pool, attrCount)
		if err != nil {
			return nil, err
		}

		methods[i] = MethodInfo{
			AccessFlags: accessFlags,
			Name:        name,
			Descriptor:  desc,
			Attributes:  attrs,
			Code:        codeAttributeOf(attrs),
		}
	}
	return methods, nil
}
