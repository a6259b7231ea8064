package classfile

// parseConstantPool reads constant_pool_count-1 entries. The returned
// slice is 1-indexed: index 0 is nil and never touched.
func parseConstantPool(rd *reader, count uint16) ([]ConstantPoolEntry, error) {
	pool := make([]ConstantPoolEntry, count)

	for i := uint16(1); i < count; i++ {
		tag, err := rd.readU8("constant pool tag")
		if err != nil {
			return nil, err
		}

		switch tag {
		case TagUtf8:
			length, err := rd.readU16("Utf8 length")
			if err != nil {
				return nil, err
			}
			raw, err := rd.readBytes(int(length), "Utf8 bytes")
			if err != nil {
				return nil, err
			}
			pool[i] = &ConstantUtf8{Value: string(raw)}

		case TagClass:
			nameIndex, err := rd.readU16("Class name_index")
			if err != nil {
				return nil, err
			}
			pool[i] = &ConstantClass{NameIndex: nameIndex}

		case TagFieldref:
			classIndex, err := rd.readU16("Fieldref class_index")
			if err != nil {
				return nil, err
			}
			natIndex, err := rd.readU16("Fieldref name_and_type_index")
			if err != nil {
				return nil, err
			}
			pool[i] = &ConstantFieldref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}

		case TagMethodref:
			classIndex, err := rd.readU16("Methodref class_index")
			if err != nil {
				return nil, err
			}
			natIndex, err := rd.readU16("Methodref name_and_type_index")
			if err != nil {
				return nil, err
			}
			pool[i] = &ConstantMethodref{ClassIndex: classIndex, NameAndTypeIndex: natIndex}

		case TagNameAndType:
			nameIndex, err := rd.readU16("NameAndType name_index")
			if err != nil {
				return nil, err
			}
			descIndex, err := rd.readU16("NameAndType descriptor_index")
			if err != nil {
				return nil, err
			}
			pool[i] = &ConstantNameAndType{NameIndex: nameIndex, DescriptorIndex: descIndex}

		case TagInteger, TagFloat:
			if _, err := rd.readBytes(4, "4-byte constant"); err != nil {
				return nil, err
			}
			pool[i] = &unsupportedConstant{tag: tag}

		case TagLong, TagDouble:
			if _, err := rd.readBytes(8, "8-byte constant"); err != nil {
				return nil, err
			}
			pool[i] = &unsupportedConstant{tag: tag}
			i++ // long/double take two constant pool slots

		case TagString:
			if _, err := rd.readBytes(2, "String string_index"); err != nil {
				return nil, err
			}
			pool[i] = &unsupportedConstant{tag: tag}

		case TagInterfaceMethodref:
			if _, err := rd.readBytes(4, "InterfaceMethodref"); err != nil {
				return nil, err
			}
			pool[i] = &unsupportedConstant{tag: tag}

		case TagMethodHandle:
			if _, err := rd.readBytes(3, "MethodHandle"); err != nil {
				return nil, err
			}
			pool[i] = &unsupportedConstant{tag: tag}

		case TagMethodType:
			if _, err := rd.readBytes(2, "MethodType"); err != nil {
				return nil, err
			}
			pool[i] = &unsupportedConstant{tag: tag}

		case TagInvokeDynamic:
			if _, err := rd.readBytes(4, "InvokeDynamic"); err != nil {
				return nil, err
			}
			pool[i] = &unsupportedConstant{tag: tag}

		default:
			return nil, &UnsupportedTag{Tag: tag, Index: int(i)}
		}
	}

	return pool, nil
}

// entryAt returns the raw entry at index, or a CpIndexOutOfRange error
// if index is 0 or out of range for the pool.
func entryAt(pool []ConstantPoolEntry, index uint16) (ConstantPoolEntry, error) {
	if index == 0 || int(index) >= len(pool) {
		return nil, &CpIndexOutOfRange{Index: int(index), Count: len(pool)}
	}
	entry := pool[index]
	if entry == nil {
		return nil, &CpIndexOutOfRange{Index: int(index), Count: len(pool)}
	}
	return entry, nil
}

// Utf8At returns the Utf8 entry at index.
func Utf8At(pool []ConstantPoolEntry, index uint16) (*ConstantUtf8, error) {
	entry, err := entryAt(pool, index)
	if err != nil {
		return nil, err
	}
	utf8, ok := entry.(*ConstantUtf8)
	if !ok {
		return nil, &CpKindMismatch{Index: int(index), Got: entry.Tag(), Expected: "Utf8"}
	}
	return utf8, nil
}

// GetUtf8 returns the Utf8 string at index.
func GetUtf8(pool []ConstantPoolEntry, index uint16) (string, error) {
	utf8, err := Utf8At(pool, index)
	if err != nil {
		return "", err
	}
	return utf8.Value, nil
}

// ClassAt returns the Class entry at index.
func ClassAt(pool []ConstantPoolEntry, index uint16) (*ConstantClass, error) {
	entry, err := entryAt(pool, index)
	if err != nil {
		return nil, err
	}
	class, ok := entry.(*ConstantClass)
	if !ok {
		return nil, &CpKindMismatch{Index: int(index), Got: entry.Tag(), Expected: "Class"}
	}
	return class, nil
}

// GetClassName resolves a CONSTANT_Class entry to its internal name.
func GetClassName(pool []ConstantPoolEntry, classIndex uint16) (string, error) {
	class, err := ClassAt(pool, classIndex)
	if err != nil {
		return "", err
	}
	return GetUtf8(pool, class.NameIndex)
}

// NameAndTypeAt returns the NameAndType entry at index.
func NameAndTypeAt(pool []ConstantPoolEntry, index uint16) (*ConstantNameAndType, error) {
	entry, err := entryAt(pool, index)
	if err != nil {
		return nil, err
	}
	nat, ok := entry.(*ConstantNameAndType)
	if !ok {
		return nil, &CpKindMismatch{Index: int(index), Got: entry.Tag(), Expected: "NameAndType"}
	}
	return nat, nil
}

// MethodrefAt returns the Methodref entry at index.
func MethodrefAt(pool []ConstantPoolEntry, index uint16) (*ConstantMethodref, error) {
	entry, err := entryAt(pool, index)
	if err != nil {
		return nil, err
	}
	mref, ok := entry.(*ConstantMethodref)
	if !ok {
		return nil, &CpKindMismatch{Index: int(index), Got: entry.Tag(), Expected: "Methodref"}
	}
	return mref, nil
}

// FieldrefAt returns the Fieldref entry at index.
func FieldrefAt(pool []ConstantPoolEntry, index uint16) (*ConstantFieldref, error) {
	entry, err := entryAt(pool, index)
	if err != nil {
		return nil, err
	}
	fref, ok := entry.(*ConstantFieldref)
	if !ok {
		return nil, &CpKindMismatch{Index: int(index), Got: entry.Tag(), Expected: "Fieldref"}
	}
	return fref, nil
}

// RefInfo is the resolved (class name, member name, descriptor) triple
// shared by Methodref and Fieldref resolution.
type RefInfo struct {
	ClassName  string
	MemberName string
	Descriptor string
}

// ResolveMethodref resolves a CONSTANT_Methodref entry all the way
// through its NameAndType and Utf8 entries.
func ResolveMethodref(pool []ConstantPoolEntry, index uint16) (*RefInfo, error) {
	mref, err := MethodrefAt(pool, index)
	if err != nil {
		return nil, err
	}
	return resolveRef(pool, mref.ClassIndex, mref.NameAndTypeIndex)
}

// ResolveFieldref resolves a CONSTANT_Fieldref entry all the way
// through its NameAndType and Utf8 entries.
func ResolveFieldref(pool []ConstantPoolEntry, index uint16) (*RefInfo, error) {
	fref, err := FieldrefAt(pool, index)
	if err != nil {
		return nil, err
	}
	return resolveRef(pool, fref.ClassIndex, fref.NameAndTypeIndex)
}

func resolveRef(pool []ConstantPoolEntry, classIndex, natIndex uint16) (*RefInfo, error) {
	className, err := GetClassName(pool, classIndex)
	if err != nil {
		return nil, err
	}
	nat, err := NameAndTypeAt(pool, natIndex)
	if err != nil {
		return nil, err
	}
	memberName, err := GetUtf8(pool, nat.NameIndex)
	if err != nil {
		return nil, err
	}
	descriptor, err := GetUtf8(pool, nat.DescriptorIndex)
	if err != nil {
		return nil, err
	}
	return &RefInfo{ClassName: className, MemberName: memberName, Descriptor: descriptor}, nil
}
