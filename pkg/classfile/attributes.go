package classfile

// recognized attribute names. Anything else is a fatal UnknownAttribute
// (spec §4.2: strict mode, no silent skip-by-length).
const (
	attrCode             = "Code"
	attrSourceFile       = "SourceFile"
	attrLineNumberTable  = "LineNumberTable"
)

// parseAttributes reads `count` attributes: name_index, length, body.
// Each body is dispatched by the resolved name string; an unrecognized
// name fails the whole decode rather than being skipped by its
// declared length.
func parseAttributes(rd *reader, pool []ConstantPoolEntry, count uint16) ([]AttributeInfo, error) {
	attrs := make([]AttributeInfo, count)
	for i := uint16(0); i < count; i++ {
		nameIndex, err := rd.readU16("attribute name_index")
		if err != nil {
			return nil, err
		}
		length, err := rd.readU32("attribute length")
		if err != nil {
			return nil, err
		}
		raw, err := rd.readBytes(int(length), "attribute data")
		if err != nil {
			return nil, err
		}

		name, err := GetUtf8(pool, nameIndex)
		if err != nil {
			return nil, err
		}

		body, err := decodeAttributeBody(name, raw, pool)
		if err != nil {
			return nil, err
		}
		attrs[i] = AttributeInfo{Name: name, Body: body}
	}
	return attrs, nil
}

func decodeAttributeBody(name string, data []byte, pool []ConstantPoolEntry) (any, error) {
	switch name {
	case attrCode:
		return parseCodeAttribute(data, pool)
	case attrSourceFile:
		return parseSourceFileAttribute(data)
	case attrLineNumberTable:
		return parseLineNumberTableAttribute(data)
	default:
		return nil, &UnknownAttribute{Name: name}
	}
}

func parseSourceFileAttribute(data []byte) (*SourceFileAttribute, error) {
	rd := newReader(byteSliceReader(data))
	index, err := rd.readU16("SourceFile sourcefile_index")
	if err != nil {
		return nil, err
	}
	return &SourceFileAttribute{SourceFileIndex: index}, nil
}

func parseLineNumberTableAttribute(data []byte) (*LineNumberTableAttribute, error) {
	rd := newReader(byteSliceReader(data))
	count, err := rd.readU16("LineNumberTable count")
	if err != nil {
		return nil, err
	}
	entries := make([]LineNumberEntry, count)
	for i := uint16(0); i < count; i++ {
		startPC, err := rd.readU16("LineNumberTable start_pc")
		if err != nil {
			return nil, err
		}
		line, err := rd.readU16("LineNumberTable line_number")
		if err != nil {
			return nil, err
		}
		entries[i] = LineNumberEntry{StartPC: startPC, LineNumber: line}
	}
	return &LineNumberTableAttribute{Entries: entries}, nil
}

// parseCodeAttribute decodes a Code attribute's body: max_stack,
// max_locals, the opcode stream, the exception table (parsed but not
// enforced), and nested attributes (LineNumberTable recursively).
func parseCodeAttribute(data []byte, pool []ConstantPoolEntry) (*CodeAttribute, error) {
	rd := newReader(byteSliceReader(data))

	maxStack, err := rd.readU16("Code max_stack")
	if err != nil {
		return nil, err
	}
	maxLocals, err := rd.readU16("Code max_locals")
	if err != nil {
		return nil, err
	}
	codeLength, err := rd.readU32("Code code_length")
	if err != nil {
		return nil, err
	}
	code, err := rd.readBytes(int(codeLength), "Code code bytes")
	if err != nil {
		return nil, err
	}

	exTableLen, err := rd.readU16("Code exception_table_length")
	if err != nil {
		return nil, err
	}
	handlers := make([]ExceptionHandler, exTableLen)
	for i := uint16(0); i < exTableLen; i++ {
		startPC, err := rd.readU16("exception_table start_pc")
		if err != nil {
			return nil, err
		}
		endPC, err := rd.readU16("exception_table end_pc")
		if err != nil {
			return nil, err
		}
		handlerPC, err := rd.readU16("exception_table handler_pc")
		if err != nil {
			return nil, err
		}
		catchType, err := rd.readU16("exception_table catch_type")
		if err != nil {
			return nil, err
		}
		handlers[i] = ExceptionHandler{StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType}
	}

	attrCount, err := rd.readU16("Code attributes_count")
	if err != nil {
		return nil, err
	}
	nested, err := parseAttributes(rd, pool, attrCount)
	if err != nil {
		return nil, err
	}

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: handlers,
		Attributes:     nested,
	}, nil
}
