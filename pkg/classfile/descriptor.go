package classfile

// CellShape is the storage shape of a field's static or instance
// value cell, as determined by its descriptor.
type CellShape int

const (
	// CellInt holds a 32-bit signed integer (descriptor "I").
	CellInt CellShape = iota
	// CellRef holds a 32-bit instance-table index, or -1 for null
	// (descriptor "L...;").
	CellRef
)

// FieldCellShape classifies a field descriptor into its cell shape.
// Only "I" and "L...;" are supported; anything else is
// UnsupportedDescriptor, per spec.
func FieldCellShape(descriptor string) (CellShape, error) {
	if descriptor == "I" {
		return CellInt, nil
	}
	if len(descriptor) >= 2 && descriptor[0] == 'L' && descriptor[len(descriptor)-1] == ';' {
		return CellRef, nil
	}
	return 0, &UnsupportedDescriptor{Descriptor: descriptor, Reason: "field descriptor must be I or L...;"}
}

// ParamCount walks a method descriptor "(params)return" and returns the
// number of parameter slots. The return descriptor is not inspected.
// Method arity goes through this routine and field/cell sizing through
// FieldCellShape; both live in this one file.
func ParamCount(descriptor string) (int, error) {
	if len(descriptor) == 0 || descriptor[0] != '(' {
		return 0, &UnsupportedDescriptor{Descriptor: descriptor, Reason: "missing opening ("}
	}
	count := 0
	i := 1
	for i < len(descriptor) && descriptor[i] != ')' {
		switch descriptor[i] {
		case 'I':
			count++
			i++
		case 'L':
			end := i + 1
			for end < len(descriptor) && descriptor[end] != ';' {
				end++
			}
			if end >= len(descriptor) {
				return 0, &UnsupportedDescriptor{Descriptor: descriptor, Reason: "unterminated L...; parameter"}
			}
			count++
			i = end + 1
		case '[':
			// Array support is stubbed: the leading '[' is consumed
			// and the element type beneath it still contributes one
			// slot to the surrounding parameter.
			i++
		default:
			return 0, &UnsupportedDescriptor{Descriptor: descriptor, Reason: "unrecognized parameter character"}
		}
	}
	if i >= len(descriptor) {
		return 0, &UnsupportedDescriptor{Descriptor: descriptor, Reason: "missing closing )"}
	}
	return count, nil
}
