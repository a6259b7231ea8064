package vm

import "github.com/nrkt/classvm/pkg/classfile"

// staticCell mirrors instanceCell's shape — a field's static value
// cell is shared per field-per-class and mutated in place by
// putstatic (spec §3).
type staticCell struct {
	Shape classfile.CellShape
	Value Value
}

// staticTable holds every loaded class's static field cells, keyed by
// className -> fieldName. Cells are allocated by allocate, which the
// class loader calls at load time right after a class is decoded and
// before its <clinit> runs; the decoder itself has no notion of a
// "cell".
type staticTable struct {
	classes map[string]map[string]*staticCell
}

func newStaticTable() *staticTable {
	return &staticTable{classes: make(map[string]map[string]*staticCell)}
}

// allocate creates zero-valued cells for every static field class
// declares, if not already done.
func (t *staticTable) allocate(className string, class *classfile.ClassFile) error {
	if _, ok := t.classes[className]; ok {
		return nil
	}
	cells := make(map[string]*staticCell)
	for _, f := range class.Fields {
		if f.AccessFlags&classfile.AccStatic == 0 {
			continue
		}
		shape, err := classfile.FieldCellShape(f.Descriptor)
		if err != nil {
			return err
		}
		cell := &staticCell{Shape: shape}
		if shape == classfile.CellRef {
			cell.Value = NullValue()
		}
		cells[f.Name] = cell
	}
	t.classes[className] = cells
	return nil
}

func (t *staticTable) get(className, fieldName string) (*staticCell, error) {
	cells, ok := t.classes[className]
	if !ok {
		return nil, &FieldNotFound{ClassName: className, FieldName: fieldName}
	}
	cell, ok := cells[fieldName]
	if !ok {
		return nil, &FieldNotFound{ClassName: className, FieldName: fieldName}
	}
	return cell, nil
}
