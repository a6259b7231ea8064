package vm

import "github.com/nrkt/classvm/pkg/classfile"

// Opcode values for the 23-instruction subset this interpreter
// supports (spec §4.7). Anything else decoded from a Code array is an
// UnknownOpcode execution error.
const (
	opIconstM1 = 0x02
	opIconst0  = 0x03
	opIconst1  = 0x04
	opBipush   = 0x10
	opIload0   = 0x1a
	opIload1   = 0x1b
	opAload0   = 0x2a
	opAload1   = 0x2b
	opIstore1  = 0x3c
	opAstore1  = 0x4c
	opDup      = 0x59
	opIadd     = 0x60
	opIsub     = 0x64
	opIreturn  = 0xac
	opReturn   = 0xb1
	opGetstatic = 0xb2
	opPutstatic = 0xb3
	opGetfield  = 0xb4
	opPutfield  = 0xb5
	opInvokevirtual = 0xb6
	opInvokespecial = 0xb7
	opInvokestatic  = 0xb8
	opNew           = 0xbb
)

// run is the fetch-decode-execute loop for one frame. It returns the
// value passed to ireturn, or 0 for a plain return. Shutdown status is
// checked at every instruction boundary (spec: "the interpreter checks
// [it] between instructions, not mid-instruction"), which lets an
// in-flight halt0 call unwind the whole call stack promptly once its
// own native call returns.
func (vm *VM) run(f *Frame) (int32, error) {
	for {
		if vm.shutdown.Requested() {
			return 0, nil
		}

		op, err := f.fetch()
		if err != nil {
			return 0, err
		}

		switch op {
		case opIconstM1:
			err = f.Push(IntValue(-1))
		case opIconst0:
			err = f.Push(IntValue(0))
		case opIconst1:
			err = f.Push(IntValue(1))
		case opBipush:
			var b int32
			b, err = f.readI8()
			if err == nil {
				err = f.Push(IntValue(b))
			}
		case opIload0:
			err = vm.loadLocal(f, 0)
		case opIload1:
			err = vm.loadLocal(f, 1)
		case opAload0:
			err = vm.loadLocal(f, 0)
		case opAload1:
			err = vm.loadLocal(f, 1)
		case opIstore1:
			err = vm.storeLocal(f, 1)
		case opAstore1:
			err = vm.storeLocal(f, 1)
		case opDup:
			err = vm.execDup(f)
		case opIadd:
			err = vm.execBinary(f, func(a, b int32) int32 { return a + b })
		case opIsub:
			err = vm.execBinary(f, func(a, b int32) int32 { return a - b })
		case opIreturn:
			var v Value
			v, err = f.Pop()
			if err == nil {
				return v.Int, nil
			}
		case opReturn:
			return 0, nil
		case opGetstatic:
			err = vm.execGetstatic(f)
		case opPutstatic:
			err = vm.execPutstatic(f)
		case opGetfield:
			err = vm.execGetfield(f)
		case opPutfield:
			err = vm.execPutfield(f)
		case opInvokevirtual:
			err = vm.execInvoke(f)
		case opInvokespecial:
			err = vm.execInvoke(f)
		case opInvokestatic:
			err = vm.execInvoke(f)
		case opNew:
			err = vm.execNew(f)
		default:
			err = unknownOpcode(op, f.PC-1)
		}

		if err != nil {
			return 0, err
		}
	}
}

func (vm *VM) loadLocal(f *Frame, index int) error {
	v, err := f.GetLocal(index)
	if err != nil {
		return err
	}
	return f.Push(v)
}

func (vm *VM) storeLocal(f *Frame, index int) error {
	v, err := f.Pop()
	if err != nil {
		return err
	}
	return f.SetLocal(index, v)
}

func (vm *VM) execDup(f *Frame) error {
	v, err := f.Pop()
	if err != nil {
		return err
	}
	if err := f.Push(v); err != nil {
		return err
	}
	return f.Push(v)
}

func (vm *VM) execBinary(f *Frame, op func(a, b int32) int32) error {
	b, err := f.Pop()
	if err != nil {
		return err
	}
	a, err := f.Pop()
	if err != nil {
		return err
	}
	return f.Push(IntValue(op(a.Int, b.Int)))
}

func (vm *VM) execGetstatic(f *Frame) error {
	index, err := f.readU16()
	if err != nil {
		return err
	}
	className, field, err := vm.resolveFieldref(f.Class.ConstantPool, index)
	if err != nil {
		return err
	}
	cell, err := vm.statics.get(className, field.Name)
	if err != nil {
		return err
	}
	return f.Push(cell.Value)
}

func (vm *VM) execPutstatic(f *Frame) error {
	index, err := f.readU16()
	if err != nil {
		return err
	}
	className, field, err := vm.resolveFieldref(f.Class.ConstantPool, index)
	if err != nil {
		return err
	}
	cell, err := vm.statics.get(className, field.Name)
	if err != nil {
		return err
	}
	v, err := f.Pop()
	if err != nil {
		return err
	}
	cell.Value = v
	return nil
}

func (vm *VM) execGetfield(f *Frame) error {
	index, err := f.readU16()
	if err != nil {
		return err
	}
	_, field, err := vm.resolveFieldref(f.Class.ConstantPool, index)
	if err != nil {
		return err
	}
	ref, err := f.Pop()
	if err != nil {
		return err
	}
	inst, err := vm.heap.Get(ref.Int)
	if err != nil {
		return err
	}
	cell, ok := inst.Fields[field.Name]
	if !ok {
		return &FieldNotFound{FieldName: field.Name}
	}
	return f.Push(cell.Value)
}

func (vm *VM) execPutfield(f *Frame) error {
	index, err := f.readU16()
	if err != nil {
		return err
	}
	_, field, err := vm.resolveFieldref(f.Class.ConstantPool, index)
	if err != nil {
		return err
	}
	v, err := f.Pop()
	if err != nil {
		return err
	}
	ref, err := f.Pop()
	if err != nil {
		return err
	}
	inst, err := vm.heap.Get(ref.Int)
	if err != nil {
		return err
	}
	cell, ok := inst.Fields[field.Name]
	if !ok {
		return &FieldNotFound{FieldName: field.Name}
	}
	cell.Value = v
	return nil
}

// execInvoke implements invokevirtual, invokespecial, and
// invokestatic identically: all three resolve the Methodref by name
// only and dispatch to that exact method, since this VM has no
// receiver-type-based virtual dispatch (spec: "there is exactly one
// implementation of any given method name in this program, so virtual
// dispatch and static dispatch coincide").
func (vm *VM) execInvoke(f *Frame) error {
	index, err := f.readU16()
	if err != nil {
		return err
	}
	cf, method, err := vm.resolveMethodref(f.Class.ConstantPool, index)
	if err != nil {
		return err
	}
	result, err := vm.invoke(cf, method, f)
	if err != nil {
		return err
	}
	if method.Descriptor[len(method.Descriptor)-1] != 'V' {
		return f.Push(IntValue(result))
	}
	return nil
}

func (vm *VM) execNew(f *Frame) error {
	index, err := f.readU16()
	if err != nil {
		return err
	}
	className, err := classfile.GetClassName(f.Class.ConstantPool, index)
	if err != nil {
		return err
	}
	cf, err := vm.loader.Lookup(className)
	if err != nil {
		return err
	}
	ref, err := vm.heap.New(cf)
	if err != nil {
		return err
	}
	return f.Push(RefValue(ref))
}
