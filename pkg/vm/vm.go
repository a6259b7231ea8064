package vm

import (
	"fmt"

	"github.com/nrkt/classvm/pkg/classfile"
	"github.com/nrkt/classvm/pkg/native"
	"github.com/sirupsen/logrus"
)

// maxFrameDepth is a defensive recursion guard on the host call stack
// that mirrors the interpreted frame stack (spec §5: "a single native
// call stack ... via ordinary host recursion"). It is not one of
// spec §7's named execution errors — it exists only to turn a
// malformed program's infinite recursion into a reported error instead
// of a host stack overflow.
const maxFrameDepth = 2048

// VM owns every process-wide resource spec §5 names: the class list
// (via loader), the instance heap, static field cells, and the
// shutdown status. All four live as struct fields rather than package
// globals, so a future multi-threaded embedding would only need to
// guard one VM value.
type VM struct {
	loader     *ClassLoader
	heap       *Heap
	statics    *staticTable
	shutdown   ShutdownStatus
	clinitDone map[string]bool
	frameDepth int
	log        logrus.FieldLogger
}

// New creates a VM with an empty class loader, heap, and static table.
func New(log logrus.FieldLogger) *VM {
	if log == nil {
		log = logrus.StandardLogger()
	}
	vm := &VM{
		heap:       NewHeap(),
		statics:    newStaticTable(),
		clinitDone: make(map[string]bool),
		log:        log,
	}
	vm.loader = NewClassLoader(vm)
	return vm
}

// Shutdown implements native.Effects: it is how a native (halt0) sets
// the shutdown status. The only other writer is invokeNative, which
// sets status 1 when a native symbol is missing.
func (vm *VM) Shutdown(status int32) {
	if !vm.shutdown.Requested() {
		vm.log.WithField("status", status).Debug("native shutdown requested")
	}
	vm.shutdown.Request(status)
}

// LoadAll decodes and initializes every source in order, delegating to
// the class loader.
func (vm *VM) LoadAll(sources []Source) error {
	return vm.loader.LoadAll(sources)
}

// Lookup finds a loaded class by internal name.
func (vm *VM) Lookup(name string) (*classfile.ClassFile, error) {
	return vm.loader.Lookup(name)
}

// ShutdownRequested reports whether a native call has requested
// process shutdown.
func (vm *VM) ShutdownRequested() bool { return vm.shutdown.Requested() }

// ShutdownCode returns the requested shutdown status.
func (vm *VM) ShutdownCode() int32 { return vm.shutdown.Status() }

// InvokeMain locates main in the given class and invokes it with an
// initial caller frame of (stack=1, locals=0), per spec §4.9. Returns
// the value ireturn'd, or 0 if main returned via plain `return`.
func (vm *VM) InvokeMain(className string) (int32, error) {
	cf, err := vm.loader.Lookup(className)
	if err != nil {
		return 0, err
	}
	method := cf.FindMethodByName("main")
	if method == nil {
		return 0, &MethodNotFound{ClassName: className, MethodName: "main"}
	}

	caller := NewFrame(1, 0, nil, nil)
	return vm.invoke(cf, method, caller)
}

// runClinit runs a class's <clinit> exactly once, at load time (spec
// invariant: "A class's <clinit> runs at most once (at load); user
// code never invokes it directly").
func (vm *VM) runClinit(className string, cf *classfile.ClassFile) error {
	if vm.clinitDone[className] {
		return nil
	}
	vm.clinitDone[className] = true

	clinit := cf.FindMethod("<clinit>", "()V")
	if clinit == nil {
		return nil
	}
	vm.log.WithField("class", className).Debug("running <clinit>")

	caller := NewFrame(0, 0, nil, nil)
	_, err := vm.invoke(cf, clinit, caller)
	return err
}

// invoke executes method, popping its arguments from caller's operand
// stack into a freshly allocated frame, per the ABI in spec §4.7:
// non-static local 0 is the receiver; locals 1..P (non-static) or
// 0..P-1 (static) come from the caller's stack in reverse order (last
// argument topmost on the caller's stack lands in the highest-numbered
// local); the receiver, if any, is popped last (i.e. after the
// parameters, since it was pushed first by the caller).
func (vm *VM) invoke(cf *classfile.ClassFile, method *classfile.MethodInfo, caller *Frame) (int32, error) {
	if vm.shutdown.Requested() {
		return 0, nil
	}

	className, err := cf.ClassName()
	if err != nil {
		return 0, err
	}

	paramCount, err := classfile.ParamCount(method.Descriptor)
	if err != nil {
		return 0, err
	}
	isStatic := method.AccessFlags&classfile.AccStatic != 0

	if method.AccessFlags&classfile.AccNative != 0 {
		return vm.invokeNative(className, method, caller, paramCount, isStatic)
	}

	if method.Code == nil {
		return 0, fmt.Errorf("method %s.%s has no Code attribute and is not native", className, method.Name)
	}

	vm.frameDepth++
	if vm.frameDepth > maxFrameDepth {
		vm.frameDepth--
		return 0, fmt.Errorf("recursion limit exceeded (%d)", maxFrameDepth)
	}
	defer func() { vm.frameDepth-- }()

	frame := NewFrame(method.Code.MaxStack, method.Code.MaxLocals, method.Code.Code, cf)

	args := make([]Value, paramCount)
	for i := paramCount - 1; i >= 0; i-- {
		v, err := caller.Pop()
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	for i, v := range args {
		localIdx := i
		if isStatic {
			localIdx = i
		} else {
			localIdx = i + 1
		}
		if err := frame.SetLocal(localIdx, v); err != nil {
			return 0, err
		}
	}
	if !isStatic {
		receiver, err := caller.Pop()
		if err != nil {
			return 0, err
		}
		if err := frame.SetLocal(0, receiver); err != nil {
			return 0, err
		}
	}

	return vm.run(frame)
}

// invokeNative pops the method's arguments off caller's stack (the
// same ABI as a non-native invocation, receiver included for
// non-static natives) and dispatches through the native registry.
func (vm *VM) invokeNative(className string, method *classfile.MethodInfo, caller *Frame, paramCount int, isStatic bool) (int32, error) {
	args := make([]int32, paramCount)
	for i := paramCount - 1; i >= 0; i-- {
		v, err := caller.Pop()
		if err != nil {
			return 0, err
		}
		args[i] = v.Int
	}
	if !isStatic {
		if _, err := caller.Pop(); err != nil {
			return 0, err
		}
	}

	fn, ok := native.Resolve(className, method.Name)
	if !ok {
		vm.log.WithFields(logrus.Fields{"class": className, "method": method.Name}).Warn("native symbol missing")
		vm.shutdown.Request(1)
		return 0, nil
	}
	return fn(args, vm)
}
