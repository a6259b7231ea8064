// Package native resolves native method symbols of the form
// Java_<mangled-class>_<method> (spec §4.8) to host-provided Go
// functions. The "host-resolvable symbol table" here is a compile-time
// map populated by each native-providing file's init(), rather than a
// dlopen'd shared library — the idiomatic Go substitute for the source
// format's native-library loading, with no cgo and no dynamic loading.
package native

import "strings"

// Func is a native method implementation. It receives the method's
// popped arguments (in declared-parameter order) and the VM-side
// effects hook, and returns a value (ignored for void-returning
// methods) or an error.
type Func func(args []int32, effects Effects) (int32, error)

// Effects is the narrow surface natives need back into the VM,
// intentionally limited to what spec §4.8 requires: requesting
// process shutdown. Passing the whole VM would let a native reach
// into frames/heap/statics, which no native in this VM needs to do.
type Effects interface {
	Shutdown(status int32)
}

var registry = make(map[string]Func)

// Register adds a native function under its mangled symbol name. Called
// from init() in files that provide natives (system.go, ...).
func Register(symbol string, fn Func) {
	registry[symbol] = fn
}

// Mangle forms the symbol name for className.methodName, replacing '/'
// with '_' in the class name per spec §4.8.
func Mangle(className, methodName string) string {
	return "Java_" + strings.ReplaceAll(className, "/", "_") + "_" + methodName
}

// Resolve looks up the native function for className.methodName.
// Returns ok=false if no such symbol was registered (spec:
// "Missing natives set the shutdown status to 1 and abort the current
// invocation").
func Resolve(className, methodName string) (Func, bool) {
	fn, ok := registry[Mangle(className, methodName)]
	return fn, ok
}
