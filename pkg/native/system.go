package native

func init() {
	// java/lang/System.halt0(int): the minimum native the spec
	// requires — sets the process-wide shutdown status.
	Register(Mangle("java/lang/System", "halt0"), func(args []int32, eff Effects) (int32, error) {
		status := int32(0)
		if len(args) > 0 {
			status = args[0]
		}
		eff.Shutdown(status)
		return 0, nil
	})

	// <clinit>/<init> no-ops for the two bootstrap classes: neither
	// java/lang/Object nor java/lang/System declares a Code-bearing
	// initializer, but resolving them as registered no-op natives
	// means a lookup never hard-fails just because a class happens to
	// be bootstrap, mirroring the JDK's own registerNatives() pattern.
	noop := func(args []int32, eff Effects) (int32, error) { return 0, nil }
	Register(Mangle("java/lang/Object", "<init>"), noop)
	Register(Mangle("java/lang/System", "<clinit>"), noop)
}
