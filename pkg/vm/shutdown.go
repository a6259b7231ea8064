package vm

// ShutdownStatus is the process-wide status word spec §4.7/§9
// describes: initially 0, written by a native call (java/lang/
// System.halt0) or set to 1 when a native symbol is missing, and
// checked at every instruction boundary. It is a
// field on the VM rather than a package global or an atomic, since the
// interpreter is single-threaded (spec §5) — the Design Note's warning
// against long-jumping out of the interpreter is honored by having the
// fetch-decode loop poll this field and unwind normally.
type ShutdownStatus struct {
	requested bool
	status    int32
}

// Request sets the shutdown status. Only the first call has an effect;
// subsequent calls are ignored, matching "a native may set shutdown
// status" (singular) in spec §4.7.
func (s *ShutdownStatus) Request(status int32) {
	if s.requested {
		return
	}
	s.requested = true
	s.status = status
}

// Requested reports whether shutdown has been requested.
func (s *ShutdownStatus) Requested() bool { return s.requested }

// Status returns the requested status value (meaningless if Requested
// is false).
func (s *ShutdownStatus) Status() int32 { return s.status }
