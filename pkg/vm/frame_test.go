package vm

import "testing"

func mustPush(t *testing.T, f *Frame, v Value) {
	t.Helper()
	if err := f.Push(v); err != nil {
		t.Fatalf("Push: %v", err)
	}
}

func mustPop(t *testing.T, f *Frame) Value {
	t.Helper()
	v, err := f.Pop()
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	return v
}

func TestFramePushPop(t *testing.T) {
	t.Run("LIFO order", func(t *testing.T) {
		f := NewFrame(3, 0, nil, nil)
		mustPush(t, f, IntValue(10))
		mustPush(t, f, IntValue(20))
		mustPush(t, f, IntValue(30))

		if v := mustPop(t, f); v.Int != 30 {
			t.Errorf("first Pop: got %d, want 30", v.Int)
		}
		if v := mustPop(t, f); v.Int != 20 {
			t.Errorf("second Pop: got %d, want 20", v.Int)
		}
		if v := mustPop(t, f); v.Int != 10 {
			t.Errorf("third Pop: got %d, want 10", v.Int)
		}
	})

	t.Run("overflow is an error, not a panic", func(t *testing.T) {
		f := NewFrame(1, 0, nil, nil)
		mustPush(t, f, IntValue(1))
		if err := f.Push(IntValue(2)); err == nil {
			t.Fatal("Push past max_stack: want error, got nil")
		}
	})

	t.Run("underflow is an error", func(t *testing.T) {
		f := NewFrame(1, 0, nil, nil)
		if _, err := f.Pop(); err == nil {
			t.Fatal("Pop on empty stack: want error, got nil")
		}
	})
}

func TestFrameLocalVars(t *testing.T) {
	t.Run("basic set and get", func(t *testing.T) {
		f := NewFrame(0, 4, nil, nil)
		for i, v := range []int32{10, 20, 30, 40} {
			if err := f.SetLocal(i, IntValue(v)); err != nil {
				t.Fatalf("SetLocal(%d): %v", i, err)
			}
		}
		for i, want := range []int32{10, 20, 30, 40} {
			got, err := f.GetLocal(i)
			if err != nil {
				t.Fatalf("GetLocal(%d): %v", i, err)
			}
			if got.Int != want {
				t.Errorf("GetLocal(%d): got %d, want %d", i, got.Int, want)
			}
		}
	})

	t.Run("out of range is an error", func(t *testing.T) {
		f := NewFrame(0, 2, nil, nil)
		if err := f.SetLocal(2, IntValue(1)); err == nil {
			t.Fatal("SetLocal past max_locals: want error, got nil")
		}
		if _, err := f.GetLocal(-1); err == nil {
			t.Fatal("GetLocal(-1): want error, got nil")
		}
	})

	t.Run("locals independent from stack", func(t *testing.T) {
		f := NewFrame(2, 1, nil, nil)
		if err := f.SetLocal(0, IntValue(10)); err != nil {
			t.Fatalf("SetLocal: %v", err)
		}
		mustPush(t, f, IntValue(99))

		local, err := f.GetLocal(0)
		if err != nil {
			t.Fatalf("GetLocal: %v", err)
		}
		if local.Int != 10 {
			t.Errorf("GetLocal(0) after push: got %d, want 10", local.Int)
		}
		if v := mustPop(t, f); v.Int != 99 {
			t.Errorf("Pop after SetLocal: got %d, want 99", v.Int)
		}
	})
}

func TestFrameCodeReads(t *testing.T) {
	f := NewFrame(0, 0, []byte{0xb2, 0x01, 0x02, 0x10, 0xff}, nil)

	op, err := f.fetch()
	if err != nil || op != 0xb2 {
		t.Fatalf("fetch: got (0x%02X, %v), want (0xb2, nil)", op, err)
	}

	idx, err := f.readU16()
	if err != nil || idx != 0x0102 {
		t.Fatalf("readU16: got (0x%04X, %v), want (0x0102, nil)", idx, err)
	}

	op, err = f.fetch()
	if err != nil || op != 0x10 {
		t.Fatalf("fetch: got (0x%02X, %v), want (0x10, nil)", op, err)
	}

	b, err := f.readI8()
	if err != nil || b != -1 {
		t.Fatalf("readI8: got (%d, %v), want (-1, nil)", b, err)
	}

	if _, err := f.fetch(); err == nil {
		t.Fatal("fetch past end of code: want error, got nil")
	}
}
