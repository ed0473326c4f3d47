package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "phase and kind",
			err:  &Error{Phase: PhaseAcquire, Kind: KindEmpty},
			want: "[acquire] empty",
		},
		{
			name: "with detail",
			err:  Empty(),
			want: "[acquire] empty: slot holds no value",
		},
		{
			name: "with cause",
			err:  ContractFailed(stderrors.New("no space")),
			want: "(caused by: no space)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); !strings.Contains(got, tt.want) {
				t.Fatalf("expected %q in %q", tt.want, got)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	if !stderrors.Is(Empty(), ErrEmpty) {
		t.Fatal("Empty() should match ErrEmpty")
	}
	if stderrors.Is(Empty(), ErrAlreadyOccupied) {
		t.Fatal("Empty() should not match ErrAlreadyOccupied")
	}
	if !stderrors.Is(AlreadyOccupied(), ErrAlreadyOccupied) {
		t.Fatal("AlreadyOccupied() should match ErrAlreadyOccupied")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := stderrors.New("allocator full")
	err := ContractFailed(cause)

	if !stderrors.Is(err, cause) {
		t.Fatal("cause should be reachable through Unwrap")
	}
	if !IsContractFailed(err) {
		t.Fatal("IsContractFailed should match")
	}
}

func TestIsExhausted_ThroughWrap(t *testing.T) {
	err := ContractFailed(Exhausted(64))

	if !IsExhausted(err) {
		t.Fatal("exhaustion should be detected through the contract wrap")
	}
	if !IsContractFailed(err) {
		t.Fatal("outer category should still match")
	}
	if IsEmpty(err) {
		t.Fatal("unrelated category should not match")
	}
}

func TestBuilder(t *testing.T) {
	cause := stderrors.New("inner")
	err := New(PhaseAlloc, KindExhausted).
		Detail("cannot reserve %d bytes", 128).
		Cause(cause).
		Build()

	if err.Phase != PhaseAlloc || err.Kind != KindExhausted {
		t.Fatal("builder lost phase or kind")
	}
	if !strings.Contains(err.Error(), "128 bytes") {
		t.Fatalf("detail not formatted: %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("builder lost cause")
	}
	if !stderrors.Is(err, ErrExhausted) {
		t.Fatal("built error should match its category")
	}
}
