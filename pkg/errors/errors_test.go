package errors

import (
	stderrors "errors"
	"testing"
)

func TestScripError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ScripError
		want string
	}{
		{
			name: "message only",
			err:  &ScripError{Code: "X", Message: "something broke"},
			want: "something broke",
		},
		{
			name: "with details sorted",
			err: &ScripError{
				Code:    "X",
				Message: "not enough funds",
				Details: map[string]string{"asset": "USD", "available": "1.5"},
			},
			want: "not enough funds (asset: USD) (available: 1.5)",
		},
		{
			name: "with cause",
			err: &ScripError{
				Code:    "X",
				Message: "submit failed",
				Cause:   stderrors.New("boom"),
			},
			want: "submit failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	wrapped := WithDetails(ErrInsufficientBalance, map[string]string{"asset": "BTC"})
	if !Is(wrapped, ErrInsufficientBalance) {
		t.Error("wrapped error should match its sentinel by code")
	}
	if Is(wrapped, ErrInvalidBalanceID) {
		t.Error("wrapped error should not match an unrelated sentinel")
	}
}

func TestWithCause_PreservesCode(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := WithCause(ErrNetworkInfo, cause)

	if Code(err) != ErrNetworkInfo.Code {
		t.Errorf("Code() = %q, want %q", Code(err), ErrNetworkInfo.Code)
	}
	if !stderrors.Is(err, ErrNetworkInfo) {
		t.Error("errors.Is should match the sentinel")
	}

	var se *ScripError
	if !As(err, &se) {
		t.Fatal("expected a *ScripError")
	}
	if se.Cause != cause {
		t.Error("cause not preserved")
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		if Wrap(nil, "context") != nil {
			t.Error("Wrap(nil) should be nil")
		}
	})

	t.Run("structured error keeps code and exit", func(t *testing.T) {
		err := Wrap(ErrSubmitFailed, "confirming payment")
		if Code(err) != "TX_SUBMIT_FAILED" {
			t.Errorf("Code() = %q", Code(err))
		}
		if ExitCode(err) != ExitGeneral {
			t.Errorf("ExitCode() = %d", ExitCode(err))
		}
	})

	t.Run("plain error becomes general", func(t *testing.T) {
		err := Wrap(stderrors.New("x"), "doing y")
		if Code(err) != "GENERAL_ERROR" {
			t.Errorf("Code() = %q", Code(err))
		}
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", stderrors.New("x"), ExitGeneral},
		{"insufficient balance", ErrInsufficientBalance, ExitPermission},
		{"invalid balance id", ErrInvalidBalanceID, ExitInput},
		{"decryption", ErrDecryptionFailed, ExitAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDetail(t *testing.T) {
	err := WithDetails(ErrBalanceCreateFailed, map[string]string{"asset": "EUR"})
	if got := Detail(err, "asset"); got != "EUR" {
		t.Errorf("Detail() = %q, want %q", got, "EUR")
	}
	if got := Detail(err, "missing"); got != "" {
		t.Errorf("Detail() = %q, want empty", got)
	}
	if got := Detail(stderrors.New("x"), "asset"); got != "" {
		t.Errorf("Detail() on plain error = %q, want empty", got)
	}
}
