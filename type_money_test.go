package twfolio

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := M(500, TWD)
	b := M(4.5, TWD)

	if got := a.Sub(b); !got.Equal(M(495.5, TWD)) {
		t.Errorf("500 - 4.5 = %v", got.Amount())
	}
	if got := b.MulShares(1000); !got.Equal(M(4500, TWD)) {
		t.Errorf("4.5 * 1000 shares = %v", got.Amount())
	}
	// Exactness: the classic float trap must not appear.
	if got := M(0.1, TWD).Add(M(0.2, TWD)); !got.Amount().Equal(decimal.RequireFromString("0.3")) {
		t.Errorf("0.1 + 0.2 = %v, want exactly 0.3", got.Amount())
	}
}

func TestMoney_FloorZero(t *testing.T) {
	if got := M(10, TWD).Sub(M(25, TWD)).FloorZero(); !got.IsZero() {
		t.Errorf("FloorZero on negative = %v, want 0", got.Amount())
	}
	if got := M(3, TWD).FloorZero(); !got.Equal(M(3, TWD)) {
		t.Errorf("FloorZero on positive = %v, want 3", got.Amount())
	}
	if got := M(0, TWD).FloorZero(); !got.IsZero() {
		t.Errorf("FloorZero on zero = %v, want 0", got.Amount())
	}
}

func TestMoney_WeakCurrency(t *testing.T) {
	// The zero Money has no currency and merges with anything.
	var zero Money
	got := zero.Add(M(7, TWD))
	if got.Currency() != TWD {
		t.Errorf("currency = %q, want TWD", got.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Error("mixing currencies did not panic")
		}
	}()
	M(1, TWD).Add(M(1, "USD"))
}

func TestMoney_String(t *testing.T) {
	// TWD formats with a thousands separator.
	if got := M(1050, TWD).String(); !strings.Contains(got, "1,050") {
		t.Errorf("String() = %q, want it to contain %q", got, "1,050")
	}
	// The zero Money defaults to TWD.
	var zero Money
	if zero.Currency() != TWD {
		t.Errorf("zero currency = %q, want TWD", zero.Currency())
	}
}
