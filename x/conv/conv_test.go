package conv

import (
	"math"
	"strconv"
	"testing"
)

func TestUtoa(t *testing.T) {
	for _, n := range []uint64{0, 1, 9, 10, 255, 4096, math.MaxUint64} {
		var buf [20]byte
		if got, want := string(Utoa(buf[:], n)), strconv.FormatUint(n, 10); got != want {
			t.Errorf("Utoa(%d)=%q want %q", n, got, want)
		}
	}
}

func TestItoa(t *testing.T) {
	for _, n := range []int64{0, -1, 7, -42, math.MaxInt64, math.MinInt64 + 1} {
		var buf [21]byte
		if got, want := string(Itoa(buf[:], n)), strconv.FormatInt(n, 10); got != want {
			t.Errorf("Itoa(%d)=%q want %q", n, got, want)
		}
	}
}

func TestU32Hex(t *testing.T) {
	var buf [8]byte
	if got := string(U32Hex(buf[:], 0xBEEF)); got != "0000BEEF" {
		t.Fatalf("U32Hex=%q", got)
	}
	if got := U32Hex(buf[:4], 1); len(got) != 0 {
		t.Fatalf("short buffer should yield empty slice, got %q", got)
	}
}
