package bolt

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	bbolt "go.etcd.io/bbolt"

	interfaces "github.com/sheikh-saqib/udharbook/internal/interfaces"
	"github.com/sheikh-saqib/udharbook/internal/storage/storetest"
)

func TestBoltStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) interfaces.LedgerStore {
		s, err := Open(filepath.Join(t.TempDir(), "book.bolt"))
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		return s
	})
}

func TestItobKeepsNumericOrder(t *testing.T) {
	tests := []struct {
		a, b int64
	}{
		{1, 2},
		{255, 256},
		{65535, 65536},
	}

	for _, tt := range tests {
		if string(itob(tt.a)) >= string(itob(tt.b)) {
			t.Errorf("itob(%d) does not sort before itob(%d)", tt.a, tt.b)
		}
	}
}

func TestOpenTimesOutWhenFileIsHeld(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.bolt")
	held, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer held.Close()

	prev := OpenTimeout
	OpenTimeout = 100 * time.Millisecond
	t.Cleanup(func() { OpenTimeout = prev })

	start := time.Now()
	s, err := Open(path)
	if err == nil {
		s.Close()
		t.Fatal("second Open() of a held file succeeded, expected a timeout")
	}
	if !errors.Is(err, bbolt.ErrTimeout) {
		t.Errorf("second Open() error = %v, expected %v", err, bbolt.ErrTimeout)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("second Open() took %v", elapsed)
	}
}
