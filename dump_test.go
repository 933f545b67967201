package main

import (
	"testing"

	"github.com/nf/regmon/monitor"
)

func settle(m *monitor.Monitor) {
	for i := 0; i < 300; i++ {
		m.Draw()
	}
}

func TestApplyDump(t *testing.T) {
	m, err := monitor.New(nil, 8)
	if err != nil {
		t.Fatal(err)
	}
	if err := applyDump(m, []byte{1, 2, 3, 4, 5, 6, 7, 8}); err != nil {
		t.Fatal(err)
	}
	for addr := 0; addr < 8; addr++ {
		if v, _ := m.GetData(addr); v != byte(addr+1) {
			t.Fatalf("GetData(%d) = %d, want %d", addr, v, addr+1)
		}
	}
	settle(m)

	// A reload highlights only the bytes that changed.
	if err := applyDump(m, []byte{1, 2, 0xff, 4, 5, 6, 7, 8}); err != nil {
		t.Fatal(err)
	}
	for addr := 0; addr < 8; addr++ {
		d, _ := m.Decay(addr)
		if addr == 2 {
			if d != 0 {
				t.Errorf("Decay(%d) = %d, want 0 (changed byte)", addr, d)
			}
		} else if d == 0 {
			t.Errorf("Decay(%d) = 0, want settled (unchanged byte)", addr)
		}
	}

	// Dumps longer than the grid are truncated, shorter ones leave
	// the tail alone.
	if err := applyDump(m, make([]byte, 64)); err != nil {
		t.Fatal(err)
	}
	if err := applyDump(m, []byte{9}); err != nil {
		t.Fatal(err)
	}
	if v, _ := m.GetData(0); v != 9 {
		t.Errorf("GetData(0) = %d, want 9", v)
	}
	if v, _ := m.GetData(7); v != 0 {
		t.Errorf("GetData(7) = %d, want 0", v)
	}
}
