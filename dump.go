package main

import (
	"os"

	"github.com/nf/regmon/monitor"
)

// loadDump reads the dump file and writes its bytes into the monitor.
func loadDump(m *monitor.Monitor, file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	return applyDump(m, b)
}

// applyDump writes only the bytes that differ from the monitor's
// current contents, so a reload highlights exactly what moved.
// Bytes beyond the monitor's address range are ignored.
func applyDump(m *monitor.Monitor, b []byte) error {
	n := m.MaxAddress()
	if len(b) < n {
		n = len(b)
	}
	for addr := 0; addr < n; addr++ {
		v, err := m.GetData(addr)
		if err != nil {
			return err
		}
		if v != b[addr] {
			if err := m.SetData(addr, b[addr]); err != nil {
				return err
			}
		}
	}
	return nil
}
