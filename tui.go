package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/regmon/monitor"
)

// monitorView is the terminal front end: a colored hex grid, a log
// pane, and a command input field.
type monitorView struct {
	m *monitor.Monitor

	grid  *tview.TextView
	log   *tview.TextView
	input *tview.InputField
	rows  *tview.Flex
	app   *tview.Application
}

func newMonitorView(m *monitor.Monitor) *monitorView {
	v := &monitorView{
		m: m,
		grid: tview.NewTextView().
			SetWrap(false).
			SetDynamicColors(true),
		log: tview.NewTextView().
			SetMaxLines(1000),
		input: tview.NewInputField(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	v.log.SetChangedFunc(func() { v.app.Draw() })
	v.log.SetBackgroundColor(tcell.ColorDarkBlue)
	v.rows.
		AddItem(v.grid, 0, 1, false).
		AddItem(v.log, 5, 0, false).
		AddItem(v.input, 1, 0, true)
	v.app.SetRoot(v.rows, true)

	v.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := v.input.GetText()
		if cmd == "" {
			return
		}
		v.input.SetText("")
		quit, err := runCommand(v.m, cmd)
		if err != nil {
			log.Print(err)
		}
		if quit {
			v.app.Stop()
		}
	})
	return v
}

func (v *monitorView) Run() error {
	stop := make(chan bool)
	defer close(stop)
	go func() {
		t := time.NewTicker(time.Second / 10)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				v.m.Draw()
				text := v.gridContent()
				v.app.QueueUpdateDraw(func() { v.grid.SetText(text) })
			case <-stop:
				return
			}
		}
	}()
	return v.app.Run()
}

// gridContent formats the hex grid, tinting each byte by how recently
// it was written: fresh writes yellow, fading ones orange.
func (v *monitorView) gridContent() string {
	var b strings.Builder
	for addr := 0; addr < v.m.MaxAddress(); addr++ {
		if addr%16 == 0 {
			if addr > 0 {
				b.WriteByte('\n')
			}
			fmt.Fprintf(&b, "[gray]%02x:[-]", addr)
		}
		val, err := v.m.GetData(addr)
		if err != nil {
			break
		}
		d, err := v.m.Decay(addr)
		if err != nil {
			break
		}
		switch {
		case d < 64:
			fmt.Fprintf(&b, " [yellow]%02x[-]", val)
		case d < 128:
			fmt.Fprintf(&b, " [orange]%02x[-]", val)
		default:
			fmt.Fprintf(&b, " %02x", val)
		}
	}
	return b.String()
}

// runCommand applies one command line to the monitor. It reports
// whether the view should exit.
//
// Commands: "set <addr> <val>" (hex), "clear", "unmark", "redraw",
// "exit".
func runCommand(m *monitor.Monitor, cmd string) (quit bool, err error) {
	name, args, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	switch name {
	case "exit":
		return true, nil
	case "clear":
		m.ClearAll()
		return false, nil
	case "unmark":
		m.UnmarkAll()
		return false, nil
	case "redraw":
		m.RequestAllDraw()
		return false, nil
	case "set":
		addrStr, valStr, ok := strings.Cut(strings.TrimSpace(args), " ")
		if !ok {
			return false, fmt.Errorf("usage: set <addr> <val>")
		}
		addr, err := strconv.ParseUint(addrStr, 16, 16)
		if err != nil {
			return false, fmt.Errorf("invalid addr %q", addrStr)
		}
		val, err := strconv.ParseUint(strings.TrimSpace(valStr), 16, 8)
		if err != nil {
			return false, fmt.Errorf("invalid value %q", valStr)
		}
		return false, m.SetData(int(addr), byte(val))
	}
	return false, fmt.Errorf("unknown command %q", name)
}
