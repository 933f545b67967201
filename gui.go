package main

import (
	"image"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/nf/regmon/monitor"
)

const frameRate = 60

// runGUI opens a window showing the monitor's surface, redrawing it at
// the frame rate until the window is closed.
func runGUI(m *monitor.Monitor) error {
	driver.Main(func(s screen.Screen) {
		surf := m.Surface().Bounds().Size()
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  "regmon",
			Width:  surf.X * 2,
			Height: surf.Y * 2,
		})
		if err != nil {
			log.Fatal(err)
		}
		defer w.Release()

		buf, err := s.NewBuffer(surf)
		if err != nil {
			log.Fatal(err)
		}
		defer buf.Release()
		tex, err := s.NewTexture(surf)
		if err != nil {
			log.Fatal(err)
		}
		defer tex.Release()

		type update struct{}
		done := make(chan bool)
		defer close(done)
		go func() {
			t := time.NewTicker(time.Second / frameRate)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					w.Send(update{})
				case <-done:
					return
				}
			}
		}()

		var sz size.Event
		for {
			switch e := w.NextEvent().(type) {
			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case update:
				m.Draw()
				draw.Draw(buf.RGBA(), buf.Bounds(), m.Surface(), image.Point{}, draw.Src)
				tex.Upload(image.Point{}, buf, buf.Bounds())
				w.Scale(sz.Bounds(), tex, tex.Bounds(), draw.Src, nil)
				w.Publish()

			case paint.Event:

			case error:
				log.Print(e)
			}
		}
	})
	return nil
}
