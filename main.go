// Command regmon displays a register or memory dump file as a grid of
// hex cells, highlighting recently changed bytes with a fading glow.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/nf/regmon/monitor"
)

func main() {
	log.SetPrefix("regmon: ")
	log.SetFlags(0)

	var (
		cliFlag    = flag.Bool("cli", false, "terminal view instead of a window")
		followFlag = flag.Bool("follow", false, "watch the dump file and highlight changes")
		addrsFlag  = flag.Int("addrs", 256, "number of addresses to display (1-256)")
		fgFlag     = flag.String("fg", "#e8e8e8", "foreground `color` (#rrggbb)")
		unusedFlag = flag.String("unused", "#3a3a52", "settled register `color` (#rrggbb)")
		bgFlag     = flag.String("bg", "#10101a", "background `color` (#rrggbb)")
		decayFlag  = flag.Bool("decay", true, "fade recently written cells")
		speedFlag  = flag.Int("speed", 2, "fade speed exponent (0-6)")
		markFlag   = flag.Bool("mark", false, "show cleared registers in the unused color")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-cli] [-follow] <dumpfile>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	err := run(flag.Arg(0), options{
		cli:    *cliFlag,
		follow: *followFlag,
		addrs:  *addrsFlag,
		fg:     *fgFlag,
		unused: *unusedFlag,
		bg:     *bgFlag,
		decay:  *decayFlag,
		speed:  *speedFlag,
		mark:   *markFlag,
	})

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

type options struct {
	cli, follow    bool
	addrs          int
	fg, unused, bg string
	decay          bool
	speed          int
	mark           bool
}

func run(dumpFile string, o options) error {
	cfg := monitor.DefaultConfig()
	var err error
	if cfg.Foreground, err = parseColor(o.fg); err != nil {
		return err
	}
	if cfg.Unused, err = parseColor(o.unused); err != nil {
		return err
	}
	if cfg.Background, err = parseColor(o.bg); err != nil {
		return err
	}
	cfg.Decay = o.decay
	cfg.DecaySpeed = o.speed
	cfg.MarkUnused = o.mark

	mon, err := monitor.New(nil, o.addrs)
	if err != nil {
		return err
	}
	if err := mon.SetConfig(cfg); err != nil {
		return err
	}
	if err := loadDump(mon, dumpFile); err != nil {
		return err
	}

	if o.follow {
		go func() {
			if err := follow(mon, dumpFile); err != nil {
				log.Printf("follow: %v", err)
			}
		}()
	}

	if o.cli {
		v := newMonitorView(mon)
		log.SetPrefix("")
		log.SetOutput(v.log)
		err := v.Run()
		log.SetOutput(os.Stderr)
		log.SetPrefix("regmon: ")
		return err
	}
	return runGUI(mon)
}

// parseColor parses a "#rrggbb" color.
func parseColor(s string) (color.RGBA, error) {
	var c color.RGBA
	c.A = 0xff
	n, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	if err != nil || n != 3 || len(s) != 7 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return c, nil
}
