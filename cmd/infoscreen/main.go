// Binary infoscreen cycles informational screens on a small OLED display.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/infoscreen/config"
	"github.com/BeatGlow/infoscreen/hass"
	"github.com/BeatGlow/infoscreen/oled"
	"github.com/BeatGlow/infoscreen/screen"
	"github.com/BeatGlow/infoscreen/sysinfo"
)

func main() {
	configFlag := flag.String("config", "", "Configuration file path")
	driverFlag := flag.String("driver", "", "Display driver (overrides the config)")
	busFlag := flag.Int("bus", -2, "I²C bus number (overrides the config)")
	rotateFlag := flag.Int("rotate", 0, "Display rotation in degrees (overrides the config)")
	screenshotFlag := flag.String("screenshot", "", "Capture screenshots to this directory")
	spiFlag := flag.Bool("spi", false, "Use SPI instead of I²C")
	spiBusFlag := flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "SPI device")
	dcPinFlag := flag.String("dc", "GPIO24", "Data/Command GPIO pin (DC)")
	resetPinFlag := flag.String("reset", "GPIO25", "Reset GPIO pin")
	onceFlag := flag.Bool("once", false, "Render a single pass and exit")
	flag.Parse()

	path := *configFlag
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			fatal(err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		fatal(err)
	}

	if *driverFlag != "" {
		cfg.Display.Driver = *driverFlag
	}
	if *busFlag != -2 {
		cfg.Display.Bus = *busFlag
	}
	if *rotateFlag != 0 {
		cfg.Display.Rotate = *rotateFlag
	}
	if *screenshotFlag != "" {
		cfg.Display.Screenshot = true
		cfg.Display.ScreenshotDir = *screenshotFlag
	}

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	opts := screen.Options{
		Driver:        cfg.Display.Driver,
		Bus:           cfg.Display.Bus,
		Rotate:        cfg.Display.Rotate,
		Screenshot:    cfg.Display.Screenshot,
		ScreenshotDir: cfg.Display.ScreenshotDir,
	}

	var disp *screen.Display
	if *spiFlag {
		conn, err := oled.OpenSPI(&oled.SPIConfig{
			Bus:     *spiBusFlag,
			Device:  *spiDeviceFlag,
			SpeedHz: oled.DefaultSPIConfig.SpeedHz,
			DC:      gpioreg.ByName(*dcPinFlag),
			Reset:   gpioreg.ByName(*resetPinFlag),
		})
		if err != nil {
			fatal(err)
		}
		dev, err := oled.ModelByName(cfg.Display.Driver).Open(conn, &oled.Config{})
		if err != nil {
			fatal(err)
		}
		if disp, err = screen.New(dev, opts); err != nil {
			fatal(err)
		}
	} else {
		if disp, err = screen.Open(opts); err != nil {
			fatal(err)
		}
	}
	defer disp.Close()

	var metrics screen.EntityGetter
	if cfg.Hass.URL != "" {
		metrics = hass.New(cfg.Hass.URL, cfg.Hass.Token)
	} else {
		log.Printf("no home automation API configured, using local metrics")
		metrics = sysinfo.NewProvider(cfg.WANInterface)
	}

	var playlist []screen.Screen
	for _, sc := range cfg.Screens {
		switch sc.Name {
		case "status":
			s := screen.NewStatus(disp, sc.Hold(), metrics)
			s.Hostname = sysinfo.Hostname
			playlist = append(playlist, s)
		case "exit":
			playlist = append(playlist, screen.NewExit(disp, sc.Hold()))
		default:
			fatal(fmt.Errorf("unknown screen %q in playlist", sc.Name))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

loop:
	for {
		for _, s := range playlist {
			if ctx.Err() != nil {
				break loop
			}
			if err := screen.Run(s); err != nil {
				log.Printf("screen %q render failed: %v", s.Name(), err)
			}
		}
		if *onceFlag {
			break
		}
	}

	if err := screen.Run(screen.NewExit(disp, time.Second)); err != nil {
		log.Printf("exit screen render failed: %v", err)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
