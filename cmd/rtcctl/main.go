// Command rtcctl reads, sets and supervises a PCF8523 real-time clock on a
// host I²C bus.
//
// With no action flags it prints the RTC time. Daemon mode reads the RTC on a
// cron schedule, logs drift against the system clock and can discipline the
// system clock from the RTC.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"rtccode-go/config"
	"rtccode-go/drivers/pcf8523"
	"rtccode-go/errcode"
	"rtccode-go/hosti2c"
)

var (
	configPath = flag.String("config", "", "YAML config path (created with defaults on first run)")
	busName    = flag.String("bus", "", "host I²C bus name (overrides config)")
	addr       = flag.Uint("addr", 0, "7-bit device address (overrides config)")
	century    = flag.Int("century", 0, "century resolving the two-digit year (overrides config)")

	setTime    = flag.String("set", "", `set the RTC: "now" or an RFC3339 timestamp`)
	setSys     = flag.Bool("sys", false, "set the system clock from the RTC")
	alarmSpec  = flag.String("alarm", "", `program the alarm: "mm[:hh[:dd[:wd]]]" (wd 1=Mon..7=Sun)`)
	alarmOff   = flag.Bool("alarm-off", false, "disable the alarm interrupt")
	alarmClear = flag.Bool("alarm-clear", false, "disarm the alarm and clear its flags")
	ack        = flag.Bool("ack", false, "acknowledge (clear) a fired alarm")
	status     = flag.Bool("status", false, "print alarm interrupt and flag state")
	clkOut     = flag.String("clkout", "", "CLKOUT frequency: 32768, 1024, 32, 1 or off")
	reset      = flag.Bool("reset", false, "issue the chip's software reset")
	watch      = flag.Duration("watch", 0, "poll and print host vs. RTC time at this interval")
	daemon     = flag.Bool("daemon", false, "run the cron-scheduled sync loop from config")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: rtcctl [flags]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(log.LstdFlags)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("cannot load config: %v", err)
		}
	}
	if *busName != "" {
		cfg.Bus = *busName
	}
	if *addr != 0 {
		cfg.Addr = uint16(*addr)
	}
	if *century != 0 {
		cfg.Century = *century
	}

	bus, err := hosti2c.Open(cfg.Bus)
	if err != nil {
		fatal("open bus", err)
	}
	defer bus.Close()

	rtc := pcf8523.New(bus)
	rtc.Configure(pcf8523.Config{Address: cfg.Addr})

	switch {
	case *reset:
		if err := rtc.Reset(); err != nil {
			fatal("reset", err)
		}
		log.Print("chip reset to power-on defaults")
		return

	case *setTime != "":
		t := time.Now().UTC()
		if *setTime != "now" {
			t, err = time.Parse(time.RFC3339, *setTime)
			if err != nil {
				log.Fatalf("%s: bad timestamp %q: %v", errcode.BadRequest, *setTime, err)
			}
			t = t.UTC()
		}
		if err := rtc.SetTime(t); err != nil {
			fatal("set time", err)
		}
		log.Printf("RTC set to %s", t.Format(time.RFC3339))
		if !*setSys {
			return
		}
	}

	if *alarmSpec != "" {
		a, err := parseAlarm(*alarmSpec)
		if err != nil {
			log.Fatalf("%s: %v", errcode.BadRequest, err)
		}
		if err := rtc.SetAlarm(a); err != nil {
			fatal("set alarm", err)
		}
		log.Print("alarm programmed, interrupt enabled")
		return
	}
	if *alarmOff {
		if err := rtc.DisableAlarmInterrupt(); err != nil {
			fatal("disable alarm interrupt", err)
		}
		return
	}
	if *alarmClear {
		if err := rtc.ClearAlarm(); err != nil {
			fatal("clear alarm", err)
		}
		return
	}
	if *ack {
		if err := rtc.AcknowledgeAlarm(); err != nil {
			fatal("acknowledge alarm", err)
		}
		return
	}
	if *status {
		printStatus(rtc)
		return
	}
	if *clkOut != "" {
		f, err := parseClkOut(*clkOut)
		if err != nil {
			log.Fatalf("%s: %v", errcode.BadRequest, err)
		}
		if err := rtc.SetClkOutFrequency(f); err != nil {
			fatal("set clkout", err)
		}
		return
	}

	if *setSys {
		t, err := rtc.Time(cfg.Century)
		if err != nil {
			fatal("read time", err)
		}
		if err := setSysTime(t); err != nil {
			log.Fatalf("cannot set system time: %v", err)
		}
		log.Printf("system clock set to %s", t.Format(time.RFC3339))
		return
	}

	if *watch > 0 {
		watchLoop(rtc, cfg.Century, *watch)
		return
	}
	if *daemon {
		daemonLoop(rtc, cfg)
		return
	}

	// Default action: print the time.
	s, err := rtc.ReadAll()
	if err != nil {
		fatal("read time", err)
	}
	t, err := rtc.Time(cfg.Century)
	if err != nil {
		fatal("read time", err)
	}
	fmt.Printf("%s (%s)\n", s, t.Format(time.RFC3339))
}

func fatal(op string, err error) {
	log.Fatalf("cannot %s: %v (%s)", op, err, errcode.MapDriverErr(err))
}

// parseAlarm parses "mm[:hh[:dd[:wd]]]"; minute is required, the rest match
// any value when omitted.
func parseAlarm(s string) (pcf8523.Alarm, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 4 {
		return pcf8523.Alarm{}, fmt.Errorf("too many alarm fields in %q", s)
	}
	vals := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return pcf8523.Alarm{}, fmt.Errorf("bad alarm field %q", p)
		}
		vals[i] = v
	}
	a := pcf8523.Alarm{Minute: vals[0]}
	if len(vals) > 1 {
		a.Hour = pcf8523.Int(vals[1])
	}
	if len(vals) > 2 {
		a.Day = pcf8523.Int(vals[2])
	}
	if len(vals) > 3 {
		a.Weekday = pcf8523.Int(vals[3])
	}
	return a, nil
}

func parseClkOut(s string) (pcf8523.ClkOutFreq, error) {
	switch s {
	case "32768":
		return pcf8523.ClkOut32768Hz, nil
	case "1024":
		return pcf8523.ClkOut1024Hz, nil
	case "32":
		return pcf8523.ClkOut32Hz, nil
	case "1":
		return pcf8523.ClkOut1Hz, nil
	case "off":
		return pcf8523.ClkOutOff, nil
	}
	return 0, fmt.Errorf("unknown CLKOUT frequency %q", s)
}

func printStatus(rtc *pcf8523.Device) {
	enabled, err := rtc.AlarmInterruptEnabled()
	if err != nil {
		fatal("read status", err)
	}
	fired, err := rtc.AlarmTriggered()
	if err != nil {
		fatal("read status", err)
	}
	fmt.Printf("alarm interrupt enabled: %v\nalarm fired: %v\n", enabled, fired)
}

func watchLoop(rtc *pcf8523.Device, century int, every time.Duration) {
	tick := time.NewTicker(every)
	defer tick.Stop()
	for {
		t, err := rtc.Time(century)
		if err != nil {
			fatal("read time", err)
		}
		fmt.Printf("host time:\t%s\nrtc time:\t%s\n\n",
			time.Now().UTC().Format(time.RFC3339), t.Format(time.RFC3339))
		<-tick.C
	}
}

func daemonLoop(rtc *pcf8523.Device, cfg *config.Config) {
	c := cron.New()
	_, err := c.AddFunc(cfg.SyncCron, func() {
		t, err := rtc.Time(cfg.Century)
		if err != nil {
			log.Printf("cannot read RTC: %v (%s)", err, errcode.MapDriverErr(err))
			return
		}
		drift := time.Now().UTC().Sub(t).Round(time.Millisecond)
		log.Printf("rtc %s, system drift %s", t.Format(time.RFC3339), drift)
		if cfg.SetSystem {
			if err := setSysTime(t); err != nil {
				log.Printf("cannot set system time: %v", err)
			}
		}
	})
	if err != nil {
		log.Fatalf("%s: bad sync_cron %q: %v", errcode.BadRequest, cfg.SyncCron, err)
	}
	log.Printf("daemon started, schedule %q", cfg.SyncCron)
	c.Run()
}
