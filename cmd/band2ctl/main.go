// band2ctl talks to a Mi Band 2 over BLE.
//
// Usage:
//
//	band2ctl -addr <MAC> [options] <command>
//
// Commands:
//
//	auth      run the pairing handshake (use -reset on first pairing)
//	ring      vibrate the band (-style single|continuous|invisible|like)
//	time      read the band's clock
//	settime   sync the band's clock to the host
//	battery   read the battery report
//	alarm     arm a one-shot alarm (-slot, -hour, -minute)
//	unalarm   clear an alarm slot (-slot)
//	hr        read one heart-rate measurement
//
// Options:
//
//	-addr        device MAC address (required)
//	-key         pairing key as 32 hex digits
//	-passphrase  derive the pairing key from a passphrase instead
//	-salt        salt for passphrase derivation (default "band2")
//	-reset       register the key with the device before authenticating
//	-timeout     connection and command timeout (default 30s)
//	-verbose     debug logging
//
// Example:
//
//	band2ctl -addr C8:0F:10:00:00:01 -passphrase hunter2 -reset auth
//	band2ctl -addr C8:0F:10:00:00:01 -passphrase hunter2 battery
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-ble/ble"
	"github.com/pion/logging"

	"github.com/bandkit/band2/pkg/auth"
	"github.com/bandkit/band2/pkg/band"
	"github.com/bandkit/band2/pkg/crypto"
	"github.com/bandkit/band2/pkg/transport"
)

func main() {
	var (
		addr       = flag.String("addr", "", "device MAC address")
		keyHex     = flag.String("key", "", "pairing key as 32 hex digits")
		passphrase = flag.String("passphrase", "", "derive the pairing key from a passphrase")
		salt       = flag.String("salt", "band2", "salt for passphrase derivation")
		reset      = flag.Bool("reset", false, "register the key before authenticating")
		timeout    = flag.Duration("timeout", 30*time.Second, "connection and command timeout")
		verbose    = flag.Bool("verbose", false, "debug logging")
		style      = flag.String("style", "single", "ring style: single|continuous|invisible|like")
		slot       = flag.Int("slot", 0, "alarm slot (0-5)")
		hour       = flag.Int("hour", 7, "alarm hour")
		minute     = flag.Int("minute", 0, "alarm minute")
	)
	flag.Parse()

	command := flag.Arg(0)
	if *addr == "" || command == "" {
		flag.Usage()
		os.Exit(2)
	}

	loggerFactory := logging.NewDefaultLoggerFactory()
	if *verbose {
		loggerFactory.DefaultLogLevel = logging.LogLevelDebug
	}

	key, err := resolveKey(*keyHex, *passphrase, *salt, *reset)
	if err != nil {
		log.Fatalf("Bad key material: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	dev, err := newDevice()
	if err != nil {
		log.Fatalf("Failed to open BLE device: %v", err)
	}
	ble.SetDefaultDevice(dev)

	client, err := ble.Dial(ctx, ble.NewAddr(*addr))
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", *addr, err)
	}
	defer client.CancelConnection() //nolint:errcheck

	ch, err := transport.NewGATT(transport.GATTConfig{
		Client:        client,
		LoggerFactory: loggerFactory,
	})
	if err != nil {
		log.Fatalf("Failed to set up GATT channel: %v", err)
	}

	b, err := band.New(band.Config{
		Channel:       ch,
		Timeout:       *timeout,
		LoggerFactory: loggerFactory,
	})
	if err != nil {
		log.Fatalf("Failed to create band client: %v", err)
	}

	// Every command requires an unlocked interface.
	outcome, err := b.Authenticate(ctx, key)
	if err != nil {
		log.Fatalf("Handshake failed: %v", err)
	}
	if !outcome.OK() {
		log.Fatalf("Device rejected authentication: %s (code %s)", outcome.Status, outcome.Code)
	}
	if outcome.KeyRegistered {
		fmt.Println("new pairing key registered")
	}

	if err := run(ctx, b, command, *style, *slot, *hour, *minute); err != nil {
		log.Fatalf("Command %q failed: %v", command, err)
	}
}

func run(ctx context.Context, b *band.Band, command, style string, slot, hour, minute int) error {
	switch command {
	case "auth":
		fmt.Println("authenticated")
		return nil

	case "ring":
		return b.Ring(ringStyle(style))

	case "time":
		t, err := b.Time(time.Local)
		if err != nil {
			return err
		}
		fmt.Println(t.Format(time.RFC1123))
		return nil

	case "settime":
		return b.SetTime(time.Now())

	case "battery":
		report, err := b.Battery()
		if err != nil {
			return err
		}
		fmt.Printf("level: %d%%\nstatus: %s\nlast off: %04d-%02d-%02d\nlast charge: %04d-%02d-%02d\n",
			report.Level, report.Status,
			report.LastOff.Year, report.LastOff.Month, report.LastOff.Day,
			report.LastCharge.Year, report.LastCharge.Month, report.LastCharge.Day)
		return nil

	case "alarm":
		return b.QuickAlarm(slot, hour, minute)

	case "unalarm":
		return b.UnsetAlarm(slot)

	case "hr":
		rate, err := b.HeartRate(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d bpm\n", rate)
		return nil

	default:
		return fmt.Errorf("unknown command")
	}
}

// resolveKey picks the pairing key source: explicit hex, passphrase
// derivation, or a fresh random key (printed so it can be reused).
func resolveKey(keyHex, passphrase, salt string, reset bool) (auth.Key, error) {
	switch {
	case keyHex != "":
		secret, err := hex.DecodeString(keyHex)
		if err != nil {
			return auth.Key{}, fmt.Errorf("decoding -key: %w", err)
		}
		return auth.NewKey(secret, reset)

	case passphrase != "":
		secret := crypto.KeyFromPassphrase([]byte(passphrase), []byte(salt))
		return auth.NewKey(secret, reset)

	default:
		secret, err := crypto.GenerateKey()
		if err != nil {
			return auth.Key{}, err
		}
		fmt.Printf("generated pairing key: %s\n", hex.EncodeToString(secret))
		return auth.NewKey(secret, reset)
	}
}

func ringStyle(style string) band.NotificationType {
	switch style {
	case "continuous":
		return band.NotifyContinuous
	case "invisible":
		return band.NotifyInvisible
	case "like":
		return band.NotifyLike
	default:
		return band.NotifySingle
	}
}
