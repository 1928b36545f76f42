package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go-gridlink/launchpad"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func main() {
	defer midi.CloseDriver()

	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "detect":
		detectLaunchpads()
	case "handshake":
		testHandshake()
	case "leds":
		testLEDs()
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list       - List all MIDI ports")
	fmt.Println("  detect     - Find connected Launchpads")
	fmt.Println("  handshake  - Enter DAW mode and print the device's replies")
	fmt.Println("  leds       - Test static, flashing and pulsing LEDs")
	fmt.Println("  poll       - Poll for device changes")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ins := midi.GetInPorts()
		outs := midi.GetOutPorts()
		ch <- result{ins: ins, outs: outs}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
	}
}

func findPort[P interface{ String() string }](ports []P, fragment string) (P, bool) {
	for _, p := range ports {
		if strings.Contains(strings.ToLower(p.String()), strings.ToLower(fragment)) {
			return p, true
		}
	}
	var zero P
	return zero, false
}

// device is a Launchpad found on the port list.
type device struct {
	model *launchpad.Model
	in    drivers.In
	out   drivers.Out
}

func findDevices() []device {
	ins := midi.GetInPorts()
	outs := midi.GetOutPorts()

	var found []device
	for _, m := range launchpad.Models() {
		out, ok := findPort(outs, m.OutPort)
		if !ok {
			continue
		}
		d := device{model: m, out: out}
		// The DAW input carries the SysEx replies.
		if in, ok := findPort(ins, m.InPorts[0]); ok {
			d.in = in
		}
		found = append(found, d)
	}
	return found
}

func firstDevice() (device, bool) {
	devices := findDevices()
	if len(devices) == 0 {
		fmt.Println("No Launchpad found")
		return device{}, false
	}
	d := devices[0]
	fmt.Printf("Using %s: out=%s in=%v\n", d.model, d.out, d.in)
	return d, true
}

func detectLaunchpads() {
	fmt.Println("Looking for Launchpads...")

	devices := findDevices()
	for _, d := range devices {
		fmt.Printf("Found %s\n  output: %s\n", d.model, d.out)
		if d.in != nil {
			fmt.Printf("  input:  %s\n", d.in)
		} else {
			fmt.Println("  input:  missing")
		}
	}

	if len(devices) == 0 {
		fmt.Println("\nNo Launchpad found")
	}
}

func sendAll(send func(midi.Message) error, msgs []launchpad.Message) error {
	for _, msg := range msgs {
		if err := send(midi.Message(msg)); err != nil {
			return fmt.Errorf("send % X: %w", []byte(msg), err)
		}
	}
	return nil
}

func testHandshake() {
	d, ok := firstDevice()
	if !ok {
		return
	}
	if d.in == nil {
		fmt.Println("No DAW input port; replies cannot be read")
		return
	}

	send, err := midi.SendTo(d.out)
	if err != nil {
		fmt.Printf("Error opening port: %v\n", err)
		return
	}

	stop, err := midi.ListenTo(d.in, func(msg midi.Message, timestampms int32) {
		var data []byte
		if !msg.GetSysEx(&data) {
			return
		}
		frame := launchpad.Frame(data)
		ack := d.model.Match(frame)
		fmt.Printf("  <- % X  %s %s\n", frame, ack.Kind, ack.Layout)
	}, midi.UseSysEx())
	if err != nil {
		fmt.Printf("Error opening input: %v\n", err)
		return
	}
	defer stop()

	fmt.Println("Sending: DAW mode")
	if err := sendAll(send, d.model.ConnectMessages()); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	time.Sleep(time.Second)

	fmt.Println("Sending: session layout")
	if err := sendAll(send, []launchpad.Message{d.model.SessionLayout()}); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	time.Sleep(time.Second)

	fmt.Println("Sending: standalone mode")
	if err := sendAll(send, d.model.DisconnectMessages()); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	time.Sleep(time.Second)

	fmt.Println("Done!")
}

func testLEDs() {
	d, ok := firstDevice()
	if !ok {
		return
	}

	send, err := midi.SendTo(d.out)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	// First ensure DAW mode
	sendAll(send, d.model.ConnectMessages())
	time.Sleep(100 * time.Millisecond)
	sendAll(send, d.model.Clear())

	fmt.Println("Lighting up diagonals (static, flashing, pulsing)...")

	styles := []launchpad.Style{
		launchpad.Static(launchpad.ColorGreen),
		launchpad.Flashing(launchpad.ColorRed),
		launchpad.Pulsing(launchpad.ColorBlue),
	}
	for i := 0; i < d.model.Layout.Rows; i++ {
		s := styles[i%len(styles)]
		sendAll(send, []launchpad.Message{d.model.PadMessage(launchpad.Pad{Row: i, Col: i}, s)})
		time.Sleep(100 * time.Millisecond)
	}
	sendAll(send, []launchpad.Message{d.model.ButtonMessage(launchpad.ButtonLogo, launchpad.Pulsing(launchpad.ColorWhite))})

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	sendAll(send, d.model.Clear())
	sendAll(send, d.model.DisconnectMessages())

	fmt.Println("Done!")
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds...")
	fmt.Println("Connect/disconnect a Launchpad to test. Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		ins := midi.GetInPorts()
		outs := midi.GetOutPorts()

		// Build current state
		var inNames, outNames []string
		for _, p := range ins {
			inNames = append(inNames, p.String())
		}
		for _, p := range outs {
			outNames = append(outNames, p.String())
		}

		currentIn := strings.Join(inNames, ",")
		currentOut := strings.Join(outNames, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", inNames)
			fmt.Printf("  Outputs: %v\n", outNames)

			for _, m := range launchpad.Models() {
				if _, ok := findPort(outs, m.OutPort); ok {
					fmt.Printf("  -> %s detected!\n", m)
				}
			}

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}
