// Broadcast - choreography trigger console
//
// Sends start/stop triggers on the local network so every robot
// listening on the broadcast port begins or ends its routine together.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/diazvaldiviav/Xentauri-Robots/internal/config"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/broadcast"
)

func main() {
	port := config.BroadcastPort()

	fmt.Println("📡 Xentauri Choreography Trigger")
	fmt.Println("================================")
	fmt.Printf("Broadcasting on UDP port %d\n\n", port)

	sender, err := broadcast.NewSender(port)
	if err != nil {
		fmt.Printf("❌ Failed to open broadcast socket: %v\n", err)
		os.Exit(1)
	}
	defer sender.Close()

	fmt.Println("Type '1' to start the routine, anything else to stop.")
	fmt.Println("Ctrl+D to quit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		if strings.TrimSpace(scanner.Text()) == "1" {
			if err := sender.SendStart(); err != nil {
				fmt.Printf("❌ Send failed: %v\n", err)
				continue
			}
			fmt.Println("▶️  Start sent")
		} else {
			if err := sender.SendStop(); err != nil {
				fmt.Printf("❌ Send failed: %v\n", err)
				continue
			}
			fmt.Println("⏹  Stop sent")
		}
	}

	fmt.Println("\n👋 Bye")
}
