// Dashboard - web dashboard over the scan history
//
// Serves scan history, live robot status and manual triggers. Runs
// anywhere with access to the history database; on the robot it also
// exposes the camera and choreography triggers.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diazvaldiviav/Xentauri-Robots/internal/config"
	"github.com/diazvaldiviav/Xentauri-Robots/internal/log"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/broadcast"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/store"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/web"
)

func main() {
	port := flag.String("port", "8080", "dashboard port")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)

	fmt.Println("🖥  Xentauri Dashboard")
	fmt.Println("=====================")

	st, err := store.New(config.DBPath())
	if err != nil {
		fmt.Printf("❌ History: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	server := web.NewServer(*port, st)

	sender, err := broadcast.NewSender(config.BroadcastPort())
	if err != nil {
		fmt.Printf("⚠️  Broadcast disabled: %v\n", err)
	} else {
		defer sender.Close()
		server.OnBroadcast = func(action string) error {
			if action == "start" {
				return sender.SendStart()
			}
			return sender.SendStop()
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Shutting down...")
		server.Shutdown()
	}()

	fmt.Printf("Listening on http://localhost:%s\n", *port)
	if err := server.Start(); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}
