// Color-track - HSV blob tracking demo
//
// Tracks a colored object with the camera and steers the robot's body
// attitude so the object stays centered in the frame.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/diazvaldiviav/Xentauri-Robots/internal/config"
	"github.com/diazvaldiviav/Xentauri-Robots/internal/log"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/camera"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/robot"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/tracking"
)

func main() {
	colorName := flag.String("color", "red", "color to track (red, green, blue, yellow)")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)

	fmt.Println("🎯 Xentauri Color Tracking")
	fmt.Println("==========================")

	color, err := tracking.ColorByName(*colorName)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	trackCfg := tracking.DefaultConfig()

	camCfg := *camera.GetPreset("qvga")
	camCfg.Index = config.CameraIndex()
	cam, err := camera.Open(camCfg)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer cam.Close()

	finder := tracking.NewBlobFinder(color, trackCfg.MinBlobRadius)
	defer finder.Close()

	ctrl := robot.NewHTTPController(config.RobotAddr("127.0.0.1:" + config.DefaultRobotPort))

	fmt.Printf("Tracking %s, camera %dx%d (Ctrl+C to stop)\n\n",
		color.Name, cam.Config().Width, cam.Config().Height)

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Stopping, resetting pose...")
		cancel()
	}()

	tracker := tracking.New(trackCfg, ctrl, cam, finder)
	if err := tracker.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}
