// Yolo-detect - onboard detector preview
//
// Runs the single-stage ONNX detector on live camera frames and prints
// what it sees. Useful for checking the model file and camera without
// the rest of the stack.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diazvaldiviav/Xentauri-Robots/internal/config"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/camera"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/tracking/detection"
)

func main() {
	modelPath := flag.String("model", "models/fastestdet.onnx", "path to the ONNX model")
	class := flag.String("class", "", "only report this class (e.g. person, dog)")
	interval := flag.Duration("interval", 500*time.Millisecond, "time between frames")
	flag.Parse()

	fmt.Println("🔍 Xentauri Onboard Detector")
	fmt.Println("============================")

	detCfg := detection.DefaultConfig()
	detCfg.ModelPath = *modelPath

	det, err := detection.New(detCfg)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer det.Close()

	camCfg := *camera.GetPreset("vga")
	camCfg.Index = config.CameraIndex()
	cam, err := camera.Open(camCfg)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer cam.Close()

	fmt.Printf("Model %s, camera %dx%d (Ctrl+C to stop)\n\n",
		*modelPath, cam.Config().Width, cam.Config().Height)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-sigChan:
			fmt.Println("\n👋 Bye")
			return
		case <-ticker.C:
		}

		frame, err := cam.ReadMat()
		if err != nil {
			fmt.Printf("❌ Capture: %v\n", err)
			continue
		}

		var detections []detection.Detection
		if *class != "" {
			detections, err = det.DetectClass(frame, *class)
		} else {
			detections, err = det.Detect(frame)
		}
		frame.Close()

		if err != nil {
			fmt.Printf("❌ Detect: %v\n", err)
			continue
		}

		if len(detections) == 0 {
			fmt.Println("  (nothing)")
			continue
		}
		for _, d := range detections {
			fmt.Printf("  %-12s %.0f%%  [%.0f,%.0f %.0fx%.0f]\n",
				d.ClassName, d.Score*100,
				d.X1, d.Y1, d.Width(), d.Height())
		}
	}
}
