// Scan-floor - one-shot floor scan
//
// Photographs the floor, asks the vision model what is lying on it, and
// prints the ranked pickup plan. With -full the robot sweeps a complete
// circle, photographing at each heading. Results are saved to the scan
// history database and a grasp plan file.
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
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/inference"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/robot"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/scan"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/store"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/vision"
)

func main() {
	full := flag.Bool("full", false, "sweep a complete circle instead of checking ahead")
	planPath := flag.String("plan", "grasp_plan.json", "where to save the grasp plan")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)

	fmt.Println("🧹 Xentauri Floor Scan")
	fmt.Println("======================")

	apiKey := config.GeminiAPIKey()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Cancelling scan...")
		cancel()
	}()

	provider, err := inference.NewGenAI(ctx, inference.WithAPIKey(apiKey))
	if err != nil {
		fmt.Printf("❌ Model: %v\n", err)
		os.Exit(1)
	}
	defer provider.Close()

	camCfg := camera.DefaultConfig()
	camCfg.Index = config.CameraIndex()
	cam, err := camera.Open(camCfg)
	if err != nil {
		fmt.Printf("❌ Camera: %v\n", err)
		os.Exit(1)
	}
	defer cam.Close()

	classifier := vision.NewClassifier(provider, vision.DefaultClassifierConfig())

	scanCfg := scan.DefaultConfig()
	scanCfg.ImageHeight = cam.Config().Height

	var gait robot.GaitController
	if *full {
		gait = robot.NewHTTPController(config.RobotAddr("127.0.0.1:" + config.DefaultRobotPort))
	}

	scanner := scan.New(cam, classifier, gait, scanCfg)

	var result *scan.Result
	if *full {
		fmt.Println("Sweeping a full circle...")
		result, err = scanner.Scan360(ctx)
	} else {
		fmt.Println("Checking the floor ahead...")
		result, err = scanner.CheckFloor(ctx)
	}
	if err != nil {
		fmt.Printf("❌ Scan: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%s\n\n", result.EnglishReport())
	for i, obj := range result.Objects {
		fmt.Printf("%2d. %-30s %-8s %3.0f%%  ~%3.0fcm  priority %.2f\n",
			i+1, obj.Description, obj.Category,
			obj.Confidence, obj.DistanceCM, obj.Priority)
	}

	// Annotated evidence shot for the quick scan, where the detections
	// are still in view.
	if !*full && len(result.Objects) > 0 {
		if jpeg, err := cam.CaptureJPEG(); err == nil {
			if annotated, err := scan.AnnotateJPEG(jpeg, result.Objects); err == nil {
				if err := os.WriteFile("scan_annotated.jpg", annotated, 0o644); err == nil {
					fmt.Println("💾 Annotated frame saved to scan_annotated.jpg")
				}
			}
		}
	}

	if err := scan.SaveGraspPlan(*planPath, result.GraspPlan()); err != nil {
		fmt.Printf("⚠️  %v\n", err)
	} else {
		fmt.Printf("\n💾 Grasp plan saved to %s\n", *planPath)
	}

	st, err := store.New(config.DBPath())
	if err != nil {
		fmt.Printf("⚠️  History: %v\n", err)
		return
	}
	defer st.Close()

	if err := st.Scans().Save(result); err != nil {
		fmt.Printf("⚠️  History: %v\n", err)
	} else {
		fmt.Printf("💾 Scan %s saved to history\n", result.ID)
	}
}
