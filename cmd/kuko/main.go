// Kuko - the integrated floor-tidying robot
//
// Runs the full stack on the robot: the voice loop listens for spoken
// commands, the scanner photographs and classifies the floor, the gait
// controller moves the body, and the dashboard shows what is happening.
// Replies are spoken in Spanish.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diazvaldiviav/Xentauri-Robots/internal/config"
	"github.com/diazvaldiviav/Xentauri-Robots/internal/log"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/broadcast"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/camera"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/inference"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/robot"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/scan"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/store"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/vision"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/voice"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/web"
)

func main() {
	dashboardPort := flag.String("dashboard", "8080", "dashboard port, empty to disable")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)

	fmt.Println("🐕 Kuko - Xentauri Floor Robot")
	fmt.Println("==============================")

	apiKey := config.GeminiAPIKey()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n👋 Shutting down...")
		cancel()
	}()

	// Model
	provider, err := inference.NewGenAI(ctx, inference.WithAPIKey(apiKey))
	if err != nil {
		fmt.Printf("❌ Model: %v\n", err)
		os.Exit(1)
	}
	defer provider.Close()

	// Camera
	camCfg := camera.DefaultConfig()
	camCfg.Index = config.CameraIndex()
	cam, err := camera.Open(camCfg)
	if err != nil {
		fmt.Printf("❌ Camera: %v\n", err)
		os.Exit(1)
	}
	defer cam.Close()

	// Motion
	ctrl := robot.NewHTTPController(config.RobotAddr("127.0.0.1:" + config.DefaultRobotPort))

	// Scanner
	classifier := vision.NewClassifier(provider, vision.DefaultClassifierConfig())
	scanCfg := scan.DefaultConfig()
	scanCfg.ImageHeight = cam.Config().Height
	scanner := scan.New(cam, classifier, ctrl, scanCfg)

	// Voice
	audioAddr := config.AudioAddr("127.0.0.1:8091")
	pipeline := voice.NewPipeline(
		voice.NewHTTPRecognizer(audioAddr),
		voice.NewHTTPSpeaker(audioAddr),
		voice.NewParser(provider),
		voice.DefaultPipelineConfig(),
	)
	defer pipeline.Close()

	// History
	st, err := store.New(config.DBPath())
	if err != nil {
		fmt.Printf("❌ History: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	a := &app{
		scanner:  scanner,
		speaker:  pipeline,
		ctrl:     ctrl,
		store:    st,
		planPath: "grasp_plan.json",
	}

	// Dashboard
	if *dashboardPort != "" {
		server := web.NewServer(*dashboardPort, st)
		server.OnCheckFloor = func() (*scan.Result, error) { return scanner.CheckFloor(ctx) }
		server.OnScan360 = func() (*scan.Result, error) { return scanner.Scan360(ctx) }
		server.OnCaptureFrame = cam.CaptureJPEG
		server.StartAsync()
		a.server = server
	}

	// Choreography listener: other robots (or the trigger console) can
	// start a sweep on every unit at once.
	listener, err := broadcast.NewListener(config.BroadcastPort())
	if err != nil {
		fmt.Printf("⚠️  Choreography listener disabled: %v\n", err)
	} else {
		go listener.Run(ctx)
		go func() {
			for event := range listener.Events() {
				if event.Action == broadcast.ActionStart {
					a.handle(ctx, voice.Command{Intent: voice.IntentCleanup})
				} else {
					ctrl.Stop()
				}
			}
		}()
	}

	fmt.Println("\n🎤 Listening (Ctrl+C to stop)")
	a.voiceLoop(ctx, pipeline)
}

// app wires the voice commands to the scanner, the history store and
// the dashboard.
type app struct {
	scanner  *scan.Scanner
	speaker  announcer
	ctrl     robot.Controller
	store    *store.Store
	server   *web.Server
	planPath string
}

// announcer speaks replies out loud.
type announcer interface {
	Say(ctx context.Context, text string) error
}

// voiceLoop runs the listen-parse-act cycle until the context ends.
func (a *app) voiceLoop(ctx context.Context, pipeline *voice.Pipeline) {
	for {
		if ctx.Err() != nil {
			return
		}

		a.setListening(true)
		cmd, err := pipeline.ProcessCommand(ctx)
		a.setListening(false)

		if err != nil {
			if errors.Is(err, voice.ErrNoSpeech) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			fmt.Printf("⚠️  Voice: %v\n", err)
			time.Sleep(time.Second)
			continue
		}

		a.handle(ctx, cmd)
	}
}

// handle acts on one parsed command. Scan intents go through the
// scanner's command handler so an empty look ahead escalates into a
// full sweep; only the battery question needs the controller directly.
func (a *app) handle(ctx context.Context, cmd voice.Command) {
	if cmd.Intent == voice.IntentStatus {
		a.reportBattery(ctx)
		return
	}

	scanning := cmd.Intent == voice.IntentScanFloor || cmd.Intent == voice.IntentCleanup
	if scanning && a.server != nil {
		a.server.UpdateState(func(s *web.RobotState) { s.Scanning = true })
		defer a.server.UpdateState(func(s *web.RobotState) { s.Scanning = false })
	}

	reply, result, err := a.scanner.HandleCommand(ctx, cmd)
	if err != nil {
		fmt.Printf("⚠️  Command: %v\n", err)
	}
	if reply != "" {
		a.speaker.Say(ctx, reply)
	}
	if result != nil {
		a.record(result)
	}
}

// reportBattery answers the status question with the charge level.
func (a *app) reportBattery(ctx context.Context) {
	level, err := a.ctrl.Battery()
	if err != nil {
		a.speaker.Say(ctx, "No consigo leer la batería.")
		return
	}
	a.speaker.Say(ctx, fmt.Sprintf("Tengo un %d por ciento de batería.", level))
	if a.server != nil {
		a.server.UpdateState(func(s *web.RobotState) { s.BatteryLevel = level })
	}
}

// record persists a finished scan and publishes it to the dashboard.
func (a *app) record(result *scan.Result) {
	if err := a.store.Scans().Save(result); err != nil {
		fmt.Printf("⚠️  History: %v\n", err)
	}
	if err := scan.SaveGraspPlan(a.planPath, result.GraspPlan()); err != nil {
		fmt.Printf("⚠️  %v\n", err)
	}
	if a.server != nil {
		a.server.PublishScan(result)
	}
}

// setListening flips the dashboard listening indicator.
func (a *app) setListening(listening bool) {
	if a.server != nil {
		a.server.UpdateState(func(s *web.RobotState) { s.Listening = listening })
	}
}
