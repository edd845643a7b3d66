// Package web serves the robot dashboard: scan history, live status and
// the camera stream, plus manual triggers for scans and choreography
// broadcasts.
package web

import (
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/hub"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/scan"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/store"
)

// RobotState is the live status shown on the dashboard.
type RobotState struct {
	BatteryLevel    int    `json:"battery_level"`
	DaemonState     string `json:"daemon_state"`
	Scanning        bool   `json:"scanning"`
	Tracking        bool   `json:"tracking"`
	Listening       bool   `json:"listening"`
	LastScanID      string `json:"last_scan_id"`
	LastScanObjects int    `json:"last_scan_objects"`
	LastHeard       string `json:"last_heard"`
	LastSpoken      string `json:"last_spoken"`
}

// Server is the dashboard web server.
type Server struct {
	app    *fiber.App
	port   string
	logger *slog.Logger

	state   RobotState
	stateMu sync.RWMutex

	store *store.Store

	statusHub *hub.Hub
	eventHub  *hub.Hub
	cameraHub *hub.Hub

	// OnCheckFloor runs a stationary scan when the dashboard asks.
	OnCheckFloor func() (*scan.Result, error)

	// OnScan360 runs a full sweep when the dashboard asks.
	OnScan360 func() (*scan.Result, error)

	// OnBroadcast sends a choreography trigger ("start" or "stop").
	OnBroadcast func(action string) error

	// OnCaptureFrame grabs one JPEG frame for the live view.
	OnCaptureFrame func() ([]byte, error)
}

// NewServer creates the dashboard server. st may be nil, which disables
// the history endpoints.
func NewServer(port string, st *store.Store) *Server {
	s := &Server{
		port:      port,
		logger:    slog.Default().With("component", "web"),
		store:     st,
		statusHub: hub.New("status"),
		eventHub:  hub.New("events"),
		cameraHub: hub.New("camera"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Kuko Dashboard",
		DisableStartupMessage: true,
	})

	app.Use(cors.New())
	app.Static("/", "./web")

	app.Get("/health", s.handleHealth)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/scans", s.handleListScans)
	api.Get("/scans/:id", s.handleGetScan)
	api.Post("/scan", s.handleTriggerScan)
	api.Post("/broadcast/:action", s.handleBroadcast)
	api.Get("/frame", s.handleFrame)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))
	app.Get("/ws/events", websocket.New(s.handleEventsWS))
	app.Get("/ws/camera", websocket.New(s.handleCameraWS))

	s.app = app
	return s
}

// Start runs the hubs and listens. It blocks.
func (s *Server) Start() error {
	go s.statusHub.Run()
	go s.eventHub.Run()
	go s.cameraHub.Run()

	s.logger.Info("dashboard listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync starts the server in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			s.logger.Error("dashboard server failed", "error", err)
		}
	}()
}

// UpdateState mutates the live state and broadcasts it to clients.
func (s *Server) UpdateState(update func(*RobotState)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.state
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}

// PublishScan pushes a finished scan to event subscribers.
func (s *Server) PublishScan(result *scan.Result) {
	s.UpdateState(func(st *RobotState) {
		st.LastScanID = result.ID
		st.LastScanObjects = len(result.Objects)
	})
	s.eventHub.BroadcastJSON(result)
}

// PublishFrame pushes a camera frame to stream subscribers.
func (s *Server) PublishFrame(jpeg []byte) {
	s.cameraHub.BroadcastBinary(jpeg)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
