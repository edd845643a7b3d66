package web

import (
	"errors"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/hub"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/scan"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/store"
)

// handleHealth reports liveness.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleStatus returns the robot's current state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return c.JSON(s.state)
}

// handleListScans returns scan history, newest first.
func (s *Server) handleListScans(c *fiber.Ctx) error {
	if s.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "scan history not configured",
		})
	}

	summaries, err := s.store.Scans().List(c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if summaries == nil {
		summaries = []store.ScanSummary{}
	}

	return c.JSON(summaries)
}

// handleGetScan returns one scan with its detections.
func (s *Server) handleGetScan(c *fiber.Ctx) error {
	if s.store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "scan history not configured",
		})
	}

	result, err := s.store.Scans().Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "scan not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}

// handleTriggerScan runs a scan on demand. mode=full sweeps the whole
// circle, anything else checks the floor ahead.
func (s *Server) handleTriggerScan(c *fiber.Ctx) error {
	run := s.OnCheckFloor
	if c.Query("mode") == "full" {
		run = s.OnScan360
	}
	if run == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "scanning not configured",
		})
	}

	result, err := run()
	if err != nil {
		if errors.Is(err, scan.ErrBusy) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	s.PublishScan(result)
	return c.JSON(result)
}

// handleBroadcast sends a choreography trigger on the local network.
func (s *Server) handleBroadcast(c *fiber.Ctx) error {
	action := c.Params("action")
	if action != "start" && action != "stop" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "action must be start or stop",
		})
	}

	if s.OnBroadcast == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "broadcast not configured",
		})
	}

	if err := s.OnBroadcast(action); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"action": action})
}

// handleFrame returns a single camera frame as JPEG.
func (s *Server) handleFrame(c *fiber.Ctx) error {
	if s.OnCaptureFrame == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "camera not configured",
		})
	}

	jpeg, err := s.OnCaptureFrame()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("Content-Type", "image/jpeg")
	return c.Send(jpeg)
}

// handleStatusWS streams state updates, starting with the current state.
func (s *Server) handleStatusWS(c *websocket.Conn) {
	s.stateMu.RLock()
	c.WriteJSON(s.state)
	s.stateMu.RUnlock()

	hub.NewClient(s.statusHub, c).Run()
}

// handleEventsWS streams finished scans.
func (s *Server) handleEventsWS(c *websocket.Conn) {
	hub.NewClient(s.eventHub, c).Run()
}

// handleCameraWS streams camera frames.
func (s *Server) handleCameraWS(c *websocket.Conn) {
	hub.NewClient(s.cameraHub, c).Run()
}
