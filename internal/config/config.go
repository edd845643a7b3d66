// Package config provides environment configuration helpers for Xentauri commands.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Default robot configuration.
const (
	DefaultRobotPort     = "8090"
	DefaultCameraIndex   = 0
	DefaultBroadcastPort = 6001
	DefaultDBPath        = "xentauri.db"
)

// GeminiAPIKey returns the Gemini API key from GEMINI_API_KEY env var.
// Exits with a usage hint if not set.
func GeminiAPIKey() string {
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: GEMINI_API_KEY environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: GEMINI_API_KEY=... go run ./cmd/...")
		os.Exit(1)
	}
	return key
}

// RobotAddr returns the robot bridge address from ROBOT_ADDR env var.
// Falls back to the provided default if not set.
func RobotAddr(defaultAddr string) string {
	if addr := os.Getenv("ROBOT_ADDR"); addr != "" {
		return addr
	}
	return defaultAddr
}

// CameraIndex returns the camera device index from CAMERA_INDEX env var.
func CameraIndex() int {
	if v := os.Getenv("CAMERA_INDEX"); v != "" {
		if idx, err := strconv.Atoi(v); err == nil && idx >= 0 {
			return idx
		}
	}
	return DefaultCameraIndex
}

// BroadcastPort returns the choreography broadcast port from BROADCAST_PORT env var.
func BroadcastPort() int {
	if v := os.Getenv("BROADCAST_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 && port < 65536 {
			return port
		}
	}
	return DefaultBroadcastPort
}

// AudioAddr returns the audio daemon address from AUDIO_ADDR env var.
func AudioAddr(defaultAddr string) string {
	if addr := os.Getenv("AUDIO_ADDR"); addr != "" {
		return addr
	}
	return defaultAddr
}

// DBPath returns the scan history database path from XENTAURI_DB env var.
func DBPath() string {
	if path := os.Getenv("XENTAURI_DB"); path != "" {
		return path
	}
	return DefaultDBPath
}
