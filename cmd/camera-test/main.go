// Camera-test - capture diagnostics
//
// Opens the robot camera at full sensor resolution (falling back when
// the module cannot do 5MP), grabs a few frames, reports brightness and
// sharpness, and saves a test shot.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gocv.io/x/gocv"

	"github.com/diazvaldiviav/Xentauri-Robots/internal/config"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/camera"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/vision"
)

func main() {
	preset := flag.String("preset", "5mp", "resolution preset (5mp, 1080p, 720p, vga, qvga)")
	frames := flag.Int("frames", 5, "frames to capture for timing")
	output := flag.String("output", "test_shot.jpg", "where to save the test shot")
	flag.Parse()

	fmt.Println("📷 Xentauri Camera Diagnostics")
	fmt.Println("==============================")

	cfg := camera.GetPreset(*preset)
	if cfg == nil {
		fmt.Printf("❌ Unknown preset %q\n", *preset)
		os.Exit(1)
	}
	cfg.Index = config.CameraIndex()

	fmt.Printf("Device %d, requesting %dx%d\n\n", cfg.Index, cfg.Width, cfg.Height)

	cam, err := camera.Open(*cfg)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	defer cam.Close()

	active := cam.Config()
	fmt.Printf("Active resolution: %dx%d @ %dfps (%s)\n",
		active.Width, active.Height, active.Framerate, active.FourCC)

	// Frame timing
	fmt.Printf("\nCapturing %d frames...\n", *frames)
	start := time.Now()
	var last gocv.Mat
	for i := 0; i < *frames; i++ {
		mat, err := cam.ReadMat()
		if err != nil {
			fmt.Printf("❌ Frame %d: %v\n", i+1, err)
			os.Exit(1)
		}
		if i == *frames-1 {
			last = mat
		} else {
			mat.Close()
		}
	}
	elapsed := time.Since(start)
	fmt.Printf("✅ %d frames in %v (%.1f fps)\n",
		*frames, elapsed.Round(time.Millisecond),
		float64(*frames)/elapsed.Seconds())
	defer last.Close()

	// Frame quality
	report := vision.Assess(last)
	fmt.Printf("\nBrightness: %.1f\n", report.Brightness)
	fmt.Printf("Sharpness:  %.1f\n", report.Sharpness)

	quality := vision.DefaultQualityConfig()
	if err := quality.Check(report); err != nil {
		fmt.Printf("⚠️  Frame quality: %v\n", err)
	} else {
		fmt.Println("✅ Frame quality OK")
	}

	// Test shot
	jpeg, err := cam.CaptureJPEG()
	if err != nil {
		fmt.Printf("❌ Encode test shot: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*output, jpeg, 0o644); err != nil {
		fmt.Printf("❌ Save test shot: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\n💾 Saved %s (%d bytes)\n", *output, len(jpeg))
}
