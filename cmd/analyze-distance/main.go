// Analyze-distance - grasp plan inspection
//
// Reads a saved grasp plan and prints its objects ranked by distance,
// closest first. Used to sanity-check the geometry-based distance
// estimates after a scan.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/diazvaldiviav/Xentauri-Robots/pkg/detect"
	"github.com/diazvaldiviav/Xentauri-Robots/pkg/scan"
)

func main() {
	path := flag.String("plan", "grasp_plan.json", "grasp plan file to analyze")
	flag.Parse()

	plan, err := scan.LoadGraspPlan(*path)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("📐 Grasp plan %s (%d objects)\n", plan.ScanID, len(plan.Objects))
	fmt.Println("==================================")

	if len(plan.Objects) == 0 {
		fmt.Println("Nothing to pick up.")
		return
	}

	objects := make([]detect.Object, len(plan.Objects))
	copy(objects, plan.Objects)
	detect.SortByDistance(objects)

	for i, obj := range objects {
		fmt.Printf("%2d. %-30s %-8s ~%3.0fcm  score %.2f  priority %.2f\n",
			i+1, obj.Description, obj.Category,
			obj.DistanceCM, obj.DistanceScore, obj.Priority)
	}

	if nearest, ok := detect.Nearest(objects); ok {
		fmt.Printf("\n🎯 Nearest: %s at ~%.0fcm", nearest.Description, nearest.DistanceCM)
		if nearest.GraspPoint != nil {
			fmt.Printf(", grasp point (%.0f, %.0f)", nearest.GraspPoint.X, nearest.GraspPoint.Y)
		}
		fmt.Println()
	}
}
