package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"net"
	"time"

	"lanescan-go/estimator"
	"lanescan-go/scan"
)

// Synthetic scan generator: ray-casts a straight bounded lane from a chosen
// vehicle pose and streams the frames over UDP, with optional noise and
// invalid returns mixed in. Useful for exercising the daemon without a
// rangefinder on the bench.
func main() {
	target := flag.String("target", "127.0.0.1:44210", "Daemon address")
	rate := flag.Float64("rate", 40, "Scans per second")
	count := flag.Int("count", 0, "Number of scans to send, 0 for unlimited")
	laneWidth := flag.Float64("lane-width", 4.0, "Lane width, meters")
	offset := flag.Float64("offset", 0, "Lateral offset from centerline, meters, positive toward the left wall")
	headingDeg := flag.Float64("heading", 0, "Heading relative to lane direction, degrees")
	noise := flag.Float64("noise", 0.01, "Gaussian range noise sigma, meters")
	dropout := flag.Float64("dropout", 0.001, "Per-beam probability of a NaN return")
	seed := flag.Int64("seed", 1, "Random seed")
	flag.Parse()

	addr, err := net.ResolveUDPAddr("udp", *target)
	if err != nil {
		log.Fatalf("resolve target: %v", err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	rng := rand.New(rand.NewSource(*seed))
	psi := *headingDeg * math.Pi / 180
	interval := time.Duration(float64(time.Second) / *rate)

	log.Printf("streaming lane scans to %s: width=%.1fm offset=%.2fm heading=%.1fdeg",
		*target, *laneWidth, *offset, *headingDeg)

	seq := uint32(0)
	for tick := time.NewTicker(interval); ; <-tick.C {
		s := &scan.Scan{
			Seq:       seq,
			Timestamp: time.Now(),
			Ranges:    castScan(*laneWidth, *offset, psi, *noise, *dropout, rng),
		}
		frame, err := scan.Encode(s)
		if err != nil {
			log.Fatalf("encode: %v", err)
		}
		if _, err := conn.Write(frame); err != nil {
			log.Printf("send: %v", err)
		}
		seq++
		if *count > 0 && int(seq) >= *count {
			log.Printf("sent %d scans", seq)
			return
		}
	}
}

// castScan intersects each beam with two parallel walls at y = +-width/2.
// The vehicle sits at (0, offset) heading psi off the lane direction; beam i
// leaves at psi + (i-forward)*resolution, counterclockwise. Beams that run
// parallel to the walls return +Inf, which the estimator's sanitizer maps to
// its open-space fallback.
func castScan(width, offset, psi, noise, dropout float64, rng *rand.Rand) []float64 {
	ranges := make([]float64, estimator.BeamCount)
	for i := range ranges {
		if rng.Float64() < dropout {
			ranges[i] = math.NaN()
			continue
		}
		alpha := psi + (float64(i-estimator.ForwardBeamIndex)*estimator.ResolutionDeg)*math.Pi/180
		sin := math.Sin(alpha)
		var dist float64
		switch {
		case sin > 1e-9:
			dist = (width/2 - offset) / sin
		case sin < -1e-9:
			dist = (-width/2 - offset) / sin
		default:
			dist = math.Inf(1)
		}
		if !math.IsInf(dist, 0) && noise > 0 {
			dist += rng.NormFloat64() * noise
			if dist < 0 {
				dist = 0
			}
		}
		ranges[i] = dist
	}
	return ranges
}
