package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"lanescan-go/estimator"
	"lanescan-go/scan"
	"lanescan-go/scanlog"
	"lanescan-go/server"
)

// Offline tool: run a recorded scan log through an estimator variant and
// write the resulting estimates to CSV for analysis.
func main() {
	logPath := flag.String("log", "", "Input scan log file")
	variant := flag.String("variant", server.VariantMPC, "Estimator variant: mpc or pid")
	tuningPath := flag.String("tuning", "", "Optional JSON tuning override file")
	outPath := flag.String("out", "estimates.csv", "Output CSV path")
	flag.Parse()

	if *logPath == "" {
		fmt.Println("--log required")
		os.Exit(1)
	}

	var cfg estimator.Config
	switch *variant {
	case server.VariantMPC:
		cfg = estimator.MPCConfig()
	case server.VariantPID:
		cfg = estimator.PIDConfig()
	default:
		fmt.Printf("unknown variant %q\n", *variant)
		os.Exit(1)
	}
	if *tuningPath != "" {
		tuning, err := estimator.LoadTuning(*tuningPath)
		if err != nil {
			fmt.Printf("load tuning failed: %v\n", err)
			os.Exit(1)
		}
		tuning.Apply(&cfg)
	}

	pipeline, err := server.NewPipeline(*variant, cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	records, err := scanlog.ReadFile(*logPath)
	if err != nil {
		fmt.Printf("read scan log failed: %v\n", err)
		os.Exit(1)
	}

	var rows [][]string
	if *variant == server.VariantMPC {
		rows = append(rows, []string{"seq", "ts_ms", "y_m", "psi_rad", "v", "interval_s"})
	} else {
		rows = append(rows, []string{"seq", "ts_ms", "error_rad", "velocity"})
	}

	dropped := 0
	for _, rec := range records {
		if rec.Flag != scanlog.FlagScan {
			continue
		}
		sc, err := scan.Decode(rec.Data)
		if err != nil {
			dropped++
			continue
		}
		est, err := pipeline.Process(sc.Ranges, sc.Timestamp)
		if err != nil {
			fmt.Printf("scan %d dropped: %v\n", sc.Seq, err)
			dropped++
			continue
		}
		tsMs := strconv.FormatInt(sc.Timestamp.UnixMilli(), 10)
		seq := strconv.FormatUint(uint64(sc.Seq), 10)
		switch {
		case est.Pose != nil:
			p := est.Pose
			rows = append(rows, []string{seq, tsMs,
				fmt.Sprintf("%.4f", p.Y), fmt.Sprintf("%.4f", p.Psi),
				fmt.Sprintf("%.2f", p.V), fmt.Sprintf("%.4f", p.Interval)})
		case est.Heading != nil:
			h := est.Heading
			rows = append(rows, []string{seq, tsMs,
				fmt.Sprintf("%.4f", h.Error), fmt.Sprintf("%.2f", h.Velocity)})
		}
	}

	if err := writeCSV(*outPath, rows); err != nil {
		fmt.Printf("write csv failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %d estimates to %s (%d dropped)\n", len(rows)-1, *outPath, dropped)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
