package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"lanescan-go/estdb"
	"lanescan-go/estimator"
	"lanescan-go/relay"
	"lanescan-go/scanlog"
	"lanescan-go/server"
	"lanescan-go/web"
)

func main() {
	port := flag.Int("port", server.DefaultPort, "UDP port to listen on for scan frames")
	httpPort := flag.Int("http", 0, "HTTP/WebSocket port for the live view. 0 to disable.")
	variant := flag.String("variant", server.VariantMPC, "Estimator variant: mpc or pid")
	tuningPath := flag.String("tuning", "", "Optional JSON tuning override file")
	relayUDP := flag.String("relay-udp", "", "Comma-separated UDP controller endpoints (host:port)")
	relayTCP := flag.String("relay-tcp", "", "Comma-separated TCP controller endpoints (host:port)")
	dbPath := flag.String("db", "", "Path to sqlite estimate database (optional)")
	recordPath := flag.String("record", "", "Path to output scan log (optional)")
	distDir := flag.String("dist", "", "Static viewer directory served at /")
	flag.Parse()

	var cfg estimator.Config
	switch *variant {
	case server.VariantMPC:
		cfg = estimator.MPCConfig()
	case server.VariantPID:
		cfg = estimator.PIDConfig()
	default:
		log.Fatalf("unknown variant %q", *variant)
	}

	if *tuningPath != "" {
		tuning, err := estimator.LoadTuning(*tuningPath)
		if err != nil {
			log.Fatalf("load tuning: %v", err)
		}
		tuning.Apply(&cfg)
		log.Printf("applied tuning overrides from %s", *tuningPath)
	}

	pipeline, err := server.NewPipeline(*variant, cfg)
	if err != nil {
		log.Fatal(err)
	}

	udpSvr, err := server.NewUdpServer(*port, pipeline)
	if err != nil {
		log.Fatalf("create UDP server: %v", err)
	}

	var webSvr *web.Server
	if *httpPort > 0 {
		webSvr = web.NewServer()
		udpSvr.SetWebHub(webSvr.Hub)
	}

	sender := relay.NewSender()
	nTargets := 0
	for _, addr := range splitAddrs(*relayUDP) {
		if err := sender.AddUDPTarget(addr, relay.FlagPose|relay.FlagHeading); err != nil {
			log.Fatalf("relay UDP target %s: %v", addr, err)
		}
		log.Printf("added relay UDP target %s", addr)
		nTargets++
	}
	for _, addr := range splitAddrs(*relayTCP) {
		sender.AddTCPTarget(addr, relay.FlagPose|relay.FlagHeading)
		log.Printf("added relay TCP target %s", addr)
		nTargets++
	}
	if nTargets > 0 {
		if err := sender.Start(); err != nil {
			log.Fatalf("start relay sender: %v", err)
		}
		udpSvr.SetRelaySender(sender)
		defer sender.Stop()
	}

	if *dbPath != "" {
		db, err := estdb.Open(*dbPath, *variant)
		if err != nil {
			log.Fatalf("open estimate db: %v", err)
		}
		defer db.Close()
		udpSvr.SetEstDB(db)
		log.Printf("recording estimates to %s (session %s)", *dbPath, db.SessionID())
	}

	if *recordPath != "" {
		path := *recordPath
		if fi, err := os.Stat(path); err == nil && fi.IsDir() {
			path = fmt.Sprintf("%s/SCANS_%s.pcap", path, time.Now().Format("20060102150405"))
		}
		rec, err := scanlog.NewWriter(path)
		if err != nil {
			log.Fatalf("create scan log: %v", err)
		}
		defer rec.Close()
		udpSvr.SetRecorder(rec)
		log.Printf("logging scans to %s", path)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		udpSvr.Start()
		return nil
	})
	if webSvr != nil {
		g.Go(func() error {
			return webSvr.Start(*httpPort, *distDir)
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Println("shutting down...")
		udpSvr.Stop()
		if webSvr != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return webSvr.Shutdown(shutdownCtx)
		}
		return nil
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
}

func splitAddrs(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
