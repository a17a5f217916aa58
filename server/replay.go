package server

import (
	"log"
	"time"

	"lanescan-go/scanlog"
)

// Replay feeds a recorded scan log through the pipeline, pacing records by
// their captured timestamps scaled by speed. speed <= 0 replays as fast as
// possible.
func (s *UdpServer) Replay(path string, speed float64) error {
	records, err := scanlog.ReadFile(path)
	if err != nil {
		return err
	}

	s.running = true
	log.Printf("replaying %s (%d records) at %.1fx speed", path, len(records), speed)

	var firstTs float64
	startReal := time.Now()
	count := 0

	for _, rec := range records {
		if !s.running {
			break
		}
		if rec.Flag != scanlog.FlagScan {
			continue
		}
		if firstTs == 0 {
			firstTs = rec.Timestamp
			startReal = time.Now()
		} else if speed > 0 {
			targetDelay := time.Duration((rec.Timestamp - firstTs) / speed * float64(time.Second))
			if elapsed := time.Since(startReal); targetDelay > elapsed {
				time.Sleep(targetDelay - elapsed)
			}
		}

		sec := int64(rec.Timestamp)
		nsec := int64((rec.Timestamp - float64(sec)) * 1e9)
		s.handlePacket(rec.Data, rec.Addr, time.Unix(sec, nsec))
		count++
	}
	log.Printf("replay finished, %d scans processed", count)
	return nil
}
