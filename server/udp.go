package server

import (
	"encoding/json"
	"log"
	"net"
	"sync"
	"time"

	"lanescan-go/estdb"
	"lanescan-go/relay"
	"lanescan-go/scan"
	"lanescan-go/scanlog"
	"lanescan-go/web"
)

const (
	DefaultPort   = 44210
	MaxPacketSize = 65535
)

// wsEstimate is the JSON frame pushed to live viewers.
type wsEstimate struct {
	Variant  string  `json:"variant"`
	Seq      uint32  `json:"seq"`
	TS       int64   `json:"ts"`
	Y        float64 `json:"y,omitempty"`
	Psi      float64 `json:"psi,omitempty"`
	Error    float64 `json:"error,omitempty"`
	V        float64 `json:"v"`
	Interval float64 `json:"interval,omitempty"`
}

// UdpServer receives scan datagrams, runs the configured pipeline over each
// one and publishes the resulting estimate. Scans are processed strictly one
// at a time in arrival order; a failed scan is dropped and the next one is
// handled normally.
type UdpServer struct {
	conn     *net.UDPConn
	pipeline Pipeline
	recorder *scanlog.Writer
	sender   *relay.Sender
	webHub   *web.Hub
	db       *estdb.EstDB
	running  bool

	mu     sync.Mutex
	latest *wsEstimate
}

func NewUdpServer(port int, pipeline Pipeline) (*UdpServer, error) {
	if port == 0 {
		port = DefaultPort
	}
	addr := net.UDPAddr{
		Port: port,
		IP:   net.ParseIP("0.0.0.0"),
	}
	conn, err := net.ListenUDP("udp", &addr)
	if err != nil {
		return nil, err
	}
	conn.SetReadBuffer(256 * 1024)

	return &UdpServer{
		conn:     conn,
		pipeline: pipeline,
	}, nil
}

func (s *UdpServer) SetRecorder(w *scanlog.Writer) {
	s.recorder = w
}

func (s *UdpServer) SetRelaySender(snd *relay.Sender) {
	s.sender = snd
}

func (s *UdpServer) SetWebHub(h *web.Hub) {
	s.webHub = h
}

func (s *UdpServer) SetEstDB(db *estdb.EstDB) {
	s.db = db
}

// Latest returns the most recently published estimate, or nil.
func (s *UdpServer) Latest() *wsEstimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

func (s *UdpServer) Start() {
	s.running = true
	buf := make([]byte, MaxPacketSize)
	log.Printf("UDP server listening on %s", s.conn.LocalAddr().String())

	for s.running {
		n, addr, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if s.running {
				log.Printf("read error: %v", err)
			}
			continue
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		s.handlePacket(data, addr, time.Now())
	}
}

func (s *UdpServer) Stop() {
	s.running = false
	s.conn.Close()
}

func (s *UdpServer) handlePacket(data []byte, addr *net.UDPAddr, arrival time.Time) {
	if s.recorder != nil {
		_ = s.recorder.WriteRecord(scanlog.FlagScan, addr, data)
	}

	sc, err := scan.Decode(data)
	if err != nil {
		log.Printf("bad scan frame from %v: %v", addr, err)
		return
	}

	// Prefer the capture timestamp carried in the frame; identical input
	// then yields an identical estimate. Fall back to arrival time for
	// producers that do not fill it in.
	now := sc.Timestamp
	if now.IsZero() || now.UnixMicro() == 0 {
		now = arrival
	}

	est, err := s.pipeline.Process(sc.Ranges, now)
	if err != nil {
		// Configuration/scan-size mismatch. Report it and drop the
		// scan; nothing is published for it.
		log.Printf("scan %d dropped: %v", sc.Seq, err)
		return
	}

	s.publish(sc.Seq, now.UnixMilli(), est)
}

func (s *UdpServer) publish(seq uint32, tsMs int64, est Estimate) {
	ws := &wsEstimate{
		Variant: s.pipeline.Variant(),
		Seq:     seq,
		TS:      tsMs,
	}

	switch {
	case est.Pose != nil:
		p := est.Pose
		ws.Y, ws.Psi, ws.V, ws.Interval = p.Y, p.Psi, p.V, p.Interval
		if s.sender != nil {
			s.sender.Send(relay.FormatPose(tsMs, p.Y, p.Psi, p.V, p.Interval), relay.FlagPose)
		}
		if s.db != nil {
			if err := s.db.RecordPose(tsMs, seq, *p); err != nil {
				log.Printf("record pose: %v", err)
			}
		}
	case est.Heading != nil:
		h := est.Heading
		ws.Error, ws.V = h.Error, h.Velocity
		if s.sender != nil {
			s.sender.Send(relay.FormatHeadingError(tsMs, h.Error, h.Velocity), relay.FlagHeading)
		}
		if s.db != nil {
			if err := s.db.RecordHeadingError(tsMs, seq, *h); err != nil {
				log.Printf("record heading error: %v", err)
			}
		}
	default:
		return
	}

	s.mu.Lock()
	s.latest = ws
	s.mu.Unlock()

	if s.webHub != nil {
		b, _ := json.Marshal(ws)
		s.webHub.Broadcast(b)
	}
}
