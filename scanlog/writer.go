package scanlog

import (
	"encoding/binary"
	"io"
	"net"
	"os"
	"sync"
	"time"
)

// Scan logs reuse the classic pcap framing so standard tooling can at least
// walk the records: a 24-byte global header, then per record a 16-byte
// header followed by an 8-byte private header (flag, source port, source
// IPv4) and the raw datagram payload.
const (
	Magic = 0xA1B2C3D4

	globalLen = 24
	recordLen = 16
	privLen   = 8

	// Record flags.
	FlagScan = 0x01
)

type Writer struct {
	mu  sync.Mutex
	w   io.Writer
	buf []byte
}

func NewWriter(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := &Writer{
		w:   f,
		buf: make([]byte, 32),
	}
	if err := w.writeGlobalHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *Writer) writeGlobalHeader() error {
	b := make([]byte, globalLen)
	binary.LittleEndian.PutUint32(b[0:], Magic)
	binary.LittleEndian.PutUint16(b[4:], 2)      // version major
	binary.LittleEndian.PutUint16(b[6:], 4)      // version minor
	binary.LittleEndian.PutUint32(b[16:], 65535) // snap length
	binary.LittleEndian.PutUint32(b[20:], 1)     // link type, ignored
	_, err := w.w.Write(b)
	return err
}

// WriteRecord appends one raw datagram with its source address.
func (w *Writer) WriteRecord(flag uint16, addr *net.UDPAddr, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	totalLen := uint32(len(data) + privLen)

	binary.LittleEndian.PutUint32(w.buf[0:], uint32(now.Unix()))
	binary.LittleEndian.PutUint32(w.buf[4:], uint32(now.Nanosecond()/1000))
	binary.LittleEndian.PutUint32(w.buf[8:], totalLen)
	binary.LittleEndian.PutUint32(w.buf[12:], totalLen)
	if _, err := w.w.Write(w.buf[:recordLen]); err != nil {
		return err
	}

	binary.LittleEndian.PutUint16(w.buf[0:], flag)
	port := uint16(0)
	var ip4 net.IP
	if addr != nil {
		port = uint16(addr.Port)
		ip4 = addr.IP.To4()
	}
	binary.LittleEndian.PutUint16(w.buf[2:], port)
	if ip4 != nil && len(ip4) == 4 {
		// network byte order, matching the replay reader
		copy(w.buf[4:8], ip4)
	} else {
		binary.LittleEndian.PutUint32(w.buf[4:], 0)
	}
	if _, err := w.w.Write(w.buf[:privLen]); err != nil {
		return err
	}

	_, err := w.w.Write(data)
	return err
}

func (w *Writer) Close() error {
	if c, ok := w.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
