package scan

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
)

// Wire format, one UDP datagram per scan, little endian throughout:
//
//	magic    uint16  0x4C53 ("SL")
//	version  uint8
//	seq      uint32
//	ts_us    uint64  capture time, microseconds since epoch
//	count    uint16  number of beams
//	ranges   count * float32
const (
	Magic   = 0x4C53
	Version = 1
	HdrLen  = 17
)

// MaxBeams keeps a full frame inside one datagram.
const MaxBeams = (65535 - HdrLen) / 4

// Encode serializes a scan into a wire frame.
func Encode(s *Scan) ([]byte, error) {
	if len(s.Ranges) == 0 {
		return nil, fmt.Errorf("encode: scan has no beams")
	}
	if len(s.Ranges) > MaxBeams {
		return nil, fmt.Errorf("encode: %d beams exceeds frame limit %d", len(s.Ranges), MaxBeams)
	}
	buf := make([]byte, HdrLen+4*len(s.Ranges))
	binary.LittleEndian.PutUint16(buf[0:2], Magic)
	buf[2] = Version
	binary.LittleEndian.PutUint32(buf[3:7], s.Seq)
	binary.LittleEndian.PutUint64(buf[7:15], uint64(s.Timestamp.UnixMicro()))
	binary.LittleEndian.PutUint16(buf[15:17], uint16(len(s.Ranges)))
	off := HdrLen
	for _, r := range s.Ranges {
		binary.LittleEndian.PutUint32(buf[off:off+4], math.Float32bits(float32(r)))
		off += 4
	}
	return buf, nil
}

// Decode parses one wire frame. NaN and infinite range values pass through
// untouched; sanitization is the estimator's job.
func Decode(data []byte) (*Scan, error) {
	if len(data) < HdrLen {
		return nil, fmt.Errorf("decode: frame too short (%d bytes)", len(data))
	}
	if magic := binary.LittleEndian.Uint16(data[0:2]); magic != Magic {
		return nil, fmt.Errorf("decode: invalid magic 0x%x", magic)
	}
	if v := data[2]; v != Version {
		return nil, fmt.Errorf("decode: unsupported version %d", v)
	}
	count := int(binary.LittleEndian.Uint16(data[15:17]))
	if len(data) < HdrLen+4*count {
		return nil, fmt.Errorf("decode: truncated frame: %d beams declared, %d bytes", count, len(data))
	}
	s := &Scan{
		Seq:       binary.LittleEndian.Uint32(data[3:7]),
		Timestamp: time.UnixMicro(int64(binary.LittleEndian.Uint64(data[7:15]))).UTC(),
		Ranges:    make([]float64, count),
	}
	off := HdrLen
	for i := 0; i < count; i++ {
		s.Ranges[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4])))
		off += 4
	}
	return s, nil
}
