package scanlog

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"os"
)

// Record is one logged datagram with its capture time and source address.
type Record struct {
	Timestamp float64 // seconds since epoch
	Flag      uint16
	Addr      *net.UDPAddr
	Data      []byte
}

// ReadFile loads every record of a scan log into memory.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readAll(f)
}

func readAll(r io.Reader) ([]Record, error) {
	hdr := make([]byte, globalLen)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("read global header: %w", err)
	}
	if magic := binary.LittleEndian.Uint32(hdr[0:4]); magic != Magic {
		return nil, fmt.Errorf("invalid scan log magic 0x%x", magic)
	}

	var records []Record
	bufRec := make([]byte, recordLen)
	bufPriv := make([]byte, privLen)
	for {
		if _, err := io.ReadFull(r, bufRec); err != nil {
			if err == io.EOF {
				return records, nil
			}
			return nil, fmt.Errorf("read record header: %w", err)
		}
		tsSec := binary.LittleEndian.Uint32(bufRec[0:4])
		tsUsec := binary.LittleEndian.Uint32(bufRec[4:8])
		inclLen := binary.LittleEndian.Uint32(bufRec[8:12])
		if inclLen < privLen {
			return nil, fmt.Errorf("malformed record: length %d", inclLen)
		}
		if _, err := io.ReadFull(r, bufPriv); err != nil {
			return nil, fmt.Errorf("read private header: %w", err)
		}
		flag := binary.LittleEndian.Uint16(bufPriv[0:2])
		port := binary.LittleEndian.Uint16(bufPriv[2:4])
		ip := make(net.IP, 4)
		copy(ip, bufPriv[4:8])

		payload := make([]byte, int(inclLen)-privLen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("read payload: %w", err)
		}
		records = append(records, Record{
			Timestamp: float64(tsSec) + float64(tsUsec)/1e6,
			Flag:      flag,
			Addr:      &net.UDPAddr{IP: ip, Port: int(port)},
			Data:      payload,
		})
	}
}
