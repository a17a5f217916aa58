package scanlog

import (
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scans.pcap")
	w, err := NewWriter(path)
	require.NoError(t, err)

	addr := &net.UDPAddr{IP: net.IPv4(192, 168, 1, 20), Port: 44211}
	require.NoError(t, w.WriteRecord(FlagScan, addr, []byte{1, 2, 3, 4}))
	require.NoError(t, w.WriteRecord(FlagScan, addr, []byte{9, 8, 7}))
	require.NoError(t, w.WriteRecord(0x7F, nil, []byte{0}))
	require.NoError(t, w.Close())

	records, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, uint16(FlagScan), records[0].Flag)
	assert.Equal(t, []byte{1, 2, 3, 4}, records[0].Data)
	assert.Equal(t, "192.168.1.20", records[0].Addr.IP.String())
	assert.Equal(t, 44211, records[0].Addr.Port)
	assert.Equal(t, []byte{9, 8, 7}, records[1].Data)
	assert.Equal(t, uint16(0x7F), records[2].Flag)

	// timestamps are monotone non-decreasing within one file
	assert.LessOrEqual(t, records[0].Timestamp, records[1].Timestamp)
	assert.LessOrEqual(t, records[1].Timestamp, records[2].Timestamp)
}

func TestReadRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pcap")
	require.NoError(t, os.WriteFile(path, make([]byte, 64), 0o644))

	_, err := ReadFile(path)
	assert.ErrorContains(t, err, "magic")
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.pcap"))
	assert.Error(t, err)
}
