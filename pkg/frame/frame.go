// Package frame wraps serialized records for storage.
//
// Every value written by the storage layer is a frame:
//
//	[CRC32(4)][KeySize(4)][PayloadSize(4)][Timestamp(8)][Key][Payload]
//
// All integers are little-endian. The checksum covers every byte after the
// CRC32 field, so a damaged payload is reported as corruption before the
// flat-string decoder ever sees it.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"time"
)

// HeaderSize is the number of bytes before the key.
const HeaderSize = 20

var (
	ErrSize     = errors.New("frame: size mismatch")
	ErrChecksum = errors.New("frame: checksum mismatch")
	ErrTooLarge = errors.New("frame: key or payload too large")
)

// Frame is a decoded storage frame.
type Frame struct {
	Checksum uint32
	Written  time.Time
	Key      []byte
	Payload  []byte
}

// Encode builds a frame holding key and payload stamped with at.
func Encode(key []byte, payload string, at time.Time) ([]byte, error) {
	if uint64(len(key)) > uint64(^uint32(0)) || uint64(len(payload)) > uint64(^uint32(0)) {
		return nil, ErrTooLarge
	}

	buf := make([]byte, HeaderSize+len(key)+len(payload))
	binary.LittleEndian.PutUint32(buf[4:], uint32(len(key)))
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(payload)))
	binary.LittleEndian.PutUint64(buf[12:], uint64(at.UnixNano()))
	copy(buf[HeaderSize:], key)
	copy(buf[HeaderSize+len(key):], payload)
	binary.LittleEndian.PutUint32(buf[0:], crc32.ChecksumIEEE(buf[4:]))

	return buf, nil
}

// Decode parses and verifies a frame. Key and Payload alias data.
func Decode(data []byte) (*Frame, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrSize, len(data))
	}

	sum := binary.LittleEndian.Uint32(data[0:4])
	keySize := uint64(binary.LittleEndian.Uint32(data[4:8]))
	payloadSize := uint64(binary.LittleEndian.Uint32(data[8:12]))
	stamp := binary.LittleEndian.Uint64(data[12:20])

	if uint64(len(data)) != HeaderSize+keySize+payloadSize {
		return nil, fmt.Errorf("%w: have %d bytes, header says %d", ErrSize, len(data), HeaderSize+keySize+payloadSize)
	}
	if got := crc32.ChecksumIEEE(data[4:]); got != sum {
		return nil, fmt.Errorf("%w: %08x != %08x", ErrChecksum, got, sum)
	}

	return &Frame{
		Checksum: sum,
		Written:  time.Unix(0, int64(stamp)).UTC(),
		Key:      data[HeaderSize : HeaderSize+keySize],
		Payload:  data[HeaderSize+keySize:],
	}, nil
}

// String returns the payload as a serialized record.
func (f *Frame) String() string {
	return string(f.Payload)
}
