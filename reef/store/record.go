package store

import (
	"encoding/binary"

	"github.com/sigurn/crc16"
)

var crcTable = crc16.MakeTable(crc16.CRC16_CCITT_FALSE)

// checksum is CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF).
func checksum(b []byte) uint16 { return crc16.Checksum(b, crcTable) }

// Legacy ring records.
const (
	legacyMagic   uint32 = 0x41514B50
	legacyVersion        = 1
	legacySize           = 32
	legacyCount          = 16
	legacyOffset         = 0
)

// Full save record.
const (
	fullMagic   = "FISH"
	fullVersion = 2
	fullSize    = 20
	fullOffset  = 512
)

// Legacy is the three-stat record of the first save format.
type Legacy struct {
	Hunger, Fun, Energy int16
}

// Full is the complete pet state.
type Full struct {
	Hunger, Fun, Energy, HP int16
	AgeSec                  uint32
	Dead                    bool
}

type legacyRecord struct {
	seq uint16
	Legacy
}

func encodeLegacy(r legacyRecord) [legacySize]byte {
	var b [legacySize]byte
	le := binary.LittleEndian
	le.PutUint32(b[0:], legacyMagic)
	b[4] = legacyVersion
	b[5] = legacySize
	le.PutUint16(b[6:], r.seq)
	le.PutUint16(b[8:], uint16(r.Hunger))
	le.PutUint16(b[10:], uint16(r.Fun))
	le.PutUint16(b[12:], uint16(r.Energy))
	le.PutUint16(b[30:], checksum(b[:30]))
	return b
}

func decodeLegacy(b []byte) (legacyRecord, bool) {
	le := binary.LittleEndian
	if len(b) < legacySize || le.Uint32(b) != legacyMagic {
		return legacyRecord{}, false
	}
	if checksum(b[:30]) != le.Uint16(b[30:]) {
		return legacyRecord{}, false
	}
	return legacyRecord{
		seq: le.Uint16(b[6:]),
		Legacy: Legacy{
			Hunger: int16(le.Uint16(b[8:])),
			Fun:    int16(le.Uint16(b[10:])),
			Energy: int16(le.Uint16(b[12:])),
		},
	}, true
}

func encodeFull(f Full) [fullSize]byte {
	var b [fullSize]byte
	le := binary.LittleEndian
	copy(b[0:4], fullMagic)
	b[4] = fullVersion
	le.PutUint16(b[5:], uint16(f.Hunger))
	le.PutUint16(b[7:], uint16(f.Fun))
	le.PutUint16(b[9:], uint16(f.Energy))
	le.PutUint16(b[11:], uint16(f.HP))
	le.PutUint32(b[13:], f.AgeSec)
	if f.Dead {
		b[17] = 1
	}
	le.PutUint16(b[18:], checksum(b[:18]))
	return b
}

type fullHeader uint8

const (
	headerBlank fullHeader = iota // no FISH magic
	headerLegacy                  // FISH magic, version 1
	headerFull                    // FISH magic, version 2
	headerUnknown
)

func fullKind(b []byte) fullHeader {
	if len(b) < fullSize || string(b[0:4]) != fullMagic {
		return headerBlank
	}
	switch b[4] {
	case 1:
		return headerLegacy
	case fullVersion:
		return headerFull
	default:
		return headerUnknown
	}
}

func decodeFull(b []byte) (Full, bool) {
	if fullKind(b) != headerFull {
		return Full{}, false
	}
	le := binary.LittleEndian
	if checksum(b[:18]) != le.Uint16(b[18:]) {
		return Full{}, false
	}
	return Full{
		Hunger: int16(le.Uint16(b[5:])),
		Fun:    int16(le.Uint16(b[7:])),
		Energy: int16(le.Uint16(b[9:])),
		HP:     int16(le.Uint16(b[11:])),
		AgeSec: le.Uint32(b[13:]),
		Dead:   b[17] != 0,
	}, true
}
