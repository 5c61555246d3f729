package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Digest hashes homes, poses and food cells in a stable order. Two states with bit-identical
// contents produce the same digest.
func (s *State) Digest() string {
	h := sha256.New()
	var tmp [8]byte

	digestWriteU64(h, &tmp, uint64(len(s.Homes)))
	for _, p := range s.Homes {
		digestWriteF64(h, &tmp, p[0])
		digestWriteF64(h, &tmp, p[1])
	}

	ids := s.AntIDs()
	digestWriteU64(h, &tmp, uint64(len(ids)))
	for _, id := range ids {
		p := s.Poses[id]
		digestWriteU64(h, &tmp, id)
		digestWriteF64(h, &tmp, p.Pos[0])
		digestWriteF64(h, &tmp, p.Pos[1])
		digestWriteF64(h, &tmp, p.Heading)
	}

	cells := s.FoodCells()
	digestWriteU64(h, &tmp, uint64(len(cells)))
	for _, c := range cells {
		digestWriteU64(h, &tmp, uint64(int64(c.X)))
		digestWriteU64(h, &tmp, uint64(int64(c.Y)))
	}

	return hex.EncodeToString(h.Sum(nil))
}

type hashWriter interface {
	Write(p []byte) (n int, err error)
}

func digestWriteU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteF64(h hashWriter, tmp *[8]byte, v float64) {
	digestWriteU64(h, tmp, math.Float64bits(v))
}
