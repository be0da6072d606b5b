package api

import (
	"encoding/binary"
	"encoding/hex"
	"hash"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the article as rendered:
// ID, Title, every block and child in order, and the category identity.
// Category timestamps are left out; they never reach the screen.
func (a Article) Hash() string {
	h := blake3.New()
	a.writeTo(h)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest fingerprints an ordered article list. Two loads that return the
// same articles in the same order produce the same digest.
func Digest(articles []Article) string {
	h := blake3.New()
	writeInt(h, int64(len(articles)))
	for _, a := range articles {
		a.writeTo(h)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (a Article) writeTo(h hash.Hash) {
	writeInt(h, a.ID)
	writeString(h, a.Title)

	writeInt(h, int64(len(a.Content)))
	for _, b := range a.Content {
		writeString(h, b.Type)
		writeInt(h, int64(len(b.Children)))
		for _, c := range b.Children {
			writeString(h, c.Type)
			writeString(h, c.Text)
		}
	}

	if a.Category == nil {
		h.Write([]byte{0})
		return
	}
	h.Write([]byte{1})
	writeInt(h, a.Category.ID)
	writeString(h, a.Category.Name)
}

// Length-prefix every field so adjacent values can't collide.
func writeString(h hash.Hash, s string) {
	writeInt(h, int64(len(s)))
	h.Write([]byte(s))
}

func writeInt(h hash.Hash, n int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	h.Write(buf[:])
}
