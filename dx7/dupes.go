package dx7

import (
	"bytes"
	"fmt"
)

// Duplicate is a pair of identical voices (0-based indices, A < B).
type Duplicate struct {
	A, B int
}

func (d Duplicate) String() string {
	return fmt.Sprintf("%d = %d", d.A+1, d.B+1)
}

// FindDuplicates reports all pairs of voices whose packed records are equal
// apart from the name.
func FindDuplicates(b *Bank) []Duplicate {
	const n = PackedVoiceSize - NameLength
	var dupes []Duplicate
	for i := 0; i < NumVoices-1; i++ {
		for j := i + 1; j < NumVoices; j++ {
			if bytes.Equal(b.Packed(i)[:n], b.Packed(j)[:n]) {
				dupes = append(dupes, Duplicate{A: i, B: j})
			}
		}
	}
	return dupes
}
