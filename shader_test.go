package vkg

import (
	"encoding/binary"
	"testing"
)

func TestSpirvWords(t *testing.T) {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data, spirvMagic)
	binary.LittleEndian.PutUint32(data[4:], 0x00010000)

	words, err := spirvWords(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(words) != 2 || words[1] != 0x00010000 {
		t.Errorf("spirvWords() = %#x", words)
	}

	if _, err := spirvWords(data[:6]); err == nil {
		t.Error("expected unaligned code to fail")
	}
	if _, err := spirvWords(nil); err == nil {
		t.Error("expected empty code to fail")
	}
	if _, err := spirvWords([]byte{1, 2, 3, 4}); err == nil {
		t.Error("expected bad magic to fail")
	}
}
