package common

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSliceToBytesFloats(t *testing.T) {
	data := []float32{1.5, -2.0, 0.25}
	raw := SliceToBytes(data)
	if len(raw) != 12 {
		t.Fatalf("len = %d, want 12", len(raw))
	}
	for i, want := range data {
		got := math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		if got != want {
			t.Fatalf("element %d: got %v, want %v", i, got, want)
		}
	}
}

func TestSliceToBytesStructs(t *testing.T) {
	type vertex struct {
		Position [3]float32
		Normal   [3]float32
	}
	data := []vertex{
		{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}},
		{Position: [3]float32{4, 5, 6}, Normal: [3]float32{0, 0, 1}},
	}
	raw := SliceToBytes(data)
	if len(raw) != 48 {
		t.Fatalf("len = %d, want 48", len(raw))
	}
	// Second vertex starts at byte 24; its normal Z is the last float.
	got := math.Float32frombits(binary.LittleEndian.Uint32(raw[44:]))
	if got != 1 {
		t.Fatalf("last float = %v, want 1", got)
	}
}

func TestSliceToBytesEmpty(t *testing.T) {
	if raw := SliceToBytes([]float32(nil)); raw != nil {
		t.Fatalf("expected nil for empty input, got %v", raw)
	}
}
