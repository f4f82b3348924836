package alu

import "testing"

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		a, b     uint8
		cIn      bool
		wantVal  uint8
		wantC, wantV, wantN, wantZ bool
	}{
		{"no carry no overflow", 0x10, 0x20, false, 0x30, false, false, false, false},
		{"carry out", 0xFF, 0x01, false, 0x00, true, false, false, true},
		{"signed overflow positive", 0x7F, 0x01, false, 0x80, false, true, true, false},
		{"signed overflow negative", 0x80, 0xFF, false, 0x7F, true, true, false, false},
		{"carry in propagates", 0x01, 0x01, true, 0x03, false, false, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Add(tc.a, tc.b, tc.cIn)
			if r.Val != tc.wantVal || r.C != tc.wantC || r.V != tc.wantV || r.N != tc.wantN || r.Z != tc.wantZ {
				t.Errorf("Add(0x%02X, 0x%02X, %v) = %+v, want Val=0x%02X C=%v V=%v N=%v Z=%v",
					tc.a, tc.b, tc.cIn, r, tc.wantVal, tc.wantC, tc.wantV, tc.wantN, tc.wantZ)
			}
		})
	}
}

func TestSubtract(t *testing.T) {
	// Subtract is defined as Add(a, ^b, cIn); cIn true means "no borrow".
	tests := []struct {
		name    string
		a, b    uint8
		cIn     bool
		wantVal uint8
		wantC   bool
	}{
		{"no borrow", 0x10, 0x05, true, 0x0B, true},
		{"borrow needed", 0x05, 0x10, true, 0xF5, false},
		{"borrow in consumes one more", 0x10, 0x05, false, 0x0A, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Subtract(tc.a, tc.b, tc.cIn)
			if r.Val != tc.wantVal || r.C != tc.wantC {
				t.Errorf("Subtract(0x%02X, 0x%02X, %v) = Val=0x%02X C=%v, want Val=0x%02X C=%v",
					tc.a, tc.b, tc.cIn, r.Val, r.C, tc.wantVal, tc.wantC)
			}
		})
	}
}

func TestShiftsAndRotates(t *testing.T) {
	if r := ASL(0x81); r.Val != 0x02 || !r.C {
		t.Errorf("ASL(0x81) = Val=0x%02X C=%v, want Val=0x02 C=true", r.Val, r.C)
	}
	if r := LSR(0x01); r.Val != 0x00 || !r.C || !r.Z || r.N {
		t.Errorf("LSR(0x01) = %+v, want Val=0x00 C=true Z=true N=false", r)
	}
	if r := ROL(0x80, false); r.Val != 0x00 || !r.C {
		t.Errorf("ROL(0x80, false) = %+v, want Val=0x00 C=true", r)
	}
	if r := ROL(0x00, true); r.Val != 0x01 {
		t.Errorf("ROL(0x00, true) = %+v, want Val=0x01", r)
	}
	if r := ROR(0x01, false); r.Val != 0x00 || !r.C {
		t.Errorf("ROR(0x01, false) = %+v, want Val=0x00 C=true", r)
	}
	if r := ROR(0x00, true); r.Val != 0x80 || !r.N {
		t.Errorf("ROR(0x00, true) = %+v, want Val=0x80 N=true", r)
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b     uint8
		wantC, wantZ, wantN bool
	}{
		{0x10, 0x10, true, true, false},
		{0x20, 0x10, true, false, false},
		{0x10, 0x20, false, false, true},
	}
	for _, tc := range tests {
		r := Compare(tc.a, tc.b)
		if r.C != tc.wantC || r.Z != tc.wantZ || r.N != tc.wantN {
			t.Errorf("Compare(0x%02X, 0x%02X) = C=%v Z=%v N=%v, want C=%v Z=%v N=%v",
				tc.a, tc.b, r.C, r.Z, r.N, tc.wantC, tc.wantZ, tc.wantN)
		}
	}
}

func TestOverflow(t *testing.T) {
	if !Overflow(0x7F, 0x01, 0x80) {
		t.Errorf("Overflow(0x7F, 0x01, 0x80) = false, want true")
	}
	if Overflow(0x10, 0x01, 0x11) {
		t.Errorf("Overflow(0x10, 0x01, 0x11) = true, want false")
	}
}
