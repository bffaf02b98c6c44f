package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		input   string
		want    Square
		wantErr bool
	}{
		{input: "a8", want: Square{Row: 0, Col: 0}},
		{input: "h1", want: Square{Row: 7, Col: 7}},
		{input: "e2", want: Square{Row: 6, Col: 4}},
		{input: "E2", want: Square{Row: 6, Col: 4}},
		{input: " g1\n", want: Square{Row: 7, Col: 6}},
		{input: "z9", wantErr: true},
		{input: "i1", wantErr: true},
		{input: "a0", wantErr: true},
		{input: "a", wantErr: true},
		{input: "a10", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseSquare(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrConversion) {
				t.Errorf("ParseSquare(%q): expected ErrConversion, got %v", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseSquare(%q): %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSquare(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestConversionErrorKeepsInput(t *testing.T) {
	_, err := ParseSquare("z9")
	var conv *ConversionError
	if !errors.As(err, &conv) || conv.Input != "z9" {
		t.Fatalf("expected ConversionError for z9, got %v", err)
	}
}

func TestSquareStringRoundTrip(t *testing.T) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			s := Square{Row: row, Col: col}
			parsed, err := ParseSquare(s.String())
			if err != nil || parsed != s {
				t.Fatalf("round trip of %+v via %q gave %+v, %v", s, s.String(), parsed, err)
			}
		}
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove(" E2e4 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.From != (Square{Row: 6, Col: 4}) || m.To != (Square{Row: 4, Col: 4}) {
		t.Fatalf("unexpected move %+v", m)
	}
	if m.String() != "e2e4" {
		t.Fatalf("unexpected string %q", m.String())
	}

	for _, bad := range []string{"e2e", "e2e9", "z9z9", "e2-e4", ""} {
		if _, err := ParseMove(bad); !errors.Is(err, ErrConversion) {
			t.Errorf("ParseMove(%q): expected ErrConversion, got %v", bad, err)
		}
	}
}

func TestMoveJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Move Move `json:"move"`
	}{Move: Move{From: Square{Row: 6, Col: 4}, To: Square{Row: 4, Col: 4}}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"move":"e2e4"}` {
		t.Fatalf("unexpected json %s", data)
	}

	var decoded struct {
		Move Move `json:"move"`
	}
	if err := json.Unmarshal([]byte(`{"move":"g1f3"}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Move.String() != "g1f3" {
		t.Fatalf("unexpected move %s", decoded.Move)
	}
}
