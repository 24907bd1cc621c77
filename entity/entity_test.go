package entity

import (
	"math"
	"testing"
)

func TestColorDegrade(t *testing.T) {
	c := Green
	hits := 0
	for c != ColorNone {
		c = c.Next()
		hits++
	}
	if hits != 3 {
		t.Errorf("Expected 3 hits from green to removal, got %d", hits)
	}
	if Green.HitsLeft() != 3 || Blue.HitsLeft() != 2 || Red.HitsLeft() != 1 || ColorNone.HitsLeft() != 0 {
		t.Error("Unexpected HitsLeft values")
	}
}

func TestParseColor(t *testing.T) {
	for _, tc := range []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"green", Green, false},
		{" Blue ", Blue, false},
		{"RED", Red, false},
		{"purple", ColorNone, true},
		{"", ColorNone, true},
	} {
		got, err := ParseColor(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseColor(%q): unexpected error state: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseColor(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}
}

func TestColorText(t *testing.T) {
	var c Color
	if err := c.UnmarshalText([]byte("blue")); err != nil {
		t.Fatalf("UnmarshalText: %s", err)
	}
	if c != Blue {
		t.Fatalf("Expected blue, got %s", c)
	}
	if _, err := ColorNone.MarshalText(); err == nil {
		t.Error("Expected an error when marshalling ColorNone")
	}
}

func TestTagString(t *testing.T) {
	for _, tc := range []struct {
		tag  Tag
		want string
	}{
		{BallTag, "ball"},
		{PaddleTag, "paddle"},
		{LoseZoneTag, "loseZone"},
		{BrickTag(0), "brick0"},
		{BrickTag(20), "brick20"},
		{Tag{}, "none"},
	} {
		if got := tc.tag.String(); got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, got)
		}
	}
	if !BrickTag(4).Is(KindBrick) || BrickTag(4).ID != 4 {
		t.Error("BrickTag should carry its index")
	}
}

func TestBrickGridPosition(t *testing.T) {
	b := &Brick{Index: 15}
	if b.Row() != 2 || b.Col() != 1 {
		t.Errorf("Expected row 2 col 1, got row %d col %d", b.Row(), b.Col())
	}
}

func TestBallImpulse(t *testing.T) {
	b := &Ball{Mass: 0.5}
	b.ApplyImpulse(Vec{X: 1, Y: -2})
	if b.Velocity.X != 2 || b.Velocity.Y != -4 {
		t.Errorf("Expected velocity (2,-4), got %v", b.Velocity)
	}

	massless := &Ball{}
	massless.ApplyImpulse(Vec{X: 3})
	if massless.Velocity.X != 3 {
		t.Errorf("Expected raw velocity change on massless ball, got %v", massless.Velocity)
	}
}

func TestPaddleMoveKeepsY(t *testing.T) {
	p := &Paddle{Position: Vec{X: 10, Y: 125}}
	p.MoveTo(-40)
	if p.Position.X != -40 || p.Position.Y != 125 {
		t.Errorf("Expected (-40,125), got %v", p.Position)
	}
}

func TestVec(t *testing.T) {
	v := Vec{X: 3, Y: 4}
	if math.Abs(v.Len()-5) > 1e-9 {
		t.Errorf("Expected length 5, got %f", v.Len())
	}
	if got := v.Sub(Vec{X: 1, Y: 1}).Scale(2); got != (Vec{X: 4, Y: 6}) {
		t.Errorf("Unexpected vector math result %v", got)
	}
	if v.Dot(Vec{X: 1, Y: 0}) != 3 {
		t.Error("Unexpected dot product")
	}
}
