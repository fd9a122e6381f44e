package stream

import (
	"encoding/binary"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/anim"
)

func hex(t *testing.T, s string) colorful.Color {
	t.Helper()
	c, err := colorful.Hex(s)
	if err != nil {
		t.Fatalf("Hex(%q) error = %v", s, err)
	}
	return c
}

func colourSequencer(t *testing.T, initial colorful.Color) *anim.Sequencer[colorful.Color] {
	t.Helper()
	s, err := anim.NewSequencer(initial, nil)
	if err != nil {
		t.Fatalf("NewSequencer() error = %v", err)
	}
	return s
}

func TestFrameMarshalBinary(t *testing.T) {
	f := NewFrame(3)
	f.Fill(hex(t, "#102030"))
	f.pixels[2] = colorful.Color{R: 2, G: -1, B: 0.5} // out of gamut, clamped

	data, err := f.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	if len(data) != 2+3*3 {
		t.Fatalf("len(data) = %d, want 11", len(data))
	}
	if n := binary.LittleEndian.Uint16(data); n != 3 {
		t.Errorf("pixel count = %d, want 3", n)
	}

	want := []byte{0x10, 0x20, 0x30, 0x10, 0x20, 0x30, 255, 0, 128}
	for i, b := range want {
		if data[2+i] != b {
			t.Errorf("data[%d] = %d, want %d", 2+i, data[2+i], b)
		}
	}
}

func TestInterpolateFrame(t *testing.T) {
	red := NewFrame(4)
	red.Fill(hex(t, "#ff0000"))
	blue := NewFrame(4)
	blue.Fill(hex(t, "#0000ff"))

	tests := []struct {
		point float64
		want  string
	}{
		{0, "#ff0000"},
		{1, "#0000ff"},
	}
	for _, tt := range tests {
		f := red.InterpolateFrame(blue, tt.point)
		for i := 0; i < f.Len(); i++ {
			if got := f.Pixel(i).Hex(); got != tt.want {
				t.Errorf("InterpolateFrame(%v) pixel %d = %s, want %s", tt.point, i, got, tt.want)
			}
		}
	}
}

func TestGradientHue(t *testing.T) {
	g, err := NewGradient(Rainbow)
	if err != nil {
		t.Fatalf("NewGradient() error = %v", err)
	}

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.04, 6},
		{0.09, 46.5},
		{0.56, 180},
		{1, 360},
		{-1, 0},  // clamped
		{2, 360}, // clamped
	}
	for _, tt := range tests {
		if got := g.Hue(tt.t); math.Abs(got-tt.want) > 0.001 {
			t.Errorf("Hue(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestGradientSteps(t *testing.T) {
	g, err := NewGradient(GradientTable{{0, 0}, {100, 0.5}, {200, 0.5}, {300, 1}})
	if err != nil {
		t.Fatalf("NewGradient() error = %v", err)
	}
	if got := g.Hue(0.5); math.Abs(got-200) > 0.001 {
		t.Errorf("Hue(0.5) = %v, want 200 after the step", got)
	}
	if got := g.Hue(0.75); math.Abs(got-250) > 0.001 {
		t.Errorf("Hue(0.75) = %v, want 250", got)
	}

	bad := []GradientTable{
		{{0, 0}},
		{{0, 0.5}, {10, 0.2}},
		{{0, 0.5}, {10, 0.5}},
	}
	for _, table := range bad {
		if _, err := NewGradient(table); err == nil {
			t.Errorf("NewGradient(%v) error = nil, want error", table)
		}
	}
}

func TestGradientTrail(t *testing.T) {
	g, err := NewGradient(Rainbow)
	if err != nil {
		t.Fatal(err)
	}
	trail, err := NewGradientTrail(20, g, 10, 5)
	if err != nil {
		t.Fatalf("NewGradientTrail() error = %v", err)
	}

	f1 := trail.CalculateFrame(0)
	if f1.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", f1.Len())
	}
	// The trail repeats every trailLength pixels.
	if f1.Pixel(3) != f1.Pixel(13) {
		t.Errorf("pixel 3 = %v, pixel 13 = %v, want equal", f1.Pixel(3), f1.Pixel(13))
	}

	// After one second the trail has moved five pixels along.
	f2 := trail.CalculateFrame(time.Second)
	if f2.Pixel(8) != f1.Pixel(3) {
		t.Errorf("pixel 8 at 1s = %v, want %v", f2.Pixel(8), f1.Pixel(3))
	}
}

func TestGradientTrailRejectsEmptyTrail(t *testing.T) {
	g, err := NewGradient(Rainbow)
	if err != nil {
		t.Fatal(err)
	}
	for _, n := range []int{0, -3} {
		if _, err := NewGradientTrail(20, g, n, 5); err == nil {
			t.Errorf("NewGradientTrail(trailLength=%d) error = nil, want error", n)
		}
	}
	if got := g.Hue(math.NaN()); got != 0 {
		t.Errorf("Hue(NaN) = %v, want 0", got)
	}
}

func TestStreak(t *testing.T) {
	back := hex(t, "#000000")
	colour := hex(t, "#ff8000")
	s, err := NewStreak(100, back, colour, 1, time.Second, 7)
	if err != nil {
		t.Fatalf("NewStreak() error = %v", err)
	}

	f := s.CalculateFrame(0)
	for i := 0; i < f.Len(); i++ {
		if got := f.Pixel(i).Hex(); got != "#000000" {
			t.Fatalf("pixel %d = %s before any streak, want #000000", i, got)
		}
	}
	if len(s.particles) != 1 {
		t.Fatalf("got %d streaks, want 1", len(s.particles))
	}
	p := s.particles[0]

	// Fully faded in after one ramp.
	f = s.CalculateFrame(time.Second)
	current := p.start + s.speed
	first := int(math.Ceil(current))
	last := int(math.Floor(current + float64(s.length)))
	for i := 0; i < f.Len(); i++ {
		want := "#000000"
		if i >= first && i <= last {
			want = "#ff8000"
		}
		if got := f.Pixel(i).Hex(); got != want {
			t.Errorf("pixel %d = %s, want %s", i, got, want)
		}
	}

	// Gone after fading out.
	s.CalculateFrame(2 * time.Second)
	for _, q := range s.particles {
		if q.born == 0 {
			t.Error("first streak still live after two ramps")
		}
	}

	if _, err := NewStreak(100, back, colour, 0, time.Second, 7); err == nil {
		t.Error("NewStreak(chance=0) error = nil, want error")
	}
}

func TestStreakSeeded(t *testing.T) {
	run := func() []string {
		s, err := NewStreak(60, hex(t, "#000000"), hex(t, "#00ffff"), 3, 500*time.Millisecond, 42)
		if err != nil {
			t.Fatal(err)
		}
		var out []string
		for i := 0; i < 40; i++ {
			f := s.CalculateFrame(time.Duration(i) * 33 * time.Millisecond)
			for j := 0; j < f.Len(); j++ {
				out = append(out, f.Pixel(j).Hex())
			}
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("frames diverged at %d: %s != %s", i, a[i], b[i])
		}
	}
}

func TestTwinkle(t *testing.T) {
	back := hex(t, "#000000")
	colour := hex(t, "#404040")
	const period = 2 * time.Second
	tw, err := NewTwinkle(50, 8, back, colour, period, 3)
	if err != nil {
		t.Fatalf("NewTwinkle() error = %v", err)
	}

	lit := make(map[int]bool)
	for _, p := range tw.particles {
		lit[p.pixel] = true
	}
	f := tw.CalculateFrame(300 * time.Millisecond)
	for i := 0; i < f.Len(); i++ {
		if !lit[i] && f.Pixel(i).Hex() != "#000000" {
			t.Errorf("pixel %d = %s, want background", i, f.Pixel(i).Hex())
		}
	}

	// Each particle peaks half a period after its phase.
	p := tw.particles[len(tw.particles)-1]
	peak := (period/2 - p.phase + period) % period
	if got := tw.CalculateFrame(peak).Pixel(p.pixel).Hex(); got != "#404040" {
		t.Errorf("pixel %d at peak = %s, want #404040", p.pixel, got)
	}
	if got := tw.CalculateFrame(peak + period).Pixel(p.pixel).Hex(); got != "#404040" {
		t.Errorf("pixel %d a period later = %s, want #404040", p.pixel, got)
	}

	again, err := NewTwinkle(50, 8, back, colour, period, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range tw.particles {
		if tw.particles[i] != again.particles[i] {
			t.Errorf("particle %d = %+v, want %+v with the same seed", i, again.particles[i], tw.particles[i])
		}
	}

	if _, err := NewTwinkle(50, 8, back, colour, 1, 3); err == nil {
		t.Error("NewTwinkle(period=1ns) error = nil, want error")
	}
}

func TestInfinityStripe(t *testing.T) {
	palette := []colorful.Color{hex(t, "#ff0000"), hex(t, "#00ff00"), hex(t, "#0000ff")}
	s, err := NewInfinityStripe(300, 100, palette, 5)
	if err != nil {
		t.Fatalf("NewInfinityStripe() error = %v", err)
	}

	for _, runtime := range []time.Duration{0, 2 * time.Second, 10 * time.Second} {
		f := s.CalculateFrame(runtime)
		head := runtime.Seconds() * 100
		if head < s.base || head >= s.base+float64(s.stripes[0].length) {
			t.Fatalf("at %v head %v is outside the first stripe starting at %v", runtime, head, s.base)
		}

		index := 0
		end := s.base + float64(s.stripes[0].length)
		for i := 0; i < f.Len(); i++ {
			offset := head + (1.0+1.4*(float64(i)/300))*float64(i)
			for offset >= end {
				index++
				end += float64(s.stripes[index].length)
			}
			if got, want := f.Pixel(i), s.stripes[index].colour; got != want {
				t.Fatalf("at %v pixel %d = %s, want %s", runtime, i, got.Hex(), want.Hex())
			}
		}
	}

	for i := 1; i < len(s.stripes); i++ {
		if s.stripes[i].colour == s.stripes[i-1].colour {
			t.Errorf("stripes %d and %d share colour %s", i-1, i, s.stripes[i].colour.Hex())
		}
	}

	if _, err := NewInfinityStripe(300, -1, nil, 5); err == nil {
		t.Error("NewInfinityStripe(speed=-1) error = nil, want error")
	}
}

func TestInfinityStripeSeeded(t *testing.T) {
	a, _ := NewInfinityStripe(100, 40, nil, 9)
	b, _ := NewInfinityStripe(100, 40, nil, 9)
	for i := 0; i < 20; i++ {
		runtime := time.Duration(i) * 250 * time.Millisecond
		fa, fb := a.CalculateFrame(runtime), b.CalculateFrame(runtime)
		for j := 0; j < fa.Len(); j++ {
			if fa.Pixel(j) != fb.Pixel(j) {
				t.Fatalf("frame %d pixel %d differs with the same seed", i, j)
			}
		}
	}
}

func TestPlaybackLoops(t *testing.T) {
	tl, err := anim.NewTimeline([]anim.Keyframe[colorful.Color]{
		anim.Still(time.Second, hex(t, "#ff0000")),
		anim.Still(time.Second, hex(t, "#00ff00")),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	p := NewPlayback(2, tl, 10*time.Second)

	tests := []struct {
		runtime time.Duration
		want    string
	}{
		{0, "#ff0000"}, // before start
		{10 * time.Second, "#ff0000"},
		{11500 * time.Millisecond, "#00ff00"},
		{12 * time.Second, "#ff0000"},
		{13 * time.Second, "#00ff00"},
	}
	for _, tt := range tests {
		if got := p.CalculateFrame(tt.runtime).Pixel(1).Hex(); got != tt.want {
			t.Errorf("CalculateFrame(%v) = %s, want %s", tt.runtime, got, tt.want)
		}
	}
}

func TestControllerSwitch(t *testing.T) {
	redSeq := colourSequencer(t, hex(t, "#ff0000"))
	blueSeq := colourSequencer(t, hex(t, "#0000ff"))
	red := NewSolid(4, redSeq)
	blue := NewSolid(4, blueSeq)

	c, err := NewController(red, redSeq, time.Second)
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}

	if got := c.CalculateFrame().Pixel(0).Hex(); got != "#ff0000" {
		t.Errorf("frame = %s, want #ff0000", got)
	}

	c.Switch(blue)
	if !c.Fading() {
		t.Fatal("Fading() = false after Switch")
	}
	if got := c.CalculateFrame().Pixel(0).Hex(); got != "#ff0000" {
		t.Errorf("frame at fade start = %s, want #ff0000", got)
	}

	c.Tick(500 * time.Millisecond)
	mid := c.CalculateFrame().Pixel(0).Hex()
	if mid == "#ff0000" || mid == "#0000ff" {
		t.Errorf("frame halfway through fade = %s, want a blend", mid)
	}

	c.Tick(500 * time.Millisecond)
	if got := c.CalculateFrame().Pixel(0).Hex(); got != "#0000ff" {
		t.Errorf("frame at fade end = %s, want #0000ff", got)
	}
	if c.Fading() {
		t.Error("Fading() = true after the fade completed")
	}
	if got := c.Runtime(); got != time.Second {
		t.Errorf("Runtime() = %v, want 1s", got)
	}
}

func TestControllerSwitchDuringFade(t *testing.T) {
	blackSeq := colourSequencer(t, hex(t, "#000000"))
	whiteSeq := colourSequencer(t, hex(t, "#ffffff"))
	redSeq := colourSequencer(t, hex(t, "#ff0000"))

	c, err := NewController(NewSolid(2, blackSeq), blackSeq, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	c.Switch(NewSolid(2, whiteSeq))
	c.Tick(900 * time.Millisecond)
	c.CalculateFrame()

	c.Switch(NewSolid(2, redSeq))
	c.Tick(time.Millisecond)
	got := c.CalculateFrame().Pixel(0)
	if got.R < 0.95 || got.G < 0.95 || got.B < 0.95 {
		t.Errorf("frame after second switch = %s, want to start from white", got.Hex())
	}

	c.Tick(time.Second)
	if got := c.CalculateFrame().Pixel(0).Hex(); got != "#ff0000" {
		t.Errorf("frame after second fade = %s, want #ff0000", got)
	}
}

func TestControllerColour(t *testing.T) {
	seq := colourSequencer(t, hex(t, "#000000"))
	c, err := NewController(NewSolid(1, seq), seq, time.Second)
	if err != nil {
		t.Fatal(err)
	}

	var completed int
	c.SubscribeColour(func(e anim.Event[colorful.Color]) {
		if e.Kind == anim.EventCompleted {
			completed++
		}
	})

	r, err := anim.NewRequest(hex(t, "#ffffff"), time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}
	c.PushColour(r, anim.Append)
	if st := c.Colour(); !st.Active || st.Pending != 1 {
		t.Errorf("Colour() = %+v, want active with one request", st)
	}

	c.Tick(time.Second)
	if got := c.CalculateFrame().Pixel(0).Hex(); got != "#ffffff" {
		t.Errorf("frame = %s, want #ffffff", got)
	}
	if completed != 1 {
		t.Errorf("completed events = %d, want 1", completed)
	}

	c.PushColour(r, anim.Append)
	c.SetColour(hex(t, "#123456"))
	if st := c.Colour(); st.Active || st.Colour.Hex() != "#123456" {
		t.Errorf("Colour() after SetColour = %+v", st)
	}
}

func TestNewControllerRejectsZeroFade(t *testing.T) {
	seq := colourSequencer(t, colorful.Color{})
	if _, err := NewController(NewSolid(1, seq), seq, 0); !anim.Is(err, anim.ErrCodeInvalidDuration) {
		t.Errorf("NewController(0) error = %v, want %v", err, anim.ErrCodeInvalidDuration)
	}
}

func TestStreamerStep(t *testing.T) {
	seq := colourSequencer(t, hex(t, "#ff0000"))
	other := colourSequencer(t, hex(t, "#00ff00"))
	first := NewSolid(5, seq)
	second := NewSolid(5, other)

	c, err := NewController(first, seq, 200*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}

	var payloads [][]byte
	sink := func(b []byte) error {
		payloads = append(payloads, b)
		return nil
	}
	s, err := NewStreamer(c, sink, log.New(io.Discard), 30, 100*time.Millisecond, first, second)
	if err != nil {
		t.Fatalf("NewStreamer() error = %v", err)
	}

	if err := s.Step(50 * time.Millisecond); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if c.Fading() {
		t.Error("Fading() = true before the cycle elapsed")
	}

	if err := s.Step(50 * time.Millisecond); err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if !c.Fading() {
		t.Error("Fading() = false after the cycle elapsed")
	}

	if len(payloads) != 2 || s.Frames() != 2 {
		t.Fatalf("sent %d payloads (%d frames), want 2", len(payloads), s.Frames())
	}
	if len(payloads[0]) != 2+5*3 {
		t.Errorf("payload length = %d, want 17", len(payloads[0]))
	}
	if payloads[0][2] != 255 || payloads[0][3] != 0 {
		t.Errorf("first pixel = %v, want red", payloads[0][2:5])
	}

	if _, err := NewStreamer(c, sink, log.New(io.Discard), 0, 0); err == nil {
		t.Error("NewStreamer(frameRate=0) error = nil, want error")
	}
}

func TestStreamerCycleKeepsRemainder(t *testing.T) {
	seq := colourSequencer(t, colorful.Color{})
	a := NewSolid(1, seq)
	c, err := NewController(a, seq, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	s, err := NewStreamer(c, func([]byte) error { return nil }, log.New(io.Discard),
		30, 100*time.Millisecond, a, NewSolid(1, seq), NewSolid(1, seq))
	if err != nil {
		t.Fatal(err)
	}

	// 70ms steps cross a 100ms cycle after 140ms and again after 210ms.
	want := []int{0, 1, 2, 2, 0}
	for i, w := range want {
		if err := s.Step(70 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
		if s.current != w {
			t.Errorf("after step %d current = %d, want %d", i+1, s.current, w)
		}
	}
}
