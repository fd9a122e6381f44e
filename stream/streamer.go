package stream

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// A Sink delivers an encoded frame to the strip.
type Sink func(payload []byte) error

// MQTTSink publishes frames to topic on an ledrx device.
func MQTTSink(client mqtt.Client, topic string) Sink {
	return func(payload []byte) error {
		token := client.Publish(topic, 2, false, payload)
		token.Wait()
		return token.Error()
	}
}

// Streamer that streams RGB data frames to an ledrx device.
type Streamer struct {
	controller *Controller
	sink       Sink
	logger     *log.Logger

	frameRate  float64
	cycle      time.Duration
	animations []Animation
	current    int
	sinceCycle time.Duration
	frames     uint64
}

// NewStreamer creates an instance of a Streamer. When cycle is positive the
// streamer switches to the next of animations every cycle.
func NewStreamer(controller *Controller, sink Sink, logger *log.Logger,
	frameRate float64, cycle time.Duration, animations ...Animation) (*Streamer, error) {

	if frameRate <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %v", frameRate)
	}

	s := new(Streamer)
	s.controller = controller
	s.sink = sink
	s.logger = logger
	s.frameRate = frameRate
	s.cycle = cycle
	s.animations = animations

	return s, nil
}

// Step advances everything by delta and sends one frame.
func (s *Streamer) Step(delta time.Duration) error {
	s.controller.Tick(delta)
	s.cycleAnimation(delta)

	f := s.controller.CalculateFrame()
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	s.frames++
	return s.sink(b)
}

func (s *Streamer) cycleAnimation(delta time.Duration) {
	if s.cycle <= 0 || len(s.animations) < 2 {
		return
	}

	s.sinceCycle += delta
	if s.sinceCycle < s.cycle {
		return
	}
	s.sinceCycle -= s.cycle
	s.current = (s.current + 1) % len(s.animations)
	s.logger.Debug("switching animation", "index", s.current, "type", fmt.Sprintf("%T", s.animations[s.current]))
	s.controller.Switch(s.animations[s.current])
}

// Frames returns the number of frames sent.
func (s *Streamer) Frames() uint64 {
	return s.frames
}

// Run causes the Streamer to send Frames continuously until ctx is done.
func (s *Streamer) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) / s.frameRate)
	publishTimer := time.NewTicker(interval)
	defer publishTimer.Stop()

	s.logger.Info("streaming", "frameRate", s.frameRate, "interval", interval)
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopped streaming", "frames", s.frames)
			return ctx.Err()
		case now := <-publishTimer.C:
			delta := now.Sub(last)
			last = now
			if err := s.Step(delta); err != nil {
				s.logger.Warn("failed to send frame", "err", err)
			}
		}
	}
}
