package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matt-g-everett/ledtween/anim"
	"github.com/matt-g-everett/ledtween/api"
	"github.com/matt-g-everett/ledtween/scene"
	"github.com/matt-g-everett/ledtween/stream"
)

type app struct {
	logger     *log.Logger
	config     stream.Config
	scene      *scene.Scene
	client     mqtt.Client
	controller *stream.Controller
	streamer   *stream.Streamer
	api        *api.Api
}

func newApp(logger *log.Logger) *app {
	a := new(app)
	a.logger = logger
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	a.logger.Info("connected", "broker", a.config.Mqtt.URL)
}

func (a *app) handleConnectionLost(client mqtt.Client, err error) {
	a.logger.Warn("connection lost", "err", err)
}

func (a *app) readConfig(configPath string) error {
	c, err := stream.LoadConfig(configPath)
	if err != nil {
		return err
	}
	a.config = c
	a.logger.Debug("config", "path", configPath, "mqtt", c.Mqtt.URL, "stream", fmt.Sprintf("%+v", c.Stream))

	if c.Stream.Scene != "" {
		s, err := scene.Load(c.Stream.Scene)
		if err != nil {
			return err
		}
		a.scene = s
		a.logger.Info("loaded scene", "name", s.Name, "duration", s.Timeline.TotalDuration(), "queue", len(s.Queue))
	}
	return nil
}

// setup builds the controller, streamer and API from the loaded config.
func (a *app) setup(client mqtt.Client) error {
	cycle, err := a.config.CycleTime()
	if err != nil {
		return err
	}
	fade, err := a.config.FadeTime()
	if err != nil {
		return err
	}

	blend := anim.Interpolator[colorful.Color](anim.LerpHcl)
	if a.scene != nil {
		blend = a.scene.Blend
	}
	colour, err := anim.NewSequencer(colorful.Color{}, blend)
	if err != nil {
		return err
	}
	colour.Subscribe(func(e anim.Event[colorful.Color]) {
		if e.Kind != anim.EventTicked {
			a.logger.Debug("colour", "event", e.Kind, "value", e.Value.Clamped().Hex(), "pending", e.Pending)
		}
	})

	pixels := a.config.Stream.Pixels
	solid := stream.NewSolid(pixels, colour)
	animations := []stream.Animation{solid}
	if a.scene != nil {
		animations = append(animations, stream.NewPlayback(pixels, a.scene.Timeline, 0))
	}
	rainbow, err := stream.NewGradient(stream.Rainbow)
	if err != nil {
		return err
	}
	trail, err := stream.NewGradientTrail(pixels, rainbow, 50, 10)
	if err != nil {
		return err
	}
	seed := time.Now().UnixNano()
	streak, err := stream.NewStreak(pixels, colorful.Color{}, colorful.Color{R: 0.45, G: 0.1, B: 0.02},
		20, 3*time.Second, seed)
	if err != nil {
		return err
	}
	twinkle, err := stream.NewTwinkle(pixels, pixels/10, colorful.Color{R: 0.02, G: 0.02, B: 0.05},
		colorful.Color{R: 0.25, G: 0.25, B: 0.25}, 2*time.Second, seed+1)
	if err != nil {
		return err
	}
	stripes, err := stream.NewInfinityStripe(pixels, 20, nil, seed+2)
	if err != nil {
		return err
	}
	animations = append(animations, trail, streak, twinkle, stripes)

	controller, err := stream.NewController(solid, colour, fade)
	if err != nil {
		return err
	}
	if a.scene != nil {
		for _, r := range a.scene.Queue {
			controller.PushColour(r, anim.Append)
		}
	}

	sink := stream.MQTTSink(client, a.config.Mqtt.Topics.Stream)
	streamer, err := stream.NewStreamer(controller, sink, a.logger,
		a.config.Stream.FrameRate, cycle, animations...)
	if err != nil {
		return err
	}

	a.client = client
	a.controller = controller
	a.streamer = streamer
	a.api = api.NewApi(controller, a.logger)
	return nil
}

func (a *app) newClient() mqtt.Client {
	options := mqtt.NewClientOptions().
		AddBroker(a.config.Mqtt.URL).
		SetClientID(a.config.Mqtt.ClientID).
		SetUsername(a.config.Mqtt.Username).
		SetPassword(a.config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetAutoReconnect(true).
		SetOnConnectHandler(a.handleOnConnect).
		SetConnectionLostHandler(a.handleConnectionLost)
	return mqtt.NewClient(options)
}

func (a *app) run(ctx context.Context) error {
	if token := a.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("connect %s: %w", a.config.Mqtt.URL, token.Error())
	}
	defer a.client.Disconnect(250)

	go func() {
		if err := a.api.Serve(ctx, a.config.API.Listen); err != nil {
			a.logger.Error("api stopped", "err", err)
		}
	}()

	return a.streamer.Run(ctx)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
