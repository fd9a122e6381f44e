package stream

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientID"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	Stream struct {
		Pixels    int     `yaml:"pixels"`
		FrameRate float64 `yaml:"frameRate"`
		Cycle     string  `yaml:"cycle"`
		Fade      string  `yaml:"fade"`
		Scene     string  `yaml:"scene"`
	} `yaml:"stream"`
	API struct {
		Listen string `yaml:"listen"`
	} `yaml:"api"`
}

// LoadConfig reads a YAML config file and fills in defaults.
func LoadConfig(path string) (Config, error) {
	var c Config

	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	c.SetDefaults()
	return c, nil
}

// SetDefaults fills in every unset field.
func (c *Config) SetDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "ledtween-" + uuid.NewString()[:8]
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "home/xmastree/stream"
	}
	if c.Stream.Pixels <= 0 {
		c.Stream.Pixels = DefaultPixels
	}
	if c.Stream.FrameRate <= 0 {
		c.Stream.FrameRate = 30
	}
	if c.Stream.Cycle == "" {
		c.Stream.Cycle = "60s"
	}
	if c.Stream.Fade == "" {
		c.Stream.Fade = "5s"
	}
	if c.API.Listen == "" {
		c.API.Listen = ":3000"
	}
}

// CycleTime is how long each animation shows before the next.
func (c Config) CycleTime() (time.Duration, error) {
	d, err := time.ParseDuration(c.Stream.Cycle)
	if err != nil {
		return 0, fmt.Errorf("stream.cycle: %w", err)
	}
	return d, nil
}

// FadeTime is the cross-fade duration between animations.
func (c Config) FadeTime() (time.Duration, error) {
	d, err := time.ParseDuration(c.Stream.Fade)
	if err != nil {
		return 0, fmt.Errorf("stream.fade: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("stream.fade must be positive, got %s", d)
	}
	return d, nil
}
