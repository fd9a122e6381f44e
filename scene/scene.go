// Package scene loads declarative colour animations from YAML or TOML files.
//
// A scene has a timeline of keyframes, played on a loop by the streamer, and
// an optional queue of transitions pushed onto the strip colour when the scene
// starts:
//
//	name: sunrise
//	blend: hcl
//	keyframes:
//	  - {kind: absolute, duration: 2s, from: "#000000", to: "#ff8000"}
//	  - {kind: relative, duration: 3s, to: "#ffffff", curve: inOutQuad}
//	  - {kind: still, duration: 1s}
//	queue:
//	  - {to: "#202020", duration: 500ms}
package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v2"

	"github.com/matt-g-everett/ledtween/anim"
)

// Format is a scene file encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Keyframe kinds.
const (
	KindAbsolute = "absolute"
	KindRelative = "relative"
	KindStill    = "still"
)

// File is the on-disk form of a scene.
type File struct {
	Name      string     `yaml:"name" toml:"name"`
	Blend     string     `yaml:"blend" toml:"blend"`
	Keyframes []Keyframe `yaml:"keyframes" toml:"keyframes"`
	Queue     []Step     `yaml:"queue" toml:"queue"`
}

// Keyframe describes one timeline segment. Colours are hex strings.
type Keyframe struct {
	Kind     string `yaml:"kind" toml:"kind"`
	Duration string `yaml:"duration" toml:"duration"`
	From     string `yaml:"from" toml:"from"`
	To       string `yaml:"to" toml:"to"`
	Value    string `yaml:"value" toml:"value"`
	Curve    string `yaml:"curve" toml:"curve"`
}

// Step describes one queued transition.
type Step struct {
	To       string `yaml:"to" toml:"to"`
	Duration string `yaml:"duration" toml:"duration"`
	Curve    string `yaml:"curve" toml:"curve"`
}

// Scene is a built scene ready to play.
type Scene struct {
	Name     string
	Blend    anim.Interpolator[colorful.Color]
	Timeline *anim.Timeline[colorful.Color]
	Queue    []anim.Request[colorful.Color]
}

// FormatOf picks a format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unknown scene format for %q", path)
}

// Load reads and builds the scene at path.
func Load(path string) (*Scene, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes and builds a scene.
func Parse(data []byte, format Format) (*Scene, error) {
	var f File
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown scene format %q", format)
	}
	return f.Build()
}

// Build turns the file form into timeline and requests.
func (f *File) Build() (*Scene, error) {
	blend, err := anim.ColorInterpolator(f.Blend)
	if err != nil {
		return nil, err
	}

	keyframes := make([]anim.Keyframe[colorful.Color], 0, len(f.Keyframes))
	for i, k := range f.Keyframes {
		kf, err := k.build()
		if err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
		keyframes = append(keyframes, kf)
	}

	tl, err := anim.NewTimeline(keyframes, blend)
	if err != nil {
		return nil, err
	}

	queue := make([]anim.Request[colorful.Color], 0, len(f.Queue))
	for i, step := range f.Queue {
		r, err := step.build()
		if err != nil {
			return nil, fmt.Errorf("queue step %d: %w", i, err)
		}
		queue = append(queue, r)
	}

	return &Scene{
		Name:     f.Name,
		Blend:    blend,
		Timeline: tl,
		Queue:    queue,
	}, nil
}

func (k Keyframe) build() (anim.Keyframe[colorful.Color], error) {
	d, err := ParseDuration(k.Duration)
	if err != nil {
		return nil, err
	}
	curve, err := anim.CurveByName(k.Curve)
	if err != nil {
		return nil, err
	}

	var kf anim.Keyframe[colorful.Color]
	switch k.Kind {
	case KindAbsolute:
		from, err := ParseColour(k.From)
		if err != nil {
			return nil, fmt.Errorf("from: %w", err)
		}
		to, err := ParseColour(k.To)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		kf = anim.Absolute(d, from, to)
	case KindRelative:
		to, err := ParseColour(k.To)
		if err != nil {
			return nil, fmt.Errorf("to: %w", err)
		}
		kf = anim.Relative(d, to)
	case KindStill:
		if k.Value == "" {
			kf = anim.Hold[colorful.Color](d)
			break
		}
		v, err := ParseColour(k.Value)
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}
		kf = anim.Still(d, v)
	default:
		return nil, fmt.Errorf("unknown keyframe kind %q", k.Kind)
	}

	if k.Curve == "" {
		return kf, nil
	}
	return anim.Eased(kf, curve), nil
}

func (s Step) build() (anim.Request[colorful.Color], error) {
	to, err := ParseColour(s.To)
	if err != nil {
		return anim.Request[colorful.Color]{}, fmt.Errorf("to: %w", err)
	}
	d, err := ParseDuration(s.Duration)
	if err != nil {
		return anim.Request[colorful.Color]{}, err
	}
	curve, err := anim.CurveByName(s.Curve)
	if err != nil {
		return anim.Request[colorful.Color]{}, err
	}
	return anim.NewRequest(to, d, curve)
}

// ParseColour parses a "#rrggbb" hex colour.
func ParseColour(s string) (colorful.Color, error) {
	if s == "" {
		return colorful.Color{}, fmt.Errorf("missing colour")
	}
	return colorful.Hex(s)
}

// ParseDuration parses a Go duration string such as "1.5s".
func ParseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("missing duration")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration: %w", err)
	}
	return d, nil
}
