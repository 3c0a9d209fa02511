// Package sound plays the short cues that accompany the demos.
package sound

import (
	"bytes"
	"fmt"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/olivier-w/springdeck/internal/config"
)

// Cue names.
const (
	Pop = "pop"
	Tap = "tap"
)

// Output sends PCM to a device.
type Output interface {
	Play(pcm []byte, volume float64)
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: channelCount,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// otoOutput keeps every live player referenced until it finishes.
type otoOutput struct {
	ctx  *oto.Context
	mu   sync.Mutex
	live []*oto.Player
}

func (o *otoOutput) Play(pcm []byte, volume float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	kept := o.live[:0]
	for _, p := range o.live {
		if p.IsPlaying() {
			kept = append(kept, p)
		} else {
			p.Close()
		}
	}
	o.live = kept

	p := o.ctx.NewPlayer(bytes.NewReader(pcm))
	p.SetVolume(volume)
	p.Play()
	o.live = append(o.live, p)
}

// Cues maps cue names to encoded clips. A nil or disabled Cues is silent.
type Cues struct {
	out    Output
	volume float64
	clips  map[string][]byte
	played map[string]int
}

// New loads the configured cues and opens the audio device. When the device
// cannot be opened the returned Cues is silent and the error says why.
func New(cfg config.Sound) (*Cues, error) {
	if !cfg.Enabled {
		return &Cues{}, nil
	}
	clips, err := loadClips(cfg)
	if err != nil {
		return &Cues{}, err
	}
	ctx, err := initOto()
	if err != nil {
		return &Cues{}, fmt.Errorf("opening audio device: %w", err)
	}
	return NewWithOutput(&otoOutput{ctx: ctx}, cfg.Volume, clips), nil
}

// NewWithOutput builds cues on an arbitrary output.
func NewWithOutput(out Output, volume float64, clips map[string]Clip) *Cues {
	c := &Cues{out: out, volume: volume, clips: make(map[string][]byte, len(clips)), played: map[string]int{}}
	for name, clip := range clips {
		c.clips[name] = clip.Bytes()
	}
	return c
}

func loadClips(cfg config.Sound) (map[string]Clip, error) {
	clips := map[string]Clip{Pop: SynthPop(), Tap: SynthTap()}
	for name, path := range map[string]string{Pop: cfg.Pop, Tap: cfg.Tap} {
		if path == "" {
			continue
		}
		clip, err := DecodeFile(path)
		if err != nil {
			return nil, fmt.Errorf("cue %s: %w", name, err)
		}
		log.Printf("sound: %s cue from %s (%.2fs)", name, path, clip.Duration())
		clips[name] = clip
	}
	return clips, nil
}

// Play starts the named cue without blocking. Unknown names are ignored.
func (c *Cues) Play(name string) {
	if c == nil || c.out == nil {
		return
	}
	pcm, ok := c.clips[name]
	if !ok {
		log.Printf("sound: unknown cue %q", name)
		return
	}
	c.played[name]++
	c.out.Play(pcm, c.volume)
}

// Played counts how often a cue has been started.
func (c *Cues) Played(name string) int {
	if c == nil {
		return 0
	}
	return c.played[name]
}
