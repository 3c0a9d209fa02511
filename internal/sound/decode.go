package sound

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// Output format shared by every cue.
const (
	sampleRate   = 44100
	channelCount = 2
)

var ErrUnsupportedFormat = errors.New("unsupported audio format")

var cueExts = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
}

// IsSupportedExt reports whether a cue sample with this extension can be loaded.
func IsSupportedExt(ext string) bool {
	return cueExts[strings.ToLower(ext)]
}

// SupportedExtsList returns a human-readable list of cue formats.
func SupportedExtsList() string {
	return ".mp3, .wav, .flac, .ogg"
}

// Clip is a decoded cue: interleaved 16-bit stereo at 44.1 kHz.
type Clip []int16

// Duration in seconds.
func (c Clip) Duration() float64 {
	return float64(len(c)/channelCount) / sampleRate
}

// Bytes encodes the clip as little-endian PCM for the audio device.
func (c Clip) Bytes() []byte {
	out := make([]byte, len(c)*2)
	for i, s := range c {
		out[i*2] = byte(uint16(s))
		out[i*2+1] = byte(uint16(s) >> 8)
	}
	return out
}

// DecodeFile loads a whole cue sample, picking the decoder by extension.
func DecodeFile(path string) (Clip, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !IsSupportedExt(ext) {
		return nil, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedFormat, ext, SupportedExtsList())
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening cue: %w", err)
	}
	defer f.Close()

	var (
		samples  []int16
		rate     int
		channels int
	)
	switch ext {
	case ".wav":
		samples, rate, channels, err = decodeWAV(f)
	case ".mp3":
		samples, rate, channels, err = decodeMP3(f)
	case ".ogg":
		samples, rate, channels, err = decodeOGG(f)
	case ".flac":
		samples, rate, channels, err = decodeFLAC(f)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return normalize(samples, rate, channels), nil
}

func decodeWAV(r io.ReadSeeker) ([]int16, int, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, 0, fmt.Errorf("invalid WAV file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, 0, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	out := make([]int16, len(buf.Data))
	depth := int(dec.BitDepth)
	for i, v := range buf.Data {
		switch depth {
		case 8:
			// 8-bit WAV is unsigned
			v = (v - 128) << 8
		case 24:
			v >>= 8
		case 32:
			v >>= 16
		}
		out[i] = clip16(v)
	}
	return out, int(dec.SampleRate), int(dec.NumChans), nil
}

func decodeMP3(r io.Reader) ([]int16, int, int, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, 0, 0, err
	}
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, 0, err
	}
	out := make([]int16, len(raw)/2)
	for i := range out {
		out[i] = int16(uint16(raw[i*2]) | uint16(raw[i*2+1])<<8)
	}
	// go-mp3 always produces 16-bit stereo.
	return out, dec.SampleRate(), 2, nil
}

func decodeOGG(r io.Reader) ([]int16, int, int, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, 0, 0, err
	}
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = int16(s * 32767)
	}
	return out, format.SampleRate, format.Channels, nil
}

func decodeFLAC(r io.Reader) ([]int16, int, int, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, 0, 0, err
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	bps := int(info.BitsPerSample)
	var out []int16
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, 0, err
		}
		n := int(frame.Subframes[0].NSamples)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				sample := int(frame.Subframes[ch].Samples[i])
				switch {
				case bps > 16:
					sample >>= (bps - 16)
				case bps < 16:
					sample <<= (16 - bps)
				}
				out = append(out, clip16(sample))
			}
		}
	}
	return out, int(info.SampleRate), channels, nil
}

// normalize converts interleaved samples to stereo at the output rate with
// linear interpolation. Mono is duplicated; extra channels are dropped.
func normalize(in []int16, rate, channels int) Clip {
	if channels < 1 || rate < 1 || len(in) < channels {
		return nil
	}
	frames := len(in) / channels
	stereo := make([]int16, frames*channelCount)
	for f := range frames {
		l := in[f*channels]
		r := l
		if channels > 1 {
			r = in[f*channels+1]
		}
		stereo[f*2], stereo[f*2+1] = l, r
	}
	if rate == sampleRate {
		return stereo
	}

	outFrames := int(int64(frames) * sampleRate / int64(rate))
	out := make(Clip, outFrames*channelCount)
	step := float64(rate) / sampleRate
	for f := range outFrames {
		pos := float64(f) * step
		i := int(pos)
		t := pos - float64(i)
		j := i + 1
		if j >= frames {
			j = frames - 1
		}
		for ch := range channelCount {
			a := float64(stereo[i*2+ch])
			b := float64(stereo[j*2+ch])
			out[f*2+ch] = int16(a + (b-a)*t)
		}
	}
	return out
}

func clip16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
