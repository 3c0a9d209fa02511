package sound

import (
	"math"
	"math/rand/v2"
)

// SynthPop is a party-popper crack: a burst of decaying noise over a low thump.
func SynthPop() Clip {
	const dur = 0.25
	n := int(dur * sampleRate)
	rng := rand.New(rand.NewPCG(7, 11))
	out := make(Clip, n*channelCount)
	for i := range n {
		t := float64(i) / sampleRate
		noise := (rng.Float64()*2 - 1) * math.Exp(-t*28)
		thump := math.Sin(2*math.Pi*90*t) * math.Exp(-t*18)
		s := clip16(int((0.55*noise + 0.45*thump) * 30000))
		out[i*2], out[i*2+1] = s, s
	}
	return out
}

// SynthTap is a short high blip.
func SynthTap() Clip {
	const dur = 0.08
	n := int(dur * sampleRate)
	out := make(Clip, n*channelCount)
	for i := range n {
		t := float64(i) / sampleRate
		s := clip16(int(math.Sin(2*math.Pi*880*t) * math.Exp(-t*45) * 20000))
		out[i*2], out[i*2+1] = s, s
	}
	return out
}
