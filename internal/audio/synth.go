package audio

import (
	"math"

	"github.com/tomz197/pong/internal/match"
)

func generateAll() [3][]byte {
	var out [3][]byte
	for _, s := range []match.Sound{match.SoundHit, match.SoundScore, match.SoundWin} {
		out[s] = generateSound(s)
	}
	return out
}

func generateSound(s match.Sound) []byte {
	switch s {
	case match.SoundHit:
		return genHit()
	case match.SoundScore:
		return genScore()
	case match.SoundWin:
		return genWin()
	}
	return nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < ChannelCount; ch++ {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat applies gentle tanh-like saturation, no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// square is a band-limited-ish square wave: the first three odd harmonics.
func square(t, freq float64) float64 {
	w := 2 * math.Pi * freq * t
	return (math.Sin(w) + math.Sin(3*w)/3 + math.Sin(5*w)/5) * 4 / math.Pi
}

// makeBuf allocates a stereo float32 buffer for n samples.
func makeBuf(n int) []byte { return make([]byte, n*8) }

// genHit: short square blip, the classic paddle beep.
func genHit() []byte {
	n := int(0.045 * SampleRate)
	buf := makeBuf(n)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		env := adsr(p, 0.02, 0.3, 0.6, 0.3)
		putStereoF32(buf, i, softSat(square(t, 880)*env*0.35))
	}
	return buf
}

// genScore: two falling tones.
func genScore() []byte {
	notes := []float64{660, 440}
	step := int(0.11 * SampleRate)
	buf := makeBuf(len(notes) * step)
	for ni, freq := range notes {
		for j := 0; j < step; j++ {
			i := ni*step + j
			t := float64(i) / SampleRate
			env := adsr(float64(j)/float64(step), 0.02, 0.4, 0.5, 0.3)
			putStereoF32(buf, i, softSat(square(t, freq)*env*0.3))
		}
	}
	return buf
}

// genWin: rising major arpeggio with a held last note.
func genWin() []byte {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	step := int(0.12 * SampleRate)
	tail := int(0.3 * SampleRate)
	total := len(notes)*step + tail
	mix := make([]float64, total)
	for ni, freq := range notes {
		start := ni * step
		dur := step
		if ni == len(notes)-1 {
			dur += tail
		}
		for j := 0; j < dur; j++ {
			t := float64(start+j) / SampleRate
			env := adsr(float64(j)/float64(dur), 0.01, 0.3, 0.6, 0.35)
			mix[start+j] += square(t, freq) * env * 0.3
		}
	}
	buf := makeBuf(total)
	for i, s := range mix {
		putStereoF32(buf, i, softSat(s))
	}
	return buf
}
