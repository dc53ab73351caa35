package audio

import (
	"encoding/binary"
	"io"
	"math"
	"testing"

	"github.com/tomz197/pong/internal/match"
)

func TestGeneratedSounds(t *testing.T) {
	cases := []struct {
		sound  match.Sound
		minDur float64 // Seconds
		maxDur float64
	}{
		{match.SoundHit, 0.02, 0.1},
		{match.SoundScore, 0.1, 0.5},
		{match.SoundWin, 0.3, 1.5},
	}

	for _, tc := range cases {
		t.Run(tc.sound.String(), func(t *testing.T) {
			buf := generateSound(tc.sound)
			if len(buf)%8 != 0 {
				t.Fatalf("buffer length %d is not whole stereo float32 frames", len(buf))
			}
			dur := float64(len(buf)/8) / SampleRate
			if dur < tc.minDur || dur > tc.maxDur {
				t.Errorf("duration = %.3fs; want [%v, %v]", dur, tc.minDur, tc.maxDur)
			}

			var peak float64
			for i := 0; i < len(buf); i += 4 {
				v := float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[i:])))
				if math.IsNaN(v) || v < -1 || v > 1 {
					t.Fatalf("sample %d = %v out of [-1, 1]", i/4, v)
				}
				peak = math.Max(peak, math.Abs(v))
			}
			if peak < 0.05 {
				t.Errorf("peak amplitude %v; sound is silent", peak)
			}
		})
	}
}

func TestStereoChannelsMatch(t *testing.T) {
	buf := makeBuf(2)
	putStereoF32(buf, 1, 0.5)
	for ch := 0; ch < 2; ch++ {
		v := math.Float32frombits(binary.LittleEndian.Uint32(buf[8+ch*4:]))
		if v != 0.5 {
			t.Errorf("channel %d = %v; want 0.5", ch, v)
		}
	}
}

func TestADSR(t *testing.T) {
	cases := []struct {
		p    float64
		want float64
	}{
		{0, 0},
		{0.05, 0.5},
		{0.1, 1},
		{0.5, 0.5},
		{1, 0},
	}
	for _, tc := range cases {
		got := adsr(tc.p, 0.1, 0.2, 0.5, 0.2)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("adsr(%v) = %v; want %v", tc.p, got, tc.want)
		}
	}
}

func TestSoftSatBounded(t *testing.T) {
	for _, x := range []float64{-10, -1.5, -1, 0, 0.3, 1, 1.5, 10} {
		if y := softSat(x); y < -1 || y > 1 {
			t.Errorf("softSat(%v) = %v out of [-1, 1]", x, y)
		}
	}
}

func TestSoundReader(t *testing.T) {
	r := &soundReader{data: []byte{1, 2, 3}}
	p := make([]byte, 2)
	if n, err := r.Read(p); n != 2 || err != nil {
		t.Fatalf("first read = %d, %v", n, err)
	}
	if n, err := r.Read(p); n != 1 || err != nil {
		t.Fatalf("second read = %d, %v", n, err)
	}
	if _, err := r.Read(p); err != io.EOF {
		t.Fatalf("third read err = %v; want EOF", err)
	}
}
