// beeper.go - Additive sine beeps with linear fades.
package sim

import "math"

// Beep parameters.
const (
	BeepDuration = 0.2   // seconds
	BeepVolume   = 0.05  // peak amplitude
	BeepFade     = 0.05  // fraction of the beep spent fading in and out
	ReferenceHz  = 440.0 // pitch of note 0
)

// NoteFrequency returns the equal-tempered frequency of a note counted in
// semitones from A4.
func NoteFrequency(note int) float64 {
	return ReferenceHz * math.Pow(2, float64(note)/12)
}

type beep struct {
	freq      float64
	remaining float64
}

// Beeper mixes active beeps into sample buffers. All beeps share one clock,
// so their phase is continuous across buffers.
type Beeper struct {
	beeps []beep
	time  float64
}

// Beep queues a tone of the given frequency and duration.
func (b *Beeper) Beep(freq, duration float64) {
	b.beeps = append(b.beeps, beep{freq: freq, remaining: duration})
}

// Active is the number of beeps still sounding.
func (b *Beeper) Active() int {
	return len(b.beeps)
}

// Fill overwrites samples with the mix of every active beep and advances the
// clock by len(samples)/sampleRate.
func (b *Beeper) Fill(samples []float32, sampleRate int) {
	step := 1 / float64(sampleRate)
	for i := range samples {
		var s float64
		for j := range b.beeps {
			bp := &b.beeps[j]
			if bp.remaining <= 0 {
				continue
			}
			s += math.Sin(2*math.Pi*bp.freq*b.time) * BeepVolume * fader(bp.remaining/BeepDuration)
			bp.remaining -= step
		}
		samples[i] = float32(s)
		b.time += step
	}

	live := b.beeps[:0]
	for _, bp := range b.beeps {
		if bp.remaining > 0 {
			live = append(live, bp)
		}
	}
	b.beeps = live
}

// fader maps the remaining fraction of a beep to its envelope gain. p runs
// from 1 down to 0.
func fader(p float64) float64 {
	switch {
	case p >= 1-BeepFade:
		return 1 - (p-(1-BeepFade))/BeepFade
	case p <= BeepFade:
		return p / BeepFade
	default:
		return 1
	}
}
