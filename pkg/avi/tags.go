// Package avi builds and inspects AVI files on top of the riff tree codec.
//
// The muxer writes one uncompressed BGR24 video stream followed by one mono
// IEEE float audio stream. The parser is a diagnostic inverse: it validates
// the structure, decodes the headers and extracts raw stream payloads.
package avi

import "github.com/xob0t/clipforge/pkg/riff"

// Tags of the AVI form.
var (
	FormAVI = riff.MustFourCC("AVI ")

	TagHdrl = riff.MustFourCC("hdrl")
	TagAvih = riff.MustFourCC("avih")
	TagStrl = riff.MustFourCC("strl")
	TagStrh = riff.MustFourCC("strh")
	TagStrf = riff.MustFourCC("strf")
	TagMovi = riff.MustFourCC("movi")
	TagIdx1 = riff.MustFourCC("idx1")

	StreamVideo = riff.MustFourCC("vids")
	StreamAudio = riff.MustFourCC("auds")
)

// Two-character stream chunk suffixes.
const (
	TwoCCVideo = "dc" // compressed or raw video
	TwoCCAudio = "wb" // waveform bytes
)

// ChunkID returns the movi chunk tag of a stream, e.g. "00dc" or "01wb".
func ChunkID(streamIndex int, twoCC string) riff.FourCC {
	return riff.FourCC{
		byte('0' + streamIndex/10),
		byte('0' + streamIndex%10),
		twoCC[0],
		twoCC[1],
	}
}

// Stream chunk tags in declaration order: video is stream 0, audio stream 1.
var (
	TagVideoFrame = ChunkID(0, TwoCCVideo)
	TagAudioFrame = ChunkID(1, TwoCCAudio)
)
