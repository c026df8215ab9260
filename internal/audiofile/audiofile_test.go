package audiofile

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eq/internal/testutil"
)

func TestWriteReadWAV(t *testing.T) {
	for _, depth := range []int{16, 24, 32} {
		t.Run(fmt.Sprintf("%dbit", depth), func(t *testing.T) {
			in := &Buffer{
				SampleRate: 44100,
				Channels: [][]float64{
					testutil.Sine(440, 44100, 0.5, 0, 20000),
					testutil.Sine(1000, 44100, 0.25, 0, 20000),
				},
			}

			path := filepath.Join(t.TempDir(), "out.wav")
			require.NoError(t, WriteWAV(path, in, depth))

			got, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, 44100, got.SampleRate)
			assert.Equal(t, depth, got.BitDepth)
			require.Len(t, got.Channels, 2)
			require.Equal(t, in.Frames(), got.Frames())

			tol := 2.0 / float64(uint64(1)<<(depth-1))
			for ch := range in.Channels {
				d, _ := testutil.MaxAbsDiff(in.Channels[ch], got.Channels[ch])
				assert.LessOrEqual(t, d, tol)
			}
		})
	}
}

func TestWriteWAV_Mono(t *testing.T) {
	in := &Buffer{SampleRate: 48000, Channels: [][]float64{{0, 0.5, -0.5, 0.25}}}
	path := filepath.Join(t.TempDir(), "mono.wav")
	require.NoError(t, WriteWAV(path, in, 16))

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got.Channels, 1)
	assert.InDeltaSlice(t, in.Channels[0], got.Channels[0], 1e-4)
	assert.InDelta(t, 4.0/48000, got.Duration(), 1e-12)
}

func TestWriteWAV_Clips(t *testing.T) {
	in := &Buffer{SampleRate: 48000, Channels: [][]float64{{2, -2, 1}}}
	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, WriteWAV(path, in, 16))

	got, err := Read(path)
	require.NoError(t, err)
	assert.InDelta(t, 32767.0/32768, got.Channels[0][0], 1e-12)
	assert.InDelta(t, -1, got.Channels[0][1], 1e-12)
	assert.InDelta(t, 32767.0/32768, got.Channels[0][2], 1e-12)
}

func TestWriteWAV_Rejects(t *testing.T) {
	dir := t.TempDir()
	stereo := &Buffer{SampleRate: 48000, Channels: [][]float64{{0}, {0}}}

	assert.ErrorIs(t, WriteWAV(filepath.Join(dir, "a.wav"), stereo, 8), ErrUnsupportedFormat)
	assert.ErrorIs(t, WriteWAV(filepath.Join(dir, "b.wav"), nil, 16), ErrUnsupportedFormat)

	surround := &Buffer{SampleRate: 48000, Channels: make([][]float64, 6)}
	assert.ErrorIs(t, WriteWAV(filepath.Join(dir, "c.wav"), surround, 16), ErrUnsupportedChannels)
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	mp3 := filepath.Join(dir, "x.mp3")
	require.NoError(t, os.WriteFile(mp3, []byte("ID3"), 0o644))
	_, err = Read(mp3)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	junk := filepath.Join(dir, "junk.wav")
	require.NoError(t, os.WriteFile(junk, []byte("definitely not RIFF"), 0o644))
	_, err = Read(junk)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecodeLE(t *testing.T) {
	assert.Equal(t, int32(-1), decodeLE([]byte{0xff, 0xff, 0xff}, 3))
	assert.Equal(t, int32(-8388608), decodeLE([]byte{0x00, 0x00, 0x80}, 3))
	assert.Equal(t, int32(8388607), decodeLE([]byte{0xff, 0xff, 0x7f}, 3))
	assert.Equal(t, int32(-2), decodeLE([]byte{0xfe, 0xff}, 2))

	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, 0x80000000)
	assert.Equal(t, int32(-2147483648), decodeLE(b, 4))
}

func TestBufferNil(t *testing.T) {
	var b *Buffer
	assert.Zero(t, b.Frames())
	assert.Zero(t, b.Duration())
}

func TestWriterInterleaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.wav")
	w, err := Create(path, 48000, 2, 24)
	require.NoError(t, err)

	require.NoError(t, w.WriteInterleaved([]float32{0.5, -0.5, 0.25, -0.25}))
	require.NoError(t, w.WriteInterleaved(nil))
	require.NoError(t, w.WriteInterleaved([]float32{0.125, -0.125}))
	require.NoError(t, w.Close())

	got, err := Read(path)
	require.NoError(t, err)
	require.Len(t, got.Channels, 2)
	assert.InDeltaSlice(t, []float64{0.5, 0.25, 0.125}, got.Channels[0], 1e-6)
	assert.InDeltaSlice(t, []float64{-0.5, -0.25, -0.125}, got.Channels[1], 1e-6)
}
