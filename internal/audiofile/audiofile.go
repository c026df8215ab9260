// Package audiofile reads WAV and FLAC files into planar float64 buffers and
// writes WAV output.
package audiofile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/tphakala/flac"
)

var (
	// ErrUnsupportedFormat is returned for unknown extensions, invalid
	// containers, and bit depths other than 16, 24 and 32.
	ErrUnsupportedFormat = errors.New("audiofile: unsupported format")
	// ErrUnsupportedChannels is returned for files that are neither mono nor stereo.
	ErrUnsupportedChannels = errors.New("audiofile: unsupported channel count")
)

// wavChunkFrames is the decode chunk in frames.
const wavChunkFrames = 8192

// Buffer is decoded planar audio scaled to [-1, 1).
type Buffer struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// Frames returns the number of sample frames.
func (b *Buffer) Frames() int {
	if b == nil || len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// Duration returns the length in seconds.
func (b *Buffer) Duration() float64 {
	if b == nil || b.SampleRate <= 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Read decodes path, choosing the decoder from its extension.
func Read(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: open: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return readWAV(f)
	case ".flac":
		return readFLAC(f)
	default:
		return nil, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}

func scale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return float64(uint64(1) << (bitDepth - 1)), nil
	default:
		return 0, fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, bitDepth)
	}
}

func checkChannels(n int) error {
	if n != 1 && n != 2 {
		return fmt.Errorf("%w: %d", ErrUnsupportedChannels, n)
	}
	return nil
}

func readWAV(r io.ReadSeeker) (*Buffer, error) {
	dec := wav.NewDecoder(r)
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV file", ErrUnsupportedFormat)
	}

	bitDepth := int(dec.BitDepth)
	divisor, err := scale(bitDepth)
	if err != nil {
		return nil, err
	}

	numChans := int(dec.NumChans)
	if err := checkChannels(numChans); err != nil {
		return nil, err
	}

	out := &Buffer{
		SampleRate: int(dec.SampleRate),
		BitDepth:   bitDepth,
		Channels:   make([][]float64, numChans),
	}

	buf := &audio.IntBuffer{
		Data:   make([]int, wavChunkFrames*numChans),
		Format: &audio.Format{SampleRate: out.SampleRate, NumChannels: numChans},
	}

	for {
		n, err := dec.PCMBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("audiofile: decode WAV: %w", err)
		}
		if n == 0 {
			break
		}

		for i, s := range buf.Data[:n-n%numChans] {
			ch := i % numChans
			out.Channels[ch] = append(out.Channels[ch], float64(s)/divisor)
		}
	}

	return out, nil
}

func readFLAC(r *os.File) (*Buffer, error) {
	dec, err := flac.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	divisor, err := scale(dec.BitsPerSample)
	if err != nil {
		return nil, err
	}
	if err := checkChannels(dec.NChannels); err != nil {
		return nil, err
	}

	out := &Buffer{
		SampleRate: dec.SampleRate,
		BitDepth:   dec.BitsPerSample,
		Channels:   make([][]float64, dec.NChannels),
	}
	if dec.TotalSamples > 0 {
		for ch := range out.Channels {
			out.Channels[ch] = make([]float64, 0, int(dec.TotalSamples))
		}
	}

	width := dec.BitsPerSample / 8
	frameBytes := width * dec.NChannels

	for {
		frame, err := dec.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("audiofile: decode FLAC: %w", err)
		}

		for i := 0; i+frameBytes <= len(frame); i += frameBytes {
			for ch := range dec.NChannels {
				s := decodeLE(frame[i+ch*width:], width)
				out.Channels[ch] = append(out.Channels[ch], float64(s)/divisor)
			}
		}
	}

	return out, nil
}

// decodeLE reads one signed little-endian sample of width bytes.
func decodeLE(b []byte, width int) int32 {
	switch width {
	case 2:
		return int32(int16(binary.LittleEndian.Uint16(b)))
	case 3:
		v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
		return int32(v<<8) >> 8
	default:
		return int32(binary.LittleEndian.Uint32(b))
	}
}

// Writer streams PCM frames into a WAV file.
type Writer struct {
	f        *os.File
	enc      *wav.Encoder
	format   *audio.Format
	bitDepth int
	divisor  float64
	data     []int
}

// Create opens path for streaming WAV output at bitDepth (16, 24 or 32).
func Create(path string, sampleRate, channels, bitDepth int) (*Writer, error) {
	divisor, err := scale(bitDepth)
	if err != nil {
		return nil, err
	}
	if err := checkChannels(channels); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: create: %w", err)
	}

	return &Writer{
		f:        f,
		enc:      wav.NewEncoder(f, sampleRate, bitDepth, channels, 1),
		format:   &audio.Format{SampleRate: sampleRate, NumChannels: channels},
		bitDepth: bitDepth,
		divisor:  divisor,
	}, nil
}

// WriteFrames appends frames from planar channels, starting at start.
func (w *Writer) WriteFrames(channels [][]float64, start, end int) error {
	w.data = w.data[:0]
	for i := start; i < end; i++ {
		for ch := range channels {
			w.data = append(w.data, quantize(channels[ch][i], w.divisor))
		}
	}
	return w.flush()
}

// WriteInterleaved appends interleaved float32 samples. A trailing partial
// frame is written as is.
func (w *Writer) WriteInterleaved(samples []float32) error {
	w.data = w.data[:0]
	for _, v := range samples {
		w.data = append(w.data, quantize(float64(v), w.divisor))
	}
	return w.flush()
}

func (w *Writer) flush() error {
	if len(w.data) == 0 {
		return nil
	}
	ib := &audio.IntBuffer{Data: w.data, Format: w.format, SourceBitDepth: w.bitDepth}
	if err := w.enc.Write(ib); err != nil {
		return fmt.Errorf("audiofile: encode WAV: %w", err)
	}
	return nil
}

// Close finalizes the WAV header and closes the file.
func (w *Writer) Close() error {
	encErr := w.enc.Close()
	fileErr := w.f.Close()
	if encErr != nil {
		return fmt.Errorf("audiofile: finalize WAV: %w", encErr)
	}
	if fileErr != nil {
		return fmt.Errorf("audiofile: close: %w", fileErr)
	}
	return nil
}

// WriteWAV encodes buf as PCM WAV at bitDepth. Samples are clipped to the
// integer range.
func WriteWAV(path string, buf *Buffer, bitDepth int) error {
	if buf == nil {
		return fmt.Errorf("%w: nil buffer", ErrUnsupportedFormat)
	}

	w, err := Create(path, buf.SampleRate, len(buf.Channels), bitDepth)
	if err != nil {
		return err
	}

	frames := buf.Frames()
	for start := 0; start < frames; start += wavChunkFrames {
		if err := w.WriteFrames(buf.Channels, start, min(start+wavChunkFrames, frames)); err != nil {
			_ = w.Close()
			return err
		}
	}

	return w.Close()
}

func quantize(v, divisor float64) int {
	s := v * divisor
	if math.IsNaN(s) {
		return 0
	}
	if s >= divisor-1 {
		return int(divisor - 1)
	}
	if s <= -divisor {
		return int(-divisor)
	}
	return int(math.Round(s))
}
