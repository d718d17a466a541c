package recording

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Minimal 16-bit PCM mono WAV support. The clip format is fixed by the
// recorder (44.1 kHz, mono, 16-bit), so a full audio library would be dead
// weight; the RIFF header for this shape is 44 bytes of fixed fields.

const wavHeaderSize = 44

// EncodeWAV serializes samples as a 16-bit PCM mono WAV file.
func EncodeWAV(samples []int16, sampleRate int) []byte {
	dataSize := len(samples) * 2
	buf := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataSize))

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))            // chunk size
	binary.Write(buf, binary.LittleEndian, uint16(1))             // PCM
	binary.Write(buf, binary.LittleEndian, uint16(1))             // mono
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate))    // sample rate
	binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2))  // byte rate
	binary.Write(buf, binary.LittleEndian, uint16(2))             // block align
	binary.Write(buf, binary.LittleEndian, uint16(16))            // bits per sample

	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
	binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// DecodeWAV parses a 16-bit PCM mono WAV file and returns its samples and
// sample rate. Anything other than uncompressed 16-bit mono PCM is rejected.
func DecodeWAV(data []byte) ([]int16, int, error) {
	if len(data) < wavHeaderSize || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("not a RIFF/WAVE file")
	}

	var sampleRate int
	var sawFmt bool
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if body+size > len(data) {
			return nil, 0, fmt.Errorf("truncated %q chunk", id)
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, fmt.Errorf("short fmt chunk")
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			channels := binary.LittleEndian.Uint16(data[body+2 : body+4])
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits := binary.LittleEndian.Uint16(data[body+14 : body+16])
			if format != 1 || channels != 1 || bits != 16 {
				return nil, 0, fmt.Errorf("unsupported format: want 16-bit PCM mono, got format=%d channels=%d bits=%d", format, channels, bits)
			}
			sawFmt = true
		case "data":
			if !sawFmt {
				return nil, 0, fmt.Errorf("data chunk before fmt chunk")
			}
			samples := make([]int16, size/2)
			if err := binary.Read(bytes.NewReader(data[body:body+size]), binary.LittleEndian, samples); err != nil {
				return nil, 0, err
			}
			return samples, sampleRate, nil
		}
		// Chunks are word-aligned.
		pos = body + size + size%2
	}
	return nil, 0, fmt.Errorf("no data chunk found")
}
