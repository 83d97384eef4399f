package wav

import "encoding/binary"

// HeaderSize is the size of a canonical PCM WAV header in bytes.
const HeaderSize = 44

const (
	formatPCM     = 1
	fmtChunkSize  = 16
	riffBaseSize  = 36
	defaultBits   = 16
	bytesPerInt16 = 2
)

// WriteHeader returns the 44-byte header for dataLength bytes of
// interleaved PCM with the given layout.
func WriteHeader(dataLength, sampleRate, channels, bitsPerSample int) []byte {
	byteRate := sampleRate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	header := make([]byte, HeaderSize)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(riffBaseSize+dataLength))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], fmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataLength))

	return header
}

// Header holds the fields of a canonical header.
type Header struct {
	Format        int
	Channels      int
	SampleRate    int
	ByteRate      int
	BlockAlign    int
	BitsPerSample int
	DataLength    int
}

// ReadHeader parses the first 44 bytes of buf.
func ReadHeader(buf []byte) (Header, error) {
	if len(buf) < 12 {
		return Header{}, ErrTruncated
	}
	if string(buf[0:4]) != "RIFF" || string(buf[8:12]) != "WAVE" {
		return Header{}, ErrNotWavFile
	}
	if len(buf) < HeaderSize {
		return Header{}, ErrTruncated
	}
	if string(buf[12:16]) != "fmt " || string(buf[36:40]) != "data" {
		return Header{}, ErrUnsupportedLayout
	}
	return Header{
		Format:        int(binary.LittleEndian.Uint16(buf[20:22])),
		Channels:      int(binary.LittleEndian.Uint16(buf[22:24])),
		SampleRate:    int(binary.LittleEndian.Uint32(buf[24:28])),
		ByteRate:      int(binary.LittleEndian.Uint32(buf[28:32])),
		BlockAlign:    int(binary.LittleEndian.Uint16(buf[32:34])),
		BitsPerSample: int(binary.LittleEndian.Uint16(buf[34:36])),
		DataLength:    int(binary.LittleEndian.Uint32(buf[40:44])),
	}, nil
}
