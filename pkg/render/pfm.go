package render

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// pfmScale is the third header line. A negative scale tells readers the
// samples are little-endian.
const pfmScale = "-1.0"

// WritePFM writes img as a Portable Float Map:
//
//	PF\n
//	<width> <height>\n
//	-1.0\n
//	<Width*Height*Channels little-endian float32 samples>
//
// Samples are written in storage order starting with row 0; no vertical
// flip is applied. The header is always "PF", whatever the channel count.
func (img *FloatImage) WritePFM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "PF\n%d %d\n%s\n", img.Width, img.Height, pfmScale); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, img.pix); err != nil {
		return err
	}
	return bw.Flush()
}

// SavePFM writes the image to path in PFM format (see WritePFM).
// The data is synced to disk before SavePFM returns; on failure no file is
// left at path.
func (img *FloatImage) SavePFM(path string) error {
	return writeFileAtomic(path, img.WritePFM)
}

// ReadPFM decodes a Portable Float Map. "PF" headers yield 3 channels,
// "Pf" headers 1 channel. The sign of the scale selects the byte order.
func ReadPFM(r io.Reader) (*FloatImage, error) {
	br := bufio.NewReader(r)

	magic, err := readHeaderLine(br)
	if err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	var channels int
	switch magic {
	case "PF":
		channels = 3
	case "Pf":
		channels = 1
	default:
		return nil, fmt.Errorf("not a PFM file: magic %q", magic)
	}

	dims, err := readHeaderLine(br)
	if err != nil {
		return nil, fmt.Errorf("read dimensions: %w", err)
	}
	fields := strings.Fields(dims)
	if len(fields) != 2 {
		return nil, fmt.Errorf("malformed dimensions %q", dims)
	}
	width, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("parse width: %w", err)
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("parse height: %w", err)
	}

	scaleLine, err := readHeaderLine(br)
	if err != nil {
		return nil, fmt.Errorf("read scale: %w", err)
	}
	scale, err := strconv.ParseFloat(scaleLine, 64)
	if err != nil {
		return nil, fmt.Errorf("parse scale: %w", err)
	}
	var order binary.ByteOrder = binary.BigEndian
	if scale < 0 {
		order = binary.LittleEndian
	}

	img, err := NewFloatImage(width, height, channels)
	if err != nil {
		return nil, err
	}
	if err := binary.Read(br, order, img.pix); err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	return img, nil
}

func readHeaderLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
