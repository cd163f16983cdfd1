// Package file plays back raw 16-bit little-endian PCM recordings as a
// receiver source, paced at roughly real time.
package file

import (
	"context"
	"encoding/binary"
	"os"
	"time"

	"github.com/rxgate/rxgate/pkg/audio"
)

type FileSource struct {
	readFile  *os.File
	blockSize int
}

func NewFileSource(path string, blockSize int) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return &FileSource{
		readFile:  f,
		blockSize: blockSize,
	}, nil
}

func (f *FileSource) Start(ctx context.Context, sampleRate int, samples chan *audio.SegmentFloat32) error {
	timeBetween := time.Duration(f.blockSize) * time.Second / time.Duration(sampleRate)
	tick := time.NewTicker(timeBetween)
	defer tick.Stop()

	segNum := 0
	buf := make([]byte, f.blockSize*2)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			n, err := f.readFile.Read(buf)
			if err != nil {
				return err
			}
			n &^= 1 // whole samples only

			seg := &audio.SegmentFloat32{
				SampleRate:    sampleRate,
				SegmentNumber: segNum,
				Data:          make([]float32, n/2),
			}
			for i := 0; i < n/2; i++ {
				seg.Data[i] = float32(int16(binary.LittleEndian.Uint16(buf[i*2:]))) / 32768.0
			}
			segNum++

			select {
			case <-ctx.Done():
				return ctx.Err()
			case samples <- seg:
			}
		}
	}
}

func (f *FileSource) Stop() error {
	return f.readFile.Close()
}
