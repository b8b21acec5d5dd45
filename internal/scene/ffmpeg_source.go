package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"

	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

type ffmpegSource struct {
	exec    executor.Executor
	ffmpeg  string
	ffprobe string
	path    string

	info   StreamInfo
	proc   executor.Process
	buf    []byte
	index  int
	closed bool
}

// NewFFmpegSource decodes path into RGB frames by piping ffmpeg rawvideo output
func NewFFmpegSource(exec executor.Executor, ffmpegBin, ffprobeBin, path string) FrameSource {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	return &ffmpegSource{
		exec:    exec,
		ffmpeg:  ffmpegBin,
		ffprobe: ffprobeBin,
		path:    path,
	}
}

func (s *ffmpegSource) Open(ctx context.Context) (StreamInfo, error) {
	info, err := Probe(ctx, s.exec, s.ffprobe, s.path)
	if err != nil {
		return StreamInfo{}, err
	}

	proc, err := s.exec.Stream(ctx, s.ffmpeg, decodeArgs(s.path, info)...)
	if err != nil {
		return StreamInfo{}, fmt.Errorf("%w: start decoder: %v", ErrSourceUnavailable, err)
	}

	s.info = info
	s.proc = proc
	s.buf = make([]byte, info.Width*info.Height*3)
	return info, nil
}

func (s *ffmpegSource) Next(ctx context.Context) (*Frame, error) {
	if s.proc == nil || s.closed {
		return nil, fmt.Errorf("%w: source not open", ErrDecode)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, err := io.ReadFull(s.proc.Stdout(), s.buf)
	switch {
	case errors.Is(err, io.EOF):
		s.closed = true
		if werr := s.proc.Wait(); werr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("%w: decoder exited: %v", ErrDecode, werr)
		}
		return nil, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return nil, fmt.Errorf("%w: truncated frame %d", ErrDecode, s.index)
	case err != nil:
		return nil, fmt.Errorf("%w: read frame %d: %v", ErrDecode, s.index, err)
	}

	f := rgbFrame(s.buf, s.info.Width, s.info.Height, s.index)
	s.index++
	return f, nil
}

func (s *ffmpegSource) Close() error {
	if s.proc == nil || s.closed {
		return nil
	}
	s.closed = true
	s.proc.Kill()
	s.proc.Wait()
	return nil
}

// decodeArgs keeps ffmpeg's output on the probed grid: coded geometry (no
// display-matrix rotation) and a constant rate equal to the fps the scanner
// divides by (DefaultFPS when unknown), so index/fps stays on the media clock.
func decodeArgs(path string, info StreamInfo) []string {
	args := []string{
		"-v", "error",
		"-nostdin",
		"-noautorotate",
		"-i", path,
		"-map", "0:v:0",
	}
	fps := info.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return append(args,
		"-fps_mode", "cfr",
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	)
}

// rgbFrame converts a packed rgb24 buffer into a Frame with both the color
// image and its luma plane. Luma uses the BT.601 weights in 14-bit fixed point.
func rgbFrame(buf []byte, width, height, index int) *Frame {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gray := make([]byte, width*height)

	for i := 0; i < width*height; i++ {
		r, g, b := buf[i*3], buf[i*3+1], buf[i*3+2]
		img.Pix[i*4] = r
		img.Pix[i*4+1] = g
		img.Pix[i*4+2] = b
		img.Pix[i*4+3] = 0xff
		gray[i] = luma(r, g, b)
	}

	return &Frame{
		Index:  index,
		Width:  width,
		Height: height,
		Gray:   gray,
		Color:  img,
	}
}

func luma(r, g, b byte) byte {
	return byte((uint32(r)*4899 + uint32(g)*9617 + uint32(b)*1868 + 8192) >> 14)
}
