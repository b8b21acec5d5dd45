package scene

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
)

const (
	framePrefix = "frame"
	clickPrefix = "click"
)

// FrameFileName returns the artifact name for a frame index, e.g. frame_000042.jpg
func FrameFileName(prefix string, index int) string {
	return fmt.Sprintf("%s_%06d.jpg", prefix, index)
}

// writeFrame encodes the frame as JPEG into dir. The file is written to a
// temp name and renamed so readers never observe a partial image.
func writeFrame(dir, prefix string, f *Frame, quality int) (string, error) {
	final := filepath.Join(dir, FrameFileName(prefix, f.Index))

	tmp, err := os.CreateTemp(dir, "."+prefix+"-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := jpeg.Encode(tmp, frameImage(f), &jpeg.Options{Quality: quality}); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, final); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename frame: %w", err)
	}

	return final, nil
}

func frameImage(f *Frame) image.Image {
	if f.Color != nil {
		return f.Color
	}
	return &image.Gray{
		Pix:    f.Gray,
		Stride: f.Width,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}
