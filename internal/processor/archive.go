package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

// moveToArchived moves a processed input out of the watched folder
func (p *implProcessor) moveToArchived(ctx context.Context, videoPath string, log logger.Logger) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(videoPath))

	log.Info(ctx, "Moving to archived folder: %s -> %s", videoPath, destPath)

	if err := os.Rename(videoPath, destPath); err == nil {
		return nil
	}

	// rename fails across devices
	if err := copyFile(videoPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	if err := os.Remove(videoPath); err != nil {
		log.Warn(ctx, "Failed to remove %s after archiving: %v", videoPath, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
