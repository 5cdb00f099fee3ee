package video

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"path/filepath"

	vidio "github.com/AlexEidt/Vidio"
	"go.uber.org/zap"
)

// Export renders the composed edit of the source video to outPath in one
// sequential pass.
func (r *Renderer) Export(ctx context.Context, sourcePath, outPath string) error {
	src, err := vidio.NewVideo(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source video: %w", err)
	}
	defer src.Close()

	canvasW := int(r.config.Canvas.Width)
	canvasH := int(r.config.Canvas.Height)
	writer, err := vidio.NewVideoWriter(outPath, canvasW, canvasH, &vidio.Options{
		FPS: src.FPS(),
	})
	if err != nil {
		return fmt.Errorf("failed to open output video: %w", err)
	}
	defer writer.Close()

	progress := NewProgressBar("Rendering", src.Frames())
	if err := r.renderFrames(ctx, src, writer, 0, src.Frames(), progress); err != nil {
		progress.ReportError(err)
		return err
	}
	progress.Complete()

	r.log.Info("export finished",
		zap.String("output", outPath),
		zap.Int("frames", src.Frames()))
	return nil
}

// ExportChunked renders the edit in fixed-size chunks to separate files,
// then concatenates them losslessly. Frame state never leaks across chunk
// boundaries beyond what the composition engine derives from source time,
// so chunk output is identical to a single-pass render.
func (r *Renderer) ExportChunked(ctx context.Context, sourcePath, outPath string) error {
	src, err := vidio.NewVideo(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source video: %w", err)
	}
	defer src.Close()

	chunkSize := r.config.Export.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 120
	}
	canvasW := int(r.config.Canvas.Width)
	canvasH := int(r.config.Canvas.Height)

	tmpDir, err := os.MkdirTemp(filepath.Dir(outPath), "chunks-*")
	if err != nil {
		return fmt.Errorf("failed to create chunk directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	progress := NewProgressBar("Rendering", src.Frames())
	var chunkPaths []string

	for start := 0; start < src.Frames(); start += chunkSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + chunkSize
		if end > src.Frames() {
			end = src.Frames()
		}

		chunkPath := filepath.Join(tmpDir, fmt.Sprintf("chunk_%05d.mp4", start/chunkSize))
		writer, err := vidio.NewVideoWriter(chunkPath, canvasW, canvasH, &vidio.Options{
			FPS: src.FPS(),
		})
		if err != nil {
			return fmt.Errorf("failed to open chunk %s: %w", chunkPath, err)
		}
		if err := r.renderFrames(ctx, src, writer, start, end, progress); err != nil {
			writer.Close()
			progress.ReportError(err)
			return err
		}
		writer.Close()
		chunkPaths = append(chunkPaths, chunkPath)
	}
	progress.Complete()

	if err := concatChunks(chunkPaths, outPath); err != nil {
		return err
	}
	r.log.Info("chunked export finished",
		zap.String("output", outPath),
		zap.Int("chunks", len(chunkPaths)))
	return nil
}

// renderFrames reads frames [start, end) from src, composes each at its
// source time and writes it out. The reader is assumed positioned at frame
// start; chunks are rendered in order so sequential reads line up.
func (r *Renderer) renderFrames(ctx context.Context, src *vidio.Video, writer *vidio.VideoWriter, start, end int, progress *ProgressBar) error {
	canvasW := int(r.config.Canvas.Width)
	canvasH := int(r.config.Canvas.Height)
	dst := image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))

	frame := &image.RGBA{
		Stride: src.Width() * 4,
		Rect:   image.Rect(0, 0, src.Width(), src.Height()),
	}

	for i := start; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !src.Read() {
			return fmt.Errorf("source ended early at frame %d", i)
		}
		frame.Pix = src.FrameBuffer()

		nowMs := float64(i) / src.FPS() * 1000
		r.RenderFrame(dst, frame, nowMs)

		if err := writer.Write(dst.Pix); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", i, err)
		}
		progress.Set(i + 1)
	}
	return nil
}

// concatChunks stitches rendered chunk files into the final output using
// ffmpeg stream copy, so the join is lossless.
func concatChunks(chunks []string, outPath string) error {
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks to combine")
	}

	concatList := ""
	for _, c := range chunks {
		abs, err := filepath.Abs(c)
		if err != nil {
			return fmt.Errorf("failed to resolve chunk path: %w", err)
		}
		concatList += fmt.Sprintf("file '%s'\n", abs)
	}

	listPath := filepath.Join(filepath.Dir(chunks[0]), "concat_list.txt")
	if err := os.WriteFile(listPath, []byte(concatList), 0644); err != nil {
		return fmt.Errorf("failed to create concat list: %w", err)
	}
	defer os.Remove(listPath)

	cmd := exec.Command("ffmpeg",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to combine chunks: %w (output: %s)", err, out)
	}
	return nil
}
