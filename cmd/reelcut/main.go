package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/reelcut/reelcut/internal/compose"
	"github.com/reelcut/reelcut/internal/config"
	"github.com/reelcut/reelcut/internal/project"
	"github.com/reelcut/reelcut/internal/tracking"
	"github.com/reelcut/reelcut/internal/video"
)

type Application struct {
	config   *config.Config
	logger   *zap.Logger
	recorder *tracking.Recorder
	stdin    *bufio.Reader
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewApplication() (*Application, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		config: config.NewConfig(),
		logger: logger,
		stdin:  bufio.NewReader(os.Stdin),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

func (app *Application) Run() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go app.handleSignals(sigChan)

	for {
		if err := app.showMenu(); err != nil {
			return err
		}
		select {
		case <-app.ctx.Done():
			return nil
		default:
		}
	}
}

func (app *Application) showMenu() error {
	fmt.Println("\nCommands:")
	fmt.Println("1. Record input telemetry")
	fmt.Println("2. Render project")
	fmt.Println("3. Render project in chunks")
	fmt.Println("4. Probe a video file")
	fmt.Println("5. Exit")
	fmt.Print("Choose an option: ")

	var choice int
	if _, err := fmt.Scanln(&choice); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	switch choice {
	case 1:
		return app.recordTelemetry()
	case 2:
		return app.renderProject(false)
	case 3:
		return app.renderProject(true)
	case 4:
		return app.probeVideo()
	case 5:
		return app.cleanup()
	default:
		fmt.Println("Invalid option")
		return nil
	}
}

func (app *Application) recordTelemetry() error {
	if app.recorder != nil && app.recorder.IsRecording() {
		fmt.Println("Already recording")
		return nil
	}

	baseName, err := app.prompt("Enter a name for the recording (without extension): ")
	if err != nil {
		return err
	}

	app.recorder = tracking.NewRecorder(app.config, app.logger)
	if err := app.recorder.Start(app.ctx); err != nil {
		return err
	}

	fmt.Println("Recording. Press Enter to stop...")
	if _, err := app.stdin.ReadString('\n'); err != nil {
		return fmt.Errorf("failed to wait for stop: %w", err)
	}
	if err := app.recorder.Stop(); err != nil {
		return err
	}

	mouse, clicks, keys, scrolls := app.recorder.Streams()
	p := &project.Project{
		Name: baseName,
		Recording: project.Recording{
			Mouse:   mouse,
			Clicks:  clicks,
			Keys:    keys,
			Scrolls: scrolls,
		},
	}

	outDir := app.config.Recording.OutputDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outDir, baseName+".json")
	if err := p.Save(path); err != nil {
		return err
	}
	fmt.Printf("Telemetry saved to %s\n", path)
	return nil
}

func (app *Application) renderProject(chunked bool) error {
	projectPath, err := app.prompt("Project file path: ")
	if err != nil {
		return err
	}

	p, err := project.Load(projectPath)
	if err != nil {
		return err
	}
	if p.Video.Path == "" {
		fmt.Println("Project has no source video")
		return nil
	}

	// Fill in source metadata when the project predates probing.
	if p.Video.Width <= 0 || p.Video.Height <= 0 {
		info, err := video.Probe(p.Video.Path)
		if err != nil {
			return err
		}
		p.Video.Width = float64(info.Width)
		p.Video.Height = float64(info.Height)
		p.Video.FPS = info.FPS
		p.Video.DurationMs = info.DurationMs
	}

	outDir := app.config.Export.OutputDir
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(projectPath), filepath.Ext(projectPath))
	outPath := filepath.Join(outDir, base+"-rendered.mp4")

	session := compose.NewSession(app.config, app.logger, p.Input())
	renderer := video.NewRenderer(app.config, app.logger, session, "assets")

	if chunked {
		err = renderer.ExportChunked(app.ctx, p.Video.Path, outPath)
	} else {
		err = renderer.Export(app.ctx, p.Video.Path, outPath)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Rendered to %s\n", outPath)
	return nil
}

func (app *Application) probeVideo() error {
	path, err := app.prompt("Video file path: ")
	if err != nil {
		return err
	}
	info, err := video.Probe(path)
	if err != nil {
		return err
	}
	fmt.Printf("%dx%d @ %.2f fps, %d frames, %.1fs\n",
		info.Width, info.Height, info.FPS, info.Frames, info.DurationMs/1000)
	return nil
}

func (app *Application) prompt(msg string) (string, error) {
	fmt.Print(msg)
	line, err := app.stdin.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (app *Application) cleanup() error {
	if app.recorder != nil && app.recorder.IsRecording() {
		if err := app.recorder.Stop(); err != nil {
			return err
		}
	}
	app.cancel()
	return nil
}

func (app *Application) handleSignals(sigChan chan os.Signal) {
	for sig := range sigChan {
		fmt.Printf("\nReceived signal: %v\n", sig)
		if app.recorder != nil && app.recorder.IsRecording() {
			fmt.Println("Stopping recording...")
			if err := app.recorder.Stop(); err != nil {
				log.Printf("Error stopping recording: %v", err)
			}
		} else {
			fmt.Println("Exiting application...")
			app.cancel()
			return
		}
	}
}

func main() {
	app, err := NewApplication()
	if err != nil {
		log.Fatalf("Application error: %v", err)
	}
	defer app.logger.Sync()
	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
