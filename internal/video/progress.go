package video

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar prints a throttled console progress bar for long renders.
type ProgressBar struct {
	total       int
	current     int
	startTime   time.Time
	lastUpdate  time.Time
	description string
}

func NewProgressBar(description string, total int) *ProgressBar {
	if total <= 0 {
		total = 1
	}
	return &ProgressBar{
		total:       total,
		startTime:   time.Now(),
		description: description,
	}
}

// Set updates the bar to the given frame count. Redraws are throttled so
// per-frame calls stay cheap.
func (p *ProgressBar) Set(current int) {
	p.current = current

	if time.Since(p.lastUpdate) < 100*time.Millisecond && current < p.total {
		return
	}
	p.lastUpdate = time.Now()

	percentage := float64(p.current) / float64(p.total) * 100
	elapsed := time.Since(p.startTime)

	barWidth := 30
	completed := int(float64(barWidth) * float64(p.current) / float64(p.total))
	if completed > barWidth {
		completed = barWidth
	}
	bar := strings.Repeat("=", completed) + strings.Repeat("-", barWidth-completed)

	fmt.Printf("\r%s [%s] %.1f%% Elapsed: %v",
		p.description,
		bar,
		percentage,
		elapsed.Round(time.Second),
	)
}

func (p *ProgressBar) ReportError(err error) {
	fmt.Printf("\nError: %v\n", err)
}

func (p *ProgressBar) Complete() {
	p.Set(p.total)
	fmt.Println()
}
