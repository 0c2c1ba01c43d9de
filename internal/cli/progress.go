package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter renders analysis progress with a progress bar.
type CLIProgressReporter struct {
	bar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter() *CLIProgressReporter {
	return &CLIProgressReporter{}
}

func (c *CLIProgressReporter) OnAnalysisStart(totalFiles int) {
	if totalFiles == 0 {
		return
	}
	c.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Analyzing files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func (c *CLIProgressReporter) OnFileIndexed(processed, total int, fileName string) {
	if c.bar != nil {
		c.bar.Add(1)
	}
}

func (c *CLIProgressReporter) OnAnalysisComplete(nodeCount, edgeCount int, duration time.Duration) {
	if c.bar != nil {
		c.bar.Finish()
		c.bar = nil
	}
	fmt.Printf("✓ Analysis complete: %d nodes, %d edges (took %.1fs)\n",
		nodeCount, edgeCount, duration.Seconds())
}
