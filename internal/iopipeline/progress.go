package iopipeline

import (
	"github.com/cheggaaa/pb/v3"
)

func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}

// finishBar stops a bar, nil is ignored. Detector tasks still running
// after cancellation may increment a finished bar.
func finishBar(bar *pb.ProgressBar) {
	if bar != nil && !bar.IsFinished() {
		bar.Finish()
	}
}
