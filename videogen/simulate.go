package videogen

import (
	"context"
	"time"

	"genvo-server/models"
)

var simulationSteps = []Progress{
	{Percent: 10, Status: "Analyzing prompt..."},
	{Percent: 30, Status: "Preparing generation..."},
	{Percent: 50, Status: "Generating frames..."},
	{Percent: 70, Status: "Processing video..."},
	{Percent: 90, Status: "Finalizing..."},
	{Percent: 100, Status: "Complete!"},
}

// Simulator demo 模式：固定步骤的假进度，返回占位视频
type Simulator struct {
	Step time.Duration
}

func (s *Simulator) Generate(ctx context.Context, req Request) (*Result, error) {
	for _, step := range simulationSteps {
		if s.Step > 0 {
			select {
			case <-ctx.Done():
				return nil, &Error{Kind: KindGeneric, Message: "generation aborted", Err: ctx.Err()}
			case <-time.After(s.Step):
			}
		}
		req.report(step)
	}
	return &Result{VideoUrl: models.PlaceholderVideoUrl}, nil
}
