package handlers

import (
	"github.com/appclacks/datto-monitor/pkg/backup/aggregates"
)

type RunService interface {
	LastRun() (*aggregates.RunReport, error)
}

type Builder struct {
	run RunService
}

func NewBuilder(run RunService) *Builder {
	return &Builder{
		run: run,
	}
}
