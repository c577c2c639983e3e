// Package services orchestrates the generation pipeline end-to-end.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/ports"
)

// PipelineService runs one invocation of generate -> extract -> resolve ->
// install -> execute. Collaborators are injected fully formed; the extractor
// and scanner are pure functions wired in by the container.
type PipelineService struct {
	Generator ports.Generator
	Installer ports.PackageInstaller
	Runner    ports.ScriptRunner
	Pages     ports.ScriptStore
	History   ports.HistoryStore
	Logger    ports.Logger

	Extract func(string) string
	Scan    func(string) []string
}

// Start launches one pipeline invocation on its own worker and returns the
// event channel the caller consumes. The channel carries status phases,
// streamed chunks and finally either a done event with the report or a
// terminal error; it is closed when the invocation finishes. The caller's
// goroutine owns all presentation of these events. Invocations started
// concurrently run independently.
func (s *PipelineService) Start(ctx context.Context, req domain.GenerationRequest) <-chan domain.PipelineEvent {
	events := make(chan domain.PipelineEvent, 32)
	go func() {
		defer close(events)
		report, err := s.run(ctx, req, func(ev domain.PipelineEvent) {
			events <- ev
		})
		if err != nil {
			events <- domain.PipelineEvent{Kind: domain.EventError, Err: err, Report: report}
			return
		}
		events <- domain.PipelineEvent{Kind: domain.EventDone, Progress: 100, Report: report}
	}()
	return events
}

// Run executes the pipeline synchronously on the calling goroutine.
func (s *PipelineService) Run(ctx context.Context, req domain.GenerationRequest) (*domain.RunReport, error) {
	return s.run(ctx, req, func(domain.PipelineEvent) {})
}

func (s *PipelineService) run(ctx context.Context, req domain.GenerationRequest, emit func(domain.PipelineEvent)) (*domain.RunReport, error) {
	if err := s.checkWiring(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Instruction) == "" {
		return nil, &domain.ValidationError{Field: "instruction", Reason: "instruction is empty"}
	}
	if req.Mode == "" {
		req.Mode = domain.ModeAutomation
	}

	report := &domain.RunReport{
		ID:          uuid.NewString(),
		Mode:        req.Mode,
		Instruction: req.Instruction,
		StartedAt:   time.Now(),
	}

	emit(status("generating", 10))
	generation, err := s.generate(ctx, req, emit)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}
	report.Generation = generation

	var runErr error
	switch req.Mode {
	case domain.ModeQA:
		// Answers skip extraction, dependency resolution and execution.
	case domain.ModeWebDev:
		runErr = s.buildPage(report, emit)
	default:
		runErr = s.automate(ctx, report, emit)
	}

	s.record(report, runErr)
	if runErr != nil {
		return report, runErr
	}
	return report, nil
}

// generate consumes the chunk stream into the raw response text. Partial
// output accumulated before a transport failure is discarded: there is no
// partial-result contract.
func (s *PipelineService) generate(ctx context.Context, req domain.GenerationRequest, emit func(domain.PipelineEvent)) (domain.GenerationResult, error) {
	start := time.Now()
	stream, err := s.Generator.Stream(ctx, req)
	if err != nil {
		return domain.GenerationResult{}, err
	}

	var raw strings.Builder
	for chunk := range stream {
		if chunk.Err != nil {
			return domain.GenerationResult{}, chunk.Err
		}
		raw.WriteString(chunk.Text)
		emit(domain.PipelineEvent{Kind: domain.EventChunk, Chunk: chunk.Text})
	}

	return domain.GenerationResult{
		RawText: raw.String(),
		Elapsed: time.Since(start),
	}, nil
}

// automate runs extraction, dependency resolution, install and execution,
// strictly in that order. Any failed install skips execution entirely.
func (s *PipelineService) automate(ctx context.Context, report *domain.RunReport, emit func(domain.PipelineEvent)) error {
	emit(status("extracting code", 40))
	report.Generation.ExtractedCode = s.Extract(report.Generation.RawText)
	return s.installAndRun(ctx, report, emit)
}

// RunScript executes an already-stored script through the same dependency
// resolution, install and execution stages as a fresh generation. The
// dependency set is recomputed here, never reused from the original run.
func (s *PipelineService) RunScript(ctx context.Context, name, code string) (*domain.RunReport, error) {
	if s.Installer == nil || s.Runner == nil || s.Logger == nil || s.Scan == nil {
		return nil, errors.New("services.PipelineService dependencies not satisfied")
	}
	report := &domain.RunReport{
		ID:          uuid.NewString(),
		Mode:        domain.ModeAutomation,
		Instruction: "saved script: " + name,
		StartedAt:   time.Now(),
		Generation:  domain.GenerationResult{ExtractedCode: code},
	}
	err := s.installAndRun(ctx, report, func(domain.PipelineEvent) {})
	s.record(report, err)
	if err != nil {
		return report, err
	}
	return report, nil
}

func (s *PipelineService) installAndRun(ctx context.Context, report *domain.RunReport, emit func(domain.PipelineEvent)) error {
	emit(status("resolving dependencies", 50))
	report.Dependencies = s.Scan(report.Generation.ExtractedCode)

	emit(status("installing dependencies", 60))
	report.Installs = s.Installer.EnsureAll(ctx, report.Dependencies)
	if report.Installs.AnyFailed() {
		return &domain.InstallError{Outcome: report.Installs}
	}

	emit(status("executing script", 80))
	execution := s.Runner.Run(ctx, report.Generation.ExtractedCode)
	report.Execution = &execution
	s.Logger.Info("script finished", map[string]interface{}{
		"succeeded": execution.Succeeded,
		"duration":  execution.Duration.String(),
	})
	return nil
}

// buildPage extracts the generated page and saves it to the page store.
func (s *PipelineService) buildPage(report *domain.RunReport, emit func(domain.PipelineEvent)) error {
	if s.Pages == nil {
		return errors.New("services.PipelineService page store not wired")
	}
	emit(status("extracting page", 40))
	report.Generation.ExtractedCode = s.Extract(report.Generation.RawText)

	emit(status("saving page", 80))
	name := "page-" + report.StartedAt.Format("20060102-150405")
	if err := s.Pages.Save(name, report.Generation.ExtractedCode); err != nil {
		return fmt.Errorf("save page: %w", err)
	}
	report.SavedAs = name
	return nil
}

// record persists the invocation. History is best-effort: a failed write is
// logged, never surfaced.
func (s *PipelineService) record(report *domain.RunReport, runErr error) {
	if s.History == nil {
		return
	}
	rec := domain.RunRecord{
		ID:           report.ID,
		Timestamp:    report.StartedAt,
		Mode:         report.Mode,
		Instruction:  report.Instruction,
		Code:         report.Generation.ExtractedCode,
		Dependencies: strings.Join(report.Dependencies, ","),
		GenerationMS: report.Generation.Elapsed.Milliseconds(),
	}
	var installErr *domain.InstallError
	rec.InstallFailed = errors.As(runErr, &installErr)
	if report.Execution != nil {
		rec.Executed = true
		rec.Succeeded = report.Execution.Succeeded
		rec.Fault = report.Execution.Fault
		rec.ExecutionMS = report.Execution.Duration.Milliseconds()
	}
	if err := s.History.Save(rec); err != nil {
		s.Logger.Warn("history write failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *PipelineService) checkWiring() error {
	if s.Generator == nil || s.Installer == nil || s.Runner == nil ||
		s.Logger == nil || s.Extract == nil || s.Scan == nil {
		return errors.New("services.PipelineService dependencies not satisfied")
	}
	return nil
}

func status(phase string, progress int) domain.PipelineEvent {
	return domain.PipelineEvent{Kind: domain.EventStatus, Status: phase, Progress: progress}
}
