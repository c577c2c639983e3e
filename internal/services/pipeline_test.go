package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/codeblock"
	"github.com/DingxDon/Task-Automate/internal/infrastructure/pydeps"
	"github.com/DingxDon/Task-Automate/internal/pkg/logger"
)

type stubGenerator struct {
	chunks []string
	err    error
}

func (g stubGenerator) Stream(context.Context, domain.GenerationRequest) (<-chan domain.StreamChunk, error) {
	out := make(chan domain.StreamChunk, len(g.chunks)+1)
	for _, c := range g.chunks {
		out <- domain.StreamChunk{Text: c}
	}
	if g.err != nil {
		out <- domain.StreamChunk{Err: g.err}
	}
	close(out)
	return out, nil
}

type stubInstaller struct {
	present map[string]bool
	failing map[string]string
	ensured []string
}

func (i *stubInstaller) Ensure(_ context.Context, module string) domain.InstallResult {
	i.ensured = append(i.ensured, module)
	if reason, ok := i.failing[module]; ok {
		return domain.InstallResult{Module: module, Status: domain.StatusFailed, Reason: reason}
	}
	if i.present[module] {
		return domain.InstallResult{Module: module, Status: domain.StatusAlreadyPresent}
	}
	return domain.InstallResult{Module: module, Status: domain.StatusInstalled}
}

func (i *stubInstaller) EnsureAll(ctx context.Context, modules []string) domain.InstallOutcome {
	outcome := make(domain.InstallOutcome, len(modules))
	for _, m := range modules {
		outcome[m] = i.Ensure(ctx, m)
	}
	return outcome
}

type stubRunner struct {
	report domain.ExecutionReport
	called bool
}

func (r *stubRunner) Run(context.Context, string) domain.ExecutionReport {
	r.called = true
	return r.report
}

type stubStore struct {
	saved map[string]string
}

func (s *stubStore) Save(name, body string) error {
	if s.saved == nil {
		s.saved = map[string]string{}
	}
	s.saved[name] = body
	return nil
}
func (s *stubStore) List() ([]string, error)     { return nil, nil }
func (s *stubStore) Load(string) (string, error) { return "", domain.ErrScriptNotFound }
func (s *stubStore) Delete(string) error         { return domain.ErrScriptNotFound }

type stubHistory struct {
	records []domain.RunRecord
	err     error
}

func (h *stubHistory) Save(rec domain.RunRecord) error {
	h.records = append(h.records, rec)
	return h.err
}
func (h *stubHistory) Records(int, string) ([]domain.RunRecord, error) { return h.records, nil }
func (h *stubHistory) Clear() error                                    { return nil }

func newPipeline(gen stubGenerator, inst *stubInstaller, run *stubRunner, hist *stubHistory) *PipelineService {
	return &PipelineService{
		Generator: gen,
		Installer: inst,
		Runner:    run,
		Pages:     &stubStore{},
		History:   hist,
		Logger:    logger.NewStd(false),
		Extract:   codeblock.Extract,
		Scan:      pydeps.Scan,
	}
}

func TestAutomationPipelineInstallsAndExecutes(t *testing.T) {
	gen := stubGenerator{chunks: []string{"```python\nimport requests\n", "print(requests.get('x'))\n```"}}
	inst := &stubInstaller{}
	run := &stubRunner{report: domain.ExecutionReport{Succeeded: true, Duration: 42 * time.Millisecond}}
	hist := &stubHistory{}

	report, err := newPipeline(gen, inst, run, hist).Run(context.Background(), domain.GenerationRequest{
		Instruction: "fetch x",
		Mode:        domain.ModeAutomation,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(report.Dependencies) != 1 || report.Dependencies[0] != "requests" {
		t.Fatalf("Dependencies = %v, want [requests]", report.Dependencies)
	}
	if got := report.Installs["requests"].Status; got != domain.StatusInstalled {
		t.Fatalf("install status = %s, want installed", got)
	}
	if len(inst.ensured) != 1 {
		t.Fatalf("installer invoked %d times, want once", len(inst.ensured))
	}
	if !run.called {
		t.Fatal("runner was not invoked")
	}
	if report.Execution == nil || report.Execution.Duration <= 0 {
		t.Fatalf("Execution = %+v, want duration > 0", report.Execution)
	}
	if len(hist.records) != 1 || !hist.records[0].Executed {
		t.Fatalf("history records = %+v", hist.records)
	}
}

func TestAutomationSkipsExecutionWhenInstallFails(t *testing.T) {
	gen := stubGenerator{chunks: []string{"```python\nimport nonexistentpkg\nprint(1)\n```"}}
	inst := &stubInstaller{failing: map[string]string{"nonexistentpkg": "No matching distribution"}}
	run := &stubRunner{}
	hist := &stubHistory{}

	report, err := newPipeline(gen, inst, run, hist).Run(context.Background(), domain.GenerationRequest{
		Instruction: "do the impossible",
		Mode:        domain.ModeAutomation,
	})

	var installErr *domain.InstallError
	if !errors.As(err, &installErr) {
		t.Fatalf("Run() error = %v, want InstallError", err)
	}
	if run.called {
		t.Fatal("runner was invoked despite a failed install")
	}
	if report.Installs["nonexistentpkg"].Status != domain.StatusFailed {
		t.Fatalf("outcome = %+v", report.Installs)
	}
	if !strings.Contains(err.Error(), "nonexistentpkg") {
		t.Fatalf("error %q does not name the failed module", err)
	}
	if len(hist.records) != 1 || !hist.records[0].InstallFailed || hist.records[0].Executed {
		t.Fatalf("history records = %+v", hist.records)
	}
}

func TestTransportFailureDiscardsPartialOutput(t *testing.T) {
	gen := stubGenerator{chunks: []string{"partial "}, err: errors.New("quota exceeded")}
	run := &stubRunner{}

	report, err := newPipeline(gen, &stubInstaller{}, run, &stubHistory{}).Run(context.Background(), domain.GenerationRequest{
		Instruction: "anything",
	})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("Run() error = %v, want transport error", err)
	}
	if report != nil {
		t.Fatalf("report = %+v, want nil on transport failure", report)
	}
	if run.called {
		t.Fatal("runner was invoked after a transport failure")
	}
}

func TestQAModeSkipsExtractionAndExecution(t *testing.T) {
	gen := stubGenerator{chunks: []string{"The answer ", "is 42."}}
	inst := &stubInstaller{}
	run := &stubRunner{}

	report, err := newPipeline(gen, inst, run, &stubHistory{}).Run(context.Background(), domain.GenerationRequest{
		Instruction: "what is the answer",
		Mode:        domain.ModeQA,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Generation.RawText != "The answer is 42." {
		t.Fatalf("RawText = %q", report.Generation.RawText)
	}
	if report.Generation.ExtractedCode != "" || len(inst.ensured) != 0 || run.called {
		t.Fatal("QA mode must not extract, install or execute")
	}
}

func TestWebDevModeSavesPage(t *testing.T) {
	gen := stubGenerator{chunks: []string{"```html\n<html>hi</html>\n```"}}
	pages := &stubStore{}
	svc := newPipeline(gen, &stubInstaller{}, &stubRunner{}, &stubHistory{})
	svc.Pages = pages

	report, err := svc.Run(context.Background(), domain.GenerationRequest{
		Instruction: "shows hi",
		Mode:        domain.ModeWebDev,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.SavedAs == "" {
		t.Fatal("SavedAs is empty")
	}
	if body := pages.saved[report.SavedAs]; !strings.Contains(body, "<html>hi</html>") {
		t.Fatalf("saved page body = %q", body)
	}
}

func TestRunScriptRecomputesDependencies(t *testing.T) {
	inst := &stubInstaller{present: map[string]bool{"requests": true}}
	run := &stubRunner{report: domain.ExecutionReport{Succeeded: true, Duration: time.Millisecond}}
	hist := &stubHistory{}
	svc := newPipeline(stubGenerator{}, inst, run, hist)
	svc.Generator = nil // saved scripts execute without a generator

	report, err := svc.RunScript(context.Background(), "fetch", "import requests\nprint(requests.get('x'))\n")
	if err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}
	if len(report.Dependencies) != 1 || report.Dependencies[0] != "requests" {
		t.Fatalf("Dependencies = %v, want [requests]", report.Dependencies)
	}
	if got := report.Installs["requests"].Status; got != domain.StatusAlreadyPresent {
		t.Fatalf("install status = %s, want already present", got)
	}
	if !run.called {
		t.Fatal("runner was not invoked")
	}
	if len(hist.records) != 1 || !strings.Contains(hist.records[0].Instruction, "fetch") {
		t.Fatalf("history records = %+v", hist.records)
	}
}

func TestEmptyInstructionRejected(t *testing.T) {
	svc := newPipeline(stubGenerator{}, &stubInstaller{}, &stubRunner{}, &stubHistory{})

	var ve *domain.ValidationError
	if _, err := svc.Run(context.Background(), domain.GenerationRequest{Instruction: "  "}); !errors.As(err, &ve) {
		t.Fatalf("Run(blank) error = %v, want ValidationError", err)
	}
}

func TestStartEmitsOrderedEvents(t *testing.T) {
	gen := stubGenerator{chunks: []string{"```python\nprint(1)\n```"}}
	svc := newPipeline(gen, &stubInstaller{}, &stubRunner{report: domain.ExecutionReport{Succeeded: true, Duration: time.Millisecond}}, &stubHistory{})

	var kinds []domain.EventKind
	var lastProgress int
	for ev := range svc.Start(context.Background(), domain.GenerationRequest{Instruction: "print one"}) {
		kinds = append(kinds, ev.Kind)
		if ev.Progress < lastProgress && ev.Kind == domain.EventStatus {
			t.Fatalf("progress went backwards: %d after %d", ev.Progress, lastProgress)
		}
		if ev.Progress > lastProgress {
			lastProgress = ev.Progress
		}
	}
	if len(kinds) == 0 || kinds[len(kinds)-1] != domain.EventDone {
		t.Fatalf("event kinds = %v, want trailing done event", kinds)
	}
	if lastProgress != 100 {
		t.Fatalf("final progress = %d, want 100", lastProgress)
	}
}
