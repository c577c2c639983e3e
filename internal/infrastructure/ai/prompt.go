package ai

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/DingxDon/Task-Automate/internal/domain"
)

// Mode prompts mirror the instruction wording the desktop app shipped with:
// the automation prompt insists on bare code so the extractor has as little
// prose as possible to strip.
var modeTemplates = map[domain.Mode]*template.Template{
	domain.ModeAutomation: template.Must(template.New("automation").Parse(
		"Write a Python script to {{.Instruction}}. Only give code and nothing else.",
	)),
	domain.ModeQA: template.Must(template.New("qa").Parse(
		"Answer the following question concisely: {{.Instruction}}",
	)),
	domain.ModeWebDev: template.Must(template.New("webdev").Parse(
		"Write a complete single-file HTML page (inline CSS and JavaScript) that {{.Instruction}}. Only give code and nothing else.",
	)),
}

// renderPrompt expands the mode's template with the user instruction.
// Unknown modes fall back to the automation prompt.
func renderPrompt(req domain.GenerationRequest) (string, error) {
	tmpl, ok := modeTemplates[req.Mode]
	if !ok {
		tmpl = modeTemplates[domain.ModeAutomation]
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Instruction string }{strings.TrimSpace(req.Instruction)}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
