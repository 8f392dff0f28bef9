package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/conduit/internal/core/domain"
	"go.trai.ch/conduit/internal/ui/output"
	"go.trai.ch/conduit/internal/ui/style"
	"gopkg.in/yaml.v3"
)

func init() {
	lipgloss.SetColorProfile(output.ColorProfile())
}

// WriteReport prints a run summary: one line per task, then the raised flags.
func WriteReport(w io.Writer, r *domain.RunReport) error {
	var b strings.Builder

	switch r.Reason {
	case domain.StopCompleted:
		b.WriteString(style.Title.Render(fmt.Sprintf("Run completed in %d tick(s)", r.Ticks)))
	case domain.StopIdleTimeout:
		b.WriteString(style.Pending.Render(fmt.Sprintf("Run stopped after %d idle tick(s)", r.IdleTicks)))
	case domain.StopCancelled:
		b.WriteString(style.Failure.Render(fmt.Sprintf("Run cancelled after %d tick(s)", r.Ticks)))
	}
	b.WriteString(" " + style.Muted.Render(r.RunID) + "\n")

	for _, id := range r.Launched {
		switch r.Outcomes[id] {
		case domain.StatusSucceeded:
			b.WriteString("  " + style.Success.Render(style.Check) + " " + id + "\n")
		case domain.StatusFailed:
			b.WriteString("  " + style.Failure.Render(style.Cross) + " " + id + "\n")
		default:
			b.WriteString("  " + style.Pending.Render(style.Dot) + " " + id + "\n")
		}
	}
	for _, id := range r.Unlaunched {
		b.WriteString("  " + style.Muted.Render(style.Circle+" "+id+" (never launched)") + "\n")
	}

	if len(r.Flags) > 0 {
		b.WriteString(style.Muted.Render("Flags: "+strings.Join(r.Flags, ", ")) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteGraph prints the nodes and inferred edges of g with the bindings that
// connect them, followed by a fingerprint of the edge set.
func WriteGraph(w io.Writer, g *domain.Graph) error {
	var b strings.Builder
	edges := g.Edges()

	b.WriteString(style.Title.Render(fmt.Sprintf("Pipeline graph: %d task(s), %d edge(s)", g.Len(), len(edges))) + "\n")

	for _, id := range g.IDs() {
		preds := g.Predecessors(id)
		if len(preds) == 0 {
			b.WriteString("  " + style.Success.Render(style.Dot) + " " + id + "\n")
			continue
		}
		b.WriteString("  " + style.Muted.Render(style.Circle) + " " + id +
			style.Muted.Render(" after "+strings.Join(preds, ", ")) + "\n")
	}

	if len(edges) > 0 {
		b.WriteString("\n")
	}
	for _, e := range edges {
		b.WriteString(fmt.Sprintf("  %s %s %s %s\n", e.From, style.Arrow, e.To,
			style.Muted.Render("("+strings.Join(connecting(g, e), ", ")+")")))
	}

	if err := g.DetectCycles(); err != nil {
		b.WriteString("\n" + style.Failure.Render(style.Warning+" "+err.Error()) + "\n")
	}

	b.WriteString("\n" + style.Muted.Render("Fingerprint: "+Fingerprint(g)) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Fingerprint hashes the node order and edge set of g.
// Two pipelines that infer the same graph share a fingerprint.
func Fingerprint(g *domain.Graph) string {
	d := xxhash.New()
	for _, id := range g.IDs() {
		_, _ = d.WriteString(id)
		_, _ = d.WriteString("\n")
	}
	for _, e := range g.Edges() {
		_, _ = d.WriteString(e.From + "->" + e.To + "\n")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// connecting returns the key=value bindings produced by e.From and consumed by e.To.
func connecting(g *domain.Graph, e domain.Edge) []string {
	from, _ := g.Get(e.From)
	to, _ := g.Get(e.To)
	var out []string
	for _, key := range from.Outputs.Keys() {
		if to.Inputs.Has(key, from.Outputs[key]) {
			out = append(out, key+"="+from.Outputs[key])
		}
	}
	return out
}

type configView struct {
	Tasks []taskView `yaml:"tasks"`
}

type taskView struct {
	ID         string            `yaml:"id"`
	Type       string            `yaml:"type"`
	Inputs     map[string]string `yaml:"inputs,omitempty"`
	Outputs    map[string]string `yaml:"outputs,omitempty"`
	Parameters map[string]any    `yaml:"parameters,omitempty"`
}

// WriteConfig prints the loaded pipeline back as YAML in declaration order.
func WriteConfig(w io.Writer, p *domain.Pipeline) error {
	view := configView{Tasks: make([]taskView, 0, p.Len())}
	for _, d := range p.Descriptors() {
		view.Tasks = append(view.Tasks, taskView{
			ID:         d.ID,
			Type:       d.Type,
			Inputs:     d.Inputs,
			Outputs:    d.Outputs,
			Parameters: d.Parameters,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(view); err != nil {
		return err
	}
	return enc.Close()
}
