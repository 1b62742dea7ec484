package prompt

import (
	"context"
	"sort"
	"strings"

	"github.com/kiosk404/echonote/pkg/logger"
)

// Pipeline assembles a prompt from registered sections and mutators.
type Pipeline struct {
	name     string
	sections []PromptSection
	mutators []PromptMutator
	sorted   bool
	extra    func() []PromptSection
}

func NewPipeline(name string) *Pipeline {
	return &Pipeline{name: name}
}

func (p *Pipeline) RegisterSection(s PromptSection) *Pipeline {
	p.sections = append(p.sections, s)
	p.sorted = false
	return p
}

func (p *Pipeline) RegisterMutator(m PromptMutator) *Pipeline {
	p.mutators = append(p.mutators, m)
	p.sorted = false
	return p
}

// SetExtraSections attaches a source of sections that may change between
// assemblies, such as user instruction files.
func (p *Pipeline) SetExtraSections(fn func() []PromptSection) {
	p.extra = fn
}

func (p *Pipeline) ensureSorted() {
	if p.sorted {
		return
	}
	sort.SliceStable(p.sections, func(i, j int) bool {
		return p.sections[i].Priority() < p.sections[j].Priority()
	})
	sort.SliceStable(p.mutators, func(i, j int) bool {
		return p.mutators[i].Priority() < p.mutators[j].Priority()
	})
	p.sorted = true
}

// Assemble renders enabled sections separated by blank lines, then applies
// the mutators in order. Failing sections and mutators are skipped.
func (p *Pipeline) Assemble(ctx context.Context, pc *PromptContext) (string, error) {
	p.ensureSorted()

	all := p.sections
	if p.extra != nil {
		if more := p.extra(); len(more) > 0 {
			all = make([]PromptSection, 0, len(p.sections)+len(more))
			all = append(all, p.sections...)
			all = append(all, more...)
			sort.SliceStable(all, func(i, j int) bool {
				return all[i].Priority() < all[j].Priority()
			})
		}
	}

	var buf strings.Builder
	for _, section := range all {
		if !section.Enabled(ctx, pc) {
			continue
		}
		text, err := section.Render(ctx, pc)
		if err != nil {
			logger.Warn("[PromptPipeline] %s: section %q render failed: %v", p.name, section.Name(), err)
			continue
		}
		if text == "" {
			continue
		}
		buf.WriteString(text)
		buf.WriteString("\n\n")
	}

	result := strings.TrimRight(buf.String(), "\n")
	for _, m := range p.mutators {
		mutated, err := m.Mutate(ctx, pc, result)
		if err != nil {
			logger.Warn("[PromptPipeline] %s: mutator %q failed: %v", p.name, m.Name(), err)
			continue
		}
		result = mutated
	}
	return result, nil
}

func (p *Pipeline) SectionCount() int {
	return len(p.sections)
}
