package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/GriffinCanCode/AgentOS/explorer/internal/domain/fileops"
)

// HuhPrompter asks confirmations and names with huh forms. Aborting a form
// counts as declining.
type HuhPrompter struct {
	theme      *huh.Theme
	accessible bool
}

// NewHuhPrompter creates a prompter with the Charm theme.
func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{theme: huh.ThemeCharm()}
}

// WithAccessible switches to plain line-based prompts, for screen readers
// and dumb terminals.
func (p *HuhPrompter) WithAccessible(on bool) *HuhPrompter {
	p.accessible = on
	return p
}

// Confirm implements fileops.Prompter.
func (p *HuhPrompter) Confirm(ctx context.Context, message string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := p.run(ctx, field); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// PromptName implements fileops.Prompter. The input starts out holding
// suggested.
func (p *HuhPrompter) PromptName(ctx context.Context, title, suggested string) (string, bool, error) {
	name := suggested
	field := huh.NewInput().
		Title(title).
		Value(&name).
		Validate(fileops.ValidateName)
	if err := p.run(ctx, field); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", false, nil
		}
		return "", false, err
	}
	return name, true, nil
}

func (p *HuhPrompter) run(ctx context.Context, field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(p.theme).
		WithAccessible(p.accessible).
		RunWithContext(ctx)
}
