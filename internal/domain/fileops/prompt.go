package fileops

import "context"

// Prompter is the dialog collaborator: a yes/no confirmation and a text
// input.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, message string) (bool, error)
	// PromptName asks for a name, pre-filled with suggested. ok is false
	// when the user cancels.
	PromptName(ctx context.Context, title, suggested string) (name string, ok bool, err error)
}

// Answers is a Prompter with canned replies. An empty Name accepts the
// suggestion.
type Answers struct {
	Confirmed bool
	Name      string
	Cancel    bool
}

// Confirm implements Prompter.
func (a Answers) Confirm(context.Context, string) (bool, error) {
	return a.Confirmed, nil
}

// PromptName implements Prompter.
func (a Answers) PromptName(_ context.Context, _, suggested string) (string, bool, error) {
	if a.Cancel {
		return "", false, nil
	}
	if a.Name == "" {
		return suggested, true, nil
	}
	return a.Name, true, nil
}
