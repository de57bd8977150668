package tui

import (
	"errors"
	"fmt"

	huh "github.com/charmbracelet/huh"
)

// ModuleChoice is one selectable entry in the module picker.
type ModuleChoice struct {
	Name        string
	Description string
}

// ErrSelectionAborted is returned when the user leaves the picker without
// confirming.
var ErrSelectionAborted = errors.New("module selection aborted")

// SelectModules shows a multi-select over the available modules with all of
// them pre-selected. Used when --mcp is not given on a terminal.
func SelectModules(choices []ModuleChoice) ([]string, error) {
	selected := make([]string, 0, len(choices))
	opts := make([]huh.Option[string], 0, len(choices))
	for _, choice := range choices {
		label := fmt.Sprintf("%s - %s", choice.Name, choice.Description)
		opts = append(opts, huh.NewOption(label, choice.Name).Selected(true))
	}

	keyMap := huh.NewDefaultKeyMap()
	keyMap.MultiSelect.Filter.SetEnabled(false)
	keyMap.MultiSelect.Toggle.SetKeys(" ")
	keyMap.MultiSelect.Toggle.SetHelp("space", "toggle selection")
	keyMap.MultiSelect.Submit.SetKeys("enter")
	keyMap.MultiSelect.Submit.SetHelp("enter", "continue")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Options(opts...).
				Value(&selected),
		).
			Title("Module Selection").
			Description("Select the MCP servers to configure."),
	).
		WithTheme(NewHuhTheme()).
		WithShowHelp(true).
		WithKeyMap(keyMap)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrSelectionAborted
		}
		return nil, err
	}

	if len(selected) == 0 {
		return nil, ErrSelectionAborted
	}

	return selected, nil
}
