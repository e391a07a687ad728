package prompt

import (
	"context"
	"fmt"
)

// Option is one selectable name with an optional description.
type Option struct {
	Name        string
	Description string
}

// Choices lists what the wizard offers. DefaultAddressing maps a platform
// name to the strategy preselected for it.
type Choices struct {
	Platforms         []Option
	Strategies        []Option
	Templates         []Option
	DefaultAddressing func(platform string) string
}

// Selection is the wizard's result.
type Selection struct {
	Platform   string
	Addressing string
	Template   string
	Prelude    bool
}

// Ask walks the user through platform, addressing strategy, function set,
// and prelude choices. Fields already set on preset are used as defaults.
func Ask(ctx context.Context, driver PromptDriver, choices Choices, preset Selection) (Selection, error) {
	out := preset

	platform, err := choose(ctx, driver, "Expander platform:", choices.Platforms, preset.Platform)
	if err != nil {
		return Selection{}, err
	}
	out.Platform = platform

	defaultStrategy := preset.Addressing
	if defaultStrategy == "" && choices.DefaultAddressing != nil {
		defaultStrategy = choices.DefaultAddressing(platform)
	}
	strategy, err := choose(ctx, driver, "Addressing strategy:", choices.Strategies, defaultStrategy)
	if err != nil {
		return Selection{}, err
	}
	out.Addressing = strategy

	tmpl, err := choose(ctx, driver, "Function set:", choices.Templates, preset.Template)
	if err != nil {
		return Selection{}, err
	}
	out.Template = tmpl

	prelude, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Emit prelude (unit indices and handler storage)?",
		Default: preset.Prelude,
	})
	if err != nil {
		return Selection{}, err
	}
	out.Prelude = prelude
	return out, nil
}

// ConfirmSplice asks before rewriting the generated region of path.
func ConfirmSplice(ctx context.Context, driver PromptDriver, path string) (bool, error) {
	return driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Replace the generated region of %s?", path),
		Default: true,
	})
}

func choose(ctx context.Context, driver PromptDriver, message string, options []Option, current string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("prompt: no options for %q", message)
	}

	names := make([]string, len(options))
	descriptions := make([]string, len(options))
	for i, opt := range options {
		names[i] = opt.Name
		descriptions[i] = opt.Description
	}
	defaultIndex := indexOf(names, current)
	if defaultIndex < 0 {
		defaultIndex = 0
	}

	idx, err := driver.Select(ctx, SelectConfig{
		Message:      message,
		Options:      names,
		Descriptions: descriptions,
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(names) {
		return "", fmt.Errorf("prompt: selection %d out of range for %q", idx, message)
	}
	return names[idx], nil
}
