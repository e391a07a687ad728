// Package prompt drives the interactive mode of gpioexp-gen through survey
// prompts behind a small PromptDriver interface.
package prompt
