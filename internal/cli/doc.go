// Package cli parses the command lines of gpioexp-api and gpioexp-gen,
// validates user input, and carries process exit codes.
package cli
