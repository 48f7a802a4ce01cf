package cli

import "fmt"

// ConfigError reports a configuration problem a user can fix by
// editing the config file or environment, as opposed to a runtime
// failure.
type ConfigError struct {
	// Field is the config file path or the dotted setting name.
	Field string

	// Message describes what is wrong with it.
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Field, e.Message)
}

// CommandError wraps a failure from one costguard subcommand so the
// top-level error names the command that produced it.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("costguard %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError.
func NewConfigError(field, message string) *ConfigError {
	return &ConfigError{
		Field:   field,
		Message: message,
	}
}

// NewCommandError creates a new CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{
		Command: command,
		Err:     err,
	}
}
