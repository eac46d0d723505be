package cypress

import "errors"

var (
	// ErrEmptyConfig is returned when a config transform receives no content.
	ErrEmptyConfig = errors.New("the passed in cypress config file is empty")

	// ErrEmptyCommandsFile is returned when the mount transform receives no content.
	ErrEmptyCommandsFile = errors.New("the passed in cypress component commands file is empty")

	// ErrConfigNotFound is wrapped by LocateConfig when no config file exists.
	ErrConfigNotFound = errors.New("cypress config file not found")
)
