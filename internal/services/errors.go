package services

import "errors"

var (
	// ErrConfigurationMissing means the workspace has no usable WhatsApp config
	ErrConfigurationMissing = errors.New("WhatsApp is not configured for this workspace")

	// ErrValidation means a required input field is missing
	ErrValidation = errors.New("validation failed")

	// ErrGatewaySend means the gateway answered a send with a non-2xx status
	ErrGatewaySend = errors.New("gateway rejected the message")

	// ErrNetwork means the gateway could not be reached
	ErrNetwork = errors.New("gateway unreachable")
)
