package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")        // 404
	ErrValidation = errors.New("validation error") // 400
	ErrConflict   = errors.New("conflict")         // 409

	ErrOperatorNotFound  = fmt.Errorf("operator %w", ErrNotFound)
	ErrMachineNotFound   = fmt.Errorf("machine %w", ErrNotFound)
	ErrWorkOrderNotFound = fmt.Errorf("work order %w", ErrNotFound)
	ErrAlertNotFound     = fmt.Errorf("alert %w", ErrNotFound)

	ErrUnknownStatus   = fmt.Errorf("unknown status: %w", ErrValidation)
	ErrUnknownCommand  = fmt.Errorf("unknown command: %w", ErrValidation)
	ErrWorkOrderClosed = fmt.Errorf("work order already completed: %w", ErrConflict)
)
