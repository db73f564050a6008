package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Common domain errors.
var (
	ErrFieldsRequired  = errors.New("all fields are required")
	ErrInvalidNumber   = errors.New("value must be a number")
	ErrInvalidDuration = errors.New("value must be a positive number")
	ErrEmptyTaskName   = errors.New("task name cannot be empty")
	ErrTaskNotFound    = errors.New("task not found")
	ErrDuplicateTask   = errors.New("a task with this name already exists")
	ErrEngineClosed    = errors.New("timer engine is closed")
)

// ParsePositive parses user input as a positive whole number.
// Nothing is clamped: empty, non-numeric and non-positive input are errors.
func ParsePositive(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, ErrFieldsRequired
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", input, ErrInvalidNumber)
	}
	if n <= 0 {
		return 0, ErrInvalidDuration
	}
	return n, nil
}

// CheckPositive rejects a non-positive value.
func CheckPositive(n int) error {
	if n <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// NormalizeTaskName trims a task name and rejects an empty one.
func NormalizeTaskName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyTaskName
	}
	return name, nil
}

// NewTask creates a validated task.
func NewTask(name string, workMinutes, breakMinutes int) (Task, error) {
	name, err := NormalizeTaskName(name)
	if err != nil {
		return Task{}, err
	}
	if err := CheckPositive(workMinutes); err != nil {
		return Task{}, fmt.Errorf("work duration: %w", err)
	}
	if err := CheckPositive(breakMinutes); err != nil {
		return Task{}, fmt.Errorf("break duration: %w", err)
	}
	return Task{Name: name, WorkDuration: workMinutes, BreakDuration: breakMinutes}, nil
}

// ParseTask validates the three raw fields of an add-task form.
func ParseTask(name, work, brk string) (Task, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(work) == "" || strings.TrimSpace(brk) == "" {
		return Task{}, ErrFieldsRequired
	}
	w, err := ParsePositive(work)
	if err != nil {
		return Task{}, fmt.Errorf("work duration: %w", err)
	}
	b, err := ParsePositive(brk)
	if err != nil {
		return Task{}, fmt.Errorf("break duration: %w", err)
	}
	return NewTask(name, w, b)
}
