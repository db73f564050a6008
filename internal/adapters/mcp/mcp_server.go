// Package mcp provides the MCP (Model Context Protocol) server implementation.
// Every engine command is exposed as a tool so an assistant can drive the timer.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/pomotray/internal/domain"
	"github.com/xvierd/pomotray/internal/ports"
)

// Server implements the MCP server using mark3labs/mcp-go.
type Server struct {
	server  *server.MCPServer
	control ports.TimerControl
	stats   ports.StatsProvider
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewServer creates a new MCP server instance. stats may be nil.
func NewServer(control ports.TimerControl, stats ports.StatsProvider) *Server {
	s := &Server{
		control: control,
		stats:   stats,
	}

	s.server = server.NewMCPServer(
		"pomo",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_state",
			mcp.WithDescription("Get the timer state: period, elapsed and remaining time, pause flag, cycle count and current task"),
		),
		s.handleGetState,
	)

	s.server.AddTool(
		mcp.NewTool(
			"list_tasks",
			mcp.WithDescription("List the configured tasks with their work and break durations"),
		),
		s.handleListTasks,
	)

	s.server.AddTool(
		mcp.NewTool(
			"today_stats",
			mcp.WithDescription("Get today's total work and break time"),
		),
		s.handleTodayStats,
	)

	s.server.AddTool(
		mcp.NewTool(
			"toggle_pause",
			mcp.WithDescription("Pause the countdown, or resume it if it is paused"),
		),
		s.handleTogglePause,
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset",
			mcp.WithDescription("Restart the current period from its full length"),
		),
		s.handleReset,
	)

	changeTaskTool := mcp.NewTool(
		"change_task",
		mcp.WithDescription("Switch to the task with this name, or rename the current task if no task has it"),
		mcp.WithString(
			"name",
			mcp.Required(),
			mcp.Description("Task name"),
		),
	)
	s.server.AddTool(changeTaskTool, s.handleChangeTask)

	selectTaskTool := mcp.NewTool(
		"select_task",
		mcp.WithDescription("Switch to a task by its index in list_tasks"),
		mcp.WithNumber(
			"index",
			mcp.Required(),
			mcp.Description("Zero-based task index"),
		),
	)
	s.server.AddTool(selectTaskTool, s.handleSelectTask)

	s.server.AddTool(numberTool("set_work_duration", "Set the current task's work duration; a running work period restarts", "minutes"), s.handleSetWorkDuration)
	s.server.AddTool(numberTool("set_break_duration", "Set the current task's break duration; a running short break restarts", "minutes"), s.handleSetBreakDuration)
	s.server.AddTool(numberTool("set_long_break_duration", "Set the long break duration", "minutes"), s.handleSetLongBreakDuration)
	s.server.AddTool(numberTool("set_cycles_before_long_break", "Set how many work periods come before a long break", "cycles"), s.handleSetCyclesBeforeLongBreak)

	updateSettingsTool := mcp.NewTool(
		"update_settings",
		mcp.WithDescription("Rename the current task and set its work and break durations"),
		mcp.WithString("name", mcp.Required(), mcp.Description("New task name")),
		mcp.WithNumber("work_minutes", mcp.Required(), mcp.Description("Work duration in minutes")),
		mcp.WithNumber("break_minutes", mcp.Required(), mcp.Description("Break duration in minutes")),
	)
	s.server.AddTool(updateSettingsTool, s.handleUpdateSettings)

	addTaskTool := mcp.NewTool(
		"add_task",
		mcp.WithDescription("Add a task to the list without switching to it"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Task name, unique")),
		mcp.WithNumber("work_minutes", mcp.Required(), mcp.Description("Work duration in minutes")),
		mcp.WithNumber("break_minutes", mcp.Required(), mcp.Description("Break duration in minutes")),
	)
	s.server.AddTool(addTaskTool, s.handleAddTask)
}

// numberTool describes a tool taking one positive whole number.
func numberTool(name, description, arg string) mcp.Tool {
	return mcp.NewTool(
		name,
		mcp.WithDescription(description),
		mcp.WithNumber(arg, mcp.Required(), mcp.Description("Positive whole number")),
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

// handleGetState handles the get_state tool.
func (s *Server) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.stateResult()
}

// handleListTasks handles the list_tasks tool.
func (s *Server) handleListTasks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings := s.control.Snapshot().Settings

	tasks := make([]map[string]interface{}, 0, len(settings.Tasks))
	for i, task := range settings.Tasks {
		tasks = append(tasks, map[string]interface{}{
			"index":         i,
			"name":          task.Name,
			"work_minutes":  task.WorkDuration,
			"break_minutes": task.BreakDuration,
			"current":       i == settings.CurrentTaskIndex,
		})
	}

	return jsonResult(map[string]interface{}{
		"tasks":                    tasks,
		"total_count":              len(tasks),
		"long_break_minutes":       settings.Pomodoro.LongBreakDuration,
		"cycles_before_long_break": settings.Pomodoro.CyclesBeforeLongBreak,
	})
}

// handleTodayStats handles the today_stats tool.
func (s *Server) handleTodayStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.stats == nil {
		return mcp.NewToolResultError("statistics are not available"), nil
	}
	stats, err := s.stats.Today(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's stats: %w", err)
	}

	return jsonResult(map[string]interface{}{
		"date":          stats.Date.Format(domain.DayLayout),
		"work_time":     stats.WorkTotal(),
		"break_time":    stats.BreakTotal(),
		"work_seconds":  stats.WorkSeconds,
		"break_seconds": stats.BreakSeconds,
	})
}

// handleTogglePause handles the toggle_pause tool.
func (s *Server) handleTogglePause(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := s.control.TogglePause(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle pause: %v", err)), nil
	}
	return s.stateResult()
}

// handleReset handles the reset tool.
func (s *Server) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.control.Reset(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to reset: %v", err)), nil
	}
	return s.stateResult()
}

// handleChangeTask handles the change_task tool.
func (s *Server) handleChangeTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required: " + err.Error()), nil
	}
	if err := s.control.ChangeTask(ctx, name); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to change task: %v", err)), nil
	}
	return s.stateResult()
}

// handleSelectTask handles the select_task tool.
func (s *Server) handleSelectTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	index, err := wholeArg(request, "index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.control.SelectTask(ctx, index); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to select task: %v", err)), nil
	}
	return s.stateResult()
}

// handleSetWorkDuration handles the set_work_duration tool.
func (s *Server) handleSetWorkDuration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.applyNumber(ctx, request, "minutes", "set work duration", s.control.SetWorkDuration)
}

// handleSetBreakDuration handles the set_break_duration tool.
func (s *Server) handleSetBreakDuration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.applyNumber(ctx, request, "minutes", "set break duration", s.control.SetBreakDuration)
}

// handleSetLongBreakDuration handles the set_long_break_duration tool.
func (s *Server) handleSetLongBreakDuration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.applyNumber(ctx, request, "minutes", "set long break duration", s.control.SetLongBreakDuration)
}

// handleSetCyclesBeforeLongBreak handles the set_cycles_before_long_break tool.
func (s *Server) handleSetCyclesBeforeLongBreak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.applyNumber(ctx, request, "cycles", "set cycles before long break", s.control.SetCyclesBeforeLongBreak)
}

func (s *Server) applyNumber(ctx context.Context, request mcp.CallToolRequest, arg, action string, apply func(context.Context, int) error) (*mcp.CallToolResult, error) {
	n, err := positiveArg(request, arg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := apply(ctx, n); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err)), nil
	}
	return s.stateResult()
}

// handleUpdateSettings handles the update_settings tool.
func (s *Server) handleUpdateSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, work, brk, errResult := taskArgs(request)
	if errResult != nil {
		return errResult, nil
	}
	if err := s.control.UpdateSettings(ctx, name, work, brk); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update settings: %v", err)), nil
	}
	return s.stateResult()
}

// handleAddTask handles the add_task tool.
func (s *Server) handleAddTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, work, brk, errResult := taskArgs(request)
	if errResult != nil {
		return errResult, nil
	}
	if err := s.control.AddTask(ctx, name, work, brk); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}
	return s.handleListTasks(ctx, request)
}

func taskArgs(request mcp.CallToolRequest) (string, int, int, *mcp.CallToolResult) {
	name, err := request.RequireString("name")
	if err != nil {
		return "", 0, 0, mcp.NewToolResultError("name is required: " + err.Error())
	}
	work, err := positiveArg(request, "work_minutes")
	if err != nil {
		return "", 0, 0, mcp.NewToolResultError(err.Error())
	}
	brk, err := positiveArg(request, "break_minutes")
	if err != nil {
		return "", 0, 0, mcp.NewToolResultError(err.Error())
	}
	return name, work, brk, nil
}

// stateResult renders the current snapshot.
func (s *Server) stateResult() (*mcp.CallToolResult, error) {
	snap := s.control.Snapshot()
	return jsonResult(map[string]interface{}{
		"period":                   string(snap.State.Period),
		"period_label":             snap.State.Period.Label(),
		"display":                  snap.Display(),
		"elapsed_seconds":          snap.State.ElapsedSeconds,
		"remaining_seconds":        snap.State.RemainingSeconds,
		"paused":                   snap.State.Paused,
		"cycle_count":              snap.State.PomodoroCycleCount,
		"cycles_until_long_break":  snap.CyclesUntilLongBreak(),
		"progress":                 snap.Progress(),
		"task":                     snap.Task.Name,
		"work_minutes":             snap.Task.WorkDuration,
		"break_minutes":            snap.Task.BreakDuration,
		"long_break_minutes":       snap.Settings.Pomodoro.LongBreakDuration,
		"cycles_before_long_break": snap.Settings.Pomodoro.CyclesBeforeLongBreak,
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// wholeArg reads a whole-number argument sent either as a JSON number or
// as a numeric string.
func wholeArg(request mcp.CallToolRequest, name string) (int, error) {
	raw, ok := request.GetArguments()[name]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%s: %w", name, domain.ErrFieldsRequired)
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s: %w", name, domain.ErrInvalidNumber)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", name, domain.ErrInvalidNumber)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%s: %w", name, domain.ErrInvalidNumber)
	}
}

// positiveArg is wholeArg restricted to values above zero.
func positiveArg(request mcp.CallToolRequest, name string) (int, error) {
	n, err := wholeArg(request, name)
	if err != nil {
		return 0, err
	}
	if err := domain.CheckPositive(n); err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}
