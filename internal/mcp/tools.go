package mcp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

func requireUUID(req mcp.CallToolRequest, name string) (uuid.UUID, error) {
	raw, err := req.RequireString(name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s parameter is required", name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID", name)
	}
	return id, nil
}

// --- Tool definitions ---

var toolGetCurrentWorkout = mcp.NewTool("get_current_workout",
	mcp.WithDescription("Resolve which workout a client should do next. Returns a status (active, completed, no_program, no_schedule, invalid_state) plus the workout template, schedule position, and display labels when active."),
	mcp.WithString("client_id", mcp.Required(), mcp.Description("Client UUID")),
)

var toolGetProgramSchedule = mcp.NewTool("get_program_schedule",
	mcp.WithDescription("List every scheduled training day of a program: week number, day of week, and workout template reference. Weeks and days may be sparse."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
)

var toolListClients = mcp.NewTool("list_clients",
	mcp.WithDescription("List all coached clients."),
)

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List all training programs with their duration in weeks."),
)

var toolGetClientAssignments = mcp.NewTool("get_client_assignments",
	mcp.WithDescription("List a client's program assignments with lifecycle status (active, paused, completed), newest first."),
	mcp.WithString("client_id", mcp.Required(), mcp.Description("Client UUID")),
)

// --- Tool handlers ---

func (h *handlers) getCurrentWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := requireUUID(req, "client_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info := h.resolver.CurrentWorkout(ctx, clientID)
	result, err := mcp.NewToolResultJSON(info)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgramSchedule(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programID, err := requireUUID(req, "program_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rows, err := h.ds.ScheduleRows(ctx, programID)
	if err != nil {
		h.log.Error("mcp get_program_schedule", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listClients(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clients, err := h.ds.ListClients(ctx)
	if err != nil {
		h.log.Error("mcp list_clients", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(clients)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listPrograms(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programs, err := h.ds.ListPrograms(ctx)
	if err != nil {
		h.log.Error("mcp list_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(programs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getClientAssignments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := requireUUID(req, "client_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	assignments, err := h.ds.AssignmentsByClient(ctx, clientID)
	if err != nil {
		h.log.Error("mcp get_client_assignments", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(assignments)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
