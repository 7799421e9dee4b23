package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/repsync/internal/models"
	"github.com/meltforce/repsync/internal/schedule"
	"github.com/meltforce/repsync/internal/storage"
)

// DataSource abstracts the data layer for MCP tools beyond what the resolver
// itself covers.
type DataSource interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	ListPrograms(ctx context.Context) ([]models.Program, error)
	ScheduleRows(ctx context.Context, programID uuid.UUID) ([]models.ScheduleRow, error)
	AssignmentsByClient(ctx context.Context, clientID uuid.UUID) ([]models.ProgramAssignment, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

// New creates an MCP server exposing the coaching roster, program schedules,
// and the current-workout resolution to assistants.
func New(ds DataSource, resolver *schedule.Resolver, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("RepSync", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("RepSync coaching server. Look up clients, program schedules, and resolve which workout a client should do next."),
	)

	h := &handlers{ds: ds, resolver: resolver, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetCurrentWorkout, Handler: h.getCurrentWorkout},
		server.ServerTool{Tool: toolGetProgramSchedule, Handler: h.getProgramSchedule},
		server.ServerTool{Tool: toolListClients, Handler: h.listClients},
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
		server.ServerTool{Tool: toolGetClientAssignments, Handler: h.getClientAssignments},
	)

	s.AddResources(
		server.ServerResource{Resource: resRoster, Handler: h.roster},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds       DataSource
	resolver *schedule.Resolver
	log      *slog.Logger
}

var resRoster = mcp.NewResource(
	"repsync://roster",
	"Coaching Roster",
	mcp.WithResourceDescription("All clients with their program assignments"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) roster(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	clients, err := h.ds.ListClients(ctx)
	if err != nil {
		return nil, err
	}

	type entry struct {
		Client      models.Client              `json:"client"`
		Assignments []models.ProgramAssignment `json:"assignments"`
	}
	roster := make([]entry, 0, len(clients))
	for _, c := range clients {
		assignments, err := h.ds.AssignmentsByClient(ctx, c.ID)
		if err != nil {
			h.log.Warn("roster: assignment query failed", "client_id", c.ID, "error", err)
		}
		roster = append(roster, entry{Client: c, Assignments: assignments})
	}

	data, err := json.Marshal(roster)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
