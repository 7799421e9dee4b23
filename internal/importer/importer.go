package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/meltforce/repsync/internal/models"
)

// Store is the subset of the storage layer the importer writes through.
type Store interface {
	GetTemplateByName(ctx context.Context, name string) (*models.WorkoutTemplate, error)
	CreateTemplate(ctx context.Context, name string, description *string) (*models.WorkoutTemplate, error)
	CreateProgram(ctx context.Context, name string, description *string, durationWeeks int) (*models.Program, error)
	InsertScheduleRow(ctx context.Context, row models.ScheduleRow) (bool, error)
}

// Stats tracks import progress.
type Stats struct {
	FilesProcessed   int
	FilesSkipped     int
	FilesErrored     int
	ProgramsCreated  int
	TemplatesCreated int
	RowsInserted     int
	RowsDuplicated   int
}

// Importer turns coach-authored program spreadsheets into programs, workout
// templates, and schedule rows. Each .xlsx file becomes one program named
// after the file; workout names are deduplicated into shared templates.
type Importer struct {
	db    Store
	state *StateDB
	log   *slog.Logger
	stats Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// imported unconditionally.
func New(db Store, state *StateDB, log *slog.Logger) *Importer {
	return &Importer{db: db, state: state, log: log}
}

// Import processes every .xlsx file in the given directory.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".xlsx") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := imp.importFile(ctx, path, entry.Name()); err != nil {
			imp.log.Error("import failed", "file", entry.Name(), "error", err)
			imp.stats.FilesErrored++
		}
	}

	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path, name string) (err error) {
	if imp.state != nil {
		fi, statErr := os.Stat(path)
		if statErr != nil {
			return fmt.Errorf("stat %s: %w", path, statErr)
		}
		hash, hashErr := HashFile(path)
		if hashErr != nil {
			return fmt.Errorf("hashing %s: %w", path, hashErr)
		}
		done, stateErr := imp.state.IsImported(name, fi.Size(), hash)
		if stateErr != nil {
			return fmt.Errorf("checking import state: %w", stateErr)
		}
		if done {
			imp.log.Info("already imported, skipping", "file", name)
			imp.stats.FilesSkipped++
			return nil
		}
		// Record only successful imports so a broken file is retried next run.
		defer func() {
			if err != nil {
				return
			}
			if markErr := imp.state.MarkImported(name, fi.Size(), hash); markErr != nil {
				imp.log.Warn("recording import state failed", "file", name, "error", markErr)
			}
		}()
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	days, err := ParseWorkbook(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}

	programName := strings.TrimSuffix(name, filepath.Ext(name))
	weeks := distinctWeeks(days)
	program, err := imp.db.CreateProgram(ctx, programName, nil, weeks)
	if err != nil {
		return fmt.Errorf("creating program %q: %w", programName, err)
	}
	imp.stats.ProgramsCreated++

	templates := make(map[string]uuid.UUID)
	for _, day := range days {
		templateID, ok := templates[day.WorkoutName]
		if !ok {
			templateID, err = imp.templateFor(ctx, day.WorkoutName)
			if err != nil {
				return err
			}
			templates[day.WorkoutName] = templateID
		}

		inserted, err := imp.db.InsertScheduleRow(ctx, models.ScheduleRow{
			ID:         uuid.New(),
			ProgramID:  program.ID,
			WeekNumber: day.WeekNumber,
			DayOfWeek:  day.DayOfWeek,
			TemplateID: templateID,
		})
		if err != nil {
			return fmt.Errorf("inserting week %d day %d: %w", day.WeekNumber, day.DayOfWeek, err)
		}
		if inserted {
			imp.stats.RowsInserted++
		} else {
			imp.stats.RowsDuplicated++
		}
	}

	imp.stats.FilesProcessed++
	imp.log.Info("imported program", "file", name,
		"program", programName, "weeks", weeks, "days", len(days))
	return nil
}

// templateFor finds an existing workout template by name or creates one.
func (imp *Importer) templateFor(ctx context.Context, name string) (uuid.UUID, error) {
	existing, err := imp.db.GetTemplateByName(ctx, name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("looking up template %q: %w", name, err)
	}
	if existing != nil {
		return existing.ID, nil
	}

	created, err := imp.db.CreateTemplate(ctx, name, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating template %q: %w", name, err)
	}
	imp.stats.TemplatesCreated++
	return created.ID, nil
}

func distinctWeeks(days []Entry) int {
	weeks := make(map[int]bool)
	for _, d := range days {
		weeks[d.WeekNumber] = true
	}
	return len(weeks)
}
