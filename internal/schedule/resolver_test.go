package schedule

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/meltforce/repsync/internal/models"
)

// fakeStore is an in-memory Store that records which calls were made, so
// tests can assert the resolver's step ordering and short-circuits.
type fakeStore struct {
	assignments    []models.ProgramAssignment
	assignmentsErr error

	progress    map[uuid.UUID]*models.ProgramProgress
	progressErr error
	createErr   error
	createCalls int

	rows    []models.ScheduleRow
	rowsErr error

	updateErr error

	calls []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{progress: make(map[uuid.UUID]*models.ProgramProgress)}
}

func (f *fakeStore) ActiveAssignments(_ context.Context, _ uuid.UUID) ([]models.ProgramAssignment, error) {
	f.calls = append(f.calls, "ActiveAssignments")
	return f.assignments, f.assignmentsErr
}

func (f *fakeStore) ProgressByAssignment(_ context.Context, assignmentID uuid.UUID) (*models.ProgramProgress, error) {
	f.calls = append(f.calls, "ProgressByAssignment")
	if f.progressErr != nil {
		return nil, f.progressErr
	}
	p, ok := f.progress[assignmentID]
	if !ok {
		return nil, ErrProgressNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreateProgress(_ context.Context, assignmentID uuid.UUID) (*models.ProgramProgress, error) {
	f.calls = append(f.calls, "CreateProgress")
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.progress[assignmentID]; ok {
		return nil, ErrDuplicateProgress
	}
	p := &models.ProgramProgress{
		ID:                  uuid.New(),
		ProgramAssignmentID: assignmentID,
	}
	f.progress[assignmentID] = p
	cp := *p
	return &cp, nil
}

func (f *fakeStore) ScheduleRows(_ context.Context, _ uuid.UUID) ([]models.ScheduleRow, error) {
	f.calls = append(f.calls, "ScheduleRows")
	return f.rows, f.rowsErr
}

func (f *fakeStore) UpdateProgress(_ context.Context, assignmentID uuid.UUID, weekIndex, dayIndex int, completed bool) error {
	f.calls = append(f.calls, "UpdateProgress")
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.progress[assignmentID]
	if !ok {
		return ErrProgressNotFound
	}
	p.CurrentWeekIndex = weekIndex
	p.CurrentDayIndex = dayIndex
	p.IsCompleted = completed
	return nil
}

func (f *fakeStore) called(name string) bool {
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}

func testResolver(store Store) *Resolver {
	return NewResolver(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func activeAssignment(createdAt time.Time) models.ProgramAssignment {
	return models.ProgramAssignment{
		ID:        uuid.New(),
		ProgramID: uuid.New(),
		ClientID:  uuid.New(),
		Status:    models.AssignmentActive,
		CreatedAt: createdAt,
	}
}

func programRow(programID uuid.UUID, week, day int) models.ScheduleRow {
	return models.ScheduleRow{
		ID:         uuid.New(),
		ProgramID:  programID,
		WeekNumber: week,
		DayOfWeek:  day,
		TemplateID: uuid.New(),
	}
}

// TestCurrentWorkoutNoAssignment verifies that a client without an active
// assignment gets no_program and that neither progress nor schedule is
// touched.
func TestCurrentWorkoutNoAssignment(t *testing.T) {
	store := newFakeStore()
	info := testResolver(store).CurrentWorkout(context.Background(), uuid.New())

	if info.Status != StatusNoProgram {
		t.Fatalf("status = %q, want %q", info.Status, StatusNoProgram)
	}
	if info.Message != "No active program assignment" {
		t.Errorf("message = %q, want %q", info.Message, "No active program assignment")
	}
	if store.called("ProgressByAssignment") || store.called("CreateProgress") || store.called("ScheduleRows") {
		t.Errorf("unexpected store calls after empty assignment fetch: %v", store.calls)
	}
}

// TestCurrentWorkoutAssignmentFetchError verifies store failures at the
// assignment step map to no_program without leaking the raw error.
func TestCurrentWorkoutAssignmentFetchError(t *testing.T) {
	store := newFakeStore()
	store.assignmentsErr = context.DeadlineExceeded

	info := testResolver(store).CurrentWorkout(context.Background(), uuid.New())
	if info.Status != StatusNoProgram {
		t.Fatalf("status = %q, want %q", info.Status, StatusNoProgram)
	}
	if info.Message == "" || info.Message == context.DeadlineExceeded.Error() {
		t.Errorf("message = %q, want a generic message", info.Message)
	}
}

// TestCurrentWorkoutInitializesProgress verifies lazy creation: the first
// resolution creates exactly one progress row at (0, 0, false) and the second
// resolution reads it instead of creating another.
func TestCurrentWorkoutInitializesProgress(t *testing.T) {
	store := newFakeStore()
	a := activeAssignment(time.Now())
	store.assignments = []models.ProgramAssignment{a}
	store.rows = []models.ScheduleRow{programRow(a.ProgramID, 1, 1)}

	r := testResolver(store)

	first := r.CurrentWorkout(context.Background(), a.ClientID)
	if first.Status != StatusActive {
		t.Fatalf("first status = %q, want %q", first.Status, StatusActive)
	}
	second := r.CurrentWorkout(context.Background(), a.ClientID)
	if second.Status != StatusActive {
		t.Fatalf("second status = %q, want %q", second.Status, StatusActive)
	}

	if store.createCalls != 1 {
		t.Errorf("CreateProgress called %d times, want 1", store.createCalls)
	}
	p := store.progress[a.ID]
	if p == nil {
		t.Fatal("no progress row created")
	}
	if p.CurrentWeekIndex != 0 || p.CurrentDayIndex != 0 || p.IsCompleted {
		t.Errorf("progress = (%d, %d, %v), want (0, 0, false)",
			p.CurrentWeekIndex, p.CurrentDayIndex, p.IsCompleted)
	}
}

// TestCurrentWorkoutDuplicateCreateRecovers verifies the race hardening: when
// CreateProgress reports a duplicate, the resolver re-fetches the row created
// by the concurrent caller instead of failing.
func TestCurrentWorkoutDuplicateCreateRecovers(t *testing.T) {
	store := newFakeStore()
	a := activeAssignment(time.Now())
	store.assignments = []models.ProgramAssignment{a}
	store.rows = []models.ScheduleRow{programRow(a.ProgramID, 1, 1)}

	// The concurrent winner's row appears between the failed fetch and our
	// insert attempt, so CreateProgress rejects it as a duplicate.
	r := testResolver(&racingStore{fakeStore: store, onCreate: func() {
		if _, ok := store.progress[a.ID]; !ok {
			store.progress[a.ID] = &models.ProgramProgress{
				ID:                  uuid.New(),
				ProgramAssignmentID: a.ID,
			}
		}
	}})

	info := r.CurrentWorkout(context.Background(), a.ClientID)
	if info.Status != StatusActive {
		t.Fatalf("status = %q, want %q (message %q)", info.Status, StatusActive, info.Message)
	}
}

// racingStore wraps fakeStore and runs a hook just before CreateProgress,
// modeling a concurrent resolver winning the insert race.
type racingStore struct {
	*fakeStore
	onCreate func()
}

func (r *racingStore) CreateProgress(ctx context.Context, assignmentID uuid.UUID) (*models.ProgramProgress, error) {
	r.onCreate()
	return r.fakeStore.CreateProgress(ctx, assignmentID)
}

// TestCurrentWorkoutCreateFailure verifies that a failed initialization maps
// to no_program while keeping the assignment context already resolved.
func TestCurrentWorkoutCreateFailure(t *testing.T) {
	store := newFakeStore()
	a := activeAssignment(time.Now())
	store.assignments = []models.ProgramAssignment{a}
	store.createErr = context.DeadlineExceeded

	info := testResolver(store).CurrentWorkout(context.Background(), a.ClientID)
	if info.Status != StatusNoProgram {
		t.Fatalf("status = %q, want %q", info.Status, StatusNoProgram)
	}
	if info.AssignmentID == nil || *info.AssignmentID != a.ID {
		t.Error("assignment ID not carried in partial result")
	}
	if info.ProgramID == nil || *info.ProgramID != a.ProgramID {
		t.Error("program ID not carried in partial result")
	}
}

// TestCurrentWorkoutCompletedShortCircuits verifies that a completed program
// returns immediately without fetching schedule rows.
func TestCurrentWorkoutCompletedShortCircuits(t *testing.T) {
	store := newFakeStore()
	a := activeAssignment(time.Now())
	store.assignments = []models.ProgramAssignment{a}
	store.progress[a.ID] = &models.ProgramProgress{
		ID:                  uuid.New(),
		ProgramAssignmentID: a.ID,
		CurrentWeekIndex:    3,
		CurrentDayIndex:     2,
		IsCompleted:         true,
	}

	info := testResolver(store).CurrentWorkout(context.Background(), a.ClientID)
	if info.Status != StatusCompleted {
		t.Fatalf("status = %q, want %q", info.Status, StatusCompleted)
	}
	if !info.Completed {
		t.Error("is_completed = false, want true")
	}
	if info.WeekIndex != 3 || info.DayIndex != 2 {
		t.Errorf("indices = (%d, %d), want (3, 2)", info.WeekIndex, info.DayIndex)
	}
	if store.called("ScheduleRows") {
		t.Error("ScheduleRows was called for a completed program")
	}
}

// TestCurrentWorkoutEmptySchedule verifies that schedule rows are fetched
// only after the completion check, and that zero rows yields no_schedule with
// the configuration message.
func TestCurrentWorkoutEmptySchedule(t *testing.T) {
	store := newFakeStore()
	a := activeAssignment(time.Now())
	store.assignments = []models.ProgramAssignment{a}
	store.progress[a.ID] = &models.ProgramProgress{ID: uuid.New(), ProgramAssignmentID: a.ID}

	info := testResolver(store).CurrentWorkout(context.Background(), a.ClientID)
	if info.Status != StatusNoSchedule {
		t.Fatalf("status = %q, want %q", info.Status, StatusNoSchedule)
	}
	if info.Message != "No training days configured" {
		t.Errorf("message = %q, want %q", info.Message, "No training days configured")
	}

	// Progress is read before schedule rows.
	wantOrder := []string{"ActiveAssignments", "ProgressByAssignment", "ScheduleRows"}
	if len(store.calls) != len(wantOrder) {
		t.Fatalf("calls = %v, want %v", store.calls, wantOrder)
	}
	for i, want := range wantOrder {
		if store.calls[i] != want {
			t.Errorf("calls[%d] = %q, want %q", i, store.calls[i], want)
		}
	}
}

// TestCurrentWorkoutScheduleFetchError verifies a failing schedule fetch maps
// to no_schedule with a message distinct from the empty-schedule one.
func TestCurrentWorkoutScheduleFetchError(t *testing.T) {
	store := newFakeStore()
	a := activeAssignment(time.Now())
	store.assignments = []models.ProgramAssignment{a}
	store.progress[a.ID] = &models.ProgramProgress{ID: uuid.New(), ProgramAssignmentID: a.ID}
	store.rowsErr = context.DeadlineExceeded

	info := testResolver(store).CurrentWorkout(context.Background(), a.ClientID)
	if info.Status != StatusNoSchedule {
		t.Fatalf("status = %q, want %q", info.Status, StatusNoSchedule)
	}
	if info.Message == "No training days configured" {
		t.Error("fetch-error message should differ from the empty-schedule message")
	}
}

// TestCurrentWorkoutInvalidState verifies out-of-bounds progress indices are
// surfaced, not clamped: week index 5 against a 2-week schedule.
func TestCurrentWorkoutInvalidState(t *testing.T) {
	store := newFakeStore()
	a := activeAssignment(time.Now())
	store.assignments = []models.ProgramAssignment{a}
	store.progress[a.ID] = &models.ProgramProgress{
		ID:                  uuid.New(),
		ProgramAssignmentID: a.ID,
		CurrentWeekIndex:    5,
	}
	store.rows = []models.ScheduleRow{
		programRow(a.ProgramID, 1, 1),
		programRow(a.ProgramID, 2, 1),
	}

	info := testResolver(store).CurrentWorkout(context.Background(), a.ClientID)
	if info.Status != StatusInvalidState {
		t.Fatalf("status = %q, want %q", info.Status, StatusInvalidState)
	}
	if info.TotalWeeks != 2 {
		t.Errorf("total_weeks = %d, want 2", info.TotalWeeks)
	}
	if info.WeekIndex != 5 {
		t.Errorf("week_index = %d, want 5 (offending index echoed back)", info.WeekIndex)
	}
	if info.Message == "" {
		t.Error("message is empty, want diagnostic text")
	}
}

// TestCurrentWorkoutEndToEnd verifies the labeled resolution from the sparse
// schedule scenario: progress (0, 1) over rows (1,1)=A (1,3)=B (2,1)=C lands
// on B as "Week 1 • Day 2".
func TestCurrentWorkoutEndToEnd(t *testing.T) {
	store := newFakeStore()
	a := activeAssignment(time.Now())
	store.assignments = []models.ProgramAssignment{a}
	store.progress[a.ID] = &models.ProgramProgress{
		ID:                  uuid.New(),
		ProgramAssignmentID: a.ID,
		CurrentDayIndex:     1,
	}

	rowA := programRow(a.ProgramID, 1, 1)
	rowB := programRow(a.ProgramID, 1, 3)
	rowC := programRow(a.ProgramID, 2, 1)
	store.rows = []models.ScheduleRow{rowA, rowB, rowC}

	info := testResolver(store).CurrentWorkout(context.Background(), a.ClientID)
	if info.Status != StatusActive {
		t.Fatalf("status = %q, want %q (message %q)", info.Status, StatusActive, info.Message)
	}
	if info.TemplateID == nil || *info.TemplateID != rowB.TemplateID {
		t.Errorf("template = %v, want %v", info.TemplateID, rowB.TemplateID)
	}
	if info.ScheduleRowID == nil || *info.ScheduleRowID != rowB.ID {
		t.Errorf("schedule_row_id = %v, want %v", info.ScheduleRowID, rowB.ID)
	}
	if info.WeekLabel != "Week 1" {
		t.Errorf("week_label = %q, want %q", info.WeekLabel, "Week 1")
	}
	if info.DayLabel != "Day 2" {
		t.Errorf("day_label = %q, want %q (ordinal, not day_of_week)", info.DayLabel, "Day 2")
	}
	if info.PositionLabel != "Week 1 • Day 2" {
		t.Errorf("position_label = %q, want %q", info.PositionLabel, "Week 1 • Day 2")
	}
	if info.DaysInCurrentWeek != 2 {
		t.Errorf("days_in_current_week = %d, want 2", info.DaysInCurrentWeek)
	}
	if info.TotalWeeks != 2 {
		t.Errorf("total_weeks = %d, want 2", info.TotalWeeks)
	}
	if info.ActualWeekNumber != 1 || info.ActualDayOfWeek != 3 {
		t.Errorf("actual position = (%d, %d), want (1, 3)", info.ActualWeekNumber, info.ActualDayOfWeek)
	}
}

// TestCurrentWorkoutMostRecentAssignmentWins verifies that with multiple
// active assignments the newest one (first in store order) is used.
func TestCurrentWorkoutMostRecentAssignmentWins(t *testing.T) {
	store := newFakeStore()
	newer := activeAssignment(time.Now())
	older := activeAssignment(time.Now().Add(-24 * time.Hour))
	older.ClientID = newer.ClientID
	store.assignments = []models.ProgramAssignment{newer, older}
	store.rows = []models.ScheduleRow{programRow(newer.ProgramID, 1, 1)}

	info := testResolver(store).CurrentWorkout(context.Background(), newer.ClientID)
	if info.Status != StatusActive {
		t.Fatalf("status = %q, want %q", info.Status, StatusActive)
	}
	if info.AssignmentID == nil || *info.AssignmentID != newer.ID {
		t.Errorf("assignment = %v, want most recent %v", info.AssignmentID, newer.ID)
	}
}
