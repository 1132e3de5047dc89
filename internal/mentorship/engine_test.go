package mentorship_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"

	"github.com/alumni-connect/connect-api/internal/config"
	"github.com/alumni-connect/connect-api/internal/mentorship"
	"github.com/alumni-connect/connect-api/internal/models"
	"github.com/alumni-connect/connect-api/internal/policy"
	"github.com/alumni-connect/connect-api/internal/store"
)

type testEnv struct {
	Engine  *mentorship.Engine
	Store   *store.Store
	Ctx     context.Context
	Student *models.User
	Mentor  *models.User
	Admin   *models.User
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	cfg := &config.Config{JWTSecret: "test-secret", AccessTokenTTL: 15 * time.Minute}
	s, err := store.New(sqlite.Open(":memory:"), cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	// a single :memory: database exists per connection
	sqlDB, err := s.DB.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	env := testEnv{
		Engine:  mentorship.NewEngine(s),
		Store:   s,
		Ctx:     ctx,
		Student: seedUser(t, s, "USR00STUD1", "student@example.edu", models.RoleStudent),
		Mentor:  seedUser(t, s, "USR00ALUM1", "mentor@example.com", models.RoleAlumni),
		Admin:   seedUser(t, s, "USR00ADMN1", "admin@example.com", models.RoleAdmin),
	}
	return env
}

func seedUser(t *testing.T, s *store.Store, id, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{ID: id, Email: email, Name: id, Role: role, Active: true}
	if err := s.CreateUser(context.Background(), u, &models.Profile{UserID: id}); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return u
}

func TestSubmitCreatesPendingRequest(t *testing.T) {
	env := newTestEnv(t)
	req, err := env.Engine.Submit(env.Ctx, env.Student, env.Mentor.ID, "Career advice", "Could we talk about breaking into data engineering?")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if req.Status != models.RequestPending {
		t.Fatalf("status = %q, want pending", req.Status)
	}
	if req.StudentID != env.Student.ID || req.MentorID != env.Mentor.ID {
		t.Fatalf("request names wrong parties: %+v", req)
	}
}

func TestSubmitValidation(t *testing.T) {
	env := newTestEnv(t)
	tests := []struct {
		name     string
		mentorID string
		subject  string
		message  string
		field    string
	}{
		{"blank subject", env.Mentor.ID, "   ", "hi", "subject"},
		{"blank message", env.Mentor.ID, "Career advice", " \t ", "message"},
		{"unknown mentor", "USR00NOONE", "Career advice", "hi", "mentor_id"},
		{"mentor is a student", env.Student.ID, "Career advice", "hi", "mentor_id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.Engine.Submit(env.Ctx, env.Student, tc.mentorID, tc.subject, tc.message)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tc.field {
				t.Fatalf("field = %q, want %q", verr.Field, tc.field)
			}
		})
	}
}

func TestSubmitRequiresStudentRole(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Engine.Submit(env.Ctx, env.Mentor, env.Mentor.ID, "Career advice", "hi")
	var denied *policy.DeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected denial, got %v", err)
	}
	if denied.Reason != policy.ReasonWrongRole {
		t.Fatalf("reason = %q", denied.Reason)
	}
}

func TestResolveByNamedMentor(t *testing.T) {
	env := newTestEnv(t)
	req, err := env.Engine.Submit(env.Ctx, env.Student, env.Mentor.ID, "Career advice", "hi")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	resolved, err := env.Engine.Resolve(env.Ctx, env.Mentor, req.ID, models.RequestAccepted)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != models.RequestAccepted {
		t.Fatalf("status = %q, want accepted", resolved.Status)
	}
	if resolved.ResolvedAt == nil {
		t.Fatal("resolved_at not set")
	}
}

func TestResolveByOtherAlumniForbidden(t *testing.T) {
	env := newTestEnv(t)
	other := seedUser(t, env.Store, "USR00ALUM2", "other@example.com", models.RoleAlumni)
	req, err := env.Engine.Submit(env.Ctx, env.Student, env.Mentor.ID, "Career advice", "hi")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = env.Engine.Resolve(env.Ctx, other, req.ID, models.RequestAccepted)
	var denied *policy.DeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("expected denial, got %v", err)
	}
	if denied.Reason != policy.ReasonNotOwner {
		t.Fatalf("reason = %q, want not-owner", denied.Reason)
	}
	// status untouched
	got, err := env.Store.GetMentorshipRequestByID(env.Ctx, req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.RequestPending {
		t.Fatalf("status changed to %q", got.Status)
	}
}

func TestResolveByAdminBypassesMentorCheck(t *testing.T) {
	env := newTestEnv(t)
	req, err := env.Engine.Submit(env.Ctx, env.Student, env.Mentor.ID, "Career advice", "hi")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	resolved, err := env.Engine.Resolve(env.Ctx, env.Admin, req.ID, models.RequestRejected)
	if err != nil {
		t.Fatalf("resolve as admin: %v", err)
	}
	if resolved.Status != models.RequestRejected {
		t.Fatalf("status = %q, want rejected", resolved.Status)
	}
}

func TestResolveTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	req, err := env.Engine.Submit(env.Ctx, env.Student, env.Mentor.ID, "Career advice", "hi")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := env.Engine.Resolve(env.Ctx, env.Mentor, req.ID, models.RequestAccepted); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	_, err = env.Engine.Resolve(env.Ctx, env.Mentor, req.ID, models.RequestRejected)
	var conflict *models.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	// detail distinguishes already-accepted from already-rejected
	if conflict.Detail != "request already accepted" {
		t.Fatalf("detail = %q", conflict.Detail)
	}
	got, err := env.Store.GetMentorshipRequestByID(env.Ctx, req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.RequestAccepted {
		t.Fatalf("status = %q, want accepted to stand", got.Status)
	}
}

func TestResolveUnknownRequest(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.Engine.Resolve(env.Ctx, env.Mentor, "no-such-id", models.RequestAccepted)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestConcurrentResolveExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	req, err := env.Engine.Submit(env.Ctx, env.Student, env.Mentor.ID, "Career advice", "hi")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decisions := []models.RequestStatus{models.RequestAccepted, models.RequestRejected}
	results := make([]error, len(decisions))
	var wg sync.WaitGroup
	for i, d := range decisions {
		wg.Add(1)
		go func(i int, d models.RequestStatus) {
			defer wg.Done()
			_, results[i] = env.Engine.Resolve(env.Ctx, env.Mentor, req.ID, d)
		}(i, d)
	}
	wg.Wait()

	var wins, conflicts int
	var winner models.RequestStatus
	for i, err := range results {
		switch {
		case err == nil:
			wins++
			winner = decisions[i]
		default:
			var conflict *models.ConflictError
			if !errors.As(err, &conflict) {
				t.Fatalf("unexpected error: %v", err)
			}
			conflicts++
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Fatalf("wins = %d, conflicts = %d, want 1 and 1", wins, conflicts)
	}
	got, err := env.Store.GetMentorshipRequestByID(env.Ctx, req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != winner {
		t.Fatalf("stored status %q does not match winner %q", got.Status, winner)
	}
}

func TestListForScopingAndOrder(t *testing.T) {
	env := newTestEnv(t)
	student2 := seedUser(t, env.Store, "USR00STUD2", "student2@example.edu", models.RoleStudent)

	// deterministic timestamps, newest last
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	env.Engine.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := env.Engine.Submit(env.Ctx, env.Student, env.Mentor.ID, "Resume review", "hi")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.Engine.Submit(env.Ctx, student2, env.Mentor.ID, "Interview prep", "hi"); err != nil {
		t.Fatal(err)
	}
	third, err := env.Engine.Submit(env.Ctx, env.Student, env.Mentor.ID, "Mock interview", "hi")
	if err != nil {
		t.Fatal(err)
	}

	// student sees only their own, newest first
	got, err := env.Engine.ListFor(env.Ctx, env.Student)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("student sees %d requests, want 2", len(got))
	}
	if got[0].ID != third.ID || got[1].ID != first.ID {
		t.Fatalf("order = [%s %s], want [%s %s]", got[0].ID, got[1].ID, third.ID, first.ID)
	}

	// mentor sees everything naming them
	got, err = env.Engine.ListFor(env.Ctx, env.Mentor)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("mentor sees %d requests, want 3", len(got))
	}

	// admin sees all
	got, err = env.Engine.ListFor(env.Ctx, env.Admin)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("admin sees %d requests, want 3", len(got))
	}
}

func TestListForTiesBrokenByID(t *testing.T) {
	env := newTestEnv(t)
	when := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	env.Engine.Now = func() time.Time { return when }

	a, err := env.Engine.Submit(env.Ctx, env.Student, env.Mentor.ID, "First", "hi")
	if err != nil {
		t.Fatal(err)
	}
	b, err := env.Engine.Submit(env.Ctx, env.Student, env.Mentor.ID, "Second", "hi")
	if err != nil {
		t.Fatal(err)
	}

	got, err := env.Engine.ListFor(env.Ctx, env.Student)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	wantFirst, wantSecond := a.ID, b.ID
	if b.ID > a.ID {
		wantFirst, wantSecond = b.ID, a.ID
	}
	if got[0].ID != wantFirst || got[1].ID != wantSecond {
		t.Fatalf("tie order = [%s %s], want id descending [%s %s]", got[0].ID, got[1].ID, wantFirst, wantSecond)
	}
}
