package v1_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/alumni-connect/connect-api/internal/models"
)

func createScholarship(t *testing.T, env apiEnv, token string, body map[string]interface{}) string {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/scholarships", token, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create scholarship = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	data, _ := resp.Data.(map[string]interface{})
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatal("created scholarship has no id")
	}
	return id
}

func TestScholarshipCreateAndRoleGate(t *testing.T) {
	env := newAPIEnv(t)
	mentorTok := env.tokenFor(t, env.Mentor)
	studentTok := env.tokenFor(t, env.Student)

	createScholarship(t, env, mentorTok, map[string]interface{}{
		"title":  "Merit Award",
		"amount": 50000,
	})

	rec := env.do(t, http.MethodPost, "/scholarships", studentTok, map[string]interface{}{
		"title":  "Nope",
		"amount": 1000,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student create = %d, want 403", rec.Code)
	}

	// amount is mandatory and must be positive
	rec = env.do(t, http.MethodPost, "/scholarships", mentorTok, map[string]interface{}{
		"title": "Free Money",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing amount = %d, want 422", rec.Code)
	}
}

func TestScholarshipEligibilityFilter(t *testing.T) {
	env := newAPIEnv(t)
	mentorTok := env.tokenFor(t, env.Mentor)
	studentTok := env.tokenFor(t, env.Student)

	createScholarship(t, env, mentorTok, map[string]interface{}{
		"title":            "High Achievers",
		"amount":           100000,
		"cgpa_requirement": 8.5,
	})
	openID := createScholarship(t, env, mentorTok, map[string]interface{}{
		"title":  "Open Grant",
		"amount": 20000,
	})

	if err := env.Store.UpdateProfileFields(context.Background(), env.Student.ID, map[string]interface{}{
		"cgpa": 7.5, "category": "general",
	}); err != nil {
		t.Fatal(err)
	}

	rec := env.do(t, http.MethodGet, "/scholarships", studentTok, nil)
	listed := decodeEnvelope(t, rec)
	if items, _ := listed.Data.([]interface{}); len(items) != 2 {
		t.Fatalf("full list has %d scholarships, want 2", len(items))
	}

	rec = env.do(t, http.MethodGet, "/scholarships/eligible", studentTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("eligible = %d: %s", rec.Code, rec.Body.String())
	}
	listed = decodeEnvelope(t, rec)
	items, _ := listed.Data.([]interface{})
	if len(items) != 1 {
		t.Fatalf("eligible list has %d scholarships, want 1", len(items))
	}
	entry, _ := items[0].(map[string]interface{})
	if entry["id"] != openID {
		t.Fatalf("eligible scholarship = %v, want %s", entry["id"], openID)
	}

	// eligibility is a student view
	rec = env.do(t, http.MethodGet, "/scholarships/eligible", mentorTok, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("alumni eligible = %d, want 403", rec.Code)
	}
}

func TestScholarshipApplicationLifecycle(t *testing.T) {
	env := newAPIEnv(t)
	mentorTok := env.tokenFor(t, env.Mentor)
	studentTok := env.tokenFor(t, env.Student)
	other := seedAPIUser(t, env.Store, "USR00ALUM2", "other@example.com", models.RoleAlumni)
	otherTok := env.tokenFor(t, other)

	schID := createScholarship(t, env, mentorTok, map[string]interface{}{
		"title":  "Merit Award",
		"amount": 50000,
	})

	rec := env.do(t, http.MethodPost, "/scholarships/"+schID+"/apply", studentTok, map[string]string{
		"cover_letter": "please consider me",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("apply = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	data, _ := resp.Data.(map[string]interface{})
	appID, _ := data["id"].(string)
	if status, _ := data["status"].(string); status != "submitted" {
		t.Fatalf("status = %q, want submitted", status)
	}

	// one submission per student per scholarship
	rec = env.do(t, http.MethodPost, "/scholarships/"+schID+"/apply", studentTok, map[string]string{})
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate apply = %d, want 409", rec.Code)
	}

	// alumni cannot apply
	rec = env.do(t, http.MethodPost, "/scholarships/"+schID+"/apply", otherTok, map[string]string{})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("alumni apply = %d, want 403", rec.Code)
	}

	// only the creator (or admin) reads the submissions
	rec = env.do(t, http.MethodGet, "/scholarships/"+schID+"/applications", otherTok, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("other alumni views applications = %d, want 403", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/scholarships/"+schID+"/applications", mentorTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner views applications = %d: %s", rec.Code, rec.Body.String())
	}
	listed := decodeEnvelope(t, rec)
	if items, _ := listed.Data.([]interface{}); len(items) != 1 {
		t.Fatalf("owner sees %d applications, want 1", len(items))
	}

	// review workflow: owner moves the application along
	rec = env.do(t, http.MethodPut, "/scholarships/applications/"+appID+"/status", mentorTok, map[string]string{
		"status": "under_review",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("under_review = %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodPut, "/scholarships/applications/"+appID+"/status", mentorTok, map[string]string{
		"status": "approved",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("approved = %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPut, "/scholarships/applications/"+appID+"/status", otherTok, map[string]string{
		"status": "rejected",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("other alumni reviews = %d, want 403", rec.Code)
	}
	rec = env.do(t, http.MethodPut, "/scholarships/applications/"+appID+"/status", mentorTok, map[string]string{
		"status": "shortlisted",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad status = %d, want 422", rec.Code)
	}

	// the student sees the outcome in their own list
	rec = env.do(t, http.MethodGet, "/scholarships/applications/my", studentTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("my applications = %d: %s", rec.Code, rec.Body.String())
	}
	listed = decodeEnvelope(t, rec)
	items, _ := listed.Data.([]interface{})
	if len(items) != 1 {
		t.Fatalf("student has %d applications, want 1", len(items))
	}
	entry, _ := items[0].(map[string]interface{})
	if entry["status"] != "approved" {
		t.Fatalf("status = %v, want approved", entry["status"])
	}
}

func TestScholarshipUpdateAndDeactivate(t *testing.T) {
	env := newAPIEnv(t)
	mentorTok := env.tokenFor(t, env.Mentor)
	studentTok := env.tokenFor(t, env.Student)
	other := seedAPIUser(t, env.Store, "USR00ALUM2", "other@example.com", models.RoleAlumni)
	otherTok := env.tokenFor(t, other)

	schID := createScholarship(t, env, mentorTok, map[string]interface{}{
		"title":  "Merit Award",
		"amount": 50000,
	})

	rec := env.do(t, http.MethodPut, "/scholarships/"+schID, otherTok, map[string]interface{}{
		"amount": 1,
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("other alumni update = %d, want 403", rec.Code)
	}

	rec = env.do(t, http.MethodPut, "/scholarships/"+schID, mentorTok, map[string]interface{}{
		"amount":   75000,
		"deadline": "2026-12-31",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update = %d: %s", rec.Code, rec.Body.String())
	}
	resp := decodeEnvelope(t, rec)
	data, _ := resp.Data.(map[string]interface{})
	if amt, _ := data["amount"].(float64); amt != 75000 {
		t.Fatalf("amount = %v, want 75000", data["amount"])
	}

	rec = env.do(t, http.MethodDelete, "/scholarships/"+schID, mentorTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate = %d: %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodGet, "/scholarships", studentTok, nil)
	listed := decodeEnvelope(t, rec)
	if items, _ := listed.Data.([]interface{}); len(items) != 0 {
		t.Fatalf("deactivated scholarship still listed: %d", len(items))
	}
	// still readable by id
	rec = env.do(t, http.MethodGet, "/scholarships/"+schID, studentTok, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get deactivated = %d", rec.Code)
	}

	// no new applications once inactive
	rec = env.do(t, http.MethodPost, "/scholarships/"+schID+"/apply", studentTok, map[string]string{})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("apply to inactive = %d, want 422", rec.Code)
	}
}
