package controllers_test

import (
	"net/http"
	"testing"

	"golffit-backend/config"
	"golffit-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func createFitting(t *testing.T, token string, body gin.H) models.Fitting {
	t.Helper()
	w := doRequest(t, "POST", "/fittings/request", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var fitting models.Fitting
	decodeBody(t, w, &fitting)
	return fitting
}

func TestCreateSwingAnalysisRequest(t *testing.T) {
	resetDB(t)
	_, token := createUser(t, models.RoleConsumer)

	// Swing analysis needs neither time nor club type
	fitting := createFitting(t, token, gin.H{
		"type":     models.TypeSwingAnalysis,
		"date":     "2026-09-10T00:00:00Z",
		"comments": "Slice off the tee",
	})

	if fitting.Status != models.StatusRequestSubmitted {
		t.Errorf("expected status %q, got %q", models.StatusRequestSubmitted, fitting.Status)
	}
	if len(fitting.StatusHistory) != 1 {
		t.Fatalf("expected exactly one history entry, got %d", len(fitting.StatusHistory))
	}
	if fitting.StatusHistory[0].Status != models.StatusRequestSubmitted {
		t.Errorf("history entry status %q does not match", fitting.StatusHistory[0].Status)
	}
}

func TestCreateClubFittingRequiresTimeAndClubType(t *testing.T) {
	resetDB(t)
	_, token := createUser(t, models.RoleConsumer)

	cases := []struct {
		name string
		body gin.H
	}{
		{"missing both", gin.H{"type": models.TypeClubFitting, "date": "2026-09-10T00:00:00Z"}},
		{"missing clubType", gin.H{"type": models.TypeClubFitting, "date": "2026-09-10T00:00:00Z", "time": "10:00"}},
		{"missing time", gin.H{"type": models.TypeClubFitting, "date": "2026-09-10T00:00:00Z", "clubType": "Driver"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, "POST", "/fittings/request", token, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
		})
	}

	// Complete club fitting request succeeds
	fitting := createFitting(t, token, gin.H{
		"type":     models.TypeClubFitting,
		"date":     "2026-09-10T00:00:00Z",
		"time":     "10:00",
		"clubType": "Driver",
	})
	if fitting.ClubType != "Driver" {
		t.Errorf("expected club type Driver, got %q", fitting.ClubType)
	}
}

func TestCreateFittingRejectsUnknownType(t *testing.T) {
	resetDB(t)
	_, token := createUser(t, models.RoleConsumer)

	w := doRequest(t, "POST", "/fittings/request", token, gin.H{
		"type": "putting-lesson",
		"date": "2026-09-10T00:00:00Z",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown type, got %d", w.Code)
	}
}

func TestAdminCreatesFittingForCustomer(t *testing.T) {
	resetDB(t)
	customer, _ := createUser(t, models.RoleConsumer)
	_, adminToken := createUser(t, models.RoleAdmin)

	fitting := createFitting(t, adminToken, gin.H{
		"type":       models.TypeSwingAnalysis,
		"date":       "2026-09-10T00:00:00Z",
		"customerId": customer.ID,
	})
	if fitting.CustomerID != customer.ID {
		t.Errorf("expected fitting owned by %s, got %s", customer.ID, fitting.CustomerID)
	}
}

func TestConsumerCannotCreateFittingForOthers(t *testing.T) {
	resetDB(t)
	other, _ := createUser(t, models.RoleConsumer)
	_, token := createUser(t, models.RoleConsumer)

	w := doRequest(t, "POST", "/fittings/request", token, gin.H{
		"type":       models.TypeSwingAnalysis,
		"date":       "2026-09-10T00:00:00Z",
		"customerId": other.ID,
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestUpdateStatusKeepsHistoryInSync(t *testing.T) {
	resetDB(t)
	_, consumerToken := createUser(t, models.RoleConsumer)
	_, adminToken := createUser(t, models.RoleAdmin)

	fitting := createFitting(t, consumerToken, gin.H{
		"type": models.TypeSwingAnalysis,
		"date": "2026-09-10T00:00:00Z",
	})

	for _, status := range []string{models.StatusBeingPrepped, models.StatusScheduled} {
		w := doRequest(t, "PUT", "/fittings/"+fitting.ID.String()+"/status", adminToken, gin.H{"status": status})
		if w.Code != http.StatusOK {
			t.Fatalf("status update to %q failed: %d %s", status, w.Code, w.Body.String())
		}

		var updated models.Fitting
		decodeBody(t, w, &updated)
		if updated.Status != status {
			t.Errorf("expected status %q, got %q", status, updated.Status)
		}
		last := updated.StatusHistory[len(updated.StatusHistory)-1]
		if last.Status != updated.Status {
			t.Errorf("history tail %q does not match status %q", last.Status, updated.Status)
		}
	}

	// History is append-only: 1 create + 2 updates
	var count int64
	config.DB.Model(&models.FittingStatusEntry{}).Where("fitting_id = ?", fitting.ID).Count(&count)
	if count != 3 {
		t.Errorf("expected 3 history entries, got %d", count)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	resetDB(t)
	_, consumerToken := createUser(t, models.RoleConsumer)
	_, adminToken := createUser(t, models.RoleAdmin)

	fitting := createFitting(t, consumerToken, gin.H{
		"type": models.TypeSwingAnalysis,
		"date": "2026-09-10T00:00:00Z",
	})

	path := "/fittings/" + fitting.ID.String() + "/status"

	if w := doRequest(t, "PUT", path, adminToken, gin.H{"status": "Lost In The Rough"}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", w.Code)
	}

	// Consumers cannot drive the status machine
	if w := doRequest(t, "PUT", path, consumerToken, gin.H{"status": models.StatusScheduled}); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for consumer, got %d", w.Code)
	}

	// Terminal statuses freeze the fitting
	doRequest(t, "PUT", path, adminToken, gin.H{"status": models.StatusCompleted})
	if w := doRequest(t, "PUT", path, adminToken, gin.H{"status": models.StatusBeingPrepped}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when updating a completed fitting, got %d", w.Code)
	}
}

func TestUpdateMeasurements(t *testing.T) {
	resetDB(t)
	_, consumerToken := createUser(t, models.RoleConsumer)
	_, adminToken := createUser(t, models.RoleAdmin)

	swing := createFitting(t, consumerToken, gin.H{
		"type": models.TypeSwingAnalysis,
		"date": "2026-09-10T00:00:00Z",
	})
	club := createFitting(t, consumerToken, gin.H{
		"type":     models.TypeClubFitting,
		"date":     "2026-09-11T00:00:00Z",
		"time":     "10:00",
		"clubType": "Driver",
	})

	payload := gin.H{
		"swingSpeed":          101.5,
		"launchAngle":         12.3,
		"spinRate":            2600,
		"clubRecommendations": []string{"Stiff shaft driver", "Forged irons"},
	}

	// Rejected for club fittings
	w := doRequest(t, "PUT", "/fittings/"+club.ID.String()+"/measurements", adminToken, payload)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for club fitting, got %d", w.Code)
	}

	// Accepted and idempotent for swing analyses
	for i := 0; i < 2; i++ {
		w = doRequest(t, "PUT", "/fittings/"+swing.ID.String()+"/measurements", adminToken, payload)
		if w.Code != http.StatusOK {
			t.Fatalf("measurement update %d failed: %d %s", i, w.Code, w.Body.String())
		}
	}

	var stored models.Fitting
	config.DB.First(&stored, "id = ?", swing.ID)
	if stored.SwingSpeed != 101.5 || stored.SpinRate != 2600 {
		t.Errorf("measurements not stored: %+v", stored)
	}
	if len(stored.ClubRecommendations) != 2 {
		t.Errorf("expected 2 recommendations, got %v", stored.ClubRecommendations)
	}
}

// A consumer probing another customer's fitting gets the same 404 as a
// nonexistent ID, so resource existence is never confirmed.
func TestForeignFittingMaskedAsNotFound(t *testing.T) {
	resetDB(t)
	_, ownerToken := createUser(t, models.RoleConsumer)
	_, strangerToken := createUser(t, models.RoleConsumer)

	fitting := createFitting(t, ownerToken, gin.H{
		"type": models.TypeSwingAnalysis,
		"date": "2026-09-10T00:00:00Z",
	})

	foreign := doRequest(t, "GET", "/fittings/"+fitting.ID.String(), strangerToken, nil)
	missing := doRequest(t, "GET", "/fittings/"+uuid.NewString(), strangerToken, nil)

	if foreign.Code != http.StatusNotFound || missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for both, got %d and %d", foreign.Code, missing.Code)
	}
	if foreign.Body.String() != missing.Body.String() {
		t.Errorf("masked 404 differs from real 404: %q vs %q",
			foreign.Body.String(), missing.Body.String())
	}

	// The owner and an admin both see it
	if w := doRequest(t, "GET", "/fittings/"+fitting.ID.String(), ownerToken, nil); w.Code != http.StatusOK {
		t.Errorf("owner expected 200, got %d", w.Code)
	}
	_, adminToken := createUser(t, models.RoleAdmin)
	if w := doRequest(t, "GET", "/fittings/"+fitting.ID.String(), adminToken, nil); w.Code != http.StatusOK {
		t.Errorf("admin expected 200, got %d", w.Code)
	}
}

func TestListFittings(t *testing.T) {
	resetDB(t)
	_, aliceToken := createUser(t, models.RoleConsumer)
	_, bobToken := createUser(t, models.RoleConsumer)
	_, adminToken := createUser(t, models.RoleAdmin)

	createFitting(t, aliceToken, gin.H{"type": models.TypeSwingAnalysis, "date": "2026-09-10T00:00:00Z"})
	createFitting(t, aliceToken, gin.H{"type": models.TypeClubFitting, "date": "2026-09-20T00:00:00Z", "time": "09:00", "clubType": "Irons"})
	createFitting(t, bobToken, gin.H{"type": models.TypeSwingAnalysis, "date": "2026-09-15T00:00:00Z"})

	// my-fittings: only the actor's, newest scheduled date first
	w := doRequest(t, "GET", "/fittings/my-fittings", aliceToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var mine []models.Fitting
	decodeBody(t, w, &mine)
	if len(mine) != 2 {
		t.Fatalf("expected 2 fittings, got %d", len(mine))
	}
	if !mine[0].ScheduledDate.After(mine[1].ScheduledDate) {
		t.Errorf("fittings not sorted by scheduled date descending")
	}

	// Type filter
	w = doRequest(t, "GET", "/fittings/my-fittings?type=club-fitting", aliceToken, nil)
	decodeBody(t, w, &mine)
	if len(mine) != 1 || mine[0].Type != models.TypeClubFitting {
		t.Errorf("type filter failed: %+v", mine)
	}

	// all: admin sees every fitting, consumers are refused
	w = doRequest(t, "GET", "/fittings/all", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
	var all []models.Fitting
	decodeBody(t, w, &all)
	if len(all) != 3 {
		t.Errorf("expected 3 fittings for admin, got %d", len(all))
	}

	if w := doRequest(t, "GET", "/fittings/all", aliceToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for consumer on /fittings/all, got %d", w.Code)
	}
}

func TestCancelFitting(t *testing.T) {
	resetDB(t)
	_, ownerToken := createUser(t, models.RoleConsumer)
	_, strangerToken := createUser(t, models.RoleConsumer)

	fitting := createFitting(t, ownerToken, gin.H{
		"type": models.TypeSwingAnalysis,
		"date": "2026-09-10T00:00:00Z",
	})
	path := "/fittings/" + fitting.ID.String() + "/cancel"

	// Strangers get the masked 404
	if w := doRequest(t, "PUT", path, strangerToken, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for stranger, got %d", w.Code)
	}

	w := doRequest(t, "PUT", path, ownerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel failed: %d %s", w.Code, w.Body.String())
	}
	var canceled models.Fitting
	decodeBody(t, w, &canceled)
	if canceled.Status != models.StatusCanceled {
		t.Errorf("expected %q, got %q", models.StatusCanceled, canceled.Status)
	}
	last := canceled.StatusHistory[len(canceled.StatusHistory)-1]
	if last.Status != models.StatusCanceled {
		t.Errorf("history tail %q does not match canceled status", last.Status)
	}

	// Canceling twice is rejected
	if w := doRequest(t, "PUT", path, ownerToken, nil); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for double cancel, got %d", w.Code)
	}
}

func TestUpdateFittingFields(t *testing.T) {
	resetDB(t)
	_, consumerToken := createUser(t, models.RoleConsumer)
	_, adminToken := createUser(t, models.RoleAdmin)

	fitting := createFitting(t, consumerToken, gin.H{
		"type":     models.TypeClubFitting,
		"date":     "2026-09-10T00:00:00Z",
		"time":     "10:00",
		"clubType": "Driver",
	})
	path := "/fittings/" + fitting.ID.String()

	// Field edits are admin-only; consumers get the masked shape of the
	// admin gate, which for role failures is 403
	if w := doRequest(t, "PUT", path, consumerToken, gin.H{"comments": "earlier please"}); w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for consumer, got %d", w.Code)
	}

	w := doRequest(t, "PUT", path, adminToken, gin.H{
		"time":     "14:30",
		"comments": "moved to afternoon",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", w.Code, w.Body.String())
	}
	var updated models.Fitting
	decodeBody(t, w, &updated)
	if updated.Time != "14:30" || updated.Comments != "moved to afternoon" {
		t.Errorf("fields not updated: %+v", updated)
	}

	// Stripping required club fitting attributes is rejected
	if w := doRequest(t, "PUT", path, adminToken, gin.H{"clubType": ""}); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 when clearing clubType, got %d", w.Code)
	}
}
