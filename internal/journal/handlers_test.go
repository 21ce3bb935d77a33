package journal

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func authAs(userID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("user_id", userID)
		}
		if role != "" {
			c.Locals("role", role)
		}
		return c.Next()
	}
}

func TestCreateHandler(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO journal_entries`).
		WithArgs(pgxmock.AnyArg(), "user-1", "morning run", "felt great", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(time.Now(), time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/journal"), NewService(mock), authAs("user-1", "runner"))

	body, _ := json.Marshal(EntryInput{Title: "morning run", Content: "felt great"})
	req := httptest.NewRequest(http.MethodPost, "/journal", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v %v", err, resp.StatusCode)
	}
}

func TestCreateHandlerEmpty(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/journal"), NewService(newMock(t)), authAs("user-1", "runner"))

	body, _ := json.Marshal(EntryInput{})
	req := httptest.NewRequest(http.MethodPost, "/journal", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", resp.StatusCode)
	}
}

func TestExportHandler(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, user_id, title, content, date`).
		WithArgs("user-1").
		WillReturnRows(entryRow("entry-1", "user-1"))

	app := fiber.New()
	RegisterRoutes(app.Group("/journal"), NewService(mock), authAs("user-1", "runner"))

	req := httptest.NewRequest(http.MethodGet, "/journal/export", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("export status: %v %v", err, resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "entry-1") {
		t.Fatalf("expected entry row in csv: %s", data)
	}
}

func TestUserEntriesHandlerRunnerForbidden(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/journal"), NewService(newMock(t)), authAs("user-1", "runner"))

	req := httptest.NewRequest(http.MethodGet, "/journal/user/user-2", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", resp.StatusCode)
	}
}

func TestFeedbackHandler(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, user_id, title, content, date`).
		WithArgs("entry-1").
		WillReturnRows(entryRow("entry-1", "user-1"))
	mock.ExpectExec(`UPDATE journal_entries\s+SET coach_feedback=`).
		WithArgs("entry-1", "nice pacing", "coach-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/journal"), NewService(mock), authAs("coach-1", "coach"))

	body, _ := json.Marshal(FeedbackInput{Feedback: "nice pacing"})
	req := httptest.NewRequest(http.MethodPut, "/journal/entry-1/feedback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("feedback status: %v %v", err, resp.StatusCode)
	}

	var e Entry
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.CoachFeedback != "nice pacing" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestDeleteHandlerNotOwner(t *testing.T) {
	mock := newMock(t)

	mock.ExpectQuery(`SELECT id, user_id, title, content, date`).
		WithArgs("entry-1").
		WillReturnRows(entryRow("entry-1", "user-1"))

	app := fiber.New()
	RegisterRoutes(app.Group("/journal"), NewService(mock), authAs("user-2", "runner"))

	req := httptest.NewRequest(http.MethodDelete, "/journal/entry-1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", resp.StatusCode)
	}
}
