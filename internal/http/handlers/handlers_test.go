package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillgraph-backend/internal/domain"
	domainagg "github.com/yungbote/skillgraph-backend/internal/domain/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/platform/ctxutil"
	"github.com/yungbote/skillgraph-backend/internal/services"
)

func newTestEngine(userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			ctx := ctxutil.WithIdentity(c.Request.Context(), &ctxutil.Identity{UserID: userID, Role: role})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var env struct {
		Error map[string]string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return env.Error
}

type stubRecs struct {
	gotID    string
	gotLimit int
	err      error
}

func (s *stubRecs) OpeningsForStudent(_ context.Context, id string, limit int) ([]domain.Recommendation, error) {
	s.gotID, s.gotLimit = id, limit
	if s.err != nil {
		return nil, s.err
	}
	return []domain.Recommendation{{EntityID: "o1", MatchScore: 80}}, nil
}

func (s *stubRecs) MentorsForStudent(_ context.Context, id string, limit int) ([]domain.Recommendation, error) {
	s.gotID, s.gotLimit = id, limit
	return nil, s.err
}

func (s *stubRecs) StudentsForFaculty(_ context.Context, id string, limit int) ([]domain.Recommendation, error) {
	s.gotID, s.gotLimit = id, limit
	return nil, s.err
}

func (s *stubRecs) StudentsForOpening(_ context.Context, facultyID, _ string, limit int) ([]domain.Recommendation, error) {
	s.gotID, s.gotLimit = facultyID, limit
	return nil, s.err
}

func (s *stubRecs) OpeningMatch(_ context.Context, studentID, openingID string) (services.OpeningMatch, error) {
	s.gotID = studentID
	return services.OpeningMatch{OpeningID: openingID, MatchScore: 50, Eligible: true}, s.err
}

func TestRecommendationDefaultsLimitToCaller(t *testing.T) {
	recs := &stubRecs{}
	h := NewRecommendationHandler(recs, 7)
	r := newTestEngine("s1", "student")
	r.GET("/recommendations/openings", h.OpeningsForStudent)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommendations/openings", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if recs.gotID != "s1" || recs.gotLimit != 7 {
		t.Fatalf("service called with id=%q limit=%d", recs.gotID, recs.gotLimit)
	}
	if !strings.Contains(rec.Body.String(), `"entity_id":"o1"`) {
		t.Fatalf("missing result in body: %s", rec.Body.String())
	}
}

func TestRecommendationRejectsBadLimit(t *testing.T) {
	recs := &stubRecs{}
	h := NewRecommendationHandler(recs, 10)
	r := newTestEngine("s1", "student")
	r.GET("/recommendations/mentors", h.MentorsForStudent)

	for _, q := range []string{"limit=-1", "limit=abc"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/recommendations/mentors?"+q, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status got=%d want=%d", q, rec.Code, http.StatusBadRequest)
		}
		if got := decodeError(t, rec)["code"]; got != string(domainagg.CodeValidation) {
			t.Fatalf("%s: code got=%q", q, got)
		}
	}
	if recs.gotID != "" {
		t.Fatalf("service should not be called on bad input")
	}
}

func TestRecommendationMapsForbidden(t *testing.T) {
	recs := &stubRecs{err: domainagg.Forbidden("recommend.students_for_opening", "not your opening")}
	h := NewRecommendationHandler(recs, 10)
	r := newTestEngine("f1", "faculty")
	r.GET("/openings/:id/recommended-students", h.StudentsForOpening)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openings/o9/recommended-students", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusForbidden)
	}
}

type stubApps struct {
	applyErr  error
	gotStatus string
}

func (s *stubApps) Apply(_ context.Context, openingID string) (domain.ApplicationView, error) {
	if s.applyErr != nil {
		return domain.ApplicationView{}, s.applyErr
	}
	return domain.ApplicationView{ApplicationID: "a1", OpeningID: openingID, Status: domain.ApplicationPending}, nil
}

func (s *stubApps) UpdateStatus(_ context.Context, appID, status string) (domain.ApplicationView, error) {
	s.gotStatus = status
	return domain.ApplicationView{ApplicationID: appID}, nil
}

func (s *stubApps) Withdraw(_ context.Context, _ string) (string, error) { return "a1", nil }

func (s *stubApps) ListMine(_ context.Context) ([]domain.ApplicationView, error) { return nil, nil }

func TestApplyCreated(t *testing.T) {
	h := NewApplicationHandler(&stubApps{})
	r := newTestEngine("s1", "student")
	r.POST("/openings/:id/apply", h.Apply)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openings/o1/apply", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusCreated)
	}
	if !strings.Contains(rec.Body.String(), `"application_id":"a1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestApplyIneligibleCarriesReason(t *testing.T) {
	h := NewApplicationHandler(&stubApps{applyErr: domainagg.Ineligible("application.apply", domainagg.ReasonCGPA)})
	r := newTestEngine("s1", "student")
	r.POST("/openings/:id/apply", h.Apply)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openings/o1/apply", nil))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusUnprocessableEntity)
	}
	if got := decodeError(t, rec)["reason"]; got != domainagg.ReasonCGPA {
		t.Fatalf("reason: got=%q want=%q", got, domainagg.ReasonCGPA)
	}
}

func TestUpdateStatusRequiresBody(t *testing.T) {
	apps := &stubApps{}
	h := NewApplicationHandler(apps)
	r := newTestEngine("f1", "faculty")
	r.PUT("/applications/:id/status", h.UpdateStatus)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/applications/a1/status", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/applications/a1/status", strings.NewReader(`{"status":"Accepted"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d want=%d body=%s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if apps.gotStatus != "Accepted" {
		t.Fatalf("status passed through: got=%q", apps.gotStatus)
	}
}

type stubSemantic struct {
	gotQuery  string
	gotFilter services.SearchFilter
	gotK      int
}

func (s *stubSemantic) Embed(context.Context, string) []float32 { return nil }

func (s *stubSemantic) SearchStudents(_ context.Context, q string, f services.SearchFilter, k int) ([]domain.SemanticMatch, error) {
	s.gotQuery, s.gotFilter, s.gotK = q, f, k
	return []domain.SemanticMatch{}, nil
}

func (s *stubSemantic) SearchFaculty(_ context.Context, q string, f services.SearchFilter, k int) ([]domain.SemanticMatch, error) {
	s.gotQuery, s.gotFilter, s.gotK = q, f, k
	return []domain.SemanticMatch{}, nil
}

func TestSearchStudentsParsesFilter(t *testing.T) {
	sem := &stubSemantic{}
	h := NewSearchHandler(sem)
	r := newTestEngine("f1", "faculty")
	r.GET("/search/students", h.Students)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search/students?q=graph+nets&department=CSE&batch=2025&k=3", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if sem.gotQuery != "graph nets" || sem.gotK != 3 || sem.gotFilter.Department != "CSE" {
		t.Fatalf("unexpected call: q=%q k=%d filter=%+v", sem.gotQuery, sem.gotK, sem.gotFilter)
	}
	if sem.gotFilter.Batch == nil || *sem.gotFilter.Batch != 2025 {
		t.Fatalf("batch not parsed: %+v", sem.gotFilter.Batch)
	}
}

type stubNotifications struct {
	services.NotificationService
	marked int64
}

func (s *stubNotifications) MarkAllRead(context.Context, string) (int64, error) { return s.marked, nil }

func TestMarkAllReadReportsCount(t *testing.T) {
	h := NewNotificationHandler(&stubNotifications{marked: 3}, 20)
	r := newTestEngine("s1", "student")
	r.PUT("/notifications/read-all", h.MarkAllRead)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/notifications/read-all", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d", rec.Code)
	}
	var body struct {
		Marked  int64  `json:"marked"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Marked != 3 || body.Message != "Marked 3 notifications as read" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

type stubProfile struct{ called bool }

func (s *stubProfile) ReplaceConcepts(_ context.Context, _ domain.EdgeType, names []string) ([]string, error) {
	s.called = true
	return names, nil
}

func TestReplaceConceptsRejectsUnknownEdge(t *testing.T) {
	p := &stubProfile{}
	h := NewProfileHandler(p)
	r := newTestEngine("s1", "student")
	r.PUT("/profile/concepts/:edge_type", h.ReplaceConcepts)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/profile/concepts/LIKES", strings.NewReader(`{"names":["go"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	if p.called {
		t.Fatalf("service should not be called for unknown edge type")
	}
}
