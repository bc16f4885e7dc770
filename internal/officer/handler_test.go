package officer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/mahfuzhasan/officer-registry/internal"
	"github.com/mahfuzhasan/officer-registry/internal/audit"
	"github.com/mahfuzhasan/officer-registry/internal/auth"
	"github.com/mahfuzhasan/officer-registry/internal/officer"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
)

type mockOfficerService struct {
	record       officer.RenderedRecord
	summaries    []officer.Summary
	created      *officer.Officer
	entries      []*audit.Entry
	exportCSV    string
	returnError  error
	capturedDTO  officer.CreateOfficerDTO
	capturedVis  officer.UpdateVisibilityDTO
	capturedMeta audit.RequestMeta
}

func (m *mockOfficerService) GetOfficer(actor privacy.Actor, id int64, meta audit.RequestMeta) (officer.RenderedRecord, error) {
	m.capturedMeta = meta
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.record, nil
}

func (m *mockOfficerService) ListOfficers(limit, offset int) ([]officer.Summary, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.summaries, nil
}

func (m *mockOfficerService) CreateOfficer(actor privacy.Actor, dto officer.CreateOfficerDTO) (*officer.Officer, error) {
	m.capturedDTO = dto
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.created, nil
}

func (m *mockOfficerService) UpdateVisibility(actor privacy.Actor, id int64, dto officer.UpdateVisibilityDTO) error {
	m.capturedVis = dto
	return m.returnError
}

func (m *mockOfficerService) AuditTrail(actor privacy.Actor, subjectID int64, limit int) ([]*audit.Entry, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.entries, nil
}

func (m *mockOfficerService) ExportCSV(actor privacy.Actor, w io.Writer, meta audit.RequestMeta) error {
	if m.returnError != nil {
		return m.returnError
	}
	_, err := io.WriteString(w, m.exportCSV)
	return err
}

var _ = Describe("Officer Handler", func() {
	var (
		mockService *mockOfficerService
		handler     *officer.Handler
		recorder    *httptest.ResponseRecorder
	)

	withUser := func(r *http.Request, role string) *http.Request {
		u := &auth.User{ID: 42, Email: "user@registry.gov.bd", Role: role}
		return r.WithContext(auth.ContextWithUser(r.Context(), u))
	}

	withURLParam := func(r *http.Request, key, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	BeforeEach(func() {
		mockService = &mockOfficerService{}
		handler = officer.NewHandler(mockService)
		recorder = httptest.NewRecorder()
	})

	Describe("GetOfficer", func() {
		It("should return the rendered record", func() {
			mockService.record = officer.RenderedRecord{
				"id":        int64(7),
				"full_name": "Abdul Karim",
				"salary":    "—",
			}

			req := httptest.NewRequest("GET", "/officers/7", nil)
			req = withUser(req, "manager")
			req = withURLParam(req, "id", "7")

			handler.GetOfficer(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body["full_name"]).To(Equal("Abdul Karim"))
			Expect(body["salary"]).To(Equal("—"))
		})

		It("should return 401 without an authenticated user", func() {
			req := httptest.NewRequest("GET", "/officers/7", nil)
			req = withURLParam(req, "id", "7")

			handler.GetOfficer(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusUnauthorized))
		})

		It("should return 400 for a malformed id", func() {
			req := httptest.NewRequest("GET", "/officers/abc", nil)
			req = withUser(req, "manager")
			req = withURLParam(req, "id", "abc")

			handler.GetOfficer(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 404 for an unknown officer", func() {
			mockService.returnError = apperrors.ErrOfficerNotFound

			req := httptest.NewRequest("GET", "/officers/999", nil)
			req = withUser(req, "manager")
			req = withURLParam(req, "id", "999")

			handler.GetOfficer(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusNotFound))
		})

		It("should return a retryable 500 when the audit store is down", func() {
			mockService.returnError = audit.ErrUnavailable

			req := httptest.NewRequest("GET", "/officers/7", nil)
			req = withUser(req, "manager")
			req = withURLParam(req, "id", "7")

			handler.GetOfficer(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(recorder.Body.String()).To(ContainSubstring("retry"))
		})

		It("should pass request metadata to the service", func() {
			mockService.record = officer.RenderedRecord{"id": int64(7)}

			req := httptest.NewRequest("GET", "/officers/7", nil)
			req.Header.Set("User-Agent", "registry-web")
			req = withUser(req, "hr")
			req = withURLParam(req, "id", "7")

			handler.GetOfficer(recorder, req)

			Expect(mockService.capturedMeta.UserAgent).To(Equal("registry-web"))
			Expect(mockService.capturedMeta.IP).NotTo(BeEmpty())
		})
	})

	Describe("ListOfficers", func() {
		It("should return summaries with pagination metadata", func() {
			mockService.summaries = []officer.Summary{
				{ID: 1, FullName: "Abdul Karim", Designation: "Deputy Secretary", Office: "Dhaka HQ"},
			}

			req := httptest.NewRequest("GET", "/officers?limit=10&offset=0", nil)
			req = withUser(req, "viewer")

			handler.ListOfficers(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body["limit"]).To(Equal(float64(10)))
			Expect(body["officers"]).To(HaveLen(1))
		})
	})

	Describe("CreateOfficer", func() {
		It("should create and return 201", func() {
			mockService.created = &officer.Officer{ID: 9, FullName: "Nasrin Sultana"}

			payload := `{"full_name":"Nasrin Sultana","designation":"Assistant Director"}`
			req := httptest.NewRequest("POST", "/officers", strings.NewReader(payload))
			req = withUser(req, "admin")

			handler.CreateOfficer(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusCreated))
			Expect(mockService.capturedDTO.FullName).To(Equal("Nasrin Sultana"))
		})

		It("should return 400 for a malformed body", func() {
			req := httptest.NewRequest("POST", "/officers", bytes.NewReader([]byte("{not json")))
			req = withUser(req, "admin")

			handler.CreateOfficer(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})

		It("should return 403 when the service denies the caller", func() {
			mockService.returnError = apperrors.ErrPermissionDenied

			payload := `{"full_name":"Nasrin Sultana"}`
			req := httptest.NewRequest("POST", "/officers", strings.NewReader(payload))
			req = withUser(req, "hr")

			handler.CreateOfficer(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("UpdateVisibility", func() {
		It("should apply overrides", func() {
			payload := `{"overrides":{"personal_mobile":"restricted"}}`
			req := httptest.NewRequest("PATCH", "/officers/7/visibility", strings.NewReader(payload))
			req = withUser(req, "hr")
			req = withURLParam(req, "id", "7")

			handler.UpdateVisibility(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(mockService.capturedVis.Overrides).To(HaveKeyWithValue("personal_mobile", "restricted"))
		})

		It("should surface validation failures", func() {
			mockService.returnError = apperrors.NewValidationFieldError(
				"overrides", "invalid visibility level: secret", apperrors.ErrCodeInvalidVisibility)

			payload := `{"overrides":{"personal_mobile":"secret"}}`
			req := httptest.NewRequest("PATCH", "/officers/7/visibility", strings.NewReader(payload))
			req = withUser(req, "hr")
			req = withURLParam(req, "id", "7")

			handler.UpdateVisibility(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GetAccessLogs", func() {
		It("should return the trail", func() {
			mockService.entries = []*audit.Entry{
				{AccessorID: 2, SubjectID: 7, FieldName: "salary", Outcome: "MASK"},
			}

			req := httptest.NewRequest("GET", "/officers/7/access-logs", nil)
			req = withUser(req, "admin")
			req = withURLParam(req, "id", "7")

			handler.GetAccessLogs(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			var body map[string]interface{}
			Expect(json.Unmarshal(recorder.Body.Bytes(), &body)).To(Succeed())
			Expect(body["entries"]).To(HaveLen(1))
		})

		It("should map the trail gate to 403", func() {
			mockService.returnError = audit.ErrTrailForbidden

			req := httptest.NewRequest("GET", "/officers/7/access-logs", nil)
			req = withUser(req, "manager")
			req = withURLParam(req, "id", "7")

			handler.GetAccessLogs(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusForbidden))
		})
	})

	Describe("ExportOfficers", func() {
		It("should stream CSV with attachment headers", func() {
			mockService.exportCSV = "id,full_name\n1,Abdul Karim\n"

			req := httptest.NewRequest("GET", "/officers/export", nil)
			req = withUser(req, "hr")

			handler.ExportOfficers(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("text/csv"))
			Expect(recorder.Header().Get("Content-Disposition")).To(ContainSubstring("officers.csv"))
			Expect(recorder.Body.String()).To(ContainSubstring("Abdul Karim"))
		})

		It("should not write a partial body when the export fails", func() {
			mockService.returnError = audit.ErrUnavailable

			req := httptest.NewRequest("GET", "/officers/export", nil)
			req = withUser(req, "hr")

			handler.ExportOfficers(recorder, req)

			Expect(recorder.Code).To(Equal(http.StatusInternalServerError))
			Expect(recorder.Header().Get("Content-Type")).NotTo(Equal("text/csv"))
		})
	})
})
