package officer_test

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"time"

	"github.com/mahfuzhasan/officer-registry/internal/audit"
	officerDatamodel "github.com/mahfuzhasan/officer-registry/internal/core/datamodel/officer"
	"github.com/mahfuzhasan/officer-registry/internal/officer"
	"github.com/mahfuzhasan/officer-registry/internal/privacy"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Officer CSV Export", func() {
	var (
		mockRepo   *MockRepository
		mockAudit  *MockAudit
		mockGrants *MockGrants
		service    *officer.Service

		meta audit.RequestMeta
	)

	parseCSV := func(buf *bytes.Buffer) [][]string {
		rows, err := csv.NewReader(buf).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		return rows
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockAudit = &MockAudit{}
		mockGrants = NewMockGrants()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = officer.NewService(mockRepo, mockAudit, mockGrants, logger)

		dob := time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC)
		Expect(mockRepo.Create(&officerDatamodel.Officer{
			FullName:       "Abdul Karim",
			Designation:    "Deputy Secretary",
			Office:         "Dhaka HQ",
			PersonalMobile: "01712345678",
			PersonalEmail:  "karim@mof.gov.bd",
			NationalID:     "1992837465",
			Salary:         95000,
			DateOfBirth:    &dob,
			IsActive:       true,
		})).To(Succeed())
		Expect(mockRepo.Create(&officerDatamodel.Officer{
			FullName:    "Nasrin Sultana",
			Designation: "Assistant Director",
			Office:      "Sylhet Regional",
			Salary:      60000,
			IsActive:    true,
		})).To(Succeed())

		meta = audit.RequestMeta{RequestID: "export-1"}
	})

	It("should write a header in render order plus id", func() {
		hr := privacy.Actor{ID: 5, Role: privacy.RoleHR}
		var buf bytes.Buffer

		Expect(service.ExportCSV(hr, &buf, meta)).To(Succeed())

		rows := parseCSV(&buf)
		Expect(rows[0]).To(Equal(append([]string{"id"}, privacy.Fields()...)))
	})

	It("should export raw values for hr and audit every restricted cell", func() {
		hr := privacy.Actor{ID: 5, Role: privacy.RoleHR}
		var buf bytes.Buffer

		Expect(service.ExportCSV(hr, &buf, meta)).To(Succeed())

		rows := parseCSV(&buf)
		Expect(rows).To(HaveLen(3))

		Expect(rows[1][1]).To(Equal("Abdul Karim"))
		Expect(rows[1][6]).To(Equal("1992837465"))
		Expect(rows[1][7]).To(Equal("95000"))
		Expect(rows[1][8]).To(Equal("1985-04-12"))

		// Three restricted fields per row across two rows.
		Expect(mockAudit.records).To(HaveLen(6))
	})

	It("should mask restricted cells for a manager", func() {
		manager := privacy.Actor{ID: 2, Role: privacy.RoleManager}
		var buf bytes.Buffer

		Expect(service.ExportCSV(manager, &buf, meta)).To(Succeed())

		rows := parseCSV(&buf)
		Expect(rows[1][6]).To(Equal("∗∗∗∗∗∗∗∗"))
		Expect(rows[1][7]).To(Equal("—"))
	})

	It("should leave redacted fields as empty cells for a viewer", func() {
		viewer := privacy.Actor{ID: 3, Role: privacy.RoleViewer}
		var buf bytes.Buffer

		Expect(service.ExportCSV(viewer, &buf, meta)).To(Succeed())

		rows := parseCSV(&buf)
		Expect(rows[1][6]).To(BeEmpty())
		Expect(rows[1][7]).To(BeEmpty())
		Expect(rows[1][8]).To(BeEmpty())
		Expect(rows[1][4]).To(Equal("017******78"))

		Expect(mockAudit.records).To(BeEmpty())
	})

	It("should abort the export when an audit write fails", func() {
		hr := privacy.Actor{ID: 5, Role: privacy.RoleHR}
		mockAudit.shouldFail = true
		mockAudit.failError = audit.ErrUnavailable
		var buf bytes.Buffer

		err := service.ExportCSV(hr, &buf, meta)
		Expect(err).To(MatchError(audit.ErrUnavailable))
	})
})
