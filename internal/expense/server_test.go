package expense

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gastoscan/gastoscan/internal/extract"
)

// multipartUpload builds a multipart request body with one file part
func multipartUpload(filename string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	Expect(err).NotTo(HaveOccurred())
	_, err = part.Write(content)
	Expect(err).NotTo(HaveOccurred())
	Expect(writer.Close()).NotTo(HaveOccurred())
	return body, writer.FormDataContentType()
}

var _ = Describe("Server", func() {
	var (
		db      *mockDB
		store   *mockStorage
		backend *mockBackend
		service *Service
		server  *Server
		rec     *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		db = newMockDB()
		store = newMockStorage()
		backend = &mockBackend{
			text: "SHELL GAS STATION\nDate: 10/05/2025\nTotal: $49.50",
		}
		clock := &fixedTimeSource{now: serviceTestNow}
		service = NewServiceWithDeps(
			db,
			backend,
			store,
			extract.NewPipelineWithDeps(clock),
			&mockIDGenerator{ids: []string{"job-1", "expense-1"}},
			clock,
		)
		server = NewServer(service, BasicAuth{})
		rec = httptest.NewRecorder()
	})

	Describe("POST /api/receipts", func() {
		When("a file is uploaded", func() {
			BeforeEach(func() {
				body, contentType := multipartUpload("receipt.jpg", []byte("image-bytes"))
				req := httptest.NewRequest("POST", "/api/receipts", body)
				req.Header.Set("Content-Type", contentType)
				server.ServeHTTP(rec, req)
			})

			It("should return 201 with the job", func() {
				Expect(rec.Code).To(Equal(http.StatusCreated))

				var job ExtractionJob
				Expect(json.Unmarshal(rec.Body.Bytes(), &job)).To(Succeed())
				Expect(job.ID).To(Equal("job-1"))
				Expect(job.Extracted.Provider).To(Equal("SHELL"))
				Expect(job.Confidence).To(BeNumerically("~", 0.9, 1e-9))
			})
		})

		When("no file is provided", func() {
			BeforeEach(func() {
				body := &bytes.Buffer{}
				writer := multipart.NewWriter(body)
				Expect(writer.Close()).NotTo(HaveOccurred())
				req := httptest.NewRequest("POST", "/api/receipts", body)
				req.Header.Set("Content-Type", writer.FormDataContentType())
				server.ServeHTTP(rec, req)
			})

			It("should return 400", func() {
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
			})
		})

		When("recognition fails", func() {
			BeforeEach(func() {
				backend.recognizeErr = errors.New("ocr exploded")
				body, contentType := multipartUpload("receipt.jpg", []byte("image-bytes"))
				req := httptest.NewRequest("POST", "/api/receipts", body)
				req.Header.Set("Content-Type", contentType)
				server.ServeHTTP(rec, req)
			})

			It("should return 400 with a JSON error", func() {
				Expect(rec.Code).To(Equal(http.StatusBadRequest))

				var resp map[string]string
				Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
				Expect(resp).To(HaveKey("error"))
			})
		})
	})

	Describe("GET /api/jobs/{id}", func() {
		When("the job exists", func() {
			BeforeEach(func() {
				_, err := service.ProcessReceipt("receipt.jpg", []byte("image-bytes"), "image/jpeg")
				Expect(err).NotTo(HaveOccurred())
				req := httptest.NewRequest("GET", "/api/jobs/job-1", nil)
				server.ServeHTTP(rec, req)
			})

			It("should return the job", func() {
				Expect(rec.Code).To(Equal(http.StatusOK))

				var job ExtractionJob
				Expect(json.Unmarshal(rec.Body.Bytes(), &job)).To(Succeed())
				Expect(job.Status).To(Equal(JobStatusCompleted))
			})
		})

		When("the job does not exist", func() {
			BeforeEach(func() {
				req := httptest.NewRequest("GET", "/api/jobs/missing", nil)
				server.ServeHTTP(rec, req)
			})

			It("should return 404", func() {
				Expect(rec.Code).To(Equal(http.StatusNotFound))
			})
		})
	})

	Describe("POST /api/jobs/{id}/confirm", func() {
		BeforeEach(func() {
			_, err := service.ProcessReceipt("receipt.jpg", []byte("image-bytes"), "image/jpeg")
			Expect(err).NotTo(HaveOccurred())
		})

		When("confirming without overrides", func() {
			BeforeEach(func() {
				req := httptest.NewRequest("POST", "/api/jobs/job-1/confirm", nil)
				server.ServeHTTP(rec, req)
			})

			It("should return 201 with the expense", func() {
				Expect(rec.Code).To(Equal(http.StatusCreated))

				var expense Expense
				Expect(json.Unmarshal(rec.Body.Bytes(), &expense)).To(Succeed())
				Expect(expense.Provider).To(Equal("SHELL"))
				Expect(expense.Category).To(Equal(extract.CategoryCombustible))
			})
		})

		When("confirming with overrides", func() {
			BeforeEach(func() {
				body := bytes.NewBufferString(`{"provider":"SHELL MADRID","category":"TRANSPORTE"}`)
				req := httptest.NewRequest("POST", "/api/jobs/job-1/confirm", body)
				req.Header.Set("Content-Type", "application/json")
				server.ServeHTTP(rec, req)
			})

			It("should apply them", func() {
				Expect(rec.Code).To(Equal(http.StatusCreated))

				var expense Expense
				Expect(json.Unmarshal(rec.Body.Bytes(), &expense)).To(Succeed())
				Expect(expense.Provider).To(Equal("SHELL MADRID"))
				Expect(expense.Category).To(Equal(extract.CategoryTransporte))
			})
		})

		When("the body is invalid JSON", func() {
			BeforeEach(func() {
				body := bytes.NewBufferString(`{not json`)
				req := httptest.NewRequest("POST", "/api/jobs/job-1/confirm", body)
				server.ServeHTTP(rec, req)
			})

			It("should return 400", func() {
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Describe("GET /api/expenses", func() {
		When("no expenses exist", func() {
			BeforeEach(func() {
				req := httptest.NewRequest("GET", "/api/expenses", nil)
				server.ServeHTTP(rec, req)
			})

			It("should return an empty array", func() {
				Expect(rec.Code).To(Equal(http.StatusOK))
				Expect(rec.Body.String()).To(MatchJSON("[]"))
			})
		})
	})

	Describe("DELETE /api/jobs/{id}", func() {
		BeforeEach(func() {
			_, err := service.ProcessReceipt("receipt.jpg", []byte("image-bytes"), "image/jpeg")
			Expect(err).NotTo(HaveOccurred())
			req := httptest.NewRequest("DELETE", "/api/jobs/job-1", nil)
			server.ServeHTTP(rec, req)
		})

		It("should return 204 and remove the job", func() {
			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(db.jobs).To(BeEmpty())
		})
	})

	Describe("basic auth", func() {
		BeforeEach(func() {
			server = NewServer(service, BasicAuth{Username: "user", Password: "pass"})
		})

		When("credentials are missing", func() {
			BeforeEach(func() {
				req := httptest.NewRequest("GET", "/api/jobs", nil)
				server.ServeHTTP(rec, req)
			})

			It("should return 401", func() {
				Expect(rec.Code).To(Equal(http.StatusUnauthorized))
				Expect(rec.Header().Get("WWW-Authenticate")).To(ContainSubstring("Basic"))
			})
		})

		When("credentials are correct", func() {
			BeforeEach(func() {
				req := httptest.NewRequest("GET", "/api/jobs", nil)
				creds := base64.StdEncoding.EncodeToString([]byte("user:pass"))
				req.Header.Set("Authorization", "Basic "+creds)
				server.ServeHTTP(rec, req)
			})

			It("should serve the request", func() {
				Expect(rec.Code).To(Equal(http.StatusOK))
			})
		})

		When("credentials are wrong", func() {
			BeforeEach(func() {
				req := httptest.NewRequest("GET", "/api/jobs", nil)
				creds := base64.StdEncoding.EncodeToString([]byte("user:wrong"))
				req.Header.Set("Authorization", "Basic "+creds)
				server.ServeHTTP(rec, req)
			})

			It("should return 401", func() {
				Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			})
		})
	})
})
