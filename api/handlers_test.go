package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/k4lab/go-cipher-search/config"
	"github.com/k4lab/go-cipher-search/internal/engine"
	"github.com/k4lab/go-cipher-search/internal/metrics"
	testhelpers "github.com/k4lab/go-cipher-search/internal/testing"
	"github.com/k4lab/go-cipher-search/model"
)

func setupTestRouter(eng *engine.Engine) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, eng, nil)
	return router
}

func TestCreateCaseHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid case creation",
			requestBody:    testhelpers.HelloCaseConfig("test_case_create"),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate case name",
			requestBody:    testhelpers.HelloCaseConfig("test_case_create"),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing case name",
			requestBody: config.CaseConfig{
				Ciphertext: "MJQQTBTWQI",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "inverted grid bounds",
			requestBody: config.CaseConfig{
				Name:       "test_case_bad_bounds",
				Ciphertext: "MJQQTBTWQI",
				Settings: config.CaseSettings{
					MultiplierMin: 20,
					MultiplierMax: 3,
				},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest("POST", "/cases", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Response: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestCreateCaseHandlerConflictingAnchors(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	cfg := testhelpers.HelloCaseConfig("test_case_conflict")
	cfg.Anchors = append(cfg.Anchors, config.Anchor{Start: 2, Plain: "ZZ"})

	body, _ := json.Marshal(cfg)
	req, _ := http.NewRequest("POST", "/cases", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status %d, got %d. Response: %s", http.StatusBadRequest, w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["code"] != string(ErrorCodeInvalidDomain) {
		t.Errorf("Expected error code %s, got %v", ErrorCodeInvalidDomain, response["code"])
	}
}

func TestListCasesHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	testhelpers.CreateTestCase(t, eng, "zeta_case")
	testhelpers.CreateTestCase(t, eng, "alpha_case")

	req, _ := http.NewRequest("GET", "/cases", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response struct {
		Cases []string `json:"cases"`
		Count int      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Count != 2 {
		t.Errorf("Expected 2 cases, got %d", response.Count)
	}
	if len(response.Cases) != 2 || response.Cases[0] != "alpha_case" || response.Cases[1] != "zeta_case" {
		t.Errorf("Expected cases sorted by name, got %v", response.Cases)
	}
}

func TestGetCaseHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	testhelpers.CreateTestCase(t, eng, "test_get_case")

	tests := []struct {
		name           string
		caseName       string
		expectedStatus int
	}{
		{
			name:           "existing case",
			caseName:       "test_get_case",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-existing case",
			caseName:       "non_existing",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/cases/"+tt.caseName, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			if tt.expectedStatus != http.StatusOK {
				return
			}

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if response["constraint_count"] != float64(5) {
				t.Errorf("Expected 5 constraints, got %v", response["constraint_count"])
			}
			if response["grid_size"] != float64(26) {
				t.Errorf("Expected grid size 26, got %v", response["grid_size"])
			}
		})
	}
}

func TestUpdateCaseSettingsHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	testhelpers.CreateTestCase(t, eng, "test_update_settings")

	tests := []struct {
		name           string
		caseName       string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:     "widen the grid",
			caseName: "test_update_settings",
			requestBody: map[string]interface{}{
				"multiplier_min": 0,
				"multiplier_max": 25,
				"offset_min":     0,
				"offset_max":     25,
				"top_k":          5,
				"workers":        2,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:     "inverted bounds",
			caseName: "test_update_settings",
			requestBody: map[string]interface{}{
				"multiplier_min": 20,
				"multiplier_max": 3,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing case",
			caseName:       "non_existing",
			requestBody:    map[string]interface{}{"top_k": 5},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest("PUT", "/cases/"+tt.caseName+"/settings", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Response: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	// The widened grid is visible through the case detail
	req, _ := http.NewRequest("GET", "/cases/test_update_settings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["grid_size"] != float64(676) {
		t.Errorf("Expected grid size 676 after widening, got %v", response["grid_size"])
	}
}

func TestDeleteCaseHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	testhelpers.CreateTestCase(t, eng, "test_delete_case")

	tests := []struct {
		name           string
		caseName       string
		expectedStatus int
	}{
		{
			name:           "valid case deletion",
			caseName:       "test_delete_case",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "non-existent case",
			caseName:       "test_delete_case",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("DELETE", "/cases/"+tt.caseName, nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestGetProfileHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	testhelpers.CreateTestCase(t, eng, "test_profile_case")

	req, _ := http.NewRequest("GET", "/cases/test_profile_case/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var report map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if report["length"] != float64(10) {
		t.Errorf("Expected profile length 10, got %v", report["length"])
	}
	if _, exists := report["index_of_coincidence"]; !exists {
		t.Error("Expected an index_of_coincidence field in the profile")
	}

	req, _ = http.NewRequest("GET", "/cases/non_existing/profile", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d for missing case, got %d", http.StatusNotFound, w.Code)
	}
}

func TestProfileCaseAsyncHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	testhelpers.CreateTestCase(t, eng, "test_profile_async")

	req, _ := http.NewRequest("POST", "/cases/test_profile_async/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status %d, got %d. Response: %s", http.StatusAccepted, w.Code, w.Body.String())
	}

	var accepted map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &accepted); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	jobID, ok := accepted["job_id"].(string)
	if !ok || jobID == "" {
		t.Fatalf("Expected a job_id in response, got: %v", accepted)
	}

	job := testhelpers.WaitForJobCompletion(t, eng, jobID, testhelpers.DefaultJobPollingOptions())
	testhelpers.AssertJobCompleted(t, job, model.JobTypeProfile, "test_profile_async")
}

func TestSearchCaseHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	testhelpers.CreateTestCase(t, eng, "test_search_case")

	req, _ := http.NewRequest("POST", "/cases/test_search_case/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected status %d, got %d. Response: %s", http.StatusAccepted, w.Code, w.Body.String())
	}

	var accepted map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &accepted); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	jobID, ok := accepted["job_id"].(string)
	if !ok || jobID == "" {
		t.Fatalf("Expected a job_id in response, got: %v", accepted)
	}

	job := testhelpers.WaitForJobCompletion(t, eng, jobID, testhelpers.DefaultJobPollingOptions())
	testhelpers.AssertJobCompleted(t, job, model.JobTypeSearch, "test_search_case")

	// The archived run is visible through the runs listing
	req, _ = http.NewRequest("GET", "/cases/test_search_case/runs", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var listing map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	runs, ok := listing["runs"].([]interface{})
	if !ok || len(runs) != 1 {
		t.Fatalf("Expected 1 archived run, got: %v", listing["runs"])
	}

	summary := runs[0].(map[string]interface{})
	if summary["status"] != "ok" {
		t.Errorf("Expected run status ok, got %v", summary["status"])
	}
	runID, _ := summary["id"].(string)
	if runID == "" {
		t.Fatal("Expected the run summary to carry an id")
	}

	// The full record carries the decrypted plaintext
	req, _ = http.NewRequest("GET", "/cases/test_search_case/runs/"+runID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var record map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	results, ok := record["results"].([]interface{})
	if !ok || len(results) == 0 {
		t.Fatalf("Expected ranked results in the record, got: %v", record["results"])
	}
	best := results[0].(map[string]interface{})
	if best["plaintext"] != "HELLOWORLD" {
		t.Errorf("Expected plaintext HELLOWORLD, got %v", best["plaintext"])
	}
}

func TestSearchCaseHandlerMissingCase(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	req, _ := http.NewRequest("POST", "/cases/non_existing/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetRunHandlerMissingRun(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	testhelpers.CreateTestCase(t, eng, "test_run_missing")

	req, _ := http.NewRequest("GET", "/cases/test_run_missing/runs/ghost-run", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["code"] != string(ErrorCodeRunNotFound) {
		t.Errorf("Expected error code %s, got %v", ErrorCodeRunNotFound, response["code"])
	}
}

func TestDeleteRunHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	testhelpers.CreateTestCase(t, eng, "test_delete_run")
	record := testhelpers.ArchiveTestRun(t, eng, "test_delete_run")

	req, _ := http.NewRequest("DELETE", "/cases/test_delete_run/runs/"+record.ID, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Response: %s", http.StatusOK, w.Code, w.Body.String())
	}

	// Deleting the same run again reports it missing
	req, _ = http.NewRequest("DELETE", "/cases/test_delete_run/runs/"+record.ID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d on second delete, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetClockStateHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	tests := []struct {
		name           string
		seconds        string
		expectedStatus int
		expectedLit    float64
		expectedBits   string
	}{
		{
			name:           "half past five in the afternoon",
			seconds:        "63000",
			expectedStatus: http.StatusOK,
			expectedLit:    11,
			expectedBits:   "011101100111111000000000",
		},
		{
			name:           "midnight",
			seconds:        "0",
			expectedStatus: http.StatusOK,
			expectedLit:    0,
			expectedBits:   "000000000000000000000000",
		},
		{
			name:           "out of range",
			seconds:        "86400",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative",
			seconds:        "-1",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not a number",
			seconds:        "now",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/clock/"+tt.seconds, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d. Response: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.expectedStatus != http.StatusOK {
				return
			}

			var response map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
				t.Fatalf("Failed to unmarshal response: %v", err)
			}
			if response["lit_count"] != tt.expectedLit {
				t.Errorf("Expected lit count %v, got %v", tt.expectedLit, response["lit_count"])
			}
			if response["bit_string"] != tt.expectedBits {
				t.Errorf("Expected bit string %s, got %v", tt.expectedBits, response["bit_string"])
			}
			if response["shift"] != tt.expectedLit {
				t.Errorf("Expected shift %v, got %v", tt.expectedLit, response["shift"])
			}
		})
	}
}

func TestJobHandlers(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	// Ghost job lookups are 404s
	req, _ := http.NewRequest("GET", "/jobs/ghost-job-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d for ghost job, got %d", http.StatusNotFound, w.Code)
	}

	testhelpers.CreateTestCase(t, eng, "test_job_case")
	jobID, err := eng.SearchAsync("test_job_case")
	if err != nil {
		t.Fatalf("Failed to start search: %v", err)
	}
	testhelpers.WaitForJobCompletion(t, eng, jobID, testhelpers.DefaultJobPollingOptions())

	// The job is visible by ID
	req, _ = http.NewRequest("GET", "/jobs/"+jobID, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var job map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &job); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if job["status"] != "completed" || job["type"] != "search" {
		t.Errorf("Expected a completed search job, got: %v", job)
	}

	// And in the global and per-case listings
	for _, path := range []string{"/jobs", "/cases/test_job_case/jobs"} {
		req, _ = http.NewRequest("GET", path, nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status %d for %s, got %d", http.StatusOK, path, w.Code)
		}
		var listing map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &listing); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if listing["total"] != float64(1) {
			t.Errorf("Expected 1 job in %s, got %v", path, listing["total"])
		}
	}

	// Aggregate metrics include a success rate
	req, _ = http.NewRequest("GET", "/jobs/metrics", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	var jobMetrics map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &jobMetrics); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if jobMetrics["success_rate"] != float64(1) {
		t.Errorf("Expected success rate 1, got %v", jobMetrics["success_rate"])
	}
}

func TestHealthCheckHandler(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	router := setupTestRouter(eng)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %v", response["status"])
	}
}

func TestMetricsRoute(t *testing.T) {
	eng := testhelpers.CreateTestEngine(t)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, eng, metrics.New())

	req, _ := http.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "cipher_search_active_jobs") {
		t.Error("Expected the metrics page to expose the active jobs gauge")
	}
}

func TestMain(m *testing.M) {
	testhelpers.TestMain(m)
}
