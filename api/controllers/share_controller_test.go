package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/opensite-ai/page-speed-social-share/api/models"
	"github.com/opensite-ai/page-speed-social-share/api/notifyhub"
	"github.com/opensite-ai/page-speed-social-share/engine"
	"github.com/opensite-ai/page-speed-social-share/notify"
	"github.com/opensite-ai/page-speed-social-share/tool"
	"github.com/opensite-ai/page-speed-social-share/types"
)

// recordingSharer accepts everything and remembers the last payload
type recordingSharer struct {
	last *types.SharePayload
}

func (s *recordingSharer) CanShare(*types.SharePayload) bool { return true }

func (s *recordingSharer) Share(_ context.Context, p *types.SharePayload) error {
	s.last = p
	return nil
}

// stubConverter never converts anything
type stubConverter struct{}

func (stubConverter) ToBase64(context.Context, string) string { return "" }

// setupShareRouter creates a test router with the self endpoints
func setupShareRouter(sharer engine.Sharer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	notify.UseNotify = false
	tool.CurrentConfig = types.AppConfig{AttachImages: true}
	models.SetNotifyHub(notifyhub.New())
	models.SetShareEngine(engine.New(sharer, stubConverter{}))

	router := gin.New()
	self := router.Group("/api/self/v1")
	{
		self.POST("/share", HandleShare)
		self.GET("/share-state", HandleShareState)
		self.GET("/affordances", HandleAffordances)
		self.GET("/create-qr-code", GenerateQRCode)
		self.GET("/status", HandleStatus)
	}
	return router
}

// TestShareEndpoint tests a successful share round trip
func TestShareEndpoint(t *testing.T) {
	sharer := &recordingSharer{}
	router := setupShareRouter(sharer)

	body, _ := json.Marshal(types.ShareRequest{Title: "My Post", URL: "https://example.com"})
	req, _ := http.NewRequest("POST", "/api/self/v1/share", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d: %s", w.Code, w.Body.String())
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatal("Response should contain data field")
	}
	if data["canShare"] != true {
		t.Error("Expected canShare to be true")
	}
	if _, hasErr := data["error"]; hasErr {
		t.Errorf("Expected no error in state, got %v", data["error"])
	}
	if sharer.last == nil || sharer.last.Title != "My Post" {
		t.Errorf("Expected sharer to receive the payload, got %+v", sharer.last)
	}
}

// TestShareEndpointInvalidBody tests share with a broken body
func TestShareEndpointInvalidBody(t *testing.T) {
	router := setupShareRouter(&recordingSharer{})

	req, _ := http.NewRequest("POST", "/api/self/v1/share", bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code 400, got %d", w.Code)
	}
}

// TestShareEndpointRequiresTitle tests that title is mandatory
func TestShareEndpointRequiresTitle(t *testing.T) {
	router := setupShareRouter(&recordingSharer{})

	req, _ := http.NewRequest("POST", "/api/self/v1/share", bytes.NewBufferString(`{"url":"https://example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code 400, got %d", w.Code)
	}
}

// TestShareStateEndpoint tests the state snapshot endpoint
func TestShareStateEndpoint(t *testing.T) {
	router := setupShareRouter(&recordingSharer{})

	req, _ := http.NewRequest("GET", "/api/self/v1/share-state", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if _, ok := response["data"]; !ok {
		t.Error("Response should contain data field")
	}
}

// TestAffordancesDesktopDefaults tests the selection end to end over HTTP
func TestAffordancesDesktopDefaults(t *testing.T) {
	router := setupShareRouter(&recordingSharer{})

	req, _ := http.NewRequest("GET", "/api/self/v1/affordances?touch=false&screen=desktop&title=T&url=https://example.com", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}

	var response struct {
		Data struct {
			Affordances types.AffordanceSet         `json:"affordances"`
			ShareURLs   map[types.PlatformID]string `json:"shareUrls"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	set := response.Data.Affordances
	if set.ShowOnlyNativeButton {
		t.Error("Desktop must not collapse to the single native button")
	}
	if !set.ShowTrailingNativeButton {
		t.Error("Expected trailing native button on desktop with native available")
	}
	for _, id := range set.EnabledPlatforms {
		if id == types.PlatformPinterest {
			t.Error("Pinterest must not render without an image")
		}
		if id == types.PlatformEmail {
			t.Error("Email is default-disabled")
		}
	}
	if response.Data.ShareURLs[types.PlatformX] == "" {
		t.Error("Expected a resolved X share URL")
	}
}

// TestAffordancesTouchMobileNativeOnly tests the native-only collapse
func TestAffordancesTouchMobileNativeOnly(t *testing.T) {
	router := setupShareRouter(&recordingSharer{})

	req, _ := http.NewRequest("GET", "/api/self/v1/affordances?touch=true&screen=mobile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response struct {
		Data struct {
			Affordances types.AffordanceSet `json:"affordances"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if !response.Data.Affordances.ShowOnlyNativeButton {
		t.Error("Expected native-only affordance on touch mobile")
	}
	if len(response.Data.Affordances.EnabledPlatforms) != 1 {
		t.Errorf("Expected exactly one affordance, got %v", response.Data.Affordances.EnabledPlatforms)
	}
}

// TestQRCodeEndpoint tests QR generation
func TestQRCodeEndpoint(t *testing.T) {
	router := setupShareRouter(&recordingSharer{})

	req, _ := http.NewRequest("GET", "/api/self/v1/create-qr-code", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status code 400 without data, got %d", w.Code)
	}

	req2, _ := http.NewRequest("GET", "/api/self/v1/create-qr-code?size=100x100&data=https%3A%2F%2Fexample.com", nil)
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w2.Code)
	}
	if w2.Header().Get("Content-Type") != "image/png" {
		t.Errorf("Expected image/png, got %s", w2.Header().Get("Content-Type"))
	}
}

// TestStatusEndpoint tests the status report
func TestStatusEndpoint(t *testing.T) {
	router := setupShareRouter(&recordingSharer{})

	req, _ := http.NewRequest("GET", "/api/self/v1/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code 200, got %d", w.Code)
	}
	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	data, ok := response["data"].(map[string]interface{})
	if !ok {
		t.Fatal("Response should contain data field")
	}
	if data["running"] != true {
		t.Error("Expected running to be true")
	}
	if data["canShare"] != true {
		t.Error("Expected canShare to be true with a sharer installed")
	}
}
