package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutrify-backend/domain"
	"nutrify-backend/internal/api/handlers"
	"nutrify-backend/internal/api/routes"
	"nutrify-backend/internal/middleware"
	"nutrify-backend/internal/utils"
	"nutrify-backend/pkg/jwt"
	"nutrify-backend/pkg/scan"
	"nutrify-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
)

// ---- fakes ----

type fakeUserService struct {
	registerResp  domain.UserResponse
	registerToken string
	registerErr   error

	loginResp  domain.UserResponse
	loginToken string
	loginErr   error

	profileResp domain.UserResponse
	profileErr  error

	updateErr error
}

func (f *fakeUserService) Register(context.Context, domain.SignupRequest) (domain.UserResponse, string, error) {
	return f.registerResp, f.registerToken, f.registerErr
}
func (f *fakeUserService) Login(context.Context, domain.LoginRequest) (domain.UserResponse, string, error) {
	return f.loginResp, f.loginToken, f.loginErr
}
func (f *fakeUserService) Profile(context.Context, string) (domain.UserResponse, error) {
	return f.profileResp, f.profileErr
}
func (f *fakeUserService) UpdateProfile(context.Context, string, domain.UpdateProfileRequest) error {
	return f.updateErr
}

type fakeScanService struct {
	foodResp domain.AnalyzeFoodResponse
	foodErr  error

	healthResp json.RawMessage
	healthErr  error

	historyResp []domain.ScanResponse
	historyErr  error

	lastUserID string
}

func (f *fakeScanService) AnalyzeFood(context.Context, *multipart.FileHeader) (domain.AnalyzeFoodResponse, error) {
	return f.foodResp, f.foodErr
}
func (f *fakeScanService) AnalyzeHealth(_ context.Context, _ domain.AnalyzeHealthRequest, userID string) (json.RawMessage, error) {
	f.lastUserID = userID
	return f.healthResp, f.healthErr
}
func (f *fakeScanService) History(_ context.Context, userID string) ([]domain.ScanResponse, error) {
	f.lastUserID = userID
	if f.historyResp == nil {
		return []domain.ScanResponse{}, f.historyErr
	}
	return f.historyResp, f.historyErr
}

// ---- helpers ----

func newTestApp(t *testing.T, us user.UserService, ss scan.ScanService) (*fiber.App, jwt.JWTService) {
	t.Helper()
	utils.InitValidator()
	app := fiber.New()
	jwtService := jwt.NewJWTService("test-secret")

	routesConfig := routes.Config{
		App:         app,
		UserHandler: handlers.NewUserHandler(us, utils.Validate),
		ScanHandler: handlers.NewScanHandler(ss),
		Middleware:  middleware.NewMiddleware(),
		JWTService:  jwtService,
		StaticDir:   t.TempDir(),
	}
	routesConfig.Setup()
	return app, jwtService
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decoding body %q: %v", raw, err)
	}
	return out
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == domain.SessionCookieName {
			return c
		}
	}
	return nil
}

// ---- tests ----

func TestSignup_MissingPassword(t *testing.T) {
	app, _ := newTestApp(t, &fakeUserService{}, &fakeScanService{})

	resp, err := app.Test(jsonRequest("POST", "/api/signup", `{"email":"a@b.c"}`))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "email and password required" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	us := &fakeUserService{registerErr: domain.ErrEmailExists}
	app, _ := newTestApp(t, us, &fakeScanService{})

	resp, err := app.Test(jsonRequest("POST", "/api/signup", `{"email":"a@b.c","password":"pw"}`))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "email already exists" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestSignup_EstablishesSession(t *testing.T) {
	us := &fakeUserService{
		registerResp:  domain.UserResponse{Email: "a@b.c", FullName: "A B"},
		registerToken: "signed-token",
	}
	app, _ := newTestApp(t, us, &fakeScanService{})

	resp, err := app.Test(jsonRequest("POST", "/api/signup", `{"email":"a@b.c","password":"pw","full_name":"A B"}`))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cookie := sessionCookie(resp)
	if cookie == nil || cookie.Value != "signed-token" {
		t.Fatalf("expected session cookie, got %v", cookie)
	}

	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Fatalf("expected success true, got %v", body)
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	us := &fakeUserService{loginErr: domain.ErrInvalidCredentials}
	app, _ := newTestApp(t, us, &fakeScanService{})

	resp, err := app.Test(jsonRequest("POST", "/api/login", `{"email":"a@b.c","password":"bad"}`))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
	if sessionCookie(resp) != nil && sessionCookie(resp).Value != "" {
		t.Fatal("failed login must not establish a session")
	}
}

func TestCheckAuth_Anonymous(t *testing.T) {
	app, _ := newTestApp(t, &fakeUserService{}, &fakeScanService{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/check-auth", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["authenticated"] != false {
		t.Fatalf("expected authenticated=false, got %v", body)
	}
}

func TestCheckAuth_WithSession(t *testing.T) {
	us := &fakeUserService{profileResp: domain.UserResponse{Email: "a@b.c"}}
	app, jwtService := newTestApp(t, us, &fakeScanService{})

	token, err := jwtService.GenerateSessionToken("user-1")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/check-auth", nil)
	req.AddCookie(&http.Cookie{Name: domain.SessionCookieName, Value: token})

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	body := decodeBody(t, resp)
	if body["authenticated"] != true {
		t.Fatalf("expected authenticated=true, got %v", body)
	}
}

func TestUpdateProfile_RequiresSession(t *testing.T) {
	app, _ := newTestApp(t, &fakeUserService{}, &fakeScanService{})

	resp, err := app.Test(jsonRequest("POST", "/api/profile", `{"full_name":"X"}`))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestHistory_AnonymousEmptyList(t *testing.T) {
	ss := &fakeScanService{}
	app, _ := newTestApp(t, &fakeUserService{}, ss)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/history", nil))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Fatalf("expected success true, got %v", body)
	}
	history, ok := body["history"].([]any)
	if !ok || len(history) != 0 {
		t.Fatalf("expected empty history list, got %v", body["history"])
	}
	if ss.lastUserID != "" {
		t.Fatalf("expected anonymous user id, got %q", ss.lastUserID)
	}
}

func TestHistory_PassesSessionIdentity(t *testing.T) {
	ss := &fakeScanService{}
	app, jwtService := newTestApp(t, &fakeUserService{}, ss)

	token, err := jwtService.GenerateSessionToken("user-42")
	if err != nil {
		t.Fatalf("generating token: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/history", nil)
	req.AddCookie(&http.Cookie{Name: domain.SessionCookieName, Value: token})

	if _, err := app.Test(req); err != nil {
		t.Fatalf("request error: %v", err)
	}
	if ss.lastUserID != "user-42" {
		t.Fatalf("expected user-42, got %q", ss.lastUserID)
	}
}

func TestAnalyzeHealth_EmptyIngredients(t *testing.T) {
	ss := &fakeScanService{healthErr: domain.ErrNoIngredients}
	app, _ := newTestApp(t, &fakeUserService{}, ss)

	resp, err := app.Test(jsonRequest("POST", "/api/analyze-health", `{"ingredients":[]}`))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "no ingredients provided" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestAnalyzeHealth_ReturnsAnalysis(t *testing.T) {
	ss := &fakeScanService{healthResp: json.RawMessage(`{"health_score":82}`)}
	app, _ := newTestApp(t, &fakeUserService{}, ss)

	resp, err := app.Test(jsonRequest("POST", "/api/analyze-health", `{"ingredients":["rice"]}`))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	analysis, ok := body["analysis"].(map[string]any)
	if !ok || analysis["health_score"] != float64(82) {
		t.Fatalf("unexpected analysis: %v", body["analysis"])
	}
}

func TestAnalyzeFood_MissingFile(t *testing.T) {
	app, _ := newTestApp(t, &fakeUserService{}, &fakeScanService{})

	resp, err := app.Test(jsonRequest("POST", "/api/analyze-food", `{}`))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["error"] != "no image file provided" {
		t.Fatalf("unexpected error message: %v", body["error"])
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	app, _ := newTestApp(t, &fakeUserService{}, &fakeScanService{})

	resp, err := app.Test(jsonRequest("POST", "/api/logout", `{}`))
	if err != nil {
		t.Fatalf("request error: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cookie := sessionCookie(resp)
	if cookie == nil || cookie.Value != "" {
		t.Fatalf("expected cleared session cookie, got %v", cookie)
	}
}
