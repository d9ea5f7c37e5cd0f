package router

import (
	"bytes"
	"cinema_scheduler/cache"
	"cinema_scheduler/catalog"
	"cinema_scheduler/constants"
	"cinema_scheduler/handler"
	"cinema_scheduler/helper"
	"cinema_scheduler/model"
	"cinema_scheduler/service"
	"cinema_scheduler/store"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
)

type downCatalog struct{}

func (downCatalog) ListByCategory(context.Context, string, int) (catalog.Page, error) {
	return catalog.Page{}, errors.New("connection refused")
}

func (downCatalog) Detail(context.Context, int64) (catalog.Detail, error) {
	return catalog.Detail{}, errors.New("connection refused")
}

type testServer struct {
	app   *fiber.App
	store *store.MemoryStore
	now   time.Time
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	now := time.Date(2030, 6, 10, 13, 0, 0, 0, time.Local)
	st := store.NewMemoryStore()
	clock := clockwork.NewFakeClockAt(now)

	hash, err := helper.HashPassword("Admin@123")
	if err != nil {
		t.Fatal(err)
	}
	if err := st.CreateAccount(context.Background(), &model.Account{Username: "admin", Password: hash, Role: constants.ROLE_ADMIN}); err != nil {
		t.Fatal(err)
	}

	h := &handler.Handler{
		Store:     st,
		Sessions:  service.NewSessionService(st, clock, nil, nil),
		Movies:    service.NewMovieService(st, clock, nil, nil, service.DefaultOptions()),
		Theaters:  service.NewTheaterService(st, clock, nil, nil),
		Addresses: service.NewAddressService(st, clock, nil, nil),
		Scheduler: service.NewAutoScheduler(st, clock, nil, nil, service.DefaultOptions(), rand.New(rand.NewSource(1))),
		Importer:  service.NewCatalogImporter(st, downCatalog{}, clock, nil, nil),
		Locker:    cache.NewMutexLocker(),
		Tokens:    helper.NewTokenIssuer("router-test-secret", 10*time.Minute),
	}
	app := fiber.New()
	SetupRoutes(app, h)
	return &testServer{app: app, store: st, now: now}
}

type envelope struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	KeyError string          `json:"keyError"`
	Data     json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env envelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp.StatusCode, env
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	status, env := s.do(t, "POST", "/api/v1/auth/login", "", fiber.Map{"username": username, "password": password})
	if status != fiber.StatusOK {
		t.Fatalf("login %s = %d %s", username, status, env.Message)
	}
	var data model.TokenData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.AccessToken == "" {
		t.Fatalf("login payload: %s", env.Data)
	}
	return data.AccessToken
}

func idOf(t *testing.T, env envelope) uint {
	t.Helper()
	var v struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &v); err != nil || v.ID == 0 {
		t.Fatalf("no id in %s", env.Data)
	}
	return v.ID
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	status, _ := s.do(t, "POST", "/api/v1/auth/register", "", fiber.Map{"username": "maria", "password": "secret1"})
	if status != fiber.StatusCreated {
		t.Fatalf("register = %d", status)
	}
	status, env := s.do(t, "POST", "/api/v1/auth/register", "", fiber.Map{"username": "maria", "password": "secret1"})
	if status != fiber.StatusConflict || env.KeyError != "username" {
		t.Fatalf("duplicate register = %d %+v", status, env)
	}
	status, _ = s.do(t, "POST", "/api/v1/auth/register", "", fiber.Map{"username": "x", "password": "1"})
	if status != fiber.StatusBadRequest {
		t.Fatalf("invalid register = %d", status)
	}

	if status, _ := s.do(t, "POST", "/api/v1/auth/login", "", fiber.Map{"username": "maria", "password": "wrong"}); status != fiber.StatusUnauthorized {
		t.Fatalf("bad password = %d", status)
	}

	token := s.login(t, "maria", "secret1")
	status, env = s.do(t, "GET", "/api/v1/account/me", token, nil)
	if status != fiber.StatusOK {
		t.Fatalf("me = %d", status)
	}
	var me model.Account
	_ = json.Unmarshal(env.Data, &me)
	if me.Username != "maria" || me.Role != constants.ROLE_USER || me.Password != "" {
		t.Fatalf("me = %+v", me)
	}

	if status, _ := s.do(t, "GET", "/api/v1/account/me", "", nil); status != fiber.StatusUnauthorized {
		t.Fatalf("me without token = %d", status)
	}
	if status, _ := s.do(t, "GET", "/api/v1/account/me", "garbage", nil); status != fiber.StatusUnauthorized {
		t.Fatalf("me with bad token = %d", status)
	}
}

func TestSchedulingEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "Admin@123")
	s.do(t, "POST", "/api/v1/auth/register", "", fiber.Map{"username": "joao", "password": "secret1"})
	user := s.login(t, "joao", "secret1")

	status, env := s.do(t, "POST", "/api/v1/address", admin, fiber.Map{"street": "Rua Augusta", "number": 1475})
	if status != fiber.StatusCreated {
		t.Fatalf("create address = %d %s", status, env.Message)
	}
	addressId := idOf(t, env)

	status, env = s.do(t, "POST", "/api/v1/theater", admin, fiber.Map{"name": "Cine Augusta", "rooms": 2, "addressId": addressId})
	if status != fiber.StatusCreated {
		t.Fatalf("create theater = %d %s", status, env.Message)
	}
	theaterId := idOf(t, env)

	movie := fiber.Map{"title": "Duna", "genre": "Ficção Científica", "duration": 120, "releaseDate": "2030-06-01", "popularity": 80}
	if status, _ := s.do(t, "POST", "/api/v1/movie", user, movie); status != fiber.StatusForbidden {
		t.Fatalf("user create movie = %d", status)
	}
	if status, _ := s.do(t, "POST", "/api/v1/movie", "", movie); status != fiber.StatusUnauthorized {
		t.Fatalf("anonymous create movie = %d", status)
	}
	status, env = s.do(t, "POST", "/api/v1/movie", admin, movie)
	if status != fiber.StatusCreated {
		t.Fatalf("create movie = %d %s", status, env.Message)
	}
	movieId := idOf(t, env)

	start := time.Date(2030, 6, 11, 20, 0, 0, 0, time.Local)
	session := fiber.Map{"movieId": movieId, "theaterId": theaterId, "room": 1, "startTime": start.Format(time.RFC3339)}
	status, env = s.do(t, "POST", "/api/v1/session", admin, session)
	if status != fiber.StatusCreated {
		t.Fatalf("create session = %d %s", status, env.Message)
	}
	sessionId := idOf(t, env)

	session["startTime"] = start.Add(time.Hour).Format(time.RFC3339)
	status, env = s.do(t, "POST", "/api/v1/session", admin, session)
	if status != fiber.StatusConflict || env.KeyError != "ScheduleConflict" {
		t.Fatalf("overlapping session = %d %+v", status, env)
	}

	session["startTime"] = s.now.Add(-time.Hour).Format(time.RFC3339)
	if status, env := s.do(t, "POST", "/api/v1/session", admin, session); status != fiber.StatusBadRequest || env.KeyError != "PastStartTime" {
		t.Fatalf("past session = %d %+v", status, env)
	}

	status, env = s.do(t, "GET", fmt.Sprintf("/api/v1/session?movieId=%d&onlyFuture=true", movieId), "", nil)
	if status != fiber.StatusOK {
		t.Fatalf("list sessions = %d", status)
	}
	var listed model.ResponseCustom
	_ = json.Unmarshal(env.Data, &listed)
	if listed.Size != 1 || listed.Take != service.DefaultSessionTake {
		t.Fatalf("listed = %+v", listed)
	}

	if status, env := s.do(t, "DELETE", fmt.Sprintf("/api/v1/movie/%d", movieId), admin, nil); status != fiber.StatusConflict || env.KeyError != "LinkedSessionsExist" {
		t.Fatalf("delete scheduled movie = %d %+v", status, env)
	}

	status, env = s.do(t, "POST", "/api/v1/movie", admin, fiber.Map{"title": "Sem Sessões", "genre": "Drama", "duration": 90, "releaseDate": "2030-06-01"})
	if status != fiber.StatusCreated {
		t.Fatalf("create second movie = %d", status)
	}
	lonely := idOf(t, env)
	if status, _ := s.do(t, "DELETE", fmt.Sprintf("/api/v1/movie/%d", lonely), admin, nil); status != fiber.StatusPreconditionRequired {
		t.Fatalf("delete without confirmation = %d", status)
	}
	if status, _ := s.do(t, "DELETE", fmt.Sprintf("/api/v1/movie/%d?force=true", lonely), admin, nil); status != fiber.StatusOK {
		t.Fatalf("forced delete = %d", status)
	}
	if status, _ := s.do(t, "GET", fmt.Sprintf("/api/v1/movie/%d", lonely), "", nil); status != fiber.StatusNotFound {
		t.Fatalf("deleted movie still served: %d", status)
	}
	if status, _ := s.do(t, "GET", "/api/v1/movie/abc", "", nil); status != fiber.StatusBadRequest {
		t.Fatalf("non numeric id = %d", status)
	}

	if status, env := s.do(t, "DELETE", fmt.Sprintf("/api/v1/address/%d", addressId), admin, nil); status != fiber.StatusConflict || env.KeyError != "TheaterLinked" {
		t.Fatalf("delete linked address = %d %+v", status, env)
	}

	status, env = s.do(t, "PATCH", fmt.Sprintf("/api/v1/session/%d", sessionId), admin, fiber.Map{"room": 2})
	if status != fiber.StatusOK {
		t.Fatalf("patch session = %d %s", status, env.Message)
	}
	if status, _ := s.do(t, "DELETE", fmt.Sprintf("/api/v1/session/%d", sessionId), admin, nil); status != fiber.StatusOK {
		t.Fatalf("cancel session = %d", status)
	}
	cancelled, _ := s.store.Session(context.Background(), sessionId, true)
	if cancelled == nil || cancelled.DeletedBy != "1" {
		t.Fatalf("cancelled session = %+v", cancelled)
	}

	status, env = s.do(t, "POST", "/api/v1/schedule/generate", admin, nil)
	if status != fiber.StatusOK {
		t.Fatalf("generate = %d %s", status, env.Message)
	}

	status, env = s.do(t, "POST", "/api/v1/catalog/import", admin, nil)
	if status != fiber.StatusBadGateway || env.KeyError != "ExternalServiceError" {
		t.Fatalf("import with catalog down = %d %+v", status, env)
	}
	var partial service.ImportResult
	if err := json.Unmarshal(env.Data, &partial); err != nil || partial.Imported != 0 {
		t.Fatalf("import result = %s, %v", env.Data, err)
	}
}
