package server

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"two-thirds/internal/config"

	"github.com/gorilla/websocket"
)

func TestCreateRoomEndpoint(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}

	body := decodeBody(t, resp)
	code, ok := body["code"].(string)
	if !ok || len(code) != roomCodeLength {
		t.Fatalf("expected %d-char code, got %v", roomCodeLength, body["code"])
	}
	token, ok := body["host_token"].(string)
	if !ok || len(token) != hostTokenLength {
		t.Fatalf("expected %d-char host token, got %v", hostTokenLength, body["host_token"])
	}
}

func TestHomePage(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestJoinView(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/join", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, "/join/ABCD23", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestRoomViewRedirectsWhenMissing(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Get(ts.URL + "/rooms/ABCD23")
	if err != nil {
		t.Fatalf("get room view: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect %d, got %d", http.StatusFound, resp.StatusCode)
	}
}

func TestGetRoomSnapshot(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code, _ := createRoom(t, ts)
	joinPlayer(t, ts, code, "Ada")

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/"+code, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)

	room, ok := body["room"].(map[string]any)
	if !ok {
		t.Fatalf("expected room object, got %v", body["room"])
	}
	if room["status"] != statusWaiting {
		t.Fatalf("expected waiting status, got %v", room["status"])
	}
	if _, leaked := room["host_token"]; leaked {
		t.Fatal("host token must not appear in the snapshot")
	}
	players, ok := body["players"].([]any)
	if !ok || len(players) != 1 {
		t.Fatalf("expected one player, got %v", body["players"])
	}
	player := players[0].(map[string]any)
	if player["submitted"] != false {
		t.Fatalf("expected submitted=false, got %v", player["submitted"])
	}
	if _, leaked := player["number"]; leaked {
		t.Fatal("numbers must stay hidden before reveal")
	}
}

func TestGetRoomNotFound(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp := doRequest(t, ts, http.MethodGet, "/api/rooms/ABCD23", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
}

func TestJoinValidation(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code, _ := createRoom(t, ts)

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/short/join", map[string]string{"name": "Ada"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d for bad code, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{"name": "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d for blank name, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{
		"name": strings.Repeat("x", 31),
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d for long name, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	joinPlayer(t, ts, code, "Ada")
	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{"name": "Ada"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d for duplicate name, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestJoinLowercaseCode(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code, _ := createRoom(t, ts)
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+strings.ToLower(code)+"/join", map[string]string{
		"name": "Ada",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestSubmitNumberEndpoint(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code, _ := createRoom(t, ts)
	playerID := joinPlayer(t, ts, code, "Ada")

	resp := doRequest(t, ts, http.MethodPost, "/api/players/"+playerID+"/number", map[string]int{"number": 150})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d for out-of-range, got %d", http.StatusBadRequest, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/players/missing/number", map[string]int{"number": 50})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d for unknown player, got %d", http.StatusNotFound, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/players/"+playerID+"/number", map[string]int{"number": 50})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/players/"+playerID+"/number", map[string]int{"number": 60})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d on resubmit, got %d", http.StatusConflict, resp.StatusCode)
	}
}

func TestFullGameFlow(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code, hostToken := createRoom(t, ts)
	numbers := map[string]int{"Alice": 30, "Bob": 60, "Cara": 90}
	for _, name := range []string{"Alice", "Bob", "Cara"} {
		playerID := joinPlayer(t, ts, code, name)
		submitNumber(t, ts, playerID, numbers[name])
	}

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/reveal", map[string]string{
		"host_token": "not-the-token",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/reveal", map[string]string{
		"host_token": hostToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/rooms/"+code, nil)
	body := decodeBody(t, resp)
	results, ok := body["results"].(map[string]any)
	if !ok {
		t.Fatalf("expected results after reveal, got %v", body["results"])
	}
	if avg := results["average"].(float64); avg != 60 {
		t.Fatalf("expected average 60, got %v", avg)
	}
	if target := results["two_thirds"].(float64); target != 40 {
		t.Fatalf("expected two thirds 40, got %v", target)
	}
	winners := results["winners"].([]any)
	if len(winners) != 1 {
		t.Fatalf("expected one winner, got %d", len(winners))
	}
	winner := winners[0].(map[string]any)
	if winner["name"] != "Alice" {
		t.Fatalf("expected Alice to win, got %v", winner["name"])
	}
	if dist := winner["distance"].(float64); dist != 10 {
		t.Fatalf("expected winning distance 10, got %v", dist)
	}

	// Joining a finished round is rejected until the host restarts.
	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{"name": "Dan"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/restart", map[string]string{
		"host_token": hostToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/rooms/"+code, nil)
	body = decodeBody(t, resp)
	room := body["room"].(map[string]any)
	if room["status"] != statusWaiting {
		t.Fatalf("expected waiting after restart, got %v", room["status"])
	}
	if players := body["players"].([]any); len(players) != 0 {
		t.Fatalf("expected empty room after restart, got %d players", len(players))
	}
}

func TestFullGameFlowTie(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code, hostToken := createRoom(t, ts)
	numbers := map[string]int{"Alice": 10, "Bob": 70, "Cara": 10}
	for _, name := range []string{"Alice", "Bob", "Cara"} {
		playerID := joinPlayer(t, ts, code, name)
		submitNumber(t, ts, playerID, numbers[name])
	}

	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/reveal", map[string]string{
		"host_token": hostToken,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/rooms/"+code, nil)
	body := decodeBody(t, resp)
	results := body["results"].(map[string]any)
	if avg := results["average"].(float64); avg != 30 {
		t.Fatalf("expected average 30, got %v", avg)
	}
	if target := results["two_thirds"].(float64); target != 20 {
		t.Fatalf("expected two thirds 20, got %v", target)
	}
	winners := results["winners"].([]any)
	if len(winners) != 2 {
		t.Fatalf("expected two tied winners, got %d", len(winners))
	}
	for _, raw := range winners {
		winner := raw.(map[string]any)
		if number := winner["number"].(float64); number != 10 {
			t.Fatalf("expected winning number 10, got %v", number)
		}
		if dist := winner["distance"].(float64); math.Abs(dist-10) > 1e-9 {
			t.Fatalf("expected winning distance 10, got %v", dist)
		}
	}
}

func TestWebsocketSnapshotAndBroadcast(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	code, _ := createRoom(t, ts)
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/rooms/" + code
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("expected websocket connection, got error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	var first map[string]any
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("read initial snapshot: %v", err)
	}
	if players := first["players"].([]any); len(players) != 0 {
		t.Fatalf("expected empty initial snapshot, got %d players", len(players))
	}

	joinPlayer(t, ts, code, "Ada")

	var second map[string]any
	if err := conn.ReadJSON(&second); err != nil {
		t.Fatalf("read broadcast: %v", err)
	}
	players := second["players"].([]any)
	if len(players) != 1 {
		t.Fatalf("expected one player in broadcast, got %d", len(players))
	}
	if players[0].(map[string]any)["name"] != "Ada" {
		t.Fatalf("expected Ada in broadcast, got %v", players[0])
	}
}

func TestWebsocketUnknownRoom(t *testing.T) {
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/rooms/ABCD23"
	if _, _, err := websocket.DefaultDialer.Dial(wsURL, nil); err == nil {
		t.Fatal("expected dial to fail for unknown room")
	}
}

func createRoom(t *testing.T, ts *httptest.Server) (string, string) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms", nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["code"].(string), body["host_token"].(string)
}

func joinPlayer(t *testing.T, ts *httptest.Server, code, name string) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/rooms/"+code+"/join", map[string]string{
		"name": name,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return body["player_id"].(string)
}

func submitNumber(t *testing.T, ts *httptest.Server, playerID string, number int) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/players/"+playerID+"/number", map[string]int{
		"number": number,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}
