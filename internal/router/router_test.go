package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"adoptme-api/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	h, err := router.NewRouter(router.Options{})
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_AdoptionFlow(t *testing.T) {
	ts := newTestServer(t)

	// 1) Seed: un user y un pet via mocks
	{
		st, body := doReq(t, ts.URL, "POST", "/api/mocks/generateData", map[string]any{
			"users": 1,
			"pets":  1,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 generateData, got %d body=%s", st, string(body))
		}
	}

	uid := firstID(t, ts.URL, "/api/users")
	pid := firstID(t, ts.URL, "/api/pets")

	// 2) User adopta pet
	var adoptionID string
	{
		st, body := doReq(t, ts.URL, "POST", "/api/adoptions/"+uid+"/"+pid, nil)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create adoption, got %d body=%s", st, string(body))
		}

		var resp struct {
			ID     string `json:"id"`
			UserID string `json:"user_id"`
			PetID  string `json:"pet_id"`
		}
		decodePayload(t, body, &resp)
		if resp.UserID != uid || resp.PetID != pid {
			t.Fatalf("adoption refs mismatch: %+v", resp)
		}
		adoptionID = resp.ID
	}

	// 3) Aparece en el listado y por ID
	{
		st, body := doReq(t, ts.URL, "GET", "/api/adoptions", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list adoptions, got %d", st)
		}
		var items []struct {
			ID string `json:"id"`
		}
		decodePayload(t, body, &items)
		if len(items) != 1 || items[0].ID != adoptionID {
			t.Fatalf("expected the new adoption listed, got %+v", items)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/adoptions/"+adoptionID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get adoption, got %d", st)
		}
	}

	// 4) El pet quedó adoptado con owner
	{
		st, body := doReq(t, ts.URL, "GET", "/api/pets/"+pid, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get pet, got %d", st)
		}
		var p struct {
			Adopted     bool   `json:"adopted"`
			OwnerUserID string `json:"owner_user_id"`
		}
		decodePayload(t, body, &p)
		if !p.Adopted || p.OwnerUserID != uid {
			t.Fatalf("pet not marked adopted by %s: %+v", uid, p)
		}
	}

	// 5) El pet aparece en user.pets
	{
		st, body := doReq(t, ts.URL, "GET", "/api/users/"+uid, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get user, got %d", st)
		}
		var u struct {
			Pets []string `json:"pets"`
		}
		decodePayload(t, body, &u)
		if len(u.Pets) != 1 || u.Pets[0] != pid {
			t.Fatalf("expected user.pets=[%s], got %v", pid, u.Pets)
		}
	}

	// 6) Re-adoptar el mismo pet => 409, siempre
	for i := 0; i < 2; i++ {
		st, body := doReq(t, ts.URL, "POST", "/api/adoptions/"+uid+"/"+pid, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 re-adopting, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "error" {
			t.Fatalf("expected error envelope, got %s", string(body))
		}
	}
}

func TestHTTP_Adoption_InvalidIDs(t *testing.T) {
	ts := newTestServer(t)

	// id malformado => 400 (ni se consulta storage)
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/adoptions/not-a-valid-id", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 malformed id, got %d", st)
		}
	}

	// id bien formado pero inexistente => 404
	{
		st, _ := doReq(t, ts.URL, "GET", "/api/adoptions/3b92f1ce-7a10-4a8f-9c55-0e6a2d9b4f11", nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 absent id, got %d", st)
		}
	}

	// crear con uid malformado => 400, no 404
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/adoptions/abc/3b92f1ce-7a10-4a8f-9c55-0e6a2d9b4f11", nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 malformed uid, got %d", st)
		}
	}
}

func TestHTTP_Adoption_BodyAliases(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "POST", "/api/mocks/generateData", map[string]any{
		"users": 1,
		"pets":  1,
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 generateData, got %d body=%s", st, string(body))
	}

	uid := firstID(t, ts.URL, "/api/users")
	pid := firstID(t, ts.URL, "/api/pets")

	// alias userId/petId del contrato viejo
	{
		st, body := doReq(t, ts.URL, "POST", "/api/adoptions", map[string]any{
			"userId": uid,
			"petId":  pid,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 adoption via body aliases, got %d body=%s", st, string(body))
		}
	}

	// body sin ids => 400
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/adoptions", map[string]any{})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 empty body, got %d", st)
		}
	}
}

func TestHTTP_UsersCRUD(t *testing.T) {
	ts := newTestServer(t)

	payload := map[string]any{
		"first_name": "Ana",
		"last_name":  "García",
		"email":      "ana@example.com",
		"password":   "secret123",
	}

	var uid string
	{
		st, body := doReq(t, ts.URL, "POST", "/api/users", payload)
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create user, got %d body=%s", st, string(body))
		}
		var u struct {
			ID   string `json:"id"`
			Role string `json:"role"`
		}
		decodePayload(t, body, &u)
		if u.ID == "" || u.Role != "user" {
			t.Fatalf("unexpected created user: %+v", u)
		}
		uid = u.ID

		// el password no sale nunca, ni hasheado
		if bytes.Contains(body, []byte("password")) {
			t.Fatalf("password leaked in response: %s", string(body))
		}
	}

	// mismo email => 409
	{
		st, _ := doReq(t, ts.URL, "POST", "/api/users", payload)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 duplicate email, got %d", st)
		}
	}

	// update parcial: solo first_name
	{
		st, body := doReq(t, ts.URL, "PUT", "/api/users/"+uid, map[string]any{
			"first_name": "Anita",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 update user, got %d body=%s", st, string(body))
		}
		var u struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
		}
		decodePayload(t, body, &u)
		if u.FirstName != "Anita" || u.LastName != "García" || u.Email != "ana@example.com" {
			t.Fatalf("partial update clobbered fields: %+v", u)
		}
	}

	// delete y verificar 404 posterior
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/api/users/"+uid, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete user, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/api/users/"+uid, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", st)
		}
	}
}

func TestHTTP_Login(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "POST", "/api/users", map[string]any{
		"first_name": "Luis",
		"last_name":  "Pérez",
		"email":      "luis@example.com",
		"password":   "secret123",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create user, got %d body=%s", st, string(body))
	}

	// credenciales correctas
	{
		st, body := doReq(t, ts.URL, "POST", "/api/sessions/login", map[string]any{
			"email":    "luis@example.com",
			"password": "secret123",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
		}
	}

	// password incorrecto y email desconocido: misma respuesta 401
	for _, creds := range []map[string]any{
		{"email": "luis@example.com", "password": "wrong"},
		{"email": "nobody@example.com", "password": "secret123"},
	} {
		st, _ := doReq(t, ts.URL, "POST", "/api/sessions/login", creds)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 login %v, got %d", creds, st)
		}
	}
}

func TestHTTP_MockingEndpoints(t *testing.T) {
	ts := newTestServer(t)

	// mockingusers genera sin persistir
	{
		st, body := doReq(t, ts.URL, "GET", "/api/mocks/mockingusers?count=3", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 mockingusers, got %d", st)
		}
		var resp struct {
			Status  string           `json:"status"`
			Count   int              `json:"count"`
			Payload []map[string]any `json:"payload"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("decode mockingusers: %v", err)
		}
		if resp.Status != "success" || resp.Count != 3 || len(resp.Payload) != 3 {
			t.Fatalf("unexpected mockingusers response: %s", string(body))
		}
		if _, leaked := resp.Payload[0]["password"]; leaked {
			t.Fatalf("mocking users leak password: %s", string(body))
		}
	}

	// nada quedó persistido
	{
		st, body := doReq(t, ts.URL, "GET", "/api/users", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list users, got %d", st)
		}
		var items []map[string]any
		decodePayload(t, body, &items)
		if len(items) != 0 {
			t.Fatalf("mockingusers must not persist, found %d users", len(items))
		}
	}

	// generateData sí inserta y reporta los conteos
	{
		st, body := doReq(t, ts.URL, "POST", "/api/mocks/generateData", map[string]any{
			"users": 2,
			"pets":  4,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 generateData, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status   string         `json:"status"`
			Inserted map[string]int `json:"inserted"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("decode generateData: %v", err)
		}
		if resp.Inserted["users"] != 2 || resp.Inserted["pets"] != 4 {
			t.Fatalf("unexpected inserted counts: %s", string(body))
		}
	}
}

func TestHTTP_Health(t *testing.T) {
	ts := newTestServer(t)

	st, body := doReq(t, ts.URL, "GET", "/health", nil)
	if st != http.StatusOK || string(body) != "OK" {
		t.Fatalf("expected 200 OK, got %d body=%s", st, string(body))
	}
}

// firstID lista una colección y devuelve el id del primer elemento.
func firstID(t *testing.T, baseURL, path string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 %s, got %d body=%s", path, st, string(body))
	}

	var items []struct {
		ID string `json:"id"`
	}
	decodePayload(t, body, &items)
	if len(items) == 0 {
		t.Fatalf("%s: empty list", path)
	}
	return items[0].ID
}

// decodePayload desarma el envelope {status, payload} y decodifica payload en v.
func decodePayload(t *testing.T, body []byte, v any) {
	t.Helper()

	var env struct {
		Status  string          `json:"status"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, string(body))
	}
	if env.Status != "success" {
		t.Fatalf("expected success envelope, got %s", string(body))
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		t.Fatalf("decode payload: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
