package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sheikh-saqib/udharbook/internal/book"
	"github.com/sheikh-saqib/udharbook/internal/ledger"
	"github.com/sheikh-saqib/udharbook/internal/models"
	"github.com/sheikh-saqib/udharbook/internal/storage/memory"
)

type testClient struct {
	t      *testing.T
	server *httptest.Server
}

func setupTestServer(t *testing.T) *testClient {
	t.Helper()

	store := memory.NewMemoryLedgerStore()
	t.Cleanup(func() { _ = store.Close() })

	svc := book.New(store, book.WithCurrency("USD"), book.WithLocation(time.UTC))
	l := ledger.NewLedger(store)
	h := NewHandler(svc, l, zerolog.Nop())

	server := httptest.NewServer(h.Router())
	t.Cleanup(server.Close)
	return &testClient{t: t, server: server}
}

func (c *testClient) request(method, path string, body any) *http.Response {
	c.t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.server.URL+path, reqBody)
	if err != nil {
		c.t.Fatalf("Failed to create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("Failed to send request: %v", err)
	}
	return resp
}

// do sends the request, checks the status and decodes the body into out.
func (c *testClient) do(method, path string, body any, wantStatus int, out any) {
	c.t.Helper()

	resp := c.request(method, path, body)
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		data, _ := io.ReadAll(resp.Body)
		c.t.Fatalf("%s %s status = %d, expected %d: %s", method, path, resp.StatusCode, wantStatus, data)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("Failed to decode %s %s response: %v", method, path, err)
		}
	}
}

func TestHealth(t *testing.T) {
	c := setupTestServer(t)
	resp := c.request(http.MethodGet, "/health", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, expected 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response has no X-Request-ID header")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	c := setupTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, c.server.URL+"/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, expected abc-123", got)
	}
}

func TestLedgerFlow(t *testing.T) {
	c := setupTestServer(t)

	var active models.Business
	c.do(http.MethodGet, "/businesses/active", nil, http.StatusOK, &active)
	if active.Name != models.DefaultBusinessName {
		t.Fatalf("active business = %+v, expected the default one", active)
	}
	base := "/businesses/1"

	var party models.Party
	c.do(http.MethodPost, base+"/parties", map[string]string{"name": "Ramesh", "phone": "98765"}, http.StatusCreated, &party)

	partyPath := "/parties/1"
	var gave, got models.LedgerEntry
	c.do(http.MethodPost, partyPath+"/entries", map[string]any{"type": "GAVE", "amount": 100}, http.StatusCreated, &gave)
	c.do(http.MethodPost, partyPath+"/entries", map[string]any{"type": "GOT", "amount": "40", "note": "cash"}, http.StatusCreated, &got)
	if gave.RunningBalance != -100 || got.RunningBalance != -60 {
		t.Errorf("running balances = %d, %d, expected -100, -60", gave.RunningBalance, got.RunningBalance)
	}

	var edited models.LedgerEntry
	c.do(http.MethodPut, partyPath+"/entries/1", map[string]any{"type": "GOT", "amount": 50}, http.StatusOK, &edited)
	if edited.RunningBalance != 90 {
		t.Errorf("edited running balance = %d, expected 90", edited.RunningBalance)
	}

	var afterDelete models.Party
	c.do(http.MethodDelete, partyPath+"/entries/2", nil, http.StatusOK, &afterDelete)
	if afterDelete.Balance != 50 {
		t.Errorf("balance after delete = %d, expected 50", afterDelete.Balance)
	}

	var listed struct {
		Entries []models.LedgerEntry `json:"entries"`
	}
	c.do(http.MethodGet, partyPath+"/entries", nil, http.StatusOK, &listed)
	if len(listed.Entries) != 1 || listed.Entries[0].ID != 1 {
		t.Errorf("entries = %+v", listed.Entries)
	}

	var grouped struct {
		Days []struct {
			Day     string               `json:"day"`
			Entries []models.LedgerEntry `json:"entries"`
		} `json:"days"`
	}
	c.do(http.MethodGet, partyPath+"/entries?group=day", nil, http.StatusOK, &grouped)
	if len(grouped.Days) != 1 || len(grouped.Days[0].Entries) != 1 {
		t.Errorf("grouped = %+v", grouped)
	}

	var audit struct {
		Consistent bool `json:"consistent"`
	}
	c.do(http.MethodGet, partyPath+"/verify", nil, http.StatusOK, &audit)
	if !audit.Consistent {
		t.Error("verify reported an inconsistent balance")
	}

	var summary struct {
		Receivable int64 `json:"receivable"`
		Payable    int64 `json:"payable"`
	}
	c.do(http.MethodGet, base+"/summary", nil, http.StatusOK, &summary)
	if summary.Receivable != 50 || summary.Payable != 0 {
		t.Errorf("summary = %+v, expected receivable 50", summary)
	}

	resp := c.request(http.MethodGet, partyPath+"/statement", nil)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "# Statement: Ramesh") {
		t.Errorf("statement status = %d body:\n%s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("statement Content-Type = %q", ct)
	}

	var reminder map[string]string
	c.do(http.MethodGet, partyPath+"/reminder", nil, http.StatusOK, &reminder)
	if reminder["phone"] != "98765" || !strings.Contains(reminder["message"], "$50.00") {
		t.Errorf("reminder = %v", reminder)
	}
}

func TestPartyUpdateKeepsBalance(t *testing.T) {
	c := setupTestServer(t)
	c.do(http.MethodPost, "/businesses", map[string]string{"name": "Shop"}, http.StatusCreated, nil)
	c.do(http.MethodPost, "/businesses/1/parties", map[string]string{"name": "Sita", "phone": "111"}, http.StatusCreated, nil)
	c.do(http.MethodPost, "/parties/1/entries", map[string]any{"type": "GOT", "amount": 75}, http.StatusCreated, nil)

	var updated models.Party
	c.do(http.MethodPatch, "/parties/1", map[string]any{"address": "Market Lane", "balance": 0}, http.StatusOK, &updated)
	if updated.Balance != 75 || updated.Phone != "111" || updated.Address != "Market Lane" {
		t.Errorf("updated party = %+v", updated)
	}

	c.do(http.MethodDelete, "/parties/1", nil, http.StatusNoContent, nil)
	c.do(http.MethodGet, "/parties/1", nil, http.StatusNotFound, nil)
}

func TestBusinessEndpoints(t *testing.T) {
	c := setupTestServer(t)

	var b models.Business
	c.do(http.MethodPost, "/businesses", map[string]string{"name": "Kirana"}, http.StatusCreated, &b)
	if b.Category != models.CategoryGeneral {
		t.Errorf("category = %q, expected General", b.Category)
	}

	var patched models.Business
	c.do(http.MethodPatch, "/businesses/1", map[string]string{"category": "Dairy"}, http.StatusOK, &patched)
	if patched.Name != "Kirana" || patched.Category != models.CategoryDairy {
		t.Errorf("patched = %+v", patched)
	}

	c.do(http.MethodPost, "/businesses", map[string]string{"name": "Second"}, http.StatusCreated, nil)
	var active models.Business
	c.do(http.MethodPut, "/businesses/active", map[string]int64{"id": 2}, http.StatusOK, &active)
	c.do(http.MethodGet, "/businesses/active", nil, http.StatusOK, &active)
	if active.ID != 2 {
		t.Errorf("active = %+v, expected business 2", active)
	}

	var list struct {
		Businesses []models.Business `json:"businesses"`
	}
	c.do(http.MethodGet, "/businesses", nil, http.StatusOK, &list)
	if len(list.Businesses) != 2 {
		t.Errorf("businesses = %+v", list.Businesses)
	}

	c.do(http.MethodDelete, "/businesses/2", nil, http.StatusNoContent, nil)
	c.do(http.MethodGet, "/businesses/active", nil, http.StatusOK, &active)
	if active.ID != 1 {
		t.Errorf("active after delete = %+v, expected fallback to 1", active)
	}
}

func TestCashEndpoints(t *testing.T) {
	c := setupTestServer(t)
	c.do(http.MethodPost, "/businesses", map[string]string{"name": "Shop"}, http.StatusCreated, nil)

	c.do(http.MethodPost, "/businesses/1/cash", map[string]any{"type": "IN", "amount": 500}, http.StatusCreated, nil)
	c.do(http.MethodPost, "/businesses/1/cash", map[string]any{"type": "OUT", "amount": "120.4", "category": "Feed"}, http.StatusCreated, nil)

	var list struct {
		Entries []models.CashEntry `json:"entries"`
		Totals  struct {
			In  int64 `json:"in"`
			Out int64 `json:"out"`
			Net int64 `json:"net"`
		} `json:"totals"`
	}
	c.do(http.MethodGet, "/businesses/1/cash", nil, http.StatusOK, &list)
	if len(list.Entries) != 2 || list.Totals.In != 500 || list.Totals.Out != 120 || list.Totals.Net != 380 {
		t.Errorf("cash list = %+v", list)
	}

	c.do(http.MethodDelete, "/cash/1", nil, http.StatusNoContent, nil)
	c.do(http.MethodDelete, "/cash/1", nil, http.StatusNotFound, nil)
}

func TestDairyCalculator(t *testing.T) {
	c := setupTestServer(t)

	var result struct {
		Amount int64  `json:"amount"`
		Note   string `json:"note"`
	}
	c.do(http.MethodGet, "/calculator/dairy?weight=10&fat=4&rate=50", nil, http.StatusOK, &result)
	if result.Amount != 20 || result.Note != "10 kg | 4 Fat | Rate 50" {
		t.Errorf("result = %+v", result)
	}

	c.do(http.MethodGet, "/calculator/dairy?weight=10&fat=0&rate=50", nil, http.StatusBadRequest, nil)
}

func TestErrorMapping(t *testing.T) {
	c := setupTestServer(t)
	c.do(http.MethodPost, "/businesses", map[string]string{"name": "Shop"}, http.StatusCreated, nil)
	c.do(http.MethodPost, "/businesses/1/parties", map[string]string{"name": "Ramesh"}, http.StatusCreated, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"zero amount", http.MethodPost, "/parties/1/entries", map[string]any{"type": "GOT", "amount": 0}, http.StatusBadRequest, "invalid_input"},
		{"unknown type", http.MethodPost, "/parties/1/entries", map[string]any{"type": "LENT", "amount": 5}, http.StatusBadRequest, "invalid_input"},
		{"missing amount", http.MethodPost, "/parties/1/entries", map[string]any{"type": "GOT"}, http.StatusBadRequest, "invalid_input"},
		{"missing party", http.MethodPost, "/parties/99/entries", map[string]any{"type": "GOT", "amount": 5}, http.StatusNotFound, "not_found"},
		{"missing entry", http.MethodDelete, "/parties/1/entries/99", nil, http.StatusNotFound, "not_found"},
		{"bad id", http.MethodGet, "/parties/abc", nil, http.StatusBadRequest, "invalid_input"},
		{"blank party name", http.MethodPost, "/businesses/1/parties", map[string]string{"name": " "}, http.StatusBadRequest, "invalid_input"},
		{"parties of missing business", http.MethodGet, "/businesses/9/parties", nil, http.StatusNotFound, "not_found"},
		{"malformed body", http.MethodPost, "/businesses", "not an object", http.StatusBadRequest, "invalid_input"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp ErrorResponse
			c.do(tt.method, tt.path, tt.body, tt.wantStatus, &errResp)
			if errResp.Code != tt.wantCode {
				t.Errorf("code = %q, expected %q", errResp.Code, tt.wantCode)
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", rec.Code)
	}
}

func TestSearchQuery(t *testing.T) {
	c := setupTestServer(t)
	c.do(http.MethodPost, "/businesses", map[string]string{"name": "Shop"}, http.StatusCreated, nil)
	for _, name := range []string{"Ramesh", "Sita", "Ramu"} {
		c.do(http.MethodPost, "/businesses/1/parties", map[string]string{"name": name}, http.StatusCreated, nil)
	}

	var list struct {
		Parties []models.Party `json:"parties"`
	}
	c.do(http.MethodGet, "/businesses/1/parties?q=ram", nil, http.StatusOK, &list)
	if len(list.Parties) != 2 || list.Parties[0].Name != "Ramu" {
		t.Errorf("search = %+v, expected Ramu then Ramesh", list.Parties)
	}
}

func TestDairyCalculatorEntries(t *testing.T) {
	c := setupTestServer(t)

	var dairy models.Business
	c.do(http.MethodGet, "/businesses/active", nil, http.StatusOK, &dairy)
	if !dairy.OffersDairyCalculator() {
		t.Fatalf("default business = %+v, expected a Dairy business", dairy)
	}
	c.do(http.MethodPost, "/businesses/1/parties", map[string]string{"name": "Ramesh"}, http.StatusCreated, nil)
	c.do(http.MethodPost, "/businesses", map[string]string{"name": "Kirana", "category": "General"}, http.StatusCreated, nil)
	c.do(http.MethodPost, "/businesses/2/parties", map[string]string{"name": "Sita"}, http.StatusCreated, nil)

	tests := []struct {
		name       string
		body       map[string]any
		wantAmount int64
		wantNote   string
	}{
		{"calculated", map[string]any{"type": "GAVE", "weight": 10, "fat": 4, "rate": 50}, 20, "10 kg | 4 Fat | Rate 50"},
		{"explicit amount wins", map[string]any{"type": "GAVE", "weight": "12.5", "fat": "6.2", "rate": 45, "amount": 30}, 30, "12.5 kg | 6.2 Fat | Rate 45"},
		{"explicit note wins", map[string]any{"type": "GAVE", "weight": 1, "fat": 1, "rate": 50, "note": "evening"}, 1, "evening"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entry models.LedgerEntry
			c.do(http.MethodPost, "/parties/1/entries", tt.body, http.StatusCreated, &entry)
			if entry.Amount != tt.wantAmount || entry.Note != tt.wantNote {
				t.Errorf("entry = %+v, expected amount %d and note %q", entry, tt.wantAmount, tt.wantNote)
			}
		})
	}

	rejected := []struct {
		name   string
		method string
		path   string
		body   map[string]any
	}{
		{"general business", http.MethodPost, "/parties/2/entries", map[string]any{"type": "GAVE", "weight": 10, "fat": 4, "rate": 50}},
		{"missing rate", http.MethodPost, "/parties/1/entries", map[string]any{"type": "GAVE", "weight": 10, "fat": 4}},
		{"rounds to zero", http.MethodPost, "/parties/1/entries", map[string]any{"type": "GAVE", "weight": 1, "fat": 1, "rate": 49}},
		{"edit", http.MethodPut, "/parties/1/entries/1", map[string]any{"type": "GAVE", "weight": 10, "fat": 4, "rate": 50}},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			c.do(tt.method, tt.path, tt.body, http.StatusBadRequest, nil)
		})
	}

	var sita, ramesh struct {
		Party models.Party `json:"party"`
	}
	c.do(http.MethodGet, "/parties/2", nil, http.StatusOK, &sita)
	c.do(http.MethodGet, "/parties/1", nil, http.StatusOK, &ramesh)
	if sita.Party.Balance != 0 || ramesh.Party.Balance != -51 {
		t.Errorf("balances = %d, %d, expected 0 and -51", sita.Party.Balance, ramesh.Party.Balance)
	}
}
