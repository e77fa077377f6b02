package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"balances/internal/documents"
	"balances/internal/money"
	"balances/pkg/services"
)

const sheetURL = "https://docs.google.com/spreadsheets/d/abc-123_XYZ/edit#gid=0"

type fakeSheets struct {
	mu       sync.Mutex
	values   [][]interface{}
	titles   []string
	requests []string
	written  map[string]interface{}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/values/"):
		json.NewEncoder(w).Encode(map[string]interface{}{
			"range":          "Documents!A1:G9",
			"majorDimension": "ROWS",
			"values":         f.values,
		})
	case r.Method == http.MethodGet:
		var sheetList []map[string]interface{}
		for _, title := range f.titles {
			sheetList = append(sheetList, map[string]interface{}{"properties": map[string]interface{}{"title": title}})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"spreadsheetId": "abc-123_XYZ", "sheets": sheetList})
	case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
		f.titles = append(f.titles, "Balances")
		json.NewEncoder(w).Encode(map[string]interface{}{"spreadsheetId": "abc-123_XYZ"})
	case strings.HasSuffix(r.URL.Path, ":clear"):
		json.NewEncoder(w).Encode(map[string]interface{}{"spreadsheetId": "abc-123_XYZ"})
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.written = map[string]interface{}{}
		json.Unmarshal(body, &f.written)
		json.NewEncoder(w).Encode(map[string]interface{}{"spreadsheetId": "abc-123_XYZ"})
	default:
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	}
}

func newTestService(t *testing.T, fake *fakeSheets) *Service {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := NewSheetsServiceWithOptions(context.Background(), sheetURL,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return s
}

func TestExtractSpreadsheetID(t *testing.T) {
	id, err := extractSpreadsheetID(sheetURL)
	require.NoError(t, err)
	assert.Equal(t, "abc-123_XYZ", id)

	_, err = extractSpreadsheetID("https://example.com/not-a-sheet")
	assert.Error(t, err)
}

func TestDocumentRowsFeedsParser(t *testing.T) {
	fake := &fakeSheets{values: [][]interface{}{
		{"Customer", "Vat number", "Document number", "Type", "Parent document", "Currency", "Total"},
		{"Vendor 1", "123456789", "1000000257", "1", "", "USD", "400"},
		{"Vendor 1", "123456789", "1000000260", "2", "1000000257", "EUR", "100"},
		{},
		{" Vendor 2 ", 987654321, 1000000258, 1, nil, "EUR", 900},
	}}
	s := newTestService(t, fake)

	source, err := s.DocumentRows(context.Background(), "Documents!A:G")
	require.NoError(t, err)

	records, err := documents.NewParser(money.NewFormatter(money.NewISORegistry())).Parse(source)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "1000000257", records[1].ParentNumber)
	assert.Equal(t, "Vendor 2", records[2].CustomerName)
	assert.Equal(t, "987654321", records[2].VATNumber)
	assert.Equal(t, "90000", records[2].Total.Amount().String())
}

func TestWriteBalancesCreatesSheet(t *testing.T) {
	fake := &fakeSheets{titles: []string{"Documents"}}
	s := newTestService(t, fake)

	err := s.WriteBalances(context.Background(), "Balances", &services.SumInvoicesResult{
		Currency: "USD",
		Customers: []services.CustomerBalanceEntry{
			{Name: "Vendor 1", Balance: "2021.69"},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, fake.titles, "Balances")
	require.NotNil(t, fake.written)
	assert.Equal(t, []interface{}{
		[]interface{}{"Customer", "Balance", "Currency"},
		[]interface{}{"Vendor 1", "2021.69", "USD"},
	}, fake.written["values"])

	var batchUpdates int
	for _, req := range fake.requests {
		if strings.HasSuffix(req, ":batchUpdate") {
			batchUpdates++
		}
	}
	assert.Equal(t, 1, batchUpdates)
}

func TestWriteBalancesReusesExistingSheet(t *testing.T) {
	fake := &fakeSheets{titles: []string{"Balances"}}
	s := newTestService(t, fake)

	require.NoError(t, s.WriteBalances(context.Background(), "Balances", &services.SumInvoicesResult{Currency: "EUR"}))

	for _, req := range fake.requests {
		assert.False(t, strings.HasSuffix(req, ":batchUpdate"), req)
	}
}

func TestFirstRow(t *testing.T) {
	tests := []struct {
		a1   string
		want int
	}{
		{a1: "Documents!A1:G9", want: 1},
		{a1: "Documents!A3:G9", want: 3},
		{a1: "'Q1 Export'!$B$12:$H$40", want: 12},
		{a1: "A7:G9", want: 7},
		{a1: "Documents!A:G", want: 1},
		{a1: "", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.a1, func(t *testing.T) {
			assert.Equal(t, tt.want, firstRow(tt.a1))
		})
	}
}
