//go:build integration

package integration

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against a live server (cmd/server) and its database.
// Start the stack first, then: go test -tags integration ./tests/integration
func baseURL() string {
	if url := os.Getenv("API_BASE_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}

type transactionResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Type      string    `json:"type"`
	Amount    string    `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

type accountView struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Currency   string `json:"currency"`
	Balance    string `json:"balance"`
}

func postTransaction(t *testing.T, accountNumber, txType, amount string) (*http.Response, []byte) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"account_number": accountNumber,
		"type":           txType,
		"amount":         amount,
	})
	resp, err := http.Post(baseURL()+"/api/transactions", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func getBalance(t *testing.T, accountNumber string) decimal.Decimal {
	t.Helper()
	resp, err := http.Get(baseURL() + "/api/accounts/" + accountNumber)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var view accountView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return decimal.RequireFromString(view.Balance)
}

func TestHealthz(t *testing.T) {
	resp, err := http.Get(baseURL() + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestDebitCreditRoundTrip(t *testing.T) {
	before := getBalance(t, "001-0001")

	amount := decimal.RequireFromString("100.00")
	resp, body := postTransaction(t, "001-0001", "DEBIT", "100.00")
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", body)

	var tx transactionResponse
	require.NoError(t, json.Unmarshal(body, &tx))
	assert.Equal(t, "DEBIT", tx.Type)
	assert.Equal(t, "OK", tx.Status)
	_, err := uuid.Parse(tx.ID)
	assert.NoError(t, err)

	after := getBalance(t, "001-0001")
	assert.True(t, after.Equal(before.Sub(amount)),
		"expected %s, got %s", before.Sub(amount), after)

	// Put the money back for the next run.
	resp, _ = postTransaction(t, "001-0001", "CREDIT", "100.00")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestRiskRejectedOverLimit(t *testing.T) {
	before := getBalance(t, "001-0001")

	resp, _ := postTransaction(t, "001-0001", "DEBIT", "999999.00")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	assert.True(t, getBalance(t, "001-0001").Equal(before), "balance must be unchanged")
}

func TestAccountNotFound(t *testing.T) {
	resp, _ := postTransaction(t, "999-9999", "DEBIT", "10.00")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInvalidType(t *testing.T) {
	resp, _ := postTransaction(t, "001-0001", "TRANSFER", "10.00")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListTransactionsOrdered(t *testing.T) {
	resp, err := http.Get(baseURL() + "/api/accounts/001-0001/transactions")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload struct {
		Transactions []transactionResponse `json:"transactions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	for i := 1; i < len(payload.Transactions); i++ {
		prev := payload.Transactions[i-1].Timestamp
		cur := payload.Transactions[i].Timestamp
		assert.False(t, cur.After(prev), "transactions must be ordered most recent first")
	}
}

func TestStreamReceivesCommittedTransaction(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, baseURL()+"/api/transactions/stream", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	events := make(chan string, 8)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			line := scanner.Text()
			if strings.HasPrefix(line, "data:") {
				events <- line
			}
		}
	}()

	// Give the subscription a moment to attach before committing.
	time.Sleep(200 * time.Millisecond)
	created, body := postTransaction(t, "001-0002", "CREDIT", "1.00")
	require.Equal(t, http.StatusCreated, created.StatusCode)
	var tx transactionResponse
	require.NoError(t, json.Unmarshal(body, &tx))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case line := <-events:
			if strings.Contains(line, tx.ID) {
				return // observed our transaction on the live stream
			}
		case <-deadline:
			t.Fatalf("transaction %s never arrived on the stream", tx.ID)
		}
	}
}
