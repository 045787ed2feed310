package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedpulse/feedpulse"
	"github.com/feedpulse/feedpulse/infrastructure/api/v1/dto"
	"github.com/feedpulse/feedpulse/infrastructure/classifier"
	"github.com/feedpulse/feedpulse/internal/config"
)

func newTestServer(t *testing.T, apiKeys []string) *httptest.Server {
	t.Helper()

	client, err := feedpulse.New(
		feedpulse.WithSQLite(":memory:"),
		feedpulse.WithDataDir(t.TempDir()),
		feedpulse.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		feedpulse.WithScoring(config.NewScoringConfig(false, time.Hour, 10)),
		feedpulse.WithAPIKeys(apiKeys),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	server := httptest.NewServer(NewAPIServer(client, apiKeys).Handler())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body any, headers map[string]string) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func ingestSome(t *testing.T, server *httptest.Server, topic string, count int) dto.IngestResponse {
	t.Helper()
	resp := postJSON(t, server.URL+"/api/v1/records", dto.IngestRequest{
		Source: "synthetic",
		Topic:  topic,
		Count:  count,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.IngestResponse](t, resp)
}

func TestAPI_Healthz(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["db"])
}

func TestAPI_IngestAndList(t *testing.T) {
	server := newTestServer(t, nil)

	ingested := ingestSome(t, server, "golang", 5)
	assert.Equal(t, 5, ingested.Inserted)
	assert.Len(t, ingested.RecordIDs, 5)

	resp, err := http.Get(server.URL + "/api/v1/records?topic=golang")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := decode[dto.RecordListResponse](t, resp)
	assert.Len(t, list.Data, 5)
	assert.Equal(t, int64(5), list.Meta.Total)
	// Newest first
	assert.True(t, list.Data[0].ID > list.Data[4].ID)
}

func TestAPI_GetRecord(t *testing.T) {
	server := newTestServer(t, nil)
	ingested := ingestSome(t, server, "golang", 1)

	resp, err := http.Get(fmt.Sprintf("%s/api/v1/records/%d", server.URL, ingested.RecordIDs[0]))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rec := decode[dto.Record](t, resp)
	assert.Equal(t, ingested.RecordIDs[0], rec.ID)
	assert.Equal(t, "golang", rec.Topic)
}

func TestAPI_GetRecordNotFound(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/v1/records/99999")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ScoringPassAndAnalytics(t *testing.T) {
	server := newTestServer(t, nil)
	ingestSome(t, server, "golang", 4)

	resp := postJSON(t, server.URL+"/api/v1/scoring/passes", dto.ScoreRequest{
		ModelName: classifier.LexiconModelName,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	report := decode[dto.ScoreResponse](t, resp)
	assert.Equal(t, classifier.LexiconModelName, report.ModelName)
	assert.Equal(t, 4, report.Scored)
	assert.Zero(t, report.Skipped)

	// A second pass has nothing left to do.
	resp = postJSON(t, server.URL+"/api/v1/scoring/passes", dto.ScoreRequest{
		ModelName: classifier.LexiconModelName,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	report = decode[dto.ScoreResponse](t, resp)
	assert.Zero(t, report.Scored)

	latestResp, err := http.Get(server.URL + "/api/v1/analytics/latest?topic=golang&model=" + classifier.LexiconModelName)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, latestResp.StatusCode)

	latest := decode[dto.LatestResponse](t, latestResp)
	require.Len(t, latest.Data, 4)
	for _, row := range latest.Data {
		require.NotNil(t, row.Prediction)
		assert.Equal(t, classifier.LexiconModelName, row.Prediction.ModelName)
	}

	statsResp, err := http.Get(server.URL + "/api/v1/analytics/stats?model=" + classifier.LexiconModelName)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, statsResp.StatusCode)

	stats := decode[dto.StatsResponse](t, statsResp)
	assert.Equal(t, int64(4), stats.Total)
	var sum int64
	for _, stat := range stats.ByLabel {
		sum += stat.Count
	}
	assert.Equal(t, int64(4), sum)
}

func TestAPI_StatsRequiresModel(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/v1/analytics/stats")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_UnknownModelRejected(t *testing.T) {
	server := newTestServer(t, nil)
	ingestSome(t, server, "golang", 1)

	resp := postJSON(t, server.URL+"/api/v1/scoring/passes", dto.ScoreRequest{
		ModelName: "no-such-model",
	}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI_ModelsEndpoint(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := http.Get(server.URL + "/api/v1/scoring/models")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	models := decode[dto.ModelsResponse](t, resp)
	assert.Contains(t, models.Models, classifier.LexiconModelName)
	assert.Contains(t, models.Models, classifier.DefaultHugotModel)
}

func TestAPI_WriteProtection(t *testing.T) {
	server := newTestServer(t, []string{"secret"})

	// Reads stay open
	resp, err := http.Get(server.URL + "/api/v1/records")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Writes need the key
	resp = postJSON(t, server.URL+"/api/v1/records", dto.IngestRequest{Source: "synthetic"}, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = postJSON(t, server.URL+"/api/v1/records", dto.IngestRequest{Source: "synthetic"},
		map[string]string{"X-API-KEY": "secret"})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestAPI_UnknownSourceRejected(t *testing.T) {
	server := newTestServer(t, nil)

	resp := postJSON(t, server.URL+"/api/v1/records", dto.IngestRequest{Source: "firehose"}, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
