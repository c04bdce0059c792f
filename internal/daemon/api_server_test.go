package daemon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"scenarr/internal/api"
	"scenarr/internal/catalog"
	"scenarr/internal/matching"
	"scenarr/internal/testsupport"
)

func newTestServer(t *testing.T) (*httptest.Server, *catalog.Store) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	suggester := matching.NewService(store, nil, matching.OptionsFromConfig(cfg, nil)...)
	svc := api.NewCatalogService(store, suggester, cfg.Matching.Tolerance)
	srv := newAPIServer(cfg.Paths.APIBind, svc, store, nil)
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts, store
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAddSiteAndCollection(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/add_site", testsupport.SampleSite("site-1"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodPost, ts.URL+"/add_site", testsupport.SampleSite("site-1"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on update, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/collection_data", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var collection []catalog.SiteCollection
	decodeBody(t, resp, &collection)
	if len(collection) != 1 || collection[0].Site.UUID != "site-1" || len(collection[0].Scenes) != 2 {
		t.Fatalf("unexpected collection: %+v", collection)
	}
}

func TestAddSiteRejectsInvalidBodies(t *testing.T) {
	ts, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/add_site", bytes.NewBufferString("{"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed JSON, got %d", resp.StatusCode)
	}

	doc := testsupport.SampleSite("site-1")
	doc.Site.Name = ""
	if resp := doJSON(t, http.MethodPost, ts.URL+"/add_site", doc); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", resp.StatusCode)
	}
}

func TestRemoveEndpoints(t *testing.T) {
	ts, store := newTestServer(t)
	testsupport.ImportSite(t, store, testsupport.SampleSite("site-1"))
	scenes, err := store.ScenesForSite(t.Context(), "site-1")
	if err != nil {
		t.Fatalf("ScenesForSite: %v", err)
	}

	if resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/remove_scene/%d", ts.URL, scenes[1].ID), nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 removing scene, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodDelete, fmt.Sprintf("%s/remove_scene/%d", ts.URL, scenes[1].ID), nil); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 removing scene twice, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodDelete, ts.URL+"/remove_scene/abc", nil); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", resp.StatusCode)
	}
	if resp := doJSON(t, http.MethodDelete, ts.URL+"/remove_site/site-1", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 removing site, got %d", resp.StatusCode)
	}
	resp := doJSON(t, http.MethodDelete, ts.URL+"/remove_site/site-1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 removing site twice, got %d", resp.StatusCode)
	}
	var body api.ErrorResponse
	decodeBody(t, resp, &body)
	if body.Error == "" {
		t.Fatal("expected error message")
	}
}

func TestSuggestAndMatchFlow(t *testing.T) {
	ts, store := newTestServer(t)
	testsupport.ImportSite(t, store, testsupport.SampleSite("site-1"))

	resp := doJSON(t, http.MethodPost, ts.URL+"/suggest_matches", api.SuggestRequest{SiteUUID: "site-1"})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 without home directory, got %d", resp.StatusCode)
	}

	root := testsupport.MediaTree(t, "Sunset.Boulevard.2020.mkv", "unrelated.mp4")
	resp = doJSON(t, http.MethodPost, ts.URL+"/set_home_directory", api.SetHomeDirectoryRequest{SiteUUID: "site-1", Directory: root})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 setting home directory, got %d", resp.StatusCode)
	}
	resp = doJSON(t, http.MethodPost, ts.URL+"/set_home_directory", api.SetHomeDirectoryRequest{SiteUUID: "missing", Directory: root})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown site, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodPost, ts.URL+"/suggest_matches", api.SuggestRequest{SiteUUID: "site-1"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var candidates []map[string]any
	decodeBody(t, resp, &candidates)
	if len(candidates) != 1 {
		t.Fatalf("expected one candidate, got %+v", candidates)
	}
	if candidates[0]["suggested_file"] != filepath.Join(root, "Sunset.Boulevard.2020.mkv") {
		t.Fatalf("unexpected candidate: %+v", candidates[0])
	}
	if _, ok := candidates[0]["date_score"]; !ok {
		t.Fatalf("expected date_score in %+v", candidates[0])
	}
	if _, ok := candidates[0]["duration_score"]; ok {
		t.Fatalf("unexpected duration_score for an unprobed mkv: %+v", candidates[0])
	}

	sceneID := int64(candidates[0]["scene_id"].(float64))
	resp = doJSON(t, http.MethodPost, ts.URL+"/match_scene", api.MatchSceneRequest{SceneID: sceneID, FilePath: candidates[0]["suggested_file"].(string)})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 matching scene, got %d", resp.StatusCode)
	}
	scene, err := store.Scene(t.Context(), sceneID)
	if err != nil {
		t.Fatalf("Scene: %v", err)
	}
	if scene.Status != catalog.StatusFound {
		t.Fatalf("expected scene marked found, got %+v", scene)
	}
}

func TestRequestIDIsEchoedOrGenerated(t *testing.T) {
	ts, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected healthy, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get(requestIDHeader); got != "req-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	resp = doJSON(t, http.MethodGet, ts.URL+"/healthz", nil)
	if len(resp.Header.Get(requestIDHeader)) != 36 {
		t.Fatalf("expected generated uuid, got %q", resp.Header.Get(requestIDHeader))
	}
}

func TestMethodMismatchIsRejected(t *testing.T) {
	ts, _ := newTestServer(t)
	resp := doJSON(t, http.MethodGet, ts.URL+"/add_site", nil)
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}
