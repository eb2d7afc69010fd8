package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ghinaaj20-lang/luna-project/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPhoto(t *testing.T, ts *httptest.Server, client *http.Client, title string) string {
	t.Helper()
	resp := doJSON(t, client, http.MethodPost, ts.URL+"/content", map[string]string{
		"content_type": "photo",
		"title":        title,
		"category":     "moon",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	return body["id"].(string)
}

func TestCreateContentValidation(t *testing.T) {
	ts, _ := newTestServer(t)
	client := registerUser(t, ts, "author")

	// Anonymous writes are rejected.
	resp := doJSON(t, newClient(t), http.MethodPost, ts.URL+"/content", map[string]string{
		"content_type": "photo", "title": "x", "category": "moon",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/content", map[string]string{
		"content_type": "podcast", "title": "x", "category": "moon",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/content", map[string]string{
		"content_type": "photo", "category": "moon",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, client, http.MethodPost, ts.URL+"/content", map[string]string{
		"content_type": "photo", "title": "x", "category": "blackhole",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCreatePhotoStoresVerification(t *testing.T) {
	ts, _ := newTestServer(t)
	client := registerUser(t, ts, "author")

	resp := doJSON(t, client, http.MethodPost, ts.URL+"/content", map[string]string{
		"content_type": "photo",
		"title":        "Tycho crater",
		"category":     "moon",
		"location":     "backyard",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)

	// The test server wires the deterministic verifier fixture.
	assert.Equal(t, true, body["ai_verified"])
	assert.EqualValues(t, 0.93, body["ai_confidence"])
	assert.Equal(t, "fixture", body["ai_reason"])

	// Articles skip verification.
	resp = doJSON(t, client, http.MethodPost, ts.URL+"/content", map[string]string{
		"content_type": "article",
		"title":        "Collimation basics",
		"content":      "Start with the secondary mirror...",
		"category":     "equipment",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, false, body["ai_verified"])
	assert.EqualValues(t, 0, body["ai_confidence"])
}

func TestCreatePhotoMultipartUpload(t *testing.T) {
	ts, _ := newTestServer(t)
	client := registerUser(t, ts, "author")

	body, formType := multipartBody(t, "image", "m31.jpg", "image/jpeg",
		bytes.Repeat([]byte{0x1F}, 2048), map[string]string{
			"content_type": "photo",
			"title":        "Andromeda",
			"category":     "galaxy",
		})
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/content", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", formType)
	resp, err := client.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	got := decodeBody(t, resp)
	assert.Contains(t, got["image"], "astrophotos/")
	assert.Equal(t, "galaxy", got["category"])
}

func TestLikeUnlikeFlow(t *testing.T) {
	ts, _ := newTestServer(t)
	author := registerUser(t, ts, "author")
	fan := registerUser(t, ts, "fan")
	id := createPhoto(t, ts, author, "Waxing gibbous")

	resp := doJSON(t, fan, http.MethodPost, ts.URL+"/content/"+id+"/like", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "liked", decodeBody(t, resp)["status"])

	resp = doJSON(t, fan, http.MethodPost, ts.URL+"/content/"+id+"/like", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "already liked", decodeBody(t, resp)["status"])

	// Authenticated viewer sees their like reflected.
	resp = doJSON(t, fan, http.MethodGet, ts.URL+"/content/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["likes_count"])
	assert.Equal(t, true, body["is_liked"])

	// Anonymous viewers never see is_liked.
	resp = doJSON(t, newClient(t), http.MethodGet, ts.URL+"/content/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.EqualValues(t, 1, body["likes_count"])
	assert.Equal(t, false, body["is_liked"])

	resp = doJSON(t, fan, http.MethodPost, ts.URL+"/content/"+id+"/unlike", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "unliked", decodeBody(t, resp)["status"])

	// Unliking twice is still a success.
	resp = doJSON(t, fan, http.MethodPost, ts.URL+"/content/"+id+"/unlike", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCommentThreading(t *testing.T) {
	ts, _ := newTestServer(t)
	author := registerUser(t, ts, "author")
	fan := registerUser(t, ts, "fan")
	id := createPhoto(t, ts, author, "Ring nebula")
	otherID := createPhoto(t, ts, author, "Orion")

	resp := doJSON(t, fan, http.MethodPost, ts.URL+"/content/"+id+"/comment", map[string]string{
		"text": "What exposure time?",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	topID := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, author, http.MethodPost, ts.URL+"/content/"+id+"/comment", map[string]string{
		"text": "90 seconds, stacked", "parent_id": topID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// A parent from another content's thread is silently dropped.
	resp = doJSON(t, fan, http.MethodPost, ts.URL+"/content/"+otherID+"/comment", map[string]string{
		"text": "Lovely", "parent_id": topID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	foreign := decodeBody(t, resp)
	assert.Nil(t, foreign["parent"])

	resp = doJSON(t, newClient(t), http.MethodGet, ts.URL+"/content/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 2, body["comments_count"])

	comments := body["comments"].([]any)
	require.Len(t, comments, 1, "reply should be nested, not top-level")
	top := comments[0].(map[string]any)
	assert.Equal(t, "What exposure time?", top["text"])
	replies := top["replies"].([]any)
	require.Len(t, replies, 1)
	assert.Equal(t, "90 seconds, stacked", replies[0].(map[string]any)["text"])
}

func TestDeleteCommentOwnership(t *testing.T) {
	ts, _ := newTestServer(t)
	author := registerUser(t, ts, "author")
	fan := registerUser(t, ts, "fan")
	id := createPhoto(t, ts, author, "Pleiades")

	resp := doJSON(t, fan, http.MethodPost, ts.URL+"/content/"+id+"/comment", map[string]string{"text": "Seven sisters"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	commentID := decodeBody(t, resp)["id"].(string)

	resp = doJSON(t, author, http.MethodDelete, ts.URL+"/comments/"+commentID, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "You can only delete your own comments", decodeBody(t, resp)["error"])

	resp = doJSON(t, fan, http.MethodDelete, ts.URL+"/comments/"+commentID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, fan, http.MethodDelete, ts.URL+"/comments/"+commentID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateDeleteContentOwnership(t *testing.T) {
	ts, _ := newTestServer(t)
	author := registerUser(t, ts, "author")
	other := registerUser(t, ts, "other")
	id := createPhoto(t, ts, author, "Crescent")

	resp := doJSON(t, other, http.MethodPut, ts.URL+"/content/"+id, map[string]string{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, author, http.MethodPut, ts.URL+"/content/"+id, map[string]string{"title": "Crescent Moon"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Crescent Moon", body["title"])
	assert.Equal(t, "author", body["author"].(map[string]any)["username"])

	resp = doJSON(t, other, http.MethodDelete, ts.URL+"/content/"+id, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, author, http.MethodDelete, ts.URL+"/content/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, newClient(t), http.MethodGet, ts.URL+"/content/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestFeedAndListPagination(t *testing.T) {
	ts, _ := newTestServer(t)
	author := registerUser(t, ts, "author")
	for i := 0; i < 3; i++ {
		createPhoto(t, ts, author, "Shot")
	}

	resp := doJSON(t, newClient(t), http.MethodGet, ts.URL+"/content/feed?page_size=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 3, body["count"])
	assert.Len(t, body["results"].([]any), 2)

	resp = doJSON(t, newClient(t), http.MethodGet, ts.URL+"/content?page=2&page_size=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Len(t, body["results"].([]any), 1)
}

func TestEventEndpoints(t *testing.T) {
	ts, db := newTestServer(t)
	ctx := context.Background()
	now := time.Now()

	for i := 1; i <= 12; i++ {
		event := &models.CosmicEvent{
			Title:       "Upcoming",
			Description: "test event",
			EventDate:   now.Add(time.Duration(i) * 24 * time.Hour),
			EventType:   models.EventMeteorShower,
		}
		require.NoError(t, db.CreateEvent(ctx, event))
	}
	past := &models.CosmicEvent{
		Title:       "Past",
		Description: "test event",
		EventDate:   now.Add(-48 * time.Hour),
		EventType:   models.EventEclipse,
	}
	require.NoError(t, db.CreateEvent(ctx, past))

	resp := doJSON(t, newClient(t), http.MethodGet, ts.URL+"/events/upcoming", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var upcoming []models.CosmicEvent
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&upcoming))
	resp.Body.Close()
	assert.Len(t, upcoming, 10)
	for _, e := range upcoming {
		assert.Equal(t, "Upcoming", e.Title)
	}

	resp = doJSON(t, newClient(t), http.MethodGet, ts.URL+"/events", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var all []models.CosmicEvent
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	resp.Body.Close()
	assert.Len(t, all, 13)
	assert.Equal(t, "Past", all[0].Title)

	resp = doJSON(t, newClient(t), http.MethodGet, ts.URL+"/events/today", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var today []models.CosmicEvent
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&today))
	resp.Body.Close()
	assert.Empty(t, today)
}

func TestProfileStatsAfterActivity(t *testing.T) {
	ts, _ := newTestServer(t)
	author := registerUser(t, ts, "author")
	fan := registerUser(t, ts, "fan")
	id := createPhoto(t, ts, author, "Blood moon")

	resp := doJSON(t, fan, http.MethodPost, ts.URL+"/content/"+id+"/like", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = doJSON(t, fan, http.MethodPost, ts.URL+"/content/"+id+"/comment", map[string]string{"text": "Wow"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, author, http.MethodGet, ts.URL+"/profile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.EqualValues(t, 1, body["contents_count"])
	assert.EqualValues(t, 1, body["total_likes"])
	assert.EqualValues(t, 1, body["total_comments"])
}
