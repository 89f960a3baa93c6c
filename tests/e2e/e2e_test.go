//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

type authResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type placeResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Creator     string `json:"creator"`
}

type placeListResponse struct {
	Places []placeResponse `json:"places"`
}

// A 1x1 transparent GIF, small enough to inline.
var tinyGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// TestE2ESmoke walks the core flow against a running server: sign up,
// create a place, read it back, reject a non-owner update, then delete.
func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("PLACEHUB_BASE_URL", "http://localhost:8080")

	alice := signup(t, baseURL, "Alice", uniqueEmail("alice"))
	bob := signup(t, baseURL, "Bob", uniqueEmail("bob"))

	place := createPlace(t, baseURL, alice.Token, "Empire State Building", "One of the most famous sky scrapers in the world!")
	if place.Creator != alice.UserID {
		t.Fatalf("expected creator %q, got %q", alice.UserID, place.Creator)
	}

	// Public read.
	var fetched placeResponse
	status := doJSON(t, http.MethodGet, baseURL+"/api/v1/places/"+place.ID, "", nil, &fetched)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from place read, got %d", status)
	}
	if fetched.Title != place.Title {
		t.Fatalf("title mismatch: got %q, want %q", fetched.Title, place.Title)
	}

	// The owner's place listing includes the new place.
	var listing placeListResponse
	status = doJSON(t, http.MethodGet, baseURL+"/api/v1/places/user/"+alice.UserID, "", nil, &listing)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from user places, got %d", status)
	}
	if len(listing.Places) != 1 || listing.Places[0].ID != place.ID {
		t.Fatalf("expected listing to contain the created place, got %+v", listing.Places)
	}

	// A different account cannot update or delete the place.
	update := map[string]any{"title": "Hijacked", "description": "Should not go through"}
	if status := doJSON(t, http.MethodPatch, baseURL+"/api/v1/places/"+place.ID, bob.Token, update, nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner update, got %d", status)
	}
	if status := doJSON(t, http.MethodDelete, baseURL+"/api/v1/places/"+place.ID, bob.Token, nil, nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner delete, got %d", status)
	}

	// The owner can update.
	var updated placeResponse
	update = map[string]any{"title": "Empire State", "description": "Still a famous sky scraper"}
	if status := doJSON(t, http.MethodPatch, baseURL+"/api/v1/places/"+place.ID, alice.Token, update, &updated); status != http.StatusOK {
		t.Fatalf("expected 200 from owner update, got %d", status)
	}
	if updated.Title != "Empire State" {
		t.Fatalf("update did not apply: %+v", updated)
	}

	// The owner can delete, after which the read 404s and the listing empties.
	if status := doJSON(t, http.MethodDelete, baseURL+"/api/v1/places/"+place.ID, alice.Token, nil, nil); status != http.StatusOK {
		t.Fatalf("expected 200 from owner delete, got %d", status)
	}
	if status := doJSON(t, http.MethodGet, baseURL+"/api/v1/places/"+place.ID, "", nil, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", status)
	}
	listing = placeListResponse{}
	if status := doJSON(t, http.MethodGet, baseURL+"/api/v1/places/user/"+alice.UserID, "", nil, &listing); status != http.StatusOK {
		t.Fatalf("expected 200 from user places after delete, got %d", status)
	}
	if len(listing.Places) != 0 {
		t.Fatalf("expected empty listing after delete, got %+v", listing.Places)
	}
}

// TestE2EAuthBoundaries checks the identity edges: duplicate signup,
// wrong password, and unauthenticated mutation.
func TestE2EAuthBoundaries(t *testing.T) {
	baseURL := envOrDefault("PLACEHUB_BASE_URL", "http://localhost:8080")

	email := uniqueEmail("carol")
	signup(t, baseURL, "Carol", email)

	// Duplicate signup is rejected.
	status, _ := signupRaw(t, baseURL, "Carol Again", email, "password1")
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for duplicate signup, got %d", status)
	}

	// Wrong password and unknown email are indistinguishable.
	login := map[string]any{"email": email, "password": "wrong-password"}
	if status := doJSON(t, http.MethodPost, baseURL+"/api/v1/users/login", "", login, nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong password, got %d", status)
	}
	login = map[string]any{"email": uniqueEmail("ghost"), "password": "whatever1"}
	if status := doJSON(t, http.MethodPost, baseURL+"/api/v1/users/login", "", login, nil); status != http.StatusForbidden {
		t.Fatalf("expected 403 for unknown email, got %d", status)
	}

	// Mutations without a token are rejected.
	if status := doJSON(t, http.MethodDelete, baseURL+"/api/v1/places/whatever", "", nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated delete, got %d", status)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

func signup(t *testing.T, baseURL, name, email string) authResponse {
	t.Helper()

	status, resp := signupRaw(t, baseURL, name, email, "password1")
	if status != http.StatusCreated {
		t.Fatalf("expected 201 from signup, got %d", status)
	}
	if resp.UserID == "" || resp.Token == "" {
		t.Fatalf("signup response missing fields: %+v", resp)
	}
	return resp
}

func signupRaw(t *testing.T, baseURL, name, email, password string) (int, authResponse) {
	t.Helper()

	body, contentType := multipartForm(t, map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/users/signup", body)
	if err != nil {
		t.Fatalf("create signup request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Skipf("server not available: %v", err)
	}
	defer resp.Body.Close()

	var out authResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func createPlace(t *testing.T, baseURL, token, title, description string) placeResponse {
	t.Helper()

	body, contentType := multipartForm(t, map[string]string{
		"title":       title,
		"description": description,
		"address":     "20 W 34th St, New York, NY 10001",
		"lat":         "40.7484",
		"lng":         "-73.9857",
	})

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/places", body)
	if err != nil {
		t.Fatalf("create place request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("place create request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 201 from place create, got %d: %s", resp.StatusCode, raw)
	}

	var out placeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode place response: %v", err)
	}
	if out.ID == "" {
		t.Fatalf("place create response missing id")
	}
	return out
}

// multipartForm builds a multipart body with the given fields plus a tiny
// GIF under the "image" part.
func multipartForm(t *testing.T, fields map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	for field, value := range fields {
		if err := form.WriteField(field, value); err != nil {
			t.Fatalf("write form field %s: %v", field, err)
		}
	}

	part, err := form.CreateFormFile("image", "image.gif")
	if err != nil {
		t.Fatalf("create image part: %v", err)
	}
	if _, err := part.Write(tinyGIF); err != nil {
		t.Fatalf("write image part: %v", err)
	}

	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	return &buf, form.FormDataContentType()
}

func doJSON(t *testing.T, method, url, token string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && resp.ContentLength != 0 {
			t.Fatalf("decode response: %v", err)
		}
	}

	return resp.StatusCode
}
