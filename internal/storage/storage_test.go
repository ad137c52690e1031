package storage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "versioned upload url",
			url:  "https://cdn.example.com/docs/upload/v1712345678/id-cards/user_123_idcard.png",
			want: "id-cards/user_123_idcard",
		},
		{
			name: "no version prefix",
			url:  "https://cdn.example.com/docs/upload/passports/user_123_passport.jpg",
			want: "passports/user_123_passport",
		},
		{
			name: "no extension",
			url:  "https://cdn.example.com/docs/upload/v1/passports/user_123_passport",
			want: "passports/user_123_passport",
		},
		{
			name: "not a storage url",
			url:  "https://example.com/some/other/path.png",
			want: "",
		},
		{
			name: "upload with nothing after it",
			url:  "https://cdn.example.com/docs/upload",
			want: "",
		},
		{
			name: "garbage",
			url:  "://not-a-url",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PublicIDFromURL(tt.url))
		})
	}
}

func TestHTTPClient_Upload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "id-cards", r.FormValue("folder"))
		assert.Equal(t, "user_1_idcard", r.FormValue("public_id"))

		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://cdn.example.com/docs/upload/v1/id-cards/user_1_idcard.png",
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(Config{BaseURL: srv.URL, UploadPreset: "kyc", APIKey: "test"})
	url, err := client.Upload(context.Background(), []byte("image-bytes"), "id-cards", "user_1_idcard")
	assert.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/docs/upload/v1/id-cards/user_1_idcard.png", url)
}

func TestHTTPClient_UploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPClient(Config{BaseURL: srv.URL})
	_, err := client.Upload(context.Background(), []byte("x"), "passports", "user_1_passport")
	assert.Error(t, err)
}

func TestHTTPClient_Delete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/destroy", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "id-cards/user_1_idcard", r.FormValue("public_id"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewHTTPClient(Config{BaseURL: srv.URL})
	err := client.Delete(context.Background(), "id-cards/user_1_idcard")
	assert.NoError(t, err)
}
