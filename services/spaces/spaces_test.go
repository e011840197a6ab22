package spaces

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, cdnURL string) *Client {
	t.Helper()

	client, err := NewClient(Config{
		AccessKey: "test-access",
		SecretKey: "test-secret",
		Bucket:    "dept-site",
		Region:    "fra1",
		Endpoint:  "fra1.digitaloceanspaces.com",
		CDNURL:    cdnURL,
	})
	require.NoError(t, err)
	return client
}

func TestFileURL(t *testing.T) {
	t.Run("without CDN uses bucket subdomain", func(t *testing.T) {
		client := newTestClient(t, "")
		assert.Equal(t, "https://dept-site.fra1.digitaloceanspaces.com/uploads/a.png", client.FileURL("uploads/a.png"))
	})

	t.Run("CDN base replaces origin", func(t *testing.T) {
		client := newTestClient(t, "https://cdn.dept.example")
		assert.Equal(t, "https://cdn.dept.example/uploads/a.png", client.FileURL("uploads/a.png"))
	})
}

func TestGetPresignedURL(t *testing.T) {
	client := newTestClient(t, "")

	url, err := client.GetPresignedURL("resources/lecture-notes.pdf", 15*time.Minute)
	require.NoError(t, err)

	assert.Contains(t, url, "resources/lecture-notes.pdf")
	assert.Contains(t, url, "X-Amz-Signature=")
	assert.Contains(t, url, "X-Amz-Expires=900")
}

func TestGenerateKey(t *testing.T) {
	key := GenerateKey("uploads", "Photo.JPG")

	assert.True(t, strings.HasPrefix(key, "uploads/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, GenerateKey("uploads", "Photo.JPG"))
}

func TestIsAllowedExtension(t *testing.T) {
	assert.True(t, IsAllowedExtension("notes.pdf"))
	assert.True(t, IsAllowedExtension("photo.JPEG"))
	assert.False(t, IsAllowedExtension("payload.exe"))
	assert.False(t, IsAllowedExtension("noextension"))
}
