package validation

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlocklist(t *testing.T, words ...string) *WordBlocklist {
	t.Helper()
	b, err := NewWordBlocklist(words)
	require.NoError(t, err)
	return b
}

func TestWordBlocklistMatchesWholeWords(t *testing.T) {
	b := newBlocklist(t, "casino", "free")

	tests := []struct {
		name    string
		text    string
		blocked bool
	}{
		{"exact match", "casino", true},
		{"case insensitive", "CaSiNo nights", true},
		{"inside sentence", "the best casino in town", true},
		{"adjacent punctuation", "visit our casino, right now!", true},
		{"wrapped in quotes", `a "free" offer`, true},
		{"substring of longer word", "freedom of choice", false},
		{"prefix of longer word", "casinos everywhere", false},
		{"clean text", "a quality woodworking plugin", false},
		{"empty text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.Check("description", tt.text)
			if tt.blocked {
				require.Error(t, err)
				var fieldErr *FieldError
				require.ErrorAs(t, err, &fieldErr)
				assert.Equal(t, "description", fieldErr.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWordBlocklistEmptyListMatchesNothing(t *testing.T) {
	b := newBlocklist(t)
	assert.NoError(t, b.Check("name", "casino free scam"))
}

func TestWordBlocklistQuotesMetaCharacters(t *testing.T) {
	// A term containing regexp metacharacters must be treated literally
	b := newBlocklist(t, "c.sino")
	assert.NoError(t, b.Check("name", "casino"))
	assert.Error(t, b.Check("name", "c.sino"))
}

func TestCheckPrice(t *testing.T) {
	assert.NoError(t, CheckPrice(0))
	assert.NoError(t, CheckPrice(19.99))

	err := CheckPrice(-5)
	require.Error(t, err)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "price", fieldErr.Field)
}

// makeFileHeader builds a real multipart.FileHeader around the given bytes
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	reader := multipart.NewReader(&buf, w.Boundary())
	form, err := reader.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["image"]
	require.Len(t, files, 1)
	return files[0]
}

func jpegBytes(size int) []byte {
	content := make([]byte, size)
	copy(content, []byte{0xFF, 0xD8, 0xFF, 0xE0})
	return content
}

func pngBytes(size int) []byte {
	content := make([]byte, size)
	copy(content, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'})
	return content
}

func TestCheckImageUpload(t *testing.T) {
	allowed := []string{"image/jpeg", "image/png"}
	maxSize := int64(5 * 1024 * 1024)

	t.Run("no upload passes unchanged", func(t *testing.T) {
		assert.NoError(t, CheckImageUpload("image", nil, allowed, maxSize))
	})

	t.Run("2 MiB JPEG accepted", func(t *testing.T) {
		fh := makeFileHeader(t, "photo.jpg", jpegBytes(2*1024*1024))
		assert.NoError(t, CheckImageUpload("image", fh, allowed, maxSize))
	})

	t.Run("6 MiB JPEG rejected for size", func(t *testing.T) {
		fh := makeFileHeader(t, "photo.jpg", jpegBytes(6*1024*1024))
		err := CheckImageUpload("image", fh, allowed, maxSize)
		require.Error(t, err)
		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Equal(t, "image", fieldErr.Field)
		assert.Contains(t, fieldErr.Message, "size")
	})

	t.Run("PNG accepted", func(t *testing.T) {
		fh := makeFileHeader(t, "logo.png", pngBytes(1024))
		assert.NoError(t, CheckImageUpload("image", fh, allowed, maxSize))
	})

	t.Run("text file rejected for type", func(t *testing.T) {
		fh := makeFileHeader(t, "notes.txt", []byte("just some plain text, definitely not an image"))
		err := CheckImageUpload("image", fh, allowed, maxSize)
		require.Error(t, err)
		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr)
		assert.Contains(t, fieldErr.Message, "unsupported image type")
	})

	t.Run("content sniffing beats file extension", func(t *testing.T) {
		// A text payload named .jpg must still be rejected
		fh := makeFileHeader(t, "fake.jpg", []byte("<html><body>not an image</body></html>"))
		assert.Error(t, CheckImageUpload("image", fh, allowed, maxSize))
	})
}
