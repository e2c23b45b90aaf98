package file_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ktchat/internal/app/file"
)

func TestExtension(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"photo.PNG", "PNG"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{"trailing.", ""},
		{".hidden", "hidden"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, file.Extension(tc.in), "extension of %q", tc.in)
	}
}

func TestGenerateSafeName_Format(t *testing.T) {
	name, err := file.GenerateSafeName("photo.PNG")
	require.NoError(t, err)

	// Extension case is preserved from the original name.
	assert.Regexp(t, regexp.MustCompile(`^\d+_[0-9a-f]{16}\.PNG$`), name)

	noExt, err := file.GenerateSafeName("noext")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d+_[0-9a-f]{16}$`), noExt)

	empty, err := file.GenerateSafeName("   ")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^file_\d+_[0-9a-f]{16}$`), empty)
}

func TestGenerateSafeName_NeverCollides(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)
	for range n {
		name, err := file.GenerateSafeName("photo.png")
		require.NoError(t, err)
		seen[name] = struct{}{}
	}

	assert.Len(t, seen, n)
}

func TestNormalizeOriginalFilename(t *testing.T) {
	assert.Equal(t, "abc.txt", file.NormalizeOriginalFilename(`a/b\c.txt`))
	assert.Equal(t, "", file.NormalizeOriginalFilename(""))

	// Only the separators are stripped; remaining dots are harmless because
	// the stored name, not the original, becomes the object key.
	assert.Equal(t, "....report.pdf", file.NormalizeOriginalFilename("../../report.pdf"))

	// Decomposed Hangul (NFD) composes to the canonical NFC form.
	decomposed := "한.txt"
	assert.Equal(t, "한.txt", file.NormalizeOriginalFilename(decomposed))
}

func TestBuildObjectKey(t *testing.T) {
	key := file.BuildObjectKey("uploads", file.CategoryChat, "u1", "123_abcd.png")
	assert.Equal(t, "uploads/chat/u1/123_abcd.png", key)

	// A trailing slash on the prefix is stripped before joining.
	key = file.BuildObjectKey("uploads/", file.CategoryProfile, "u2", "456_ef01.jpg")
	assert.Equal(t, "uploads/profile/u2/456_ef01.jpg", key)
}

func TestStoredNameFromKey(t *testing.T) {
	assert.Equal(t, "123_abcd.png", file.StoredNameFromKey("uploads/chat/u1/123_abcd.png"))
	assert.Equal(t, "bare-name", file.StoredNameFromKey("bare-name"))
}
