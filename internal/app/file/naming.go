package file

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"ktchat/internal/pkg/randx"
)

// Extension returns the substring after the last dot of the filename, with
// its original case preserved. It is empty when the name has no dot or the
// dot is the final character.
func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx == -1 || idx == len(filename)-1 {
		return ""
	}
	return filename[idx+1:]
}

// GenerateSafeName produces the stored filename for an upload:
// "<unix-millis>_<16 hex chars>[.<ext>]". The random component comes from a
// cryptographically secure source, so collisions are computationally
// infeasible even under concurrent uploads and no uniqueness retry loop is
// needed. An empty original name falls back to a generic token.
func GenerateSafeName(originalFilename string) (string, error) {
	if strings.TrimSpace(originalFilename) == "" {
		token, err := randx.Hex(randx.FileNameTokenLength)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("file_%d_%s", time.Now().UnixMilli(), token), nil
	}

	token, err := randx.Hex(randx.FileNameTokenLength)
	if err != nil {
		return "", err
	}

	// Extension case is preserved; validation lowercases only for comparison.
	ext := Extension(originalFilename)
	if ext != "" {
		return fmt.Sprintf("%d_%s.%s", time.Now().UnixMilli(), token, ext), nil
	}
	return fmt.Sprintf("%d_%s", time.Now().UnixMilli(), token), nil
}

// NormalizeOriginalFilename cleans the user-supplied name for storage as
// display metadata: path separators are stripped to defeat traversal and
// display confusion, and the result is NFC-normalized so visually identical
// names with different encodings store identically. Empty input yields empty
// output.
func NormalizeOriginalFilename(originalFilename string) string {
	if originalFilename == "" {
		return ""
	}

	cleaned := strings.NewReplacer("/", "", "\\", "").Replace(originalFilename)
	return norm.NFC.String(cleaned)
}

// BuildObjectKey derives the object store path for a file:
// <prefix>/<category lowercase>/<uploaderID>/<storedName>. The four-level
// namespace partitions the store by purpose and tenant, so bulk lifecycle
// operations reduce to key-prefix scans. Uniqueness is carried entirely by
// the generated stored name.
func BuildObjectKey(prefix string, category Category, uploaderID, storedName string) string {
	prefix = strings.TrimSuffix(prefix, "/")

	return strings.Join([]string{
		prefix,
		strings.ToLower(string(category)),
		uploaderID,
		storedName,
	}, "/")
}

// StoredNameFromKey resolves the stored filename from an object key: the
// segment after the last slash, or the key itself when it has none.
func StoredNameFromKey(objectKey string) string {
	idx := strings.LastIndex(objectKey, "/")
	if idx == -1 {
		return objectKey
	}
	return objectKey[idx+1:]
}
