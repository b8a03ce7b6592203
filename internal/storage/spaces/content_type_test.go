package spaces

import "testing"

func TestContentType(t *testing.T) {
	tests := map[string]string{
		"1.jpg":         "image/jpeg",
		"dir/1.JPEG":    "image/jpeg",
		"1.png":         "image/png",
		"1.webp":        "image/webp",
		"1.gif":         "image/gif",
		"no-extension":  "application/octet-stream",
		"something.bin": "application/octet-stream",
	}

	for key, expected := range tests {
		if result := contentType(key); result != expected {
			t.Errorf("%s: wrong content type %s", key, result)
		}
	}
}
