package fonts

import (
	"encoding/base64"
	"testing"

	"golang.org/x/image/font"
)

func TestFace(t *testing.T) {
	face, err := Face(12)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	defer face.Close()

	narrow := font.MeasureString(face, "ii")
	wide := font.MeasureString(face, "WW")
	if narrow <= 0 || wide <= narrow {
		t.Errorf("MeasureString: ii=%v WW=%v", narrow, wide)
	}
}

func TestRegularTTFBase64(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(RegularTTFBase64())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(raw) != len(RegularTTF()) {
		t.Errorf("decoded %d bytes, want %d", len(raw), len(RegularTTF()))
	}
}
