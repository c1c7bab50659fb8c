package wire

import (
	"bytes"
	"testing"
)

func TestEncodeKeyMessage(t *testing.T) {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}

	frame, err := EncodeKeyMessage(key)
	if err != nil {
		t.Fatalf("EncodeKeyMessage failed: %v", err)
	}
	if len(frame) != 2+KeySize {
		t.Fatalf("Expected 18-byte frame, got %d", len(frame))
	}
	if frame[0] != 0x01 || frame[1] != 0x00 {
		t.Errorf("Expected prefix 01 00, got %02x %02x", frame[0], frame[1])
	}
	if !bytes.Equal(frame[2:], key) {
		t.Errorf("Key bytes not copied verbatim")
	}
}

func TestEncodeKeyMessageWrongSize(t *testing.T) {
	if _, err := EncodeKeyMessage(make([]byte, 8)); err != ErrInvalidKey {
		t.Errorf("Expected ErrInvalidKey, got %v", err)
	}
}

func TestEncodeSecretRequest(t *testing.T) {
	if got := EncodeSecretRequest(); !bytes.Equal(got, []byte{0x02, 0x00}) {
		t.Errorf("Expected 02 00, got % x", got)
	}
}

func TestEncodeEncryptedReply(t *testing.T) {
	ct := make([]byte, ChallengeSize)
	for i := range ct {
		ct[i] = byte(0xA0 + i)
	}

	frame, err := EncodeEncryptedReply(ct)
	if err != nil {
		t.Fatalf("EncodeEncryptedReply failed: %v", err)
	}
	if frame[0] != 0x03 || frame[1] != 0x00 {
		t.Errorf("Expected prefix 03 00, got %02x %02x", frame[0], frame[1])
	}
	if !bytes.Equal(frame[2:], ct) {
		t.Errorf("Ciphertext not copied verbatim")
	}

	if _, err := EncodeEncryptedReply(ct[:10]); err != ErrInvalidBlock {
		t.Errorf("Expected ErrInvalidBlock, got %v", err)
	}
}

func TestDecodeAuthReply(t *testing.T) {
	body := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	raw := append([]byte{0x10, 0x02, 0x01}, body...)

	code, got, err := DecodeAuthReply(raw)
	if err != nil {
		t.Fatalf("DecodeAuthReply failed: %v", err)
	}
	if code != ReplyChallenge {
		t.Errorf("Expected ReplyChallenge, got %s", code)
	}
	if !bytes.Equal(got, body) {
		t.Errorf("Expected body % x, got % x", body, got)
	}
}

func TestDecodeAuthReplyShort(t *testing.T) {
	for _, raw := range [][]byte{nil, {}, {0x10}, {0x10, 0x01}} {
		if _, _, err := DecodeAuthReply(raw); err != ErrShortMessage {
			t.Errorf("len %d: expected ErrShortMessage, got %v", len(raw), err)
		}
	}
}

func TestReplyCodeKnown(t *testing.T) {
	known := []ReplyCode{ReplyKeyAccepted, ReplyChallenge, ReplyAuthOK, ReplyKeyMismatch, ReplyKeyAborted}
	for _, c := range known {
		if !c.Known() {
			t.Errorf("%s should be known", c)
		}
	}

	unknown := ReplyCode{0x10, 0x09, 0x01}
	if unknown.Known() {
		t.Errorf("%s should not be known", unknown)
	}
	if got := unknown.String(); got != "Unknown(10 09 01)" {
		t.Errorf("Unexpected String(): %q", got)
	}
}
