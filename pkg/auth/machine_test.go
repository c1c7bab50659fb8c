package auth

import (
	"bytes"
	"testing"

	"github.com/bandkit/band2/pkg/crypto"
	"github.com/bandkit/band2/pkg/wire"
)

func testKey(t *testing.T, reset bool) Key {
	t.Helper()
	secret := make([]byte, wire.KeySize)
	for i := range secret {
		secret[i] = byte(i * 3)
	}
	key, err := NewKey(secret, reset)
	if err != nil {
		t.Fatalf("NewKey failed: %v", err)
	}
	return key
}

func testChallenge() []byte {
	c := make([]byte, wire.ChallengeSize)
	for i := range c {
		c[i] = byte(0x30 + i)
	}
	return c
}

func reply(code wire.ReplyCode, body []byte) []byte {
	return append(code[:], body...)
}

func TestMachineNoReset(t *testing.T) {
	key := testKey(t, false)
	challenge := testChallenge()
	m := NewMachine(key)

	// Step 1: opening frame is the secret request.
	frame, err := m.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !bytes.Equal(frame, []byte{0x02, 0x00}) {
		t.Errorf("Expected secret request, got % x", frame)
	}
	if m.State() != StateAwaitChallenge {
		t.Errorf("Expected state AwaitChallenge, got %v", m.State())
	}

	// Step 2: challenge arrives, machine answers with the ciphertext.
	send, done, err := m.Advance(reply(wire.ReplyChallenge, challenge))
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if done != nil {
		t.Fatalf("Unexpected early outcome: %+v", done)
	}
	wantCT, _ := crypto.EncryptChallenge(key.Secret(), challenge)
	wantFrame, _ := wire.EncodeEncryptedReply(wantCT)
	if !bytes.Equal(send, wantFrame) {
		t.Errorf("Expected encrypted reply % x, got % x", wantFrame, send)
	}
	if m.State() != StateAwaitAuthResult {
		t.Errorf("Expected state AwaitAuthResult, got %v", m.State())
	}

	// Step 3: auth ok terminates the run.
	send, done, err = m.Advance(reply(wire.ReplyAuthOK, nil))
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if send != nil {
		t.Errorf("No frame expected after auth ok, got % x", send)
	}
	if done == nil || done.Status != StatusAuthOK {
		t.Fatalf("Expected AuthOK outcome, got %+v", done)
	}
	if done.KeyRegistered {
		t.Errorf("KeyRegistered should be false without reset")
	}
	if m.State() != StateDone {
		t.Errorf("Expected state Done, got %v", m.State())
	}
}

func TestMachineReset(t *testing.T) {
	key := testKey(t, true)
	challenge := testChallenge()
	m := NewMachine(key)

	// Step 1: opening frame registers the key.
	frame, err := m.Start()
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	wantKeyMsg, _ := wire.EncodeKeyMessage(key.Secret())
	if !bytes.Equal(frame, wantKeyMsg) {
		t.Errorf("Expected key message % x, got % x", wantKeyMsg, frame)
	}
	if m.State() != StateAwaitKeyAccepted {
		t.Errorf("Expected state AwaitKeyAccepted, got %v", m.State())
	}

	// Step 2: key accepted, machine requests the challenge.
	send, done, err := m.Advance(reply(wire.ReplyKeyAccepted, nil))
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if done != nil {
		t.Fatalf("Unexpected early outcome: %+v", done)
	}
	if !bytes.Equal(send, []byte{0x02, 0x00}) {
		t.Errorf("Expected secret request, got % x", send)
	}

	// Steps 3 and 4: challenge then auth ok.
	send, done, err = m.Advance(reply(wire.ReplyChallenge, challenge))
	if err != nil || done != nil {
		t.Fatalf("Challenge step: send=% x done=%+v err=%v", send, done, err)
	}
	_, done, err = m.Advance(reply(wire.ReplyAuthOK, nil))
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if done == nil || done.Status != StatusAuthOK {
		t.Fatalf("Expected AuthOK outcome, got %+v", done)
	}
	if !done.KeyRegistered {
		t.Errorf("KeyRegistered should be true on the reset path")
	}
}

func TestMachineKeyMismatch(t *testing.T) {
	m := NewMachine(testKey(t, false))
	if _, err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	send, done, err := m.Advance(reply(wire.ReplyKeyMismatch, nil))
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if send != nil {
		t.Errorf("No frame expected after mismatch, got % x", send)
	}
	if done == nil || done.Status != StatusKeyMismatch {
		t.Fatalf("Expected KeyMismatch outcome, got %+v", done)
	}
	if m.State() != StateDone {
		t.Errorf("Expected state Done, got %v", m.State())
	}
}

func TestMachineKeyAborted(t *testing.T) {
	m := NewMachine(testKey(t, true))
	if _, err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	_, done, err := m.Advance(reply(wire.ReplyKeyAborted, nil))
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if done == nil || done.Status != StatusKeyAborted {
		t.Fatalf("Expected KeyAborted outcome, got %+v", done)
	}
}

func TestMachineUnknownCode(t *testing.T) {
	m := NewMachine(testKey(t, false))
	if _, err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	code := wire.ReplyCode{0x10, 0x07, 0x03}
	_, done, err := m.Advance(reply(code, nil))
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if done == nil || done.Status != StatusUnknown {
		t.Fatalf("Expected Unknown outcome, got %+v", done)
	}
	if done.Code != code {
		t.Errorf("Expected code %s carried in outcome, got %s", code, done.Code)
	}
}

func TestMachineMalformedReply(t *testing.T) {
	m := NewMachine(testKey(t, false))
	if _, err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if _, _, err := m.Advance([]byte{0x10}); err != ErrMalformedMessage {
		t.Errorf("Expected ErrMalformedMessage, got %v", err)
	}
}

func TestMachineBadChallengeSize(t *testing.T) {
	m := NewMachine(testKey(t, false))
	if _, err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	_, _, err := m.Advance(reply(wire.ReplyChallenge, make([]byte, 8)))
	if err != crypto.ErrInvalidChallengeSize {
		t.Errorf("Expected ErrInvalidChallengeSize, got %v", err)
	}
}

func TestMachineStateDiscipline(t *testing.T) {
	m := NewMachine(testKey(t, false))

	// Advance before Start.
	if _, _, err := m.Advance(reply(wire.ReplyAuthOK, nil)); err != ErrInvalidState {
		t.Errorf("Advance before Start: expected ErrInvalidState, got %v", err)
	}

	if _, err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	// Double Start.
	if _, err := m.Start(); err != ErrInvalidState {
		t.Errorf("Double Start: expected ErrInvalidState, got %v", err)
	}

	// Advance after Done.
	if _, _, err := m.Advance(reply(wire.ReplyKeyMismatch, nil)); err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if _, _, err := m.Advance(reply(wire.ReplyAuthOK, nil)); err != ErrInvalidState {
		t.Errorf("Advance after Done: expected ErrInvalidState, got %v", err)
	}
}
