// Package wire implements the fixed binary layouts exchanged with the
// band: handshake frames, the datetime frame, alarm commands and the
// battery report. All functions are pure; decoding never fails silently
// on malformed input.
package wire

// Handshake command opcodes. Every host-to-device auth frame starts with
// the opcode followed by a 0x00 suffix byte.
const (
	cmdSendKey          = 0x01
	cmdRequestChallenge = 0x02
	cmdSendEncrypted    = 0x03

	cmdSuffix = 0x00
)

// EncodeKeyMessage builds the key registration frame: opcode 0x01 0x00
// followed by the 16 raw key bytes.
func EncodeKeyMessage(key []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKey
	}
	buf := make([]byte, 2+KeySize)
	buf[0] = cmdSendKey
	buf[1] = cmdSuffix
	copy(buf[2:], key)
	return buf, nil
}

// EncodeSecretRequest builds the frame asking the device to issue a
// random challenge.
func EncodeSecretRequest() []byte {
	return []byte{cmdRequestChallenge, cmdSuffix}
}

// EncodeEncryptedReply builds the frame carrying the encrypted challenge:
// opcode 0x03 0x00 followed by the 16 ciphertext bytes.
func EncodeEncryptedReply(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != ChallengeSize {
		return nil, ErrInvalidBlock
	}
	buf := make([]byte, 2+ChallengeSize)
	buf[0] = cmdSendEncrypted
	buf[1] = cmdSuffix
	copy(buf[2:], ciphertext)
	return buf, nil
}

// DecodeAuthReply splits a handshake notification into its reply code and
// trailing body. The body is empty for status-only replies and 16 bytes
// for the challenge reply. Returns ErrShortMessage if the notification
// cannot hold a reply code.
//
// The returned code may be outside the known enumeration; callers decide
// how to surface that (see ReplyCode.Known).
func DecodeAuthReply(raw []byte) (ReplyCode, []byte, error) {
	if len(raw) < ReplyCodeSize {
		return ReplyCode{}, nil, ErrShortMessage
	}
	var code ReplyCode
	copy(code[:], raw[:ReplyCodeSize])
	return code, raw[ReplyCodeSize:], nil
}
