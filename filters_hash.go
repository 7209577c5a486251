package stencil

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// registerHashFilters wires the hash filters: md5, sha1, sha256, and
// their hmac counterparts.
func registerHashFilters(r *FilterRegistry) {
	r.Register("md5", 1, false, func(e *evalState, args []Value) (Value, error) {
		sum := md5.Sum([]byte(argString(args[0])))
		return String(hex.EncodeToString(sum[:])), nil
	})
	r.Register("sha1", 1, false, func(e *evalState, args []Value) (Value, error) {
		sum := sha1.Sum([]byte(argString(args[0])))
		return String(hex.EncodeToString(sum[:])), nil
	})
	r.Register("sha256", 1, false, func(e *evalState, args []Value) (Value, error) {
		sum := sha256.Sum256([]byte(argString(args[0])))
		return String(hex.EncodeToString(sum[:])), nil
	})
	r.Register("hmac", 2, false, func(e *evalState, args []Value) (Value, error) {
		return String(hmacHex(sha256.New, argString(args[0]), argString(args[1]))), nil
	})
	r.Register("hmac_sha1", 2, false, func(e *evalState, args []Value) (Value, error) {
		return String(hmacHex(sha1.New, argString(args[0]), argString(args[1]))), nil
	})
	r.Register("hmac_sha256", 2, false, func(e *evalState, args []Value) (Value, error) {
		return String(hmacHex(sha256.New, argString(args[0]), argString(args[1]))), nil
	})
}

func hmacHex(newHash func() hash.Hash, message, key string) string {
	mac := hmac.New(newHash, []byte(key))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
