package security

import (
	"crypto/sha256"
	"encoding/hex"
)

// Password 计算加盐口令摘要（passcode 为注册时生成的随机盐）。
func Password(pwd, passcode string) string {
	sum := sha256.Sum256([]byte(pwd + ":" + passcode))
	return hex.EncodeToString(sum[:])
}
