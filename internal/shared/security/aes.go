package security

import (
	"github.com/go-think/openssl"
)

// AesCBCEncrypt 对 ws 帧体做 AES-CBC 加密（key 同时作为 iv，与客户端约定一致）。
func AesCBCEncrypt(data, key, iv []byte, padding string) ([]byte, error) {
	return openssl.AesCBCEncrypt(data, key, iv, padding)
}

func AesCBCDecrypt(data, key, iv []byte, padding string) ([]byte, error) {
	return openssl.AesCBCDecrypt(data, key, iv, padding)
}
