package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// CalculateHash вычисляет HMAC-SHA256 хеш от данных с использованием ключа.
// Возвращает хеш в виде шестнадцатеричной строки.
// Используется для подписи карточек, которые агент отправляет на сервер дашборда.
func CalculateHash(data []byte, key string) string {
	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// VerifyHash сравнивает подпись за постоянное время
func VerifyHash(data []byte, key, hash string) bool {
	expected, err := hex.DecodeString(hash)
	if err != nil {
		return false
	}
	h := hmac.New(sha256.New, []byte(key))
	h.Write(data)
	return hmac.Equal(h.Sum(nil), expected)
}
