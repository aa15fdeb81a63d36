package utils

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes bcrypt 只接受 72 字节以内
const MaxPasswordBytes = 72

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword 旧数据里的明文密码按精确匹配
func CheckPassword(pw, stored string) bool {
	if !IsHashed(stored) {
		return stored != "" && pw == stored
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pw)) == nil
}

func IsHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}
