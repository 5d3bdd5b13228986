package encrypt

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword bcrypt 加密
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword 校验明文与密文是否匹配
func VerifyPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// IsHashed 判断是否已经是 bcrypt 密文
func IsHashed(password string) bool {
	_, err := bcrypt.Cost([]byte(password))
	return err == nil
}
