package utils

// 辅助工具函数-密码哈希与JWT
import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	cipher_number = 12 //bcrypt cost
	Expire_hours  = 72
	default_role  = "user"
)

var jwtSecret = []byte("secret") // 生产环境由配置覆盖

func SetJWTSecret(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

func HashPassword(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), cipher_number)
	return string(hash), err
}

func CheckPassword(pwd, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)) == nil
}

func GenerateJWT(email string, role string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(time.Duration(Expire_hours) * time.Hour).Unix(), // 过期时间（秒）
		"iat":   time.Now().Unix(),
		"nbf":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(jwtSecret)
	return "Bearer " + signedToken, err // 注意 Bearer 后面要有空格
}

// token里带的是email和role
func ParseJWT(tk string) (string, string, int64, error) {
	tk = strings.TrimSpace(tk)
	low := strings.ToLower(tk)
	if strings.HasPrefix(low, "bearer ") {
		tk = strings.TrimSpace(tk[7:]) //7-前缀长度
	}
	if tk == "" {
		return "", default_role, 0, errors.New("empty token")
	}
	token, err := jwt.Parse(tk, func(token *jwt.Token) (interface{}, error) {
		// 固定算法族
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return jwtSecret, nil
	})
	if err != nil {
		return "", default_role, 0, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		email, ok1 := claims["email"].(string)
		role, ok2 := claims["role"].(string)
		// exp 在 JSON 解析时会成为 float64，需要先断言再转换
		var expireTime int64
		var ok3 bool
		if expFloat, ok := claims["exp"].(float64); ok {
			expireTime = int64(expFloat)
			ok3 = true
		} else if expInt, ok := claims["exp"].(int64); ok {
			expireTime = expInt
			ok3 = true
		}
		if !ok1 || !ok2 || !ok3 {
			return "", default_role, 0, errors.New("user's claim is not a string")
		}
		return email, role, expireTime, nil
	}
	return "", default_role, 0, errors.New("invalid token")
}
