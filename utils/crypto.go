package utils

// 用户LLM密钥的对称加密-AES-256-GCM
// 密钥由服务端secret经scrypt推导，envelope自带nonce和认证标签
import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"sync"

	"golang.org/x/crypto/scrypt"
)

const (
	gcmTagSize   = 16
	gcmNonceSize = 12
	keySalt      = "salt" //固定盐-与历史数据保持一致
)

var (
	encSecret = "your-32-character-secret-key-here!" // 默认值仅供开发，生产由配置覆盖
	encKey    []byte
	keyOnce   sync.Once
)

// SetEncryptionSecret 必须在首次加解密之前调用（InitConfig内完成）
func SetEncryptionSecret(secret string) {
	if secret != "" {
		encSecret = secret
	}
}

func derivedKey() []byte {
	keyOnce.Do(func() {
		k, err := scrypt.Key([]byte(encSecret), []byte(keySalt), 16384, 8, 1, 32)
		if err != nil {
			panic(err) // 参数是常量，只有内存不足才会到这里
		}
		encKey = k
	})
	return encKey
}

// Encrypt 加密明文，返回 hex(nonce):hex(tag):hex(ciphertext) 格式的envelope
// 内部出错时退化为base64编码，保证调用方拿到的永远是可存储的字符串
func Encrypt(plain string) string {
	block, err := aes.NewCipher(derivedKey())
	if err != nil {
		return base64.StdEncoding.EncodeToString([]byte(plain))
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return base64.StdEncoding.EncodeToString([]byte(plain))
	}
	nonce := make([]byte, gcmNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return base64.StdEncoding.EncodeToString([]byte(plain))
	}
	sealed := gcm.Seal(nil, nonce, []byte(plain), nil) // ciphertext||tag
	ct := sealed[:len(sealed)-gcmTagSize]
	tag := sealed[len(sealed)-gcmTagSize:]
	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(ct)
}

// Decrypt 解密envelope
// 不是当前格式时按历史数据兜底：先试base64，再不行原样返回，绝不抛错
func Decrypt(envelope string) string {
	if parts := strings.Split(envelope, ":"); len(parts) == 3 {
		nonce, err1 := hex.DecodeString(parts[0])
		tag, err2 := hex.DecodeString(parts[1])
		ct, err3 := hex.DecodeString(parts[2])
		if err1 == nil && err2 == nil && err3 == nil &&
			len(nonce) == gcmNonceSize && len(tag) == gcmTagSize {
			if block, err := aes.NewCipher(derivedKey()); err == nil {
				if gcm, err := cipher.NewGCM(block); err == nil {
					if plain, err := gcm.Open(nil, nonce, append(ct, tag...), nil); err == nil {
						return string(plain)
					}
				}
			}
		}
	}
	// 旧格式兜底
	if decoded, err := base64.StdEncoding.DecodeString(envelope); err == nil {
		return string(decoded)
	}
	return envelope
}
