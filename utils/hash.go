package utils

// 文件落盘时同步计算SHA256，并做大小上限保护
import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

var (
	ErrSizeExceeded = errors.New("file size exceeded limit")
	ErrSizeMismatch = errors.New("file size mismatched expected size")
)

func CalculateHash(file io.Reader) (string, error) {
	h := sha256.New()
	_, err := io.Copy(h, file)
	return hex.EncodeToString(h.Sum(nil)), err
}

func CopyWithHash(dst io.Writer, src io.Reader, maxSize, expectedSize int64) (string, int64, error) {
	hasher := sha256.New()
	w := io.MultiWriter(dst, hasher) // 一路文件存储一路哈希

	var r io.Reader = src
	if maxSize > 0 {
		r = io.LimitReader(src, maxSize+1) //多读1字节用于触发超限检测
	}

	written, err := io.Copy(w, r)
	if err != nil {
		return "", written, fmt.Errorf("this file's copy failed: %w", err)
	}

	if maxSize > 0 && written > maxSize {
		return "", written, ErrSizeExceeded
	}
	if expectedSize > 0 && written != expectedSize {
		return "", written, ErrSizeMismatch
	}

	sum := hasher.Sum(nil)
	return hex.EncodeToString(sum), written, nil
}
