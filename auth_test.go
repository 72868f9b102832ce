package mysql

import (
	"crypto/sha1"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScramblePasswordEmptyPassword(t *testing.T) {
	salt := []byte("0123456789abcdefghij")
	got := scramblePassword(salt, "")
	assert.Nil(t, got)
}

func TestScramblePasswordMatchesReferenceComputation(t *testing.T) {
	salt := []byte("0123456789abcdefghij")
	password := "s3cr3t"

	stage1 := sha1.Sum([]byte(password))
	stage2 := sha1.Sum(stage1[:])
	h := sha1.New()
	h.Write(salt)
	h.Write(stage2[:])
	stage3 := h.Sum(nil)
	want := make([]byte, len(stage3))
	for i := range stage3 {
		want[i] = stage3[i] ^ stage1[i]
	}

	got := scramblePassword(salt, password)
	assert.Equal(t, want, got)
	assert.Len(t, got, 20)
}

func TestScramblePasswordDeterministic(t *testing.T) {
	salt := []byte("0123456789abcdefghij")
	a := scramblePassword(salt, "hunter2")
	b := scramblePassword(salt, "hunter2")
	assert.Equal(t, a, b)
}
