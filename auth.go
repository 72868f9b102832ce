package mysql

import "crypto/sha1"

// scramblePassword computes the mysql_native_password response, per
// spec.md §4.3 step 4: SHA1(password) XOR SHA1(salt ∥ SHA1(SHA1(password))).
// An empty password yields a zero-length response rather than hashing the
// empty string, matching the server's own special case.
func scramblePassword(salt []byte, password string) []byte {
	if len(password) == 0 {
		return nil
	}

	// stage1 = SHA1(password)
	crypt := sha1.New()
	crypt.Write([]byte(password))
	stage1 := crypt.Sum(nil)

	// stage2 = SHA1(SHA1(password))
	crypt.Reset()
	crypt.Write(stage1)
	stage2 := crypt.Sum(nil)

	// result = SHA1(salt ∥ stage2) XOR stage1
	crypt.Reset()
	crypt.Write(salt)
	crypt.Write(stage2)
	stage3 := crypt.Sum(nil)

	for i := range stage3 {
		stage3[i] ^= stage1[i]
	}
	return stage3
}
