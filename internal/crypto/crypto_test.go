package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHash(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
		key  string
		want string
	}{
		{
			name: "Empty data",
			data: []byte{},
			key:  "key",
			want: "5d5d139563c95b5967b9bd9a8c9b233a9dedb45072794cd232dc1b74832607d0",
		},
		{
			name: "RFC 4231 case 2",
			data: []byte("what do ya want for nothing?"),
			key:  "Jefe",
			want: "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculateHash(tc.data, tc.key))
		})
	}
}

func TestVerifyHash(t *testing.T) {
	data := []byte(`[{"label":"CPU","percentage":37.5}]`)
	hash := CalculateHash(data, "secret")

	assert.True(t, VerifyHash(data, "secret", hash))
	assert.False(t, VerifyHash(data, "other", hash))
	assert.False(t, VerifyHash([]byte("tampered"), "secret", hash))
	assert.False(t, VerifyHash(data, "secret", "not-hex"))
	assert.False(t, VerifyHash(data, "secret", ""))
}

func BenchmarkCalculateHash(b *testing.B) {
	data := make([]byte, 4096)
	for i := 0; i < b.N; i++ {
		CalculateHash(data, "secret")
	}
}
