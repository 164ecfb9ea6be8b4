package link

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSString(t *testing.T) {
	ss := SS{Method: "aes-256-cfb", Password: "abc", Server: "1.2.3.4", Port: 1025}
	want := "ss://" + base64.URLEncoding.EncodeToString([]byte("aes-256-cfb:abc@1.2.3.4:1025"))
	assert.Equal(t, want, ss.String())
}

func TestSSKeepsPadding(t *testing.T) {
	// a 29 byte payload encodes to 40 characters ending in "="
	ss := SS{Method: "rc4-md5", Password: "pass1", Server: "a.example", Port: 12345}
	s := ss.String()
	assert.True(t, strings.HasSuffix(s, "="), s)
	assert.NotContains(t, s, "+")
	assert.NotContains(t, s, "/")
}

func TestSSRoundTrip(t *testing.T) {
	cases := []SS{
		{Method: "chacha20", Password: "p@ss:word", Server: "example.com", Port: 8388},
		{Method: "none", Password: "??>>??", Server: "::1", Port: 1026},
	}
	for _, c := range cases {
		got, err := ParseSS(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestSSRPayload(t *testing.T) {
	ssr := SSR{
		Server:   "1.2.3.4",
		Port:     1025,
		Protocol: "auth_chain_a",
		Method:   "aes-256-cfb",
		Obfs:     "http_simple",
		Password: "abcdef",
		Remarks:  "node",
		Group:    "g",
	}
	assert.Equal(t, "1.2.3.4:1025:auth_chain_a:aes-256-cfb:http_simple:YWJjZGVm/?remarks=bm9kZQ==&group=Zw==", ssr.Payload())
	assert.Equal(t, "ssr://"+base64.URLEncoding.EncodeToString([]byte(ssr.Payload())), ssr.String())
}

func TestSSRRoundTrip(t *testing.T) {
	cases := []SSR{
		{Server: "jp.example.com", Port: 10086, Protocol: "origin", Method: "chacha20", Obfs: "plain", Password: "s3cret!", Remarks: "东京", Group: "谜之屋"},
		{Server: "2001:db8::1", Port: 2000, Protocol: "auth_sha1_v4", Method: "rc4-md5", Obfs: "http_post", Password: "??~~>>", Remarks: "", Group: ""},
	}
	for _, c := range cases {
		got, err := ParseSSR(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestParseMalformed(t *testing.T) {
	_, err := ParseSS("ssr://abc")
	assert.True(t, errors.Is(err, ErrMalformed))
	_, err = ParseSS("ss://%%%")
	assert.True(t, errors.Is(err, ErrMalformed))
	_, err = ParseSS(SchemeSS + encode("aes-256-cfb:pass"))
	assert.True(t, errors.Is(err, ErrMalformed))
	_, err = ParseSSR(SchemeSSR + encode("host:1:a:b:c"))
	assert.True(t, errors.Is(err, ErrMalformed))
	_, err = ParseSSR(SchemeSSR + encode("host:x:a:b:c:ZA==/?remarks=&group="))
	assert.True(t, errors.Is(err, ErrMalformed))
}
