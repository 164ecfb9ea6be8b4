// Package link builds and parses the ss:// and ssr:// URIs understood by
// Shadowsocks and ShadowsocksR clients.
//
// Both formats use URL-safe base64 with padding kept. Clients in the wild
// depend on the exact bytes, so the encoding must not be changed to the raw
// (unpadded) variant.
package link

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	SchemeSS  = "ss://"
	SchemeSSR = "ssr://"
)

var ErrMalformed = errors.New("malformed link")

func encode(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func decode(s string) (string, error) {
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return string(b), nil
}

type SS struct {
	Method   string
	Password string
	Server   string
	Port     int
}

func (ss SS) String() string {
	return SchemeSS + encode(fmt.Sprintf("%s:%s@%s:%d", ss.Method, ss.Password, ss.Server, ss.Port))
}

func ParseSS(link string) (SS, error) {
	if !strings.HasPrefix(link, SchemeSS) {
		return SS{}, fmt.Errorf("%w: missing %s prefix", ErrMalformed, SchemeSS)
	}
	payload, err := decode(strings.TrimPrefix(link, SchemeSS))
	if err != nil {
		return SS{}, err
	}
	// the password may contain ':' and '@', the method and the port may not
	at := strings.LastIndex(payload, "@")
	if at < 0 {
		return SS{}, fmt.Errorf("%w: no '@' in %q", ErrMalformed, payload)
	}
	method, password, ok := strings.Cut(payload[:at], ":")
	if !ok {
		return SS{}, fmt.Errorf("%w: no method in %q", ErrMalformed, payload)
	}
	hostport := payload[at+1:]
	colon := strings.LastIndex(hostport, ":")
	if colon < 0 {
		return SS{}, fmt.Errorf("%w: no port in %q", ErrMalformed, payload)
	}
	port, err := strconv.Atoi(hostport[colon+1:])
	if err != nil {
		return SS{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return SS{
		Method:   method,
		Password: password,
		Server:   hostport[:colon],
		Port:     port,
	}, nil
}

type SSR struct {
	Server   string
	Port     int
	Protocol string
	Method   string
	Obfs     string
	Password string
	Remarks  string
	Group    string
}

// Payload is the text that gets base64 encoded into the link.
func (ssr SSR) Payload() string {
	return fmt.Sprintf("%s:%d:%s:%s:%s:%s/?remarks=%s&group=%s",
		ssr.Server, ssr.Port, ssr.Protocol, ssr.Method, ssr.Obfs,
		encode(ssr.Password), encode(ssr.Remarks), encode(ssr.Group))
}

func (ssr SSR) String() string {
	return SchemeSSR + encode(ssr.Payload())
}

func ParseSSR(link string) (SSR, error) {
	if !strings.HasPrefix(link, SchemeSSR) {
		return SSR{}, fmt.Errorf("%w: missing %s prefix", ErrMalformed, SchemeSSR)
	}
	payload, err := decode(strings.TrimPrefix(link, SchemeSSR))
	if err != nil {
		return SSR{}, err
	}
	main, rawQuery, ok := strings.Cut(payload, "/?")
	if !ok {
		return SSR{}, fmt.Errorf("%w: no parameters in %q", ErrMalformed, payload)
	}
	// server may be an IPv6 literal, so split the six fields from the right
	fields := strings.Split(main, ":")
	if len(fields) < 6 {
		return SSR{}, fmt.Errorf("%w: expected 6 fields in %q", ErrMalformed, main)
	}
	n := len(fields)
	var ssr SSR
	ssr.Server = strings.Join(fields[:n-5], ":")
	ssr.Port, err = strconv.Atoi(fields[n-5])
	if err != nil {
		return SSR{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	ssr.Protocol = fields[n-4]
	ssr.Method = fields[n-3]
	ssr.Obfs = fields[n-2]
	if ssr.Password, err = decode(fields[n-1]); err != nil {
		return SSR{}, err
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return SSR{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if ssr.Remarks, err = decode(query.Get("remarks")); err != nil {
		return SSR{}, err
	}
	if ssr.Group, err = decode(query.Get("group")); err != nil {
		return SSR{}, err
	}
	return ssr, nil
}
