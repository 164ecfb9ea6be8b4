package model

// Method is a cipher name. Only the name is stored; names added by the proxy
// side after this list was written are kept as-is and reported by Known as false.
type Method string

const (
	MethodAES256CFB Method = "aes-256-cfb"
	MethodAES128CTR Method = "aes-128-ctr"
	MethodRC4MD5    Method = "rc4-md5"
	MethodSalsa20   Method = "salsa20"
	MethodChacha20  Method = "chacha20"
	MethodNone      Method = "none"
)

var Methods = []Method{MethodAES256CFB, MethodAES128CTR, MethodRC4MD5, MethodSalsa20, MethodChacha20, MethodNone}

func (m Method) Known() bool {
	for _, v := range Methods {
		if v == m {
			return true
		}
	}
	return false
}

// Protocol is an SSR auth protocol name.
type Protocol string

const (
	ProtocolAuthSHA1V4     Protocol = "auth_sha1_v4"
	ProtocolAuthAES128MD5  Protocol = "auth_aes128_md5"
	ProtocolAuthAES128SHA1 Protocol = "auth_aes128_sha1"
	ProtocolAuthChainA     Protocol = "auth_chain_a"
	ProtocolOrigin         Protocol = "origin"
)

var Protocols = []Protocol{ProtocolAuthSHA1V4, ProtocolAuthAES128MD5, ProtocolAuthAES128SHA1, ProtocolAuthChainA, ProtocolOrigin}

func (p Protocol) Known() bool {
	for _, v := range Protocols {
		if v == p {
			return true
		}
	}
	return false
}

// Obfs is an SSR obfuscation plugin name.
type Obfs string

const (
	ObfsPlain                Obfs = "plain"
	ObfsHTTPSimple           Obfs = "http_simple"
	ObfsHTTPSimpleCompatible Obfs = "http_simple_compatible"
	ObfsHTTPPost             Obfs = "http_post"
	ObfsTLS12TicketAuth      Obfs = "tls1.2_ticket_auth"
)

var Obfses = []Obfs{ObfsPlain, ObfsHTTPSimple, ObfsHTTPSimpleCompatible, ObfsHTTPPost, ObfsTLS12TicketAuth}

func (o Obfs) Known() bool {
	for _, v := range Obfses {
		if v == o {
			return true
		}
	}
	return false
}

// NodeStatus labels are stored verbatim for compatibility with existing rows.
type NodeStatus string

const (
	NodeStatusOK          NodeStatus = "好用"
	NodeStatusMaintenance NodeStatus = "维护"
	NodeStatusBroken      NodeStatus = "坏了"
	// NodeStatusDefault is the column default of the legacy schema, which is not one of the labels.
	NodeStatusDefault NodeStatus = "ok"
)

type Visibility string

const (
	VisibilityShown  Visibility = "显示"
	VisibilityHidden Visibility = "不显示"
)

const DefaultNodeGroup = "谜之屋"
