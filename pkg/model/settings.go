package model

// GB is the unit used by every traffic report, matching the legacy panel.
const GB = 1e9

// Settings carries the provisioning and reporting defaults. It is passed by
// value and never mutated after startup.
type Settings struct {
	DefaultTraffic  int64
	DefaultMethod   Method
	DefaultProtocol Protocol
	DefaultObfs     Obfs
	StartPort       int
	// LegacyCheckInDayMatch compares only the day of month when deciding
	// whether an account already checked in today.
	LegacyCheckInDayMatch bool
}

func DefaultSettings() Settings {
	return Settings{
		DefaultTraffic:  5 * GB,
		DefaultMethod:   MethodAES256CFB,
		DefaultProtocol: ProtocolAuthChainA,
		DefaultObfs:     ObfsHTTPSimple,
		StartPort:       1025,
	}
}

// NewAccount returns an account for userID with every default applied except
// the port, which is assigned by the store on insert.
func (s Settings) NewAccount(userID uint) *Account {
	return &Account{
		UserID:          userID,
		LastCheckInTime: Epoch,
		Password:        RandomPassword(DefaultPasswordLength),
		TransferEnable:  s.DefaultTraffic,
		Switch:          true,
		Enable:          true,
		Method:          s.DefaultMethod,
		Protocol:        s.DefaultProtocol,
		Obfs:            s.DefaultObfs,
	}
}

func (s Settings) NewNode(nodeID int) *Node {
	return &Node{
		NodeID:      nodeID,
		Method:      s.DefaultMethod,
		Protocol:    s.DefaultProtocol,
		Obfs:        s.DefaultObfs,
		TrafficRate: 1.0,
		Status:      NodeStatusDefault,
		Show:        VisibilityShown,
		Group:       DefaultNodeGroup,
	}
}
