// Package trace provides the recorded event log shared by the distributor
// and the censor. This package has no dependencies on sim/ — it stores pure
// data types consumed by the analysis layer.
package trace

// Action identifies the kind of state transition a Record captures.
type Action string

const (
	// ActionEnumerateProxy is recorded when the censor learns of a proxy
	// it had not seen before.
	ActionEnumerateProxy Action = "ENUMERATE_PROXY"
	// ActionMissEnumerateProxy is recorded when a malicious client reports
	// a proxy the censor already knew about or had already blocked.
	ActionMissEnumerateProxy Action = "MISS_ENUMERATE_PROXY"
	// ActionExposeClient is recorded when an honest client is routed to a
	// proxy the censor can already see, independent of blocking.
	ActionExposeClient Action = "EXPOSE_CLIENT"
	// ActionProxyBlock is recorded when the censor blocks an active proxy.
	ActionProxyBlock Action = "PROXY_BLOCK"
	// ActionMissProxyBlock is recorded when the censor blocks a proxy the
	// distributor already considers blocked.
	ActionMissProxyBlock Action = "MISS_PROXY_BLOCK"
	// ActionProxyDeath is recorded exactly once per run, when the last
	// active proxy is blocked. No events follow it.
	ActionProxyDeath Action = "PROXY_DEATH"
)

// Record is an immutable snapshot of a single system transition.
//
// ActiveProxies and BlockedProxies are taken from the perspective of the
// recording actor: distributor records carry the distributor's active and
// blocked sets, censor records carry the censor's known and blocked sets.
// SystemHealth is a derived percentage, 0 when not applicable.
type Record struct {
	Time           float64  `json:"time"`
	Action         Action   `json:"action"`
	ActiveProxies  []string `json:"active_proxies"`
	BlockedProxies []string `json:"blocked_proxies"`
	Proxy          string   `json:"proxy"`
	SystemHealth   float64  `json:"system_health"`
}

// NewRecord builds a Record, copying both proxy-ID slices so that later
// mutation of the live sets cannot alter an already-recorded transition.
func NewRecord(time float64, action Action, active, blocked []string, proxy string, health float64) Record {
	return Record{
		Time:           time,
		Action:         action,
		ActiveProxies:  append([]string(nil), active...),
		BlockedProxies: append([]string(nil), blocked...),
		Proxy:          proxy,
		SystemHealth:   health,
	}
}
