package prefs

// Default is a flag's visibility when it has never been set.
type Default bool

const (
	DefaultOff Default = false
	DefaultOn  Default = true
)

// Panel flags.
const (
	NetShowDetails     = "DETAILS_SHOWNET"
	NetShowGraphSig    = "DETAILS_SHOWGRAPHSIG"
	NetShowGraphPacket = "DETAILS_SHOWGRAPHPACKET"
	NetShowGraphRetry  = "DETAILS_SHOWGRAPHRETRY"

	CliShowDetails     = "CLIDETAILS_SHOWCLI"
	CliShowGraphSig    = "CLIDETAILS_SHOWGRAPHSIG"
	CliShowGraphPacket = "CLIDETAILS_SHOWGRAPHPACKET"
	CliShowGraphRetry  = "CLIDETAILS_SHOWGRAPHRETRY"

	ChanShowSummary = "CHANDETAILS_SHOWSUM"
	ChanShowSignal  = "CHANDETAILS_SHOWSIG"
	ChanShowPackets = "CHANDETAILS_SHOWPACK"
	ChanShowTraffic = "CHANDETAILS_SHOWTRAF"
	ChanShowNetwork = "CHANDETAILS_SHOWNET"

	// AlertSort holds the alert list order name.
	AlertSort = "ALERTLIST_SORT"
)

// AlertSortDefault is used when AlertSort is unset.
const AlertSortDefault = "latest"

// Defaults maps every panel flag to its unset visibility.
var Defaults = map[string]Default{
	NetShowDetails:     DefaultOn,
	NetShowGraphSig:    DefaultOff,
	NetShowGraphPacket: DefaultOn,
	NetShowGraphRetry:  DefaultOff,

	CliShowDetails:     DefaultOn,
	CliShowGraphSig:    DefaultOff,
	CliShowGraphPacket: DefaultOn,
	CliShowGraphRetry:  DefaultOff,

	ChanShowSummary: DefaultOn,
	ChanShowSignal:  DefaultOn,
	ChanShowPackets: DefaultOn,
	ChanShowTraffic: DefaultOn,
	ChanShowNetwork: DefaultOn,
}

// DefaultFor returns the registered default for key, DefaultOff if unknown.
func DefaultFor(key string) Default {
	return Defaults[key]
}
