package shared

// Label represents the trade decision for a bar.
type Label int

const (
	NoTrade Label = iota
	Buy
	Sell
)

// String stringifies the provided label.
func (l Label) String() string {
	switch l {
	case NoTrade:
		return "NoTrade"
	case Buy:
		return "Buy"
	case Sell:
		return "Sell"
	default:
		return "unknown"
	}
}

// SignalSource represents the path that produced a label.
type SignalSource int

const (
	NoSignal SignalSource = iota
	Primary
	Fallback
)

// String stringifies the provided signal source.
func (s SignalSource) String() string {
	switch s {
	case NoSignal:
		return "none"
	case Primary:
		return "primary"
	case Fallback:
		return "fallback"
	default:
		return "unknown"
	}
}
