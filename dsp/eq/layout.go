package eq

// ChannelSet is the number of channels on one bus.
type ChannelSet int

// Common channel sets.
const (
	ChannelSetDisabled ChannelSet = 0
	ChannelSetMono     ChannelSet = 1
	ChannelSetStereo   ChannelSet = 2
)

func (c ChannelSet) String() string {
	switch c {
	case ChannelSetDisabled:
		return "disabled"
	case ChannelSetMono:
		return "mono"
	case ChannelSetStereo:
		return "stereo"
	default:
		return "discrete"
	}
}

// BusesLayout is the main input and output bus configuration offered by a host.
type BusesLayout struct {
	Input  ChannelSet
	Output ChannelSet
}

// IsBusesLayoutSupported accepts mono or stereo output with a matching input.
func IsBusesLayoutSupported(layout BusesLayout) bool {
	if layout.Output != ChannelSetMono && layout.Output != ChannelSetStereo {
		return false
	}
	return layout.Input == layout.Output
}
