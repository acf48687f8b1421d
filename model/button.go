package model

// Button is one inline keyboard button. Data comes back verbatim as the
// callback query payload when the button is pressed.
type Button struct {
	Text string
	Data string
}
