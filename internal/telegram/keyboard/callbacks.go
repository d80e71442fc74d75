package keyboard

import (
	"fmt"
	"strings"
)

// Callback actions
const (
	ActionOption   = "opt"    // value is "<questionID>=<optionValue>"
	ActionControl  = "action" // value is one of the Control* constants
	ActionDownload = "dl"     // value is a result format
)

const (
	ControlStart  = "start"
	ControlBack   = "back"
	ControlSubmit = "submit"
	ControlReset  = "reset"
)

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback parses callback data string
func ParseCallback(data string) (*CallbackData, error) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid callback format: %s", data)
	}

	return &CallbackData{
		Action: parts[0],
		Value:  parts[1],
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return fmt.Sprintf("%s:%s", action, value)
}

// EncodeOption creates the callback data of an option button
func EncodeOption(questionID, value string) string {
	return EncodeCallback(ActionOption, questionID+"="+value)
}

// ParseOption splits an option callback value into question ID and option value
func ParseOption(value string) (questionID, option string, err error) {
	questionID, option, ok := strings.Cut(value, "=")
	if !ok || questionID == "" || option == "" {
		return "", "", fmt.Errorf("invalid option callback: %s", value)
	}
	return questionID, option, nil
}
