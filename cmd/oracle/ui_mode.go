package main

import (
	"fmt"
	"os"
	"strings"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "off":
		return uiModeOff, nil
	case "on":
		return uiModeOn, nil
	case "auto":
		return uiModeAuto, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// enabled решает, открывать ли браузер: auto смотрит на терминал.
func (m uiMode) enabled() bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeAuto:
		return isTerminal(os.Stdout)
	default:
		return false
	}
}
