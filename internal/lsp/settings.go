package lsp

import (
	"encoding/json"

	"oracle/internal/diag"
)

// policy controls which severities each surface reacts to. Hover stays
// quiet below errors so it does not shadow regular language tooltips;
// явная команда срабатывает и на предупреждениях.
type policy struct {
	hoverMin   diag.Severity
	commandMin diag.Severity
}

func defaultPolicy() policy {
	return policy{
		hoverMin:   diag.SevError,
		commandMin: diag.SevWarning,
	}
}

type lspSettings struct {
	ErrorOracle oracleSettings `json:"errorOracle"`
}

type oracleSettings struct {
	Hover   surfaceSettings `json:"hover"`
	Command surfaceSettings `json:"command"`
}

type surfaceSettings struct {
	MinSeverity *string `json:"minSeverity,omitempty"`
}

func (s *Server) handleDidChangeConfiguration(msg *rpcMessage) error {
	if len(msg.Params) == 0 {
		return nil
	}
	var params didChangeConfigurationParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.logf("didChangeConfiguration: bad params: %v", err)
		return nil
	}
	s.applySettings(params.Settings)
	return nil
}

func (s *Server) applySettings(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var settings lspSettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if settings.ErrorOracle.Hover.MinSeverity != nil {
		if sev, err := diag.ParseSeverity(*settings.ErrorOracle.Hover.MinSeverity); err == nil {
			s.policy.hoverMin = sev
		} else {
			s.logf("settings: %v, keeping hover threshold %s", err, s.policy.hoverMin)
		}
	}
	if settings.ErrorOracle.Command.MinSeverity != nil {
		if sev, err := diag.ParseSeverity(*settings.ErrorOracle.Command.MinSeverity); err == nil {
			s.policy.commandMin = sev
		} else {
			s.logf("settings: %v, keeping command threshold %s", err, s.policy.commandMin)
		}
	}
}
