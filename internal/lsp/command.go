package lsp

import (
	"encoding/json"

	"oracle/internal/diag"
	"oracle/internal/explain"
)

func (s *Server) handleExecuteCommand(msg *rpcMessage) error {
	var params executeCommandParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	if params.Command != CommandExplainError {
		return s.sendError(msg.ID, codeInvalidParams, "unknown command: "+params.Command)
	}
	var args explainErrorArgs
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments[0], &args); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid command arguments")
		}
	}
	if args.URI == "" {
		if err := s.sendResponse(msg.ID, nil); err != nil {
			return err
		}
		return s.showInfo("error-oracle: no active editor")
	}
	pos := diag.Position{Line: args.Position.Line, Character: args.Position.Character}
	pol := s.currentPolicy()
	visible := diag.FilterMin(s.snapshotFor(args.URI), pol.commandMin)
	found, ok := diag.FindAt(visible, pos)
	if !ok {
		if err := s.sendResponse(msg.ID, nil); err != nil {
			return err
		}
		return s.showInfo("error-oracle: no error found at the cursor")
	}
	language := s.languageFor(args.URI)
	explanation := s.resolver.Explain(found.Message, language)
	// The command itself returns nothing; the explanation travels as a
	// message so it shows up even in clients without custom UI.
	if err := s.sendResponse(msg.ID, nil); err != nil {
		return err
	}
	return s.offerWebSearch(explanation, language, found.Message)
}

func (s *Server) showInfo(message string) error {
	return s.sendNotification("window/showMessage", showMessageParams{
		Type:    messageTypeInfo,
		Message: message,
	})
}

// offerWebSearch shows the explanation with a single action; picking it
// opens a web search for the original message in the user's browser.
func (s *Server) offerWebSearch(explanation, language, message string) error {
	params := showMessageRequestParams{
		Type:    messageTypeInfo,
		Message: explanation,
		Actions: []messageActionItem{{Title: searchActionTitle}},
	}
	return s.sendRequest("window/showMessageRequest", params, func(result json.RawMessage, rpcErr *rpcError) {
		if rpcErr != nil {
			s.logf("showMessageRequest failed: %d %s", rpcErr.Code, rpcErr.Message)
			return
		}
		var choice *messageActionItem
		if len(result) > 0 {
			if err := json.Unmarshal(result, &choice); err != nil {
				s.logf("showMessageRequest: bad response: %v", err)
				return
			}
		}
		if choice == nil || choice.Title != searchActionTitle {
			return
		}
		s.openSearch(explain.SearchURL(language, message))
	})
}

func (s *Server) openSearch(url string) {
	err := s.sendRequest("window/showDocument", showDocumentParams{
		URI:      url,
		External: true,
	}, func(result json.RawMessage, rpcErr *rpcError) {
		if rpcErr != nil {
			s.logf("showDocument failed: %d %s", rpcErr.Code, rpcErr.Message)
			return
		}
		var shown showDocumentResult
		if err := json.Unmarshal(result, &shown); err == nil && !shown.Success {
			s.logf("client declined to open %s", url)
		}
	})
	if err != nil {
		s.logf("failed to request showDocument: %v", err)
	}
}
