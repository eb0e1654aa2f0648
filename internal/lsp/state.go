package lsp

import "oracle/internal/diag"

func (s *Server) snapshotFor(uri string) diag.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshots[uri]
}

func (s *Server) languageFor(uri string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[uri]; ok && doc.language != "" {
		return doc.language
	}
	return defaultLanguageID
}

func (s *Server) currentPolicy() policy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}
