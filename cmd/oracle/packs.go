package main

import (
	"fmt"

	"oracle/internal/explain"
	"oracle/internal/rulepack"
)

// loadTable собирает действующую таблицу правил: встроенные правила
// плюс паки из каталога --packs, если он задан.
func loadTable(packsDir string, cache *rulepack.DiskCache) (*explain.Table, error) {
	table := explain.Builtin()
	if packsDir == "" {
		return table, nil
	}
	packs, err := rulepack.LoadDir(packsDir, cache)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule packs: %w", err)
	}
	return rulepack.Merge(table, packs...), nil
}
