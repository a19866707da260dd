package main

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/farxc/painel-seguros/internal/painel/types"
)

const maxHistoryLimit = 500

func parseLimit(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > maxHistoryLimit {
		return 0, fmt.Errorf("invalid limit %q (1-%d expected)", raw, maxHistoryLimit)
	}
	return limit, nil
}

func criteriaFromQuery(q url.Values) types.Criteria {
	return types.Criteria{
		Collaborator: q.Get("collaborator"),
		Status:       q.Get("status"),
		Query:        q.Get("q"),
	}
}
