package pricing

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"torgi-backend/internal/domain"
	"torgi-backend/internal/pkg/money"
)

// priceKeys is the fixed key-priority order for lot price discovery. Upstream
// parsers disagree on naming, so the estimator scans all of them and the
// order decides which wins.
var priceKeys = []string{
	"current_price",
	"start_price",
	"min_price",
	"max_price",
	"price",
	"amount",
	"lot_price",
}

// depositKeys is the key-priority order for deposit discovery (trade
// accompaniment fee base).
var depositKeys = []string{
	"deposit",
	"deposit_amount",
	"zadatok",
	"задаток",
}

// maxWalkDepth bounds the details traversal. Parser payloads are shallow;
// anything deeper is garbage.
const maxWalkDepth = 16

// EstimateLotPrice returns the best-guess current/starting/min price of a
// listing, or nil when no usable number exists anywhere. Direct columns win
// over values buried in the details document. Total function: malformed
// details never produce an error, only nil.
func EstimateLotPrice(l *domain.Listing) *float64 {
	for _, direct := range []*float64{l.CurrentPrice, l.StartPrice, l.MinPrice} {
		if p := positive(direct); p != nil {
			return p
		}
	}
	return scanDetails(json.RawMessage(l.Details), priceKeys)
}

// EstimateDeposit returns the lot's deposit amount from the details document,
// or nil when the sources carry none.
func EstimateDeposit(l *domain.Listing) *float64 {
	return scanDetails(json.RawMessage(l.Details), depositKeys)
}

func positive(p *float64) *float64 {
	if p != nil && *p > 0 {
		return p
	}
	return nil
}

// scanDetails walks the raw JSON document collecting every value seen under
// each known key, then resolves them in key-priority order. A key can occur
// several times with junk in some occurrences; candidates that do not
// normalize to a positive number are skipped, not allowed to consume the key.
func scanDetails(raw json.RawMessage, keys []string) *float64 {
	if len(raw) == 0 {
		return nil
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil
	}

	found := make(map[string][]interface{}, len(keys))
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}
	visited := make(map[uintptr]bool)
	walk(doc, wanted, found, visited, 0)

	for _, k := range keys {
		for _, v := range found[k] {
			if p := positive(money.Parse(v)); p != nil {
				return p
			}
		}
	}
	return nil
}

// walk traverses objects and arrays depth-first. Map keys are visited in
// sorted order so the candidate order for a key is deterministic. The
// visited set guards against cyclic structures; decoded JSON cannot contain
// them, but the contract is "never blow up", so the walk does not rely on it.
func walk(v interface{}, wanted map[string]bool, found map[string][]interface{}, visited map[uintptr]bool, depth int) {
	if depth > maxWalkDepth {
		return
	}
	switch node := v.(type) {
	case map[string]interface{}:
		ptr := reflect.ValueOf(node).Pointer()
		if visited[ptr] {
			return
		}
		visited[ptr] = true

		ks := make([]string, 0, len(node))
		for k := range node {
			ks = append(ks, k)
		}
		sort.Strings(ks)
		for _, k := range ks {
			lk := strings.ToLower(k)
			if wanted[lk] {
				found[lk] = append(found[lk], node[k])
			}
			walk(node[k], wanted, found, visited, depth+1)
		}
	case []interface{}:
		if len(node) == 0 {
			return
		}
		ptr := reflect.ValueOf(node).Pointer()
		if visited[ptr] {
			return
		}
		visited[ptr] = true
		for _, item := range node {
			walk(item, wanted, found, visited, depth+1)
		}
	}
}
