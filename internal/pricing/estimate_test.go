package pricing

import (
	"encoding/json"
	"testing"

	"torgi-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func details(t *testing.T, doc map[string]interface{}) datatypes.JSON {
	t.Helper()
	b, err := json.Marshal(doc)
	require.NoError(t, err)
	return datatypes.JSON(b)
}

func TestEstimateLotPrice_DirectColumnWins(t *testing.T) {
	l := &domain.Listing{
		CurrentPrice: f(450000),
		Details:      details(t, map[string]interface{}{"price": 999}),
	}
	p := EstimateLotPrice(l)
	require.NotNil(t, p)
	assert.Equal(t, 450000.0, *p)
}

func TestEstimateLotPrice_DirectColumnFallsThroughToStart(t *testing.T) {
	l := &domain.Listing{StartPrice: f(120000)}
	p := EstimateLotPrice(l)
	require.NotNil(t, p)
	assert.Equal(t, 120000.0, *p)
}

func TestEstimateLotPrice_NestedLocalizedString(t *testing.T) {
	l := &domain.Listing{
		Details: details(t, map[string]interface{}{
			"lot": map[string]interface{}{
				"debtor":      map[string]interface{}{"name": "ООО Ромашка"},
				"start_price": "1 200 000,50",
			},
		}),
	}
	p := EstimateLotPrice(l)
	require.NotNil(t, p)
	assert.Equal(t, 1200000.50, *p)
}

func TestEstimateLotPrice_KeyPriorityOverDepth(t *testing.T) {
	// current_price is buried deeper than price but still wins: priority is
	// by key order, not by where the walk finds it first.
	l := &domain.Listing{
		Details: details(t, map[string]interface{}{
			"price": 100,
			"nested": map[string]interface{}{
				"deep": map[string]interface{}{"current_price": 200},
			},
		}),
	}
	p := EstimateLotPrice(l)
	require.NotNil(t, p)
	assert.Equal(t, 200.0, *p)
}

func TestEstimateLotPrice_SkipsNonPositive(t *testing.T) {
	l := &domain.Listing{
		Details: details(t, map[string]interface{}{
			"current_price": 0,
			"start_price":   "нет",
			"min_price":     75000,
		}),
	}
	p := EstimateLotPrice(l)
	require.NotNil(t, p)
	assert.Equal(t, 75000.0, *p)
}

func TestEstimateLotPrice_JunkOccurrenceDoesNotMaskLaterOne(t *testing.T) {
	// The same key can appear several times; a junk first occurrence must not
	// consume it for the rest of the document.
	l := &domain.Listing{
		Details: details(t, map[string]interface{}{
			"a": map[string]interface{}{"price": "нет данных"},
			"b": map[string]interface{}{"price": 500000},
		}),
	}
	p := EstimateLotPrice(l)
	require.NotNil(t, p)
	assert.Equal(t, 500000.0, *p)
}

func TestEstimateLotPrice_ZeroOccurrenceDoesNotMaskLaterOne(t *testing.T) {
	l := &domain.Listing{
		Details: details(t, map[string]interface{}{
			"first":  map[string]interface{}{"start_price": 0},
			"second": map[string]interface{}{"start_price": "250 000"},
		}),
	}
	p := EstimateLotPrice(l)
	require.NotNil(t, p)
	assert.Equal(t, 250000.0, *p)
}

func TestEstimateLotPrice_ArraysAndScheduleEntries(t *testing.T) {
	l := &domain.Listing{
		Details: details(t, map[string]interface{}{
			"schedule": []interface{}{
				map[string]interface{}{"period": "1", "note": "x"},
				map[string]interface{}{"period": "2", "price": "350 000"},
			},
		}),
	}
	p := EstimateLotPrice(l)
	require.NotNil(t, p)
	assert.Equal(t, 350000.0, *p)
}

func TestEstimateLotPrice_NothingUsable(t *testing.T) {
	assert.Nil(t, EstimateLotPrice(&domain.Listing{}))
	assert.Nil(t, EstimateLotPrice(&domain.Listing{
		Details: details(t, map[string]interface{}{"contact": "555-0100"}),
	}))
	// Malformed JSON never panics.
	assert.Nil(t, EstimateLotPrice(&domain.Listing{Details: datatypes.JSON("{broken")}))
}

func TestEstimateLotPrice_DepthBound(t *testing.T) {
	deep := map[string]interface{}{"price": 100}
	for i := 0; i < 50; i++ {
		deep = map[string]interface{}{"wrap": deep}
	}
	// Beyond the walk depth: not found, but no blow-up either.
	assert.Nil(t, EstimateLotPrice(&domain.Listing{Details: details(t, deep)}))
}

func TestEstimateDeposit(t *testing.T) {
	l := &domain.Listing{
		CurrentPrice: f(450000),
		Details: details(t, map[string]interface{}{
			"lot": map[string]interface{}{"задаток": "45 000"},
		}),
	}
	d := EstimateDeposit(l)
	require.NotNil(t, d)
	assert.Equal(t, 45000.0, *d)

	// Deposit scan ignores ordinary price keys.
	assert.Nil(t, EstimateDeposit(&domain.Listing{
		Details: details(t, map[string]interface{}{"price": 100}),
	}))
}
