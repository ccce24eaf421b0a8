package transform

import (
	"testing"

	"github.com/rgehrsitz/carbonliab/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRegistry_List(t *testing.T) {
	r := NewTransformRegistry()
	assert.Equal(t, []string{
		"adjust_rate", "match_market", "scale_price", "set_pathway", "set_price", "set_rate", "shift_pathway",
	}, r.List())
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	r := NewTransformRegistry()
	base := domain.DefaultScenario()

	tests := []struct {
		spec      string
		wantName  string
		wantPrice string
		wantRate  string
		wantPath  domain.Pathway
	}{
		{"set_price:price=90", "set_price", "90", "10", domain.PathwayAggressive},
		{"scale_price: pct = 10", "scale_price", "55", "10", domain.PathwayAggressive},
		{"match_market:market=California", "match_market", "35.8", "10", domain.PathwayAggressive},
		{"set_rate:rate=6", "set_rate", "50", "6", domain.PathwayAggressive},
		{"adjust_rate:points=-2.5", "adjust_rate", "50", "7.5", domain.PathwayAggressive},
		{"set_pathway:pathway=Early Action", "set_pathway", "50", "10", domain.PathwayEarlyAction},
		{"shift_pathway:steps=-1", "shift_pathway", "50", "10", domain.PathwayModerate},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := r.ParseTransformSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, tr.Name())

			got, err := ApplyTransforms(base, []ScenarioTransform{tr})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, got.CarbonPrice().String())
			assert.Equal(t, tt.wantRate, got.DiscountRate().String())
			assert.Equal(t, tt.wantPath, got.Pathway())
		})
	}
}

func TestTransformRegistry_ParseErrors(t *testing.T) {
	r := NewTransformRegistry()

	for _, spec := range []string{
		"set_price",
		"set_price:90",
		"set_price:amount=90",
		"set_price:price=lots",
		"scale_price:",
		"set_pathway:pathway=Net Zero",
		"shift_pathway:steps=one",
		"match_market:",
		"retire_early:years=2",
	} {
		_, err := r.ParseTransformSpec(spec)
		assert.Error(t, err, spec)
	}
}

func TestTransformRegistry_ParseTransformList(t *testing.T) {
	r := NewTransformRegistry()

	transforms, err := r.ParseTransformList("scale_price:pct=50; set_pathway:pathway=BAU;")
	require.NoError(t, err)
	require.Len(t, transforms, 2)

	got, err := ApplyTransforms(domain.DefaultScenario(), transforms)
	require.NoError(t, err)
	assert.Equal(t, "75", got.CarbonPrice().String())
	assert.Equal(t, domain.PathwayBAU, got.Pathway())

	transforms, err = r.ParseTransformList("")
	require.NoError(t, err)
	assert.Empty(t, transforms)

	_, err = r.ParseTransformList("scale_price:pct=50;bogus")
	assert.Error(t, err)
}

func TestTransformRegistry_CustomFactory(t *testing.T) {
	r := NewTransformRegistry()
	r.Register("freeze", func(map[string]string) (ScenarioTransform, error) {
		return &ScaleCarbonPrice{}, nil
	})

	tr, err := r.Create("freeze", nil)
	require.NoError(t, err)
	assert.Equal(t, "scale_price", tr.Name())
	assert.Contains(t, r.List(), "freeze")
}
