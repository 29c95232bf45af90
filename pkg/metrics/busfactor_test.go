package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/pkgtrust/pkg/integrations"
	"github.com/matzehuels/pkgtrust/pkg/subject"
)

func contributors(counts ...int) []integrations.Contributor {
	out := make([]integrations.Contributor, len(counts))
	for i, n := range counts {
		out[i] = integrations.Contributor{Login: string(rune('a' + i)), Contributions: n}
	}
	return out
}

func TestBusFactorScore(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		want   float64
	}{
		{"none", nil, 0},
		{"single", []int{42}, 0},
		{"even pair", []int{10, 10}, 0},
		{"dominant maintainer", []int{100, 10, 5}, 0},
		{"flat tail", []int{7, 10, 8, 9}, 0.25},
		{"five equal", []int{5, 5, 5, 5, 5}, 0.4},
		{"all zero", []int{0, 0}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BusFactorScore(contributors(tt.counts...)), 1e-9)
		})
	}
}

func TestBusFactorScore_DoesNotReorderInput(t *testing.T) {
	in := contributors(1, 2, 3)
	BusFactorScore(in)
	assert.Equal(t, 1, in[0].Contributions)
	assert.Equal(t, 3, in[2].Contributions)
}

func TestBusFactor_Compute(t *testing.T) {
	s := subject.Subject{Owner: "o", Repo: "r", URL: "https://github.com/o/r"}

	t.Run("scores contributors", func(t *testing.T) {
		host := new(mockHost)
		host.On("Contributors", mock.Anything, "o", "r").Return(contributors(10, 9, 8, 7), nil)

		m := NewBusFactor(host, nil)
		score, err := m.Compute(context.Background(), s)
		require.NoError(t, err)
		assert.InDelta(t, 0.25, score, 1e-9)
		assert.Equal(t, NameBusFactor, m.Name())
		host.AssertExpectations(t)
	})

	t.Run("fetch error is returned", func(t *testing.T) {
		host := new(mockHost)
		cause := errors.New("boom")
		host.On("Contributors", mock.Anything, "o", "r").Return(nil, cause)

		_, err := NewBusFactor(host, nil).Compute(context.Background(), s)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
	})
}
