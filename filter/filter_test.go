package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/top-stats/topstats-go/topstats"
)

func sampleBots() []topstats.PartialBot {
	return []topstats.PartialBot{
		{
			ID:           1,
			Name:         "Rythm",
			ServerCount:  topstats.Ranked{Value: 90000, Rank: 1},
			MonthlyVotes: topstats.Ranked{Value: 500, Rank: 8},
		},
		{
			ID:           2,
			Name:         "MEE6",
			ServerCount:  topstats.Ranked{Value: 54321, Rank: 2},
			MonthlyVotes: topstats.Ranked{Value: 9000, Rank: 1},
		},
		{
			ID:          3,
			Name:        "music-bot",
			ServerCount: topstats.Ranked{Value: 400, Rank: 300},
		},
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{
			name:       "numeric comparison",
			expression: "ServerCount > 1000",
		},
		{
			name:       "string helper",
			expression: "contains(Name, 'music')",
		},
		{
			name:       "combined",
			expression: "ServerCount > 1000 && MonthlyVotes < 1000",
		},
		{
			name:       "rank helper",
			expression: "Rank('monthly_votes') == 1",
		},
		{
			name:       "empty expression",
			expression: "   ",
			wantErr:    true,
		},
		{
			name:       "syntax error",
			expression: "ServerCount >",
			wantErr:    true,
		},
		{
			name:       "non-boolean result",
			expression: "ServerCount + 1",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expression)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantNames  []string
	}{
		{
			name:       "by server count",
			expression: "ServerCount > 1000",
			wantNames:  []string{"Rythm", "MEE6"},
		},
		{
			name:       "by name",
			expression: "contains(Name, 'MUSIC')",
			wantNames:  []string{"music-bot"},
		},
		{
			name:       "by rank",
			expression: "Rank('monthly_votes') == 1",
			wantNames:  []string{"MEE6"},
		},
		{
			name:       "no matches",
			expression: "TotalVotes > 1",
			wantNames:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			matches, err := f.Apply(sampleBots())
			require.NoError(t, err)

			names := make([]string, 0, len(matches))
			for _, bot := range matches {
				names = append(names, bot.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestExpression(t *testing.T) {
	f, err := Compile("ServerCount > 0")
	require.NoError(t, err)
	assert.Equal(t, "ServerCount > 0", f.Expression())
}
