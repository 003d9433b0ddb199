package topstats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBotUnmarshal(t *testing.T) {
	var bot Bot
	require.NoError(t, json.Unmarshal([]byte(botFixture), &bot))

	assert.Equal(t, int64(432610292342587392), bot.ID)
	assert.Equal(t, "ProBot", bot.Name)
	assert.Equal(t, "https://cdn.discordapp.com/avatars/432610292342587392/a1b2c3d4.png?size=1024", bot.Avatar)
	assert.Equal(t, "Make a professional server", bot.ShortDescription)
	assert.Equal(t, "!", bot.Prefix)
	assert.Equal(t, "https://example.com", bot.Website)
	assert.Equal(t, []int64{121919449996460033}, bot.Owners)
	assert.False(t, bot.Deleted)
	assert.True(t, bot.ApprovedAt.Equal(time.Date(2018, 4, 10, 9, 15, 0, 0, time.UTC)))
	assert.True(t, bot.UpdatedAt.Equal(time.UnixMilli(1700000000000)))
	assert.Equal(t, Ranked{Value: 1200, Rank: 3}, bot.MonthlyVotes)
	assert.Equal(t, Ranked{Value: 54321, Rank: 2}, bot.ServerCount)
	assert.Equal(t, Ranked{Value: 98000, Rank: 4}, bot.TotalVotes)
	assert.Equal(t, Ranked{Value: 48, Rank: 5}, bot.ShardCount)
}

func TestBotUnmarshalMissingIdentity(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing id", body: `{"name": "ProBot"}`},
		{name: "missing name", body: `{"id": "432610292342587392"}`},
		{name: "malformed id", body: `{"id": "not-a-number", "name": "ProBot"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bot Bot
			assert.Error(t, json.Unmarshal([]byte(tt.body), &bot))
		})
	}
}

func TestBotUnmarshalOptionalFieldsAbsent(t *testing.T) {
	var bot Bot
	require.NoError(t, json.Unmarshal([]byte(`{"id": "1", "name": "minimal"}`), &bot))

	assert.Equal(t, int64(1), bot.ID)
	assert.Empty(t, bot.Prefix)
	assert.Empty(t, bot.Owners)
	assert.Zero(t, bot.ServerCount)
	assert.True(t, bot.UpdatedAt.IsZero())
}

func TestBotCreatedAt(t *testing.T) {
	bot := Bot{ID: 432610292342587392}
	created := bot.CreatedAt()
	assert.Equal(t, 2018, created.Year())
}

func TestAvatarURL(t *testing.T) {
	tests := []struct {
		name string
		hash string
		id   int64
		want string
	}{
		{
			name: "static avatar",
			hash: "abcd",
			id:   5,
			want: "https://cdn.discordapp.com/avatars/5/abcd.png?size=1024",
		},
		{
			name: "animated avatar",
			hash: "a_bcd",
			id:   5,
			want: "https://cdn.discordapp.com/avatars/5/a_bcd.gif?size=1024",
		},
		{
			name: "default embed avatar",
			hash: "",
			id:   432610292342587392,
			want: "https://cdn.discordapp.com/embed/avatars/1.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, avatarURL(tt.hash, tt.id))
		})
	}
}

func TestPeriodTokens(t *testing.T) {
	assert.Equal(t, "alltime", PeriodAllTime.Token())
	assert.Equal(t, "5y", PeriodLastFiveYears.Token())
	assert.Equal(t, "30d", PeriodLastMonth.Token())
	assert.Equal(t, "6h", PeriodLast6Hours.Token())
	assert.Equal(t, "alltime", Period(99).Token())

	for period, token := range periodTokens {
		parsed, err := ParsePeriod(token)
		require.NoError(t, err)
		assert.Equal(t, period, parsed)
	}

	_, err := ParsePeriod("2w")
	assert.Error(t, err)
}

func TestMetricTokens(t *testing.T) {
	assert.Equal(t, "server_count", MetricServerCount.Token())
	assert.Equal(t, "total_votes", MetricTotalVotes.Token())

	for metric, token := range metricTokens {
		parsed, err := ParseMetric(token)
		require.NoError(t, err)
		assert.Equal(t, metric, parsed)
	}

	_, err := ParseMetric("review_count")
	assert.Error(t, err)
}

func TestSortByQuery(t *testing.T) {
	q := SortBy{Metric: MetricMonthlyVotes}.query()
	assert.Equal(t, "monthly_votes", q.Get("sortBy"))
	assert.Equal(t, "desc", q.Get("sortMethod"))

	q = SortBy{Metric: MetricServerCount, Ascending: true}.query()
	assert.Equal(t, "server_count", q.Get("sortBy"))
	assert.Equal(t, "asc", q.Get("sortMethod"))
}

func TestParseUnitSystem(t *testing.T) {
	tests := []struct {
		input   string
		want    UnitSystem
		wantErr bool
	}{
		{input: "", want: UnitDefault},
		{input: "metric", want: UnitMetric},
		{input: "imperial", want: UnitImperial},
		{input: "nautical", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseUnitSystem(tt.input)
		if tt.wantErr {
			assert.Error(t, err)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
