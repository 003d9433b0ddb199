package topstats

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Ranked is a metric value together with its rank against every other bot
// tracked by the service. Rank is only meaningful for the sort dimension the
// value was requested under. Change is the difference against the previous
// data point and may be zero when the service omits it.
type Ranked struct {
	Value  int64
	Rank   int
	Change int64
}

// HistoryEntry is a single timestamped metric sample. Entries are returned in
// the chronological order the service sends them; no local reordering happens.
type HistoryEntry struct {
	Timestamp time.Time
	Value     int64
}

// Bot is a bot listed on topstats.gg, including its current ranked metrics.
type Bot struct {
	ID               int64
	Name             string
	Avatar           string
	ShortDescription string
	Prefix           string
	Website          string
	Owners           []int64
	Deleted          bool
	ApprovedAt       time.Time
	UpdatedAt        time.Time
	MonthlyVotes     Ranked
	ServerCount      Ranked
	TotalVotes       Ranked
	ShardCount       Ranked
}

// botPayload mirrors the flattened wire shape of a bot object.
type botPayload struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	Avatar             string      `json:"avatar"`
	ShortDesc          string      `json:"short_desc"`
	Prefix             string      `json:"prefix"`
	Website            string      `json:"website"`
	Owners             []string    `json:"owners"`
	Deleted            bool        `json:"deleted"`
	ApprovedAt         time.Time   `json:"approved_at"`
	UnixTimestamp      json.Number `json:"unix_timestamp"`
	MonthlyVotes       int64       `json:"monthly_votes"`
	MonthlyVotesRank   int         `json:"monthly_votes_rank"`
	MonthlyVotesChange int64       `json:"monthly_votes_change"`
	ServerCount        int64       `json:"server_count"`
	ServerCountRank    int         `json:"server_count_rank"`
	ServerCountChange  int64       `json:"server_count_change"`
	TotalVotes         int64       `json:"total_votes"`
	TotalVotesRank     int         `json:"total_votes_rank"`
	TotalVotesChange   int64       `json:"total_votes_change"`
	ShardCount         int64       `json:"shard_count"`
	ShardCountRank     int         `json:"shard_count_rank"`
	ShardCountChange   int64       `json:"shard_count_change"`
}

// UnmarshalJSON maps the flattened wire object into a Bot. Absent optional
// fields stay at their zero value; a missing ID or name is a mapping failure.
func (b *Bot) UnmarshalJSON(data []byte) error {
	var p botPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	if p.ID == "" || p.Name == "" {
		return fmt.Errorf("bot object is missing its id or name")
	}

	id, err := strconv.ParseInt(p.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid bot ID %q: %w", p.ID, err)
	}

	owners := make([]int64, 0, len(p.Owners))
	for _, o := range p.Owners {
		oid, err := strconv.ParseInt(o, 10, 64)
		if err != nil {
			continue
		}
		owners = append(owners, oid)
	}

	b.ID = id
	b.Name = p.Name
	b.Avatar = avatarURL(p.Avatar, id)
	b.ShortDescription = p.ShortDesc
	b.Prefix = p.Prefix
	b.Website = p.Website
	b.Owners = owners
	b.Deleted = p.Deleted
	b.ApprovedAt = p.ApprovedAt
	b.MonthlyVotes = Ranked{Value: p.MonthlyVotes, Rank: p.MonthlyVotesRank, Change: p.MonthlyVotesChange}
	b.ServerCount = Ranked{Value: p.ServerCount, Rank: p.ServerCountRank, Change: p.ServerCountChange}
	b.TotalVotes = Ranked{Value: p.TotalVotes, Rank: p.TotalVotesRank, Change: p.TotalVotesChange}
	b.ShardCount = Ranked{Value: p.ShardCount, Rank: p.ShardCountRank, Change: p.ShardCountChange}

	if ms, err := p.UnixTimestamp.Int64(); err == nil && ms > 0 {
		b.UpdatedAt = time.UnixMilli(ms).UTC()
	}

	return nil
}

// CreatedAt derives the bot's creation time from its snowflake ID.
func (b *Bot) CreatedAt() time.Time {
	return time.UnixMilli((b.ID >> 22) + 1420070400000).UTC()
}

// avatarURL builds the CDN avatar URL from an avatar hash, falling back to
// one of the default embed avatars when the bot has none.
func avatarURL(hash string, id int64) string {
	if hash == "" {
		return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", (id>>22)%6)
	}

	ext := "png"
	if strings.HasPrefix(hash, "a_") {
		ext = "gif"
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%d/%s.%s?size=1024", id, hash, ext)
}

// PartialBot is the reduced bot shape returned by ranking and search queries.
type PartialBot struct {
	ID           int64
	Name         string
	Avatar       string
	MonthlyVotes Ranked
	ServerCount  Ranked
	TotalVotes   Ranked
	ShardCount   Ranked
}

func (b *PartialBot) UnmarshalJSON(data []byte) error {
	var p botPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	if p.ID == "" || p.Name == "" {
		return fmt.Errorf("bot object is missing its id or name")
	}

	id, err := strconv.ParseInt(p.ID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid bot ID %q: %w", p.ID, err)
	}

	b.ID = id
	b.Name = p.Name
	b.Avatar = avatarURL(p.Avatar, id)
	b.MonthlyVotes = Ranked{Value: p.MonthlyVotes, Rank: p.MonthlyVotesRank, Change: p.MonthlyVotesChange}
	b.ServerCount = Ranked{Value: p.ServerCount, Rank: p.ServerCountRank, Change: p.ServerCountChange}
	b.TotalVotes = Ranked{Value: p.TotalVotes, Rank: p.TotalVotesRank, Change: p.TotalVotesChange}
	b.ShardCount = Ranked{Value: p.ShardCount, Rank: p.ShardCountRank, Change: p.ShardCountChange}

	return nil
}

// RecentSample is one recent-activity data point across all tracked metrics.
type RecentSample struct {
	Timestamp    time.Time `json:"time"`
	MonthlyVotes int64     `json:"monthly_votes"`
	TotalVotes   int64     `json:"total_votes"`
	ServerCount  int64     `json:"server_count"`
	ShardCount   int64     `json:"shard_count"`
}

// RecentBotStats holds a bot's sampled activity for the past 30 hours and the
// past month.
type RecentBotStats struct {
	Last30Hours []RecentSample `json:"last_30_hours"`
	LastMonth   []RecentSample `json:"last_month"`
}

// Period is a historical time window for metric queries.
type Period int

const (
	PeriodAllTime Period = iota
	PeriodLastFiveYears
	PeriodLastThreeYears
	PeriodLastYear
	PeriodLast90Days
	PeriodLastMonth
	PeriodLastWeek
	PeriodLastThreeDays
	PeriodLastDay
	PeriodLast12Hours
	PeriodLast6Hours
)

var periodTokens = map[Period]string{
	PeriodAllTime:        "alltime",
	PeriodLastFiveYears:  "5y",
	PeriodLastThreeYears: "3y",
	PeriodLastYear:       "1y",
	PeriodLast90Days:     "90d",
	PeriodLastMonth:      "30d",
	PeriodLastWeek:       "7d",
	PeriodLastThreeDays:  "3d",
	PeriodLastDay:        "1d",
	PeriodLast12Hours:    "12h",
	PeriodLast6Hours:     "6h",
}

// Token returns the wire token the service expects for this period. Unknown
// values fall back to the all-time window.
func (p Period) Token() string {
	if t, ok := periodTokens[p]; ok {
		return t
	}
	return periodTokens[PeriodAllTime]
}

func (p Period) String() string {
	return p.Token()
}

// ParsePeriod converts a wire token back into a Period.
func ParsePeriod(s string) (Period, error) {
	for p, t := range periodTokens {
		if t == s {
			return p, nil
		}
	}
	return PeriodAllTime, fmt.Errorf("unknown period %q", s)
}

// Metric identifies one of the tracked bot statistics.
type Metric int

const (
	MetricServerCount Metric = iota
	MetricShardCount
	MetricMonthlyVotes
	MetricTotalVotes
)

var metricTokens = map[Metric]string{
	MetricServerCount:  "server_count",
	MetricShardCount:   "shard_count",
	MetricMonthlyVotes: "monthly_votes",
	MetricTotalVotes:   "total_votes",
}

// Token returns the wire token for this metric.
func (m Metric) Token() string {
	if t, ok := metricTokens[m]; ok {
		return t
	}
	return metricTokens[MetricServerCount]
}

func (m Metric) String() string {
	return m.Token()
}

// ParseMetric converts a wire token back into a Metric.
func ParseMetric(s string) (Metric, error) {
	for m, t := range metricTokens {
		if t == s {
			return m, nil
		}
	}
	return MetricServerCount, fmt.Errorf("unknown metric %q", s)
}

// SortBy selects the ranking dimension and direction for top-bot queries.
// The zero value of Ascending means descending, which is what the service
// defaults to.
type SortBy struct {
	Metric    Metric
	Ascending bool
}

// query serializes the sort selection into ranking query parameters.
func (s SortBy) query() url.Values {
	method := "desc"
	if s.Ascending {
		method = "asc"
	}
	return url.Values{
		"sortBy":     {s.Metric.Token()},
		"sortMethod": {method},
	}
}

// UnitSystem is a display-unit preference passed through to the service.
type UnitSystem int

const (
	UnitDefault UnitSystem = iota
	UnitMetric
	UnitImperial
)

// Token returns the wire token for this unit system, or an empty string for
// the default.
func (u UnitSystem) Token() string {
	switch u {
	case UnitMetric:
		return "metric"
	case UnitImperial:
		return "imperial"
	default:
		return ""
	}
}

// ParseUnitSystem converts a config token into a UnitSystem. An empty string
// means no preference.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch s {
	case "":
		return UnitDefault, nil
	case "metric":
		return UnitMetric, nil
	case "imperial":
		return UnitImperial, nil
	default:
		return UnitDefault, fmt.Errorf("unknown unit system %q", s)
	}
}
